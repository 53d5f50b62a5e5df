package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/rbac"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/pkg/idx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

var (
	ErrNoAssignees         = errors.New("assignedTo must name at least one user")
	ErrAssigneeNotInOrg    = errors.New("one or more assignees not found in your organization")
	ErrAssigneeRoleTooHigh = errors.New("managers can only assign tasks to members")
	ErrInvalidTaskStatus   = errors.New("invalid status value")
	ErrInvalidTaskPriority = errors.New("invalid priority value")
	ErrInvalidTaskCategory = errors.New("invalid category value")
	ErrTaskNotFound        = errors.New("task not found")
	ErrNotAssignedToCaller = errors.New("members can only update their own tasks")
)

type TaskService struct {
	Store store.Store
}

// CreateTaskInput carries the caller-supplied task fields. Zero values
// for priority and category fall back to the defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  []string
	Priority    domain.TaskPriority
	Category    domain.TaskCategory
	DueDate     *time.Time
}

// Create validates and persists a new task. All assignees must belong
// to the caller's organization; a manager may only assign members.
func (s *TaskService) Create(
	ctx context.Context,
	principal rbac.Principal,
	in CreateTaskInput,
) (domain.Task, []domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Role capability.
	if err := rbac.Authorize(principal, rbac.OpCreateTask); err != nil {
		return domain.Task{}, nil, err
	}

	// 2. Field validation.
	if in.Title == "" {
		return domain.Task{}, nil, ErrMissingFields
	}
	if len(in.AssignedTo) == 0 {
		return domain.Task{}, nil, ErrNoAssignees
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if in.Category == "" {
		in.Category = domain.CategoryFeature
	}
	if !in.Priority.Valid() {
		return domain.Task{}, nil, ErrInvalidTaskPriority
	}
	if !in.Category.Valid() {
		return domain.Task{}, nil, ErrInvalidTaskCategory
	}

	// 3. Every assignee must be a member of the caller's organization.
	// The org-scoped query doubles as the isolation check: foreign ids
	// simply don't come back.
	assignees, err := s.Store.Users().ListByIDsInOrg(ctx, principal.OrgID, in.AssignedTo)
	if err != nil {
		return domain.Task{}, nil, err
	}
	if len(assignees) != len(uniqueIDs(in.AssignedTo)) {
		return domain.Task{}, nil, ErrAssigneeNotInOrg
	}

	// 4. Role floor: managers assign members only.
	for _, assignee := range assignees {
		if !rbac.CanAssign(principal.Role, assignee.Role) {
			log.Warn("task assignment rejected",
				slog.String("caller_role", principal.Role.String()),
				slog.String("assignee_role", assignee.Role.String()),
			)
			return domain.Task{}, nil, ErrAssigneeRoleTooHigh
		}
	}

	task := domain.Task{
		ID:          idx.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusTodo,
		Priority:    in.Priority,
		Category:    in.Category,
		AssignedTo:  uniqueIDs(in.AssignedTo),
		OrgID:       principal.OrgID,
		CreatedBy:   principal.UserID,
		DueDate:     in.DueDate,
	}

	// 5. Task row and assignee set land together.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Tasks().CreateTask(ctx, task)
	})
	if err != nil {
		log.Error("failed to create task", slog.Any("error", err))
		return domain.Task{}, nil, err
	}

	log.Info("task created",
		slog.String("task_id", task.ID),
		slog.String("org_id", task.OrgID),
		slog.Int("assignees", len(task.AssignedTo)),
	)
	return task, assignees, nil
}

// List returns the caller's organization's tasks along with a lookup of
// the organization's members for assignee expansion.
func (s *TaskService) List(
	ctx context.Context,
	principal rbac.Principal,
) ([]domain.Task, map[string]domain.User, error) {
	if err := rbac.Authorize(principal, rbac.OpListTasks); err != nil {
		return nil, nil, err
	}

	tasks, err := s.Store.Tasks().ListByOrg(ctx, principal.OrgID)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.Store.Users().ListByOrg(ctx, principal.OrgID)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]domain.User, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	return tasks, byID, nil
}

// UpdateStatus moves a task to a new status. Members may only touch
// tasks they are assigned to; tasks outside the caller's organization
// surface as not found. The task's assignees come back alongside it so
// callers can render the updated task without a separate, possibly
// role-gated member listing.
func (s *TaskService) UpdateStatus(
	ctx context.Context,
	principal rbac.Principal,
	taskID string,
	status domain.TaskStatus,
) (domain.Task, []domain.User, error) {
	log := slogx.FromContext(ctx)

	if err := rbac.Authorize(principal, rbac.OpUpdateTaskStatus); err != nil {
		return domain.Task{}, nil, err
	}
	if !status.Valid() {
		return domain.Task{}, nil, ErrInvalidTaskStatus
	}

	task, err := s.Store.Tasks().GetTask(ctx, principal.OrgID, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Task{}, nil, ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, nil, err
	}

	if !rbac.CanUpdateTaskStatus(principal, task) {
		log.Warn("task status update rejected",
			slog.String("task_id", taskID),
			slog.String("user_id", principal.UserID),
		)
		return domain.Task{}, nil, ErrNotAssignedToCaller
	}

	if err := s.Store.Tasks().UpdateTaskStatus(ctx, principal.OrgID, taskID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, nil, ErrTaskNotFound
		}
		return domain.Task{}, nil, err
	}

	assignees, err := s.Store.Users().ListByIDsInOrg(ctx, principal.OrgID, task.AssignedTo)
	if err != nil {
		return domain.Task{}, nil, err
	}

	task.Status = status
	log.Debug("task status updated",
		slog.String("task_id", taskID),
		slog.String("status", string(status)),
	)
	return task, assignees, nil
}

// Delete removes a task. Admin only; scoped to the caller's
// organization.
func (s *TaskService) Delete(
	ctx context.Context,
	principal rbac.Principal,
	taskID string,
) error {
	if err := rbac.Authorize(principal, rbac.OpDeleteTask); err != nil {
		return err
	}

	err := s.Store.Tasks().DeleteTask(ctx, principal.OrgID, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
