package http

import (
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/pkg/api"
)

// toAPIUser projects a user record onto the wire type. The credential
// hash never crosses this boundary.
func toAPIUser(u domain.User) api.User {
	out := api.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role.String(),
		Organization: u.OrgID,
	}
	if !u.CreatedAt.IsZero() {
		t := u.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

func toAPIUsers(users []domain.User) []api.User {
	out := make([]api.User, 0, len(users))
	for _, u := range users {
		out = append(out, toAPIUser(u))
	}
	return out
}

func toAPIOrganization(o domain.Organization, members []domain.User) api.Organization {
	return api.Organization{
		ID:      o.ID,
		Name:    o.Name,
		Members: toAPIUsers(members),
	}
}

// toAPITask projects a task with its assignee ids expanded to user
// summaries. Assignees missing from the lookup (deleted since) are
// skipped rather than serialized as empty shells.
func toAPITask(t domain.Task, usersByID map[string]domain.User) api.Task {
	assignees := make([]api.User, 0, len(t.AssignedTo))
	for _, id := range t.AssignedTo {
		if u, ok := usersByID[id]; ok {
			assignees = append(assignees, toAPIUser(u))
		}
	}
	return api.Task{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		Category:     string(t.Category),
		AssignedTo:   assignees,
		Organization: t.OrgID,
		CreatedBy:    t.CreatedBy,
		DueDate:      t.DueDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func usersAsLookup(users []domain.User) map[string]domain.User {
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}
