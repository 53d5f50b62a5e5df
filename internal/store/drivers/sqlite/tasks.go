package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type tasksRepo struct {
	q dbtx
}

const taskColumns = `id, title, description, status, priority, category, org_id, created_by, due_date, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t       domain.Task
		dueDate sql.NullTime
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.Category,
		&t.OrgID,
		&t.CreatedBy,
		&dueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}
	t.DueDate = mapNullTimePtr(dueDate)
	return t, nil
}

// CreateTask inserts the task row and its assignee set. Callers run it
// inside WithTx so the two writes land together.
func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, category, org_id, created_by, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		string(t.Category),
		t.OrgID,
		t.CreatedBy,
		mapOptionalTime(t.DueDate),
		now,
		now,
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, userID := range t.AssignedTo {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, user_id) VALUES (?, ?)`,
			t.ID, userID,
		); err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *tasksRepo) GetTask(ctx context.Context, orgID, taskID string) (domain.Task, error) {
	if err := requireScope(orgID); err != nil {
		return domain.Task{}, err
	}

	row := r.q.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND org_id = ?`, taskID, orgID)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}

	t.AssignedTo, err = r.assignees(ctx, t.ID)
	if err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *tasksRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.Task, error) {
	if err := requireScope(orgID); err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE org_id = ? ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		tasks[i].AssignedTo, err = r.assignees(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (r *tasksRepo) UpdateTaskStatus(
	ctx context.Context,
	orgID, taskID string,
	status domain.TaskStatus,
) error {
	if err := requireScope(orgID); err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ? AND org_id = ?`,
		string(status), time.Now().UTC(), taskID, orgID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *tasksRepo) DeleteTask(ctx context.Context, orgID, taskID string) error {
	if err := requireScope(orgID); err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND org_id = ?`, taskID, orgID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *tasksRepo) assignees(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT user_id FROM task_assignees WHERE task_id = ? ORDER BY user_id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
