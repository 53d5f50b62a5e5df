package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, name, email, password_hash, role, org_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u     domain.User
		role  sql.NullString
		orgID sql.NullString
	)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&role,
		&orgID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(mapNullString(role))
	u.OrgID = mapNullString(orgID)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	// email column is COLLATE NOCASE, so the comparison is
	// case-insensitive at the index.
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, org_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		mapStringNull(string(u.Role)),
		mapStringNull(u.OrgID),
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserInOrg(ctx context.Context, orgID, userID string) (domain.User, error) {
	if err := requireScope(orgID); err != nil {
		return domain.User{}, err
	}
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND org_id = ?`, userID, orgID)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.User, error) {
	if err := requireScope(orgID); err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE org_id = ? ORDER BY created_at`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) ListByIDsInOrg(
	ctx context.Context,
	orgID string,
	ids []string,
) ([]domain.User, error) {
	if err := requireScope(orgID); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, orgID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE org_id = ? AND id IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) AttachToOrg(
	ctx context.Context,
	userID, orgID string,
	role domain.Role,
) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET role = ?, org_id = ?, updated_at = ? WHERE id = ?`,
		string(role), orgID, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *usersRepo) UpdateUserRole(
	ctx context.Context,
	orgID, userID string,
	role domain.Role,
) error {
	if err := requireScope(orgID); err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ? AND org_id = ?`,
		string(role), time.Now().UTC(), userID, orgID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, orgID, userID string) error {
	if err := requireScope(orgID); err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM users WHERE id = ? AND org_id = ?`, userID, orgID)
	if err != nil {
		return err
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
