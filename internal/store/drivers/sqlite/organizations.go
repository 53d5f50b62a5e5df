package sqlite

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type organizationsRepo struct {
	q dbtx
}

func (r *organizationsRepo) CreateOrganization(
	ctx context.Context,
	o domain.Organization,
) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO organizations (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		o.ID, o.Name, now, now)
	// The unique index on name decides concurrent same-name creations.
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(
	ctx context.Context,
	id string,
) (domain.Organization, error) {
	var o domain.Organization
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM organizations WHERE id = ?`, id).
		Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return o, nil
}
