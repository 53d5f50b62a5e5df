package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type invitesRepo struct {
	q dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invites (id, code_hash, org_id, role, email, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.CodeHash,
		inv.OrgID,
		string(inv.Role),
		mapStringNull(inv.Email),
		inv.CreatedBy,
		time.Now().UTC(),
	)
	return mapConstraint(err)
}

// ConsumeInviteByCodeHash removes the invite in a single conditional
// statement. DELETE ... RETURNING is atomic: concurrent redemptions of
// the same code race on the row and only one sees it.
func (r *invitesRepo) ConsumeInviteByCodeHash(
	ctx context.Context,
	codeHash string,
) (domain.Invite, error) {
	var (
		inv   domain.Invite
		email sql.NullString
	)
	err := r.q.QueryRowContext(ctx,
		`DELETE FROM invites WHERE code_hash = ?
		 RETURNING id, code_hash, org_id, role, email, created_by, created_at`,
		codeHash).
		Scan(&inv.ID, &inv.CodeHash, &inv.OrgID, &inv.Role, &email, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.Email = mapNullString(email)
	return inv, nil
}

func (r *invitesRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.Invite, error) {
	if err := requireScope(orgID); err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, code_hash, org_id, role, email, created_by, created_at
		 FROM invites WHERE org_id = ? ORDER BY created_at`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		var (
			inv   domain.Invite
			email sql.NullString
		)
		if err := rows.Scan(
			&inv.ID, &inv.CodeHash, &inv.OrgID, &inv.Role, &email, &inv.CreatedBy, &inv.CreatedAt,
		); err != nil {
			return nil, err
		}
		inv.Email = mapNullString(email)
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}
