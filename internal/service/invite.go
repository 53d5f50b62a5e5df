package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/rbac"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
	"github.com/taskdeck/taskdeck/pkg/idx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

var (
	ErrInvalidInviteRole = errors.New("invite role must be manager or member")
	ErrInvalidInvite     = errors.New("invite code is invalid or already used")
)

type InviteService struct {
	Store store.Store
}

// Issue mints a one-time invite code scoped to the caller's
// organization and a target role. The raw code is returned exactly
// once; only its fingerprint is stored.
func (s *InviteService) Issue(
	ctx context.Context,
	principal rbac.Principal,
	role domain.Role,
	email string,
) (string, domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Only admins and managers may invite.
	if err := rbac.Authorize(principal, rbac.OpIssueInvite); err != nil {
		return "", domain.Invite{}, err
	}

	// 2. Invites never grant admin.
	if !role.Invitable() {
		log.Warn("attempted to issue invite with invalid role",
			slog.String("role", role.String()),
			slog.String("org_id", principal.OrgID),
		)
		return "", domain.Invite{}, ErrInvalidInviteRole
	}

	// 3. Generate a code and store its fingerprint. A fingerprint
	// collision with a live code is vanishingly unlikely at this
	// entropy, but the unique index catches it; retry once.
	for attempt := 0; attempt < 2; attempt++ {
		code, err := cryptox.GenerateInviteCode()
		if err != nil {
			return "", domain.Invite{}, err
		}

		inv := domain.Invite{
			ID:        idx.New().String(),
			CodeHash:  cryptox.FingerprintToken(code),
			OrgID:     principal.OrgID,
			Role:      role,
			Email:     email,
			CreatedBy: principal.UserID,
		}

		err = s.Store.Invites().CreateInvite(ctx, inv)
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("invite code fingerprint collision, regenerating")
			continue
		}
		if err != nil {
			log.Error("failed to create invite", slog.Any("error", err))
			return "", domain.Invite{}, err
		}

		log.Debug("invite issued",
			slog.String("invite_id", inv.ID),
			slog.String("org_id", inv.OrgID),
			slog.String("role", role.String()),
		)
		return code, inv, nil
	}

	return "", domain.Invite{}, errors.New("could not generate a unique invite code")
}

// Redeem consumes an invite code exactly once and returns the
// (organization, role) pair it grants. Safe under concurrency: the
// store's remove-if-present primitive lets at most one caller win.
func (s *InviteService) Redeem(ctx context.Context, code string) (domain.Invite, error) {
	return redeemInvite(ctx, s.Store, code)
}

// redeemInvite is shared with AuthService, which redeems inside the
// same transaction that creates the new member.
func redeemInvite(ctx context.Context, st store.Store, code string) (domain.Invite, error) {
	if code == "" {
		return domain.Invite{}, ErrInvalidInvite
	}

	inv, err := st.Invites().ConsumeInviteByCodeHash(ctx, cryptox.FingerprintToken(code))
	if errors.Is(err, store.ErrNotFound) {
		return domain.Invite{}, ErrInvalidInvite
	}
	if err != nil {
		return domain.Invite{}, err
	}
	return inv, nil
}
