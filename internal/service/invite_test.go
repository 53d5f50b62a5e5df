package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/rbac"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
)

func TestInviteIssue(t *testing.T) {
	st := newTestStore(t)
	svc := &InviteService{Store: st}
	ctx := context.Background()

	admin, _, org := foundOrg(t, st, "Acme", "founder@example.com")
	manager, _ := joinOrg(t, st, admin, domain.RoleManager, "Mia", "mia@example.com")
	member, _ := joinOrg(t, st, admin, domain.RoleMember, "Max", "max@example.com")

	t.Run("admins and managers may issue", func(t *testing.T) {
		code, inv, err := svc.Issue(ctx, admin, domain.RoleMember, "")
		require.NoError(t, err)
		require.Len(t, code, cryptox.InviteCodeLength)
		require.Equal(t, org.ID, inv.OrgID)

		_, _, err = svc.Issue(ctx, manager, domain.RoleMember, "new@example.com")
		require.NoError(t, err)
	})

	t.Run("repeated issues with the same parameters stay independent", func(t *testing.T) {
		first, _, err := svc.Issue(ctx, admin, domain.RoleMember, "")
		require.NoError(t, err)
		second, _, err := svc.Issue(ctx, admin, domain.RoleMember, "")
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		inv, err := svc.Redeem(ctx, first)
		require.NoError(t, err)
		require.Equal(t, org.ID, inv.OrgID)
		require.Equal(t, domain.RoleMember, inv.Role)

		// Burning one code leaves the sibling redeemable.
		inv, err = svc.Redeem(ctx, second)
		require.NoError(t, err)
		require.Equal(t, org.ID, inv.OrgID)
		require.Equal(t, domain.RoleMember, inv.Role)
	})

	t.Run("members may not issue", func(t *testing.T) {
		_, _, err := svc.Issue(ctx, member, domain.RoleMember, "")
		require.ErrorIs(t, err, rbac.ErrForbidden)
	})

	t.Run("admin is never an invitable role", func(t *testing.T) {
		_, _, err := svc.Issue(ctx, admin, domain.RoleAdmin, "")
		require.ErrorIs(t, err, ErrInvalidInviteRole)
	})

	t.Run("unknown roles are rejected", func(t *testing.T) {
		_, _, err := svc.Issue(ctx, admin, domain.Role("owner"), "")
		require.ErrorIs(t, err, ErrInvalidInviteRole)
	})

	t.Run("users without an organization may not issue", func(t *testing.T) {
		solo := registerUser(t, st, "Solo", "solo@example.com")
		_, _, err := svc.Issue(ctx, rbac.Principal{UserID: solo.ID}, domain.RoleMember, "")
		require.ErrorIs(t, err, rbac.ErrNoOrganization)
	})
}

func TestInviteRedeemIsSingleUse(t *testing.T) {
	st := newTestStore(t)
	svc := &InviteService{Store: st}
	ctx := context.Background()

	admin, _, org := foundOrg(t, st, "Acme", "founder@example.com")

	code, _, err := svc.Issue(ctx, admin, domain.RoleManager, "")
	require.NoError(t, err)

	inv, err := svc.Redeem(ctx, code)
	require.NoError(t, err)
	require.Equal(t, org.ID, inv.OrgID)
	require.Equal(t, domain.RoleManager, inv.Role)

	// The winning redemption removed the invite; every later attempt
	// sees the same invalid-code error as a code that never existed.
	_, err = svc.Redeem(ctx, code)
	require.ErrorIs(t, err, ErrInvalidInvite)

	_, err = svc.Redeem(ctx, "")
	require.ErrorIs(t, err, ErrInvalidInvite)
}
