package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/rbac"
)

func TestUserList(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	admin, _, _ := foundOrg(t, st, "Acme", "founder@example.com")
	manager, _ := joinOrg(t, st, admin, domain.RoleManager, "Mia", "mia@example.com")
	member, _ := joinOrg(t, st, admin, domain.RoleMember, "Max", "max@example.com")

	t.Run("admins and managers list members", func(t *testing.T) {
		members, err := svc.List(ctx, admin)
		require.NoError(t, err)
		require.Len(t, members, 3)

		_, err = svc.List(ctx, manager)
		require.NoError(t, err)
	})

	t.Run("members may not list", func(t *testing.T) {
		_, err := svc.List(ctx, member)
		require.ErrorIs(t, err, rbac.ErrForbidden)
	})

	t.Run("listing never crosses organizations", func(t *testing.T) {
		foreignAdmin, _, _ := foundOrg(t, st, "Globex", "globex@example.com")
		members, err := svc.List(ctx, foreignAdmin)
		require.NoError(t, err)
		require.Len(t, members, 1)
	})
}

func TestUserChangeRole(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	admin, _, _ := foundOrg(t, st, "Acme", "founder@example.com")
	manager, _ := joinOrg(t, st, admin, domain.RoleManager, "Mia", "mia@example.com")
	_, memberUser := joinOrg(t, st, admin, domain.RoleMember, "Max", "max@example.com")

	t.Run("admin promotes a member to manager", func(t *testing.T) {
		updated, err := svc.ChangeRole(ctx, admin, memberUser.ID, domain.RoleManager)
		require.NoError(t, err)
		require.Equal(t, domain.RoleManager, updated.Role)

		fresh, err := st.Users().GetUserByID(ctx, memberUser.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleManager, fresh.Role)
	})

	t.Run("only admins change roles", func(t *testing.T) {
		_, err := svc.ChangeRole(ctx, manager, memberUser.ID, domain.RoleMember)
		require.ErrorIs(t, err, rbac.ErrForbidden)
	})

	t.Run("admin is not an assignable role", func(t *testing.T) {
		_, err := svc.ChangeRole(ctx, admin, memberUser.ID, domain.RoleAdmin)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("unknown roles are rejected", func(t *testing.T) {
		_, err := svc.ChangeRole(ctx, admin, memberUser.ID, domain.Role("owner"))
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("targets in other organizations are not found", func(t *testing.T) {
		foreignAdmin, _, _ := foundOrg(t, st, "Globex", "globex@example.com")
		_, err := svc.ChangeRole(ctx, foreignAdmin, memberUser.ID, domain.RoleMember)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserDelete(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	admin, _, _ := foundOrg(t, st, "Acme", "founder@example.com")
	manager, _ := joinOrg(t, st, admin, domain.RoleManager, "Mia", "mia@example.com")
	_, memberUser := joinOrg(t, st, admin, domain.RoleMember, "Max", "max@example.com")

	t.Run("only admins delete members", func(t *testing.T) {
		_, err := svc.Delete(ctx, manager, memberUser.ID)
		require.ErrorIs(t, err, rbac.ErrForbidden)
	})

	t.Run("cross-organization targets are not found", func(t *testing.T) {
		foreignAdmin, _, _ := foundOrg(t, st, "Globex", "globex@example.com")
		_, err := svc.Delete(ctx, foreignAdmin, memberUser.ID)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("admin removes a member", func(t *testing.T) {
		deleted, err := svc.Delete(ctx, admin, memberUser.ID)
		require.NoError(t, err)
		require.Equal(t, memberUser.ID, deleted.ID)

		_, err = svc.GetByID(ctx, memberUser.ID)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
