package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := Principal{UserID: "u1", Role: domain.RoleAdmin, OrgID: "org1"}
	manager := Principal{UserID: "u2", Role: domain.RoleManager, OrgID: "org1"}
	member := Principal{UserID: "u3", Role: domain.RoleMember, OrgID: "org1"}
	solo := Principal{UserID: "u4"}

	t.Run("unauthenticated principals are rejected first", func(t *testing.T) {
		require.ErrorIs(t, Authorize(Principal{}, OpListTasks), ErrUnauthenticated)
		require.ErrorIs(t, Authorize(Principal{}, OpCreateOrganization), ErrUnauthenticated)
	})

	t.Run("organization creation is reserved for users without one", func(t *testing.T) {
		require.NoError(t, Authorize(solo, OpCreateOrganization))
		require.ErrorIs(t, Authorize(admin, OpCreateOrganization), ErrForbidden)
		require.ErrorIs(t, Authorize(member, OpCreateOrganization), ErrForbidden)
	})

	t.Run("everything else requires an organization", func(t *testing.T) {
		require.ErrorIs(t, Authorize(solo, OpListTasks), ErrNoOrganization)
		require.ErrorIs(t, Authorize(solo, OpIssueInvite), ErrNoOrganization)
	})

	t.Run("invites are admin and manager only", func(t *testing.T) {
		require.NoError(t, Authorize(admin, OpIssueInvite))
		require.NoError(t, Authorize(manager, OpIssueInvite))
		require.ErrorIs(t, Authorize(member, OpIssueInvite), ErrForbidden)
	})

	t.Run("task creation is admin and manager only", func(t *testing.T) {
		require.NoError(t, Authorize(admin, OpCreateTask))
		require.NoError(t, Authorize(manager, OpCreateTask))
		require.ErrorIs(t, Authorize(member, OpCreateTask), ErrForbidden)
	})

	t.Run("all roles may list and update tasks", func(t *testing.T) {
		for _, p := range []Principal{admin, manager, member} {
			require.NoError(t, Authorize(p, OpListTasks))
			require.NoError(t, Authorize(p, OpUpdateTaskStatus))
		}
	})

	t.Run("destructive and role operations are admin only", func(t *testing.T) {
		for _, op := range []Operation{OpDeleteTask, OpChangeUserRole, OpDeleteUser} {
			require.NoError(t, Authorize(admin, op))
			require.ErrorIs(t, Authorize(manager, op), ErrForbidden)
			require.ErrorIs(t, Authorize(member, op), ErrForbidden)
		}
	})

	t.Run("member listing is admin and manager only", func(t *testing.T) {
		require.NoError(t, Authorize(admin, OpListUsers))
		require.NoError(t, Authorize(manager, OpListUsers))
		require.ErrorIs(t, Authorize(member, OpListUsers), ErrForbidden)
	})
}

func TestCanAssign(t *testing.T) {
	t.Parallel()

	t.Run("admins assign any role", func(t *testing.T) {
		require.True(t, CanAssign(domain.RoleAdmin, domain.RoleAdmin))
		require.True(t, CanAssign(domain.RoleAdmin, domain.RoleManager))
		require.True(t, CanAssign(domain.RoleAdmin, domain.RoleMember))
	})

	t.Run("managers assign members only", func(t *testing.T) {
		require.True(t, CanAssign(domain.RoleManager, domain.RoleMember))
		require.False(t, CanAssign(domain.RoleManager, domain.RoleManager))
		require.False(t, CanAssign(domain.RoleManager, domain.RoleAdmin))
	})

	t.Run("members assign nobody", func(t *testing.T) {
		require.False(t, CanAssign(domain.RoleMember, domain.RoleMember))
	})
}

func TestCanUpdateTaskStatus(t *testing.T) {
	t.Parallel()

	task := domain.Task{ID: "t1", AssignedTo: []string{"u3"}}

	t.Run("admins and managers update any task", func(t *testing.T) {
		require.True(t, CanUpdateTaskStatus(Principal{UserID: "u1", Role: domain.RoleAdmin}, task))
		require.True(t, CanUpdateTaskStatus(Principal{UserID: "u2", Role: domain.RoleManager}, task))
	})

	t.Run("members update only their own tasks", func(t *testing.T) {
		require.True(t, CanUpdateTaskStatus(Principal{UserID: "u3", Role: domain.RoleMember}, task))
		require.False(t, CanUpdateTaskStatus(Principal{UserID: "u9", Role: domain.RoleMember}, task))
	})
}

func TestAssignableRoleTarget(t *testing.T) {
	t.Parallel()

	require.True(t, AssignableRoleTarget(domain.RoleManager))
	require.True(t, AssignableRoleTarget(domain.RoleMember))

	// Founding an organization is the only path to admin.
	require.False(t, AssignableRoleTarget(domain.RoleAdmin))
	require.False(t, AssignableRoleTarget(domain.RoleNone))
	require.False(t, AssignableRoleTarget(domain.Role("owner")))
}
