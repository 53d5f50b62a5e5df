package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/rbac"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/drivers/sqlite"
)

// newTestStore opens a private in-memory database per test. The named
// shared-cache DSN keeps every pooled connection on the same database.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"),
	)
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func registerUser(t *testing.T, st store.Store, name, email string) domain.User {
	t.Helper()

	svc := &AuthService{Store: st}
	user, err := svc.Register(context.Background(), name, email, "hunter22", "")
	require.NoError(t, err)
	return user
}

// foundOrg registers a fresh user and has it found an organization,
// returning the admin principal and the initial member invite code.
func foundOrg(t *testing.T, st store.Store, orgName, adminEmail string) (rbac.Principal, string, domain.Organization) {
	t.Helper()

	founder := registerUser(t, st, "Founder", adminEmail)
	svc := &OrgService{Store: st}

	org, admin, code, err := svc.RegisterOrganization(
		context.Background(),
		rbac.Principal{UserID: founder.ID},
		orgName,
	)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)

	return rbac.Principal{UserID: admin.ID, Role: admin.Role, OrgID: admin.OrgID}, code, org
}

// joinOrg issues an invite with the given role and registers a new user
// through it.
func joinOrg(t *testing.T, st store.Store, issuer rbac.Principal, role domain.Role, name, email string) (rbac.Principal, domain.User) {
	t.Helper()

	invites := &InviteService{Store: st}
	code, _, err := invites.Issue(context.Background(), issuer, role, "")
	require.NoError(t, err)

	auth := &AuthService{Store: st}
	user, err := auth.Register(context.Background(), name, email, "hunter22", code)
	require.NoError(t, err)
	require.Equal(t, role, user.Role)

	return rbac.Principal{UserID: user.ID, Role: user.Role, OrgID: user.OrgID}, user
}
