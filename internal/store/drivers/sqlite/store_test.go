package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"),
	)
	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedOrg(t *testing.T, st *Store, name string) domain.Organization {
	t.Helper()
	org := domain.Organization{ID: idx.New().String(), Name: name}
	require.NoError(t, st.Organizations().CreateOrganization(context.Background(), org))
	return org
}

func seedUser(t *testing.T, st *Store, email, orgID string, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		OrgID:        orgID,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestScopeGuard(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Every organization-scoped read must refuse to run unscoped.
	_, err := st.Users().ListByOrg(ctx, "")
	require.ErrorIs(t, err, store.ErrMissingScope)

	_, err = st.Users().GetUserInOrg(ctx, "", "some-id")
	require.ErrorIs(t, err, store.ErrMissingScope)

	_, err = st.Tasks().ListByOrg(ctx, "")
	require.ErrorIs(t, err, store.ErrMissingScope)

	_, err = st.Tasks().GetTask(ctx, "", "some-id")
	require.ErrorIs(t, err, store.ErrMissingScope)

	_, err = st.Invites().ListByOrg(ctx, "")
	require.ErrorIs(t, err, store.ErrMissingScope)

	require.ErrorIs(t, st.Users().DeleteUser(ctx, "", "some-id"), store.ErrMissingScope)
	require.ErrorIs(t, st.Tasks().DeleteTask(ctx, "", "some-id"), store.ErrMissingScope)
}

func TestUserUniqueness(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedUser(t, st, "alice@example.com", "", domain.RoleNone)

	dup := domain.User{
		ID:           idx.New().String(),
		Name:         "Alice 2",
		Email:        "ALICE@EXAMPLE.COM",
		PasswordHash: "x",
	}
	err := st.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUserEmailLookupIsCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "alice@example.com", "", domain.RoleNone)

	got, err := st.Users().GetUserByEmail(ctx, "Alice@Example.COM")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestOrganizationNameUniqueness(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seedOrg(t, st, "Acme")
	err := st.Organizations().CreateOrganization(ctx, domain.Organization{
		ID:   idx.New().String(),
		Name: "Acme",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserInOrgScoping(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	acme := seedOrg(t, st, "Acme")
	globex := seedOrg(t, st, "Globex")
	u := seedUser(t, st, "alice@example.com", acme.ID, domain.RoleMember)

	got, err := st.Users().GetUserInOrg(ctx, acme.ID, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	// The same id through the wrong organization is invisible.
	_, err = st.Users().GetUserInOrg(ctx, globex.ID, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListByIDsInOrg(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	acme := seedOrg(t, st, "Acme")
	globex := seedOrg(t, st, "Globex")
	a := seedUser(t, st, "a@example.com", acme.ID, domain.RoleMember)
	b := seedUser(t, st, "b@example.com", acme.ID, domain.RoleMember)
	foreign := seedUser(t, st, "c@example.com", globex.ID, domain.RoleMember)

	users, err := st.Users().ListByIDsInOrg(ctx, acme.ID, []string{a.ID, b.ID, foreign.ID})
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = st.Users().ListByIDsInOrg(ctx, acme.ID, nil)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestConsumeInviteIsSingleShot(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, st, "Acme")
	admin := seedUser(t, st, "admin@example.com", org.ID, domain.RoleAdmin)

	inv := domain.Invite{
		ID:        idx.New().String(),
		CodeHash:  "fingerprint-1",
		OrgID:     org.ID,
		Role:      domain.RoleMember,
		CreatedBy: admin.ID,
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, inv))

	got, err := st.Invites().ConsumeInviteByCodeHash(ctx, "fingerprint-1")
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
	require.Equal(t, domain.RoleMember, got.Role)

	_, err = st.Invites().ConsumeInviteByCodeHash(ctx, "fingerprint-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestConcurrentConsumeHasOneWinner(t *testing.T) {
	// Separate DSN with a busy timeout so contending connections wait
	// for the row decision instead of failing fast.
	dsn := "file:TestConcurrentConsumeHasOneWinner?mode=memory&cache=shared&_pragma=busy_timeout(10000)"
	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	ctx := context.Background()
	org := seedOrg(t, st, "Acme")
	admin := seedUser(t, st, "admin@example.com", org.ID, domain.RoleAdmin)

	require.NoError(t, st.Invites().CreateInvite(ctx, domain.Invite{
		ID:        idx.New().String(),
		CodeHash:  "contested-fingerprint",
		OrgID:     org.ID,
		Role:      domain.RoleMember,
		CreatedBy: admin.ID,
	}))

	const redeemers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		wins int
	)
	for i := 0; i < redeemers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Invites().ConsumeInviteByCodeHash(ctx, "contested-fingerprint")

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else {
				errs = append(errs, err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins, "exactly one redemption may observe the invite")
	require.Len(t, errs, redeemers-1)
	for _, err := range errs {
		require.ErrorIs(t, err, store.ErrNotFound)
	}
}

func TestInviteFingerprintUniqueness(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, st, "Acme")
	admin := seedUser(t, st, "admin@example.com", org.ID, domain.RoleAdmin)

	first := domain.Invite{
		ID:        idx.New().String(),
		CodeHash:  "same-fingerprint",
		OrgID:     org.ID,
		Role:      domain.RoleMember,
		CreatedBy: admin.ID,
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, first))

	second := first
	second.ID = idx.New().String()
	err := st.Invites().CreateInvite(ctx, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, st, "Acme")
	sentinel := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		u := domain.User{
			ID:           idx.New().String(),
			Name:         "Ghost",
			Email:        "ghost@example.com",
			PasswordHash: "x",
			Role:         domain.RoleMember,
			OrgID:        org.ID,
		}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = st.Users().GetUserByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTaskRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	org := seedOrg(t, st, "Acme")
	admin := seedUser(t, st, "admin@example.com", org.ID, domain.RoleAdmin)
	member := seedUser(t, st, "member@example.com", org.ID, domain.RoleMember)

	task := domain.Task{
		ID:         idx.New().String(),
		Title:      "Ship it",
		Status:     domain.StatusTodo,
		Priority:   domain.PriorityHigh,
		Category:   domain.CategoryBug,
		AssignedTo: []string{member.ID},
		OrgID:      org.ID,
		CreatedBy:  admin.ID,
	}
	require.NoError(t, st.Tasks().CreateTask(ctx, task))

	got, err := st.Tasks().GetTask(ctx, org.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, task.Title, got.Title)
	require.Equal(t, []string{member.ID}, got.AssignedTo)

	// Invisible through another organization.
	other := seedOrg(t, st, "Globex")
	_, err = st.Tasks().GetTask(ctx, other.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Tasks().UpdateTaskStatus(ctx, org.ID, task.ID, domain.StatusCompleted))
	got, err = st.Tasks().GetTask(ctx, org.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, got.Status)

	require.NoError(t, st.Tasks().DeleteTask(ctx, org.ID, task.ID))
	_, err = st.Tasks().GetTask(ctx, org.ID, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
