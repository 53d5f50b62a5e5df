package store

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrMissingScope is returned when an organization-scoped query is
	// issued without an organization id. That is a programming error in
	// the caller and must fail loudly rather than return unscoped data.
	ErrMissingScope = errors.New("store: missing organization scope")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Organizations() Organizations
	Invites() Invites
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back if fn
	// returns an error, committed otherwise. This is the recommended
	// way to run multi-step mutations that must be atomic (invite
	// redemption, organization founding).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id, regardless of organization.
	// Only the session layer may use this unscoped lookup.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via
	// ULID). Returns ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserInOrg returns a user only if it belongs to orgID.
	GetUserInOrg(ctx context.Context, orgID, userID string) (domain.User, error)

	// ListByOrg returns all members of an organization.
	ListByOrg(ctx context.Context, orgID string) ([]domain.User, error)

	// ListByIDsInOrg returns the subset of ids that belong to orgID.
	ListByIDsInOrg(ctx context.Context, orgID string, ids []string) ([]domain.User, error)

	// AttachToOrg sets role and org_id together (founding or joining).
	AttachToOrg(ctx context.Context, userID, orgID string, role domain.Role) error

	// UpdateUserRole changes the role of a user within orgID.
	UpdateUserRole(ctx context.Context, orgID, userID string, role domain.Role) error

	// DeleteUser removes a user within orgID.
	DeleteUser(ctx context.Context, orgID, userID string) error
}

type Organizations interface {
	// CreateOrganization inserts a new organization. Returns
	// ErrAlreadyExists when the name is taken; the unique index is the
	// arbiter under concurrent creation.
	CreateOrganization(ctx context.Context, o domain.Organization) error

	// GetOrganizationByID fetches an organization by id.
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)
}

type Invites interface {
	// CreateInvite writes a new invite (code_hash is the SHA-256
	// fingerprint of the opaque code). Returns ErrAlreadyExists on a
	// fingerprint collision with a live code.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// ConsumeInviteByCodeHash atomically removes the invite matching
	// the fingerprint and returns it. The remove-if-present primitive
	// guarantees that of any number of concurrent redemptions exactly
	// one succeeds; the rest get ErrNotFound.
	ConsumeInviteByCodeHash(ctx context.Context, codeHash string) (domain.Invite, error)

	// ListByOrg returns an organization's outstanding invites, oldest
	// first.
	ListByOrg(ctx context.Context, orgID string) ([]domain.Invite, error)
}

type Tasks interface {
	// CreateTask inserts a task and its assignee set.
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTask returns a task only if it belongs to orgID.
	GetTask(ctx context.Context, orgID, taskID string) (domain.Task, error)

	// ListByOrg returns all tasks of an organization, newest first.
	ListByOrg(ctx context.Context, orgID string) ([]domain.Task, error)

	// UpdateTaskStatus sets the status of a task within orgID.
	UpdateTaskStatus(ctx context.Context, orgID, taskID string, status domain.TaskStatus) error

	// DeleteTask removes a task within orgID, cascading to assignees.
	DeleteTask(ctx context.Context, orgID, taskID string) error
}
