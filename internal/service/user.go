package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/rbac"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

type UserService struct {
	Store store.Store
}

// GetByID is the session layer's unscoped lookup used to resolve the
// principal for a verified token.
func (s *UserService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

// List returns the caller's organization's members. The password hash
// never leaves the service boundary unprojected; handlers serialize the
// api.User view.
func (s *UserService) List(
	ctx context.Context,
	principal rbac.Principal,
) ([]domain.User, error) {
	if err := rbac.Authorize(principal, rbac.OpListUsers); err != nil {
		return nil, err
	}
	return s.Store.Users().ListByOrg(ctx, principal.OrgID)
}

// ChangeRole updates a user's role within the caller's organization.
// Admin is not an assignable target: organization creation is the only
// operation that grants it.
func (s *UserService) ChangeRole(
	ctx context.Context,
	principal rbac.Principal,
	targetID string,
	newRole domain.Role,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Admin capability.
	if err := rbac.Authorize(principal, rbac.OpChangeUserRole); err != nil {
		return domain.User{}, err
	}

	// 2. Target role must be in the assignable set.
	if !rbac.AssignableRoleTarget(newRole) {
		log.Warn("role change rejected",
			slog.String("target_role", newRole.String()),
		)
		return domain.User{}, ErrInvalidRole
	}

	// 3. Target must be in the caller's organization; the scoped query
	// reports cross-org targets as not found.
	target, err := s.Store.Users().GetUserInOrg(ctx, principal.OrgID, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateUserRole(ctx, principal.OrgID, targetID, newRole); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	target.Role = newRole
	log.Info("user role changed",
		slog.String("user_id", targetID),
		slog.String("role", newRole.String()),
		slog.String("changed_by", principal.UserID),
	)
	return target, nil
}

// Delete removes a user from the caller's organization. Admin only.
func (s *UserService) Delete(
	ctx context.Context,
	principal rbac.Principal,
	targetID string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if err := rbac.Authorize(principal, rbac.OpDeleteUser); err != nil {
		return domain.User{}, err
	}

	target, err := s.Store.Users().GetUserInOrg(ctx, principal.OrgID, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := s.Store.Users().DeleteUser(ctx, principal.OrgID, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	log.Info("user deleted",
		slog.String("user_id", targetID),
		slog.String("deleted_by", principal.UserID),
	)
	return target, nil
}
