package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
	"github.com/taskdeck/taskdeck/pkg/idx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 6

type AuthService struct {
	Store store.Store
}

// Register creates a new user account. With an invite code the user
// joins the issuing organization with the invited role; the code is
// consumed and the member created in one transaction, so a failed
// registration never burns the code.
func (s *AuthService) Register(
	ctx context.Context,
	name, email, password, inviteCode string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if name == "" || email == "" || password == "" {
		return domain.User{}, ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return domain.User{}, ErrWeakPassword
	}

	// 2. Hash the password before opening a transaction; argon2 is the
	// slow part.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	newUser := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	// 3. Consume the invite (if any) and create the user atomically.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if inviteCode != "" {
			inv, err := redeemInvite(ctx, tx, inviteCode)
			if err != nil {
				return err
			}
			newUser.Role = inv.Role
			newUser.OrgID = inv.OrgID
		}

		if err := tx.Users().CreateUser(ctx, newUser); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInvite) || errors.Is(err, ErrEmailTaken) {
			log.Warn("registration rejected", slog.Any("reason", err))
		} else {
			log.Error("registration failed", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", newUser.ID),
		slog.Bool("via_invite", inviteCode != ""),
		slog.String("org_id", newUser.OrgID),
	)
	return newUser, nil
}

// Login verifies credentials and returns the user. Lookup and password
// failures are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return domain.User{}, ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login failed", slog.String("user_id", user.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	log.Debug("login succeeded", slog.String("user_id", user.ID))
	return user, nil
}
