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
	ErrOrgNameTaken = errors.New("organization already exists")
	ErrOrgNotFound  = errors.New("organization not found")
)

type OrgService struct {
	Store store.Store
}

// RegisterOrganization founds a new organization: the caller becomes
// its admin and one member invite is minted so the founder can bring
// the first teammate in. This is the only path that grants the admin
// role.
func (s *OrgService) RegisterOrganization(
	ctx context.Context,
	principal rbac.Principal,
	orgName string,
) (domain.Organization, domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Only users without an organization may found one.
	if err := rbac.Authorize(principal, rbac.OpCreateOrganization); err != nil {
		return domain.Organization{}, domain.User{}, "", err
	}
	if orgName == "" {
		return domain.Organization{}, domain.User{}, "", ErrMissingFields
	}

	org := domain.Organization{
		ID:   idx.New().String(),
		Name: orgName,
	}

	code, err := cryptox.GenerateInviteCode()
	if err != nil {
		return domain.Organization{}, domain.User{}, "", err
	}

	// 2. Create the organization, promote the founder and mint the
	// initial invite in one transaction. The unique name index decides
	// concurrent same-name creations.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrOrgNameTaken
			}
			return err
		}

		if err := tx.Users().AttachToOrg(ctx, principal.UserID, org.ID, domain.RoleAdmin); err != nil {
			return err
		}

		return tx.Invites().CreateInvite(ctx, domain.Invite{
			ID:        idx.New().String(),
			CodeHash:  cryptox.FingerprintToken(code),
			OrgID:     org.ID,
			Role:      domain.RoleMember,
			CreatedBy: principal.UserID,
		})
	})
	if err != nil {
		if errors.Is(err, ErrOrgNameTaken) {
			log.Warn("organization name taken", slog.String("name", orgName))
		} else {
			log.Error("organization registration failed", slog.Any("error", err))
		}
		return domain.Organization{}, domain.User{}, "", err
	}

	user, err := s.Store.Users().GetUserByID(ctx, principal.UserID)
	if err != nil {
		return domain.Organization{}, domain.User{}, "", err
	}

	log.Info("organization registered",
		slog.String("org_id", org.ID),
		slog.String("admin_id", user.ID),
	)
	return org, user, code, nil
}

// OrganizationLogin returns the caller's organization together with its
// member list.
func (s *OrgService) OrganizationLogin(
	ctx context.Context,
	principal rbac.Principal,
) (domain.Organization, []domain.User, error) {
	if principal.UserID == "" {
		return domain.Organization{}, nil, rbac.ErrUnauthenticated
	}
	if principal.OrgID == "" {
		return domain.Organization{}, nil, rbac.ErrNoOrganization
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, principal.OrgID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Organization{}, nil, ErrOrgNotFound
	}
	if err != nil {
		return domain.Organization{}, nil, err
	}

	members, err := s.Store.Users().ListByOrg(ctx, org.ID)
	if err != nil {
		return domain.Organization{}, nil, err
	}
	return org, members, nil
}

// GetOrganization returns the caller's organization record.
func (s *OrgService) GetOrganization(
	ctx context.Context,
	principal rbac.Principal,
) (domain.Organization, error) {
	if principal.UserID == "" {
		return domain.Organization{}, rbac.ErrUnauthenticated
	}
	if principal.OrgID == "" {
		return domain.Organization{}, rbac.ErrNoOrganization
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, principal.OrgID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Organization{}, ErrOrgNotFound
	}
	return org, err
}
