package http

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/rbac"
)

type ctxKey struct{}

func contextWithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the authenticated user attached by the
// session middleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(domain.User)
	return u, ok
}

// principalFromContext builds the rbac principal for the request, or a
// zero principal when unauthenticated.
func principalFromContext(ctx context.Context) rbac.Principal {
	u, ok := UserFromContext(ctx)
	if !ok {
		return rbac.Principal{}
	}
	return rbac.Principal{UserID: u.ID, Role: u.Role, OrgID: u.OrgID}
}
