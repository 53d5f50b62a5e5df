package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// sessionCookieName is the transport cookie carrying the session token.
const sessionCookieName = "token"

// SessionMiddleware verifies the session token (cookie or bearer
// header), resolves the user behind it and attaches the principal to
// the request context. Requests without a valid session are rejected
// with 401 before reaching a handler.
func SessionMiddleware(
	tokens *service.TokenService,
	users *service.UserService,
) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := sessionTokenFromRequest(r)
			if raw == "" {
				httpx.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				log.Warn("session token rejected", "err", err)
				httpx.WriteMessage(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			user, err := users.GetByID(ctx, userID)
			if err != nil {
				httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid token, user not found")
				return
			}

			ctx = contextWithUser(ctx, user)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	return ""
}
