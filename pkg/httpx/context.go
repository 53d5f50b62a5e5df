package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user id; set by the session
// middleware and read back by rate limiting and handlers.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
