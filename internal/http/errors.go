package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/rbac"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// writeServiceError maps service and rbac errors onto the boundary
// taxonomy: 400 validation, 401 authentication, 403 authorization, 404
// not found (including cross-organization targets, so existence is
// never confirmed across tenants), 409 conflict, 500 everything else.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Validation
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidInvite),
		errors.Is(err, service.ErrInvalidInviteRole),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrNoAssignees),
		errors.Is(err, service.ErrAssigneeNotInOrg),
		errors.Is(err, service.ErrInvalidTaskStatus),
		errors.Is(err, service.ErrInvalidTaskPriority),
		errors.Is(err, service.ErrInvalidTaskCategory),
		errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteMessage(w, http.StatusBadRequest, userMessage(err))

	// Authentication
	case errors.Is(err, rbac.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidToken):
		httpx.WriteMessage(w, http.StatusUnauthorized, "Not authenticated")

	// Authorization
	case errors.Is(err, rbac.ErrForbidden),
		errors.Is(err, rbac.ErrNoOrganization),
		errors.Is(err, service.ErrAssigneeRoleTooHigh),
		errors.Is(err, service.ErrNotAssignedToCaller):
		httpx.WriteMessage(w, http.StatusForbidden, userMessage(err))

	// Not found (also cross-tenant targets)
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOrgNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, userMessage(err))

	// Conflict
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrOrgNameTaken):
		httpx.WriteMessage(w, http.StatusConflict, userMessage(err))

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, "Server error")
	}
}

// userMessage renders the user-facing text for a known service error.
func userMessage(err error) string {
	switch {
	case errors.Is(err, rbac.ErrForbidden):
		return "Forbidden"
	case errors.Is(err, rbac.ErrNoOrganization):
		return "User is not part of any organization"
	default:
		// Service sentinels carry presentable messages already.
		msg := err.Error()
		if msg == "" {
			return "Bad request"
		}
		return strings.ToUpper(msg[:1]) + msg[1:]
	}
}
