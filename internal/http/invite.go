package http

import (
	"fmt"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/pkg/api"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

// handleInvite godoc
//
//	@Summary		Issue an invite code
//	@Description	Mints a one-time code that grants membership in the caller's organization with the given role. The code is shown exactly once.
//	@Tags			organizations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.InviteRequest	true	"invite details"
//	@Success		201		{object}	api.InviteResponse
//	@Failure		400		{object}	api.MessageResponse
//	@Failure		403		{object}	api.MessageResponse
//	@Security		SessionCookie
//	@Router			/org/invite [post]
func (rt *Router) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req api.InviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	principal := principalFromContext(r.Context())
	code, inv, err := rt.Invites.Issue(r.Context(), principal, domain.Role(req.Role), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, api.InviteResponse{
		Message:    "Invite created successfully",
		InviteLink: fmt.Sprintf("%s/register?inviteCode=%s", rt.FrontendURL, code),
		Code:       code,
		Role:       inv.Role.String(),
	})
}
