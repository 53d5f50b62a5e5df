package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/pkg/api"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

// handleOrganizationRegister godoc
//
//	@Summary		Found a new organization
//	@Description	The caller becomes the organization's admin and receives an initial member invite code.
//	@Tags			organizations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.OrganizationRegisterRequest	true	"organization details"
//	@Success		201		{object}	api.OrganizationAuthResponse
//	@Failure		400		{object}	api.MessageResponse
//	@Failure		403		{object}	api.MessageResponse
//	@Failure		409		{object}	api.MessageResponse
//	@Security		SessionCookie
//	@Router			/auth/organizationRegister [post]
func (rt *Router) handleOrganizationRegister(w http.ResponseWriter, r *http.Request) {
	var req api.OrganizationRegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	principal := principalFromContext(r.Context())
	org, user, inviteCode, err := rt.Orgs.RegisterOrganization(r.Context(), principal, req.OrgName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, api.OrganizationAuthResponse{
		Message:      "Organization registered successfully",
		Organization: toAPIOrganization(org, []domain.User{user}),
		User:         toAPIUser(user),
		InviteCode:   inviteCode,
	})
}

// handleOrganizationLogin godoc
//
//	@Summary	Load the caller's organization with its member list
//	@Tags		organizations
//	@Produce	json
//	@Success	200	{object}	api.OrganizationAuthResponse
//	@Failure	401	{object}	api.MessageResponse
//	@Failure	403	{object}	api.MessageResponse
//	@Security	SessionCookie
//	@Router		/auth/organizationLogin [post]
func (rt *Router) handleOrganizationLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := principalFromContext(ctx)

	org, members, err := rt.Orgs.OrganizationLogin(ctx, principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, _ := UserFromContext(ctx)
	httpx.WriteJSON(w, http.StatusOK, api.OrganizationAuthResponse{
		Message:      "Organization login successful",
		Organization: toAPIOrganization(org, members),
		User:         toAPIUser(user),
	})
}

// handleOrganizationDetails godoc
//
//	@Summary	Return the caller's organization
//	@Tags		organizations
//	@Produce	json
//	@Success	200	{object}	api.OrganizationDetailsResponse
//	@Failure	401	{object}	api.MessageResponse
//	@Failure	404	{object}	api.MessageResponse
//	@Security	SessionCookie
//	@Router		/organizations/me [get]
func (rt *Router) handleOrganizationDetails(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	org, err := rt.Orgs.GetOrganization(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.OrganizationDetailsResponse{Name: org.Name})
}
