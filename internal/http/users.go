package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/pkg/api"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

// handleListUsers godoc
//
//	@Summary	List the organization's members
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}		api.User
//	@Failure	401	{object}	api.MessageResponse
//	@Failure	403	{object}	api.MessageResponse
//	@Security	SessionCookie
//	@Router		/users [get]
func (rt *Router) handleListUsers(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	members, err := rt.Users.List(r.Context(), principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAPIUsers(members))
}

// handleChangeUserRole godoc
//
//	@Summary		Change a member's role
//	@Description	Admin only. Admin itself is not an assignable role.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"user id"
//	@Param			request	body		api.ChangeRoleRequest	true	"new role"
//	@Success		200		{object}	api.UserResponse
//	@Failure		400		{object}	api.MessageResponse
//	@Failure		403		{object}	api.MessageResponse
//	@Failure		404		{object}	api.MessageResponse
//	@Security		SessionCookie
//	@Router			/users/{id}/role [patch]
func (rt *Router) handleChangeUserRole(w http.ResponseWriter, r *http.Request) {
	var req api.ChangeRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	principal := principalFromContext(r.Context())
	user, err := rt.Users.ChangeRole(
		r.Context(),
		principal,
		r.PathValue("id"),
		domain.Role(req.NewRole),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.UserResponse{
		Message: "User role updated successfully",
		User:    toAPIUser(user),
	})
}

// handleDeleteUser godoc
//
//	@Summary	Remove a member from the organization
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"user id"
//	@Success	200	{object}	api.MessageResponse
//	@Failure	403	{object}	api.MessageResponse
//	@Failure	404	{object}	api.MessageResponse
//	@Security	SessionCookie
//	@Router		/users/{id} [delete]
func (rt *Router) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	if _, err := rt.Users.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "User deleted successfully")
}
