package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/pkg/api"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// handleRegister godoc
//
//	@Summary		Register a new user
//	@Description	Creates an account. With an invite code the user joins the issuing organization with the invited role.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.RegisterRequest	true	"registration details"
//	@Success		201		{object}	api.AuthResponse
//	@Failure		400		{object}	api.MessageResponse
//	@Failure		409		{object}	api.MessageResponse
//	@Router			/auth/register [post]
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := rt.Auth.Register(r.Context(), req.Name, req.Email, req.Password, req.InviteCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := rt.Tokens.Mint(user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rt.setSessionCookie(w, token)

	httpx.WriteJSON(w, http.StatusCreated, api.AuthResponse{
		Message: "User registered successfully",
		User:    toAPIUser(user),
	})
}

// handleLogin godoc
//
//	@Summary	Authenticate with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		api.LoginRequest	true	"credentials"
//	@Success	200		{object}	api.AuthResponse
//	@Failure	400		{object}	api.MessageResponse
//	@Router		/auth/login [post]
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := rt.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := rt.Tokens.Mint(user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rt.setSessionCookie(w, token)

	httpx.WriteJSON(w, http.StatusOK, api.AuthResponse{
		Message: "Login successful",
		User:    toAPIUser(user),
	})
}

// handleLogout godoc
//
//	@Summary	End the current session
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	api.MessageResponse
//	@Router		/auth/logout [post]
func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	rt.clearSessionCookie(w)
	httpx.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

// handleCheckAuth godoc
//
//	@Summary	Return the authenticated user
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	api.UserResponse
//	@Failure	401	{object}	api.MessageResponse
//	@Router		/auth/check-auth [get]
func (rt *Router) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	slogx.FromContext(r.Context()).Debug("session checked", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, api.UserResponse{
		Message: "Authenticated",
		User:    toAPIUser(user),
	})
}
