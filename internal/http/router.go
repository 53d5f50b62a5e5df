// Package http wires the taskdeck service layer to its JSON boundary:
// routing, session middleware, request validation and the error
// taxonomy live here.
package http

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

// Router owns the HTTP boundary. Construct it with the services it
// fronts and mount Handler() on a server.
type Router struct {
	Auth    *service.AuthService
	Orgs    *service.OrgService
	Invites *service.InviteService
	Tasks   *service.TaskService
	Users   *service.UserService
	Tokens  *service.TokenService

	Store store.Store // readiness probe only

	// FrontendURL is the base used to render invite links.
	FrontendURL  string
	CookieSecure bool
	Version      string

	started time.Time
}

// Handler builds the route table. Credential endpoints are limited per
// IP; everything behind a session is limited per user.
func (rt *Router) Handler() http.Handler {
	rt.started = time.Now()

	mux := http.NewServeMux()

	session := SessionMiddleware(rt.Tokens, rt.Users)
	ipStrict := httpx.RateLimitByIP(httpx.StrictLimit)
	userModerate := httpx.RateLimitByUser(httpx.ModerateLimit)
	userLenient := httpx.RateLimitByUser(httpx.LenientLimit)

	public := func(h http.HandlerFunc, mws ...httpx.Middleware) http.Handler {
		return httpx.Chain(h, mws...)
	}
	authed := func(h http.HandlerFunc, mws ...httpx.Middleware) http.Handler {
		return httpx.Chain(h, append([]httpx.Middleware{session}, mws...)...)
	}

	// Authentication.
	mux.Handle("POST /api/auth/register", public(rt.handleRegister, ipStrict))
	mux.Handle("POST /api/auth/login", public(rt.handleLogin, ipStrict))
	mux.Handle("POST /api/auth/logout", public(rt.handleLogout))
	mux.Handle("GET /api/auth/check-auth", authed(rt.handleCheckAuth, userLenient))

	// Organization lifecycle.
	mux.Handle("POST /api/auth/organizationRegister", authed(rt.handleOrganizationRegister, userModerate))
	mux.Handle("POST /api/auth/organizationLogin", authed(rt.handleOrganizationLogin, userLenient))
	mux.Handle("GET /api/organizations/me", authed(rt.handleOrganizationDetails, userLenient))
	mux.Handle("POST /api/org/invite", authed(rt.handleInvite, userModerate))

	// Tasks.
	mux.Handle("POST /api/tasks", authed(rt.handleCreateTask, userModerate))
	mux.Handle("GET /api/tasks", authed(rt.handleListTasks, userLenient))
	mux.Handle("PATCH /api/tasks/{id}/status", authed(rt.handleUpdateTaskStatus, userModerate))
	mux.Handle("DELETE /api/tasks/{id}", authed(rt.handleDeleteTask, userModerate))

	// Members.
	mux.Handle("GET /api/users", authed(rt.handleListUsers, userLenient))
	mux.Handle("PATCH /api/users/{id}/role", authed(rt.handleChangeUserRole, userModerate))
	mux.Handle("DELETE /api/users/{id}", authed(rt.handleDeleteUser, userModerate))

	// Operational surface.
	mux.HandleFunc("GET /livez", rt.handleLivez)
	mux.HandleFunc("GET /readyz", rt.handleReadyz)
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	return mux
}
