package http

import (
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/service"
)

// setSessionCookie attaches the session token to the response. HttpOnly
// keeps it away from scripts; Secure is configurable so local
// development over plain HTTP still works.
func (rt *Router) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(service.DefaultSessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   rt.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (rt *Router) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   rt.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
