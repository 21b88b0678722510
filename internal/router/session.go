package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
)

const SessionName = "livepoll_session"

// NewSessionStore builds the cookie store used for login sessions. secure
// marks the cookie HTTPS-only; plain-HTTP deployments must pass false or the
// browser never sends it back.
func NewSessionStore(secret string, secure bool) sessions.Store {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
