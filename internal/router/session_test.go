package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, secure bool) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(SessionName, NewSessionStore("test-secret", secure)))
	r.GET("/", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set("user_id", "u1")
		require.NoError(t, s.Save())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionStoreCookieFlags(t *testing.T) {
	plain := sessionCookie(t, false)
	assert.Equal(t, SessionName, plain.Name)
	assert.False(t, plain.Secure)
	assert.True(t, plain.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, plain.SameSite)
	assert.Equal(t, "/", plain.Path)

	secure := sessionCookie(t, true)
	assert.True(t, secure.Secure)
}
