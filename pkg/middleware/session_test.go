package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"printstudio/internal/sessions"
)

func newSessionService(t *testing.T) *sessions.Service {
	t.Helper()
	return sessions.NewService(sessions.NewMemoryRepository(), "test-secret", time.Hour)
}

func sessionRouter(svc *sessions.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(svc, "ps_session"))
	r.GET("/whoami", func(c *gin.Context) {
		state := SessionFromContext(c)
		if state == nil {
			c.JSON(http.StatusOK, gin.H{"session": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": state.ID, "authenticated": state.Authenticated})
	})
	admin := r.Group("/admin", RequireAdmin())
	admin.GET("/dashboard", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestSessionMiddlewareAttachesState(t *testing.T) {
	svc := newSessionService(t)
	state, token, err := svc.Begin(context.Background())
	require.NoError(t, err)
	state.Authenticated = true
	require.NoError(t, svc.Save(context.Background(), state))

	r := sessionRouter(svc)
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "ps_session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), state.ID)
}

func TestSessionMiddlewareIgnoresBadToken(t *testing.T) {
	r := sessionRouter(newSessionService(t))
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "ps_session", Value: "not-a-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"session":null`)
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	r := sessionRouter(newSessionService(t))
	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRedirectsBrowsers(t *testing.T) {
	r := sessionRouter(newSessionService(t))
	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestRequireAdminRejectsUnauthenticatedSession(t *testing.T) {
	svc := newSessionService(t)
	_, token, err := svc.Begin(context.Background())
	require.NoError(t, err)

	r := sessionRouter(svc)
	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "ps_session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminAllowsAuthenticated(t *testing.T) {
	svc := newSessionService(t)
	state, token, err := svc.Begin(context.Background())
	require.NoError(t, err)
	state.Authenticated = true
	require.NoError(t, svc.Save(context.Background(), state))

	r := sessionRouter(svc)
	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "ps_session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
