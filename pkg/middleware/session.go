package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"printstudio/internal/sessions"
)

// contextSessionKey is where the resolved session state is stored on the
// gin context.
const contextSessionKey = "session"

// SessionMiddleware resolves the session cookie on every request and, when
// valid, attaches the server-side state to the gin context. Requests
// without a usable cookie proceed anonymously.
func SessionMiddleware(svc *sessions.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			state, err := svc.Resolve(c.Request.Context(), token)
			if err == nil && state != nil {
				c.Set(contextSessionKey, state)
			}
		}
		c.Next()
	}
}

// SessionFromContext returns the resolved session state, or nil for
// anonymous requests.
func SessionFromContext(c *gin.Context) *sessions.State {
	if v, ok := c.Get(contextSessionKey); ok {
		if state, ok := v.(*sessions.State); ok {
			return state
		}
	}
	return nil
}

// RequireAdmin rejects requests whose session is missing or not
// authenticated. Browser-shaped requests are redirected to the login page;
// everything else gets a JSON 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := SessionFromContext(c)
		if state != nil && state.Authenticated {
			c.Next()
			return
		}
		if acceptsHTML(c) {
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
}

func acceptsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
