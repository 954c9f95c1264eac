// Package handlers wires the HTTP surface: the public marketing pages and
// the admin panel that edits them.
package handlers

import (
	"github.com/gin-gonic/gin"

	"printstudio/internal/config"
	"printstudio/internal/drafts"
	"printstudio/internal/sessions"
	"printstudio/internal/settings"
	"printstudio/internal/uploads"
	"printstudio/pkg/middleware"
)

// Handler carries the services the HTTP layer composes.
type Handler struct {
	Settings *settings.Service
	Sessions *sessions.Service
	Drafts   *drafts.Manager
	Uploads  uploads.Sink
	Cookie   config.SessionConfig
}

func New(st *settings.Service, se *sessions.Service, dm *drafts.Manager, sink uploads.Sink, cookie config.SessionConfig) *Handler {
	return &Handler{Settings: st, Sessions: se, Drafts: dm, Uploads: sink, Cookie: cookie}
}

// Register attaches all routes. loginLimiter guards the credential check;
// pass nil to leave login unthrottled (tests do).
func (h *Handler) Register(r *gin.Engine, loginLimiter gin.HandlerFunc) {
	r.Use(middleware.SessionMiddleware(h.Sessions, h.Cookie.CookieName))

	r.GET("/", h.Page("home"))
	r.GET("/services", h.Page("services"))
	r.GET("/contact", h.Page("contact"))
	r.GET("/store", h.StorePage)
	r.GET("/uploads/:filename", h.ServeUpload)

	r.GET("/admin/login", h.LoginPage)
	if loginLimiter != nil {
		r.POST("/admin/login", loginLimiter, h.Login)
	} else {
		r.POST("/admin/login", h.Login)
	}

	admin := r.Group("/admin", middleware.RequireAdmin())
	admin.GET("", h.Dashboard)
	admin.POST("/logout", h.Logout)
	admin.POST("/edit", h.EnterEditMode)
	admin.POST("/pages/:page", h.ApplyEdit)
	admin.POST("/publish", h.Publish)
	admin.POST("/discard", h.Discard)
	admin.POST("/uploads", h.Upload)
}

// setSessionCookie writes the signed session token. The cookie is HTTP-only
// and scoped to the whole site.
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.Cookie.TTL.Seconds())
	c.SetCookie(h.Cookie.CookieName, token, maxAge, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.Cookie.CookieName, "", -1, "/", "", false, true)
}
