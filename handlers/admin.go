package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"printstudio/internal/drafts"
	"printstudio/internal/forms"
	"printstudio/internal/uploads"
	"printstudio/pkg/logger"
	"printstudio/pkg/metrics"
	"printstudio/pkg/middleware"
)

// LoginPage serves the login form payload. Visiting it also drops any
// authenticated flag on the current session, so an admin landing back on
// the login page is signed out. Edit state and the draft survive; logging
// back in resumes the draft.
func (h *Handler) LoginPage(c *gin.Context) {
	state := middleware.SessionFromContext(c)
	if state != nil && state.Authenticated {
		state.Authenticated = false
		if err := h.Sessions.Save(c.Request.Context(), state); err != nil {
			logger.Errorf("save session %s: %v", state.ID, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

// Login checks the submitted password and marks the session authenticated.
func (h *Handler) Login(c *gin.Context) {
	password := c.PostForm("password")
	ok, err := h.Settings.VerifyAdminPassword(c.Request.Context(), password)
	if err != nil {
		logger.Errorf("verify admin password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login unavailable"})
		return
	}
	if !ok {
		metrics.AdminLogins.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	state := middleware.SessionFromContext(c)
	if state == nil {
		fresh, token, err := h.Sessions.Begin(c.Request.Context())
		if err != nil {
			logger.Errorf("begin session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login unavailable"})
			return
		}
		state = fresh
		h.setSessionCookie(c, token)
	}
	state.Authenticated = true
	if err := h.Sessions.Save(c.Request.Context(), state); err != nil {
		logger.Errorf("save session %s: %v", state.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login unavailable"})
		return
	}
	metrics.AdminLogins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout drops the whole session server-side and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	state := middleware.SessionFromContext(c)
	if state != nil {
		if err := h.Sessions.Delete(c.Request.Context(), state.ID); err != nil {
			logger.Errorf("delete session %s: %v", state.ID, err)
		}
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Dashboard returns the admin overview: the effective content, the stored
// media files and the password state.
func (h *Handler) Dashboard(c *gin.Context) {
	state := middleware.SessionFromContext(c)
	doc, err := h.Drafts.EffectiveContent(c.Request.Context(), state)
	if err != nil {
		logger.Errorf("load content for dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "content unavailable"})
		return
	}
	files, err := h.Uploads.List(c.Request.Context())
	if err != nil {
		logger.Warnf("list uploads: %v", err)
		files = []uploads.File{}
	}
	passwordState, err := h.Settings.PasswordState(c.Request.Context())
	if err != nil {
		logger.Errorf("password state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settings unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"content":        doc,
		"uploads":        files,
		"password_state": passwordState,
		"editing":        state.Editing,
	})
}

// EnterEditMode starts (or resumes) the session's draft.
func (h *Handler) EnterEditMode(c *gin.Context) {
	state := middleware.SessionFromContext(c)
	if err := h.Drafts.EnterEditMode(c.Request.Context(), state); err != nil {
		logger.Errorf("enter edit mode: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start editing"})
		return
	}
	if err := h.Sessions.Save(c.Request.Context(), state); err != nil {
		logger.Errorf("save session %s: %v", state.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start editing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"editing": true, "draft_id": state.DraftID})
}

// ApplyEdit maps one page's form submission into the draft. A submitted
// admin_password takes effect immediately, outside the draft.
func (h *Handler) ApplyEdit(c *gin.Context) {
	page := c.Param("page")
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form"})
		return
	}
	form := c.Request.PostForm

	state := middleware.SessionFromContext(c)
	if err := h.Drafts.ApplyEdit(c.Request.Context(), state, page, form); err != nil {
		switch {
		case errors.Is(err, forms.ErrUnsupportedPage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, drafts.ErrNotEditing):
			c.JSON(http.StatusConflict, gin.H{"error": "not in edit mode"})
		default:
			logger.Errorf("apply edit %s: %v", page, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save draft"})
		}
		return
	}
	metrics.DraftEdits.WithLabelValues(page).Inc()

	if password := forms.AdminPassword(form); password != "" {
		if err := h.Settings.SetAdminPassword(c.Request.Context(), password); err != nil {
			logger.Errorf("set admin password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not change password"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Publish promotes the draft to the live document.
func (h *Handler) Publish(c *gin.Context) {
	state := middleware.SessionFromContext(c)
	if err := h.Drafts.Publish(c.Request.Context(), state); err != nil {
		if errors.Is(err, drafts.ErrNotEditing) {
			c.JSON(http.StatusConflict, gin.H{"error": "not in edit mode"})
			return
		}
		logger.Errorf("publish draft: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not publish"})
		return
	}
	if err := h.Sessions.Save(c.Request.Context(), state); err != nil {
		logger.Errorf("save session %s: %v", state.ID, err)
	}
	metrics.ContentPublishes.Inc()
	c.JSON(http.StatusOK, gin.H{"published": true})
}

// Discard throws the draft away.
func (h *Handler) Discard(c *gin.Context) {
	state := middleware.SessionFromContext(c)
	if err := h.Drafts.Discard(c.Request.Context(), state); err != nil {
		logger.Errorf("discard draft: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not discard"})
		return
	}
	if err := h.Sessions.Save(c.Request.Context(), state); err != nil {
		logger.Errorf("save session %s: %v", state.ID, err)
	}
	metrics.ContentDiscards.Inc()
	c.JSON(http.StatusOK, gin.H{"discarded": true})
}

// Upload stores one multipart media file.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field missing"})
		return
	}
	name := uploads.SanitizeName(file.Filename)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()
	contentType := file.Header.Get("Content-Type")
	if err := h.Uploads.Store(c.Request.Context(), name, src, file.Size, contentType); err != nil {
		logger.Errorf("store upload %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store file"})
		return
	}
	metrics.MediaUploads.Inc()
	c.JSON(http.StatusCreated, gin.H{"filename": name, "url": "/uploads/" + name})
}
