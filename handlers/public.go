package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"printstudio/internal/content"
	"printstudio/internal/uploads"
	"printstudio/pkg/logger"
	"printstudio/pkg/middleware"
)

// pagePayload is the JSON rendering contract for a public page: global site
// settings, the theme colors, the page body, and the derived title/class.
func pagePayload(doc *content.Document, page string, body interface{}) gin.H {
	return gin.H{
		"site":       doc.Site,
		"theme":      doc.Site.Colors,
		"page":       body,
		"page_title": doc.PageTitle(page),
		"body_class": doc.BodyClass("page-" + page),
	}
}

// Page serves one of the content-only public pages from the session's
// effective document (draft while editing, published otherwise).
func (h *Handler) Page(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := h.Drafts.EffectiveContent(c.Request.Context(), middleware.SessionFromContext(c))
		if err != nil {
			logger.Errorf("load content for %s: %v", page, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "content unavailable"})
			return
		}
		var body interface{}
		switch page {
		case "home":
			body = doc.Pages.Home
		case "services":
			body = doc.Pages.Services
		case "contact":
			body = doc.Pages.Contact
		}
		c.JSON(http.StatusOK, pagePayload(doc, page, body))
	}
}

// StorePage is the public store listing: the store page content plus the
// migrated printer inventory.
func (h *Handler) StorePage(c *gin.Context) {
	doc, err := h.Drafts.EffectiveContent(c.Request.Context(), middleware.SessionFromContext(c))
	if err != nil {
		logger.Errorf("load content for store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "content unavailable"})
		return
	}
	inv, err := h.Settings.Inventory(c.Request.Context())
	if err != nil {
		logger.Errorf("load inventory: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inventory unavailable"})
		return
	}
	payload := pagePayload(doc, "store", doc.Pages.Store)
	payload["inventory"] = inv
	c.JSON(http.StatusOK, payload)
}

// ServeUpload streams a stored media file back to the client.
func (h *Handler) ServeUpload(c *gin.Context) {
	name := uploads.SanitizeName(c.Param("filename"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}
	rc, info, err := h.Uploads.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, uploads.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		logger.Errorf("open upload %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload unavailable"})
		return
	}
	defer rc.Close()
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger.Warnf("stream upload %s: %v", name, err)
	}
}
