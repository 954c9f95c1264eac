package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"printstudio/internal/config"
	"printstudio/internal/drafts"
	"printstudio/internal/sessions"
	"printstudio/internal/settings"
	"printstudio/internal/uploads"
)

const testPassword = "printstudio"

func newTestServer(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	settingsSvc := settings.NewService(settings.NewMemoryRepository(), testPassword)
	require.NoError(t, settingsSvc.EnsureDefaults(context.Background()))

	sessionSvc := sessions.NewService(sessions.NewMemoryRepository(), "test-secret", time.Hour)
	h := New(settingsSvc, sessionSvc, drafts.NewManager(settingsSvc), uploads.NewMemorySink(), config.SessionConfig{
		CookieName: "ps_session",
		TTL:        time.Hour,
	})

	r := gin.New()
	h.Register(r, nil)
	return r, h
}

func do(r *gin.Engine, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	w := do(r, "POST", "/admin/login", url.Values{"password": {testPassword}})
	require.Equal(t, http.StatusOK, w.Code)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "ps_session" {
			return ck
		}
	}
	t.Fatal("login did not set session cookie")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPublicPagesServePublishedContent(t *testing.T) {
	r, _ := newTestServer(t)
	for _, path := range []string{"/", "/services", "/contact", "/store"} {
		w := do(r, "GET", path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		body := decodeBody(t, w)
		require.Contains(t, body, "site")
		require.Contains(t, body, "theme")
		require.Contains(t, body, "page")
		require.NotEmpty(t, body["page_title"], path)
	}
}

func TestStorePageIncludesInventory(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(r, "GET", "/store", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	inv, ok := body["inventory"].(map[string]interface{})
	require.True(t, ok)
	require.NotEmpty(t, inv["manufacturers"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(r, "POST", "/admin/login", url.Values{"password": {"wrong"}})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r, _ := newTestServer(t)
	for _, route := range []struct{ method, path string }{
		{"GET", "/admin"},
		{"POST", "/admin/edit"},
		{"POST", "/admin/publish"},
		{"POST", "/admin/discard"},
		{"POST", "/admin/uploads"},
	} {
		w := do(r, route.method, route.path, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestEditPublishLifecycle(t *testing.T) {
	r, _ := newTestServer(t)
	ck := login(t, r)

	w := do(r, "POST", "/admin/edit", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, "POST", "/admin/pages/home", url.Values{"home_hero_title": {"X"}}, ck)
	require.Equal(t, http.StatusOK, w.Code)

	// draft visible to the editing session, hidden from the public
	w = do(r, "GET", "/", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"X"`)

	w = do(r, "GET", "/", nil)
	require.NotContains(t, w.Body.String(), `"title":"X"`)

	w = do(r, "POST", "/admin/publish", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)

	// now everyone sees it
	w = do(r, "GET", "/", nil)
	page := decodeBody(t, w)["page"].(map[string]interface{})
	hero := page["hero"].(map[string]interface{})
	require.Equal(t, "X", hero["title"])
}

func TestDiscardKeepsPublishedContent(t *testing.T) {
	r, _ := newTestServer(t)
	ck := login(t, r)

	before := do(r, "GET", "/", nil).Body.String()

	require.Equal(t, http.StatusOK, do(r, "POST", "/admin/edit", nil, ck).Code)
	require.Equal(t, http.StatusOK, do(r, "POST", "/admin/pages/home", url.Values{"home_hero_title": {"Scrapped"}}, ck).Code)
	require.Equal(t, http.StatusOK, do(r, "POST", "/admin/discard", nil, ck).Code)

	require.JSONEq(t, before, do(r, "GET", "/", nil).Body.String())
}

func TestApplyEditRejectsUnknownPage(t *testing.T) {
	r, _ := newTestServer(t)
	ck := login(t, r)
	require.Equal(t, http.StatusOK, do(r, "POST", "/admin/edit", nil, ck).Code)

	w := do(r, "POST", "/admin/pages/blog", url.Values{"blog_title": {"x"}}, ck)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyEditWithoutEditModeConflicts(t *testing.T) {
	r, _ := newTestServer(t)
	ck := login(t, r)
	w := do(r, "POST", "/admin/pages/home", url.Values{"home_hero_title": {"x"}}, ck)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginPageClearsAuthentication(t *testing.T) {
	r, _ := newTestServer(t)
	ck := login(t, r)

	require.Equal(t, http.StatusOK, do(r, "GET", "/admin", nil, ck).Code)
	require.Equal(t, http.StatusOK, do(r, "GET", "/admin/login", nil, ck).Code)
	require.Equal(t, http.StatusUnauthorized, do(r, "GET", "/admin", nil, ck).Code)
}

func TestLogoutDropsSession(t *testing.T) {
	r, _ := newTestServer(t)
	ck := login(t, r)
	require.Equal(t, http.StatusOK, do(r, "POST", "/admin/logout", nil, ck).Code)
	require.Equal(t, http.StatusUnauthorized, do(r, "GET", "/admin", nil, ck).Code)
}

func TestAdminPasswordChangeTakesEffectImmediately(t *testing.T) {
	r, h := newTestServer(t)
	ck := login(t, r)
	require.Equal(t, http.StatusOK, do(r, "POST", "/admin/edit", nil, ck).Code)

	w := do(r, "POST", "/admin/pages/site", url.Values{"admin_password": {"new-secret"}}, ck)
	require.Equal(t, http.StatusOK, w.Code)

	ok, err := h.Settings.VerifyAdminPassword(context.Background(), "new-secret")
	require.NoError(t, err)
	require.True(t, ok)

	state, err := h.Settings.PasswordState(context.Background())
	require.NoError(t, err)
	require.Equal(t, settings.PasswordCustom, state)

	// the change is live even though the draft was never published
	w = do(r, "POST", "/admin/discard", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	ok, err = h.Settings.VerifyAdminPassword(context.Background(), "new-secret")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUploadRoundTrip(t *testing.T) {
	r, _ := newTestServer(t)
	ck := login(t, r)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "../sneaky/logo (1).png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(ck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "logo__1_.png", body["filename"])

	got := do(r, "GET", "/uploads/logo__1_.png", nil)
	require.Equal(t, http.StatusOK, got.Code)
	require.Equal(t, "png-bytes", got.Body.String())

	// dashboard lists the upload
	dash := do(r, "GET", "/admin", nil, ck)
	require.Equal(t, http.StatusOK, dash.Code)
	require.Contains(t, dash.Body.String(), "logo__1_.png")
}

func TestServeUploadMissing(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(r, "GET", "/uploads/nothing.png", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
