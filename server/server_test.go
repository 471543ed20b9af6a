package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"draw2photo-server/confs"
	"draw2photo-server/db"
	"draw2photo-server/entities"
	httpHandler "draw2photo-server/handlers/http"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	database, err := db.Connect(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)

	cfg := &confs.Config{
		Port:         "8000",
		JWTSecret:    "test-secret",
		GinMode:      gin.TestMode,
		TemplatesDir: "../templates",
		StaticDir:    "../static",
	}
	return NewServer(cfg, database)
}

func (s *Server) userCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.db.GetDB().Model(&entities.User{}).Count(&count).Error)
	return count
}

func postForm(s *Server, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)
	return rec
}

func tokenCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpHandler.CookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func register(s *Server, email, password, confirm string) *httptest.ResponseRecorder {
	return postForm(s, "/register", url.Values{
		"email":            {email},
		"password":         {password},
		"confirm_password": {confirm},
	})
}

func login(s *Server, email, password string) *httptest.ResponseRecorder {
	return postForm(s, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

func sketchUpload(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="sketch.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func generate(t *testing.T, s *Server, contentType string, data []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body, formType := sketchUpload(t, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/generate", body)
	req.Header.Set("Content-Type", formType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicPagesRender(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/", "/register", "/login", "/gallery"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	s := newTestServer(t)

	rec := register(s, "a@example.com", "hunter2", "different")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Passwords do not match")
	require.EqualValues(t, 0, s.userCount(t))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer(t)

	rec := register(s, "a@example.com", "hunter2", "hunter2")
	require.Equal(t, http.StatusFound, rec.Code)

	rec = register(s, "a@example.com", "other-pw", "other-pw")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Email already in use")
	require.EqualValues(t, 1, s.userCount(t))
}

func TestRegisterSetsCookieAndRedirects(t *testing.T) {
	s := newTestServer(t)

	rec := register(s, "a@example.com", "hunter2", "hunter2")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/generate", rec.Header().Get("Location"))

	cookie := tokenCookie(rec)
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, 7*24*60*60, cookie.MaxAge)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	register(s, "a@example.com", "hunter2", "hunter2")

	rec := login(s, "a@example.com", "hunter2")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/generate", rec.Header().Get("Location"))
	require.NotNil(t, tokenCookie(rec))
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	register(s, "a@example.com", "hunter2", "hunter2")

	rec := login(s, "a@example.com", "wrong")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email or password")
	require.Nil(t, tokenCookie(rec))

	// unknown email yields the same generic failure
	rec = login(s, "ghost@example.com", "hunter2")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestGenerateFormRedirectsAnonymous(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGenerateRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := generate(t, s, "image/png", []byte("sketch"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateRejectsNonImage(t *testing.T) {
	s := newTestServer(t)
	cookie := tokenCookie(register(s, "a@example.com", "hunter2", "hunter2"))
	require.NotNil(t, cookie)

	rec := generate(t, s, "text/plain", []byte("not an image"), cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateEchoesSketch(t *testing.T) {
	s := newTestServer(t)
	cookie := tokenCookie(register(s, "a@example.com", "hunter2", "hunter2"))
	require.NotNil(t, cookie)

	sketch := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	rec := generate(t, s, "image/png", sketch, cookie)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, `inline; filename="result.png"`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, sketch, rec.Body.Bytes())
}

func TestLogoutClearsCookieButNotToken(t *testing.T) {
	s := newTestServer(t)
	cookie := tokenCookie(register(s, "a@example.com", "hunter2", "hunter2"))
	require.NotNil(t, cookie)

	rec := postForm(s, "/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	// the cookie is cleared by the response
	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpHandler.CookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)

	// without the cookie, generation is unauthorized again
	rec = generate(t, s, "image/png", []byte("sketch"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// but a copied, still-unexpired token remains valid: logout is purely
	// client-side in a stateless-token design
	rec = generate(t, s, "image/png", []byte("sketch"), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidTokenRejected(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: httpHandler.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidTokenStillReachesAuthForms(t *testing.T) {
	s := newTestServer(t)
	bad := &http.Cookie{Name: httpHandler.CookieName, Value: "garbage"}

	// a broken cookie must not lock the user out of the pages that fix it
	for _, path := range []string{"/login", "/register"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(bad)
		rec := httptest.NewRecorder()
		s.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestInvalidTokenCanStillLogOut(t *testing.T) {
	s := newTestServer(t)
	bad := &http.Cookie{Name: httpHandler.CookieName, Value: "garbage"}

	rec := postForm(s, "/logout", url.Values{}, bad)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpHandler.CookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)
}

func TestNotFoundPage(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Page not found")
}
