package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/nsm-example/internal/auth"
	"github.com/iliyamo/nsm-example/internal/config"
	"github.com/iliyamo/nsm-example/internal/handler"
	"github.com/iliyamo/nsm-example/internal/repository"
)

func newTestEcho(t *testing.T, admin *auth.Admin) *echo.Echo {
	t.Helper()
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "hello.txt"), []byte("static hello"), 0o644))

	cfg := config.Config{Env: "test", Name: "demo", Version: "1.0.0", Domain: "demo.test", StaticDir: static}
	e := echo.New()
	RegisterRoutes(e, Deps{
		Cfg:   cfg,
		Admin: admin,
		App:   handler.NewAppHandler(cfg, nil),
		Echo:  handler.NewEchoHandler(nil),
		Tasks: handler.NewTaskHandler(repository.NewMemoryTaskRepo(), nil),
		Auth:  handler.NewAuthHandler(admin),
	})
	return e
}

func request(e *echo.Echo, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	e := newTestEcho(t, nil)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/api/info", "", http.StatusOK},
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodPost, "/api/echo", `{"message":"hi"}`, http.StatusOK},
		{http.MethodPost, "/api/message", `{"message":"hi"}`, http.StatusOK},
		{http.MethodGet, "/api/tasks", "", http.StatusOK},
		{http.MethodPost, "/api/tasks", `{"title":"open"}`, http.StatusCreated},
		{http.MethodPost, "/api/auth/token", `{"username":"a","password":"b"}`, http.StatusNotFound},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/static/hello.txt", "", http.StatusOK},
	}
	for _, tc := range cases {
		rec := request(e, tc.method, tc.path, tc.body, nil)
		assert.Equal(t, tc.want, rec.Code, "%s %s: %s", tc.method, tc.path, rec.Body.String())
	}
}

func TestStaticMount(t *testing.T) {
	e := newTestEcho(t, nil)

	rec := request(e, http.MethodGet, "/static/hello.txt", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "static hello", rec.Body.String())
}

func TestNotFoundEnvelope(t *testing.T) {
	e := newTestEcho(t, nil)

	for _, path := range []string{"/nope", "/api/nope"} {
		rec := request(e, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code, path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), path)
		assert.Equal(t, "Not Found", body["error"], path)
		assert.Equal(t, "The requested resource was not found", body["message"], path)
		assert.NotEmpty(t, body["timestamp"], path)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	e := newTestEcho(t, nil)

	rec := request(e, http.MethodGet, "/api/info", "", http.Header{"Origin": {"http://elsewhere.test"}})
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestRequestIDHeader(t *testing.T) {
	e := newTestEcho(t, nil)

	rec := request(e, http.MethodGet, "/api/health", "", nil)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestTaskMutationsRequireToken(t *testing.T) {
	admin, err := auth.NewAdmin(config.AuthConfig{
		JWTSecret: "secret", AdminUser: "admin", AdminPassword: "pw", AccessTTLMin: 5, BcryptCost: 4,
	})
	require.NoError(t, err)
	e := newTestEcho(t, admin)

	rec := request(e, http.MethodPost, "/api/tasks", `{"title":"locked"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(e, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(e, http.MethodPost, "/api/auth/token", `{"username":"admin","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tok struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))

	bearer := http.Header{"Authorization": {"Bearer " + tok.Access.Token}}
	rec = request(e, http.MethodPost, "/api/tasks", `{"title":"unlocked"}`, bearer)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
