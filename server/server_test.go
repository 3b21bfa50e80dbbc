package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"moviehub/cache"
	"moviehub/config"
	"moviehub/models"
	"moviehub/notifications"
	"moviehub/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// testEnv bundles the app with its in-memory stores so tests can inspect
// state the API does not expose (API keys, save counts).
type testEnv struct {
	app    *fiber.App
	movies *testutil.MovieStoreStub
	users  *testutil.UserStoreStub
}

func setupTestServer(t *testing.T, movies ...models.Movie) *testEnv {
	t.Helper()
	cache.Client = nil // run without Redis

	movieStub := testutil.NewMovieStoreStub(movies...)
	userStub := &testutil.UserStoreStub{}

	cfg := &config.Config{JWTSecret: "test-secret-key", MoviesFile: "testdata/missing.json"}
	srv := New(cfg, movieStub, userStub, notifications.NoopMailer{})

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testEnv{app: app, movies: movieStub, users: userStub}
}

func (e *testEnv) request(t *testing.T, method, target string, body any, header map[string]string) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp.StatusCode, payload
}

// registerAndLogin creates a verified-enough account through the API and
// returns a bearer token for it.
func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	status, _ := e.request(t, "POST", "/api/auth/register", map[string]string{
		"name":     "Alice",
		"email":    email,
		"password": "password123",
	}, nil)
	require.Equal(t, fiber.StatusAccepted, status)

	status, payload := e.request(t, "POST", "/api/auth/login", map[string]string{
		"email":    email,
		"password": "password123",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)

	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}
