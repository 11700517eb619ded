package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/dev-network/internal/server"
)

// newTestRouter wires the whole server against an in-memory database, so
// these tests cover routing, auth middleware, handlers, services, and
// storage together.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	srv, err := server.New(server.Config{
		DBPath:    ":memory:",
		JWTSecret: "test-secret-test-secret",
	}, logger)
	require.NoError(t, err, "creating test server")
	return srv.Router()
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, router http.Handler, name, email string) string {
	t.Helper()
	body := `{"name":"` + name + `","email":"` + email + `","password":"secret1"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "register failed: %s", rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doJSON(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProfileLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "Sakif", "sakif@example.com")

	// No profile yet.
	rec := doJSON(router, http.MethodGet, "/api/profile/me", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Create it.
	rec = doJSON(router, http.MethodPost, "/api/profile", token,
		`{"status":"Developer","skills":"node, react , css","twitter":"t"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		Status string   `json:"status"`
		Skills []string `json:"skills"`
		Social struct {
			Twitter string `json:"twitter"`
			YouTube string `json:"youtube"`
		} `json:"social"`
		Owner struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Developer", created.Status)
	assert.Equal(t, []string{"node", "react", "css"}, created.Skills)
	assert.Equal(t, "t", created.Social.Twitter)
	assert.Empty(t, created.Social.YouTube, "only the supplied social link may be set")
	assert.Equal(t, "Sakif", created.Owner.Name)

	// Merge: new status, everything else kept.
	rec = doJSON(router, http.MethodPost, "/api/profile", token,
		`{"status":"Senior Developer","skills":"node, react , css"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/profile/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var merged struct {
		Status string `json:"status"`
		Social struct {
			Twitter string `json:"twitter"`
		} `json:"social"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&merged))
	assert.Equal(t, "Senior Developer", merged.Status)
	assert.Equal(t, "t", merged.Social.Twitter, "omitted social link must survive the merge")
}

func TestUpsertProfile_MissingStatusRejected(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "Sakif", "sakif@example.com")

	rec := doJSON(router, http.MethodPost, "/api/profile", token, `{"skills":"go"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestUpsertProfile_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/profile", "", `{"status":"x","skills":"go"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProfiles_EmptyIsJSONArray(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/profile", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetProfileByUser_MalformedID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/profile/user/not-a-real-id", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_id")
}

func TestGetProfileByUser_UnknownID(t *testing.T) {
	router := newTestRouter(t)

	// Well-formed but absent.
	rec := doJSON(router, http.MethodGet, "/api/profile/user/cv37rs3pp9olc6atsptg", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProfile_RemovesAccount(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router, "Sakif", "sakif@example.com")

	rec := doJSON(router, http.MethodPost, "/api/profile", token, `{"status":"dev","skills":"go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodDelete, "/api/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user deleted")

	// The profile is gone from the public listing and the account no
	// longer resolves.
	rec = doJSON(router, http.MethodGet, "/api/profile", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = doJSON(router, http.MethodGet, "/api/auth", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin_ReturnsTokenCookie(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "Sakif", "sakif@example.com")

	rec := doJSON(router, http.MethodPost, "/api/auth", "",
		`{"email":"sakif@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var hasTokenCookie bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			hasTokenCookie = true
		}
	}
	assert.True(t, hasTokenCookie, "login must set the token cookie")
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "Sakif", "sakif@example.com")

	rec := doJSON(router, http.MethodPost, "/api/auth", "",
		`{"email":"sakif@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
