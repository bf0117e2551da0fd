package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/auth"
	"github.com/Anurag-Zel/User-Registration/internal/config"
	apihttp "github.com/Anurag-Zel/User-Registration/internal/http"
	"github.com/Anurag-Zel/User-Registration/internal/logging"
	"github.com/Anurag-Zel/User-Registration/internal/user"
	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		User  *account.Account `json:"user"`
		Token string           `json:"token"`
	} `json:"data"`
	Errors validate.Errors `json:"errors"`
	Field  string          `json:"field"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := logging.NewLogger(true)
	repo := account.NewMemoryRepository()

	tokens, err := auth.NewJWTService([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	authService := auth.NewService(repo, tokens, logger, 24*time.Hour)
	userService := user.NewService(repo, logger)

	authHandler := auth.NewHandler(authService, nil, logger)
	userHandler := user.NewHandler(userService, logger)
	authMiddleware := auth.NewMiddleware(tokens, repo)

	cfg := &config.Config{
		Server: config.ServerConfig{Env: "dev"},
	}

	router := apihttp.NewRouter(cfg, authHandler, userHandler, authMiddleware, logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (int, string, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp.StatusCode, string(raw), env
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"email":    email,
		"password": "Abcdef1",
		"profile": map[string]any{
			"firstName": "A",
			"lastName":  "B",
		},
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, raw, env := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
	require.Contains(t, raw, "timestamp")
}

func TestAccountLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Register
	status, raw, env := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", registerBody("a@x.com"))
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)
	require.NotEmpty(t, env.Data.Token)
	require.Equal(t, "a@x.com", env.Data.User.Email)

	// Neither the plaintext nor the bcrypt hash ever leaves the server
	require.NotContains(t, raw, "Abcdef1")
	require.NotContains(t, raw, "$2a$")
	require.NotContains(t, raw, "passwordHash")

	// Login refreshes lastLogin
	status, _, env = doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "Abcdef1",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Data.User.LastLogin)
	token := env.Data.Token
	require.NotEmpty(t, token)

	// Update bio
	status, _, env = doJSON(t, http.MethodPut, srv.URL+"/user/profile", token, map[string]any{
		"profile": map[string]any{"bio": "hello"},
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "hello", env.Data.User.Profile.Bio)

	// Profile reflects the update
	status, _, env = doJSON(t, http.MethodGet, srv.URL+"/user/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "hello", env.Data.User.Profile.Bio)
	require.Equal(t, "A", env.Data.User.Profile.FirstName)

	// Delete with the wrong password: 401, account untouched
	status, _, env = doJSON(t, http.MethodDelete, srv.URL+"/user/profile", token, map[string]string{
		"password": "Wrong111",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.False(t, env.Success)

	status, _, _ = doJSON(t, http.MethodGet, srv.URL+"/user/profile", token, nil)
	require.Equal(t, http.StatusOK, status)

	// Delete with the correct password
	status, _, env = doJSON(t, http.MethodDelete, srv.URL+"/user/profile", token, map[string]string{
		"password": "Abcdef1",
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	// The still-unexpired token no longer resolves to an account
	status, _, _ = doJSON(t, http.MethodGet, srv.URL+"/user/profile", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]any{
		"email":    "not-an-email",
		"password": "weak",
		"profile":  map[string]any{},
	}

	status, _, env := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)
	require.NotEmpty(t, env.Errors)

	fields := make(map[string]bool)
	for _, e := range env.Errors {
		fields[e.Field] = true
	}
	require.True(t, fields["email"])
	require.True(t, fields["password"])
	require.True(t, fields["profile.firstName"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	status, _, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", registerBody("dup@x.com"))
	require.Equal(t, http.StatusCreated, status)

	// Same email with different case still collides
	status, _, env := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", registerBody("Dup@X.com"))
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "email", env.Field)
}

func TestLoginDoesNotRevealExistence(t *testing.T) {
	srv := newTestServer(t)

	_, _, _ = doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", registerBody("a@x.com"))

	_, rawUnknown, envUnknown := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": "ghost@x.com", "password": "Abcdef1",
	})
	_, rawWrong, envWrong := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "Wrong111",
	})

	require.Equal(t, envUnknown.Message, envWrong.Message)
	require.JSONEq(t, rawUnknown, rawWrong)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	status, _, _ := doJSON(t, http.MethodGet, srv.URL+"/user/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = doJSON(t, http.MethodGet, srv.URL+"/user/profile", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestDeleteRequiresPassword(t *testing.T) {
	srv := newTestServer(t)

	_, _, env := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", registerBody("a@x.com"))
	token := env.Data.Token

	status, _, env := doJSON(t, http.MethodDelete, srv.URL+"/user/profile", token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, status)
	require.True(t, strings.Contains(env.Message, "Password is required"))
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	status, _, env := doJSON(t, http.MethodGet, srv.URL+"/nope", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Route not found", env.Message)
}
