package session_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/auth"
	"github.com/Anurag-Zel/User-Registration/internal/config"
	apihttp "github.com/Anurag-Zel/User-Registration/internal/http"
	"github.com/Anurag-Zel/User-Registration/internal/logging"
	"github.com/Anurag-Zel/User-Registration/internal/session"
	"github.com/Anurag-Zel/User-Registration/internal/user"
)

// newTestClient wires a client against a real in-process server so the
// session behavior is exercised end to end.
func newTestClient(t *testing.T) (*session.Client, *session.Store) {
	t.Helper()

	logger := logging.NewLogger(true)
	repo := account.NewMemoryRepository()

	tokens, err := auth.NewJWTService([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	authService := auth.NewService(repo, tokens, logger, 24*time.Hour)
	userService := user.NewService(repo, logger)

	router := apihttp.NewRouter(
		&config.Config{Server: config.ServerConfig{Env: "dev"}},
		auth.NewHandler(authService, nil, logger),
		user.NewHandler(userService, logger),
		auth.NewMiddleware(tokens, repo),
		logger,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return session.NewClient(srv.URL, store), store
}

func registerInput() session.RegisterInput {
	return session.RegisterInput{
		Email:    "a@x.com",
		Password: "Abcdef1",
		Profile:  account.Profile{FirstName: "A", LastName: "B"},
	}
}

func TestClientRegisterPersistsSession(t *testing.T) {
	client, store := newTestClient(t)

	acc, err := client.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.Equal(t, "a@x.com", acc.Email)

	sess, err := store.Load()
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, "a@x.com", sess.User.Email)
}

func TestClientLoginAndProfile(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.NoError(t, client.Logout())

	_, err = client.Login(context.Background(), "a@x.com", "Abcdef1")
	require.NoError(t, err)

	acc, err := client.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "A", acc.Profile.FirstName)
}

func TestClientProfileWithoutSession(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Profile(context.Background())
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestClientBadCredentials(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "a@x.com", "Wrong111")
	require.ErrorIs(t, err, session.ErrUnauthorized)
}

func TestClientValidationErrorsSurfaced(t *testing.T) {
	client, _ := newTestClient(t)

	input := registerInput()
	input.Password = "weak"

	_, err := client.Register(context.Background(), input)

	var apiErr *session.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.Status)
	require.NotEmpty(t, apiErr.Errors)
}

func TestClientUpdateRefreshesSnapshot(t *testing.T) {
	client, store := newTestClient(t)

	_, err := client.Register(context.Background(), registerInput())
	require.NoError(t, err)

	bio := "hello"
	acc, err := client.UpdateProfile(context.Background(), user.ProfilePatch{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "hello", acc.Profile.Bio)

	// Snapshot refreshed, token untouched
	before := client.Session().Token
	sess, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "hello", sess.User.Profile.Bio)
	require.Equal(t, before, sess.Token)
}

func TestClientDeleteWrongPasswordKeepsSession(t *testing.T) {
	client, store := newTestClient(t)

	_, err := client.Register(context.Background(), registerInput())
	require.NoError(t, err)

	err = client.DeleteAccount(context.Background(), "Wrong111")
	require.ErrorIs(t, err, session.ErrUnauthorized)

	// Session survives a refused deletion and the account is still there
	_, err = store.Load()
	require.NoError(t, err)
	_, err = client.Profile(context.Background())
	require.NoError(t, err)
}

func TestClientDeleteClearsSession(t *testing.T) {
	client, store := newTestClient(t)

	_, err := client.Register(context.Background(), registerInput())
	require.NoError(t, err)

	require.NoError(t, client.DeleteAccount(context.Background(), "Abcdef1"))

	require.Nil(t, client.Session())
	_, err = store.Load()
	require.ErrorIs(t, err, session.ErrNoSession)
}
