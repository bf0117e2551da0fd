package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/user"
	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

// ErrUnauthorized is returned on any 401; the caller should treat the
// session as invalid.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Errors  validate.Errors
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client talks to the account service. Login and Register persist the
// session; Logout and a successful deletion clear it.
type Client struct {
	baseURL string
	http    *http.Client
	store   *Store
	session *Session
}

// NewClient builds a client and restores any persisted session.
func NewClient(baseURL string, store *Store) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
	if sess, err := store.Load(); err == nil {
		c.session = sess
	}
	return c
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session {
	return c.session
}

// SetUser refreshes the cached account snapshot without touching the token.
func (c *Client) SetUser(u *account.Account) error {
	if c.session == nil {
		return ErrNoSession
	}
	c.session.User = u
	return c.store.Save(c.session)
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Profile  account.Profile `json:"profile"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  validate.Errors `json:"errors"`
}

type authData struct {
	User  *account.Account `json:"user"`
	Token string           `json:"token"`
}

type profileData struct {
	User *account.Account `json:"user"`
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*account.Account, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", input, false)
	if err != nil {
		return nil, err
	}

	var data authData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse register response: %w", err)
	}

	c.session = &Session{Token: data.Token, User: data.User}
	if err := c.store.Save(c.session); err != nil {
		return nil, err
	}

	return data.User, nil
}

// Login authenticates and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*account.Account, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/auth/login", body, false)
	if err != nil {
		return nil, err
	}

	var data authData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}

	c.session = &Session{Token: data.Token, User: data.User}
	if err := c.store.Save(c.session); err != nil {
		return nil, err
	}

	return data.User, nil
}

// Profile fetches the live account record and refreshes the snapshot.
func (c *Client) Profile(ctx context.Context) (*account.Account, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/profile", nil, true)
	if err != nil {
		return nil, err
	}

	var data profileData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}

	if err := c.SetUser(data.User); err != nil {
		return nil, err
	}

	return data.User, nil
}

// UpdateProfile sends a partial profile update and refreshes the snapshot.
func (c *Client) UpdateProfile(ctx context.Context, patch user.ProfilePatch) (*account.Account, error) {
	body := map[string]any{"profile": patch}
	env, err := c.do(ctx, http.MethodPut, "/user/profile", body, true)
	if err != nil {
		return nil, err
	}

	var data profileData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse update response: %w", err)
	}

	if err := c.SetUser(data.User); err != nil {
		return nil, err
	}

	return data.User, nil
}

// DeleteAccount destroys the account after server-side password
// re-verification and clears the session on success.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	if _, err := c.do(ctx, http.MethodDelete, "/user/profile", body, true); err != nil {
		return err
	}

	c.session = nil
	return c.store.Clear()
}

// Logout clears the stored session. The token itself is stateless; it
// simply stops being presented.
func (c *Client) Logout() error {
	c.session = nil
	return c.store.Clear()
}

func (c *Client) do(ctx context.Context, method, path string, body any, authed bool) (*envelope, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = new(bytes.Buffer)
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		if c.session == nil {
			return nil, ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	env := new(envelope)
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
		}
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: env.Message,
			Errors:  env.Errors,
		}
	}

	return env, nil
}
