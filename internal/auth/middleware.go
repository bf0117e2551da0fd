package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/httputil"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	// AccountContextKey holds the authenticated *account.Account.
	AccountContextKey ContextKey = "account"
)

// Middleware gates protected routes. Token verification is stateless, but
// the live account record is re-fetched on every request so a deleted or
// deactivated account is rejected even with an unexpired token.
type Middleware struct {
	tokens   TokenService
	accounts account.Repository
}

func NewMiddleware(tokens TokenService, accounts account.Repository) *Middleware {
	return &Middleware{tokens: tokens, accounts: accounts}
}

// RequireAuth validates the bearer token and resolves the account.
// Expired, tampered, and malformed tokens all get the same 401 response.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.RespondError(w, "Access denied. No token provided.", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondError(w, "Invalid token.", http.StatusUnauthorized)
			return
		}

		claims, err := m.tokens.VerifyToken(parts[1])
		if err != nil {
			// Expired and tampered collapse into one message on purpose
			httputil.RespondError(w, "Invalid token.", http.StatusUnauthorized)
			return
		}

		accountID, err := uuid.Parse(claims.AccountID)
		if err != nil {
			httputil.RespondError(w, "Invalid token.", http.StatusUnauthorized)
			return
		}

		acc, err := m.accounts.GetByID(r.Context(), accountID)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				httputil.RespondError(w, "Invalid token.", http.StatusUnauthorized)
				return
			}
			httputil.RespondError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if !acc.IsActive {
			httputil.RespondError(w, "Invalid token.", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), AccountContextKey, acc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAccountFromContext extracts the authenticated account from the request context.
func GetAccountFromContext(ctx context.Context) (*account.Account, bool) {
	acc, ok := ctx.Value(AccountContextKey).(*account.Account)
	return acc, ok
}
