package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/httputil"
	"github.com/Anurag-Zel/User-Registration/internal/logging"
	"github.com/Anurag-Zel/User-Registration/internal/ratelimit"
	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

// Handler contains HTTP handlers for the credential endpoints.
type Handler struct {
	service     *Service
	rateLimiter *ratelimit.Limiter
	logger      *logging.Logger
}

func NewHandler(service *Service, rateLimiter *ratelimit.Limiter, logger *logging.Logger) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Profile  account.Profile `json:"profile"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthData is the payload returned by register and login.
type AuthData struct {
	User  *account.Account `json:"user"`
	Token string           `json:"token"`
}

// Register handles user registration
// @Summary      Register a new account
// @Description  Create an account with email, password, and required profile names. Returns the account and an identity token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration payload"
// @Success      201 {object} httputil.Response
// @Failure      400 {object} httputil.Response "Validation error"
// @Failure      409 {object} httputil.Response "Email already exists"
// @Failure      500 {object} httputil.Response "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ip := getClientIP(r)
	exceeded, err := h.rateLimiter.CheckIPRateLimitWithPurpose(r.Context(), ip, "register")
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded for register", "ip", ip)
		httputil.RespondError(w, "Too many requests, please try again later", http.StatusTooManyRequests)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.rateLimiter.RecordIPRequestWithPurpose(r.Context(), ip, "register"); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	acc, token, err := h.service.Register(r.Context(), RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile,
	})
	if err != nil {
		var invalid *validate.Invalid
		if errors.As(err, &invalid) {
			logger.Warn("registration failed: validation error")
			httputil.RespondValidationErrors(w, invalid.Errors)
			return
		}
		if errors.Is(err, account.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			httputil.RespondDuplicate(w, "email")
			return
		}
		logger.Error("registration failed: internal error", "error", err.Error())
		httputil.RespondError(w, "Internal server error during registration", http.StatusInternalServerError)
		return
	}

	logger.Info("user registered successfully", "account_id", acc.ID)

	httputil.RespondSuccess(w, "User registered successfully", AuthData{
		User:  acc,
		Token: token,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      Authenticate
// @Description  Verify credentials and receive an identity token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} httputil.Response
// @Failure      400 {object} httputil.Response "Validation error"
// @Failure      401 {object} httputil.Response "Invalid credentials"
// @Failure      500 {object} httputil.Response "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ip := getClientIP(r)
	exceeded, err := h.rateLimiter.CheckIPRateLimitWithPurpose(r.Context(), ip, "login")
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded for login", "ip", ip)
		httputil.RespondError(w, "Too many requests, please try again later", http.StatusTooManyRequests)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.rateLimiter.RecordIPRequestWithPurpose(r.Context(), ip, "login"); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	acc, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var invalid *validate.Invalid
		if errors.As(err, &invalid) {
			logger.Warn("login failed: validation error")
			httputil.RespondValidationErrors(w, invalid.Errors)
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondError(w, "Internal server error during login", http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in successfully")

	httputil.RespondSuccess(w, "Login successful", AuthData{
		User:  acc,
		Token: token,
	}, http.StatusOK)
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr format is "IP:port", extract just the IP
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
