package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Anurag-Zel/User-Registration/internal/auth"
	"github.com/Anurag-Zel/User-Registration/internal/config"
	"github.com/Anurag-Zel/User-Registration/internal/httputil"
	"github.com/Anurag-Zel/User-Registration/internal/logging"
	"github.com/Anurag-Zel/User-Registration/internal/user"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	authMiddleware *auth.Middleware,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth)

	// Credential endpoints (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Profile endpoints (require a verified token)
	r.Route("/user", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)
		r.Delete("/profile", userHandler.DeleteProfile)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, "Route not found", http.StatusNotFound)
	})

	return r
}

// handleHealth is the unauthenticated liveness probe
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]any
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]any{
		"success":   true,
		"message":   "Recruitment Platform API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}
