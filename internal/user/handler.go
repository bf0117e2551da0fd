package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Anurag-Zel/User-Registration/internal/account"
	"github.com/Anurag-Zel/User-Registration/internal/auth"
	"github.com/Anurag-Zel/User-Registration/internal/httputil"
	"github.com/Anurag-Zel/User-Registration/internal/logging"
	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

// Handler contains HTTP handlers for the profile endpoints. All of them sit
// behind auth.Middleware.RequireAuth.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	Profile ProfilePatch `json:"profile"`
}

// DeleteProfileRequest carries the re-verification password for deletion
type DeleteProfileRequest struct {
	Password string `json:"password"`
}

// profileData wraps the account for the response envelope.
type profileData struct {
	User *account.Account `json:"user"`
}

// GetProfile returns the authenticated account's public fields
// @Summary      Get profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Response
// @Failure      401 {object} httputil.Response "Invalid token"
// @Router       /user/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	acc, ok := auth.GetAccountFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Invalid token.", http.StatusUnauthorized)
		return
	}

	httputil.RespondSuccess(w, "Profile retrieved successfully", profileData{User: acc}, http.StatusOK)
}

// UpdateProfile applies a partial profile update
// @Summary      Update profile
// @Description  Fields present in the body replace the stored values; absent fields are untouched.
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Profile fields to update"
// @Success      200 {object} httputil.Response
// @Failure      400 {object} httputil.Response "Validation error"
// @Failure      401 {object} httputil.Response "Invalid token"
// @Failure      500 {object} httputil.Response "Internal server error"
// @Router       /user/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	acc, ok := auth.GetAccountFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Invalid token.", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile update request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), acc.ID, req.Profile)
	if err != nil {
		var invalid *validate.Invalid
		if errors.As(err, &invalid) {
			logger.Warn("profile update failed: validation error")
			httputil.RespondValidationErrors(w, invalid.Errors)
			return
		}
		if errors.Is(err, account.ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("profile update failed: internal error", "error", err.Error())
		httputil.RespondError(w, "Internal server error while updating profile", http.StatusInternalServerError)
		return
	}

	logger.Info("profile updated", "account_id", acc.ID)

	httputil.RespondSuccess(w, "Profile updated successfully", profileData{User: updated}, http.StatusOK)
}

// DeleteProfile deletes the account after password re-verification
// @Summary      Delete account
// @Description  Requires a valid token and the current password. A wrong password leaves the account untouched.
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DeleteProfileRequest true "Current password"
// @Success      200 {object} httputil.Response
// @Failure      400 {object} httputil.Response "Password missing"
// @Failure      401 {object} httputil.Response "Wrong password"
// @Failure      404 {object} httputil.Response "Account not found"
// @Failure      500 {object} httputil.Response "Internal server error"
// @Router       /user/profile [delete]
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	acc, ok := auth.GetAccountFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Invalid token.", http.StatusUnauthorized)
		return
	}

	var req DeleteProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid delete request body", "error", err.Error())
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Password == "" {
		httputil.RespondError(w, "Password is required to delete account", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), acc.ID, req.Password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			logger.Warn("account deletion failed: wrong password", "account_id", acc.ID)
			httputil.RespondError(w, "Invalid password. Account deletion failed.", http.StatusUnauthorized)
			return
		}
		if errors.Is(err, account.ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("account deletion failed: internal error", "error", err.Error())
		httputil.RespondError(w, "Internal server error while deleting profile", http.StatusInternalServerError)
		return
	}

	httputil.RespondSuccess(w, "Account deleted successfully", nil, http.StatusOK)
}
