package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lifeplanapp/lifeplan-backend/internal/services"
	"github.com/lifeplanapp/lifeplan-backend/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to user profiles.
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		Service: service,
	}
}

// GetProfileHandler returns the authenticated user's profile, creating a
// default one on first access.
func (h *UserHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.Service.GetProfile(r.Context(), claims.UserID, claims.Email)
	if err != nil {
		log.WithError(err).WithField("userID", claims.UserID).Error("Failed to fetch profile")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// UpdateProfileHandler applies a partial profile edit.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.WithError(err).Warn("Invalid profile update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	profile, err := h.Service.UpdateProfile(r.Context(), claims.UserID, claims.Email, update)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithField("userID", claims.UserID).Info("Profile updated")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// RecomputeStatsHandler recounts the user's aggregate goal counters from
// the goals collection, repairing best-effort drift.
func (h *UserHandler) RecomputeStatsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.Service.RecomputeStats(r.Context(), claims.UserID)
	if err != nil {
		log.WithError(err).WithField("userID", claims.UserID).Error("Failed to recompute stats")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// DeleteAccountHandler deletes the user's goals and profile. The request
// must carry an explicit confirmation; destructive actions are never
// triggered by a bare call.
func (h *UserHandler) DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || !payload.Confirm {
		log.WithField("userID", claims.UserID).Warn("Account deletion without confirmation")
		http.Error(w, "Account deletion requires explicit confirmation", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.DeleteAccount(r.Context(), claims.UserID); err != nil {
		writeError(w, err)
		return
	}

	log.WithField("userID", claims.UserID).Info("Account deleted")
	w.WriteHeader(http.StatusNoContent)
}
