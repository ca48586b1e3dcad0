package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/localstore"
	"github.com/lifeplanapp/lifeplan-backend/internal/services"
	log "github.com/sirupsen/logrus"
)

// ReviewHandler exposes the device-scoped collaborators: the review-prompt
// heuristic and the onboarding flag. Devices identify themselves with the
// X-Device-ID header.
type ReviewHandler struct {
	Review *services.ReviewService
	Store  *localstore.Store
}

// NewReviewHandler creates a new instance of ReviewHandler.
func NewReviewHandler(review *services.ReviewService, store *localstore.Store) *ReviewHandler {
	return &ReviewHandler{
		Review: review,
		Store:  store,
	}
}

func deviceID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get("X-Device-ID")
	if id == "" {
		http.Error(w, "Missing X-Device-ID header", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// EligibilityHandler reports whether the device should see the review prompt.
func (h *ReviewHandler) EligibilityHandler(w http.ResponseWriter, r *http.Request) {
	device, ok := deviceID(w, r)
	if !ok {
		return
	}

	eligible, err := h.Review.ShouldShowReviewPrompt(device, time.Now())
	if err != nil {
		log.WithError(err).Warn("Failed to evaluate review eligibility")
		http.Error(w, "Failed to evaluate review eligibility", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"eligible": eligible})
}

// PromptShownHandler starts the cooldown window for the device.
func (h *ReviewHandler) PromptShownHandler(w http.ResponseWriter, r *http.Request) {
	device, ok := deviceID(w, r)
	if !ok {
		return
	}

	if err := h.Review.MarkPromptShown(device, time.Now()); err != nil {
		http.Error(w, "Failed to record prompt", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReviewedHandler permanently retires the prompt for the device.
func (h *ReviewHandler) ReviewedHandler(w http.ResponseWriter, r *http.Request) {
	device, ok := deviceID(w, r)
	if !ok {
		return
	}

	if err := h.Review.MarkReviewed(device, time.Now()); err != nil {
		http.Error(w, "Failed to record review", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OnboardingStatusHandler reports whether the device finished onboarding.
func (h *ReviewHandler) OnboardingStatusHandler(w http.ResponseWriter, r *http.Request) {
	device, ok := deviceID(w, r)
	if !ok {
		return
	}

	completed, err := h.Store.HasCompletedOnboarding(device)
	if err != nil {
		log.WithError(err).Warn("Failed to read onboarding flag")
		http.Error(w, "Failed to read onboarding status", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"completed": completed})
}

// OnboardingCompleteHandler marks onboarding as finished for the device.
func (h *ReviewHandler) OnboardingCompleteHandler(w http.ResponseWriter, r *http.Request) {
	device, ok := deviceID(w, r)
	if !ok {
		return
	}

	if err := h.Store.SetOnboardingComplete(device, time.Now()); err != nil {
		http.Error(w, "Failed to set onboarding status", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OnboardingResetHandler clears the onboarding flag so the flow replays on
// next launch. Debug tooling for QA builds.
func (h *ReviewHandler) OnboardingResetHandler(w http.ResponseWriter, r *http.Request) {
	device, ok := deviceID(w, r)
	if !ok {
		return
	}

	if err := h.Store.ResetOnboarding(device); err != nil {
		http.Error(w, "Failed to reset onboarding status", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
