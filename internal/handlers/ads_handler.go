package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lifeplanapp/lifeplan-backend/internal/ads"
)

// AdsHandler serves ad unit configuration from the injected ad session.
type AdsHandler struct {
	Session *ads.Session
}

// NewAdsHandler creates a new instance of AdsHandler.
func NewAdsHandler(session *ads.Session) *AdsHandler {
	return &AdsHandler{
		Session: session,
	}
}

// ConfigHandler returns the ad unit configuration for mobile clients.
func (h *AdsHandler) ConfigHandler(w http.ResponseWriter, r *http.Request) {
	units, err := h.Session.Units()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(units)
}
