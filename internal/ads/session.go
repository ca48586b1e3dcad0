// Package ads provides the ad session handed to clients. The session is an
// explicit object with an init lifecycle, owned by the composition root and
// passed by reference to whatever needs it, never package-global state.
package ads

import (
	"context"
	"fmt"
	"sync"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/lifeplanapp/lifeplan-backend/pkg/logger"
)

// Config carries the ad network settings for a session.
type Config struct {
	Enabled            bool
	BannerUnitID       string
	InterstitialUnitID string
	RewardedUnitID     string
}

// Units is the ad unit configuration served to mobile clients.
type Units struct {
	Enabled            bool   `json:"enabled"`
	BannerUnitID       string `json:"banner_unit_id,omitempty"`
	InterstitialUnitID string `json:"interstitial_unit_id,omitempty"`
	RewardedUnitID     string `json:"rewarded_unit_id,omitempty"`
}

// Session is the injectable ad session.
type Session struct {
	cfg Config

	mu          sync.Mutex
	initialized bool
	disposed    bool
}

// NewSession creates an uninitialized session.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg}
}

// Initialize prepares the session for use. It must be called once before
// Units; initializing a disposed session is an error.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return fmt.Errorf("ad session already disposed")
	}
	if s.initialized {
		return nil
	}

	if s.cfg.Enabled && s.cfg.BannerUnitID == "" && s.cfg.InterstitialUnitID == "" && s.cfg.RewardedUnitID == "" {
		return fmt.Errorf("ads enabled but no ad unit IDs configured")
	}

	s.initialized = true
	logger.Log.WithField("enabled", s.cfg.Enabled).Info("Ad session initialized")
	return nil
}

// Units returns the ad unit configuration for clients. Fails with
// Unavailable until the session has been initialized.
func (s *Session) Units() (Units, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.disposed {
		return Units{}, apperror.ErrUnavailable
	}

	return Units{
		Enabled:            s.cfg.Enabled,
		BannerUnitID:       s.cfg.BannerUnitID,
		InterstitialUnitID: s.cfg.InterstitialUnitID,
		RewardedUnitID:     s.cfg.RewardedUnitID,
	}, nil
}

// Dispose tears the session down. Safe to call more than once.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.disposed = true
	s.initialized = false
	logger.Log.Info("Ad session disposed")
}
