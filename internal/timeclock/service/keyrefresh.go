package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/smatehq/timeclock/pkg/jwtx"
)

// KeyRefreshService periodically re-fetches the identity provider's JWKS so
// key rotations at the provider propagate without a restart.
type KeyRefreshService struct {
	Client   *jwtx.JWKSClient
	Keys     *jwtx.KeySet
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewKeyRefreshService creates a refresh service with the given interval.
// If interval is 0 or negative, defaults to 15 minutes.
func NewKeyRefreshService(client *jwtx.JWKSClient, keys *jwtx.KeySet, logger *slog.Logger, interval time.Duration) *KeyRefreshService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &KeyRefreshService{
		Client:   client,
		Keys:     keys,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically refreshes keys.
// This is non-blocking; call Stop() to gracefully shut the worker down.
func (s *KeyRefreshService) Start() {
	go s.run()
	s.Logger.Info("key refresh service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until any in-progress fetch has finished.
func (s *KeyRefreshService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("key refresh service stopped")
}

// run is the main background worker loop.
func (s *KeyRefreshService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Fetch immediately on startup so /readyz can go green without
	// waiting a full interval.
	s.refresh()

	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.stopCh:
			return
		}
	}
}

// refresh fetches the JWKS and swaps it into the KeySet. A failed fetch
// keeps the previous keys; tokens keep verifying against the last good set.
func (s *KeyRefreshService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Client.FetchInto(ctx, s.Keys); err != nil {
		s.Logger.Error("failed to refresh JWKS", "error", err)
		return
	}
	s.Logger.Debug("JWKS refreshed")
}
