package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/cache"
	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/display"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

const (
	// SnapshotCacheKey prefixes the KV key of the cached display snapshot
	SnapshotCacheKey = "signage:display:snapshot"
	// SnapshotGenerationKey holds the counter bumped by every invalidation
	SnapshotGenerationKey = "signage:display:generation"
)

// snapshotKey scopes a cached snapshot to one generation, so a build that
// started before an invalidation can never be served after it
func snapshotKey(gen int64) string {
	return fmt.Sprintf("%s:%d", SnapshotCacheKey, gen)
}

// DisplayService builds the display snapshot and caches it in the KV store.
// Every content mutation must call Invalidate.
type DisplayService struct {
	store     database.Store
	kv        cache.KVStore
	ttl       time.Duration
	separator string
	logger    *logrus.Logger
	now       func() time.Time
}

// NewDisplayService creates a new DisplayService
func NewDisplayService(store database.Store, kv cache.KVStore, ttl time.Duration, separator string, logger *logrus.Logger) *DisplayService {
	return &DisplayService{
		store:     store,
		kv:        kv,
		ttl:       ttl,
		separator: separator,
		logger:    logger,
		now:       time.Now,
	}
}

// Snapshot returns the cached snapshot or rebuilds it from the store.
// Cache failures are logged and never fail the request.
func (s *DisplayService) Snapshot(ctx context.Context) (*display.Snapshot, error) {
	if s.ttl <= 0 {
		return s.Build(ctx)
	}

	gen, err := s.generation(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read display snapshot generation")
		return s.Build(ctx)
	}
	key := snapshotKey(gen)

	raw, err := s.kv.Get(ctx, key)
	switch {
	case err == nil:
		var snap display.Snapshot
		if jsonErr := json.Unmarshal([]byte(raw), &snap); jsonErr == nil {
			return &snap, nil
		}
		s.logger.Warn("Discarding undecodable display snapshot")
	case !errors.Is(err, cache.ErrCacheMiss):
		s.logger.WithError(err).Warn("Failed to read display snapshot from cache")
	}

	snap, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err == nil {
		err = s.kv.Set(ctx, key, string(data), s.ttl)
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to cache display snapshot")
	}

	return snap, nil
}

func (s *DisplayService) generation(ctx context.Context) (int64, error) {
	raw, err := s.kv.Get(ctx, SnapshotGenerationKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse snapshot generation %q: %w", raw, err)
	}
	return gen, nil
}

// Build reads a fresh snapshot from the store
func (s *DisplayService) Build(ctx context.Context) (*display.Snapshot, error) {
	staff, err := s.store.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}

	anns, err := s.store.ListActiveAnnouncements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}

	playlist, err := s.store.ListActiveVideoPlaylist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}

	var legacy *models.VideoConfig
	if len(playlist) == 0 {
		legacy, err = s.store.LatestVideoConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load video config: %w", err)
		}
	}

	return display.NewSnapshot(staff, anns, playlist, legacy, s.separator, s.now()), nil
}

// Invalidate moves to a new snapshot generation so the next poll sees fresh content
func (s *DisplayService) Invalidate(ctx context.Context) {
	if _, err := s.kv.Incr(ctx, SnapshotGenerationKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate display snapshot")
	}
}
