package services

import (
	"context"
	"testing"
	"time"

	"github.com/skbsalatiga/signage-backend/internal/cache"
	"github.com/skbsalatiga/signage-backend/internal/display"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayService_Build(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewDisplayService(store, cache.NewMemoryKVStore(), 0, display.DefaultSeparator, testLogger())

	t.Run("Seeded Content Falls Back To Legacy Video", func(t *testing.T) {
		snap, err := svc.Build(ctx)
		require.NoError(t, err)
		assert.Len(t, snap.Staff, 5)
		assert.Len(t, snap.Announcements, 1)
		assert.Empty(t, snap.Playlist)
		require.NotNil(t, snap.VideoConfig)
		assert.Equal(t, "b6IVH_Xk1gE", snap.VideoConfig.VideoID)
		assert.False(t, snap.Ticker.Empty)
	})

	t.Run("Playlist Suppresses Legacy", func(t *testing.T) {
		_, err := store.AddVideoPlaylistEntry(ctx, models.AddVideoRequest{VideoID: "dQw4w9WgXcQ"})
		require.NoError(t, err)

		snap, err := svc.Build(ctx)
		require.NoError(t, err)
		assert.Len(t, snap.Playlist, 1)
		assert.Nil(t, snap.VideoConfig)
	})

	t.Run("Ticker Order", func(t *testing.T) {
		all, err := store.ListAllAnnouncements(ctx)
		require.NoError(t, err)
		for _, a := range all {
			_, err := store.DeleteAnnouncement(ctx, a.ID)
			require.NoError(t, err)
		}
		_, err = store.CreateAnnouncement(ctx, models.CreateAnnouncementRequest{Text: "A", Priority: intPtr(2)})
		require.NoError(t, err)
		_, err = store.CreateAnnouncement(ctx, models.CreateAnnouncementRequest{Text: "B", Priority: intPtr(1)})
		require.NoError(t, err)

		snap, err := svc.Build(ctx)
		require.NoError(t, err)
		assert.Equal(t, "B || A", snap.Ticker.Text)
	})
}

func TestDisplayService_SnapshotCache(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: seededStore(t)}
	kv := cache.NewMemoryKVStore()
	svc := NewDisplayService(store, kv, time.Minute, display.DefaultSeparator, testLogger())

	first, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.staffReads)

	second, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.staffReads, "second read should be served from cache")
	assert.Equal(t, first.Ticker, second.Ticker)
	assert.Equal(t, first.VideoConfig.VideoID, second.VideoConfig.VideoID)

	t.Run("Invalidate", func(t *testing.T) {
		_, err := store.AddStaff(ctx, models.AddStaffRequest{Title: "TAMU"})
		require.NoError(t, err)
		svc.Invalidate(ctx)

		snap, err := svc.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, store.staffReads)
		assert.Len(t, snap.Staff, 6)
	})

	t.Run("Corrupt Entry Rebuilt", func(t *testing.T) {
		gen, err := svc.generation(ctx)
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, snapshotKey(gen), "{not json", time.Minute))

		snap, err := svc.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, snap.Staff, 6)
		assert.Equal(t, 3, store.staffReads)
	})

	t.Run("Disabled Cache Always Reads Store", func(t *testing.T) {
		uncached := NewDisplayService(store, kv, 0, display.DefaultSeparator, testLogger())
		before := store.staffReads
		_, err := uncached.Snapshot(ctx)
		require.NoError(t, err)
		_, err = uncached.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+2, store.staffReads)
	})
}

func TestDisplayService_BuildRacingInvalidate(t *testing.T) {
	ctx := context.Background()
	store := &blockingStore{
		Store:   seededStore(t),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewDisplayService(store, cache.NewMemoryKVStore(), time.Minute, display.DefaultSeparator, testLogger())

	done := make(chan *display.Snapshot)
	go func() {
		snap, err := svc.Snapshot(ctx)
		assert.NoError(t, err)
		done <- snap
	}()

	<-store.entered
	_, err := store.Store.AddStaff(ctx, models.AddStaffRequest{Title: "TAMU"})
	require.NoError(t, err)
	svc.Invalidate(ctx)
	close(store.release)

	stale := <-done
	require.NotNil(t, stale)
	assert.Len(t, stale.Staff, 5)

	fresh, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Staff, 6, "a build finished after invalidation must not be cached")
}
