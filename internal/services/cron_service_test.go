package services

import (
	"context"
	"testing"

	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronService_Start(t *testing.T) {
	t.Run("Valid Schedule", func(t *testing.T) {
		svc := NewCronService(seededStore(t), config.CronConfig{PruneSchedule: "0 0 3 * * *", KeepVideoConfigs: 1}, testLogger())
		require.NoError(t, svc.Start())
		assert.Equal(t, 1, svc.Entries())
		svc.Stop()
	})

	t.Run("Invalid Schedule", func(t *testing.T) {
		svc := NewCronService(seededStore(t), config.CronConfig{PruneSchedule: "every day", KeepVideoConfigs: 1}, testLogger())
		err := svc.Start()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to schedule video config prune job")
	})
}

func TestCronService_RunPruneNow(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	for _, id := range []string{"vid00000001", "vid00000002", "vid00000003"} {
		_, err := store.SetVideoConfig(ctx, models.SetVideoConfigRequest{VideoID: id})
		require.NoError(t, err)
	}

	svc := NewCronService(store, config.CronConfig{PruneSchedule: "0 0 3 * * *", KeepVideoConfigs: 2}, testLogger())
	removed, err := svc.RunPruneNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	latest, err := store.LatestVideoConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "vid00000003", latest.VideoID)
}
