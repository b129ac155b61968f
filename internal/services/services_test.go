package services

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func seededStore(t *testing.T) *database.MemoryStore {
	t.Helper()
	return database.NewMemoryStore(config.DefaultSeed())
}

// countingStore counts snapshot reads hitting the store
type countingStore struct {
	database.Store
	staffReads int
}

func (c *countingStore) ListStaff(ctx context.Context) ([]models.StaffStatus, error) {
	c.staffReads++
	return c.Store.ListStaff(ctx)
}

// blockingStore holds the first ListStaff call until release is closed
type blockingStore struct {
	database.Store
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) ListStaff(ctx context.Context) ([]models.StaffStatus, error) {
	staff, err := b.Store.ListStaff(ctx)
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
	return staff, err
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
