package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

// Store is the content storage contract shared by the durable and in-memory
// backends. Lookups return (nil, nil) when the id does not exist; deletes
// report whether a row was removed.
type Store interface {
	// Staff status
	ListStaff(ctx context.Context) ([]models.StaffStatus, error)
	ReplaceAllStaff(ctx context.Context, list []models.StaffStatus) ([]models.StaffStatus, error)
	AddStaff(ctx context.Context, req models.AddStaffRequest) (*models.StaffStatus, error)
	RemoveStaff(ctx context.Context, id int64) (bool, error)

	// Announcements
	LatestAnnouncement(ctx context.Context) (*models.Announcement, error)
	ListActiveAnnouncements(ctx context.Context) ([]models.Announcement, error)
	ListAllAnnouncements(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, req models.CreateAnnouncementRequest) (*models.Announcement, error)
	PatchAnnouncement(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) (bool, error)

	// Legacy single video
	LatestVideoConfig(ctx context.Context) (*models.VideoConfig, error)
	SetVideoConfig(ctx context.Context, req models.SetVideoConfigRequest) (*models.VideoConfig, error)
	PruneVideoConfigs(ctx context.Context, keep int) (int64, error)

	// Video playlist
	ListActiveVideoPlaylist(ctx context.Context) ([]models.VideoPlaylistEntry, error)
	ListAllVideoPlaylist(ctx context.Context) ([]models.VideoPlaylistEntry, error)
	GetVideoPlaylistEntry(ctx context.Context, id int64) (*models.VideoPlaylistEntry, error)
	AddVideoPlaylistEntry(ctx context.Context, req models.AddVideoRequest) (*models.VideoPlaylistEntry, error)
	PatchVideoPlaylistEntry(ctx context.Context, id int64, patch models.VideoPatch) (*models.VideoPlaylistEntry, error)
	DeleteVideoPlaylistEntry(ctx context.Context, id int64) (bool, error)

	// Users
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)

	// SeedIfEmpty loads seed content when every content collection is empty
	SeedIfEmpty(ctx context.Context, seed *config.SeedContent) (bool, error)

	// Kind names the backend ("memory", "postgres", "sqlite")
	Kind() string
	Ping(ctx context.Context) error
	Close() error
}

// NewStore opens the durable store when a database URL is configured and
// falls back to process memory otherwise. The durable store is migrated and
// seeded on first use.
func NewStore(ctx context.Context, cfg config.DatabaseConfig, seed *config.SeedContent, logger *logrus.Logger) (Store, error) {
	if cfg.URL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store (content is lost on restart)")
		return NewMemoryStore(seed), nil
	}

	db, err := NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	store := NewSQLStore(db)
	seeded, err := store.SeedIfEmpty(ctx, seed)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"driver": cfg.Driver,
		"seeded": seeded,
	}).Info("Connected to database")

	return store, nil
}
