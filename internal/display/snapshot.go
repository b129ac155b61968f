package display

import (
	"time"

	"github.com/skbsalatiga/signage-backend/internal/models"
)

// Snapshot is everything the display shows, fetched in one request
type Snapshot struct {
	Staff         []models.StaffStatus        `json:"staff"`
	Announcements []models.Announcement       `json:"announcements"`
	Ticker        Ticker                      `json:"ticker"`
	Playlist      []models.VideoPlaylistEntry `json:"playlist"`
	VideoConfig   *models.VideoConfig         `json:"videoConfig"`
	GeneratedAt   string                      `json:"generatedAt"`
}

// NewSnapshot assembles a snapshot from store results
func NewSnapshot(
	staff []models.StaffStatus,
	anns []models.Announcement,
	playlist []models.VideoPlaylistEntry,
	legacy *models.VideoConfig,
	separator string,
	now time.Time,
) *Snapshot {
	return &Snapshot{
		Staff:         staff,
		Announcements: anns,
		Ticker:        NewTicker(anns, separator),
		Playlist:      playlist,
		VideoConfig:   legacy,
		GeneratedAt:   models.Timestamp(now),
	}
}
