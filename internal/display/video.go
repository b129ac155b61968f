package display

import (
	"time"

	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/skbsalatiga/signage-backend/pkg/validator"
)

// VideoState is the state of the video panel
type VideoState int

const (
	StateLoading VideoState = iota
	StateShowingPlaylist
	StateShowingLegacyConfig
	StateEmpty
)

func (s VideoState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateShowingPlaylist:
		return "playlist"
	case StateShowingLegacyConfig:
		return "legacy"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Video is what the panel currently plays
type Video struct {
	VideoID  string `json:"videoId"`
	Title    string `json:"title"`
	EmbedURL string `json:"embedUrl"`
}

var youtube = validator.NewVideoIDValidator()

func newVideo(id string, title models.NullString) *Video {
	return &Video{VideoID: id, Title: title.String, EmbedURL: youtube.EmbedURL(id)}
}

// VideoPanel picks the video to show: the playlist entry at a rotating
// index, else the legacy config, else nothing.
type VideoPanel struct {
	state    VideoState
	playlist []models.VideoPlaylistEntry
	legacy   *models.VideoConfig
	index    int
}

// NewVideoPanel starts in StateLoading
func NewVideoPanel() *VideoPanel {
	return &VideoPanel{state: StateLoading}
}

// Resolve applies a fetch result. The index is kept when it is still in range.
func (p *VideoPanel) Resolve(playlist []models.VideoPlaylistEntry, legacy *models.VideoConfig) {
	p.playlist = playlist
	p.legacy = legacy

	switch {
	case len(playlist) > 0:
		p.state = StateShowingPlaylist
		if p.index >= len(playlist) {
			p.index = 0
		}
	case legacy != nil:
		p.state = StateShowingLegacyConfig
		p.index = 0
	default:
		p.state = StateEmpty
		p.index = 0
	}
}

// State returns the current state
func (p *VideoPanel) State() VideoState { return p.state }

// Index returns the playlist position, 0 outside StateShowingPlaylist
func (p *VideoPanel) Index() int { return p.index }

// Len returns the playlist length
func (p *VideoPanel) Len() int { return len(p.playlist) }

// Seek jumps to index i modulo the playlist length
func (p *VideoPanel) Seek(i int) {
	if p.state != StateShowingPlaylist {
		return
	}
	n := len(p.playlist)
	p.index = ((i % n) + n) % n
}

// Next advances with wrap-around
func (p *VideoPanel) Next() { p.Seek(p.index + 1) }

// Prev steps back with wrap-around
func (p *VideoPanel) Prev() { p.Seek(p.index - 1) }

// Current returns the video to play, nil when loading or empty
func (p *VideoPanel) Current() *Video {
	switch p.state {
	case StateShowingPlaylist:
		e := p.playlist[p.index]
		return newVideo(e.VideoID, e.Title)
	case StateShowingLegacyConfig:
		return newVideo(p.legacy.VideoID, p.legacy.Title)
	default:
		return nil
	}
}

// Rotation advances the playlist every Interval
type Rotation struct {
	Interval time.Duration
}

// Advance moves p forward by the number of whole intervals elapsed since
// the last advance and returns the new reference time. A zero since starts
// the timer at now.
func (r Rotation) Advance(p *VideoPanel, since, now time.Time) time.Time {
	if since.IsZero() || since.After(now) {
		return now
	}
	if p.State() != StateShowingPlaylist || r.Interval <= 0 {
		return since
	}

	steps := int(now.Sub(since) / r.Interval)
	if steps == 0 {
		return since
	}
	p.Seek(p.Index() + steps%p.Len())
	return since.Add(time.Duration(steps) * r.Interval)
}
