package display

import (
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

const (
	// DefaultSeparator joins announcement texts on the ticker
	DefaultSeparator = " || "

	// EmptyTickerText is shown when no announcement is active
	EmptyTickerText = "Tidak ada pengumuman saat ini."

	baseScrollDuration = 20 * time.Second
	baseScrollWidth    = 100
	minScrollFactor    = 1.0
	maxScrollFactor    = 5.0
)

// Ticker is the running-text line under the display
type Ticker struct {
	Text            string  `json:"text"`
	DurationSeconds float64 `json:"durationSeconds"`
	Empty           bool    `json:"empty"`
}

// TickerText joins the texts of active announcements in priority order.
// It returns "" when none is active.
func TickerText(anns []models.Announcement, sep string) string {
	active := make([]models.Announcement, 0, len(anns))
	for _, a := range anns {
		if a.IsActive {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		return active[i].ID < active[j].ID
	})

	texts := make([]string, len(active))
	for i, a := range active {
		texts[i] = a.Text
	}
	return strings.Join(texts, sep)
}

// ScrollDuration keeps the reading speed constant: the duration grows with
// the rendered width of text, clamped to [1, 5] times the base duration.
func ScrollDuration(text string) time.Duration {
	factor := float64(runewidth.StringWidth(text)) / baseScrollWidth
	if factor < minScrollFactor {
		factor = minScrollFactor
	}
	if factor > maxScrollFactor {
		factor = maxScrollFactor
	}
	return time.Duration(float64(baseScrollDuration) * factor)
}

// NewTicker builds the ticker for anns, falling back to EmptyTickerText
func NewTicker(anns []models.Announcement, sep string) Ticker {
	if sep == "" {
		sep = DefaultSeparator
	}

	text := TickerText(anns, sep)
	empty := text == ""
	if empty {
		text = EmptyTickerText
	}

	return Ticker{
		Text:            text,
		DurationSeconds: ScrollDuration(text).Seconds(),
		Empty:           empty,
	}
}
