package display

import (
	"testing"
	"time"

	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playlistOf(ids ...string) []models.VideoPlaylistEntry {
	out := make([]models.VideoPlaylistEntry, len(ids))
	for i, id := range ids {
		out[i] = models.VideoPlaylistEntry{ID: int64(i + 1), VideoID: id, IsActive: true, Priority: i}
	}
	return out
}

func TestVideoPanel_Resolve(t *testing.T) {
	legacy := &models.VideoConfig{ID: 1, VideoID: "b6IVH_Xk1gE", Title: models.NewNullString("Video Promosi SKB Salatiga")}

	t.Run("Starts Loading", func(t *testing.T) {
		p := NewVideoPanel()
		assert.Equal(t, StateLoading, p.State())
		assert.Nil(t, p.Current())
	})

	t.Run("Playlist", func(t *testing.T) {
		p := NewVideoPanel()
		p.Resolve(playlistOf("aaa", "bbb"), legacy)
		assert.Equal(t, StateShowingPlaylist, p.State())
		require.NotNil(t, p.Current())
		assert.Equal(t, "aaa", p.Current().VideoID)
	})

	t.Run("Legacy Fallback", func(t *testing.T) {
		p := NewVideoPanel()
		p.Resolve(nil, legacy)
		assert.Equal(t, StateShowingLegacyConfig, p.State())
		v := p.Current()
		require.NotNil(t, v)
		assert.Equal(t, "b6IVH_Xk1gE", v.VideoID)
		assert.Equal(t, "Video Promosi SKB Salatiga", v.Title)
		assert.Contains(t, v.EmbedURL, "/embed/b6IVH_Xk1gE?rel=0")
	})

	t.Run("Empty", func(t *testing.T) {
		p := NewVideoPanel()
		p.Resolve([]models.VideoPlaylistEntry{}, nil)
		assert.Equal(t, StateEmpty, p.State())
		assert.Nil(t, p.Current())
	})

	t.Run("Playlist Emptied Falls Back", func(t *testing.T) {
		p := NewVideoPanel()
		p.Resolve(playlistOf("aaa", "bbb", "ccc"), legacy)
		p.Seek(2)
		p.Resolve(nil, legacy)
		assert.Equal(t, StateShowingLegacyConfig, p.State())
		assert.Equal(t, 0, p.Index())
	})

	t.Run("Index Kept When In Range", func(t *testing.T) {
		p := NewVideoPanel()
		p.Resolve(playlistOf("aaa", "bbb", "ccc"), nil)
		p.Seek(1)
		p.Resolve(playlistOf("aaa", "bbb"), nil)
		assert.Equal(t, 1, p.Index())

		p.Resolve(playlistOf("aaa"), nil)
		assert.Equal(t, 0, p.Index())
	})
}

func TestVideoPanel_NextWrapsAround(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}

		p := NewVideoPanel()
		p.Resolve(playlistOf(ids...), nil)
		for i := 0; i < n; i++ {
			p.Next()
		}
		assert.Equal(t, 0, p.Index(), "playlist of %d", n)
	}

	t.Run("Prev From Start", func(t *testing.T) {
		p := NewVideoPanel()
		p.Resolve(playlistOf("a", "b", "c"), nil)
		p.Prev()
		assert.Equal(t, 2, p.Index())
	})

	t.Run("Ignored Outside Playlist", func(t *testing.T) {
		p := NewVideoPanel()
		p.Next()
		assert.Equal(t, StateLoading, p.State())
		assert.Equal(t, 0, p.Index())
	})
}

func TestRotation_Advance(t *testing.T) {
	r := Rotation{Interval: 5 * time.Minute}
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	newPanel := func() *VideoPanel {
		p := NewVideoPanel()
		p.Resolve(playlistOf("a", "b", "c"), nil)
		return p
	}

	t.Run("Starts Timer", func(t *testing.T) {
		p := newPanel()
		since := r.Advance(p, time.Time{}, start)
		assert.Equal(t, start, since)
		assert.Equal(t, 0, p.Index())
	})

	t.Run("Before Interval", func(t *testing.T) {
		p := newPanel()
		since := r.Advance(p, start, start.Add(4*time.Minute))
		assert.Equal(t, start, since)
		assert.Equal(t, 0, p.Index())
	})

	t.Run("One Interval", func(t *testing.T) {
		p := newPanel()
		since := r.Advance(p, start, start.Add(5*time.Minute+10*time.Second))
		assert.Equal(t, start.Add(5*time.Minute), since)
		assert.Equal(t, 1, p.Index())
	})

	t.Run("Several Intervals Wrap", func(t *testing.T) {
		p := newPanel()
		p.Seek(2)
		since := r.Advance(p, start, start.Add(16*time.Minute))
		assert.Equal(t, start.Add(15*time.Minute), since)
		assert.Equal(t, 2, p.Index())
	})

	t.Run("Future Since Resets", func(t *testing.T) {
		p := newPanel()
		since := r.Advance(p, start.Add(time.Hour), start)
		assert.Equal(t, start, since)
	})
}
