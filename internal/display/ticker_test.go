package display

import (
	"strings"
	"testing"
	"time"

	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTickerText(t *testing.T) {
	tests := []struct {
		name string
		anns []models.Announcement
		want string
	}{
		{
			name: "Priority Order",
			anns: []models.Announcement{
				{ID: 1, Text: "A", Priority: 2, IsActive: true},
				{ID: 2, Text: "B", Priority: 1, IsActive: true},
			},
			want: "B || A",
		},
		{
			name: "Inactive Skipped",
			anns: []models.Announcement{
				{ID: 1, Text: "A", Priority: 0, IsActive: false},
				{ID: 2, Text: "B", Priority: 1, IsActive: true},
			},
			want: "B",
		},
		{
			name: "Ties By Id",
			anns: []models.Announcement{
				{ID: 9, Text: "late", Priority: 0, IsActive: true},
				{ID: 3, Text: "early", Priority: 0, IsActive: true},
			},
			want: "early || late",
		},
		{
			name: "None",
			anns: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TickerText(tt.anns, DefaultSeparator))
		})
	}
}

func TestScrollDuration(t *testing.T) {
	t.Run("Short Text Uses Base", func(t *testing.T) {
		assert.Equal(t, 20*time.Second, ScrollDuration("Halo"))
	})

	t.Run("Scales With Length", func(t *testing.T) {
		assert.Equal(t, 50*time.Second, ScrollDuration(strings.Repeat("x", 250)))
	})

	t.Run("Clamped", func(t *testing.T) {
		assert.Equal(t, 100*time.Second, ScrollDuration(strings.Repeat("x", 5000)))
	})

	t.Run("Monotonic", func(t *testing.T) {
		assert.LessOrEqual(t, ScrollDuration(strings.Repeat("x", 120)), ScrollDuration(strings.Repeat("x", 180)))
	})
}

func TestNewTicker(t *testing.T) {
	t.Run("Empty Placeholder", func(t *testing.T) {
		tk := NewTicker(nil, "")
		assert.True(t, tk.Empty)
		assert.Equal(t, EmptyTickerText, tk.Text)
		assert.Equal(t, 20.0, tk.DurationSeconds)
	})

	t.Run("Custom Separator", func(t *testing.T) {
		tk := NewTicker([]models.Announcement{
			{ID: 1, Text: "A", IsActive: true},
			{ID: 2, Text: "B", IsActive: true},
		}, " * ")
		assert.False(t, tk.Empty)
		assert.Equal(t, "A * B", tk.Text)
	})
}
