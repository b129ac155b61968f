package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVideoIDValidator(t *testing.T) {
	validator := NewVideoIDValidator()
	assert.NotNil(t, validator)
}

func TestValidate_ValidReferences(t *testing.T) {
	validator := NewVideoIDValidator()

	validRefs := []struct {
		input    string
		expected string
		name     string
	}{
		{"b6IVH_Xk1gE", "b6IVH_Xk1gE", "Bare id"},
		{"  dQw4w9WgXcQ ", "dQw4w9WgXcQ", "Bare id with spaces"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", "Watch URL"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", "Watch URL with timestamp"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", "Short URL"},
		{"youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", "Short URL without scheme"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", "Embed URL"},
		{"https://m.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", "Shorts URL"},
		{"vid-1", "vid-1", "Short custom id"},
	}

	for _, tc := range validRefs {
		t.Run(tc.name, func(t *testing.T) {
			id, err := validator.Validate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestValidate_InvalidReferences(t *testing.T) {
	validator := NewVideoIDValidator()

	invalidRefs := []struct {
		input       string
		expectedErr error
		name        string
	}{
		{"", ErrEmptyVideoID, "Empty"},
		{"   ", ErrEmptyVideoID, "Whitespace only"},
		{"abc def", ErrInvalidVideoID, "Contains space"},
		{"abc!def", ErrInvalidVideoID, "Contains punctuation"},
		{"https://vimeo.com/12345", ErrUnsupportedURL, "Foreign host"},
		{"https://www.youtube.com/feed/trending", ErrUnsupportedURL, "URL without id"},
	}

	for _, tc := range invalidRefs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Validate(tc.input)
			assert.Error(t, err)
			assert.Equal(t, tc.expectedErr, err)
		})
	}
}

func TestIsCanonical(t *testing.T) {
	validator := NewVideoIDValidator()

	assert.True(t, validator.IsCanonical("b6IVH_Xk1gE"))
	assert.False(t, validator.IsCanonical("short"))
	assert.False(t, validator.IsCanonical("b6IVH Xk1gE"))
	assert.False(t, validator.IsCanonical(""))
}

func TestEmbedURL(t *testing.T) {
	validator := NewVideoIDValidator()

	assert.Equal(t,
		"https://www.youtube.com/embed/b6IVH_Xk1gE?rel=0&modestbranding=1&controls=1&showinfo=0",
		validator.EmbedURL("b6IVH_Xk1gE"))
	assert.Equal(t, "https://www.youtube.com/watch?v=b6IVH_Xk1gE", validator.WatchURL("b6IVH_Xk1gE"))
}
