package validator

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// ErrEmptyVideoID indicates the video reference is empty
	ErrEmptyVideoID = errors.New("video ID cannot be empty")

	// ErrInvalidVideoID indicates the reference contains characters YouTube never uses in ids
	ErrInvalidVideoID = errors.New("video ID can only contain letters, digits, '-' and '_'")

	// ErrUnsupportedURL indicates a URL that carries no recognisable video id
	ErrUnsupportedURL = errors.New("URL does not reference a YouTube video")
)

// CanonicalIDLength is the length of every id YouTube currently issues
const CanonicalIDLength = 11

// videoIDRegex matches the YouTube id alphabet
var videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// youtubeHosts are the hosts whose URLs we know how to unpack
var youtubeHosts = []string{
	"youtube.com",
	"www.youtube.com",
	"m.youtube.com",
	"music.youtube.com",
	"youtu.be",
	"www.youtube-nocookie.com",
}

// VideoIDValidator handles YouTube video id validation
type VideoIDValidator struct{}

// NewVideoIDValidator creates a new video id validator instance
func NewVideoIDValidator() *VideoIDValidator {
	return &VideoIDValidator{}
}

// Validate accepts a bare id or a watch / short / embed / shorts URL
// Returns the bare id and error if invalid
func (v *VideoIDValidator) Validate(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyVideoID
	}

	id := ref
	if strings.Contains(ref, "/") || strings.Contains(ref, "?") {
		extracted, err := v.Extract(ref)
		if err != nil {
			return "", err
		}
		id = extracted
	}

	if !videoIDRegex.MatchString(id) {
		return "", ErrInvalidVideoID
	}

	return id, nil
}

// Extract pulls the id out of a YouTube URL
func (v *VideoIDValidator) Extract(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrUnsupportedURL
	}

	host := strings.ToLower(u.Hostname())
	if !v.IsYouTubeHost(host) {
		return "", ErrUnsupportedURL
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch {
	case host == "youtu.be":
		id = segments[0]
	case u.Query().Get("v") != "":
		id = u.Query().Get("v")
	case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live" || segments[0] == "v"):
		id = segments[1]
	}

	if id == "" {
		return "", ErrUnsupportedURL
	}
	return id, nil
}

// IsYouTubeHost checks if host serves YouTube videos
func (v *VideoIDValidator) IsYouTubeHost(host string) bool {
	for _, h := range youtubeHosts {
		if host == h {
			return true
		}
	}
	return false
}

// IsCanonical reports whether id has the length YouTube issues today
func (v *VideoIDValidator) IsCanonical(id string) bool {
	return len(id) == CanonicalIDLength && videoIDRegex.MatchString(id)
}

// EmbedURL returns the player URL used by the display page
func (v *VideoIDValidator) EmbedURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?rel=0&modestbranding=1&controls=1&showinfo=0", url.PathEscape(id))
}

// WatchURL returns the public watch page of id
func (v *VideoIDValidator) WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id)
}
