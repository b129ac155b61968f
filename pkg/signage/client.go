package signage

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/skbsalatiga/signage-backend/internal/display"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

// APIError is a non-2xx answer from the signage API
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Detail     string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status: %d)", e.Message, e.Detail, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the signage content API. Calls are never retried.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "signage-admin/1.0")

	return &Client{httpClient: client}
}

// do runs one request, decoding result on success and an APIError otherwise
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	apiErr := &APIError{}
	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return apiErr
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func listPath(path string, all bool) string {
	if all {
		return path + "?all=true"
	}
	return path
}

// Snapshot fetches GET /api/display
func (c *Client) Snapshot(ctx context.Context) (*display.Snapshot, error) {
	var snap display.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/display", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListStaff fetches the staff list
func (c *Client) ListStaff(ctx context.Context) ([]models.StaffStatus, error) {
	var staff []models.StaffStatus
	if err := c.do(ctx, http.MethodGet, "/api/staff-status", nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// ReplaceStaff saves the whole staff list
func (c *Client) ReplaceStaff(ctx context.Context, staff []models.StaffStatus) ([]models.StaffStatus, error) {
	var saved []models.StaffStatus
	if err := c.do(ctx, http.MethodPost, "/api/staff-status", staff, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// AddStaff adds one role
func (c *Client) AddStaff(ctx context.Context, req models.AddStaffRequest) (*models.StaffStatus, error) {
	var staff models.StaffStatus
	if err := c.do(ctx, http.MethodPost, "/api/staff", req, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

// RemoveStaff deletes one role
func (c *Client) RemoveStaff(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/staff", id), nil, nil)
}

// ListAnnouncements fetches active announcements, or all of them when all is set
func (c *Client) ListAnnouncements(ctx context.Context, all bool) ([]models.Announcement, error) {
	var anns []models.Announcement
	if err := c.do(ctx, http.MethodGet, listPath("/api/announcements", all), nil, &anns); err != nil {
		return nil, err
	}
	return anns, nil
}

// CreateAnnouncement adds an announcement
func (c *Client) CreateAnnouncement(ctx context.Context, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	var ann models.Announcement
	if err := c.do(ctx, http.MethodPost, "/api/announcements", req, &ann); err != nil {
		return nil, err
	}
	return &ann, nil
}

// PatchAnnouncement updates the given fields of an announcement
func (c *Client) PatchAnnouncement(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	var ann models.Announcement
	if err := c.do(ctx, http.MethodPatch, idPath("/api/announcements", id), patch, &ann); err != nil {
		return nil, err
	}
	return &ann, nil
}

// DeleteAnnouncement removes an announcement
func (c *Client) DeleteAnnouncement(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/announcements", id), nil, nil)
}

// VideoConfig fetches the legacy single video; nil when none is set
func (c *Client) VideoConfig(ctx context.Context) (*models.VideoConfig, error) {
	var cfg models.VideoConfig
	if err := c.do(ctx, http.MethodGet, "/api/video-config", nil, &cfg); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// SetVideoConfig stores a new legacy video
func (c *Client) SetVideoConfig(ctx context.Context, req models.SetVideoConfigRequest) (*models.VideoConfig, error) {
	var cfg models.VideoConfig
	if err := c.do(ctx, http.MethodPost, "/api/video-config", req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ListPlaylist fetches active playlist entries, or all of them when all is set
func (c *Client) ListPlaylist(ctx context.Context, all bool) ([]models.VideoPlaylistEntry, error) {
	var entries []models.VideoPlaylistEntry
	if err := c.do(ctx, http.MethodGet, listPath("/api/video-playlist", all), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetPlaylistEntry fetches one playlist entry, active or not
func (c *Client) GetPlaylistEntry(ctx context.Context, id int64) (*models.VideoPlaylistEntry, error) {
	var entry models.VideoPlaylistEntry
	if err := c.do(ctx, http.MethodGet, idPath("/api/video-playlist", id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AddPlaylistEntry adds a video to the playlist
func (c *Client) AddPlaylistEntry(ctx context.Context, req models.AddVideoRequest) (*models.VideoPlaylistEntry, error) {
	var entry models.VideoPlaylistEntry
	if err := c.do(ctx, http.MethodPost, "/api/video-playlist", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// PatchPlaylistEntry updates the given fields of a playlist entry
func (c *Client) PatchPlaylistEntry(ctx context.Context, id int64, patch models.VideoPatch) (*models.VideoPlaylistEntry, error) {
	var entry models.VideoPlaylistEntry
	if err := c.do(ctx, http.MethodPatch, idPath("/api/video-playlist", id), patch, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeletePlaylistEntry removes a video from the playlist
func (c *Client) DeletePlaylistEntry(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/video-playlist", id), nil, nil)
}
