package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/skbsalatiga/signage-backend/pkg/validator"
)

var youtube = validator.NewVideoIDValidator()

// warnNonCanonical flags stored ids the embedded player will probably reject
func (h *ContentHandler) warnNonCanonical(c *gin.Context, videoID string) {
	if youtube.IsCanonical(videoID) {
		return
	}
	h.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"path":     c.FullPath(),
	}).Warn("Video id is not a canonical YouTube id")
}

// GetVideoConfig handles GET /api/video-config
func (h *ContentHandler) GetVideoConfig(c *gin.Context) {
	cfg, err := h.store.LatestVideoConfig(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to get video config")
		return
	}
	if cfg == nil {
		respondNotFound(c, "No video config found")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SetVideoConfig handles POST /api/video-config
// Each call appends a new config; the newest one wins.
func (h *ContentHandler) SetVideoConfig(c *gin.Context) {
	var req models.SetVideoConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid video config data")
		return
	}

	cfg, err := h.store.SetVideoConfig(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Invalid video config data", "Failed to save video config")
		return
	}
	h.warnNonCanonical(c, cfg.VideoID)

	h.invalidate(c)
	c.JSON(http.StatusOK, cfg)
}

// ListVideoPlaylist handles GET /api/video-playlist
// Only active entries are listed unless ?all=true.
func (h *ContentHandler) ListVideoPlaylist(c *gin.Context) {
	var (
		entries []models.VideoPlaylistEntry
		err     error
	)
	if wantAll(c) {
		entries, err = h.store.ListAllVideoPlaylist(c.Request.Context())
	} else {
		entries, err = h.store.ListActiveVideoPlaylist(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to get video playlist")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetVideoPlaylistEntry handles GET /api/video-playlist/:id
func (h *ContentHandler) GetVideoPlaylistEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.store.GetVideoPlaylistEntry(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to get video")
		return
	}
	if entry == nil {
		respondNotFound(c, "Video not found")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// AddVideoPlaylistEntry handles POST /api/video-playlist
func (h *ContentHandler) AddVideoPlaylistEntry(c *gin.Context) {
	var req models.AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid video data")
		return
	}

	entry, err := h.store.AddVideoPlaylistEntry(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Invalid video data", "Failed to add video")
		return
	}
	h.warnNonCanonical(c, entry.VideoID)

	h.invalidate(c)
	c.JSON(http.StatusCreated, entry)
}

// PatchVideoPlaylistEntry handles PATCH /api/video-playlist/:id
func (h *ContentHandler) PatchVideoPlaylistEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch models.VideoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, "Invalid video data")
		return
	}

	entry, err := h.store.PatchVideoPlaylistEntry(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err, "Invalid video data", "Failed to update video")
		return
	}
	if entry == nil {
		respondNotFound(c, "Video not found")
		return
	}
	if patch.VideoID != nil {
		h.warnNonCanonical(c, entry.VideoID)
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, entry)
}

// DeleteVideoPlaylistEntry handles DELETE /api/video-playlist/:id
func (h *ContentHandler) DeleteVideoPlaylistEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteVideoPlaylistEntry(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to delete video")
		return
	}
	if !deleted {
		respondNotFound(c, "Video not found")
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}
