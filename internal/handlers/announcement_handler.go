package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

// legacyAnnouncementRequest is the body of POST /api/announcement
type legacyAnnouncementRequest struct {
	Text string `json:"text"`
}

// GetLatestAnnouncement handles GET /api/announcement
func (h *ContentHandler) GetLatestAnnouncement(c *gin.Context) {
	ann, err := h.store.LatestAnnouncement(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to get announcement")
		return
	}
	if ann == nil {
		respondNotFound(c, "No announcements found")
		return
	}
	c.JSON(http.StatusOK, ann)
}

// CreateLegacyAnnouncement handles POST /api/announcement
func (h *ContentHandler) CreateLegacyAnnouncement(c *gin.Context) {
	var req legacyAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid announcement data")
		return
	}

	h.createAnnouncement(c, models.CreateAnnouncementRequest{Text: req.Text}, http.StatusOK)
}

// ListAnnouncements handles GET /api/announcements
// Only active announcements are listed unless ?all=true.
func (h *ContentHandler) ListAnnouncements(c *gin.Context) {
	var (
		anns []models.Announcement
		err  error
	)
	if wantAll(c) {
		anns, err = h.store.ListAllAnnouncements(c.Request.Context())
	} else {
		anns, err = h.store.ListActiveAnnouncements(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to get announcements")
		return
	}
	c.JSON(http.StatusOK, anns)
}

// CreateAnnouncement handles POST /api/announcements
func (h *ContentHandler) CreateAnnouncement(c *gin.Context) {
	var req models.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid announcement data")
		return
	}

	h.createAnnouncement(c, req, http.StatusCreated)
}

func (h *ContentHandler) createAnnouncement(c *gin.Context, req models.CreateAnnouncementRequest, status int) {
	ann, err := h.store.CreateAnnouncement(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Invalid announcement data", "Failed to create announcement")
		return
	}

	h.invalidate(c)
	c.JSON(status, ann)
}

// PatchAnnouncement handles PATCH /api/announcements/:id
func (h *ContentHandler) PatchAnnouncement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch models.AnnouncementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, "Invalid announcement data")
		return
	}

	ann, err := h.store.PatchAnnouncement(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err, "Invalid announcement data", "Failed to update announcement")
		return
	}
	if ann == nil {
		respondNotFound(c, "Announcement not found")
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, ann)
}

// DeleteAnnouncement handles DELETE /api/announcements/:id
func (h *ContentHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteAnnouncement(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to delete announcement")
		return
	}
	if !deleted {
		respondNotFound(c, "Announcement not found")
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
