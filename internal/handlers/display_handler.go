package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/display"
	"github.com/skbsalatiga/signage-backend/internal/services"
	"github.com/skbsalatiga/signage-backend/internal/web"
)

// DisplayHandler serves the public display page and its JSON snapshot
type DisplayHandler struct {
	display *services.DisplayService
	opts    display.PageOptions
	logger  *logrus.Logger
	now     func() time.Time
}

// NewDisplayHandler creates a new display handler
func NewDisplayHandler(displayService *services.DisplayService, opts display.PageOptions, logger *logrus.Logger) *DisplayHandler {
	return &DisplayHandler{
		display: displayService,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// GetSnapshot handles GET /api/display
func (h *DisplayHandler) GetSnapshot(c *gin.Context) {
	snap, err := h.display.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to get display content")
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Page handles GET /
// The query carries the video rotation state: v (index) and since (unix seconds).
func (h *DisplayHandler) Page(c *gin.Context) {
	snap, err := h.display.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build display page")
		c.String(http.StatusInternalServerError, "Gagal memuat konten")
		return
	}

	params := display.ParseRotationParams(c.Request.URL.Query())
	page := display.BuildPage(snap, h.opts, params, h.now())

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, web.DisplayTemplate, page)
}
