package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/skbsalatiga/signage-backend/internal/services"
)

// ErrorResponse is the body of every non-2xx API answer
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ContentHandler serves the staff, announcement and video endpoints
type ContentHandler struct {
	store   database.Store
	display *services.DisplayService
	logger  *logrus.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(store database.Store, display *services.DisplayService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		store:   store,
		display: display,
		logger:  logger,
	}
}

// invalidate drops the cached display snapshot after a successful mutation
func (h *ContentHandler) invalidate(c *gin.Context) {
	h.display.Invalidate(c.Request.Context())
}

// respondError maps validation failures to 400 and everything else to a logged 500
func respondError(c *gin.Context, logger logrus.FieldLogger, err error, invalidMsg, failMsg string) {
	var ve *models.ValidationError
	if errors.As(err, &ve) || errors.Is(err, database.ErrDuplicateUsername) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: invalidMsg, Error: err.Error()})
		return
	}

	logger.WithError(err).WithField("path", c.FullPath()).Error(failMsg)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: failMsg})
}

// respondBindError answers a body that could not be decoded into the request type
func respondBindError(c *gin.Context, err error, invalidMsg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: invalidMsg, Error: err.Error()})
}

func respondNotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: msg})
}

// parseID reads the :id path parameter, answering 400 when it is not a positive integer
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid id",
			Error:   "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

// wantAll reports whether ?all=true asks for inactive rows too
func wantAll(c *gin.Context) bool {
	all, _ := strconv.ParseBool(c.Query("all"))
	return all
}
