package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

// ListStaff handles GET /api/staff-status
func (h *ContentHandler) ListStaff(c *gin.Context) {
	staff, err := h.store.ListStaff(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to get staff status")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// ReplaceStaff handles POST /api/staff-status
// The body is the complete list; the stored list is replaced wholesale.
func (h *ContentHandler) ReplaceStaff(c *gin.Context) {
	var items []models.StaffStatusItem
	if err := c.ShouldBindJSON(&items); err != nil {
		respondBindError(c, err, "Invalid staff status data")
		return
	}
	// A JSON null decodes to a nil slice; only an explicit [] clears the list
	if items == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid staff status data",
			Error:   "body must be an array",
		})
		return
	}

	list, err := models.ToStaffList(items)
	if err != nil {
		respondError(c, h.logger, err, "Invalid staff status data", "Failed to update staff status")
		return
	}

	staff, err := h.store.ReplaceAllStaff(c.Request.Context(), list)
	if err != nil {
		respondError(c, h.logger, err, "Invalid staff status data", "Failed to update staff status")
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, staff)
}

// AddStaff handles POST /api/staff
func (h *ContentHandler) AddStaff(c *gin.Context) {
	var req models.AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid staff data")
		return
	}

	staff, err := h.store.AddStaff(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Invalid staff data", "Failed to add staff")
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, staff)
}

// RemoveStaff handles DELETE /api/staff/:id
func (h *ContentHandler) RemoveStaff(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	removed, err := h.store.RemoveStaff(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to remove staff")
		return
	}
	if !removed {
		respondNotFound(c, "Staff not found")
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"message": "Staff removed"})
}
