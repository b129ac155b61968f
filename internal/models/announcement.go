package models

import (
	"fmt"
	"math"
	"strings"
)

// Priority bounds match the 32-bit INTEGER columns of every SQL dialect
const (
	MinPriority = math.MinInt32
	MaxPriority = math.MaxInt32
)

func validatePriority(p *int) error {
	if p != nil && (*p < MinPriority || *p > MaxPriority) {
		return NewValidationError("priority", fmt.Sprintf("must be between %d and %d", MinPriority, MaxPriority))
	}
	return nil
}

// Announcement is one ticker message
type Announcement struct {
	ID        int64  `json:"id" db:"id"`
	Text      string `json:"text" db:"text"`
	IsActive  bool   `json:"isActive" db:"is_active"`
	Priority  int    `json:"priority" db:"priority"`
	CreatedAt string `json:"createdAt" db:"created_at"`
}

// CreateAnnouncementRequest is the payload of POST /api/announcements.
// isActive defaults to true and priority to 0.
type CreateAnnouncementRequest struct {
	Text     string `json:"text"`
	IsActive *bool  `json:"isActive"`
	Priority *int   `json:"priority"`
}

// AnnouncementPatch carries the fields of a partial update; nil means unchanged
type AnnouncementPatch struct {
	Text     *string `json:"text"`
	IsActive *bool   `json:"isActive"`
	Priority *int    `json:"priority"`
}

// Validate checks the create payload
func (r *CreateAnnouncementRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return NewValidationError("text", "Announcement text is required")
	}
	return validatePriority(r.Priority)
}

// Active returns the requested flag, true when omitted
func (r *CreateAnnouncementRequest) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

// PriorityOrDefault returns the requested priority, 0 when omitted
func (r *CreateAnnouncementRequest) PriorityOrDefault() int {
	if r.Priority == nil {
		return 0
	}
	return *r.Priority
}

// Validate rejects a patch that would blank the text
func (p *AnnouncementPatch) Validate() error {
	if p.Text != nil {
		trimmed := strings.TrimSpace(*p.Text)
		if trimmed == "" {
			return NewValidationError("text", "must not be empty")
		}
		p.Text = &trimmed
	}
	return validatePriority(p.Priority)
}

// Apply merges the patch into a
func (p *AnnouncementPatch) Apply(a *Announcement) {
	if p.Text != nil {
		a.Text = *p.Text
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
}
