package models

import (
	"github.com/skbsalatiga/signage-backend/pkg/validator"
)

var videoIDValidator = validator.NewVideoIDValidator()

// VideoPlaylistEntry is one video of the rotating display playlist
type VideoPlaylistEntry struct {
	ID        int64      `json:"id" db:"id"`
	VideoID   string     `json:"videoId" db:"video_id"`
	Title     NullString `json:"title" db:"title"`
	IsActive  bool       `json:"isActive" db:"is_active"`
	Priority  int        `json:"priority" db:"priority"`
	UpdatedAt string     `json:"updatedAt" db:"updated_at"`
}

// VideoConfig is the legacy single video, shown when the playlist is empty
type VideoConfig struct {
	ID        int64      `json:"id" db:"id"`
	VideoID   string     `json:"videoId" db:"video_id"`
	Title     NullString `json:"title" db:"title"`
	UpdatedAt string     `json:"updatedAt" db:"updated_at"`
}

// AddVideoRequest is the payload of POST /api/video-playlist
type AddVideoRequest struct {
	VideoID  string  `json:"videoId"`
	Title    *string `json:"title"`
	IsActive *bool   `json:"isActive"`
	Priority *int    `json:"priority"`
}

// VideoPatch carries the fields of a partial playlist update; nil means unchanged.
// An empty title clears it.
type VideoPatch struct {
	VideoID  *string `json:"videoId"`
	Title    *string `json:"title"`
	IsActive *bool   `json:"isActive"`
	Priority *int    `json:"priority"`
}

// SetVideoConfigRequest is the payload of POST /api/video-config
type SetVideoConfigRequest struct {
	VideoID string  `json:"videoId"`
	Title   *string `json:"title"`
}

// Validate checks the payload and normalises a pasted URL to its bare id
func (r *AddVideoRequest) Validate() error {
	id, err := videoIDValidator.Validate(r.VideoID)
	if err != nil {
		return NewValidationError("videoId", err.Error())
	}
	r.VideoID = id
	return validatePriority(r.Priority)
}

// Active returns the requested flag, true when omitted
func (r *AddVideoRequest) Active() bool {
	return r.IsActive == nil || *r.IsActive
}

// PriorityOrDefault returns the requested priority, 0 when omitted
func (r *AddVideoRequest) PriorityOrDefault() int {
	if r.Priority == nil {
		return 0
	}
	return *r.Priority
}

// Validate checks the patch and normalises videoId
func (p *VideoPatch) Validate() error {
	if p.VideoID != nil {
		id, err := videoIDValidator.Validate(*p.VideoID)
		if err != nil {
			return NewValidationError("videoId", err.Error())
		}
		p.VideoID = &id
	}
	return validatePriority(p.Priority)
}

// Apply merges the patch into e
func (p *VideoPatch) Apply(e *VideoPlaylistEntry) {
	if p.VideoID != nil {
		e.VideoID = *p.VideoID
	}
	if p.Title != nil {
		e.Title = NewNullString(*p.Title)
	}
	if p.IsActive != nil {
		e.IsActive = *p.IsActive
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
}

// Validate checks the payload and normalises videoId
func (r *SetVideoConfigRequest) Validate() error {
	id, err := videoIDValidator.Validate(r.VideoID)
	if err != nil {
		return NewValidationError("videoId", err.Error())
	}
	r.VideoID = id
	return nil
}
