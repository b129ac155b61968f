package models

import (
	"fmt"
	"strings"
)

// StaffStatus is the presence of one staff role on the display
type StaffStatus struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	IsAvailable bool   `json:"isAvailable" db:"is_available"`
}

// StaffStatusItem is one element of a full staff-list replacement.
// Pointers distinguish a missing field from its zero value.
type StaffStatusItem struct {
	ID          *int64  `json:"id" binding:"required"`
	Title       *string `json:"title" binding:"required"`
	IsAvailable *bool   `json:"isAvailable" binding:"required"`
}

// AddStaffRequest adds a single role; availability defaults to false
type AddStaffRequest struct {
	Title       string `json:"title" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
}

// ToStaffList checks every item and converts the payload of
// POST /api/staff-status
func ToStaffList(items []StaffStatusItem) ([]StaffStatus, error) {
	list := make([]StaffStatus, 0, len(items))
	for i, item := range items {
		if item.ID == nil {
			return nil, NewValidationError(fmt.Sprintf("[%d].id", i), "is required")
		}
		if item.Title == nil {
			return nil, NewValidationError(fmt.Sprintf("[%d].title", i), "is required")
		}
		if item.IsAvailable == nil {
			return nil, NewValidationError(fmt.Sprintf("[%d].isAvailable", i), "is required")
		}
		list = append(list, StaffStatus{ID: *item.ID, Title: *item.Title, IsAvailable: *item.IsAvailable})
	}
	if err := ValidateStaffList(list); err != nil {
		return nil, err
	}
	return list, nil
}

// ValidateStaffList enforces positive, unique ids and non-empty titles
func ValidateStaffList(list []StaffStatus) error {
	seen := make(map[int64]struct{}, len(list))
	for i, s := range list {
		if s.ID <= 0 {
			return NewValidationError(fmt.Sprintf("[%d].id", i), "must be a positive integer")
		}
		if strings.TrimSpace(s.Title) == "" {
			return NewValidationError(fmt.Sprintf("[%d].title", i), "must not be empty")
		}
		if _, dup := seen[s.ID]; dup {
			return NewValidationError(fmt.Sprintf("[%d].id", i), fmt.Sprintf("duplicate id %d", s.ID))
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// Validate checks the add-staff payload
func (r *AddStaffRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return NewValidationError("title", "must not be empty")
	}
	return nil
}

// Available returns the requested availability, false when omitted
func (r *AddStaffRequest) Available() bool {
	return r.IsAvailable != nil && *r.IsAvailable
}
