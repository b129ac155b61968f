package models

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// NullString wraps sql.NullString to provide proper JSON marshaling
type NullString struct {
	sql.NullString
}

// NewNullString trims s and treats the empty result as NULL
func NewNullString(s string) NullString {
	s = strings.TrimSpace(s)
	return NullString{sql.NullString{String: s, Valid: s != ""}}
}

// NullStringFrom converts an optional request field
func NullStringFrom(s *string) NullString {
	if s == nil {
		return NullString{}
	}
	return NewNullString(*s)
}

// Ptr returns nil for NULL
func (ns NullString) Ptr() *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// MarshalJSON implements json.Marshaler
func (ns NullString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.String)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (ns *NullString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != nil {
		ns.Valid = true
		ns.String = *s
	} else {
		ns.Valid = false
	}
	return nil
}

// Timestamp encodes t as Unix milliseconds in a string, the wire format of
// createdAt / updatedAt
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// ParseTimestamp decodes a Timestamp value; malformed input yields the zero time
func ParseTimestamp(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
