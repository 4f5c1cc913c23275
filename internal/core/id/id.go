// Package id provides UUIDv7 generation for catalog entities and
// prefixed string identifiers for generated reports.
package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ID is a type alias for UUID, used across catalog entities.
type ID = uuid.UUID

// New generates a new UUIDv7 (time-ordered UUID).
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.New()
	}
	return id
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts string to ID, panics on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns zero-value UUID.
func Nil() ID {
	return uuid.Nil
}

// IsNil checks if ID is zero-value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}

// Report identifier prefixes distinguish how a report originated.
const (
	PrefixAutomatic  = "AUTO"
	PrefixManual     = "MAN"
	PrefixHistorical = "HIST"
)

// NewReportID builds a report identifier from an origin prefix, the
// generation instant and a short random suffix, e.g.
// "AUTO-20240110180000-a1b2c3d4". The suffix keeps ids unique even when
// two reports are generated within the same second.
func NewReportID(prefix string, at time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, at.UTC().Format("20060102150405"), suffix)
}
