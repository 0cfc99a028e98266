package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors surfaced by the repositories. Handlers translate these into
// HTTP status codes.
var (
	// ErrNotFound reports a missing row or edge.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists reports a duplicate edge rejected by a unique index.
	ErrAlreadyExists = errors.New("record already exists")
)

// translateError maps gorm and driver errors onto the sentinel errors. A
// duplicate-key violation from a concurrent insert must surface as
// ErrAlreadyExists rather than an internal failure.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	// Fallback for drivers opened without gorm's error translation.
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint") {
		return ErrAlreadyExists
	}
	return err
}
