// Package repository implements the record-store client: typed access to
// the profiles, posts, and likes collections with the store's uniqueness
// constraints surfaced as conflict errors.
package repository

import (
	"errors"
	"strings"

	"satellite/internal/models"
	"satellite/internal/observability"

	"gorm.io/gorm"
)

// translateError maps driver errors onto the module error taxonomy. The
// identity resolver's retry loop keys off the conflict code, so uniqueness
// violations must be recognized on every supported driver.
func translateError(err error, collection string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(collection, id)
	}
	if isUniqueViolation(err) {
		observability.StoreConflicts.WithLabelValues(collection).Inc()
		return models.NewConflictError(collection+" uniqueness constraint violated", err)
	}
	return models.NewStoreError(collection+" store operation failed", err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// TranslateError covers both bundled drivers, but raw driver messages
	// still leak through Exec paths.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
