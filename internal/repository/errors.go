package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"store-pos/pkg/e"
)

// translate maps driver-level errors onto the sentinels in pkg/e.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return e.ErrNotFound
	}
	return err
}

// likePattern builds a case-insensitive contains pattern for LOWER(col) LIKE ?.
func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// unscoped lets preloads of historical rows include soft-deleted records.
func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
