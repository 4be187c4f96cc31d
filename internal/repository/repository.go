// Package repository implements persistence on top of gorm.
package repository

import (
	"errors" // Error inspection
	"fmt"    // Error wrapping

	"habit_tracker/internal/domain" // Domain models and sentinel errors

	"gorm.io/gorm" // GORM ORM library
)

// findOne runs a First query and maps a missing row to nil, nil
func findOne[T any](q *gorm.DB, conds ...any) (*T, error) {
	var out T
	if err := q.First(&out, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found is not an error for lookups
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

// uniqueErr maps a duplicate key error to domain.ErrDuplicate.
// Requires gorm.Config.TranslateError.
func uniqueErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	}
	return fmt.Errorf("db error: %w", err)
}
