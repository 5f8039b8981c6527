package database

import (
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/constants"
)

// Paginate applies skip/limit to a query, clamping to the service-level
// defaults: skip never negative, limit defaulting to DefaultPageSize and
// capped at MaxPageSize.
func Paginate(skip, limit int) func(db *gorm.DB) *gorm.DB {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(skip).Limit(limit)
	}
}
