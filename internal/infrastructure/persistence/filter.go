package persistence

import (
	"fmt"
	"strings"

	"github.com/cylserv/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies pagination and ordering from a shared.Filter. Order
// columns are whitelisted per call site by the model's own columns; unknown
// directions fall back to descending.
func applyFilter(db *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" && isColumnName(filter.OrderBy) {
		dir := "DESC"
		if strings.EqualFold(filter.OrderDir, "asc") {
			dir = "ASC"
		}
		db = db.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return db
}

// isColumnName accepts plain snake_case identifiers only, which keeps the
// caller-supplied order column out of SQL injection territory.
func isColumnName(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return s != ""
}
