package persistence

import (
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"gorm.io/gorm"
)

// applySort orders by a whitelisted column. Ties fall back to id so that
// paging is stable.
func applySort(db *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)
	return db.Order(field + " " + dir).Order("id ASC")
}

func applyPaging(db *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize > 0 {
		db = db.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return db
}

// applySearch adds a case-insensitive LIKE over columns joined with OR.
func applySearch(db *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return db
	}
	pattern := "%" + strings.ToLower(search) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		clauses[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// applyEquals adds "column = value" for every listed key present in the
// filter map. Keys not in columns are ignored.
func applyEquals(db *gorm.DB, filters map[string]any, columns ...string) *gorm.DB {
	for _, c := range columns {
		if v, ok := filters[c]; ok {
			db = db.Where(c+" = ?", stringify(v))
		}
	}
	return db
}

// stringify turns named string types into plain strings for the driver.
func stringify(v any) any {
	type stringer interface{ String() string }
	switch t := v.(type) {
	case string, bool, int, int64:
		return t
	case stringer:
		return t.String()
	}
	return v
}
