package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Anything other than "asc" yields DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is in allowedFields and
// defaultField otherwise.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func withBaseFields(fields ...string) map[string]bool {
	m := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

// Sort whitelists per table
var (
	EmployeeSortFields    = withBaseFields("name", "email", "role")
	ProjectSortFields     = withBaseFields("code", "name", "client", "budget")
	TaskSortFields        = withBaseFields("wbs", "name", "start_date", "finish_date", "percent_complete", "status")
	ResourceSortFields    = withBaseFields("name", "type", "rate", "capacity_hours_per_week")
	AssignmentSortFields  = withBaseFields("hours")
	MaterialSortFields    = withBaseFields("name", "unit", "unit_cost", "quantity_on_hand", "reorder_level")
	TransactionSortFields = withBaseFields("tx_date", "type", "quantity")
)
