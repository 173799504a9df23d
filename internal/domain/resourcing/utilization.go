package resourcing

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Utilization is the share of a resource's weekly capacity that is assigned
type Utilization struct {
	ResourceID    string          `json:"resource_id"`
	Name          string          `json:"name"`
	AssignedHours decimal.Decimal `json:"assigned_hours"`
	Capacity      decimal.Decimal `json:"capacity"`
	Percent       int             `json:"percent"`
}

// UtilizationPercent returns round(assigned/capacity*100) clamped to [0, 100].
// A capacity of zero or less yields 0.
func UtilizationPercent(assigned, capacity decimal.Decimal) int {
	if !capacity.IsPositive() {
		return 0
	}
	pct := assigned.Div(capacity).Mul(hundred).Round(0)
	if pct.GreaterThan(hundred) {
		return 100
	}
	if pct.IsNegative() {
		return 0
	}
	return int(pct.IntPart())
}

// Calculate derives the utilization of a resource from its assignments
func Calculate(r Resource, assignments []Assignment) Utilization {
	assigned := decimal.Zero
	for _, a := range assignments {
		assigned = assigned.Add(a.Hours)
	}
	return FromHours(r, assigned)
}

// FromHours builds a Utilization when the assigned hours are already summed
func FromHours(r Resource, assigned decimal.Decimal) Utilization {
	return Utilization{
		ResourceID:    r.ID.String(),
		Name:          r.Name,
		AssignedHours: assigned,
		Capacity:      r.CapacityHoursPerWeek,
		Percent:       UtilizationPercent(assigned, r.CapacityHoursPerWeek),
	}
}

// SortByPercent orders rows by percent descending, then name
func SortByPercent(rows []Utilization) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Percent != rows[j].Percent {
			return rows[i].Percent > rows[j].Percent
		}
		return rows[i].Name < rows[j].Name
	})
}

// Top returns at most n rows of an already sorted slice
func Top(rows []Utilization, n int) []Utilization {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}
