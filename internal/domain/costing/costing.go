// Package costing derives planned versus actual figures from projects,
// assignments and the stock ledger. Everything here is pure arithmetic on
// decimals; loading the inputs is the caller's job.
package costing

import (
	"github.com/shopspring/decimal"
)

// LaborLine is one assignment priced at its resource's rate
type LaborLine struct {
	Hours decimal.Decimal
	Rate  decimal.Decimal
}

// Cost returns hours * rate
func (l LaborLine) Cost() decimal.Decimal {
	return l.Hours.Mul(l.Rate)
}

// ProjectCost compares a project's budget with its labor spend
type ProjectCost struct {
	ProjectID   string          `json:"project_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Planned     decimal.Decimal `json:"planned"`
	LaborActual decimal.Decimal `json:"labor_actual"`
	TotalActual decimal.Decimal `json:"total_actual"`
	Variance    decimal.Decimal `json:"variance"`
}

// OverBudget reports whether actual spend exceeds the plan
func (p ProjectCost) OverBudget() bool {
	return p.Variance.IsNegative()
}

// ComputeProjectCost sums the labor lines and derives the variance as
// planned minus labor actual, without rounding
func ComputeProjectCost(planned decimal.Decimal, lines []LaborLine) ProjectCost {
	labor := decimal.Zero
	for _, l := range lines {
		labor = labor.Add(l.Cost())
	}
	return ProjectCost{
		Planned:     planned,
		LaborActual: labor,
		TotalActual: labor,
		Variance:    planned.Sub(labor),
	}
}

// ConsumptionLine is a consume entry priced at the material's current unit cost
type ConsumptionLine struct {
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// MaterialConsumptionCost totals quantity * unit cost over consume entries.
// Past consumption is priced at the current unit cost, not the cost at the
// time of the transaction.
func MaterialConsumptionCost(lines []ConsumptionLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.UnitCost))
	}
	return total
}

// Report is the company-wide cost summary
type Report struct {
	Projects                []ProjectCost   `json:"projects"`
	TotalPlanned            decimal.Decimal `json:"total_planned"`
	TotalLaborActual        decimal.Decimal `json:"total_labor_actual"`
	TotalVariance           decimal.Decimal `json:"total_variance"`
	MaterialConsumptionCost decimal.Decimal `json:"material_consumption_cost"`
}

// NewReport totals the per-project rows
func NewReport(projects []ProjectCost, materialConsumption decimal.Decimal) Report {
	r := Report{
		Projects:                projects,
		TotalPlanned:            decimal.Zero,
		TotalLaborActual:        decimal.Zero,
		TotalVariance:           decimal.Zero,
		MaterialConsumptionCost: materialConsumption,
	}
	for _, p := range projects {
		r.TotalPlanned = r.TotalPlanned.Add(p.Planned)
		r.TotalLaborActual = r.TotalLaborActual.Add(p.LaborActual)
		r.TotalVariance = r.TotalVariance.Add(p.Variance)
	}
	return r
}
