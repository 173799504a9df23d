// Package export renders reports into downloadable file formats.
package export

import (
	"fmt"
	"io"

	"github.com/Swarup9437/pm-tool/internal/domain/costing"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of an Office Open XML workbook
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names in the cost workbook
const (
	ProjectsSheet = "Projects"
	SummarySheet  = "Summary"
)

var projectHeader = []any{"Code", "Project", "Planned", "Labor actual", "Total actual", "Variance"}

// CostReportWorkbook writes a costing.Report as an xlsx file with one row
// per project and a summary sheet.
type CostReportWorkbook struct{}

// NewCostReportWorkbook creates a CostReportWorkbook
func NewCostReportWorkbook() *CostReportWorkbook {
	return &CostReportWorkbook{}
}

// ContentType returns the xlsx MIME type
func (CostReportWorkbook) ContentType() string {
	return XLSXContentType
}

// FileName is the suggested download name
func (CostReportWorkbook) FileName() string {
	return "cost-report.xlsx"
}

// Write renders r into w
func (CostReportWorkbook) Write(w io.Writer, r costing.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), ProjectsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	overBudget, err := f.NewStyle(&excelize.Style{
		NumFmt: 4,
		Font:   &excelize.Font{Color: "9C0006"},
	})
	if err != nil {
		return fmt.Errorf("variance style: %w", err)
	}

	if err := f.SetSheetRow(ProjectsSheet, "A1", &projectHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(ProjectsSheet, "A1", "F1", bold); err != nil {
		return err
	}

	row := 2
	for _, p := range r.Projects {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{
			p.Code,
			p.Name,
			toFloat(p.Planned),
			toFloat(p.LaborActual),
			toFloat(p.TotalActual),
			toFloat(p.Variance),
		}
		if err := f.SetSheetRow(ProjectsSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellStyle(ProjectsSheet, fmt.Sprintf("C%d", row), fmt.Sprintf("F%d", row), money); err != nil {
			return err
		}
		if p.OverBudget() {
			if err := f.SetCellStyle(ProjectsSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), overBudget); err != nil {
				return err
			}
		}
		row++
	}

	totals := []any{"", "Total", toFloat(r.TotalPlanned), toFloat(r.TotalLaborActual), toFloat(r.TotalLaborActual), toFloat(r.TotalVariance)}
	if err := f.SetSheetRow(ProjectsSheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	if err := f.SetCellStyle(ProjectsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(ProjectsSheet, "B", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(ProjectsSheet, "C", "F", 16); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	summary := [][]any{
		{"Projects", len(r.Projects)},
		{"Total planned", toFloat(r.TotalPlanned)},
		{"Total labor actual", toFloat(r.TotalLaborActual)},
		{"Total variance", toFloat(r.TotalVariance)},
		{"Material consumption cost", toFloat(r.MaterialConsumptionCost)},
	}
	for i, line := range summary {
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &line); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "B2", "B5", money); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 28); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func toFloat(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}
