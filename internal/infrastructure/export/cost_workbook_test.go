package export

import (
	"bytes"
	"testing"

	"github.com/Swarup9437/pm-tool/internal/domain/costing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() costing.Report {
	site := costing.ComputeProjectCost(decimal.NewFromInt(500000), []costing.LaborLine{
		{Hours: decimal.NewFromInt(24), Rate: decimal.NewFromInt(20)},
	})
	site.Code, site.Name = "P-001", "Site Prep"

	over := costing.ComputeProjectCost(decimal.NewFromInt(100), []costing.LaborLine{
		{Hours: decimal.NewFromInt(10), Rate: decimal.NewFromInt(15)},
	})
	over.Code, over.Name = "P-002", "Fence"

	return costing.NewReport([]costing.ProjectCost{site, over}, decimal.RequireFromString("45"))
}

func TestCostReportWorkbook_Write(t *testing.T) {
	var buf bytes.Buffer
	wb := NewCostReportWorkbook()
	require.NoError(t, wb.Write(&buf, sampleReport()))
	assert.Equal(t, XLSXContentType, wb.ContentType())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ProjectsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ProjectsSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Code", "Project", "Planned", "Labor actual", "Total actual", "Variance"}, rows[0])
	assert.Equal(t, "P-001", rows[1][0])
	assert.Equal(t, "480", rows[1][3])
	assert.Equal(t, "499520", rows[1][5])
	assert.Equal(t, "-50", rows[2][5])
	assert.Equal(t, "Total", rows[3][1])

	consumption, err := f.GetCellValue(SummarySheet, "B5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "45", consumption)
}

func TestCostReportWorkbook_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCostReportWorkbook().Write(&buf, costing.NewReport(nil, decimal.Zero)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ProjectsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
