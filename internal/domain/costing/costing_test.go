package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeProjectCost(t *testing.T) {
	pc := ComputeProjectCost(d("500000"), []LaborLine{
		{Hours: d("24"), Rate: d("20")},
		{Hours: d("7.5"), Rate: d("33.33")},
	})

	assert.True(t, d("729.975").Equal(pc.LaborActual), pc.LaborActual.String())
	assert.True(t, pc.LaborActual.Equal(pc.TotalActual))
	assert.True(t, d("499270.025").Equal(pc.Variance), "variance must not be rounded")
	assert.False(t, pc.OverBudget())
}

func TestComputeProjectCost_OverBudget(t *testing.T) {
	pc := ComputeProjectCost(d("100"), []LaborLine{{Hours: d("10"), Rate: d("20")}})

	assert.True(t, d("-100").Equal(pc.Variance))
	assert.True(t, pc.OverBudget())
}

func TestComputeProjectCost_NoAssignments(t *testing.T) {
	pc := ComputeProjectCost(d("1000"), nil)

	assert.True(t, pc.LaborActual.IsZero())
	assert.True(t, d("1000").Equal(pc.Variance))
}

func TestMaterialConsumptionCost(t *testing.T) {
	total := MaterialConsumptionCost([]ConsumptionLine{
		{Quantity: d("10"), UnitCost: d("5")},
		{Quantity: d("3"), UnitCost: d("4.5")},
	})

	assert.True(t, d("63.5").Equal(total), total.String())
	assert.True(t, MaterialConsumptionCost(nil).IsZero())

	// a negative consume is a return and reduces the total
	net := MaterialConsumptionCost([]ConsumptionLine{
		{Quantity: d("10"), UnitCost: d("5")},
		{Quantity: d("-2"), UnitCost: d("5")},
	})
	assert.True(t, d("40").Equal(net), net.String())
}

func TestNewReport(t *testing.T) {
	r := NewReport([]ProjectCost{
		ComputeProjectCost(d("100"), []LaborLine{{Hours: d("1"), Rate: d("40")}}),
		ComputeProjectCost(d("50"), []LaborLine{{Hours: d("2"), Rate: d("40")}}),
	}, d("50"))

	assert.True(t, d("150").Equal(r.TotalPlanned))
	assert.True(t, d("120").Equal(r.TotalLaborActual))
	assert.True(t, d("30").Equal(r.TotalVariance))
	assert.True(t, d("50").Equal(r.MaterialConsumptionCost))
}
