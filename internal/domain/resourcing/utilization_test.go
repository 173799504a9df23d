package resourcing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCrew(t *testing.T, name string, capacity int64) Resource {
	t.Helper()
	c := decimal.NewFromInt(capacity)
	r, err := NewResource(ResourceInput{Name: name, Type: ResourceTypeLabor, Rate: decimal.NewFromInt(20), CapacityHoursPerWeek: &c, IsActive: true})
	require.NoError(t, err)
	return *r
}

func assignment(t *testing.T, r Resource, hours string) Assignment {
	t.Helper()
	a, err := NewAssignment(uuid.New(), r.ID, decimal.RequireFromString(hours))
	require.NoError(t, err)
	return *a
}

func TestCalculate(t *testing.T) {
	crew := newCrew(t, "Crew A", 40)

	u := Calculate(crew, []Assignment{assignment(t, crew, "24")})

	assert.True(t, decimal.NewFromInt(24).Equal(u.AssignedHours))
	assert.Equal(t, 60, u.Percent)
}

func TestCalculate_CapsAtHundred(t *testing.T) {
	crew := newCrew(t, "Crew B", 40)

	u := Calculate(crew, []Assignment{assignment(t, crew, "40"), assignment(t, crew, "20")})

	assert.True(t, decimal.NewFromInt(60).Equal(u.AssignedHours))
	assert.Equal(t, 100, u.Percent)
}

func TestUtilizationPercent(t *testing.T) {
	tests := []struct {
		name     string
		assigned string
		capacity string
		want     int
	}{
		{"zero capacity", "10", "0", 0},
		{"negative capacity", "10", "-5", 0},
		{"no hours", "0", "40", 0},
		{"rounds half up", "1", "8", 13},
		{"rounds down", "1", "3", 33},
		{"exact", "40", "40", 100},
		{"over allocated", "60", "40", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UtilizationPercent(decimal.RequireFromString(tt.assigned), decimal.RequireFromString(tt.capacity))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestSortByPercentAndTop(t *testing.T) {
	rows := []Utilization{
		{Name: "b", Percent: 50},
		{Name: "a", Percent: 50},
		{Name: "c", Percent: 90},
		{Name: "d", Percent: 10},
	}
	SortByPercent(rows)

	assert.Equal(t, []string{"c", "a", "b", "d"}, []string{rows[0].Name, rows[1].Name, rows[2].Name, rows[3].Name})
	assert.Len(t, Top(rows, 2), 2)
	assert.Len(t, Top(rows, 10), 4)
}

func TestNewResource_Validation(t *testing.T) {
	r, err := NewResource(ResourceInput{Name: "Excavator", Type: ResourceTypeEquipment, Rate: decimal.NewFromInt(75)})
	require.NoError(t, err)
	assert.True(t, DefaultCapacityHoursPerWeek.Equal(r.CapacityHoursPerWeek))

	_, err = NewResource(ResourceInput{Name: "X", Type: "robot"})
	assert.Error(t, err)

	_, err = NewResource(ResourceInput{Name: "X", Type: ResourceTypeLabor, Rate: decimal.NewFromInt(-1)})
	assert.Error(t, err)

	_, err = NewAssignment(uuid.New(), uuid.New(), decimal.NewFromInt(-2))
	assert.Error(t, err)
}
