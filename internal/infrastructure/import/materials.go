package csvimport

import (
	"fmt"
	"io"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// Material columns. Only name is required.
const (
	ColName            = "name"
	ColUnit            = "unit"
	ColUnitCost        = "unit_cost"
	ColReorderLevel    = "reorder_level"
	ColOpeningQuantity = "opening_quantity"
	ColIsActive        = "is_active"
)

// MaterialRow is one validated catalogue line
type MaterialRow struct {
	Line    int
	Input   stock.MaterialInput
	Opening decimal.Decimal
}

// ReadMaterials parses a materials file. It returns a *ValidationError
// listing every bad row instead of a partial result.
func ReadMaterials(r io.Reader, opts ...ParserOption) ([]MaterialRow, error) {
	p, err := NewParser(r, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := p.Missing(ColName); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s", ErrMissingHeader, strings.Join(missing, ", "))
	}

	rows, err := p.Rows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	verr := &ValidationError{}
	seen := make(map[string]int, len(rows))
	out := make([]MaterialRow, 0, len(rows))
	for _, row := range rows {
		m, ok := parseMaterial(row, verr)
		if !ok {
			continue
		}
		key := strings.ToLower(m.Input.Name)
		if first, dup := seen[key]; dup {
			verr.add(RowError{Row: row.Line, Column: ColName, Value: m.Input.Name,
				Message: fmt.Sprintf("duplicate of row %d", first)})
			continue
		}
		seen[key] = row.Line
		out = append(out, m)
	}
	if verr.Total > 0 {
		return nil, verr
	}
	return out, nil
}

func parseMaterial(row *Row, verr *ValidationError) (MaterialRow, bool) {
	ok := true
	fail := func(col, msg string) {
		verr.add(RowError{Row: row.Line, Column: col, Value: row.Get(col), Message: msg})
		ok = false
	}

	name := row.Get(ColName)
	switch {
	case name == "":
		fail(ColName, "is required")
	case len(name) > 200:
		fail(ColName, "must be at most 200 characters")
	}
	unit := row.Get(ColUnit)
	if len(unit) > 50 {
		fail(ColUnit, "must be at most 50 characters")
	}

	amount := func(col string) decimal.Decimal {
		raw := row.Get(col)
		if raw == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fail(col, "must be a number")
			return decimal.Zero
		}
		if d.IsNegative() {
			fail(col, "cannot be negative")
		}
		return d
	}
	unitCost := amount(ColUnitCost)
	reorder := amount(ColReorderLevel)
	opening := amount(ColOpeningQuantity)

	active := true
	switch strings.ToLower(row.Get(ColIsActive)) {
	case "", "true", "yes", "y", "1":
	case "false", "no", "n", "0":
		active = false
	default:
		fail(ColIsActive, "must be true or false")
	}

	return MaterialRow{
		Line: row.Line,
		Input: stock.MaterialInput{
			Name:         name,
			Unit:         unit,
			UnitCost:     unitCost,
			ReorderLevel: reorder,
			IsActive:     active,
		},
		Opening: opening,
	}, ok
}
