package handler

import (
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// formDecimal parses a numeric form field. An empty field yields def.
func formDecimal(field, raw string, def decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewValidationError(field + " must be a number")
	}
	return d, nil
}

// formUUID parses a required id field
func formUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, shared.NewValidationError(field + " is required")
	}
	return id, nil
}

// formOptionalUUID parses an id field where empty means none
func formOptionalUUID(field, raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, shared.NewValidationError("invalid " + field)
	}
	return &id, nil
}

// checked reports whether a checkbox was ticked
func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func checkbox(b bool) string {
	if b {
		return "on"
	}
	return ""
}

// validateForm runs the binding rules of an application request built from
// a form, so both surfaces enforce the same constraints
func validateForm(req any) error {
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return shared.WrapDomainError(shared.CodeInvalidInput, strings.Join(middleware.ValidationDetails(err), "; "), err)
	}
	return nil
}

func decimalString(d decimal.Decimal) string {
	return d.String()
}
