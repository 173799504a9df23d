package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/infrastructure/logger"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DecimalGTE0Tag validates that a decimal amount is zero or positive
const DecimalGTE0Tag = "decimal_gte0"

// SetupValidator configures the validator with custom tags
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Use JSON tag names for field names in errors
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		// decimal.Decimal validates as its float value
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation(DecimalGTE0Tag, func(fl validator.FieldLevel) bool {
			f := fl.Field()
			switch f.Kind() {
			case reflect.Float32, reflect.Float64:
				return f.Float() >= 0
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				return f.Int() >= 0
			default:
				return true
			}
		})
	}
}

// ValidationDetails flattens binding errors into "field: message" lines
func ValidationDetails(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, e.Field()+": "+getValidationMessage(e))
	}
	return details
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		abortWithError(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeValidation), dto.NewErrorResponseWithRequestID(
		dto.ErrCodeValidation,
		"Request validation failed",
		c.GetString(logger.RequestIDKey),
		ValidationDetails(err)...,
	))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case DecimalGTE0Tag:
		return "Must not be negative"
	default:
		return "Invalid value"
	}
}
