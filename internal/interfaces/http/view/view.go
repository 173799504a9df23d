// Package view holds the server-rendered HTML pages. Templates are embedded
// into the binary and parsed once at startup.
package view

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/Swarup9437/pm-tool/internal/application/session"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

// Load parses every page template with the shared function map
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// MustLoad is Load for program startup
func MustLoad() *template.Template {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

var displayLanguage = language.English

// Funcs returns the helpers available inside templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":       Money,
		"qty":         Quantity,
		"date":        formatDate,
		"negative":    func(d decimal.Decimal) bool { return d.IsNegative() },
		"idOf":        idOf,
		"sameID":      sameID,
		"can":         can,
		"statusLabel": StatusLabel,
		"barWidth":    barWidth,
		"title":       titleCase,
	}
}

// Money formats an amount with thousands separators and two decimals
func Money(d decimal.Decimal) string {
	p := message.NewPrinter(displayLanguage)
	return p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// Quantity formats a quantity with separators and at most two decimals
func Quantity(d decimal.Decimal) string {
	p := message.NewPrinter(displayLanguage)
	return p.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

var statusLabels = map[string]string{
	"not_started": "Not started",
	"in_progress": "In progress",
	"blocked":     "Blocked",
	"done":        "Done",
}

// StatusLabel turns a task status into its display form
func StatusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func idOf(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// sameID compares ids given as uuid.UUID, *uuid.UUID or string
func sameID(a, b any) bool {
	return idString(a) != "" && idString(a) == idString(b)
}

func idString(v any) string {
	switch x := v.(type) {
	case uuid.UUID:
		return x.String()
	case *uuid.UUID:
		return idOf(x)
	case string:
		return x
	default:
		return ""
	}
}

func can(me *session.AuthContext, action string) bool {
	return me != nil && me.Can(workforce.Action(action))
}

func barWidth(pct int) int {
	return max(0, min(100, pct))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
