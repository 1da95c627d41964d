package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// Engine executes invoice layouts with Go's html/template package. Parsed
// templates are held in a bounded LRU cache keyed by layout or custom
// template identity.
type Engine struct {
	funcMap template.FuncMap
	cache   *templateCache
}

// EngineOption configures the template engine
type EngineOption func(*Engine)

// WithCacheCapacity bounds the parsed-template cache
func WithCacheCapacity(n int) EngineOption {
	return func(e *Engine) { e.cache = newTemplateCache(n) }
}

// NewEngine creates a new template engine with the invoice function map
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		cache: newTemplateCache(defaultCacheCapacity),
	}

	e.funcMap = template.FuncMap{
		// Money formatting
		"formatMoney":   formatMoney,
		"formatAmount":  formatAmount,
		"amountInWords": amountInWords,

		// Date formatting
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		// Number formatting
		"formatDecimal": formatDecimal,
		"formatPercent": formatPercent,

		// String utilities
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"title":    titleCase,
		"trim":     strings.TrimSpace,
		"truncate": truncate,

		// Arithmetic
		"add": add,
		"sub": sub,
		"mul": mul,

		// Conditional
		"default": defaultFunc,
		"ternary": ternary,

		// Safe CSS for styling knobs coming from template configuration
		"safeCSS": safeCSS,

		// Misc
		"shortUUID": shortUUID,
		"now":       time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Render executes the template content against the document. The parsed
// template is cached under cacheKey; pass the template's ID plus version so
// edits miss the stale entry.
func (e *Engine) Render(cacheKey, content string, data any) (string, error) {
	if content == "" {
		return "", fmt.Errorf("template content is empty")
	}

	tmpl, ok := e.cache.Get(cacheKey)
	if !ok {
		parsed, err := template.New(cacheKey).Funcs(e.funcMap).Parse(content)
		if err != nil {
			return "", fmt.Errorf("failed to parse template: %w", err)
		}
		e.cache.Put(cacheKey, parsed)
		tmpl = parsed
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Invalidate drops a cached template, used when a custom template is edited
func (e *Engine) Invalidate(cacheKey string) {
	e.cache.Invalidate(cacheKey)
}

var currencySymbols = map[valueobject.Currency]string{
	valueobject.USD: "$",
	valueobject.EUR: "€",
	valueobject.GBP: "£",
	valueobject.CAD: "C$",
	valueobject.AUD: "A$",
	valueobject.INR: "₹",
}

// formatMoney formats a Money value with its currency symbol and thousand
// separators, e.g. 1234.5 USD -> "$1,234.50"
func formatMoney(m valueobject.Money) string {
	symbol, ok := currencySymbols[m.Currency()]
	if !ok {
		symbol = string(m.Currency()) + " "
	}
	d := m.Amount()
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + symbol + groupThousands(d.StringFixed(2))
}

// formatAmount formats a bare decimal with separators but no symbol
func formatAmount(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	return sign + groupThousands(v.StringFixed(2))
}

func groupThousands(fixed string) string {
	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(c)
	}
	if len(parts) > 1 {
		b.WriteRune('.')
		b.WriteString(parts[1])
	}
	return b.String()
}

// amountInWords spells a Money value in legal format for the totals block
func amountInWords(m valueobject.Money) string {
	words, err := billing.AmountInWords(m.Float64(), m.Currency(), billing.WordsFormatLegal, true)
	if err != nil {
		return ""
	}
	return words
}

func formatDate(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func formatDateTime(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}

func formatDecimal(v decimal.Decimal, precision int) string {
	return v.StringFixed(int32(precision))
}

// formatPercent renders a tax-rate style percentage, e.g. 8.25 -> "8.25%"
func formatPercent(v decimal.Decimal) string {
	return v.String() + "%"
}

func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

// truncate shortens a string to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func add(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) }
func sub(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) }
func mul(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b) }

func defaultFunc(val, def string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}

func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}
	return falseVal
}

// safeCSS marks a string as safe CSS, bypassing automatic escaping. Only
// used for the validated color and font knobs off template configuration,
// never free-form user text.
func safeCSS(s string) template.CSS {
	return template.CSS(s)
}

func shortUUID(id uuid.UUID) string {
	s := id.String()
	if len(s) >= 8 {
		return s[:8]
	}
	return s
}

func toTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	default:
		return time.Time{}
	}
}
