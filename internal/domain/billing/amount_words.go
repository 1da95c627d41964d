package billing

import (
	"math"
	"strings"

	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// WordsFormat selects the casing convention for AmountInWords output
type WordsFormat string

const (
	// WordsFormatLegal uppercases the whole phrase and appends " ONLY"
	WordsFormatLegal WordsFormat = "legal"
	// WordsFormatFormal keeps only the leading capital and appends " only"
	WordsFormatFormal WordsFormat = "formal"
	// WordsFormatPlain returns the title-cased phrase as generated
	WordsFormatPlain WordsFormat = ""
)

type currencyUnits struct {
	major, majorPlural string
	minor, minorPlural string
}

var wordCurrencies = map[valueobject.Currency]currencyUnits{
	valueobject.USD: {"Dollar", "Dollars", "Cent", "Cents"},
	valueobject.EUR: {"Euro", "Euros", "Cent", "Cents"},
	valueobject.GBP: {"Pound", "Pounds", "Penny", "Pence"},
	valueobject.CAD: {"Dollar", "Dollars", "Cent", "Cents"},
	valueobject.AUD: {"Dollar", "Dollars", "Cent", "Cents"},
	valueobject.INR: {"Rupee", "Rupees", "Paisa", "Paise"},
}

var onesWords = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

var scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion"}

// AmountInWords converts a monetary amount to its English short-scale
// wording for invoice rendering, e.g. 1234.56 USD in legal format becomes
// "ONE THOUSAND TWO HUNDRED THIRTY-FOUR DOLLARS AND FIFTY-SIX CENTS ONLY".
// Negative amounts convert their absolute value behind a "Negative" prefix.
func AmountInWords(amount float64, currency valueobject.Currency, format WordsFormat, includeDecimals bool) (string, error) {
	units, ok := wordCurrencies[currency]
	if !ok {
		return "", shared.ErrUnsupportedCurrency
	}

	negative := amount < 0
	abs := math.Abs(amount)

	whole := math.Floor(abs)
	cents := int(math.Round((abs - whole) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}
	if whole >= 1e15 {
		return "", shared.NewValidationError("Amount is too large to spell out")
	}
	intPart := int64(whole)

	var sb strings.Builder
	if negative {
		sb.WriteString("Negative ")
	}
	sb.WriteString(integerToWords(intPart))
	sb.WriteByte(' ')
	if intPart == 1 {
		sb.WriteString(units.major)
	} else {
		sb.WriteString(units.majorPlural)
	}

	if includeDecimals {
		sb.WriteString(" and ")
		sb.WriteString(integerToWords(int64(cents)))
		sb.WriteByte(' ')
		if cents == 1 {
			sb.WriteString(units.minor)
		} else {
			sb.WriteString(units.minorPlural)
		}
	}

	switch format {
	case WordsFormatLegal:
		return strings.ToUpper(sb.String()) + " ONLY", nil
	case WordsFormatFormal:
		s := strings.ToLower(sb.String()) + " only"
		return strings.ToUpper(s[:1]) + s[1:], nil
	default:
		return sb.String(), nil
	}
}

// integerToWords spells a non-negative integer in short-scale English,
// three digits at a time
func integerToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var groups []string
	for n > 0 {
		groups = append(groups, strings.TrimSpace(threeDigitsToWords(int(n%1000))))
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == "" {
			continue
		}
		part := groups[i]
		if scaleWords[i] != "" {
			part += " " + scaleWords[i]
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func threeDigitsToWords(n int) string {
	if n == 0 {
		return ""
	}

	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100]+" Hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, onesWords[n])
	default:
		word := tensWords[n/10]
		if n%10 > 0 {
			word += "-" + onesWords[n%10]
		}
		parts = append(parts, word)
	}
	return strings.Join(parts, " ")
}
