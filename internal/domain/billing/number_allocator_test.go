package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		name        string
		lastNumber  string
		prefix      string
		startNumber int
		want        string
	}{
		{"first invoice uses start number", "", "INV-", 1000, "INV-1000"},
		{"increments previous number", "INV-1041", "INV-", 1000, "INV-1042"},
		{"defaults apply when config missing", "", "", 0, "INV-1000"},
		{"custom prefix", "ACME-0007", "ACME-", 1, "ACME-0008"},
		{"pads to four digits", "INV-0008", "INV-", 1, "INV-0009"},
		{"wider numbers are kept intact", "INV-12345", "INV-", 1000, "INV-12346"},
		{"unparseable number restarts at start", "INV-draft", "INV-", 1000, "INV-1000"},
		{"manual number with embedded digits continues", "INV-2024-0042", "INV-", 1000, "INV-0043"},
		{"foreign prefix still parses trailing digits", "OLD-55", "INV-", 1000, "INV-0056"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextInvoiceNumber(tt.lastNumber, tt.prefix, tt.startNumber)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrailingNumber(t *testing.T) {
	n, ok := parseTrailingNumber("1042")
	assert.True(t, ok)
	assert.Equal(t, 1042, n)

	_, ok = parseTrailingNumber("draft")
	assert.False(t, ok)

	_, ok = parseTrailingNumber("")
	assert.False(t, ok)

	// absurdly long digit runs are truncated rather than overflowing
	n, ok = parseTrailingNumber("999999999999999999")
	assert.True(t, ok)
	assert.Equal(t, 999999999, n)
}
