package billing

import (
	"fmt"
	"strings"
)

// DefaultInvoicePrefix is used when the tenant has no numbering config
const DefaultInvoicePrefix = "INV-"

// DefaultStartNumber seeds the sequence for a tenant's first invoice
const DefaultStartNumber = 1000

// NextInvoiceNumber derives the next invoice number from the most recently
// issued one. The prefix is stripped and the trailing integer incremented;
// when there is no prior number or it does not parse, the sequence restarts
// at startNumber. The result is prefix plus the number zero-padded to four
// digits (wider numbers are kept intact).
//
// This is a best-effort monotonic allocator, not a gapless sequence.
// Concurrent creations can race to the same number; the unique
// (tenant_id, invoice_number) index is the correctness backstop and the
// caller retries once on a uniqueness violation.
func NextInvoiceNumber(lastNumber, prefix string, startNumber int) string {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	if startNumber <= 0 {
		startNumber = DefaultStartNumber
	}

	next := startNumber
	if lastNumber != "" {
		if n, ok := parseTrailingNumber(strings.TrimPrefix(lastNumber, prefix)); ok {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, next)
}

// parseTrailingNumber extracts the integer suffix of a number body, so
// manually issued numbers like "2024-0042" still continue the sequence.
func parseTrailingNumber(s string) (int, bool) {
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}
	// Bound the digits to avoid overflow on garbage input
	if end-start > 9 {
		start = end - 9
	}
	n := 0
	for _, c := range s[start:end] {
		n = n*10 + int(c-'0')
	}
	return n, true
}
