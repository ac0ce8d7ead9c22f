// utils/docnumber.go
package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

// Document number prefixes and sequence widths. Fixed for compatibility with
// numbers already issued to clients.
const (
	QuotePrefix   = "QU"
	InvoicePrefix = "INV"
	OrderPrefix   = "ORD"

	QuoteSeqWidth   = 4
	InvoiceSeqWidth = 3
	OrderSeqWidth   = 3
)

var docNumberPattern = regexp.MustCompile(`^([A-Z]+)-(\d{4})-(\d+)$`)

// FormatDocumentNumber renders a year-scoped document number, e.g. INV-2025-007.
func FormatDocumentNumber(prefix string, year, seq, width int) string {
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, width, seq)
}

// ParseDocumentNumber splits a document number into prefix, year and sequence.
// Malformed numbers return an error rather than a zero sequence, so a corrupt
// row can never silently reset a counter.
func ParseDocumentNumber(number string) (prefix string, year int, seq int, err error) {
	m := docNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return "", 0, 0, fmt.Errorf("malformed document number %q", number)
	}
	year, err = strconv.Atoi(m[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed document number %q", number)
	}
	seq, err = strconv.Atoi(m[3])
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed document number %q", number)
	}
	return m[1], year, seq, nil
}
