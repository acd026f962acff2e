// CLAUDE:SUMMARY Brazilian-locale currency string parser ("1.234,56" → 1234.56).
// Package extract turns raw basket-bulletin text into candidate price records.
//
// Extraction is a two-stage pipeline: pattern matching (inline and tabular
// rules) produces candidates, then Dedupe and FilterOutliers discard rows
// that duplicate a higher-confidence match or fall outside the plausible
// price band of the document.
package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMoney converts a Brazilian-formatted amount to a float64.
// The input uses "." as thousands separator and "," as decimal separator
// ("1.234,56" → 1234.56). Currency symbols are not stripped here; callers
// must remove "R$" and surrounding whitespace first.
func ParseMoney(s string) (float64, error) {
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}
