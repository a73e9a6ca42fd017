package convert

import (
	"regexp"
	"strconv"
)

// amountPattern is the input-boundary acceptance rule: digits with at
// most one decimal point. Anything else is rejected before a call is
// ever attempted.
var amountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// ValidAmountInput reports whether the raw string may appear in the
// amount field at all. The empty string is valid input (it just never
// triggers a conversion).
func ValidAmountInput(raw string) bool {
	return amountPattern.MatchString(raw)
}

// AcceptAmountInput applies the input-boundary rule: a proposed value is
// taken verbatim when it matches the pattern, otherwise the current field
// value is kept unchanged.
func AcceptAmountInput(current, proposed string) string {
	if ValidAmountInput(proposed) {
		return proposed
	}
	return current
}

// ParseAmount parses a raw amount string, accepting only strictly
// positive values.
func ParseAmount(raw string) (float64, bool) {
	if !ValidAmountInput(raw) || raw == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}
