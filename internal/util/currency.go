package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount as Indian rupees with lakh/crore digit
// grouping and no fractional part, e.g. ₹12,34,567. Amounts are rounded
// to the nearest rupee.
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(digits))
	return b.String()
}

// groupIndian inserts Indian-system separators: the last three digits form
// one group, every two digits before that form another.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	head := digits[:n-3]
	tail := digits[n-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
