package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney renders an integer amount with thousand separators for
// statements and printable sheets.
func FormatMoney(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + formatThousand(amount)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}

// FormatHours keeps consistent decimal formatting for driven-hours fields.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}
