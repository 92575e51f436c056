package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ict-journal/internal/models"
)

// todayString returns the current local date in storage format.
func todayString() string {
	return time.Now().Format(models.DateFormat)
}

// NoValue is what the UI shows for an absent or unparseable number.
const NoValue = "—"

// FormatPrice formats a price with two decimals and thousands separators.
func FormatPrice(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	str := fmt.Sprintf("%.2f", v)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPricePtr formats an optional price, NoValue when absent.
func FormatPricePtr(v *float64) string {
	if v == nil {
		return NoValue
	}
	return FormatPrice(*v)
}

// FormatPnL formats P&L with an explicit sign.
func FormatPnL(pnl float64) string {
	formatted := FormatPrice(pnl)
	if pnl > 0 {
		formatted = "+" + formatted
	}
	return formatted
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatDate returns the date or NoValue when empty.
func FormatDate(date string) string {
	if date == "" {
		return NoValue
	}
	return date
}

// ParseFloat parses a float argument; empty input yields nil rather
// than an error so optional numeric flags can stay unset.
func ParseFloat(input string) (*float64, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// SplitList splits a comma-separated flag value, trimming whitespace
// and dropping empty entries.
func SplitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// TruncateString truncates a string to maxLen with an ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
