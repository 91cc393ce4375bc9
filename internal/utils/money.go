package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepMoney = regexp.MustCompile(`[^\d.\-()]`)

// ParseMoney extracts a numeric amount from strings like "$39.94",
// "1 234.50" or "($1.11)". Parenthesized amounts are negative (refund
// rows in Steam exports). Returns 0, false when nothing parseable is
// left.
func ParseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// strip currency symbols, NBSP variants, grouping spaces
	repl := strings.NewReplacer(" ", "", " ", "", " ", "", "\t", "", ",", "")
	s = repl.Replace(s)
	s = rxKeepMoney.ReplaceAllString(s, "")

	neg := false
	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		neg = true
	}
	s = strings.NewReplacer("(", "", ")", "").Replace(s)
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}
