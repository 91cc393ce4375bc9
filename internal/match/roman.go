package match

import "strings"

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// RomanToInt parses a Roman numeral using the subtractive rule: walking
// right to left, a symbol smaller than its right neighbour is subtracted.
// Returns ok=false for any character outside IVXLCDM.
func RomanToInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	s = strings.ToUpper(s)

	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0, false
		}
		if v < prev {
			total -= v
		} else {
			total += v
		}
		prev = v
	}
	return total, true
}

var (
	romanSteps   = []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	romanSymbols = []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
)

// IntToRoman renders n as a canonical Roman numeral by greedy subtraction.
// Valid for 1..3999 only.
func IntToRoman(n int) (string, bool) {
	if n <= 0 || n > 3999 {
		return "", false
	}
	var b strings.Builder
	for i, step := range romanSteps {
		for n >= step {
			b.WriteString(romanSymbols[i])
			n -= step
		}
	}
	return b.String(), true
}
