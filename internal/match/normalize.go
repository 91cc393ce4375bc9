package match

import (
	"regexp"
	"strconv"
	"strings"
)

// Edition suffixes stripped before matching. Order matters: first match
// wins, and the list deliberately mirrors the hand-maintained original
// (dashed forms before bare forms). Do not sort.
var editionSuffixes = []string{
	" (pre-purchase)",
	" - standard edition",
	" - deluxe edition",
	" - ultimate edition",
	" - game of the year edition",
	" - goty edition",
	" - collector's edition",
	" - special edition",
	" - limited edition",
	" - enhanced edition",
	" - definitive edition",
	" - complete edition",
	" - gold edition",
	" - platinum edition",
	" - premium edition",
	" - remastered edition",
	" remastered edition",
	" - remastered",
	" remastered",
	"standard edition (pre-purchase)",
	" standard edition",
	" deluxe edition",
	" ultimate edition",
	" game of the year edition",
	" goty edition",
	" collector's edition",
	" special edition",
	" limited edition",
	" enhanced edition",
	" definitive edition",
	" complete edition",
	" gold edition",
	" platinum edition",
	" premium edition",
}

var (
	reSeparators = regexp.MustCompile("[:\\-–—]")
	reRomanTok   = regexp.MustCompile(`(?i)\b([IVX]+)\b`)
	reDigitTok   = regexp.MustCompile(`\b(\d+)\b`)
)

// StripEditionSuffix lowercases and trims the title, then removes the
// first matching edition suffix. Returns the base name and the suffix
// that was removed ("" when the title had none).
func StripEditionSuffix(title string) (base, suffix string) {
	clean := strings.ToLower(strings.TrimSpace(title))
	for _, s := range editionSuffixes {
		if strings.HasSuffix(clean, s) {
			return strings.TrimSpace(clean[:len(clean)-len(s)]), s
		}
	}
	return clean, ""
}

// NumberVariants produces the normalized spellings of a title: separators
// replaced with spaces, whitespace collapsed, lowercased, plus one extra
// variant per numeral token with that token swapped to the other system
// (Roman→Arabic and Arabic→Roman). A title without numeral tokens yields
// a single variant.
func NumberVariants(title string) []string {
	norm := reSeparators.ReplaceAllString(title, " ")
	norm = collapseSpaces(norm)

	variants := []string{strings.ToLower(norm)}

	for _, m := range reRomanTok.FindAllStringIndex(norm, -1) {
		tok := norm[m[0]:m[1]]
		if n, ok := RomanToInt(tok); ok {
			v := norm[:m[0]] + strconv.Itoa(n) + norm[m[1]:]
			variants = append(variants, strings.ToLower(collapseSpaces(v)))
		}
	}
	for _, m := range reDigitTok.FindAllStringIndex(norm, -1) {
		n, err := strconv.Atoi(norm[m[0]:m[1]])
		if err != nil {
			continue
		}
		if r, ok := IntToRoman(n); ok {
			v := norm[:m[0]] + r + norm[m[1]:]
			variants = append(variants, strings.ToLower(collapseSpaces(v)))
		}
	}
	return dedupe(variants)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
