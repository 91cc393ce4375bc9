package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRomanToInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"I", 1, true},
		{"IV", 4, true},
		{"vii", 7, true},
		{"IX", 9, true},
		{"XIV", 14, true},
		{"XL", 40, true},
		{"MCMXCIV", 1994, true},
		{"MMXXVI", 2026, true},
		{"", 0, false},
		{"IVX7", 0, false},
		{"hello", 0, false},
	}
	for _, tc := range cases {
		got, ok := RomanToInt(tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "value for %q", tc.in)
		}
	}
}

func TestIntToRoman(t *testing.T) {
	cases := []struct {
		in   int
		want string
		ok   bool
	}{
		{1, "I", true},
		{4, "IV", true},
		{9, "IX", true},
		{14, "XIV", true},
		{40, "XL", true},
		{1994, "MCMXCIV", true},
		{3999, "MMMCMXCIX", true},
		{0, "", false},
		{-3, "", false},
		{4000, "", false},
	}
	for _, tc := range cases {
		got, ok := IntToRoman(tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %d", tc.in)
		assert.Equal(t, tc.want, got, "value for %d", tc.in)
	}
}

func TestRomanRoundTrip(t *testing.T) {
	for n := 1; n <= 3999; n++ {
		r, ok := IntToRoman(n)
		require.True(t, ok, "IntToRoman(%d)", n)
		back, ok := RomanToInt(r)
		require.True(t, ok, "RomanToInt(%q)", r)
		require.Equal(t, n, back, "round trip via %q", r)
	}
}
