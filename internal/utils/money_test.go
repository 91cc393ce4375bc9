package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$39.94", 39.94, true},
		{"39.94", 39.94, true},
		{"1,234.50", 1234.50, true},
		{"1 234.50", 1234.50, true},
		{"€5.99", 5.99, true},
		{"($1.11)", -1.11, true},
		{"-2.50", -2.50, true},
		{"0", 0, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"$", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseMoney(tc.in)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 0.0001, "value for %q", tc.in)
		}
	}
}
