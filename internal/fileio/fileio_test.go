package fileio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAnyMapsCSV(t *testing.T) {
	csv := "Date,Items,Type,Total\n" +
		"\"1 Jan, 2024\",Portal 2,Purchase,$9.99\n" +
		",Half-Life 2,,\n" +
		",,,\n"

	rows, err := ReadAnyMaps(strings.NewReader(csv), "purchases.csv", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2, "fully blank rows are dropped")
	assert.Equal(t, "Portal 2", rows[0]["Items"])
	assert.Equal(t, "1 Jan, 2024", rows[0]["Date"])
	assert.Equal(t, "Half-Life 2", rows[1]["Items"])
	assert.Equal(t, "", rows[1]["Date"])
}

func TestReadAnyMapsHeaderRow(t *testing.T) {
	csv := "Steam purchase history export\n" +
		"Date,Items\n" +
		"1 Jan,Portal 2\n"

	rows, err := ReadAnyMaps(strings.NewReader(csv), "export.csv", 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Portal 2", rows[0]["Items"])
}

func TestReadAnyMapsUnsupported(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader(""), "export.pdf", 1)
	assert.Error(t, err)
}

func TestPickHeaderFillsBlanks(t *testing.T) {
	h := pickHeader([][]string{{"Date", "", "Total"}}, 1)
	assert.Equal(t, []string{"Date", "Column 2", "Total"}, h)
}

func TestNormalizeCell(t *testing.T) {
	assert.Equal(t, "9.99", normalizeCell("  9.99 "))
	assert.Equal(t, "1 234", normalizeCell("1 234"))
}
