package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(date, items, typ, total string) map[string]string {
	return map[string]string{
		"Date":  date,
		"Items": items,
		"Type":  typ,
		"Total": total,
	}
}

func TestParsePurchasesSingle(t *testing.T) {
	rows := []map[string]string{
		row("12 Mar, 2024", "Portal 2", "Purchase", "$9.99"),
		row("1 Jan, 2024", "The Witcher 3: Wild Hunt", "Purchase", "$29.99"),
	}
	got := ParsePurchases(rows)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Portal 2"}, got[0].Titles)
	assert.InDelta(t, 9.99, got[0].Cost, 0.001)
	assert.Equal(t, "12 Mar, 2024", got[0].Date)
	assert.Equal(t, "Purchase", got[0].Method)
	assert.False(t, got[0].Bundle())
}

func TestParsePurchasesBundleContinuation(t *testing.T) {
	rows := []map[string]string{
		row("5 Jul, 2023", "Orange Box", "Purchase", "$19.99"),
		row("", "Half-Life 2", "", ""),
		row("", "Portal", "", ""),
		row("6 Jul, 2023", "Stardew Valley", "Purchase", "$14.99"),
	}
	got := ParsePurchases(rows)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Orange Box", "Half-Life 2", "Portal"}, got[0].Titles)
	assert.True(t, got[0].Bundle())
	assert.Equal(t, []string{"Stardew Valley"}, got[1].Titles)
}

func TestParsePurchasesSkipsMarketAndZeroCost(t *testing.T) {
	rows := []map[string]string{
		row("5 Jul, 2023", "Steam Community Market", "Purchase", "$0.15"),
		row("5 Jul, 2023", "Free Weekend Game", "Purchase", "$0.00"),
		row("6 Jul, 2023", "Portal 2", "Purchase", "$9.99"),
	}
	got := ParsePurchases(rows)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Portal 2"}, got[0].Titles)
}

func TestParsePurchasesHeaderAliases(t *testing.T) {
	rows := []map[string]string{
		{
			"Purchase Date": "1 Feb, 2022",
			"Game Name":     "Hades",
			"Purchase Type": "Purchase",
			"Total Spent":   "$24.99",
		},
	}
	got := ParsePurchases(rows)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Hades"}, got[0].Titles)
	assert.InDelta(t, 24.99, got[0].Cost, 0.001)
}

func TestResolveColumnContainsMatch(t *testing.T) {
	rec := map[string]string{"Total Amount (USD)": "1.00", "Item Name": "x"}
	assert.Equal(t, "Total Amount (USD)", resolveColumn(rec, "Total|Cost"))
	assert.Equal(t, "Item Name", resolveColumn(rec, "Items|Item"))
}
