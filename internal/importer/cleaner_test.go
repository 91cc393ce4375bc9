package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRowsMarketWalletConversion(t *testing.T) {
	rows := []map[string]string{
		row("1 Jan, 2024", "Steam Community Market", "Purchase", "$0.35"),
		row("2 Jan, 2024", "Wallet Credit", "Purchase", "$20.00"),
		row("3 Jan, 2024", "Currency Conversion", "Conversion", "$1.23"),
		row("4 Jan, 2024", "Portal 2", "Purchase", "$9.99"),
	}
	got, stats := CleanRows(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Portal 2", got[0]["Items"])
	assert.Equal(t, 1, stats.Market)
	assert.Equal(t, 1, stats.Wallet)
	assert.Equal(t, 1, stats.Conversions)
}

func TestCleanRowsGiftBlock(t *testing.T) {
	// A gift purchase drags its bundle continuation rows with it.
	rows := []map[string]string{
		row("1 Jan, 2024", "Orange Box", "Gift Purchase", "$19.99"),
		row("", "Half-Life 2", "", ""),
		row("", "Portal", "", ""),
		row("2 Jan, 2024", "Stardew Valley", "Purchase", "$14.99"),
	}
	got, stats := CleanRows(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Stardew Valley", got[0]["Items"])
	assert.Equal(t, 3, stats.Gifts)
}

func TestCleanRowsEmptyRefund(t *testing.T) {
	rows := []map[string]string{
		row("1 Jan, 2024", "Portal 2", "Refund", ""),
		row("2 Jan, 2024", "Hades", "Purchase", "$24.99"),
	}
	got, stats := CleanRows(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Hades", got[0]["Items"])
	assert.Equal(t, 1, stats.Refunds)
	assert.Equal(t, 0, stats.RefundPairs)
}

func TestCleanRowsRefundPair(t *testing.T) {
	rows := []map[string]string{
		row("1 Jan, 2024", "Cyberpunk 2077", "Purchase", "$59.99"),
		row("3 Jan, 2024", "Cyberpunk 2077 Refund", "Refund", "$59.99"),
		row("4 Jan, 2024", "Hades", "Purchase", "$24.99"),
	}
	got, stats := CleanRows(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Hades", got[0]["Items"])
	assert.Equal(t, 1, stats.RefundPairs)
	assert.Equal(t, 0, stats.Refunds)
}

func TestCleanRowsPartialRefundKeepsPurchase(t *testing.T) {
	// Same name but different amounts: the refund goes, the full-price
	// purchase stays.
	rows := []map[string]string{
		row("1 Jan, 2024", "Portal 2", "Purchase", "$59.99"),
		row("3 Jan, 2024", "Portal 2", "Refund", "($4.99)"),
	}
	got, stats := CleanRows(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Portal 2", got[0]["Items"])
	assert.Equal(t, "Purchase", got[0]["Type"])
	assert.Equal(t, 0, stats.RefundPairs)
	assert.Equal(t, 1, stats.Refunds)
}

func TestCleanRowsRefundPairNegativeAmount(t *testing.T) {
	// Parenthesized refund totals still pair when magnitudes agree.
	rows := []map[string]string{
		row("1 Jan, 2024", "Cyberpunk 2077", "Purchase", "$59.99"),
		row("3 Jan, 2024", "Cyberpunk 2077", "Refund", "($59.99)"),
	}
	got, stats := CleanRows(rows)
	assert.Empty(t, got)
	assert.Equal(t, 1, stats.RefundPairs)
}

func TestCleanRowsUnpairedRefundStillDropped(t *testing.T) {
	rows := []map[string]string{
		row("3 Jan, 2024", "Some Other Game", "Refund", "$9.99"),
		row("4 Jan, 2024", "Hades", "Purchase", "$24.99"),
	}
	got, stats := CleanRows(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Hades", got[0]["Items"])
	assert.Equal(t, 1, stats.Refunds)
}

func TestGameNamesMatch(t *testing.T) {
	assert.True(t, gameNamesMatch("Cyberpunk 2077 Refund", "Cyberpunk 2077"))
	assert.True(t, gameNamesMatch("Refund: Hades", "Hades"))
	assert.False(t, gameNamesMatch("Cyberpunk 2077 Refund", "Hades"))
	assert.True(t, gameNamesMatch("the witcher 3 wild hunt", "The Witcher 3: Wild Hunt"))
}
