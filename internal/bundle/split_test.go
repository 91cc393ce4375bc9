package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualSplit(t *testing.T) {
	titles := []string{"a", "b", "c"}
	parts := EqualSplit(titles, 30)
	require.Len(t, parts, 3)
	sum := 0.0
	for _, t := range titles {
		sum += parts[t]
	}
	assert.InDelta(t, 30, sum, Tolerance*float64(len(titles)))
	assert.InDelta(t, 10, parts["b"], Tolerance)

	assert.Empty(t, EqualSplit(nil, 30))
}

func TestWeightedSplit(t *testing.T) {
	titles := []string{"cheap", "expensive"}
	prices := map[string]float64{"cheap": 10, "expensive": 30}

	parts, err := WeightedSplit(titles, 20, prices)
	require.NoError(t, err)
	assert.InDelta(t, 5, parts["cheap"], Tolerance)
	assert.InDelta(t, 15, parts["expensive"], Tolerance)
}

func TestWeightedSplitEqualPrices(t *testing.T) {
	titles := []string{"a", "b"}
	prices := map[string]float64{"a": 20, "b": 20}
	parts, err := WeightedSplit(titles, 10, prices)
	require.NoError(t, err)
	assert.InDelta(t, parts["a"], parts["b"], Tolerance)
}

func TestWeightedSplitErrors(t *testing.T) {
	_, err := WeightedSplit([]string{"a", "b"}, 10, map[string]float64{"a": 5})
	assert.Error(t, err, "missing price")

	_, err = WeightedSplit([]string{"a"}, 10, map[string]float64{"a": -1})
	assert.Error(t, err, "negative price")

	_, err = WeightedSplit([]string{"a", "b"}, 10, map[string]float64{"a": 0, "b": 0})
	assert.ErrorIs(t, err, ErrNoWeights)
}

func TestCheckManualSplit(t *testing.T) {
	diff, ok, err := CheckManualSplit(map[string]float64{"a": 5, "b": 5}, 10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0, diff, Tolerance)

	diff, ok, err = CheckManualSplit(map[string]float64{"a": 5, "b": 3}, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.InDelta(t, -2, diff, Tolerance)

	_, _, err = CheckManualSplit(map[string]float64{"a": -1}, 10)
	assert.Error(t, err)
}
