package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemory(
		Entry{ID: "620", Name: "Portal 2", Hours: 12},
		Entry{ID: "400", Name: "Portal", Hours: 6},
	)

	entries, err := m.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "400", entries[0].ID, "listing is id-ordered")

	_, err = m.GetEntry("999")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.UpsertEntry(Entry{ID: "620", Name: "Portal 2", Hours: 13}))
	e, err := m.GetEntry("620")
	require.NoError(t, err)
	assert.InDelta(t, 13, e.Hours, 0.001)
	assert.Equal(t, KindGame, e.Kind, "kind defaults to Game")
}

func TestMemorySetParent(t *testing.T) {
	m := NewMemory(
		Entry{ID: "292030", Name: "The Witcher 3: Wild Hunt"},
		Entry{ID: "378648", Name: "Blood and Wine"},
	)

	require.NoError(t, m.SetParent("378648", "292030"))
	child, err := m.GetEntry("378648")
	require.NoError(t, err)
	assert.Equal(t, KindDLC, child.Kind)
	assert.Equal(t, "292030", child.ParentID)

	assert.ErrorIs(t, m.SetParent("999", "292030"), ErrNotFound)
	assert.ErrorIs(t, m.SetParent("378648", "999"), ErrUnknownParent)
}

func TestComputeStats(t *testing.T) {
	m := NewMemory(
		Entry{ID: "1", Name: "A", Hours: 10},
		Entry{ID: "2", Name: "B", Hours: 5},
		Entry{ID: "3", Name: "C", Hours: 0},
	)
	st, err := ComputeStats(m)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalGames)
	assert.InDelta(t, 15, st.TotalHours, 0.001)
	assert.InDelta(t, 5, st.AverageHours, 0.001)
}

func TestComputeStatsEmpty(t *testing.T) {
	st, err := ComputeStats(NewMemory())
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalGames)
	assert.InDelta(t, 0, st.AverageHours, 0.001)
}
