package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playtime.xlsx")

	s, err := OpenXLSX(path)
	require.NoError(t, err)

	require.NoError(t, s.UpsertEntry(Entry{
		ID: "620", Name: "Portal 2", Hours: 12.5, Cost: 9.99, HasCost: true,
		Date: "1 Jan, 2024", Method: "Steam",
	}))
	require.NoError(t, s.UpsertEntry(Entry{ID: "292030", Name: "The Witcher 3: Wild Hunt", Hours: 80}))
	require.NoError(t, s.UpsertEntry(Entry{ID: "378648", Name: "Blood and Wine"}))
	require.NoError(t, s.SetParent("378648", "292030"))
	require.NoError(t, s.Save())
	require.NoError(t, s.Close())

	reopened, err := OpenXLSX(path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	portal, err := reopened.GetEntry("620")
	require.NoError(t, err)
	assert.Equal(t, "Portal 2", portal.Name)
	assert.InDelta(t, 12.5, portal.Hours, 0.001)
	assert.InDelta(t, 9.99, portal.Cost, 0.001)
	assert.True(t, portal.HasCost)
	assert.Equal(t, "1 Jan, 2024", portal.Date)

	child, err := reopened.GetEntry("378648")
	require.NoError(t, err)
	assert.Equal(t, KindDLC, child.Kind)
	assert.Equal(t, "292030", child.ParentID)
}

func TestXLSXUpsertReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playtime.xlsx")

	s, err := OpenXLSX(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.UpsertEntry(Entry{ID: "620", Name: "Portal 2", Hours: 1}))
	require.NoError(t, s.UpsertEntry(Entry{ID: "620", Name: "Portal 2", Hours: 2, Cost: 9.99, HasCost: true}))

	entries, err := s.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.InDelta(t, 2, entries[0].Hours, 0.001)
}

func TestXLSXSetParentErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playtime.xlsx")
	s, err := OpenXLSX(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.UpsertEntry(Entry{ID: "620", Name: "Portal 2"}))
	assert.ErrorIs(t, s.SetParent("999", "620"), ErrNotFound)
	assert.ErrorIs(t, s.SetParent("620", "999"), ErrUnknownParent)
}
