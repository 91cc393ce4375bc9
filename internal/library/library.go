// Package library is the canonical per-user record of owned titles.
// The import core only touches it through the Store contract and never
// assumes a particular storage medium.
package library

import "errors"

type Kind string

const (
	KindGame Kind = "Game"
	KindDLC  Kind = "DLC"
)

// Entry is one owned title. ID is the Steam app id (digits) and is
// unique across the store. ParentID is set only for DLC whose cost was
// merged into a base game.
type Entry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Hours    float64 `json:"hours"`
	Cost     float64 `json:"cost"`
	HasCost  bool    `json:"hasCost"`
	Date     string  `json:"date,omitempty"`
	Method   string  `json:"method,omitempty"`
	Kind     Kind    `json:"kind"`
	ParentID string  `json:"parentId,omitempty"`
}

var (
	ErrNotFound      = errors.New("library: entry not found")
	ErrUnknownParent = errors.New("library: parent entry not found")
)

// Store is the accessor contract consumed by the import core.
type Store interface {
	// ListEntries returns every entry, stable order.
	ListEntries() ([]Entry, error)
	// GetEntry returns the entry with the given id, or ErrNotFound.
	GetEntry(id string) (Entry, error)
	// UpsertEntry inserts or replaces by id.
	UpsertEntry(e Entry) error
	// SetParent marks child as DLC of parent. ErrNotFound /
	// ErrUnknownParent when either id is missing.
	SetParent(childID, parentID string) error
}

// Stats summarizes a library: entry count, total and average hours.
type Stats struct {
	TotalGames   int     `json:"totalGames"`
	TotalHours   float64 `json:"totalHours"`
	AverageHours float64 `json:"averageHours"`
}

// ComputeStats totals playtime across the store.
func ComputeStats(s Store) (Stats, error) {
	entries, err := s.ListEntries()
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, e := range entries {
		st.TotalGames++
		st.TotalHours += e.Hours
	}
	if st.TotalGames > 0 {
		st.AverageHours = round2(st.TotalHours / float64(st.TotalGames))
	}
	st.TotalHours = round2(st.TotalHours)
	return st, nil
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
