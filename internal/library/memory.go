package library

import (
	"sort"
	"sync"
)

// Memory is an in-memory Store, used for tests and dry-run imports.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemory(entries ...Entry) *Memory {
	m := &Memory{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.Kind == "" {
			e.Kind = KindGame
		}
		m.entries[e.ID] = e
	}
	return m
}

func (m *Memory) ListEntries() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetEntry(id string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *Memory) UpsertEntry(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.Kind == "" {
		e.Kind = KindGame
	}
	m.entries[e.ID] = e
	return nil
}

func (m *Memory) SetParent(childID, parentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	child, ok := m.entries[childID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m.entries[parentID]; !ok {
		return ErrUnknownParent
	}
	child.Kind = KindDLC
	child.ParentID = parentID
	m.entries[childID] = child
	return nil
}
