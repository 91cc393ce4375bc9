package library

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	excelize "github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet holding the library.
const DefaultSheet = "Steam Games Playtime"

var xlsxHeader = []string{
	"Game Name", "App ID", "Hours Played", "Purchase Cost",
	"Purchase Date", "Purchase Method", "Type", "Base Game App ID",
}

// XLSX is a spreadsheet-backed Store. One row per entry, header in row 1,
// columns matching xlsxHeader. Mutations are in-memory until Save.
type XLSX struct {
	mu    sync.Mutex
	path  string
	sheet string
	f     *excelize.File
	rowOf map[string]int // app id -> 1-based row
}

// OpenXLSX opens the workbook at path, creating it with a header row if
// it does not exist yet.
func OpenXLSX(path string) (*XLSX, error) {
	s := &XLSX{path: path, sheet: DefaultSheet}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.f = excelize.NewFile()
		idx, err := s.f.NewSheet(s.sheet)
		if err != nil {
			return nil, err
		}
		s.f.SetActiveSheet(idx)
		_ = s.f.DeleteSheet("Sheet1")
		for i, h := range xlsxHeader {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := s.f.SetCellValue(s.sheet, cell, h); err != nil {
				return nil, err
			}
		}
	} else {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		s.f = f
		if idx, err := f.GetSheetIndex(s.sheet); err != nil || idx < 0 {
			return nil, fmt.Errorf("library: sheet %q not found in %s", s.sheet, path)
		}
	}

	if err := s.reindex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *XLSX) reindex() error {
	rows, err := s.f.GetRows(s.sheet)
	if err != nil {
		return err
	}
	s.rowOf = make(map[string]int, len(rows))
	for i := 1; i < len(rows); i++ { // skip header
		id := cellAt(rows[i], 1)
		if id != "" {
			s.rowOf[id] = i + 1
		}
	}
	return nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func entryFromRow(row []string) (Entry, bool) {
	e := Entry{
		Name:     cellAt(row, 0),
		ID:       cellAt(row, 1),
		Date:     cellAt(row, 4),
		Method:   cellAt(row, 5),
		ParentID: cellAt(row, 7),
	}
	if e.ID == "" || e.Name == "" {
		return Entry{}, false
	}
	if h, err := strconv.ParseFloat(cellAt(row, 2), 64); err == nil {
		e.Hours = h
	}
	if c := cellAt(row, 3); c != "" {
		if v, err := strconv.ParseFloat(c, 64); err == nil {
			e.Cost = v
			e.HasCost = true
		}
	}
	e.Kind = KindGame
	if strings.EqualFold(cellAt(row, 6), string(KindDLC)) {
		e.Kind = KindDLC
	}
	return e, true
}

func (s *XLSX) ListEntries() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.f.GetRows(s.sheet)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for i := 1; i < len(rows); i++ {
		if e, ok := entryFromRow(rows[i]); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *XLSX) GetEntry(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rowOf[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	rows, err := s.f.GetRows(s.sheet)
	if err != nil {
		return Entry{}, err
	}
	if row-1 >= len(rows) {
		return Entry{}, ErrNotFound
	}
	e, ok := entryFromRow(rows[row-1])
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (s *XLSX) writeRow(row int, e Entry) error {
	kind := e.Kind
	if kind == "" {
		kind = KindGame
	}
	cost := any("")
	if e.HasCost {
		cost = e.Cost
	}
	values := []any{e.Name, e.ID, e.Hours, cost, e.Date, e.Method, string(kind), e.ParentID}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := s.f.SetCellValue(s.sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *XLSX) UpsertEntry(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("library: entry %q has no id", e.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rowOf[e.ID]
	if !ok {
		rows, err := s.f.GetRows(s.sheet)
		if err != nil {
			return err
		}
		row = len(rows) + 1
		s.rowOf[e.ID] = row
	}
	return s.writeRow(row, e)
}

func (s *XLSX) SetParent(childID, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rowOf[childID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := s.rowOf[parentID]; !ok {
		return ErrUnknownParent
	}
	kindCell, _ := excelize.CoordinatesToCellName(7, row)
	if err := s.f.SetCellValue(s.sheet, kindCell, string(KindDLC)); err != nil {
		return err
	}
	parentCell, _ := excelize.CoordinatesToCellName(8, row)
	return s.f.SetCellValue(s.sheet, parentCell, parentID)
}

// Save writes the workbook back to disk.
func (s *XLSX) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.SaveAs(s.path)
}

func (s *XLSX) Close() error {
	return s.f.Close()
}
