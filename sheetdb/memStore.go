package sheetdb

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store used by tests and the local dev mode.
// Sheets hold their header rows; range refs address them exactly as the
// remote store would. Append follows the live behavior of adding after
// the last occupied row.
type MemStore struct {
	mu     sync.RWMutex
	order  []string
	sheets map[string][][]string
	ids    map[string]int64
	nextID int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		sheets: map[string][][]string{},
		ids:    map[string]int64{},
		nextID: 1,
	}
}

// SetSheet replaces a sheet's full contents, header row included.
func (m *MemStore) SetSheet(title string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSheetLocked(title)
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	m.sheets[title] = copied
}

// Rows returns a snapshot of a sheet's full contents.
func (m *MemStore) Rows(title string) [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.sheets[title]
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return copied
}

func (m *MemStore) ensureSheetLocked(title string) {
	if _, ok := m.ids[title]; ok {
		return
	}
	m.ids[title] = m.nextID
	m.nextID++
	m.order = append(m.order, title)
	m.sheets[title] = nil
}

func (m *MemStore) GetRange(ctx context.Context, rangeRef string) ([][]string, error) {
	ref, err := ParseRangeRef(rangeRef)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.sheets[ref.Sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", ref.Sheet)
	}

	lastRow := ref.EndRow
	if lastRow == 0 || lastRow > len(rows) {
		lastRow = len(rows)
	}
	var out [][]string
	for rowNum := ref.StartRow; rowNum <= lastRow; rowNum++ {
		row := rows[rowNum-1]
		if ref.StartCol >= len(row) {
			out = append(out, []string{})
			continue
		}
		endCol := ref.EndCol + 1
		if endCol > len(row) {
			endCol = len(row)
		}
		out = append(out, append([]string(nil), row[ref.StartCol:endCol]...))
	}
	// The live API omits trailing rows that are entirely empty.
	for len(out) > 0 && emptyRow(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func (m *MemStore) AppendRows(ctx context.Context, rangeRef string, rows [][]string) error {
	ref, err := ParseRangeRef(rangeRef)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSheetLocked(ref.Sheet)
	for _, row := range rows {
		m.sheets[ref.Sheet] = append(m.sheets[ref.Sheet], append([]string(nil), row...))
	}
	return nil
}

func (m *MemStore) UpdateRange(ctx context.Context, rangeRef string, rows [][]string) error {
	ref, err := ParseRangeRef(rangeRef)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSheetLocked(ref.Sheet)
	sheet := m.sheets[ref.Sheet]
	for i, row := range rows {
		rowIdx := ref.StartRow - 1 + i
		for rowIdx >= len(sheet) {
			sheet = append(sheet, nil)
		}
		for colIdx, cell := range row {
			col := ref.StartCol + colIdx
			for col >= len(sheet[rowIdx]) {
				sheet[rowIdx] = append(sheet[rowIdx], "")
			}
			sheet[rowIdx][col] = cell
		}
	}
	m.sheets[ref.Sheet] = sheet
	return nil
}

func (m *MemStore) DeleteRowRange(ctx context.Context, sheetID int64, startIndex, endIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for title, id := range m.ids {
		if id != sheetID {
			continue
		}
		rows := m.sheets[title]
		if startIndex < 0 || endIndex > len(rows) || startIndex >= endIndex {
			return fmt.Errorf("row span [%d,%d) out of bounds for sheet %q", startIndex, endIndex, title)
		}
		m.sheets[title] = append(rows[:startIndex], rows[endIndex:]...)
		return nil
	}
	return fmt.Errorf("sheet id %d not found", sheetID)
}

func (m *MemStore) ListSheets(ctx context.Context) ([]SheetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]SheetInfo, 0, len(m.order))
	for _, title := range m.order {
		infos = append(infos, SheetInfo{Title: title, SheetID: m.ids[title]})
	}
	return infos, nil
}
