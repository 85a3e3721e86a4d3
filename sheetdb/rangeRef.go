package sheetdb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ColumnLetter converts a 0-based column index to its A1 letter ("A", "J", "AA").
func ColumnLetter(index int) string {
	letters := ""
	index++
	for index > 0 {
		index--
		letters = string(rune('A'+index%26)) + letters
		index /= 26
	}
	return letters
}

func columnIndex(letters string) int {
	index := 0
	for _, r := range letters {
		index = index*26 + int(r-'A') + 1
	}
	return index - 1
}

// RangeRef is a parsed A1 reference. Rows are 1-indexed and absolute;
// EndRow == 0 means open-ended ("Cases!A2:J").
type RangeRef struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

func ParseRangeRef(ref string) (RangeRef, error) {
	bang := strings.IndexByte(ref, '!')
	if bang <= 0 {
		return RangeRef{}, fmt.Errorf("range ref %q has no sheet name", ref)
	}
	parsed := RangeRef{Sheet: ref[:bang]}

	cells := strings.SplitN(ref[bang+1:], ":", 2)
	start, err := parseCell(cells[0])
	if err != nil {
		return RangeRef{}, fmt.Errorf("range ref %q: %w", ref, err)
	}
	parsed.StartCol, parsed.StartRow = start.col, start.row
	if len(cells) == 1 {
		parsed.EndCol, parsed.EndRow = start.col, start.row
		return parsed, nil
	}
	end, err := parseCell(cells[1])
	if err != nil {
		return RangeRef{}, fmt.Errorf("range ref %q: %w", ref, err)
	}
	parsed.EndCol, parsed.EndRow = end.col, end.row
	return parsed, nil
}

type cellRef struct {
	col int
	row int // 0 when the cell has no row part ("J" in "A2:J")
}

func parseCell(cell string) (cellRef, error) {
	split := 0
	for split < len(cell) && cell[split] >= 'A' && cell[split] <= 'Z' {
		split++
	}
	if split == 0 {
		return cellRef{}, errors.New("missing column letters")
	}
	ref := cellRef{col: columnIndex(cell[:split])}
	if split == len(cell) {
		return ref, nil
	}
	row, err := strconv.Atoi(cell[split:])
	if err != nil || row <= 0 {
		return cellRef{}, fmt.Errorf("bad row number %q", cell[split:])
	}
	ref.row = row
	return ref, nil
}

// RowRange builds the A1 ref covering one full data row, e.g. data index 3
// of a 10-column sheet with one header row -> "Cases!A5:J5".
func RowRange(sheet string, headerRows, dataIndex, width int) string {
	row := ValueRangeRow(headerRows, dataIndex)
	return fmt.Sprintf("%s!A%d:%s%d", sheet, row, ColumnLetter(width-1), row)
}

// CellRange builds the A1 ref of a single cell in a data row.
func CellRange(sheet string, headerRows, dataIndex, col int) string {
	row := ValueRangeRow(headerRows, dataIndex)
	letter := ColumnLetter(col)
	return fmt.Sprintf("%s!%s%d:%s%d", sheet, letter, row, letter, row)
}
