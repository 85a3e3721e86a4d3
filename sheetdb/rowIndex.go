package sheetdb

// The two Sheets addressing schemes disagree by design: value ranges are
// 1-indexed A1 rows, structural requests are 0-indexed half-open row
// spans. Every conversion from a data-row index (0 = first row under the
// header) goes through exactly one of the two functions below.

// ValueRangeRow converts a data-row index to the absolute 1-indexed sheet
// row used in A1 value ranges.
func ValueRangeRow(headerRows, dataIndex int) int {
	return headerRows + dataIndex + 1
}

// StructuralRowSpan converts a data-row index to the absolute 0-indexed
// [start, end) span used by DeleteRowRange.
func StructuralRowSpan(headerRows, dataIndex int) (start, end int) {
	start = headerRows + dataIndex
	return start, start + 1
}
