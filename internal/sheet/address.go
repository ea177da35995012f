package sheet

import "strconv"

// ColumnLetter converts a zero-based column index to the workbook's column
// name (0→"A", 25→"Z", 26→"AA"). The encoding has no zero letter, so each
// step decrements before taking the remainder.
func ColumnLetter(col int) string {
	n := col + 1
	var s string
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

// A1 composes the native cell reference for a zero-based column index and a
// one-based row number.
func A1(col, rowNumber int) string {
	return ColumnLetter(col) + strconv.Itoa(rowNumber)
}
