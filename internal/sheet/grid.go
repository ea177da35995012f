// Package sheet adapts a header-driven workbook grid into typed lookups and
// targeted cell writes.
package sheet

import "strings"

// Matrix is one read of the grid: the header row split from the data rows,
// with a name→column index built from the live header. It is rebuilt on
// every read so sheet edits (reordered or renamed columns) take effect
// immediately; never cache one across requests.
type Matrix struct {
	Headers []string
	Index   map[string]int
	Rows    [][]string
}

// NewMatrix splits a raw used range into header and data rows. Header names
// are trimmed before indexing; on duplicate names the last column wins. An
// empty header cell indexes under "" and is unreachable through Lookup.
func NewMatrix(values [][]string) Matrix {
	m := Matrix{Index: make(map[string]int)}
	if len(values) == 0 {
		return m
	}
	m.Headers = make([]string, len(values[0]))
	for i, h := range values[0] {
		name := strings.TrimSpace(h)
		m.Headers[i] = name
		m.Index[name] = i
	}
	m.Rows = values[1:]
	return m
}

// Lookup resolves the first of the given header names that is present in
// the index. A missing column is not an error; the fallback policy belongs
// to the caller.
func (m Matrix) Lookup(names ...string) (int, bool) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if i, ok := m.Index[name]; ok {
			return i, true
		}
	}
	return 0, false
}

// Cell reads the value at col, tolerating short rows: the store does not
// materialize trailing empty cells.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
