package reservation

import "roomreserve/internal/sheet"

// LocateRow scans rows in stored order and returns the index of the first
// row whose id cell equals target exactly (byte equality, no trimming).
// Duplicate ids are not detected; the first match wins. Ids are generated
// out of band, so uniqueness is assumed, never enforced here.
func LocateRow(rows [][]string, idCol int, target string) (int, bool) {
	for i, row := range rows {
		if sheet.Cell(row, idCol) == target {
			return i, true
		}
	}
	return 0, false
}
