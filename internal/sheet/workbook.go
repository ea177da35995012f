package sheet

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Workbook is a Store over an xlsx file on disk. Every call reopens the
// file, so the header mapping always reflects the live sheet. The mutex
// keeps interleaved saves from corrupting the file; it does not serialize
// logical read-modify-write sequences (see Service.Decide on the remaining
// lost-update race).
type Workbook struct {
	path  string
	sheet string

	mu sync.Mutex
}

func NewWorkbook(path, sheetName string) *Workbook {
	return &Workbook{path: path, sheet: sheetName}
}

func (wb *Workbook) Read(ctx context.Context) ([][]string, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	f, err := wb.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(wb.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", wb.sheet, err)
	}
	return rows, nil
}

func (wb *Workbook) Append(ctx context.Context, row []string) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	f, err := wb.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(wb.sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", wb.sheet, err)
	}

	n := len(rows) + 1
	for col, v := range row {
		if v == "" {
			continue
		}
		if err := f.SetCellStr(wb.sheet, A1(col, n), v); err != nil {
			return fmt.Errorf("set %s: %w", A1(col, n), err)
		}
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (wb *Workbook) BatchUpdate(ctx context.Context, updates []CellUpdate) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	f, err := wb.open()
	if err != nil {
		return err
	}
	defer f.Close()

	for _, u := range updates {
		if err := f.SetCellStr(wb.sheet, u.Ref, u.Value); err != nil {
			return fmt.Errorf("set %s: %w", u.Ref, err)
		}
	}
	// One save applies the whole batch; failing before it leaves the file
	// untouched.
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (wb *Workbook) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(wb.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", wb.path, err)
	}
	return f, nil
}
