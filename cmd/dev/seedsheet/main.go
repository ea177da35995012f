// seedsheet writes a starter workbook with the machine-authored header row
// so the API has a grid to append to. It refuses to overwrite an existing
// file.
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"roomreserve/pkg/config"
)

var headers = []string{
	"타임스탬프",
	"이메일 주소",
	"학번",
	"특별실",
	"예약일",
	"시작시간",
	"종료시간",
	"사유",
	"_Status",
	"_UpdatedAt",
	"_ID",
}

func main() {
	cfg := config.Load()
	if cfg.Sheet.Path == "" {
		fmt.Fprintln(os.Stderr, "SHEET_PATH is required")
		os.Exit(1)
	}
	if _, err := os.Stat(cfg.Sheet.Path); err == nil {
		fmt.Fprintf(os.Stderr, "%s already exists, not overwriting\n", cfg.Sheet.Path)
		os.Exit(1)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cfg.Sheet.Name); err != nil {
		fail(err)
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			fail(err)
		}
		if err := f.SetCellStr(cfg.Sheet.Name, cell, h); err != nil {
			fail(err)
		}
	}
	if err := f.SaveAs(cfg.Sheet.Path); err != nil {
		fail(err)
	}

	fmt.Printf("created %s (sheet %q, %d columns)\n", cfg.Sheet.Path, cfg.Sheet.Name, len(headers))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "seedsheet: %v\n", err)
	os.Exit(1)
}
