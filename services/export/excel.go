package exportsvc

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/kazi/core"
)

// WriteXLSX writes t as a single-sheet workbook: header row styled bold,
// data rows in table order.
func WriteXLSX(w io.Writer, t core.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if t.Title != "" {
		if err := f.SetSheetName(sheet, t.Title); err != nil {
			return errors.Wrap(err, "naming sheet")
		}
		sheet = t.Title
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	for col, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.Wrap(err, "addressing header cell")
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return errors.Wrap(err, "writing header cell")
		}
		if err := f.SetCellStyle(sheet, cell, cell, bold); err != nil {
			return errors.Wrap(err, "styling header cell")
		}
	}

	for rowIdx, row := range t.Rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return errors.Wrap(err, "addressing cell")
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return errors.Wrap(err, "writing cell")
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}
