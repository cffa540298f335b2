package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

// WriteExcel renders the lead set as a single "Leads" worksheet with a
// styled header row.
func WriteExcel(w io.Writer, leads []entity.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
	})
	if err != nil {
		return err
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return err
	}

	for rowIdx, lead := range leads {
		for colIdx, value := range leadRow(rowIdx, lead) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
