package export

import (
	"fmt"

	"github.com/buildledger/jobs_backend/models"
	"github.com/xuri/excelize/v2"
)

// QuoteWorkbook renders one sheet per quote section. Money cells are written
// as fixed 2dp strings so the workbook shows exactly what the quote says.
func QuoteWorkbook(job *models.Job, quote Quote) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, section := range quote.Sections {
		sheetName := sanitizeSheetName(section.Name)
		if i == 0 {
			// excelize always starts with "Sheet1"
			if err := f.SetSheetName("Sheet1", sheetName); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheetName); err != nil {
				return nil, err
			}
		}

		f.SetCellValue(sheetName, "A1", job.Name)
		f.SetCellValue(sheetName, "B1", job.ClientName)
		f.SetCellValue(sheetName, "C1", string(job.JobType))

		f.SetCellValue(sheetName, "A3", "Item")
		f.SetCellValue(sheetName, "B3", "Detail")
		f.SetCellValue(sheetName, "C3", "Amount")

		row := 4
		for _, r := range section.Rows {
			f.SetCellValue(sheetName, "A"+fmt.Sprint(row), r.Label)
			f.SetCellValue(sheetName, "B"+fmt.Sprint(row), r.Detail)
			f.SetCellValue(sheetName, "C"+fmt.Sprint(row), r.Amount.StringFixed(2))
			row++
		}

		row++
		for _, t := range section.Totals {
			f.SetCellValue(sheetName, "A"+fmt.Sprint(row), t.Label)
			f.SetCellValue(sheetName, "C"+fmt.Sprint(row), t.Amount.StringFixed(2))
			row++
		}
	}

	return f, nil
}

// Excel sheet names cap at 31 chars and reject a handful of characters.
func sanitizeSheetName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	if len(out) > 31 {
		out = out[:31]
	}
	if len(out) == 0 {
		return "Sheet"
	}
	return string(out)
}
