package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV emits the flat row form of the quote: section, label, detail,
// amount. Totals rows carry "total" in the last column so a spreadsheet
// import can filter them.
func WriteCSV(w io.Writer, quote Quote) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"section", "item", "detail", "amount", "kind"}); err != nil {
		return err
	}
	for _, section := range quote.Sections {
		for _, r := range section.Rows {
			if err := cw.Write([]string{section.Name, r.Label, r.Detail, r.Amount.StringFixed(2), "line"}); err != nil {
				return err
			}
		}
		for _, t := range section.Totals {
			if err := cw.Write([]string{section.Name, t.Label, "", t.Amount.StringFixed(2), "total"}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
