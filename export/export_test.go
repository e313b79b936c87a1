package export

import (
	"bytes"
	"encoding/csv"
	"net/url"
	"strings"
	"testing"

	"github.com/buildledger/jobs_backend/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func residentialJob() *models.Job {
	job := &models.Job{
		Id:         "job-1",
		Name:       "Maple Street Remodel",
		ClientName: "K. Aldridge",
		Address:    "412 Maple St",
		JobType:    models.JobTypeResidential,
	}
	job.Financials.Estimate.Residential = models.ResidentialEstimate{
		SquareFootage: dec("1000"),
		MaterialRate:  dec("0.66"),
		HangerRate:    dec("0.27"),
		FinisherRate:  dec("0.26"),
		PrepCleanRate: dec("0.10"),
		SalesTaxRate:  dec("8.25"),
	}
	return job
}

func TestBuildQuote_Residential(t *testing.T) {
	quote := BuildQuote(residentialJob())

	if len(quote.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(quote.Sections))
	}
	if !quote.FinalTotal.Equal(dec("1438.95")) {
		t.Fatalf("expected final total 1438.95, got %s", quote.FinalTotal)
	}
	if quote.OverrideApplied {
		t.Fatal("no override expected")
	}
	if len(quote.Sections[0].Rows) != 6 {
		t.Fatalf("expected 6 line rows, got %d", len(quote.Sections[0].Rows))
	}
}

func TestBuildQuote_CommercialSections(t *testing.T) {
	job := &models.Job{Id: "job-2", Name: "Riverside Buildout", JobType: models.JobTypeCommercial}
	job.Financials.Estimate.Commercial = models.CommercialEstimate{
		Rows: []models.CommercialRow{
			{Id: "r1", Category: models.CommercialCategoryDrywall, Kind: models.CommercialRowMaterial, Quantity: dec("100"), WastePercent: dec("10"), UnitCost: dec("2.00")},
		},
		Breakdowns: []models.CommercialBreakdown{
			{Id: "b1", Name: "East Wing", Rows: []models.CommercialRow{
				{Id: "r2", Category: models.CommercialCategoryACT, Kind: models.CommercialRowLabor, Quantity: dec("50"), UnitCost: dec("3.00")},
			}},
		},
		OverheadPercent: dec("15"),
		ProfitPercent:   dec("20"),
		SalesTaxPercent: dec("8"),
	}

	quote := BuildQuote(job)
	// Main + East Wing + Summary.
	if len(quote.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(quote.Sections))
	}
	if quote.Sections[1].Name != "East Wing" {
		t.Fatalf("expected breakdown section East Wing, got %q", quote.Sections[1].Name)
	}
	if quote.Sections[2].Name != "Summary" {
		t.Fatalf("expected trailing summary section, got %q", quote.Sections[2].Name)
	}
}

func TestQuoteWorkbook(t *testing.T) {
	job := residentialJob()
	quote := BuildQuote(job)

	f, err := QuoteWorkbook(job, quote)
	if err != nil {
		t.Fatalf("QuoteWorkbook: %v", err)
	}
	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Estimate" {
		t.Fatalf("expected single Estimate sheet, got %v", sheets)
	}

	name, err := f.GetCellValue("Estimate", "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if name != "Maple Street Remodel" {
		t.Fatalf("expected job name in A1, got %q", name)
	}
	first, _ := f.GetCellValue("Estimate", "A4")
	if first != "Drywall Material" {
		t.Fatalf("expected first line row in A4, got %q", first)
	}
	amount, _ := f.GetCellValue("Estimate", "C4")
	if amount != "660.00" {
		t.Fatalf("expected material amount 660.00 in C4, got %q", amount)
	}
}

func TestWriteCSV(t *testing.T) {
	quote := BuildQuote(residentialJob())

	var buf bytes.Buffer
	if err := WriteCSV(&buf, quote); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	// header + 6 lines + 3 totals.
	if len(records) != 10 {
		t.Fatalf("expected 10 csv records, got %d", len(records))
	}
	if records[0][0] != "section" || records[0][4] != "kind" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	last := records[len(records)-1]
	if last[1] != "Quote Total" || last[3] != "1438.95" || last[4] != "total" {
		t.Fatalf("unexpected final total row: %v", last)
	}
}

func TestMailtoLink(t *testing.T) {
	job := residentialJob()
	quote := BuildQuote(job)

	link := MailtoLink(job, quote)
	if !strings.HasPrefix(link, "mailto:?") {
		t.Fatalf("expected mailto:? prefix, got %q", link)
	}
	if strings.Contains(link, "+") {
		t.Fatal("mailto links must percent-encode spaces, not use '+'")
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parsing link: %v", err)
	}
	query := parsed.Query()
	if query.Get("subject") != "Quote - Maple Street Remodel" {
		t.Fatalf("unexpected subject: %q", query.Get("subject"))
	}
	body := query.Get("body")
	if !strings.Contains(body, "412 Maple St") {
		t.Fatal("expected address in body")
	}
	if !strings.Contains(body, "Quote Total: $1438.95") {
		t.Fatalf("expected quote total in body, got %q", body)
	}
}
