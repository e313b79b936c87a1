package workflow

import (
	"testing"

	"github.com/buildledger/jobs_backend/models"
)

func commercialInput() models.CommercialEstimate {
	return models.CommercialEstimate{
		Rows: []models.CommercialRow{
			{
				Id:           "row-1",
				Category:     models.CommercialCategoryDrywall,
				Kind:         models.CommercialRowMaterial,
				Quantity:     dec("100"),
				WastePercent: dec("10"),
				UnitCost:     dec("2.00"),
			},
		},
		OverheadPercent: dec("15"),
		ProfitPercent:   dec("20"),
		SalesTaxPercent: dec("8"),
	}
}

func TestCalculateCommercialEstimate_RowAndCascade(t *testing.T) {
	out := CalculateCommercialEstimate(commercialInput())

	row := out.Main.Rows[0]
	if !row.AdjustedQuantity.Equal(dec("110")) {
		t.Fatalf("expected adjusted quantity 110, got %s", row.AdjustedQuantity)
	}
	if !row.RowTotal.Equal(dec("220.00")) {
		t.Fatalf("expected row total 220.00, got %s", row.RowTotal)
	}

	main := out.Main
	if !main.TotalMaterialCost.Equal(dec("220")) || !main.TotalLaborCost.IsZero() {
		t.Fatalf("expected material 220 / labor 0, got %s / %s", main.TotalMaterialCost, main.TotalLaborCost)
	}
	if !main.OverheadAmount.Equal(dec("33")) {
		t.Fatalf("expected overhead 33, got %s", main.OverheadAmount)
	}
	if !main.SubtotalWithOverhead.Equal(dec("253")) {
		t.Fatalf("expected subtotal with overhead 253, got %s", main.SubtotalWithOverhead)
	}
	if !main.ProfitAmount.Equal(dec("50.60")) {
		t.Fatalf("expected profit 50.60, got %s", main.ProfitAmount)
	}
	// Sales tax applies to materials only.
	if !main.SalesTax.Equal(dec("17.60")) {
		t.Fatalf("expected sales tax 17.60, got %s", main.SalesTax)
	}
	if !main.TotalWithTax.Equal(dec("321.20")) {
		t.Fatalf("expected total with tax 321.20, got %s", main.TotalWithTax)
	}
	if !out.FinalTotal.Equal(dec("321.20")) || out.OverrideApplied {
		t.Fatalf("no override: final total must equal combined total, got %s", out.FinalTotal)
	}
}

func TestCalculateCommercialEstimate_LaborRowsNotTaxed(t *testing.T) {
	in := commercialInput()
	in.Rows = append(in.Rows, models.CommercialRow{
		Id:       "row-2",
		Category: models.CommercialCategoryDrywall,
		Kind:     models.CommercialRowLabor,
		Quantity: dec("100"),
		UnitCost: dec("1.50"),
	})

	out := CalculateCommercialEstimate(in)
	if !out.Main.TotalLaborCost.Equal(dec("150")) {
		t.Fatalf("expected labor 150, got %s", out.Main.TotalLaborCost)
	}
	// Tax base stays material-only.
	if !out.Main.SalesTax.Equal(dec("17.60")) {
		t.Fatalf("labor must not enter the tax base, got %s", out.Main.SalesTax)
	}
}

func TestCalculateCommercialEstimate_BreakdownsSummed(t *testing.T) {
	in := commercialInput()
	in.Breakdowns = []models.CommercialBreakdown{
		{Id: "bd-1", Name: "East Wing", Rows: in.Rows},
	}

	out := CalculateCommercialEstimate(in)
	if len(out.Breakdowns) != 1 {
		t.Fatalf("expected 1 breakdown section, got %d", len(out.Breakdowns))
	}
	// Breakdown computed independently with the main percentages.
	if !out.Breakdowns[0].TotalWithTax.Equal(out.Main.TotalWithTax) {
		t.Fatalf("breakdown with identical rows must match main: %s vs %s",
			out.Breakdowns[0].TotalWithTax, out.Main.TotalWithTax)
	}
	if !out.CombinedSubtotalWithOverhead.Equal(dec("506")) {
		t.Fatalf("expected combined subtotal 506, got %s", out.CombinedSubtotalWithOverhead)
	}
	if !out.CombinedTotalWithTax.Equal(dec("642.40")) {
		t.Fatalf("expected combined total 642.40, got %s", out.CombinedTotalWithTax)
	}
}

func TestCalculateCommercialEstimate_ManualOverride(t *testing.T) {
	in := commercialInput()
	in.ManualOverrideTotal = dec("600")

	out := CalculateCommercialEstimate(in)
	if !out.OverrideApplied {
		t.Fatal("expected manual override to apply")
	}
	if !out.FinalTotal.Equal(dec("600")) {
		t.Fatalf("expected final total 600, got %s", out.FinalTotal)
	}
	// actual profit = override - combined subtotal with overhead.
	if !out.ActualProfit.Equal(dec("347")) {
		t.Fatalf("expected actual profit 600 - 253 = 347, got %s", out.ActualProfit)
	}
}
