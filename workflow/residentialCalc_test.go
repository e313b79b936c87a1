package workflow

import (
	"testing"

	"github.com/buildledger/jobs_backend/models"
)

func TestCalculateResidentialEstimate(t *testing.T) {
	in := models.ResidentialEstimate{
		SquareFootage: dec("1000"),
		MaterialRate:  dec("0.66"),
		HangerRate:    dec("0.27"),
		FinisherRate:  dec("0.26"),
		PrepCleanRate: dec("0.10"),
		SalesTaxRate:  dec("8.25"),
	}

	out := CalculateResidentialEstimate(in)

	if !out.MaterialCost.Equal(dec("660")) {
		t.Fatalf("expected material cost 660, got %s", out.MaterialCost)
	}
	if !out.SalesTax.Equal(dec("54.45")) {
		t.Fatalf("expected sales tax 54.45, got %s", out.SalesTax)
	}
	if !out.HangerCost.Equal(dec("270")) {
		t.Fatalf("expected hanger cost 270, got %s", out.HangerCost)
	}
	if !out.FinisherCost.Equal(dec("260")) {
		t.Fatalf("expected finisher cost 260, got %s", out.FinisherCost)
	}
	if !out.PrepCleanCost.Equal(dec("100")) {
		t.Fatalf("expected prep/clean cost 100, got %s", out.PrepCleanCost)
	}
	// 630 labor base * 0.15 loading.
	if !out.LaborTax.Equal(dec("94.50")) {
		t.Fatalf("expected labor tax 94.50, got %s", out.LaborTax)
	}
	if !out.TotalLaborCost.Equal(dec("724.50")) {
		t.Fatalf("expected total labor 724.50, got %s", out.TotalLaborCost)
	}
	if !out.TotalCost.Equal(dec("1438.95")) {
		t.Fatalf("expected total cost 1438.95, got %s", out.TotalCost)
	}
	if !out.FinalTotal.Equal(out.TotalCost) || out.OverrideApplied {
		t.Fatalf("no override: final total must equal total cost, got %s", out.FinalTotal)
	}
}

func TestCalculateResidentialEstimate_ManualOverride(t *testing.T) {
	in := models.ResidentialEstimate{
		SquareFootage:       dec("1000"),
		MaterialRate:        dec("0.66"),
		HangerRate:          dec("0.27"),
		FinisherRate:        dec("0.26"),
		PrepCleanRate:       dec("0.10"),
		SalesTaxRate:        dec("8.25"),
		TotalEstimateAmount: dec("1500"),
	}

	out := CalculateResidentialEstimate(in)

	if !out.OverrideApplied {
		t.Fatal("expected manual override to apply")
	}
	if !out.FinalTotal.Equal(dec("1500")) {
		t.Fatalf("expected final total 1500, got %s", out.FinalTotal)
	}
	if !out.Profit.Equal(dec("61.05")) {
		t.Fatalf("expected profit 1500 - 1438.95 = 61.05, got %s", out.Profit)
	}
}
