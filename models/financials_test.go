package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecomputeActualTotals(t *testing.T) {
	actual := ActualFinancials{
		MaterialInvoices: []MaterialInvoice{
			{Id: "inv-1", Amount: dec("100"), SalesTax: dec("8")},
			{Id: "inv-2", Amount: dec("250.50"), SalesTax: dec("20.04")},
		},
		ChangeOrders:      []ChangeOrder{{Id: "co-1", Amount: dec("25")}},
		FieldChangeOrders: []ChangeOrder{{Id: "fco-1", Amount: dec("10")}},
		ManualLaborCosts:  []ManualLaborCost{{Id: "ml-1", Amount: dec("50")}},
		LaborCosts: []LaborCostLineItem{
			{Id: "hourly:emp-1", OriginalAmount: dec("175"), EmployerTax: dec("29.75"), Amount: dec("204.75")},
		},
	}

	RecomputeActualTotals(&actual)

	if !actual.TotalMaterialCost.Equal(dec("350.50")) {
		t.Fatalf("expected total material 350.50, got %s", actual.TotalMaterialCost)
	}
	if !actual.TotalSalesTax.Equal(dec("28.04")) {
		t.Fatalf("expected total sales tax 28.04, got %s", actual.TotalSalesTax)
	}
	if !actual.TotalLaborCost.Equal(dec("204.75")) {
		t.Fatalf("expected total labor 204.75, got %s", actual.TotalLaborCost)
	}
	if !actual.TotalManualLaborCost.Equal(dec("50")) {
		t.Fatalf("expected total manual labor 50, got %s", actual.TotalManualLaborCost)
	}
	if !actual.TotalChangeOrderValue.Equal(dec("25")) {
		t.Fatalf("expected change order total 25, got %s", actual.TotalChangeOrderValue)
	}
	if !actual.TotalFieldChangeOrderValue.Equal(dec("10")) {
		t.Fatalf("expected field change order total 10, got %s", actual.TotalFieldChangeOrderValue)
	}

	expected := actual.TotalMaterialCost.
		Add(actual.TotalSalesTax).
		Add(actual.TotalLaborCost).
		Add(actual.TotalManualLaborCost).
		Add(actual.TotalChangeOrderValue).
		Add(actual.TotalFieldChangeOrderValue)
	if !actual.TotalActual.Equal(expected) {
		t.Fatalf("total actual must be the six-addend sum: %s != %s", actual.TotalActual, expected)
	}
	if !actual.TotalActual.Equal(dec("668.29")) {
		t.Fatalf("expected total actual 668.29, got %s", actual.TotalActual)
	}
}

func TestLaborCostsEqual_DecimalAware(t *testing.T) {
	a := []LaborCostLineItem{{Id: "x", OriginalAmount: dec("1.0"), Amount: dec("1.0")}}
	b := []LaborCostLineItem{{Id: "x", OriginalAmount: dec("1.00"), Amount: dec("1.00")}}

	// 1.0 and 1.00 differ internally; equality must compare values.
	if !LaborCostsEqual(a, b) {
		t.Fatal("expected value-equal lists to compare equal")
	}

	b[0].Amount = dec("1.01")
	if LaborCostsEqual(a, b) {
		t.Fatal("expected differing amounts to compare unequal")
	}
	if LaborCostsEqual(a, nil) {
		t.Fatal("expected length mismatch to compare unequal")
	}
}

func TestNewFinancialsSkeleton(t *testing.T) {
	f := NewFinancialsSkeleton(JobTypeCommercial)

	if got := len(f.Estimate.Commercial.Rows); got != 16 {
		t.Fatalf("expected 2 rows per commercial category (16), got %d", got)
	}
	if got := len(f.Estimate.Construction.Phases); got != 6 {
		t.Fatalf("expected 6 construction phases, got %d", got)
	}
	if f.Estimate.Construction.Phases[0].Name != "Site Work" {
		t.Fatalf("expected first phase Site Work, got %s", f.Estimate.Construction.Phases[0].Name)
	}
	if !f.Actual.TotalActual.IsZero() {
		t.Fatalf("fresh skeleton must roll up to zero, got %s", f.Actual.TotalActual)
	}
	if f.Actual.MaterialInvoices == nil || f.Actual.LaborCosts == nil {
		t.Fatal("actual collections must be initialized, not nil")
	}
}

func TestFinishTier(t *testing.T) {
	cases := []struct {
		name     string
		scope    Scope
		expected FinishTier
	}{
		{"knockdown", Scope{Name: "Knockdown ceilings", Category: "finish"}, FinishTierHeavy},
		{"stomp", Scope{Name: "Stomp texture", Category: "Finish"}, FinishTierHeavy},
		{"level5", Scope{Name: "Level 5 smooth", Category: "finish"}, FinishTierSmooth},
		{"unrelated category", Scope{Name: "Knockdown", Category: "demo"}, FinishTierDefault},
		{"no keyword", Scope{Name: "Orange peel", Category: "finish"}, FinishTierDefault},
	}
	for _, tc := range cases {
		job := Job{Scopes: []Scope{tc.scope}}
		if got := job.FinishTier(); got != tc.expected {
			t.Fatalf("%s: expected tier %s, got %s", tc.name, tc.expected, got)
		}
	}
}
