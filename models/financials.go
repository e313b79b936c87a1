package models

import (
	"time"

	"github.com/buildledger/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// Financials carries the three independent tiers of a job's money picture:
// the desk estimate, the field-revised estimate, and actual incurred costs.
type Financials struct {
	Estimate     EstimateFinancials     `json:"estimate"`
	FieldRevised FieldRevisedFinancials `json:"field_revised"`
	Actual       ActualFinancials       `json:"actual"`
}

// ---- Estimate tier ----

type EstimateFinancials struct {
	Residential  ResidentialEstimate  `json:"residential"`
	Commercial   CommercialEstimate   `json:"commercial"`
	Construction ConstructionEstimate `json:"construction"`
}

// ResidentialEstimate holds the drywall-only rate inputs: every cost is
// square footage times a rate.
type ResidentialEstimate struct {
	SquareFootage       decimal.Decimal `json:"square_footage"`
	MaterialRate        decimal.Decimal `json:"material_rate"`
	HangerRate          decimal.Decimal `json:"hanger_rate"`
	FinisherRate        decimal.Decimal `json:"finisher_rate"`
	PrepCleanRate       decimal.Decimal `json:"prep_clean_rate"`
	SalesTaxRate        decimal.Decimal `json:"sales_tax_rate"`
	TotalEstimateAmount decimal.Decimal `json:"total_estimate_amount"` // manual billing override, 0 = none
}

type CommercialCategory string

const (
	CommercialCategoryACT           CommercialCategory = "ACT"
	CommercialCategoryDrywall       CommercialCategory = "Drywall"
	CommercialCategoryChannel       CommercialCategory = "Channel"
	CommercialCategorySuspendedGrid CommercialCategory = "Suspended Grid"
	CommercialCategoryMetalFraming  CommercialCategory = "Metal Framing"
	CommercialCategoryInsulation    CommercialCategory = "Insulation"
	CommercialCategoryFRP           CommercialCategory = "FRP"
	CommercialCategoryDoor          CommercialCategory = "Door"
)

type CommercialRowKind string

const (
	CommercialRowLabor    CommercialRowKind = "labor"
	CommercialRowMaterial CommercialRowKind = "material"
)

type CommercialRow struct {
	Id           string             `json:"id"`
	Category     CommercialCategory `json:"category"`
	Kind         CommercialRowKind  `json:"kind"`
	Description  string             `json:"description"`
	Quantity     decimal.Decimal    `json:"quantity"`
	WastePercent decimal.Decimal    `json:"waste_percent"`
	UnitCost     decimal.Decimal    `json:"unit_cost"`
}

// CommercialBreakdown is a named sub-budget (e.g. a building wing) computed
// with the same formula as the whole job and summed for reporting.
type CommercialBreakdown struct {
	Id   string          `json:"id"`
	Name string          `json:"name"`
	Rows []CommercialRow `json:"rows"`
}

type CommercialEstimate struct {
	Rows                []CommercialRow       `json:"rows"`
	Breakdowns          []CommercialBreakdown `json:"breakdowns"`
	OverheadPercent     decimal.Decimal       `json:"overhead_percent"`
	ProfitPercent       decimal.Decimal       `json:"profit_percent"`
	SalesTaxPercent     decimal.Decimal       `json:"sales_tax_percent"`
	ManualOverrideTotal decimal.Decimal       `json:"manual_override_total"` // 0 = none
}

// ConstructionItem is a single line of a construction phase. Fulfilled either
// by a subcontractor (quote entered directly) or in-house (labor + material
// computed from quantity, rate, and waste).
type ConstructionItem struct {
	Id                   string          `json:"id"`
	Description          string          `json:"description"`
	SubcontractorName    string          `json:"subcontractor_name"`
	SubcontractorQuote   decimal.Decimal `json:"subcontractor_quote"` // 0 = in-house
	LaborQuantity        decimal.Decimal `json:"labor_quantity"`
	LaborRate            decimal.Decimal `json:"labor_rate"`
	LaborWastePercent    decimal.Decimal `json:"labor_waste_percent"`
	MaterialQuantity     decimal.Decimal `json:"material_quantity"`
	MaterialRate         decimal.Decimal `json:"material_rate"`
	MaterialWastePercent decimal.Decimal `json:"material_waste_percent"`
}

type ConstructionPhase struct {
	Id    string             `json:"id"`
	Name  string             `json:"name"`
	Items []ConstructionItem `json:"items"`
}

type ConstructionEstimate struct {
	Phases              []ConstructionPhase `json:"phases"`
	OverheadPercent     decimal.Decimal     `json:"overhead_percent"`
	ProfitPercent       decimal.Decimal     `json:"profit_percent"`
	SalesTaxPercent     decimal.Decimal     `json:"sales_tax_percent"`
	ManualOverrideTotal decimal.Decimal     `json:"manual_override_total"` // 0 = none
}

// ---- Field-revised tier ----

// FieldRevisedFinancials carries on-site-measured quantities, distinct from
// the desk estimate and from actual incurred costs. DrywallMaterialCost is
// derived: round(SquareFootage * DrywallMaterialRate, 2).
type FieldRevisedFinancials struct {
	SquareFootage       decimal.Decimal `json:"square_footage"`
	DrywallMaterialRate decimal.Decimal `json:"drywall_material_rate"`
	DrywallMaterialCost decimal.Decimal `json:"drywall_material_cost"`
	HangerRate          decimal.Decimal `json:"hanger_rate"`
	FinisherRate        decimal.Decimal `json:"finisher_rate"`
	PrepCleanRate       decimal.Decimal `json:"prep_clean_rate"`
	SalesTaxRate        decimal.Decimal `json:"sales_tax_rate"`
	Notes               string          `json:"notes"`
}

// ---- Actual tier ----

type MaterialInvoice struct {
	Id            string          `json:"id"`
	Vendor        string          `json:"vendor"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	Amount        decimal.Decimal `json:"amount"`
	SalesTax      decimal.Decimal `json:"sales_tax"`
	Description   string          `json:"description"`
}

type ChangeOrder struct {
	Id           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	ApprovedDate *time.Time      `json:"approved_date"`
	Notes        string          `json:"notes"`
}

type ManualLaborCost struct {
	Id          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// LaborCostLineItem is derived by the labor-cost reconciler and embedded in
// ActualFinancials. Amount = OriginalAmount + EmployerTax always holds, and
// EmployerTax is zero unless the owning employee is a direct Employee.
type LaborCostLineItem struct {
	Id                   string          `json:"id"`
	EmployeeId           string          `json:"employee_id"`
	Description          string          `json:"description"`
	Type                 LaborCostType   `json:"type"`
	Hours                decimal.Decimal `json:"hours"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage"`
	OriginalAmount       decimal.Decimal `json:"original_amount"`
	EmployerTax          decimal.Decimal `json:"employer_tax"`
	Amount               decimal.Decimal `json:"amount"`
}

// Equal compares structurally with decimal-aware equality.
// reflect.DeepEqual is wrong for decimal.Decimal (1.0 and 1.00 differ
// internally), so every money field goes through decimal.Equal.
func (l LaborCostLineItem) Equal(other LaborCostLineItem) bool {
	return l.Id == other.Id &&
		l.EmployeeId == other.EmployeeId &&
		l.Description == other.Description &&
		l.Type == other.Type &&
		l.Hours.Equal(other.Hours) &&
		l.CompletionPercentage.Equal(other.CompletionPercentage) &&
		l.OriginalAmount.Equal(other.OriginalAmount) &&
		l.EmployerTax.Equal(other.EmployerTax) &&
		l.Amount.Equal(other.Amount)
}

func LaborCostsEqual(a, b []LaborCostLineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ActualFinancials is the incurred-cost tier. LaborCosts is owned by the
// reconciler and replaced wholesale on each sync; the other collections are
// replaced wholesale by their update operations, never merged by id.
type ActualFinancials struct {
	MaterialInvoices  []MaterialInvoice   `json:"material_invoices"`
	ChangeOrders      []ChangeOrder       `json:"change_orders"`
	FieldChangeOrders []ChangeOrder       `json:"field_change_orders"`
	ManualLaborCosts  []ManualLaborCost   `json:"manual_labor_costs"`
	LaborCosts        []LaborCostLineItem `json:"labor_costs"`

	TotalMaterialCost          decimal.Decimal `json:"total_material_cost"`
	TotalSalesTax              decimal.Decimal `json:"total_sales_tax"`
	TotalLaborCost             decimal.Decimal `json:"total_labor_cost"`
	TotalManualLaborCost       decimal.Decimal `json:"total_manual_labor_cost"`
	TotalChangeOrderValue      decimal.Decimal `json:"total_change_order_value"`
	TotalFieldChangeOrderValue decimal.Decimal `json:"total_field_change_order_value"`
	TotalActual                decimal.Decimal `json:"total_actual"`
}

// RecomputeActualTotals is the single derivation point for the actual-cost
// rollup. Every mutation of ActualFinancials must pass through here; the
// six-term sum is never inlined at call sites.
func RecomputeActualTotals(a *ActualFinancials) {
	a.TotalMaterialCost = utils.SumDecimals(a.MaterialInvoices, func(i MaterialInvoice) decimal.Decimal { return i.Amount })
	a.TotalSalesTax = utils.SumDecimals(a.MaterialInvoices, func(i MaterialInvoice) decimal.Decimal { return i.SalesTax })
	a.TotalLaborCost = utils.SumDecimals(a.LaborCosts, func(l LaborCostLineItem) decimal.Decimal { return l.Amount })
	a.TotalManualLaborCost = utils.SumDecimals(a.ManualLaborCosts, func(m ManualLaborCost) decimal.Decimal { return m.Amount })
	a.TotalChangeOrderValue = utils.SumDecimals(a.ChangeOrders, func(c ChangeOrder) decimal.Decimal { return c.Amount })
	a.TotalFieldChangeOrderValue = utils.SumDecimals(a.FieldChangeOrders, func(c ChangeOrder) decimal.Decimal { return c.Amount })

	a.TotalActual = a.TotalMaterialCost.
		Add(a.TotalSalesTax).
		Add(a.TotalLaborCost).
		Add(a.TotalManualLaborCost).
		Add(a.TotalChangeOrderValue).
		Add(a.TotalFieldChangeOrderValue)
}
