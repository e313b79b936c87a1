package workflow

import (
	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

type CommercialRowResult struct {
	Row              models.CommercialRow `json:"row"`
	AdjustedQuantity decimal.Decimal      `json:"adjusted_quantity"`
	RowTotal         decimal.Decimal      `json:"row_total"`
}

// CommercialSection is one computed budget: either the main job or a named
// breakdown (sub-budget). Overhead applies to the direct subtotal, profit to
// the running subtotal after overhead, and sales tax to materials only.
type CommercialSection struct {
	Name string                `json:"name"`
	Rows []CommercialRowResult `json:"rows"`

	TotalLaborCost    decimal.Decimal `json:"total_labor_cost"`
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	TotalDirectCost   decimal.Decimal `json:"total_direct_cost"`

	OverheadAmount       decimal.Decimal `json:"overhead_amount"`
	SubtotalWithOverhead decimal.Decimal `json:"subtotal_with_overhead"`
	ProfitAmount         decimal.Decimal `json:"profit_amount"`
	SubtotalAfterProfit  decimal.Decimal `json:"subtotal_after_profit"`
	SalesTax             decimal.Decimal `json:"sales_tax"`
	TotalWithTax         decimal.Decimal `json:"total_with_tax"`
}

type CommercialBreakdownResult struct {
	Main       CommercialSection   `json:"main"`
	Breakdowns []CommercialSection `json:"breakdowns"`

	CombinedSubtotalWithOverhead decimal.Decimal `json:"combined_subtotal_with_overhead"`
	CombinedTotalWithTax         decimal.Decimal `json:"combined_total_with_tax"`

	FinalTotal      decimal.Decimal `json:"final_total"`
	ActualProfit    decimal.Decimal `json:"actual_profit"`
	OverrideApplied bool            `json:"override_applied"`
}

func calculateCommercialSection(name string, rows []models.CommercialRow, overheadPct, profitPct, taxPct decimal.Decimal) CommercialSection {
	section := CommercialSection{Name: name, Rows: make([]CommercialRowResult, 0, len(rows))}

	for _, row := range rows {
		adjustedQty := utils.WasteAdjust(row.Quantity, row.WastePercent)
		rowTotal := utils.RoundMoney(adjustedQty.Mul(row.UnitCost))
		section.Rows = append(section.Rows, CommercialRowResult{
			Row:              row,
			AdjustedQuantity: adjustedQty,
			RowTotal:         rowTotal,
		})
		switch row.Kind {
		case models.CommercialRowMaterial:
			section.TotalMaterialCost = section.TotalMaterialCost.Add(rowTotal)
		default:
			section.TotalLaborCost = section.TotalLaborCost.Add(rowTotal)
		}
	}

	section.TotalDirectCost = section.TotalLaborCost.Add(section.TotalMaterialCost)
	section.OverheadAmount = utils.RoundMoney(utils.PercentOf(section.TotalDirectCost, overheadPct))
	section.SubtotalWithOverhead = section.TotalDirectCost.Add(section.OverheadAmount)
	section.ProfitAmount = utils.RoundMoney(utils.PercentOf(section.SubtotalWithOverhead, profitPct))
	section.SubtotalAfterProfit = section.SubtotalWithOverhead.Add(section.ProfitAmount)
	section.SalesTax = utils.RoundMoney(utils.PercentOf(section.TotalMaterialCost, taxPct))
	section.TotalWithTax = section.SubtotalAfterProfit.Add(section.SalesTax)
	return section
}

func CalculateCommercialEstimate(in models.CommercialEstimate) CommercialBreakdownResult {
	out := CommercialBreakdownResult{
		Main: calculateCommercialSection("Main", in.Rows, in.OverheadPercent, in.ProfitPercent, in.SalesTaxPercent),
	}

	out.CombinedSubtotalWithOverhead = out.Main.SubtotalWithOverhead
	out.CombinedTotalWithTax = out.Main.TotalWithTax
	totalProfit := out.Main.ProfitAmount

	for _, b := range in.Breakdowns {
		section := calculateCommercialSection(b.Name, b.Rows, in.OverheadPercent, in.ProfitPercent, in.SalesTaxPercent)
		out.Breakdowns = append(out.Breakdowns, section)
		out.CombinedSubtotalWithOverhead = out.CombinedSubtotalWithOverhead.Add(section.SubtotalWithOverhead)
		out.CombinedTotalWithTax = out.CombinedTotalWithTax.Add(section.TotalWithTax)
		totalProfit = totalProfit.Add(section.ProfitAmount)
	}

	out.FinalTotal = out.CombinedTotalWithTax
	out.ActualProfit = totalProfit
	if in.ManualOverrideTotal.IsPositive() {
		out.FinalTotal = in.ManualOverrideTotal
		out.ActualProfit = in.ManualOverrideTotal.Sub(out.CombinedSubtotalWithOverhead)
		out.OverrideApplied = true
	}

	return out
}
