package workflow

import (
	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

type ConstructionItemResult struct {
	Item          models.ConstructionItem `json:"item"`
	LaborCost     decimal.Decimal         `json:"labor_cost"`
	MaterialCost  decimal.Decimal         `json:"material_cost"`
	ItemTotal     decimal.Decimal         `json:"item_total"`
	Subcontracted bool                    `json:"subcontracted"`
}

type ConstructionPhaseResult struct {
	PhaseId    string                   `json:"phase_id"`
	Name       string                   `json:"name"`
	Items      []ConstructionItemResult `json:"items"`
	PhaseTotal decimal.Decimal          `json:"phase_total"`
}

// ConstructionBreakdown mirrors the commercial cascade: overhead on direct
// cost, profit on the subtotal after overhead, sales tax on in-house
// materials only (subcontractor quotes are lump sums and carry their own
// tax).
type ConstructionBreakdown struct {
	Phases []ConstructionPhaseResult `json:"phases"`

	TotalDirectCost   decimal.Decimal `json:"total_direct_cost"`
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`

	OverheadAmount       decimal.Decimal `json:"overhead_amount"`
	SubtotalWithOverhead decimal.Decimal `json:"subtotal_with_overhead"`
	ProfitAmount         decimal.Decimal `json:"profit_amount"`
	SubtotalAfterProfit  decimal.Decimal `json:"subtotal_after_profit"`
	SalesTax             decimal.Decimal `json:"sales_tax"`
	TotalWithTax         decimal.Decimal `json:"total_with_tax"`

	FinalTotal      decimal.Decimal `json:"final_total"`
	ActualProfit    decimal.Decimal `json:"actual_profit"`
	OverrideApplied bool            `json:"override_applied"`
}

func calculateConstructionItem(item models.ConstructionItem) ConstructionItemResult {
	if item.SubcontractorQuote.IsPositive() {
		return ConstructionItemResult{
			Item:          item,
			ItemTotal:     item.SubcontractorQuote,
			Subcontracted: true,
		}
	}
	laborCost := utils.RoundMoney(utils.WasteAdjust(item.LaborQuantity, item.LaborWastePercent).Mul(item.LaborRate))
	materialCost := utils.RoundMoney(utils.WasteAdjust(item.MaterialQuantity, item.MaterialWastePercent).Mul(item.MaterialRate))
	return ConstructionItemResult{
		Item:         item,
		LaborCost:    laborCost,
		MaterialCost: materialCost,
		ItemTotal:    laborCost.Add(materialCost),
	}
}

func CalculateConstructionEstimate(in models.ConstructionEstimate) ConstructionBreakdown {
	out := ConstructionBreakdown{Phases: make([]ConstructionPhaseResult, 0, len(in.Phases))}

	for _, phase := range in.Phases {
		result := ConstructionPhaseResult{
			PhaseId: phase.Id,
			Name:    phase.Name,
			Items:   make([]ConstructionItemResult, 0, len(phase.Items)),
		}
		for _, item := range phase.Items {
			itemResult := calculateConstructionItem(item)
			result.Items = append(result.Items, itemResult)
			result.PhaseTotal = result.PhaseTotal.Add(itemResult.ItemTotal)
			out.TotalMaterialCost = out.TotalMaterialCost.Add(itemResult.MaterialCost)
		}
		out.Phases = append(out.Phases, result)
		out.TotalDirectCost = out.TotalDirectCost.Add(result.PhaseTotal)
	}

	out.OverheadAmount = utils.RoundMoney(utils.PercentOf(out.TotalDirectCost, in.OverheadPercent))
	out.SubtotalWithOverhead = out.TotalDirectCost.Add(out.OverheadAmount)
	out.ProfitAmount = utils.RoundMoney(utils.PercentOf(out.SubtotalWithOverhead, in.ProfitPercent))
	out.SubtotalAfterProfit = out.SubtotalWithOverhead.Add(out.ProfitAmount)
	out.SalesTax = utils.RoundMoney(utils.PercentOf(out.TotalMaterialCost, in.SalesTaxPercent))
	out.TotalWithTax = out.SubtotalAfterProfit.Add(out.SalesTax)

	out.FinalTotal = out.TotalWithTax
	out.ActualProfit = out.ProfitAmount
	if in.ManualOverrideTotal.IsPositive() {
		out.FinalTotal = in.ManualOverrideTotal
		out.ActualProfit = in.ManualOverrideTotal.Sub(out.SubtotalWithOverhead)
		out.OverrideApplied = true
	}

	return out
}
