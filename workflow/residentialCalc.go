package workflow

import (
	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// ResidentialBreakdown is the drywall-only estimate output. Every cost is
// square footage times a rate; projected labor carries the blanket
// EstimatedLaborTaxRate loading (not the employer tax the actual-cost
// reconciler applies).
type ResidentialBreakdown struct {
	SquareFootage decimal.Decimal `json:"square_footage"`

	MaterialCost decimal.Decimal `json:"material_cost"`
	SalesTax     decimal.Decimal `json:"sales_tax"`

	HangerCost     decimal.Decimal `json:"hanger_cost"`
	FinisherCost   decimal.Decimal `json:"finisher_cost"`
	PrepCleanCost  decimal.Decimal `json:"prep_clean_cost"`
	LaborTax       decimal.Decimal `json:"labor_tax"`
	TotalLaborCost decimal.Decimal `json:"total_labor_cost"`

	TotalCost       decimal.Decimal `json:"total_cost"`
	FinalTotal      decimal.Decimal `json:"final_total"`
	Profit          decimal.Decimal `json:"profit"`
	OverrideApplied bool            `json:"override_applied"`
}

func CalculateResidentialEstimate(in models.ResidentialEstimate) ResidentialBreakdown {
	sqft := in.SquareFootage

	materialCost := utils.RoundMoney(sqft.Mul(in.MaterialRate))
	salesTax := utils.RoundMoney(utils.PercentOf(materialCost, in.SalesTaxRate))

	hangerCost := utils.RoundMoney(sqft.Mul(in.HangerRate))
	finisherCost := utils.RoundMoney(sqft.Mul(in.FinisherRate))
	prepCleanCost := utils.RoundMoney(sqft.Mul(in.PrepCleanRate))

	laborBase := hangerCost.Add(finisherCost).Add(prepCleanCost)
	laborTax := utils.RoundMoney(laborBase.Mul(EstimatedLaborTaxRate))
	totalLabor := laborBase.Add(laborTax)

	totalCost := materialCost.Add(salesTax).Add(totalLabor)

	out := ResidentialBreakdown{
		SquareFootage:  sqft,
		MaterialCost:   materialCost,
		SalesTax:       salesTax,
		HangerCost:     hangerCost,
		FinisherCost:   finisherCost,
		PrepCleanCost:  prepCleanCost,
		LaborTax:       laborTax,
		TotalLaborCost: totalLabor,
		TotalCost:      totalCost,
		FinalTotal:     totalCost,
	}

	if in.TotalEstimateAmount.IsPositive() {
		out.FinalTotal = in.TotalEstimateAmount
		out.Profit = in.TotalEstimateAmount.Sub(totalCost)
		out.OverrideApplied = true
	}

	return out
}
