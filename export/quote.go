package export

import (
	"fmt"

	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/workflow"
	"github.com/shopspring/decimal"
)

// QuoteRow is one printable line of a quote: line items and totals share the
// same shape so the workbook, CSV, and mailto renderers stay trivial.
type QuoteRow struct {
	Label  string
	Detail string
	Amount decimal.Decimal
}

// QuoteSection maps to one workbook sheet (or one CSV block).
type QuoteSection struct {
	Name   string
	Rows   []QuoteRow
	Totals []QuoteRow
}

type Quote struct {
	Sections        []QuoteSection
	FinalTotal      decimal.Decimal
	OverrideApplied bool
}

// BuildQuote runs the job-type calculator and flattens its breakdown into
// renderable sections.
func BuildQuote(job *models.Job) Quote {
	switch job.JobType {
	case models.JobTypeCommercial:
		return commercialQuote(workflow.CalculateCommercialEstimate(job.Financials.Estimate.Commercial))
	case models.JobTypeConstruction:
		return constructionQuote(workflow.CalculateConstructionEstimate(job.Financials.Estimate.Construction))
	default:
		return residentialQuote(workflow.CalculateResidentialEstimate(job.Financials.Estimate.Residential))
	}
}

func residentialQuote(b workflow.ResidentialBreakdown) Quote {
	section := QuoteSection{
		Name: "Estimate",
		Rows: []QuoteRow{
			{Label: "Drywall Material", Detail: b.SquareFootage.String() + " sqft", Amount: b.MaterialCost},
			{Label: "Sales Tax", Amount: b.SalesTax},
			{Label: "Hanging Labor", Amount: b.HangerCost},
			{Label: "Finishing Labor", Amount: b.FinisherCost},
			{Label: "Prep & Clean", Amount: b.PrepCleanCost},
			{Label: "Labor Tax", Amount: b.LaborTax},
		},
		Totals: []QuoteRow{
			{Label: "Total Labor", Amount: b.TotalLaborCost},
			{Label: "Total Cost", Amount: b.TotalCost},
			{Label: "Quote Total", Amount: b.FinalTotal},
		},
	}
	if b.OverrideApplied {
		section.Totals = append(section.Totals, QuoteRow{Label: "Profit", Amount: b.Profit})
	}
	return Quote{
		Sections:        []QuoteSection{section},
		FinalTotal:      b.FinalTotal,
		OverrideApplied: b.OverrideApplied,
	}
}

func commercialQuote(b workflow.CommercialBreakdownResult) Quote {
	q := Quote{
		FinalTotal:      b.FinalTotal,
		OverrideApplied: b.OverrideApplied,
	}
	q.Sections = append(q.Sections, commercialSectionRows(b.Main))
	for _, section := range b.Breakdowns {
		q.Sections = append(q.Sections, commercialSectionRows(section))
	}
	q.Sections = append(q.Sections, QuoteSection{
		Name: "Summary",
		Totals: []QuoteRow{
			{Label: "Combined Subtotal w/ Overhead", Amount: b.CombinedSubtotalWithOverhead},
			{Label: "Combined Total w/ Tax", Amount: b.CombinedTotalWithTax},
			{Label: "Quote Total", Amount: b.FinalTotal},
			{Label: "Profit", Amount: b.ActualProfit},
		},
	})
	return q
}

func commercialSectionRows(s workflow.CommercialSection) QuoteSection {
	section := QuoteSection{Name: s.Name}
	for _, r := range s.Rows {
		label := string(r.Row.Category)
		if r.Row.Description != "" {
			label = label + " - " + r.Row.Description
		}
		section.Rows = append(section.Rows, QuoteRow{
			Label: label,
			Detail: fmt.Sprintf("%s %s @ %s",
				r.AdjustedQuantity.String(), r.Row.Kind, r.Row.UnitCost.StringFixed(2)),
			Amount: r.RowTotal,
		})
	}
	section.Totals = []QuoteRow{
		{Label: "Labor", Amount: s.TotalLaborCost},
		{Label: "Material", Amount: s.TotalMaterialCost},
		{Label: "Overhead", Amount: s.OverheadAmount},
		{Label: "Profit", Amount: s.ProfitAmount},
		{Label: "Sales Tax", Amount: s.SalesTax},
		{Label: "Total", Amount: s.TotalWithTax},
	}
	return section
}

func constructionQuote(b workflow.ConstructionBreakdown) Quote {
	q := Quote{
		FinalTotal:      b.FinalTotal,
		OverrideApplied: b.OverrideApplied,
	}
	for _, phase := range b.Phases {
		section := QuoteSection{Name: phase.Name}
		for _, item := range phase.Items {
			detail := "in-house"
			if item.Subcontracted {
				detail = "sub: " + item.Item.SubcontractorName
			}
			section.Rows = append(section.Rows, QuoteRow{
				Label:  item.Item.Description,
				Detail: detail,
				Amount: item.ItemTotal,
			})
		}
		section.Totals = []QuoteRow{{Label: "Phase Total", Amount: phase.PhaseTotal}}
		q.Sections = append(q.Sections, section)
	}
	q.Sections = append(q.Sections, QuoteSection{
		Name: "Summary",
		Totals: []QuoteRow{
			{Label: "Direct Cost", Amount: b.TotalDirectCost},
			{Label: "Overhead", Amount: b.OverheadAmount},
			{Label: "Profit", Amount: b.ProfitAmount},
			{Label: "Sales Tax", Amount: b.SalesTax},
			{Label: "Quote Total", Amount: b.FinalTotal},
		},
	})
	return q
}
