package models

import (
	"github.com/google/uuid"
)

// NewFinancialsSkeleton seeds the full three-tier financials structure for a
// new job: all rate fields zeroed, tier-specific sub-objects for each job
// category so every tab has something to edit.
func NewFinancialsSkeleton(jobType JobType) Financials {
	f := Financials{
		Estimate: EstimateFinancials{
			Residential:  ResidentialEstimate{},
			Commercial:   defaultCommercialEstimate(),
			Construction: defaultConstructionEstimate(),
		},
		FieldRevised: FieldRevisedFinancials{},
		Actual: ActualFinancials{
			MaterialInvoices:  []MaterialInvoice{},
			ChangeOrders:      []ChangeOrder{},
			FieldChangeOrders: []ChangeOrder{},
			ManualLaborCosts:  []ManualLaborCost{},
			LaborCosts:        []LaborCostLineItem{},
		},
	}
	RecomputeActualTotals(&f.Actual)
	return f
}

func defaultCommercialEstimate() CommercialEstimate {
	categories := []CommercialCategory{
		CommercialCategoryACT,
		CommercialCategoryDrywall,
		CommercialCategoryChannel,
		CommercialCategorySuspendedGrid,
		CommercialCategoryMetalFraming,
		CommercialCategoryInsulation,
		CommercialCategoryFRP,
		CommercialCategoryDoor,
	}
	rows := make([]CommercialRow, 0, len(categories)*2)
	for _, cat := range categories {
		rows = append(rows,
			CommercialRow{Id: uuid.NewString(), Category: cat, Kind: CommercialRowLabor},
			CommercialRow{Id: uuid.NewString(), Category: cat, Kind: CommercialRowMaterial},
		)
	}
	return CommercialEstimate{
		Rows:       rows,
		Breakdowns: []CommercialBreakdown{},
	}
}

func defaultConstructionEstimate() ConstructionEstimate {
	phaseItems := []struct {
		name  string
		items []string
	}{
		{"Site Work", []string{"Excavation", "Foundation", "Flatwork", "Utilities"}},
		{"Structure", []string{"Framing", "Roofing", "Windows & Doors", "Siding"}},
		{"Mechanicals", []string{"Plumbing", "Electrical", "HVAC"}},
		{"Insulation", []string{"Wall Insulation", "Attic Insulation"}},
		{"Finishes", []string{"Drywall", "Paint", "Trim & Doors", "Flooring", "Cabinets & Counters"}},
		{"Management", []string{"Permits & Fees", "Supervision", "Dumpster & Cleanup"}},
	}

	phases := make([]ConstructionPhase, 0, len(phaseItems))
	for _, p := range phaseItems {
		items := make([]ConstructionItem, 0, len(p.items))
		for _, desc := range p.items {
			items = append(items, ConstructionItem{
				Id:          uuid.NewString(),
				Description: desc,
			})
		}
		phases = append(phases, ConstructionPhase{
			Id:    uuid.NewString(),
			Name:  p.name,
			Items: items,
		})
	}
	return ConstructionEstimate{Phases: phases}
}
