package models

import (
	"github.com/buildledger/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// Patches replace the original single deep-merging update with one typed
// patch per financial tier: nil means untouched, non-nil means set. Every
// slice field replaces the stored slice WHOLESALE — callers read, modify,
// and write back complete arrays; nothing is merged by id.

type JobPatch struct {
	Name       *string    `json:"name"`
	ClientName *string    `json:"client_name"`
	Address    *string    `json:"address"`
	JobType    *JobType   `json:"job_type"`
	Status     *JobStatus `json:"status"`
}

func (p JobPatch) Apply(j *Job) {
	j.Name = utils.DereferencePtr(p.Name, j.Name)
	j.ClientName = utils.DereferencePtr(p.ClientName, j.ClientName)
	j.Address = utils.DereferencePtr(p.Address, j.Address)
	j.JobType = utils.DereferencePtr(p.JobType, j.JobType)
	j.Status = utils.DereferencePtr(p.Status, j.Status)
}

type ResidentialEstimatePatch struct {
	SquareFootage       *decimal.Decimal `json:"square_footage"`
	MaterialRate        *decimal.Decimal `json:"material_rate"`
	HangerRate          *decimal.Decimal `json:"hanger_rate"`
	FinisherRate        *decimal.Decimal `json:"finisher_rate"`
	PrepCleanRate       *decimal.Decimal `json:"prep_clean_rate"`
	SalesTaxRate        *decimal.Decimal `json:"sales_tax_rate"`
	TotalEstimateAmount *decimal.Decimal `json:"total_estimate_amount"`
}

func (p ResidentialEstimatePatch) Apply(r *ResidentialEstimate) {
	setDecimal(&r.SquareFootage, p.SquareFootage)
	setDecimal(&r.MaterialRate, p.MaterialRate)
	setDecimal(&r.HangerRate, p.HangerRate)
	setDecimal(&r.FinisherRate, p.FinisherRate)
	setDecimal(&r.PrepCleanRate, p.PrepCleanRate)
	setDecimal(&r.SalesTaxRate, p.SalesTaxRate)
	setDecimal(&r.TotalEstimateAmount, p.TotalEstimateAmount)
}

type CommercialEstimatePatch struct {
	Rows                *[]CommercialRow       `json:"rows"`
	Breakdowns          *[]CommercialBreakdown `json:"breakdowns"`
	OverheadPercent     *decimal.Decimal       `json:"overhead_percent"`
	ProfitPercent       *decimal.Decimal       `json:"profit_percent"`
	SalesTaxPercent     *decimal.Decimal       `json:"sales_tax_percent"`
	ManualOverrideTotal *decimal.Decimal       `json:"manual_override_total"`
}

func (p CommercialEstimatePatch) Apply(c *CommercialEstimate) {
	if p.Rows != nil {
		c.Rows = *p.Rows
	}
	if p.Breakdowns != nil {
		c.Breakdowns = *p.Breakdowns
	}
	setDecimal(&c.OverheadPercent, p.OverheadPercent)
	setDecimal(&c.ProfitPercent, p.ProfitPercent)
	setDecimal(&c.SalesTaxPercent, p.SalesTaxPercent)
	setDecimal(&c.ManualOverrideTotal, p.ManualOverrideTotal)
}

type ConstructionEstimatePatch struct {
	Phases              *[]ConstructionPhase `json:"phases"`
	OverheadPercent     *decimal.Decimal     `json:"overhead_percent"`
	ProfitPercent       *decimal.Decimal     `json:"profit_percent"`
	SalesTaxPercent     *decimal.Decimal     `json:"sales_tax_percent"`
	ManualOverrideTotal *decimal.Decimal     `json:"manual_override_total"`
}

func (p ConstructionEstimatePatch) Apply(c *ConstructionEstimate) {
	if p.Phases != nil {
		c.Phases = *p.Phases
	}
	setDecimal(&c.OverheadPercent, p.OverheadPercent)
	setDecimal(&c.ProfitPercent, p.ProfitPercent)
	setDecimal(&c.SalesTaxPercent, p.SalesTaxPercent)
	setDecimal(&c.ManualOverrideTotal, p.ManualOverrideTotal)
}

type EstimatePatch struct {
	Residential  *ResidentialEstimatePatch  `json:"residential"`
	Commercial   *CommercialEstimatePatch   `json:"commercial"`
	Construction *ConstructionEstimatePatch `json:"construction"`
}

func (p EstimatePatch) Apply(e *EstimateFinancials) {
	if p.Residential != nil {
		p.Residential.Apply(&e.Residential)
	}
	if p.Commercial != nil {
		p.Commercial.Apply(&e.Commercial)
	}
	if p.Construction != nil {
		p.Construction.Apply(&e.Construction)
	}
}

type FieldRevisedPatch struct {
	SquareFootage       *decimal.Decimal `json:"square_footage"`
	DrywallMaterialRate *decimal.Decimal `json:"drywall_material_rate"`
	HangerRate          *decimal.Decimal `json:"hanger_rate"`
	FinisherRate        *decimal.Decimal `json:"finisher_rate"`
	PrepCleanRate       *decimal.Decimal `json:"prep_clean_rate"`
	SalesTaxRate        *decimal.Decimal `json:"sales_tax_rate"`
	Notes               *string          `json:"notes"`
}

// Apply sets the patched fields. DrywallMaterialCost is derived, never
// patched directly; the store recomputes it after applying.
func (p FieldRevisedPatch) Apply(f *FieldRevisedFinancials) {
	setDecimal(&f.SquareFootage, p.SquareFootage)
	setDecimal(&f.DrywallMaterialRate, p.DrywallMaterialRate)
	setDecimal(&f.HangerRate, p.HangerRate)
	setDecimal(&f.FinisherRate, p.FinisherRate)
	setDecimal(&f.PrepCleanRate, p.PrepCleanRate)
	setDecimal(&f.SalesTaxRate, p.SalesTaxRate)
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
}

// ActualPatch cannot touch LaborCosts: that list is owned by the labor-cost
// reconciler and replaced only through the sync path.
type ActualPatch struct {
	MaterialInvoices  *[]MaterialInvoice `json:"material_invoices"`
	ChangeOrders      *[]ChangeOrder     `json:"change_orders"`
	FieldChangeOrders *[]ChangeOrder     `json:"field_change_orders"`
	ManualLaborCosts  *[]ManualLaborCost `json:"manual_labor_costs"`
}

func (p ActualPatch) Apply(a *ActualFinancials) {
	if p.MaterialInvoices != nil {
		a.MaterialInvoices = *p.MaterialInvoices
	}
	if p.ChangeOrders != nil {
		a.ChangeOrders = *p.ChangeOrders
	}
	if p.FieldChangeOrders != nil {
		a.FieldChangeOrders = *p.FieldChangeOrders
	}
	if p.ManualLaborCosts != nil {
		a.ManualLaborCosts = *p.ManualLaborCosts
	}
}

func setDecimal(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}
