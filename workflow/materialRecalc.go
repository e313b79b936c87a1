package workflow

import (
	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Consumption table for auto-calculated consumables. baseRate is square feet
// covered per unit; finishScaled specs are multiplied by the job's finish
// tier (textured finishes burn more compound).
type materialSpec struct {
	materialType string
	subtype      string
	threadType   string
	length       string
	unit         string
	baseRate     int64
	finishScaled bool
}

var materialSpecs = []materialSpec{
	{materialType: "Joint Compound", subtype: "All Purpose", unit: "box", baseRate: 4800, finishScaled: true},
	{materialType: "Joint Compound", subtype: "Lite Weight", unit: "box", baseRate: 5500, finishScaled: true},
	{materialType: "Joint Compound", subtype: "Easy Sand 90", unit: "bag", baseRate: 6000, finishScaled: true},
	{materialType: "Tape", subtype: "Paper", length: "500ft", unit: "roll", baseRate: 1400},
	{materialType: "Tape", subtype: "Mesh", length: "300ft", unit: "roll", baseRate: 1800},
	{materialType: "Screws", subtype: "Drywall", threadType: "Coarse", length: "1-5/8\"", unit: "lb", baseRate: 500},
	{materialType: "Screws", subtype: "Drywall", threadType: "Fine", length: "1-5/8\"", unit: "lb", baseRate: 600},
	{materialType: "Adhesive", subtype: "Construction", length: "28oz", unit: "tube", baseRate: 2200},
}

// Corner bead drives extra setting compound on top of the sqft baseline.
const cornerBeadSticksPerBox = 8

var (
	multiplierHeavy   = decimal.NewFromFloat(1.3)
	multiplierSmooth  = decimal.NewFromInt(1)
	multiplierDefault = decimal.NewFromFloat(1.15)
)

func finishMultiplier(tier models.FinishTier) decimal.Decimal {
	switch tier {
	case models.FinishTierHeavy:
		return multiplierHeavy
	case models.FinishTierSmooth:
		return multiplierSmooth
	default:
		return multiplierDefault
	}
}

func TotalPhaseSquareFeet(job *models.Job, phase *models.TakeoffPhase) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range phase.Entries {
		total = total.Add(entry.SquareFeet(job.JobType))
	}
	return total
}

// FieldRevisedSquareFeet sums measured square footage across every takeoff
// phase; it feeds the field-revised tier.
func FieldRevisedSquareFeet(job *models.Job) decimal.Decimal {
	total := decimal.Zero
	for i := range job.TakeoffPhases {
		total = total.Add(TotalPhaseSquareFeet(job, &job.TakeoffPhases[i]))
	}
	return total
}

// RecalculatePhaseMaterials rebuilds the auto-calculated consumables for one
// takeoff phase from its measured square footage. Manually entered rows are
// never touched; auto rows are replaced or inserted, matched by the (type,
// subtype, threadType, length) tuple. Zero square footage is a no-op so a
// cleared phase cannot wipe out manual entries with zero rows.
//
// Returns true when the phase's material list changed.
func RecalculatePhaseMaterials(job *models.Job, phaseId string) bool {
	phase := job.Phase(phaseId)
	if phase == nil {
		return false
	}

	sqft := TotalPhaseSquareFeet(job, phase)
	if !sqft.IsPositive() {
		return false
	}

	multiplier := finishMultiplier(job.FinishTier())

	// Corner bead total across the phase, including manual rows.
	cornerBeadQty := 0
	for _, m := range phase.Materials {
		if m.MaterialType == "Corner Bead" {
			cornerBeadQty += m.Quantity
		}
	}
	extraCompound := 0
	if cornerBeadQty > 0 {
		extraCompound = (cornerBeadQty + cornerBeadSticksPerBox - 1) / cornerBeadSticksPerBox
	}

	changed := false
	for _, spec := range materialSpecs {
		mult := decimal.NewFromInt(1)
		if spec.finishScaled {
			mult = multiplier
		}
		qty := utils.CeilQuantity(sqft, decimal.NewFromInt(spec.baseRate), mult)
		if spec.subtype == "Easy Sand 90" || spec.subtype == "Lite Weight" {
			qty += extraCompound
		}

		key := models.PhaseMaterialKey{
			MaterialType: spec.materialType,
			Subtype:      spec.subtype,
			ThreadType:   spec.threadType,
			Length:       spec.length,
		}
		idx := -1
		for i, m := range phase.Materials {
			if m.AutoCalculated && m.MatchKey() == key {
				idx = i
				break
			}
		}
		if idx >= 0 {
			if phase.Materials[idx].Quantity != qty || phase.Materials[idx].Unit != spec.unit {
				phase.Materials[idx].Quantity = qty
				phase.Materials[idx].Unit = spec.unit
				changed = true
			}
			continue
		}
		phase.Materials = append(phase.Materials, models.PhaseMaterial{
			Id:             uuid.NewString(),
			MaterialType:   spec.materialType,
			Subtype:        spec.subtype,
			ThreadType:     spec.threadType,
			Length:         spec.length,
			Quantity:       qty,
			Unit:           spec.unit,
			AutoCalculated: true,
		})
		changed = true
	}

	return changed
}
