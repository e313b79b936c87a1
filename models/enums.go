package models

import "errors"

type JobType string

const (
	JobTypeResidential  JobType = "residential"
	JobTypeCommercial   JobType = "commercial"
	JobTypeConstruction JobType = "residential-construction"
)

func ParseJobType(s string) (JobType, error) {
	switch s {
	case "residential":
		return JobTypeResidential, nil
	case "commercial":
		return JobTypeCommercial, nil
	case "residential-construction":
		return JobTypeConstruction, nil
	default:
		return "", errors.New("invalid job type")
	}
}

type JobStatus string

const (
	JobStatusEstimating JobStatus = "estimating"
	JobStatusActive     JobStatus = "active"
	JobStatusInactive   JobStatus = "inactive"
	JobStatusCompleted  JobStatus = "completed"
)

func ParseJobStatus(s string) (JobStatus, error) {
	switch s {
	case "estimating":
		return JobStatusEstimating, nil
	case "active":
		return JobStatusActive, nil
	case "inactive":
		return JobStatusInactive, nil
	case "completed":
		return JobStatusCompleted, nil
	default:
		return "", errors.New("invalid job status")
	}
}

type EmployeeType string

const (
	EmployeeTypeEmployee      EmployeeType = "Employee"
	EmployeeTypeSubcontractor EmployeeType = "Subcontractor"
)

type EmployeeRole string

const (
	EmployeeRoleHanger     EmployeeRole = "Hanger"
	EmployeeRoleFinisher   EmployeeRole = "Finisher"
	EmployeeRoleLaborer    EmployeeRole = "Laborer"
	EmployeeRoleApprentice EmployeeRole = "Apprentice"
)

type Coat string

const (
	CoatTape    Coat = "tape"
	CoatBed     Coat = "bed"
	CoatSkim    Coat = "skim"
	CoatTexture Coat = "texture"
	CoatSand    Coat = "sand"
)

// DisplayName is the work-type label used on piece-rate labor lines.
func (c Coat) DisplayName() string {
	switch c {
	case CoatTape:
		return "Tape"
	case CoatBed:
		return "Bed"
	case CoatSkim:
		return "Skim"
	case CoatTexture:
		return "Texture"
	case CoatSand:
		return "Sand"
	default:
		return string(c)
	}
}

type PieceRateStatus string

const (
	PieceRateStatusInProgress PieceRateStatus = "in-progress"
	PieceRateStatusCompleted  PieceRateStatus = "completed"
)

type LaborCostType string

const (
	LaborCostTypeHourly     LaborCostType = "hourly"
	LaborCostTypePieceRate  LaborCostType = "piece-rate"
	LaborCostTypeApprentice LaborCostType = "apprentice"
)

// FinishTier selects the compound-consumption multiplier for a job's finish scope.
type FinishTier string

const (
	FinishTierHeavy   FinishTier = "heavy"  // stomp / splatter / knockdown
	FinishTierSmooth  FinishTier = "smooth" // level-4 / level-5
	FinishTierDefault FinishTier = "default"
)

type ScopeStatus string

const (
	ScopeStatusPending    ScopeStatus = "pending"
	ScopeStatusInProgress ScopeStatus = "in-progress"
	ScopeStatusCompleted  ScopeStatus = "completed"
)
