package models

import (
	"strings"
	"time"

	"github.com/buildledger/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

// Job is the aggregate root. Nested collections are owned exclusively by the
// job store and replaced wholesale by its update operations.
type Job struct {
	Id            string         `json:"id"`
	Name          string         `json:"name"`
	ClientName    string         `json:"client_name"`
	Address       string         `json:"address"`
	JobType       JobType        `json:"job_type"`
	Status        JobStatus      `json:"status"`
	Scopes        []Scope        `json:"scopes"`
	TakeoffPhases []TakeoffPhase `json:"takeoff_phases"`
	Checklists    []Checklist    `json:"checklists"`
	Documents     []Document     `json:"documents"`
	DailyLogs     []DailyLog     `json:"daily_logs"`
	Financials    Financials     `json:"financials"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type NewJob struct {
	Name       string  `json:"name" validate:"required"`
	ClientName string  `json:"client_name"`
	Address    string  `json:"address"`
	JobType    JobType `json:"job_type"`
}

type Scope struct {
	Id          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"` // "finish" scopes select the material multiplier tier
	Status      ScopeStatus `json:"status"`
}

type NewScope struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// TakeoffPhase is a named measurement batch (e.g. "1st Floor") whose entries
// drive square footage and auto-calculated consumable materials.
type TakeoffPhase struct {
	Id        string          `json:"id"`
	Name      string          `json:"name"`
	Entries   []TakeoffEntry  `json:"entries"`
	Materials []PhaseMaterial `json:"materials"`
}

type NewTakeoffPhase struct {
	Name string `json:"name" validate:"required"`
}

type TakeoffEntry struct {
	Id               string          `json:"id"`
	RoomName         string          `json:"room_name"`
	UnitNumbers      string          `json:"unit_numbers"` // comma-separated; commercial jobs multiply sqft by unit count
	BoardWidthInches decimal.Decimal `json:"board_width_inches"`
	BoardLengthFeet  decimal.Decimal `json:"board_length_feet"`
	BoardQuantity    decimal.Decimal `json:"board_quantity"`
	BoardType        string          `json:"board_type"`
	Notes            string          `json:"notes"`
}

// SquareFeet is (width/12 * length) * quantity, times the unit count for
// commercial jobs.
func (e TakeoffEntry) SquareFeet(jobType JobType) decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	sqft := e.BoardWidthInches.DivRound(twelve, 6).
		Mul(e.BoardLengthFeet).
		Mul(e.BoardQuantity)
	if jobType == JobTypeCommercial {
		units := int64(countUnits(e.UnitNumbers))
		if units > 1 {
			sqft = sqft.Mul(decimal.NewFromInt(units))
		}
	}
	return sqft
}

func countUnits(unitNumbers string) int {
	parts := make([]string, 0, 4)
	for _, part := range strings.Split(unitNumbers, ",") {
		if p := strings.TrimSpace(part); p != "" {
			parts = append(parts, p)
		}
	}
	// Duplicate unit numbers count once.
	n := len(utils.UniqueSlice(parts))
	if n == 0 {
		return 1
	}
	return n
}

type PhaseMaterial struct {
	Id             string `json:"id"`
	MaterialType   string `json:"material_type"`
	Subtype        string `json:"subtype"`
	ThreadType     string `json:"thread_type"`
	Length         string `json:"length"`
	Quantity       int    `json:"quantity"`
	Unit           string `json:"unit"`
	AutoCalculated bool   `json:"auto_calculated"`
}

// MatchKey identifies an auto-calculated row across recalculations.
type PhaseMaterialKey struct {
	MaterialType string
	Subtype      string
	ThreadType   string
	Length       string
}

func (m PhaseMaterial) MatchKey() PhaseMaterialKey {
	return PhaseMaterialKey{
		MaterialType: m.MaterialType,
		Subtype:      m.Subtype,
		ThreadType:   m.ThreadType,
		Length:       m.Length,
	}
}

type Checklist struct {
	Id    string          `json:"id"`
	Name  string          `json:"name"`
	Items []ChecklistItem `json:"items"`
}

type ChecklistItem struct {
	Id        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type NewChecklist struct {
	Name  string   `json:"name" validate:"required"`
	Items []string `json:"items"`
}

type Document struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Url        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type NewDocument struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category"`
	Url      string `json:"url" validate:"required"`
}

type DailyLog struct {
	Id        string    `json:"id"`
	LogDate   time.Time `json:"log_date"`
	Author    string    `json:"author"`
	Weather   string    `json:"weather"`
	CrewCount int       `json:"crew_count"`
	Notes     string    `json:"notes"`
}

type NewDailyLog struct {
	LogDate   time.Time `json:"log_date" validate:"required"`
	Author    string    `json:"author"`
	Weather   string    `json:"weather"`
	CrewCount int       `json:"crew_count"`
	Notes     string    `json:"notes" validate:"required"`
}

// FinishTier inspects the job's finish scope to pick the material multiplier
// tier. Stomp/splatter/knockdown textures burn more compound than smooth
// level-4/level-5 walls.
func (j *Job) FinishTier() FinishTier {
	for _, scope := range j.Scopes {
		if !strings.EqualFold(scope.Category, "finish") {
			continue
		}
		desc := strings.ToLower(scope.Name + " " + scope.Description)
		switch {
		case strings.Contains(desc, "stomp"),
			strings.Contains(desc, "splatter"),
			strings.Contains(desc, "knockdown"):
			return FinishTierHeavy
		case strings.Contains(desc, "level 4"),
			strings.Contains(desc, "level-4"),
			strings.Contains(desc, "level 5"),
			strings.Contains(desc, "level-5"):
			return FinishTierSmooth
		}
	}
	return FinishTierDefault
}

func (j *Job) Phase(phaseId string) *TakeoffPhase {
	for i := range j.TakeoffPhases {
		if j.TakeoffPhases[i].Id == phaseId {
			return &j.TakeoffPhases[i]
		}
	}
	return nil
}
