package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	Id           string          `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	EmployeeType EmployeeType    `json:"employee_type"`
	Role         EmployeeRole    `json:"role"`
	IsActive     *bool           `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type NewEmployee struct {
	FirstName    string          `json:"first_name" validate:"required"`
	LastName     string          `json:"last_name" validate:"required"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	EmployeeType EmployeeType    `json:"employee_type" validate:"required,oneof=Employee Subcontractor"`
	Role         EmployeeRole    `json:"role" validate:"required"`
}

// TimeEntry is an hourly time-clock record. ClockOutTime nil means the
// employee is still on the clock; TotalHours is set at clock-out and the
// entry is immutable after that apart from corrective edits.
type TimeEntry struct {
	Id           string          `json:"id"`
	EmployeeId   string          `json:"employee_id"`
	JobId        string          `json:"job_id"`
	ClockInTime  time.Time       `json:"clock_in_time"`
	ClockOutTime *time.Time      `json:"clock_out_time"`
	TotalHours   decimal.Decimal `json:"total_hours"`
}

// PieceRateEntry is a production-based pay record, paid per unit of work.
// Only completed entries contribute to labor cost.
type PieceRateEntry struct {
	Id                   string          `json:"id"`
	EmployeeId           string          `json:"employee_id"`
	JobId                string          `json:"job_id"`
	Coat                 Coat            `json:"coat"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
	Status               PieceRateStatus `json:"status"`
	ApprenticeId         string          `json:"apprentice_id"`
	ApprenticeHours      decimal.Decimal `json:"apprentice_hours"`
	ApprenticeCost       decimal.Decimal `json:"apprentice_cost"`
	CreatedAt            time.Time       `json:"created_at"`
}

type NewPieceRateEntry struct {
	EmployeeId           string          `json:"employee_id" validate:"required"`
	JobId                string          `json:"job_id" validate:"required"`
	Coat                 Coat            `json:"coat" validate:"required,oneof=tape bed skim texture sand"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
	ApprenticeId         string          `json:"apprentice_id"`
	ApprenticeHours      decimal.Decimal `json:"apprentice_hours"`
	ApprenticeCost       decimal.Decimal `json:"apprentice_cost"`
}
