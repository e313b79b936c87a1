package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/buildledger/jobs_backend/config"
	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/storage"
	"github.com/buildledger/jobs_backend/utils"
	"github.com/buildledger/jobs_backend/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrorAlreadyClockedIn = errors.New("employee already clocked in")

// LaborStore owns the employee directory and the time-clock and piece-rate
// collections the reconciler reads from.
type LaborStore struct {
	mu       sync.Mutex
	store    storage.Store
	logger   *logrus.Logger
	validate *validator.Validate

	employees        []models.Employee
	timeEntries      []models.TimeEntry
	pieceRateEntries []models.PieceRateEntry
}

func NewLaborStore(ctx context.Context, st storage.Store, logger *logrus.Logger) (*LaborStore, error) {
	s := &LaborStore{
		store:            st,
		logger:           logger,
		validate:         validator.New(),
		employees:        []models.Employee{},
		timeEntries:      []models.TimeEntry{},
		pieceRateEntries: []models.PieceRateEntry{},
	}
	for key, out := range map[string]any{
		storage.KeyEmployees:        &s.employees,
		storage.KeyTimeEntries:      &s.timeEntries,
		storage.KeyPieceRateEntries: &s.pieceRateEntries,
	} {
		if err := st.Load(ctx, key, out); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
			return nil, err
		}
	}
	return s, nil
}

func (s *LaborStore) persist(ctx context.Context, key string, value any) {
	if err := s.store.Save(ctx, key, value); err != nil {
		config.LogError(s.logger, "store", "persist", "save "+key+" snapshot", nil, err)
	}
}

func (s *LaborStore) Employees() []models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *LaborStore) TimeEntries() []models.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TimeEntry, len(s.timeEntries))
	copy(out, s.timeEntries)
	return out
}

func (s *LaborStore) PieceRateEntries() []models.PieceRateEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PieceRateEntry, len(s.pieceRateEntries))
	copy(out, s.pieceRateEntries)
	return out
}

func (s *LaborStore) CreateEmployee(ctx context.Context, input models.NewEmployee) (*models.Employee, error) {
	if err := s.validate.Struct(input); err != nil {
		config.LogError(s.logger, "store", "CreateEmployee", "validate new employee", utils.ProcessValidationErrors(err), err)
		return nil, err
	}
	now := time.Now().UTC()
	emp := models.Employee{
		Id:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		HourlyRate:   input.HourlyRate,
		EmployeeType: input.EmployeeType,
		Role:         input.Role,
		IsActive:     utils.NewTrue(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append(s.employees, emp)
	s.persist(ctx, storage.KeyEmployees, s.employees)
	return &emp, nil
}

func (s *LaborStore) UpdateEmployee(ctx context.Context, emp models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].Id == emp.Id {
			emp.CreatedAt = s.employees[i].CreatedAt
			emp.UpdatedAt = time.Now().UTC()
			s.employees[i] = emp
			s.persist(ctx, storage.KeyEmployees, s.employees)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

func (s *LaborStore) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].Id == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			s.persist(ctx, storage.KeyEmployees, s.employees)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

// ClockIn opens a time entry. An employee can only be on one clock at a
// time.
func (s *LaborStore) ClockIn(ctx context.Context, employeeId string, jobId string) (*models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.employeeExists(employeeId) {
		return nil, utils.ErrorRecordNotFound
	}
	for _, entry := range s.timeEntries {
		if entry.EmployeeId == employeeId && entry.ClockOutTime == nil {
			return nil, ErrorAlreadyClockedIn
		}
	}
	entry := models.TimeEntry{
		Id:          uuid.NewString(),
		EmployeeId:  employeeId,
		JobId:       jobId,
		ClockInTime: time.Now().UTC(),
	}
	s.timeEntries = append(s.timeEntries, entry)
	s.persist(ctx, storage.KeyTimeEntries, s.timeEntries)
	return &entry, nil
}

// ClockOut closes the entry and derives TotalHours (2dp).
func (s *LaborStore) ClockOut(ctx context.Context, entryId string) (*models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.timeEntries {
		if s.timeEntries[i].Id != entryId {
			continue
		}
		if s.timeEntries[i].ClockOutTime != nil {
			return nil, errors.New("time entry already clocked out")
		}
		now := time.Now().UTC()
		s.timeEntries[i].ClockOutTime = &now
		hours := decimal.NewFromFloat(now.Sub(s.timeEntries[i].ClockInTime).Hours())
		s.timeEntries[i].TotalHours = hours.Round(2)
		s.persist(ctx, storage.KeyTimeEntries, s.timeEntries)
		entry := s.timeEntries[i]
		return &entry, nil
	}
	return nil, utils.ErrorRecordNotFound
}

func (s *LaborStore) CreatePieceRateEntry(ctx context.Context, input models.NewPieceRateEntry) (*models.PieceRateEntry, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.employeeExists(input.EmployeeId) {
		return nil, utils.ErrorRecordNotFound
	}
	entry := models.PieceRateEntry{
		Id:                   uuid.NewString(),
		EmployeeId:           input.EmployeeId,
		JobId:                input.JobId,
		Coat:                 input.Coat,
		CompletionPercentage: input.CompletionPercentage,
		TotalEarnings:        input.TotalEarnings,
		Status:               models.PieceRateStatusInProgress,
		ApprenticeId:         input.ApprenticeId,
		ApprenticeHours:      input.ApprenticeHours,
		ApprenticeCost:       input.ApprenticeCost,
		CreatedAt:            time.Now().UTC(),
	}
	s.pieceRateEntries = append(s.pieceRateEntries, entry)
	s.persist(ctx, storage.KeyPieceRateEntries, s.pieceRateEntries)
	return &entry, nil
}

// CompletePieceRateEntry marks the entry completed so the next labor sync
// picks it up.
func (s *LaborStore) CompletePieceRateEntry(ctx context.Context, entryId string, completionPercentage decimal.Decimal, totalEarnings decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pieceRateEntries {
		if s.pieceRateEntries[i].Id == entryId {
			s.pieceRateEntries[i].Status = models.PieceRateStatusCompleted
			if completionPercentage.IsPositive() {
				s.pieceRateEntries[i].CompletionPercentage = completionPercentage
			}
			if totalEarnings.IsPositive() {
				s.pieceRateEntries[i].TotalEarnings = totalEarnings
			}
			s.persist(ctx, storage.KeyPieceRateEntries, s.pieceRateEntries)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

func (s *LaborStore) employeeExists(id string) bool {
	for _, emp := range s.employees {
		if emp.Id == id {
			return true
		}
	}
	return false
}

var _ workflow.LaborSource = (*LaborStore)(nil)
