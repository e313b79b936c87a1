package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/buildledger/jobs_backend/appctx"
	"github.com/buildledger/jobs_backend/config"
	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// EmployerTaxRate is the measured payroll burden applied to labor earned by
// direct employees when actual costs are reconciled from time-clock and
// piece-rate data.
//
// EstimatedLaborTaxRate is the blanket loading the estimate calculators put
// on projected labor. The two model the same concept with different
// constants; product has not confirmed whether the divergence is
// intentional, so both are kept as-is.
var (
	EmployerTaxRate       = decimal.NewFromFloat(0.17)
	EstimatedLaborTaxRate = decimal.NewFromFloat(0.15)
)

type laborGroupKey struct {
	employeeId string
	category   string
}

// laborAccumulator groups line items by composite key in insertion order, so
// repeated reconciliations of unchanged inputs produce identical output.
type laborAccumulator struct {
	order []laborGroupKey
	items map[laborGroupKey]*models.LaborCostLineItem
}

func newLaborAccumulator() *laborAccumulator {
	return &laborAccumulator{items: make(map[laborGroupKey]*models.LaborCostLineItem)}
}

func (a *laborAccumulator) get(key laborGroupKey, seed func() models.LaborCostLineItem) *models.LaborCostLineItem {
	if item, ok := a.items[key]; ok {
		return item
	}
	item := seed()
	a.order = append(a.order, key)
	a.items[key] = &item
	return a.items[key]
}

func (a *laborAccumulator) list() []models.LaborCostLineItem {
	out := make([]models.LaborCostLineItem, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, *a.items[key])
	}
	return out
}

// ReconcileLaborCosts derives the labor-cost line items for one job from the
// global time-clock, piece-rate, and employee collections. Pure function;
// entries referencing unknown employees are skipped, not errors — the sync
// recomputes wholesale every cycle so transient misses self-heal.
func ReconcileLaborCosts(job *models.Job, timeEntries []models.TimeEntry, pieceRateEntries []models.PieceRateEntry, employees []models.Employee) []models.LaborCostLineItem {
	byId := make(map[string]models.Employee, len(employees))
	for _, emp := range employees {
		byId[emp.Id] = emp
	}

	hourly := newLaborAccumulator()
	for _, entry := range timeEntries {
		if entry.JobId != job.Id || entry.ClockOutTime == nil {
			continue
		}
		emp, ok := byId[entry.EmployeeId]
		if !ok {
			continue
		}
		key := laborGroupKey{employeeId: emp.Id, category: string(models.LaborCostTypeHourly)}
		item := hourly.get(key, func() models.LaborCostLineItem {
			return models.LaborCostLineItem{
				Id:          "hourly:" + emp.Id,
				EmployeeId:  emp.Id,
				Description: emp.FullName() + " - Hourly",
				Type:        models.LaborCostTypeHourly,
			}
		})
		item.Hours = item.Hours.Add(entry.TotalHours)
		item.OriginalAmount = item.OriginalAmount.Add(entry.TotalHours.Mul(emp.HourlyRate))
	}

	completed := make([]models.PieceRateEntry, 0, len(pieceRateEntries))
	for _, entry := range pieceRateEntries {
		if entry.JobId == job.Id && entry.Status == models.PieceRateStatusCompleted {
			completed = append(completed, entry)
		}
	}

	pieceRate := newLaborAccumulator()
	for _, entry := range completed {
		emp, ok := byId[entry.EmployeeId]
		if !ok {
			continue
		}
		workType := entry.Coat.DisplayName()
		if emp.Role == models.EmployeeRoleHanger {
			workType = "Hanging"
		}
		key := laborGroupKey{employeeId: emp.Id, category: strings.ToLower(workType)}
		item := pieceRate.get(key, func() models.LaborCostLineItem {
			return models.LaborCostLineItem{
				Id:          "piece-rate:" + emp.Id + ":" + strings.ToLower(workType),
				EmployeeId:  emp.Id,
				Description: emp.FullName() + " - " + workType,
				Type:        models.LaborCostTypePieceRate,
			}
		})
		item.CompletionPercentage = item.CompletionPercentage.Add(entry.CompletionPercentage)
		item.OriginalAmount = item.OriginalAmount.Add(entry.TotalEarnings)
	}

	apprentice := newLaborAccumulator()
	for _, entry := range completed {
		if entry.ApprenticeId == "" || !entry.ApprenticeCost.IsPositive() {
			continue
		}
		emp, ok := byId[entry.ApprenticeId]
		if !ok {
			continue
		}
		key := laborGroupKey{employeeId: emp.Id, category: string(models.LaborCostTypeApprentice)}
		item := apprentice.get(key, func() models.LaborCostLineItem {
			return models.LaborCostLineItem{
				Id:          "apprentice:" + emp.Id,
				EmployeeId:  emp.Id,
				Description: emp.FullName() + " - Apprentice",
				Type:        models.LaborCostTypeApprentice,
			}
		})
		item.Hours = item.Hours.Add(entry.ApprenticeHours)
		item.OriginalAmount = item.OriginalAmount.Add(entry.ApprenticeCost)
	}

	combined := append(hourly.list(), pieceRate.list()...)
	combined = append(combined, apprentice.list()...)

	// Employer tax pass: direct employees only.
	for i := range combined {
		emp, ok := byId[combined[i].EmployeeId]
		if ok && emp.EmployeeType == models.EmployeeTypeEmployee {
			combined[i].EmployerTax = utils.RoundMoney(combined[i].OriginalAmount.Mul(EmployerTaxRate))
		} else {
			combined[i].EmployerTax = decimal.Zero
		}
		combined[i].Amount = combined[i].OriginalAmount.Add(combined[i].EmployerTax)
	}

	return combined
}

// JobSource is what the syncer needs from the job aggregate store.
type JobSource interface {
	Jobs() []models.Job
	// ReplaceLaborCosts swaps the reconciler-owned list wholesale,
	// recomputes the actual-cost rollup, and persists. All other actual
	// sub-collections are untouched.
	ReplaceLaborCosts(ctx context.Context, jobId string, items []models.LaborCostLineItem) error
}

// LaborSource is what the syncer needs from the time-clock side.
type LaborSource interface {
	TimeEntries() []models.TimeEntry
	PieceRateEntries() []models.PieceRateEntry
	Employees() []models.Employee
}

// LaborSyncer drives the side-effecting sync. Resync is an explicit
// operation so tests can run it without timers; Run is the ticker loop the
// sync daemon uses.
type LaborSyncer struct {
	jobs         JobSource
	labor        LaborSource
	logger       *logrus.Logger
	interval     time.Duration
	pauseTimeout time.Duration

	mu          sync.Mutex
	pausedUntil time.Time
	now         func() time.Time
}

func NewLaborSyncer(jobs JobSource, labor LaborSource, logger *logrus.Logger) *LaborSyncer {
	return &LaborSyncer{
		jobs:         jobs,
		labor:        labor,
		logger:       logger,
		interval:     config.LaborSyncInterval(),
		pauseTimeout: config.LaborSyncPauseTimeout(),
		now:          time.Now,
	}
}

// Pause suspends auto-sync so manual edits are not overwritten mid-flight.
// The pause self-clears after d (d <= 0 uses the configured default).
func (s *LaborSyncer) Pause(d time.Duration) {
	if d <= 0 {
		d = s.pauseTimeout
	}
	s.mu.Lock()
	s.pausedUntil = s.now().Add(d)
	s.mu.Unlock()
}

func (s *LaborSyncer) Resume() {
	s.mu.Lock()
	s.pausedUntil = time.Time{}
	s.mu.Unlock()
}

func (s *LaborSyncer) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.pausedUntil)
}

// Resync reconciles every job and writes back only the ones whose labor-cost
// list actually changed. Returns the number of jobs updated.
func (s *LaborSyncer) Resync(ctx context.Context) int {
	if s.Paused() {
		return 0
	}

	timeEntries := s.labor.TimeEntries()
	pieceRateEntries := s.labor.PieceRateEntries()
	employees := s.labor.Employees()

	cid, _ := appctx.GetString(ctx, appctx.ContextKeyCorrelationId)

	updated := 0
	for _, job := range s.jobs.Jobs() {
		items := ReconcileLaborCosts(&job, timeEntries, pieceRateEntries, employees)
		if models.LaborCostsEqual(job.Financials.Actual.LaborCosts, items) {
			continue
		}
		if err := s.jobs.ReplaceLaborCosts(ctx, job.Id, items); err != nil {
			config.LogError(s.logger, "workflow", "Resync", "replace labor costs",
				map[string]string{"job_id": job.Id, "correlation_id": cid}, err)
			continue
		}
		updated++
	}
	if updated > 0 {
		s.logger.WithFields(logrus.Fields{
			"updated":        updated,
			"correlation_id": cid,
		}).Info("labor sync applied changes")
	}
	return updated
}

// Run resyncs immediately, then on every tick until ctx is cancelled. Each
// cycle gets its own correlation id for log stitching.
func (s *LaborSyncer) Run(ctx context.Context) {
	cycle := func() {
		s.Resync(appctx.Set(ctx, appctx.ContextKeyCorrelationId, uuid.NewString()))
	}
	cycle()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cycle()
		}
	}
}
