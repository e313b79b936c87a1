package store

import (
	"context"
	"errors"
	"testing"

	"github.com/buildledger/jobs_backend/config"
	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/storage"
	"github.com/buildledger/jobs_backend/utils"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestJobStore(t *testing.T) (*JobStore, *storage.MemoryStore) {
	t.Helper()
	mem := storage.NewMemoryStore()
	s, err := NewJobStore(context.Background(), mem, config.GetLogger())
	if err != nil {
		t.Fatalf("NewJobStore: %v", err)
	}
	return s, mem
}

func TestCreateJob_Defaults(t *testing.T) {
	s, _ := newTestJobStore(t)

	job, err := s.CreateJob(context.Background(), models.NewJob{Name: "Maple Street"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.JobType != models.JobTypeResidential {
		t.Fatalf("expected default residential job type, got %s", job.JobType)
	}
	if job.Status != models.JobStatusEstimating {
		t.Fatalf("expected estimating status, got %s", job.Status)
	}
	if len(job.Financials.Estimate.Commercial.Rows) != 16 {
		t.Fatalf("expected seeded commercial rows, got %d", len(job.Financials.Estimate.Commercial.Rows))
	}
	if !job.Financials.Actual.TotalActual.IsZero() {
		t.Fatalf("fresh job must have zero actuals, got %s", job.Financials.Actual.TotalActual)
	}

	if _, err := s.CreateJob(context.Background(), models.NewJob{}); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestJobStore_PersistsAndReloads(t *testing.T) {
	s, mem := newTestJobStore(t)
	job, err := s.CreateJob(context.Background(), models.NewJob{Name: "Persisted Job"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	reloaded, err := NewJobStore(context.Background(), mem, config.GetLogger())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := reloaded.GetJob(job.Id)
	if err != nil {
		t.Fatalf("GetJob after reload: %v", err)
	}
	if got.Name != "Persisted Job" {
		t.Fatalf("expected reloaded job name, got %q", got.Name)
	}
}

func TestUpdateActual_ReplacesWholesaleAndRecomputes(t *testing.T) {
	s, _ := newTestJobStore(t)
	job, _ := s.CreateJob(context.Background(), models.NewJob{Name: "Actuals"})

	two := []models.MaterialInvoice{
		{Id: "inv-1", Vendor: "GMS", Amount: dec("100"), SalesTax: dec("8")},
		{Id: "inv-2", Vendor: "L&W", Amount: dec("200"), SalesTax: dec("16")},
	}
	updated, err := s.UpdateActual(context.Background(), job.Id, models.ActualPatch{MaterialInvoices: &two})
	if err != nil {
		t.Fatalf("UpdateActual: %v", err)
	}
	if !updated.Financials.Actual.TotalActual.Equal(dec("324")) {
		t.Fatalf("expected total actual 324, got %s", updated.Financials.Actual.TotalActual)
	}

	// Arrays replace wholesale, never merge by id.
	one := []models.MaterialInvoice{{Id: "inv-3", Vendor: "GMS", Amount: dec("50"), SalesTax: dec("4")}}
	updated, err = s.UpdateActual(context.Background(), job.Id, models.ActualPatch{MaterialInvoices: &one})
	if err != nil {
		t.Fatalf("UpdateActual: %v", err)
	}
	if len(updated.Financials.Actual.MaterialInvoices) != 1 {
		t.Fatalf("expected wholesale replacement to 1 invoice, got %d", len(updated.Financials.Actual.MaterialInvoices))
	}
	if !updated.Financials.Actual.TotalActual.Equal(dec("54")) {
		t.Fatalf("expected total actual 54, got %s", updated.Financials.Actual.TotalActual)
	}
}

func TestReplaceLaborCosts_LeavesOtherCollectionsAlone(t *testing.T) {
	s, _ := newTestJobStore(t)
	job, _ := s.CreateJob(context.Background(), models.NewJob{Name: "Labor"})

	invoices := []models.MaterialInvoice{{Id: "inv-1", Amount: dec("100"), SalesTax: dec("8")}}
	if _, err := s.UpdateActual(context.Background(), job.Id, models.ActualPatch{MaterialInvoices: &invoices}); err != nil {
		t.Fatalf("UpdateActual: %v", err)
	}

	lines := []models.LaborCostLineItem{
		{Id: "hourly:emp-1", EmployeeId: "emp-1", Type: models.LaborCostTypeHourly, OriginalAmount: dec("175"), EmployerTax: dec("29.75"), Amount: dec("204.75")},
	}
	if err := s.ReplaceLaborCosts(context.Background(), job.Id, lines); err != nil {
		t.Fatalf("ReplaceLaborCosts: %v", err)
	}

	got, _ := s.GetJob(job.Id)
	if len(got.Financials.Actual.MaterialInvoices) != 1 {
		t.Fatal("labor sync must not touch material invoices")
	}
	if !got.Financials.Actual.TotalLaborCost.Equal(dec("204.75")) {
		t.Fatalf("expected total labor 204.75, got %s", got.Financials.Actual.TotalLaborCost)
	}
	if !got.Financials.Actual.TotalActual.Equal(dec("312.75")) {
		t.Fatalf("expected total actual 312.75, got %s", got.Financials.Actual.TotalActual)
	}
}

func TestSaveTakeoffEntries_DerivesFieldRevisedAndMaterials(t *testing.T) {
	s, _ := newTestJobStore(t)
	job, _ := s.CreateJob(context.Background(), models.NewJob{Name: "Takeoff"})

	if _, err := s.UpdateFieldRevised(context.Background(), job.Id, models.FieldRevisedPatch{
		DrywallMaterialRate: decPtr("0.66"),
	}); err != nil {
		t.Fatalf("UpdateFieldRevised: %v", err)
	}

	phase, err := s.CreateTakeoffPhase(context.Background(), job.Id, models.NewTakeoffPhase{Name: "Main Floor"})
	if err != nil {
		t.Fatalf("CreateTakeoffPhase: %v", err)
	}
	// 48" x 12' x 250 boards = 12000 sqft.
	if err := s.SaveTakeoffEntries(context.Background(), job.Id, phase.Id, []models.TakeoffEntry{
		{BoardWidthInches: dec("48"), BoardLengthFeet: dec("12"), BoardQuantity: dec("250")},
	}); err != nil {
		t.Fatalf("SaveTakeoffEntries: %v", err)
	}

	got, _ := s.GetJob(job.Id)
	gotPhase := got.Phase(phase.Id)
	if gotPhase.Entries[0].Id == "" {
		t.Fatal("new takeoff entries must get generated ids")
	}
	if len(gotPhase.Materials) != 8 {
		t.Fatalf("expected 8 auto-calculated materials, got %d", len(gotPhase.Materials))
	}
	fr := got.Financials.FieldRevised
	if !fr.SquareFootage.Equal(dec("12000")) {
		t.Fatalf("expected field-revised sqft 12000, got %s", fr.SquareFootage)
	}
	if !fr.DrywallMaterialCost.Equal(dec("7920")) {
		t.Fatalf("expected derived material cost 12000 * 0.66 = 7920, got %s", fr.DrywallMaterialCost)
	}
}

func TestUpdateFieldRevised_DebouncedPersist(t *testing.T) {
	s, mem := newTestJobStore(t)
	job, _ := s.CreateJob(context.Background(), models.NewJob{Name: "Rates"})

	updated, err := s.UpdateFieldRevised(context.Background(), job.Id, models.FieldRevisedPatch{
		SquareFootage:       decPtr("1000"),
		DrywallMaterialRate: decPtr("0.70"),
	})
	if err != nil {
		t.Fatalf("UpdateFieldRevised: %v", err)
	}
	if !updated.Financials.FieldRevised.DrywallMaterialCost.Equal(dec("700")) {
		t.Fatalf("expected derived cost 700, got %s", updated.Financials.FieldRevised.DrywallMaterialCost)
	}

	s.FlushPendingSaves()

	reloaded, err := NewJobStore(context.Background(), mem, config.GetLogger())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, _ := reloaded.GetJob(job.Id)
	if !got.Financials.FieldRevised.DrywallMaterialCost.Equal(dec("700")) {
		t.Fatalf("flushed save must be visible after reload, got %s", got.Financials.FieldRevised.DrywallMaterialCost)
	}
}

func TestScopeCRUD(t *testing.T) {
	s, _ := newTestJobStore(t)
	job, _ := s.CreateJob(context.Background(), models.NewJob{Name: "Scopes"})

	scope, err := s.CreateScope(context.Background(), job.Id, models.NewScope{Name: "Knockdown texture", Category: "finish"})
	if err != nil {
		t.Fatalf("CreateScope: %v", err)
	}
	if scope.Status != models.ScopeStatusPending {
		t.Fatalf("expected pending scope, got %s", scope.Status)
	}

	scope.Status = models.ScopeStatusCompleted
	if err := s.UpdateScope(context.Background(), job.Id, *scope); err != nil {
		t.Fatalf("UpdateScope: %v", err)
	}
	got, _ := s.GetJob(job.Id)
	if got.FinishTier() != models.FinishTierHeavy {
		t.Fatalf("expected knockdown scope to select heavy tier, got %s", got.FinishTier())
	}

	if err := s.DeleteScope(context.Background(), job.Id, scope.Id); err != nil {
		t.Fatalf("DeleteScope: %v", err)
	}
	if err := s.DeleteScope(context.Background(), job.Id, scope.Id); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected record-not-found on double delete, got %v", err)
	}
}

func TestApplyChecklistTemplate(t *testing.T) {
	s, _ := newTestJobStore(t)
	job, _ := s.CreateJob(context.Background(), models.NewJob{Name: "Checklists"})

	templates := s.ChecklistTemplates()
	if len(templates) == 0 {
		t.Fatal("expected built-in checklist templates")
	}

	checklist, err := s.ApplyChecklistTemplate(context.Background(), job.Id, templates[0].Id)
	if err != nil {
		t.Fatalf("ApplyChecklistTemplate: %v", err)
	}
	if checklist.Id == templates[0].Id {
		t.Fatal("applied checklist must get a fresh id")
	}
	if len(checklist.Items) != len(templates[0].Items) {
		t.Fatalf("expected %d items, got %d", len(templates[0].Items), len(checklist.Items))
	}
	for _, item := range checklist.Items {
		if item.Completed {
			t.Fatal("applied template items must start unchecked")
		}
	}

	got, _ := s.GetJob(job.Id)
	if len(got.Checklists) != 1 {
		t.Fatalf("expected checklist attached to job, got %d", len(got.Checklists))
	}
}

func TestDeleteJob(t *testing.T) {
	s, _ := newTestJobStore(t)
	job, _ := s.CreateJob(context.Background(), models.NewJob{Name: "Doomed"})

	if err := s.DeleteJob(context.Background(), job.Id); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if _, err := s.GetJob(job.Id); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected record-not-found, got %v", err)
	}
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
