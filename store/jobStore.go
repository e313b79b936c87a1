// Package store holds the in-memory aggregate stores, mirrored to the
// persistence adapter after every mutation.
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
	"github.com/sirupsen/logrus"
)

// JobStore owns the job aggregates. All mutations go through it; it mirrors
// the full jobs array to the snapshot store after every state transition.
// Persistence failures are logged and swallowed — the in-memory state stays
// authoritative and the next successful save catches up (last writer wins).
type JobStore struct {
	mu        sync.Mutex
	store     storage.Store
	logger    *logrus.Logger
	validate  *validator.Validate
	jobs      []models.Job
	templates []models.Checklist

	rateSave *Debouncer
}

func NewJobStore(ctx context.Context, st storage.Store, logger *logrus.Logger) (*JobStore, error) {
	s := &JobStore{
		store:    st,
		logger:   logger,
		validate: validator.New(),
		jobs:     []models.Job{},
	}
	if err := st.Load(ctx, storage.KeyJobs, &s.jobs); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return nil, err
	}
	if err := st.Load(ctx, storage.KeyChecklistTemplates, &s.templates); err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			return nil, err
		}
		s.templates = defaultChecklistTemplates()
	}
	// Field-revised rate edits arrive keystroke-by-keystroke; coalesce the
	// snapshot writes.
	s.rateSave = NewDebouncer(time.Second, func() {
		s.mu.Lock()
		s.persist(context.Background())
		s.mu.Unlock()
	})
	return s, nil
}

func (s *JobStore) persist(ctx context.Context) {
	if err := s.store.Save(ctx, storage.KeyJobs, s.jobs); err != nil {
		config.LogError(s.logger, "store", "persist", "save jobs snapshot", nil, err)
	}
}

func (s *JobStore) indexOf(id string) int {
	for i := range s.jobs {
		if s.jobs[i].Id == id {
			return i
		}
	}
	return -1
}

// Jobs returns a snapshot copy of the job list.
func (s *JobStore) Jobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *JobStore) GetJob(id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	job := s.jobs[i]
	return &job, nil
}

func (s *JobStore) CreateJob(ctx context.Context, input models.NewJob) (*models.Job, error) {
	if err := s.validate.Struct(input); err != nil {
		config.LogError(s.logger, "store", "CreateJob", "validate new job", utils.ProcessValidationErrors(err), err)
		return nil, err
	}
	jobType := input.JobType
	if jobType == "" {
		jobType = models.JobTypeResidential
	}
	if _, err := models.ParseJobType(string(jobType)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := models.Job{
		Id:            uuid.NewString(),
		Name:          input.Name,
		ClientName:    input.ClientName,
		Address:       input.Address,
		JobType:       jobType,
		Status:        models.JobStatusEstimating,
		Scopes:        []models.Scope{},
		TakeoffPhases: []models.TakeoffPhase{},
		Checklists:    []models.Checklist{},
		Documents:     []models.Document{},
		DailyLogs:     []models.DailyLog{},
		Financials:    models.NewFinancialsSkeleton(jobType),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
	s.persist(ctx)
	return &job, nil
}

func (s *JobStore) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	patch.Apply(&s.jobs[i])
	s.jobs[i].UpdatedAt = time.Now().UTC()
	s.persist(ctx)
	job := s.jobs[i]
	return &job, nil
}

// DeleteJob removes the job. External per-job state (e.g. time entries
// keyed by job id) is left behind as acceptable garbage.
func (s *JobStore) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
	s.persist(ctx)
	return nil
}

// ---- financial tier updates ----

func (s *JobStore) UpdateEstimate(ctx context.Context, id string, patch models.EstimatePatch) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	patch.Apply(&s.jobs[i].Financials.Estimate)
	s.jobs[i].UpdatedAt = time.Now().UTC()
	s.persist(ctx)
	job := s.jobs[i]
	return &job, nil
}

// UpdateFieldRevised applies the patch, re-derives DrywallMaterialCost, and
// schedules a debounced snapshot write instead of persisting immediately.
func (s *JobStore) UpdateFieldRevised(ctx context.Context, id string, patch models.FieldRevisedPatch) (*models.Job, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, utils.ErrorRecordNotFound
	}
	fr := &s.jobs[i].Financials.FieldRevised
	patch.Apply(fr)
	fr.DrywallMaterialCost = utils.RoundMoney(fr.SquareFootage.Mul(fr.DrywallMaterialRate))
	s.jobs[i].UpdatedAt = time.Now().UTC()
	job := s.jobs[i]
	s.mu.Unlock()

	s.rateSave.Trigger()
	return &job, nil
}

// FlushPendingSaves forces any debounced snapshot write to run now.
func (s *JobStore) FlushPendingSaves() {
	s.rateSave.Flush()
}

func (s *JobStore) UpdateActual(ctx context.Context, id string, patch models.ActualPatch) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	actual := &s.jobs[i].Financials.Actual
	patch.Apply(actual)
	models.RecomputeActualTotals(actual)
	s.jobs[i].UpdatedAt = time.Now().UTC()
	s.persist(ctx)
	job := s.jobs[i]
	return &job, nil
}

// ReplaceLaborCosts is the reconciler's write path: it swaps the
// reconciler-owned list wholesale and re-derives the rollup, leaving every
// other actual sub-collection untouched.
func (s *JobStore) ReplaceLaborCosts(ctx context.Context, jobId string, items []models.LaborCostLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	actual := &s.jobs[i].Financials.Actual
	actual.LaborCosts = items
	models.RecomputeActualTotals(actual)
	s.jobs[i].UpdatedAt = time.Now().UTC()
	s.persist(ctx)
	return nil
}

// ---- scopes ----

func (s *JobStore) CreateScope(ctx context.Context, jobId string, input models.NewScope) (*models.Scope, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	scope := models.Scope{
		Id:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Status:      models.ScopeStatusPending,
	}
	s.jobs[i].Scopes = append(s.jobs[i].Scopes, scope)
	s.touchAndPersist(ctx, i)
	return &scope, nil
}

func (s *JobStore) UpdateScope(ctx context.Context, jobId string, scope models.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	for k := range s.jobs[i].Scopes {
		if s.jobs[i].Scopes[k].Id == scope.Id {
			s.jobs[i].Scopes[k] = scope
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

func (s *JobStore) DeleteScope(ctx context.Context, jobId string, scopeId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	scopes := s.jobs[i].Scopes
	for k := range scopes {
		if scopes[k].Id == scopeId {
			s.jobs[i].Scopes = append(scopes[:k], scopes[k+1:]...)
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

// ---- takeoff phases ----

func (s *JobStore) CreateTakeoffPhase(ctx context.Context, jobId string, input models.NewTakeoffPhase) (*models.TakeoffPhase, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	phase := models.TakeoffPhase{
		Id:        uuid.NewString(),
		Name:      input.Name,
		Entries:   []models.TakeoffEntry{},
		Materials: []models.PhaseMaterial{},
	}
	s.jobs[i].TakeoffPhases = append(s.jobs[i].TakeoffPhases, phase)
	s.touchAndPersist(ctx, i)
	return &phase, nil
}

func (s *JobStore) DeleteTakeoffPhase(ctx context.Context, jobId string, phaseId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	phases := s.jobs[i].TakeoffPhases
	for k := range phases {
		if phases[k].Id == phaseId {
			s.jobs[i].TakeoffPhases = append(phases[:k], phases[k+1:]...)
			s.refreshTakeoffDerived(&s.jobs[i], "")
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

// SaveTakeoffEntries replaces a phase's entry list wholesale. New entries
// (blank id) get generated ids.
func (s *JobStore) SaveTakeoffEntries(ctx context.Context, jobId string, phaseId string, entries []models.TakeoffEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	phase := s.jobs[i].Phase(phaseId)
	if phase == nil {
		return utils.ErrorRecordNotFound
	}
	for k := range entries {
		if entries[k].Id == "" {
			entries[k].Id = uuid.NewString()
		}
	}
	phase.Entries = entries
	s.refreshTakeoffDerived(&s.jobs[i], phaseId)
	s.touchAndPersist(ctx, i)
	return nil
}

func (s *JobStore) UpdateTakeoffEntry(ctx context.Context, jobId string, phaseId string, entry models.TakeoffEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	phase := s.jobs[i].Phase(phaseId)
	if phase == nil {
		return utils.ErrorRecordNotFound
	}
	for k := range phase.Entries {
		if phase.Entries[k].Id == entry.Id {
			phase.Entries[k] = entry
			s.refreshTakeoffDerived(&s.jobs[i], phaseId)
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

func (s *JobStore) DeleteTakeoffEntry(ctx context.Context, jobId string, phaseId string, entryId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	phase := s.jobs[i].Phase(phaseId)
	if phase == nil {
		return utils.ErrorRecordNotFound
	}
	for k := range phase.Entries {
		if phase.Entries[k].Id == entryId {
			phase.Entries = append(phase.Entries[:k], phase.Entries[k+1:]...)
			s.refreshTakeoffDerived(&s.jobs[i], phaseId)
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

// UpdatePhaseMaterials replaces a phase's material list wholesale (manual
// edits from the materials tab).
func (s *JobStore) UpdatePhaseMaterials(ctx context.Context, jobId string, phaseId string, materials []models.PhaseMaterial) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	phase := s.jobs[i].Phase(phaseId)
	if phase == nil {
		return utils.ErrorRecordNotFound
	}
	for k := range materials {
		if materials[k].Id == "" {
			materials[k].Id = uuid.NewString()
		}
	}
	phase.Materials = materials
	// Manual corner-bead changes feed back into compound quantities.
	workflow.RecalculatePhaseMaterials(&s.jobs[i], phaseId)
	s.touchAndPersist(ctx, i)
	return nil
}

// refreshTakeoffDerived re-derives everything downstream of a takeoff entry
// mutation: auto-calculated phase materials and the field-revised square
// footage (and its dependent material cost).
func (s *JobStore) refreshTakeoffDerived(job *models.Job, phaseId string) {
	if phaseId != "" {
		workflow.RecalculatePhaseMaterials(job, phaseId)
	}
	fr := &job.Financials.FieldRevised
	fr.SquareFootage = workflow.FieldRevisedSquareFeet(job)
	fr.DrywallMaterialCost = utils.RoundMoney(fr.SquareFootage.Mul(fr.DrywallMaterialRate))
}

func (s *JobStore) touchAndPersist(ctx context.Context, i int) {
	s.jobs[i].UpdatedAt = time.Now().UTC()
	s.persist(ctx)
}

// ---- checklists ----

func (s *JobStore) CreateChecklist(ctx context.Context, jobId string, input models.NewChecklist) (*models.Checklist, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	checklist := models.Checklist{
		Id:    uuid.NewString(),
		Name:  input.Name,
		Items: make([]models.ChecklistItem, 0, len(input.Items)),
	}
	for _, text := range input.Items {
		checklist.Items = append(checklist.Items, models.ChecklistItem{
			Id:   uuid.NewString(),
			Text: text,
		})
	}
	s.jobs[i].Checklists = append(s.jobs[i].Checklists, checklist)
	s.touchAndPersist(ctx, i)
	return &checklist, nil
}

func (s *JobStore) UpdateChecklist(ctx context.Context, jobId string, checklist models.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	for k := range s.jobs[i].Checklists {
		if s.jobs[i].Checklists[k].Id == checklist.Id {
			s.jobs[i].Checklists[k] = checklist
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

func (s *JobStore) DeleteChecklist(ctx context.Context, jobId string, checklistId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	lists := s.jobs[i].Checklists
	for k := range lists {
		if lists[k].Id == checklistId {
			s.jobs[i].Checklists = append(lists[:k], lists[k+1:]...)
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

// defaultChecklistTemplates are the built-in punch lists used until the
// snapshot store carries a customized set.
func defaultChecklistTemplates() []models.Checklist {
	build := func(name string, items ...string) models.Checklist {
		list := models.Checklist{Id: uuid.NewString(), Name: name}
		for _, text := range items {
			list.Items = append(list.Items, models.ChecklistItem{Id: uuid.NewString(), Text: text})
		}
		return list
	}
	return []models.Checklist{
		build("Hanging Punch List",
			"All boards screwed off",
			"Corner bead installed",
			"Scrap hauled out",
			"Floors swept"),
		build("Finishing Punch List",
			"All coats sanded",
			"Corners straight",
			"Texture matched",
			"Touch-ups complete"),
		build("Final Walkthrough",
			"Client walkthrough scheduled",
			"Punch items closed",
			"Site cleaned",
			"Final invoice sent"),
	}
}

// ChecklistTemplates returns the template library.
func (s *JobStore) ChecklistTemplates() []models.Checklist {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Checklist, len(s.templates))
	copy(out, s.templates)
	return out
}

// SaveChecklistTemplates replaces the template library wholesale.
func (s *JobStore) SaveChecklistTemplates(ctx context.Context, templates []models.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range templates {
		if templates[i].Id == "" {
			templates[i].Id = uuid.NewString()
		}
	}
	s.templates = templates
	return s.store.Save(ctx, storage.KeyChecklistTemplates, s.templates)
}

// ApplyChecklistTemplate copies a template onto a job as a fresh checklist
// with new ids and all items unchecked.
func (s *JobStore) ApplyChecklistTemplate(ctx context.Context, jobId string, templateId string) (*models.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	for _, tpl := range s.templates {
		if tpl.Id != templateId {
			continue
		}
		checklist := models.Checklist{
			Id:    uuid.NewString(),
			Name:  tpl.Name,
			Items: make([]models.ChecklistItem, 0, len(tpl.Items)),
		}
		for _, item := range tpl.Items {
			checklist.Items = append(checklist.Items, models.ChecklistItem{
				Id:   uuid.NewString(),
				Text: item.Text,
			})
		}
		s.jobs[i].Checklists = append(s.jobs[i].Checklists, checklist)
		s.touchAndPersist(ctx, i)
		return &checklist, nil
	}
	return nil, utils.ErrorRecordNotFound
}

// ---- documents ----

func (s *JobStore) CreateDocument(ctx context.Context, jobId string, input models.NewDocument) (*models.Document, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	doc := models.Document{
		Id:         uuid.NewString(),
		Name:       input.Name,
		Category:   input.Category,
		Url:        input.Url,
		UploadedAt: time.Now().UTC(),
	}
	s.jobs[i].Documents = append(s.jobs[i].Documents, doc)
	s.touchAndPersist(ctx, i)
	return &doc, nil
}

func (s *JobStore) DeleteDocument(ctx context.Context, jobId string, documentId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	docs := s.jobs[i].Documents
	for k := range docs {
		if docs[k].Id == documentId {
			s.jobs[i].Documents = append(docs[:k], docs[k+1:]...)
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

// ---- daily logs ----

func (s *JobStore) CreateDailyLog(ctx context.Context, jobId string, input models.NewDailyLog) (*models.DailyLog, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return nil, utils.ErrorRecordNotFound
	}
	entry := models.DailyLog{
		Id:        uuid.NewString(),
		LogDate:   input.LogDate,
		Author:    input.Author,
		Weather:   input.Weather,
		CrewCount: input.CrewCount,
		Notes:     input.Notes,
	}
	s.jobs[i].DailyLogs = append(s.jobs[i].DailyLogs, entry)
	s.touchAndPersist(ctx, i)
	return &entry, nil
}

func (s *JobStore) DeleteDailyLog(ctx context.Context, jobId string, logId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(jobId)
	if i < 0 {
		return utils.ErrorRecordNotFound
	}
	logs := s.jobs[i].DailyLogs
	for k := range logs {
		if logs[k].Id == logId {
			s.jobs[i].DailyLogs = append(logs[:k], logs[k+1:]...)
			s.touchAndPersist(ctx, i)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

var _ workflow.JobSource = (*JobStore)(nil)
