// seed-dev loads a small sample company into the configured snapshot store:
// one job per job type, a crew, takeoff measurements, and enough labor
// activity to exercise the reconciler.
//
// Usage (from backend directory):
//   KV_PROVIDER=mysql DB_USER=... DB_PASSWORD=... go run ./cmd/seed-dev
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/buildledger/jobs_backend/config"
	"github.com/buildledger/jobs_backend/models"
	"github.com/buildledger/jobs_backend/storage"
	"github.com/buildledger/jobs_backend/store"
	"github.com/buildledger/jobs_backend/workflow"
	"github.com/shopspring/decimal"
)

func main() {
	ctx := context.Background()
	logger := config.GetLogger()

	switch config.KVProvider() {
	case "mysql":
		config.ConnectDatabaseWithRetry()
	case "redis":
		config.ConnectRedisWithRetry()
	}
	st, err := storage.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize storage backend: %v\n", err)
		os.Exit(1)
	}
	jobs, err := store.NewJobStore(ctx, st, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load job store: %v\n", err)
		os.Exit(1)
	}
	labor, err := store.NewLaborStore(ctx, st, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load labor store: %v\n", err)
		os.Exit(1)
	}
	if len(jobs.Jobs()) > 0 {
		fmt.Fprintln(os.Stderr, "store already has jobs; refusing to seed on top. Clear the snapshot keys first.")
		os.Exit(2)
	}

	hanger := mustEmployee(labor.CreateEmployee(ctx, models.NewEmployee{
		FirstName:    "Miguel",
		LastName:     "Santos",
		HourlyRate:   decimal.NewFromInt(25),
		EmployeeType: models.EmployeeTypeEmployee,
		Role:         models.EmployeeRoleHanger,
	}))
	finisher := mustEmployee(labor.CreateEmployee(ctx, models.NewEmployee{
		FirstName:    "Dale",
		LastName:     "Whitfield",
		HourlyRate:   decimal.NewFromInt(30),
		EmployeeType: models.EmployeeTypeSubcontractor,
		Role:         models.EmployeeRoleFinisher,
	}))
	apprentice := mustEmployee(labor.CreateEmployee(ctx, models.NewEmployee{
		FirstName:    "Tommy",
		LastName:     "Reyes",
		HourlyRate:   decimal.NewFromInt(18),
		EmployeeType: models.EmployeeTypeEmployee,
		Role:         models.EmployeeRoleApprentice,
	}))

	resi, err := jobs.CreateJob(ctx, models.NewJob{
		Name:       "Maple Street Remodel",
		ClientName: "K. Aldridge",
		Address:    "412 Maple St",
		JobType:    models.JobTypeResidential,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create job: %v\n", err)
		os.Exit(1)
	}
	if _, err := jobs.CreateJob(ctx, models.NewJob{
		Name:       "Riverside Office Buildout",
		ClientName: "Harlan Commercial Group",
		Address:    "88 Riverside Dr",
		JobType:    models.JobTypeCommercial,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create job: %v\n", err)
		os.Exit(1)
	}
	if _, err := jobs.CreateJob(ctx, models.NewJob{
		Name:       "Cedar Ridge Spec Home",
		ClientName: "Cedar Ridge LLC",
		JobType:    models.JobTypeConstruction,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create job: %v\n", err)
		os.Exit(1)
	}

	phase, err := jobs.CreateTakeoffPhase(ctx, resi.Id, models.NewTakeoffPhase{Name: "Main Floor"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create takeoff phase: %v\n", err)
		os.Exit(1)
	}
	if err := jobs.SaveTakeoffEntries(ctx, resi.Id, phase.Id, []models.TakeoffEntry{
		{
			RoomName:         "Living Room",
			BoardWidthInches: decimal.NewFromInt(48),
			BoardLengthFeet:  decimal.NewFromInt(12),
			BoardQuantity:    decimal.NewFromInt(40),
			BoardType:        "1/2\" Regular",
		},
		{
			RoomName:         "Garage",
			BoardWidthInches: decimal.NewFromInt(48),
			BoardLengthFeet:  decimal.NewFromInt(8),
			BoardQuantity:    decimal.NewFromInt(24),
			BoardType:        "5/8\" Type X",
		},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save takeoff entries: %v\n", err)
		os.Exit(1)
	}

	entry, err := labor.ClockIn(ctx, hanger.Id, resi.Id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to clock in: %v\n", err)
		os.Exit(1)
	}
	if _, err := labor.ClockOut(ctx, entry.Id); err != nil {
		fmt.Fprintf(os.Stderr, "failed to clock out: %v\n", err)
		os.Exit(1)
	}

	pr, err := labor.CreatePieceRateEntry(ctx, models.NewPieceRateEntry{
		EmployeeId:           finisher.Id,
		JobId:                resi.Id,
		Coat:                 models.CoatTape,
		CompletionPercentage: decimal.NewFromInt(100),
		TotalEarnings:        decimal.NewFromInt(450),
		ApprenticeId:         apprentice.Id,
		ApprenticeHours:      decimal.NewFromInt(6),
		ApprenticeCost:       decimal.NewFromInt(108),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create piece-rate entry: %v\n", err)
		os.Exit(1)
	}
	if err := labor.CompletePieceRateEntry(ctx, pr.Id, decimal.Zero, decimal.Zero); err != nil {
		fmt.Fprintf(os.Stderr, "failed to complete piece-rate entry: %v\n", err)
		os.Exit(1)
	}

	syncer := workflow.NewLaborSyncer(jobs, labor, logger)
	synced := syncer.Resync(ctx)

	jobs.FlushPendingSaves()
	fmt.Printf("Seeded %d jobs, 3 employees; labor sync updated %d job(s)\n", len(jobs.Jobs()), synced)
}

func mustEmployee(emp *models.Employee, err error) *models.Employee {
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create employee: %v\n", err)
		os.Exit(1)
	}
	return emp
}
