// quote-export renders one job's estimate as an XLSX workbook.
//
// Usage (from backend directory):
//   KV_PROVIDER=memory go run ./cmd/quote-export -job-id <uuid> -out quote.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/buildledger/jobs_backend/config"
	"github.com/buildledger/jobs_backend/export"
	"github.com/buildledger/jobs_backend/storage"
	"github.com/buildledger/jobs_backend/store"
)

func main() {
	jobId := flag.String("job-id", "", "id of the job to export")
	out := flag.String("out", "quote.xlsx", "output workbook path")
	withCSV := flag.Bool("csv", false, "also write a .csv next to the workbook")
	flag.Parse()

	if *jobId == "" {
		fmt.Fprintln(os.Stderr, "usage: quote-export -job-id <uuid> [-out quote.xlsx] [-csv]")
		os.Exit(2)
	}

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

	job, err := jobs.GetJob(*jobId)
	if err != nil {
		fmt.Fprintf(os.Stderr, "job %s not found\n", *jobId)
		os.Exit(1)
	}

	quote := export.BuildQuote(job)
	workbook, err := export.QuoteWorkbook(job, quote)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build workbook: %v\n", err)
		os.Exit(1)
	}
	if err := workbook.SaveAs(*out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (final total %s)\n", *out, quote.FinalTotal.StringFixed(2))

	if *withCSV {
		csvPath := *out + ".csv"
		f, err := os.Create(csvPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", csvPath, err)
			os.Exit(1)
		}
		defer f.Close()
		if err := export.WriteCSV(f, quote); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", csvPath, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", csvPath)
	}
}
