// Command reconcile matches a bank-statement spreadsheet against an
// expense-ledger spreadsheet and writes an xlsx report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ledgerlens/reconcile/internal/application/service"
	"github.com/ledgerlens/reconcile/internal/cli"
	"github.com/ledgerlens/reconcile/internal/infrastructure/config"
	"github.com/ledgerlens/reconcile/internal/infrastructure/logging"
	"github.com/ledgerlens/reconcile/internal/infrastructure/storage"
)

func main() {
	sourcePath := flag.String("source", "", "Path to the bank statement xlsx (required)")
	targetPath := flag.String("target", "", "Path to the expense ledger xlsx (required)")
	reportPath := flag.String("out", "reconciliation_report.xlsx", "Path for the xlsx report (empty to skip)")
	configPath := flag.String("config", "", "Path to config.yaml (default: config.yaml, then env)")
	toleranceAmount := flag.Float64("tolerance-amount", -1, "Override amount tolerance")
	toleranceDays := flag.Int("tolerance-days", -1, "Override date tolerance in days")
	checkIdentity := flag.Bool("check-identity", true, "Verify person correspondence between ledgers")
	flag.Parse()

	if *sourcePath == "" || *targetPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Optional .env for things like ${RECONCILE_DB_PATH} in config files
	_ = godotenv.Load()

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrEnv()
	}

	if *toleranceAmount >= 0 {
		cfg.Reconciliation.ToleranceAmount = *toleranceAmount
	}
	if *toleranceDays >= 0 {
		cfg.Reconciliation.ToleranceDays = *toleranceDays
	}
	cfg.Reconciliation.CheckIdentity = *checkIdentity

	logger := logging.NewWithSystem(cfg.Observability.Logging, "reconcile")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Storage.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := service.NewReconService(cfg, store, logger)

	cli.PrintHeader(cfg.Ledgers.Source.Label, cfg.Ledgers.Target.Label)
	cli.PrintConfiguration(cfg.Reconciliation.ToleranceAmount, cfg.Reconciliation.ToleranceDays, cfg.Reconciliation.CheckIdentity)

	result, err := svc.RunFiles(context.Background(), service.FileRunRequest{
		SourcePath: *sourcePath,
		TargetPath: *targetPath,
		ReportPath: *reportPath,
	})
	if err != nil {
		logger.Error("reconciliation failed", "error", err)
		os.Exit(1)
	}

	cli.PrintSummary(result, cfg.Ledgers.Source.Label, cfg.Ledgers.Target.Label)
}
