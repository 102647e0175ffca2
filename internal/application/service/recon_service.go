// Package service orchestrates reconciliation runs: ingestion, the matching
// engine, report building, persistence, and optional workbook export.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/reconcile/internal/domain/identity"
	"github.com/ledgerlens/reconcile/internal/domain/recon"
	"github.com/ledgerlens/reconcile/internal/domain/report"
	"github.com/ledgerlens/reconcile/internal/export"
	"github.com/ledgerlens/reconcile/internal/infrastructure/config"
	"github.com/ledgerlens/reconcile/internal/infrastructure/storage"
	"github.com/ledgerlens/reconcile/internal/ingest"
)

// ReconService runs reconciliations and records their history.
type ReconService struct {
	cfg    *config.Config
	repo   storage.Repository
	logger *slog.Logger
}

// NewReconService creates a new reconciliation service.
func NewReconService(cfg *config.Config, repo storage.Repository, logger *slog.Logger) *ReconService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconService{cfg: cfg, repo: repo, logger: logger}
}

// FileRunRequest describes a run over two ledger spreadsheets.
type FileRunRequest struct {
	SourcePath string
	TargetPath string

	// ReportPath, when set, is where the xlsx report workbook goes.
	ReportPath string
}

// RunResult is what a completed run hands back to its caller.
type RunResult struct {
	RunID      string         `json:"run_id"`
	Summary    report.Summary `json:"summary"`
	Rows       []report.Row   `json:"rows"`
	ReportPath string         `json:"report_path,omitempty"`
}

// EngineConfig translates the application configuration into the engine's
// run parameters.
func (s *ReconService) EngineConfig() recon.Config {
	rc := s.cfg.Reconciliation
	return recon.Config{
		ToleranceAmount: decimal.NewFromFloat(rc.ToleranceAmount),
		ToleranceDays:   rc.ToleranceDays,
		CheckIdentity:   rc.CheckIdentity,
		IdentityMap:     rc.IdentityMap,
		SourceLabel:     s.cfg.Ledgers.Source.Label,
		TargetLabel:     s.cfg.Ledgers.Target.Label,
	}
}

// Resolver builds the identity resolver from the configured card→person map.
func (s *ReconService) Resolver() *identity.Resolver {
	return identity.NewResolver(s.cfg.Reconciliation.IdentityMap)
}

// RunFiles ingests both ledger spreadsheets and reconciles them.
func (s *ReconService) RunFiles(ctx context.Context, req FileRunRequest) (*RunResult, error) {
	source, err := s.readLedger(req.SourcePath, recon.OriginSource, s.cfg.Ledgers.Source, true)
	if err != nil {
		return nil, err
	}
	target, err := s.readLedger(req.TargetPath, recon.OriginTarget, s.cfg.Ledgers.Target, false)
	if err != nil {
		return nil, err
	}

	return s.RunRecords(ctx, source, target, req.ReportPath)
}

func (s *ReconService) readLedger(path string, origin recon.Origin, cfg config.LedgerConfig, tokenIdentity bool) ([]recon.TransactionRecord, error) {
	opts := ingest.Options{
		Origin: origin,
		Columns: ingest.ColumnMap{
			Date:        cfg.Columns.Date,
			Amount:      cfg.Columns.Amount,
			Description: cfg.Columns.Description,
			Identity:    cfg.Columns.Identity,
		},
		TokenIdentity: tokenIdentity,
	}
	if tokenIdentity {
		opts.Resolver = s.Resolver()
	}

	ledger, err := ingest.ReadFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s ledger: %w", cfg.Label, err)
	}

	s.logger.Info("loaded ledger",
		"ledger", cfg.Label,
		"records", len(ledger.Records),
		"skipped", ledger.Skipped)
	if ledger.Skipped > 0 {
		s.logger.Warn("dropped rows during normalization",
			"ledger", cfg.Label,
			"skipped", ledger.Skipped)
	}
	return ledger.Records, nil
}

// RunRecords reconciles already-normalized records, persists the run, and
// exports the workbook when reportPath is set.
func (s *ReconService) RunRecords(_ context.Context, source, target []recon.TransactionRecord, reportPath string) (*RunResult, error) {
	engineCfg := s.EngineConfig()
	engine, err := recon.NewEngine(engineCfg)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := engine.Reconcile(source, target)
	if err != nil {
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}
	rows, summary := report.Build(result)

	s.logger.Info("reconciliation completed",
		"matched", summary.MatchedCount,
		"source_only", summary.SourceOnlyCount,
		"target_only", summary.TargetOnlyCount,
		"match_pct", fmt.Sprintf("%.1f", summary.MatchPercentage),
		"duration", time.Since(started).Round(time.Millisecond))

	if reportPath != "" {
		if err := export.WriteReport(reportPath, rows, summary, engineCfg.SourceLabel, engineCfg.TargetLabel); err != nil {
			return nil, err
		}
		s.logger.Info("report written", "path", reportPath)
	}

	run := &storage.ReconRun{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		ToleranceAmount: engineCfg.ToleranceAmount.StringFixed(2),
		ToleranceDays:   engineCfg.ToleranceDays,
		CheckIdentity:   engineCfg.CheckIdentity,
		SourceCount:     summary.SourceCount,
		TargetCount:     summary.TargetCount,
		MatchedCount:    summary.MatchedCount,
		SourceOnlyCount: summary.SourceOnlyCount,
		TargetOnlyCount: summary.TargetOnlyCount,
		MatchPercentage: summary.MatchPercentage,
		ReportPath:      reportPath,
		Rows:            rows,
	}
	if err := s.repo.SaveRun(run); err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	return &RunResult{
		RunID:      run.ID,
		Summary:    summary,
		Rows:       rows,
		ReportPath: reportPath,
	}, nil
}
