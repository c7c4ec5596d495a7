package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/ruleone/internal/domain"
	"github.com/aristath/ruleone/internal/events"
	"github.com/aristath/ruleone/internal/modules/analysis"
	"github.com/aristath/ruleone/internal/modules/universe"
)

// ValuationRefreshJob re-runs the valuation engine over every active
// security and persists the results. Typically scheduled nightly, after
// fresh fundamentals have been ingested.
type ValuationRefreshJob struct {
	log        zerolog.Logger
	securities *universe.SecurityRepository
	financials *universe.FinancialsRepository
	snapshots  *analysis.SnapshotRepository
	service    *analysis.Service
	tracker    *RefreshTracker
	events     *events.Manager
}

// ValuationRefreshConfig holds the job dependencies
type ValuationRefreshConfig struct {
	Log        zerolog.Logger
	Securities *universe.SecurityRepository
	Financials *universe.FinancialsRepository
	Snapshots  *analysis.SnapshotRepository
	Service    *analysis.Service
	Tracker    *RefreshTracker
	Events     *events.Manager
}

// NewValuationRefreshJob creates a new refresh job
func NewValuationRefreshJob(cfg ValuationRefreshConfig) *ValuationRefreshJob {
	return &ValuationRefreshJob{
		log:        cfg.Log.With().Str("job", "valuation_refresh").Logger(),
		securities: cfg.Securities,
		financials: cfg.Financials,
		snapshots:  cfg.Snapshots,
		service:    cfg.Service,
		tracker:    cfg.Tracker,
		events:     cfg.Events,
	}
}

// Name returns the job name
func (j *ValuationRefreshJob) Name() string {
	return "valuation_refresh"
}

// Run refreshes all active securities. Per-security failures are counted
// and logged but do not abort the batch; only a failure to even list the
// universe fails the run.
func (j *ValuationRefreshJob) Run() error {
	securities, err := j.securities.ListActive()
	if err != nil {
		j.tracker.FailRun(err.Error())
		j.events.Emit(events.RefreshRunFailed, "scheduler", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to list securities: %w", err)
	}

	progress, ok := j.tracker.StartRun(len(securities))
	if !ok {
		j.log.Warn().Msg("Refresh already running, skipping")
		return nil
	}

	j.events.Emit(events.RefreshRunStarted, "scheduler", map[string]interface{}{
		"total": len(securities),
	})
	j.log.Info().Int("total", len(securities)).Msg("Starting valuation refresh")
	startTime := time.Now()

	updated, failed := 0, 0
	for i, sec := range securities {
		if err := j.refreshOne(&sec); err != nil {
			failed++
			j.log.Warn().Err(err).Str("symbol", sec.Symbol).Msg("Failed to refresh security")
		} else {
			updated++
		}

		progress <- ProgressUpdate{
			Processed: i + 1,
			Total:     len(securities),
			Updated:   updated,
			Failed:    failed,
			Symbol:    sec.Symbol,
		}
	}

	j.tracker.CompleteRun()
	j.events.Emit(events.RefreshRunCompleted, "scheduler", map[string]interface{}{
		"updated": updated,
		"failed":  failed,
	})
	j.log.Info().
		Int("updated", updated).
		Int("failed", failed).
		Dur("duration", time.Since(startTime)).
		Msg("Valuation refresh complete")

	return nil
}

func (j *ValuationRefreshJob) refreshOne(sec *domain.Security) error {
	records, err := j.financials.GetBySymbol(sec.Symbol)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no financial data for %s", sec.Symbol)
	}

	result, err := j.service.Evaluate(analysis.Input{
		Symbol:       sec.Symbol,
		Sector:       sec.Sector,
		Records:      records,
		CurrentPrice: sec.CurrentPrice,
		HistoricalPE: sec.HistoricalPE,
	})
	if err != nil {
		return err
	}

	if err := j.snapshots.Save(result, time.Now().UTC()); err != nil {
		return err
	}
	return j.securities.UpdateValuation(sec.Symbol, result)
}
