package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eirstat/internal/analysis"
	"eirstat/internal/config"
	"eirstat/internal/dataprocessing"
	"eirstat/internal/exporter"
	"eirstat/internal/infrastructure"
	"eirstat/internal/source"
	"eirstat/internal/store"
)

// Application wires the pipeline collaborators together.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Source   source.Source
	Store    store.TableStore
	Process  *dataprocessing.Processor
	Analyzer *analysis.Analyzer
	Exporter *exporter.Exporter
}

// RunSummary reports what a finished run produced.
type RunSummary struct {
	RunID          string        `json:"run_id"`
	Duration       time.Duration `json:"duration"`
	IntegratedRows int           `json:"integrated_rows"`
	Insights       int           `json:"insights"`
}

// NewApplication builds the application from configuration: logger, data
// source, sqlite store, processor, analyzer and exporter.
func NewApplication(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	st, err := store.Open(cfg.Paths.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Source:   source.NewFileSource(cfg.Paths.DataDir, logger),
		Store:    st,
		Process:  dataprocessing.NewProcessor(cfg.Counties, cfg.Analysis, logger),
		Analyzer: analysis.NewAnalyzer(cfg.Analysis, logger),
		Exporter: exporter.NewExporter(cfg.Paths.OutputDir, logger),
	}, nil
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Run executes one pipeline run end to end: collect, persist raw tables,
// process, analyze, persist outputs, export. Stages run in strict order and
// any stage failure marks the run failed; the exported artifacts only exist
// for completed runs.
func (a *Application) Run(ctx context.Context) (*RunSummary, error) {
	runID := uuid.NewString()
	started := time.Now()
	logger := a.Logger.With("run_id", runID)

	if err := a.Store.BeginRun(ctx, runID); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "run started")

	summary, err := a.run(ctx, runID, logger)
	if err != nil {
		if finishErr := a.Store.FinishRun(ctx, runID, store.StatusFailed); finishErr != nil {
			logger.WarnContext(ctx, "failed to mark run failed", "error", finishErr)
		}
		logger.ErrorContext(ctx, "run failed", "error", err)
		return nil, fmt.Errorf("run %s failed: %w", runID, err)
	}

	if err := a.Store.FinishRun(ctx, runID, store.StatusCompleted); err != nil {
		return nil, err
	}

	summary.RunID = runID
	summary.Duration = time.Since(started)
	logger.InfoContext(ctx, "run completed",
		"duration", summary.Duration.String(),
		"integrated_rows", summary.IntegratedRows,
		"insights", summary.Insights)
	return summary, nil
}

func (a *Application) run(ctx context.Context, runID string, logger *slog.Logger) (*RunSummary, error) {
	raw, err := a.Source.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collection failed: %w", err)
	}

	if err := a.saveRawTables(ctx, runID, raw); err != nil {
		return nil, err
	}

	data, err := a.Process.Process(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}

	results, err := a.Analyzer.Analyze(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	if err := a.saveOutputs(ctx, runID, data, results); err != nil {
		return nil, err
	}

	if err := a.Exporter.Export(ctx, runID, results); err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	return &RunSummary{
		IntegratedRows: len(data.Integrated),
		Insights:       len(results.Insights),
	}, nil
}

func (a *Application) saveRawTables(ctx context.Context, runID string, raw dataprocessing.RawTables) error {
	tables := map[string]any{
		"raw_pollution":     raw.Pollution,
		"raw_water_quality": raw.WaterQuality,
		"raw_population":    raw.Population,
	}
	for name, rows := range tables {
		if err := a.Store.SaveTable(ctx, runID, name, rows); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) saveOutputs(ctx context.Context, runID string, data *dataprocessing.ProcessedData, results *analysis.Results) error {
	tables := map[string]any{
		"processed_pollution":     data.Pollution,
		"processed_water_quality": data.WaterQuality,
		"processed_population":    data.Population,
		"integrated":              data.Integrated,
		"pollution_vs_population": data.PollutionVsPopulation,
		"pollution_vs_water":      data.PollutionVsWater,
		"analysis_results":        results,
	}
	for name, rows := range tables {
		if err := a.Store.SaveTable(ctx, runID, name, rows); err != nil {
			return err
		}
	}
	return nil
}
