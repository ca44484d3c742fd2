package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"eirstat/internal/config"
)

// RawTables is the contract with the data-source collaborator: three raw
// tables of the fixed minimal schema.
type RawTables struct {
	Pollution    []PollutionRow    `json:"pollution"`
	WaterQuality []WaterQualityRow `json:"water_quality"`
	Population   []PopulationRow   `json:"population"`
}

// Processor reconciles the three raw datasets into the analysis-ready tables.
// All stages are pure transformations over their inputs; the returned tables
// are written once and must not be mutated by callers.
type Processor struct {
	counties config.CountiesConfig
	analysis config.AnalysisConfig
	logger   *slog.Logger
}

// NewProcessor creates a processor with the given configuration.
func NewProcessor(counties config.CountiesConfig, analysis config.AnalysisConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		counties: counties,
		analysis: analysis,
		logger:   logger,
	}
}

// Process runs the full reconciliation: per-source normalization, identity
// resolution, the three integration variants and the derived national growth
// metrics. Stages run strictly in that order; a dataset that cannot be
// normalized is logged and skipped, leaving its fields absent downstream.
func (p *Processor) Process(ctx context.Context, raw RawTables) (*ProcessedData, error) {
	if len(raw.Pollution) == 0 && len(raw.WaterQuality) == 0 && len(raw.Population) == 0 {
		return nil, fmt.Errorf("no raw data to process")
	}

	p.logger.InfoContext(ctx, "processing raw datasets",
		"pollution_rows", len(raw.Pollution),
		"water_quality_rows", len(raw.WaterQuality),
		"population_rows", len(raw.Population),
	)

	data := &ProcessedData{}

	data.Pollution = p.normalizePollution(raw.Pollution)
	if len(data.Pollution) == 0 {
		p.logger.WarnContext(ctx, "pollution dataset produced no summaries")
	}

	data.WaterQuality = p.normalizeWaterQuality(raw.WaterQuality)
	if len(data.WaterQuality) == 0 {
		p.logger.WarnContext(ctx, "water quality dataset produced no summaries")
	}

	data.Population = p.normalizePopulation(raw.Population)
	if len(data.Population) == 0 {
		p.logger.WarnContext(ctx, "population dataset produced no records")
	}

	national := nationalPollution(data.Pollution)
	if len(national) == 0 {
		p.logger.WarnContext(ctx, "no national-scope pollution rows; broadcast joins will carry no emissions")
	}

	data.PollutionVsPopulation = p.integratePollutionVsPopulation(national, data.Population)
	data.PollutionVsWater = p.integratePollutionVsWater(national, data.WaterQuality)
	data.Integrated = p.integrateWaterVsPopulation(data.WaterQuality, data.Population, national)

	rates := computeNationalGrowthRates(data.PollutionVsPopulation)
	broadcastGrowthRates(data.PollutionVsPopulation, rates)
	broadcastGrowthRates(data.Integrated, rates)

	p.logger.InfoContext(ctx, "data processing complete",
		"pollution_summaries", len(data.Pollution),
		"water_quality_summaries", len(data.WaterQuality),
		"population_records", len(data.Population),
		"integrated_rows", len(data.Integrated),
		"pollution_vs_population_rows", len(data.PollutionVsPopulation),
		"pollution_vs_water_rows", len(data.PollutionVsWater),
	)

	return data, nil
}
