package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"eirstat/internal/config"
	"eirstat/internal/dataprocessing"
)

// Analyzer runs the statistical pass over processed tables. It only reads its
// input; every table in ProcessedData stays untouched.
type Analyzer struct {
	cfg    config.AnalysisConfig
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer with the given thresholds.
func NewAnalyzer(cfg config.AnalysisConfig, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{cfg: cfg, logger: logger}
}

// Analyze computes every analysis over the processed tables and returns the
// canonical results structure. An empty primary table is an error; sparse
// data inside it is not, the affected statistics are simply omitted.
func (a *Analyzer) Analyze(ctx context.Context, data *dataprocessing.ProcessedData) (*Results, error) {
	if data == nil {
		return nil, fmt.Errorf("no processed data to analyze")
	}
	if len(data.Integrated) == 0 && len(data.PollutionVsPopulation) == 0 && len(data.PollutionVsWater) == 0 {
		return nil, fmt.Errorf("no integrated tables to analyze")
	}

	primary := data.Integrated
	vars := availableVariables(primary, analysisVariables())
	a.logger.InfoContext(ctx, "starting statistical analysis",
		"integrated_rows", len(primary),
		"variables", len(vars))

	res := &Results{ProcessedData: *data}

	res.Correlations = Correlations{
		Overall:               a.correlationMatrix(primary, vars),
		PollutionWater:        a.correlationMatrix(primary, variablesByRole(vars, RoleEmissions, RoleWaterQuality)),
		PopulationEnvironment: a.correlationMatrix(primary, variablesByRole(vars, RolePopulation, RoleEmissions, RoleWaterQuality)),
	}

	res.Trends = a.analyzeTrends(primary, vars)
	res.Statistics = a.runStatisticalTests(primary, vars)
	res.CountyAnalysis = a.analyzeCounties(primary, vars)

	res.PollutionVsPopulation = a.analyzePollutionVsPopulation(data.PollutionVsPopulation)
	res.PollutionVsWater = a.analyzePollutionVsWater(data.PollutionVsWater)
	res.PollutionWaterRelationship = a.analyzePollutionWaterRelationship(primary)
	res.PopulationImpact = a.analyzePopulationImpact(primary)

	res.Insights = a.generateInsights(res)

	a.logger.InfoContext(ctx, "statistical analysis complete",
		"correlations", len(res.Correlations.Overall.Cells),
		"significant_trends", len(res.Trends.SignificantTrendsSummary),
		"insights", len(res.Insights))

	return res, nil
}
