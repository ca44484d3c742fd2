// Package exporter writes run outputs to the output directory: the full
// results structure as JSON for the reporting collaborator, plus flat CSV
// views of the integrated tables for spreadsheet use.
package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"eirstat/internal/analysis"
	"eirstat/internal/dataprocessing"
)

// Exporter writes analysis outputs under a base directory, one subdirectory
// per run.
type Exporter struct {
	outputDir string
	logger    *slog.Logger
}

// NewExporter creates an exporter rooted at outputDir.
func NewExporter(outputDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{outputDir: outputDir, logger: logger}
}

// Export writes every output file for a run. Files land under
// <outputDir>/<runID>/.
func (e *Exporter) Export(ctx context.Context, runID string, res *analysis.Results) error {
	if res == nil {
		return fmt.Errorf("nothing to export")
	}

	dir := filepath.Join(e.outputDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := e.writeJSON(filepath.Join(dir, "analysis_results.json"), res); err != nil {
		return err
	}

	tables := map[string][]dataprocessing.IntegratedRow{
		"integrated.csv":              res.ProcessedData.Integrated,
		"pollution_vs_population.csv": res.ProcessedData.PollutionVsPopulation,
		"pollution_vs_water.csv":      res.ProcessedData.PollutionVsWater,
	}
	for name, rows := range tables {
		if len(rows) == 0 {
			continue
		}
		if err := e.writeIntegratedCSV(filepath.Join(dir, name), rows); err != nil {
			return err
		}
	}

	e.logger.InfoContext(ctx, "run outputs exported", "run_id", runID, "dir", dir)
	return nil
}

func (e *Exporter) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

var integratedHeaders = []string{
	"county", "year", "census_year",
	"avg_quality_score", "percent_excellent", "percent_good_or_better", "sites_per_county",
	"population", "population_density", "population_growth",
	"total_emissions", "pollution_index",
	"national_population_total", "emissions_per_capita", "estimated_county_emissions",
	"national_population_total_growth_pct", "national_emission_total_growth_pct",
}

func (e *Exporter) writeIntegratedCSV(path string, rows []dataprocessing.IntegratedRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(integratedHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.County,
			strconv.Itoa(row.Year),
			itoaOrEmpty(row.CensusYear),
			floatField(row.AvgQualityScore),
			floatField(row.PercentExcellent),
			floatField(row.PercentGoodOrBetter),
			intField(row.SitesPerCounty),
			floatField(row.Population),
			floatField(row.PopulationDensity),
			floatField(row.PopulationGrowth),
			floatField(row.TotalEmissions),
			floatField(row.PollutionIndex),
			floatField(row.NationalPopulationTotal),
			floatField(row.EmissionsPerCapita),
			floatField(row.EstimatedCountyEmissions),
			floatField(row.NationalPopulationTotalGrowthPct),
			floatField(row.NationalEmissionTotalGrowthPct),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Absent optional fields export as empty cells, never as sentinel values.
func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func itoaOrEmpty(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
