package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"eirstat/internal/dataprocessing"
)

// File names expected under the data directory.
const (
	pollutionFile  = "pollution.csv"
	waterFile      = "water_quality.csv"
	populationFile = "population.csv"
)

// FileSource reads the raw datasets from CSV files in a directory. Columns
// are matched by header name, so column order does not matter. A file that is
// missing or unreadable only costs its own dataset.
type FileSource struct {
	dir    string
	logger *slog.Logger
}

// NewFileSource creates a source over the given directory.
func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{dir: dir, logger: logger}
}

// Collect reads every dataset it can find. Only the complete absence of all
// three files is an error.
func (f *FileSource) Collect(ctx context.Context) (dataprocessing.RawTables, error) {
	var raw dataprocessing.RawTables
	found := 0

	if rows, err := readCSV(filepath.Join(f.dir, pollutionFile), parsePollutionRow); err != nil {
		f.logger.WarnContext(ctx, "skipping pollution dataset", "error", err)
	} else {
		raw.Pollution = rows
		found++
	}

	if rows, err := readCSV(filepath.Join(f.dir, waterFile), parseWaterRow); err != nil {
		f.logger.WarnContext(ctx, "skipping water quality dataset", "error", err)
	} else {
		raw.WaterQuality = rows
		found++
	}

	if rows, err := readCSV(filepath.Join(f.dir, populationFile), parsePopulationRow); err != nil {
		f.logger.WarnContext(ctx, "skipping population dataset", "error", err)
	} else {
		raw.Population = rows
		found++
	}

	if found == 0 {
		return raw, fmt.Errorf("no datasets found in %s", f.dir)
	}

	f.logger.InfoContext(ctx, "raw datasets collected",
		"pollution_rows", len(raw.Pollution),
		"water_rows", len(raw.WaterQuality),
		"population_rows", len(raw.Population))
	return raw, nil
}

// record gives parsers header-keyed access to one CSV line.
type record struct {
	columns map[string]int
	fields  []string
}

func (r record) str(name string) string {
	if i, ok := r.columns[name]; ok && i < len(r.fields) {
		return strings.TrimSpace(r.fields[i])
	}
	return ""
}

func (r record) float(name string) (float64, error) {
	s := r.str(name)
	if s == "" {
		return 0, fmt.Errorf("column %q is empty", name)
	}
	// Source exports thousand-separate large figures.
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}

func (r record) int(name string) (int, error) {
	v, err := r.float(name)
	return int(v), err
}

func readCSV[T any](path string, parse func(record) (T, error)) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var out []T
	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read %s line %d: %w", path, line, err)
		}

		row, err := parse(record{columns: columns, fields: fields})
		if err != nil {
			return nil, fmt.Errorf("bad row at %s line %d: %w", path, line, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parsePollutionRow(r record) (dataprocessing.PollutionRow, error) {
	year, err := r.int("year")
	if err != nil {
		return dataprocessing.PollutionRow{}, err
	}
	value, err := r.float("value")
	if err != nil {
		return dataprocessing.PollutionRow{}, err
	}
	return dataprocessing.PollutionRow{
		County:          r.str("county"),
		Year:            year,
		Pollutant:       r.str("pollutant"),
		Value:           value,
		GeographicLevel: r.str("geographic_level"),
	}, nil
}

func parseWaterRow(r record) (dataprocessing.WaterQualityRow, error) {
	year, err := r.int("year")
	if err != nil {
		return dataprocessing.WaterQualityRow{}, err
	}
	row := dataprocessing.WaterQualityRow{
		SiteCode:       r.str("site_code"),
		County:         r.str("county"),
		Year:           year,
		Classification: r.str("classification"),
	}
	if r.str("quality_score") != "" {
		score, err := r.float("quality_score")
		if err != nil {
			return dataprocessing.WaterQualityRow{}, err
		}
		row.QualityScore = &score
	}
	return row, nil
}

func parsePopulationRow(r record) (dataprocessing.PopulationRow, error) {
	year, err := r.int("year")
	if err != nil {
		return dataprocessing.PopulationRow{}, err
	}
	censusYear := year
	if r.str("census_year") != "" {
		censusYear, err = r.int("census_year")
		if err != nil {
			return dataprocessing.PopulationRow{}, err
		}
	}
	population, err := r.float("population")
	if err != nil {
		return dataprocessing.PopulationRow{}, err
	}
	return dataprocessing.PopulationRow{
		County:     r.str("county"),
		Year:       year,
		CensusYear: censusYear,
		Statistic:  r.str("statistic"),
		Population: population,
	}, nil
}
