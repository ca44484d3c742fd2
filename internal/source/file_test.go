package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestCollectAllDatasets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pollution.csv",
		"county,year,pollutant,value,geographic_level\n"+
			"Ireland,2022,CO2,40000,National\n"+
			"Ireland,2022,NOx,10000,National\n")
	writeFile(t, dir, "water_quality.csv",
		"site_code,county,year,classification,quality_score\n"+
			"IEWEBWC010,Cork,2022,Excellent,4\n"+
			"IEWEBWC011,Cork,2022,Good,\n")
	writeFile(t, dir, "population.csv",
		"county,year,census_year,statistic,population\n"+
			"Cork,2022,2022,Population per County,\"584,156\"\n")

	src := NewFileSource(dir, nil)
	raw, err := src.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, raw.Pollution, 2)
	assert.Equal(t, "CO2", raw.Pollution[0].Pollutant)
	assert.Equal(t, 40000.0, raw.Pollution[0].Value)
	assert.Equal(t, "National", raw.Pollution[0].GeographicLevel)

	require.Len(t, raw.WaterQuality, 2)
	require.NotNil(t, raw.WaterQuality[0].QualityScore)
	assert.Equal(t, 4.0, *raw.WaterQuality[0].QualityScore)
	assert.Nil(t, raw.WaterQuality[1].QualityScore, "missing score stays absent")

	require.Len(t, raw.Population, 1)
	assert.Equal(t, 584156.0, raw.Population[0].Population, "thousand separators are stripped")
	assert.Equal(t, 2022, raw.Population[0].CensusYear)
}

func TestCollectHeaderOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pollution.csv",
		"value,pollutant,county,year\n"+
			"123.5,SOx,Dublin,2021\n")

	src := NewFileSource(dir, nil)
	raw, err := src.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, raw.Pollution, 1)
	assert.Equal(t, "Dublin", raw.Pollution[0].County)
	assert.Equal(t, 123.5, raw.Pollution[0].Value)
	assert.Empty(t, raw.Pollution[0].GeographicLevel)
}

func TestCollectMissingDatasetIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pollution.csv",
		"county,year,pollutant,value\nIreland,2022,CO2,40000\n")

	src := NewFileSource(dir, nil)
	raw, err := src.Collect(context.Background())
	require.NoError(t, err)

	assert.Len(t, raw.Pollution, 1)
	assert.Empty(t, raw.WaterQuality)
	assert.Empty(t, raw.Population)
}

func TestCollectNoDatasets(t *testing.T) {
	src := NewFileSource(t.TempDir(), nil)

	_, err := src.Collect(context.Background())
	assert.Error(t, err)
}

func TestCollectBadRowFailsItsDataset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pollution.csv",
		"county,year,pollutant,value\nIreland,not-a-year,CO2,40000\n")
	writeFile(t, dir, "water_quality.csv",
		"county,year,classification\nCork,2022,Excellent\n")

	src := NewFileSource(dir, nil)
	raw, err := src.Collect(context.Background())
	require.NoError(t, err)

	assert.Empty(t, raw.Pollution, "malformed dataset is dropped whole")
	assert.Len(t, raw.WaterQuality, 1)
}

func TestPopulationCensusYearDefaultsToYear(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "population.csv",
		"county,year,statistic,population\nCork,2011,Population,519032\n")

	src := NewFileSource(dir, nil)
	raw, err := src.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, raw.Population, 1)
	assert.Equal(t, 2011, raw.Population[0].CensusYear)
}
