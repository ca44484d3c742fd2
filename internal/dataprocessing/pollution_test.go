package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePollutionPivot(t *testing.T) {
	p := testProcessor()

	rows := []PollutionRow{
		{County: "Ireland", Year: 2011, Pollutant: "CO2", Value: 30000, GeographicLevel: "National"},
		{County: "Ireland", Year: 2011, Pollutant: "NOx", Value: 10000, GeographicLevel: "National"},
		{County: "Ireland", Year: 2011, Pollutant: "PM2.5", Value: 5000, GeographicLevel: "National"},
		{County: "Ireland", Year: 2022, Pollutant: "CO2", Value: 40000, GeographicLevel: "National"},
		{County: "Ireland", Year: 2022, Pollutant: "NOx", Value: 10000, GeographicLevel: "National"},
	}

	summaries := p.normalizePollution(rows)
	require.Len(t, summaries, 2)

	first := summaries[0]
	assert.Equal(t, ScopeNational, first.Scope)
	assert.Equal(t, 2011, first.Year)
	assert.Equal(t, 45000.0, first.TotalEmissions)
	assert.Equal(t, 30000.0, first.Pollutants["CO2"])

	second := summaries[1]
	assert.Equal(t, 50000.0, second.TotalEmissions)
}

func TestPollutionIndexBounds(t *testing.T) {
	p := testProcessor()

	rows := []PollutionRow{
		{County: "Ireland", Year: 2011, Pollutant: "CO2", Value: 100, GeographicLevel: "National"},
		{County: "Ireland", Year: 2015, Pollutant: "CO2", Value: 250, GeographicLevel: "National"},
		{County: "Ireland", Year: 2022, Pollutant: "CO2", Value: 500, GeographicLevel: "National"},
	}

	summaries := p.normalizePollution(rows)
	require.Len(t, summaries, 3)

	var sawMax bool
	for _, s := range summaries {
		assert.GreaterOrEqual(t, s.PollutionIndex, 0.0)
		assert.LessOrEqual(t, s.PollutionIndex, 100.0)
		if s.TotalEmissions == 500 {
			assert.Equal(t, 100.0, s.PollutionIndex)
			sawMax = true
		}
	}
	assert.True(t, sawMax)
}

func TestPollutionIndexZeroMax(t *testing.T) {
	p := testProcessor()

	rows := []PollutionRow{
		{County: "Ireland", Year: 2011, Pollutant: "CO2", Value: 0, GeographicLevel: "National"},
		{County: "Ireland", Year: 2012, Pollutant: "CO2", Value: 0, GeographicLevel: "National"},
	}

	summaries := p.normalizePollution(rows)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.Equal(t, 0.0, s.PollutionIndex)
	}
}

func TestNormalizePollutionAggregatesDuplicatePollutantRows(t *testing.T) {
	p := testProcessor()

	rows := []PollutionRow{
		{County: "Ireland", Year: 2011, Pollutant: "CO2", Value: 10, GeographicLevel: "National"},
		{County: "Ireland", Year: 2011, Pollutant: "CO2", Value: 15, GeographicLevel: "National"},
	}

	summaries := p.normalizePollution(rows)
	require.Len(t, summaries, 1)
	assert.Equal(t, 25.0, summaries[0].Pollutants["CO2"])
	assert.Equal(t, 25.0, summaries[0].TotalEmissions)
}

func TestNationalPollutionFilter(t *testing.T) {
	summaries := []PollutionSummary{
		{Scope: ScopeNational, County: "Ireland", Year: 2011},
		{Scope: ScopeCounty, County: "Cork", Year: 2011},
	}

	national := nationalPollution(summaries)
	require.Len(t, national, 1)
	assert.Equal(t, "Ireland", national[0].County)
}
