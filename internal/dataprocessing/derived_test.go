package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeNationalGrowthRates(t *testing.T) {
	rows := []IntegratedRow{
		{County: "Cork", Year: 2011, TotalEmissions: ptr(45000), NationalPopulationTotal: ptr(4_500_000)},
		{County: "Dublin", Year: 2011, TotalEmissions: ptr(45000), NationalPopulationTotal: ptr(4_500_000)},
		{County: "Cork", Year: 2022, TotalEmissions: ptr(50000), NationalPopulationTotal: ptr(5_100_000)},
	}

	rates := computeNationalGrowthRates(rows)
	require.NotNil(t, rates.EmissionTotalGrowthPct)
	require.NotNil(t, rates.PopulationTotalGrowthPct)

	assert.InDelta(t, 11.11, *rates.EmissionTotalGrowthPct, 0.01)
	assert.InDelta(t, (5_100_000.0-4_500_000)/4_500_000*100, *rates.PopulationTotalGrowthPct, 1e-9)
	assert.Equal(t, 2011, rates.FirstYear)
	assert.Equal(t, 2022, rates.LastYear)
}

func TestComputeNationalGrowthRatesSingleYear(t *testing.T) {
	rows := []IntegratedRow{
		{County: "Cork", Year: 2022, TotalEmissions: ptr(50000), NationalPopulationTotal: ptr(5_100_000)},
	}

	rates := computeNationalGrowthRates(rows)
	assert.Nil(t, rates.EmissionTotalGrowthPct)
	assert.Nil(t, rates.PopulationTotalGrowthPct)
}

func TestBroadcastGrowthRatesIsConstantAcrossRows(t *testing.T) {
	rows := []IntegratedRow{
		{County: "Cork", Year: 2011},
		{County: "Dublin", Year: 2016},
		{County: "Mayo", Year: 2022},
	}

	rates := NationalGrowthRates{
		PopulationTotalGrowthPct: ptr(8.0),
		EmissionTotalGrowthPct:   ptr(11.11),
	}
	broadcastGrowthRates(rows, rates)

	for _, row := range rows {
		require.NotNil(t, row.NationalEmissionTotalGrowthPct)
		assert.Equal(t, 11.11, *row.NationalEmissionTotalGrowthPct)
		require.NotNil(t, row.NationalPopulationTotalGrowthPct)
		assert.Equal(t, 8.0, *row.NationalPopulationTotalGrowthPct)
	}
}
