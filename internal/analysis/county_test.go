package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankAveragesTies(t *testing.T) {
	means := map[string]float64{"A": 1, "B": 2, "C": 2, "D": 5}

	asc := rank(means, true)
	assert.Equal(t, 1.0, asc["A"])
	assert.Equal(t, 2.5, asc["B"])
	assert.Equal(t, 2.5, asc["C"])
	assert.Equal(t, 4.0, asc["D"])

	desc := rank(means, false)
	assert.Equal(t, 1.0, desc["D"])
	assert.Equal(t, 2.5, desc["B"])
	assert.Equal(t, 2.5, desc["C"])
	assert.Equal(t, 4.0, desc["A"])
}

func TestExtremes(t *testing.T) {
	lowest, highest := extremes(map[string]float64{"Cork": 3.8, "Dublin": 2.9, "Kerry": 3.4})
	assert.Equal(t, "Dublin", lowest)
	assert.Equal(t, "Cork", highest)
}

func TestAnalyzeCounties(t *testing.T) {
	a := testAnalyzer()
	rows := integratedFixture()
	vars := availableVariables(rows, analysisVariables())

	ca := a.analyzeCounties(rows, vars)

	require.Contains(t, ca.Means, "Cork")
	assert.InDelta(t, 3.875, ca.Means["Cork"]["avg_quality_score"], 1e-9)
	assert.InDelta(t, 85, ca.Means["Cork"]["pollution_index"], 1e-9)

	assert.Equal(t, "Cork", ca.BestWaterQuality)
	assert.Equal(t, "Dublin", ca.WorstWaterQuality)

	// All counties share the broadcast index, so they tie.
	index := ca.Rankings["pollution_index"]
	require.Len(t, index, 3)
	assert.Equal(t, 2.0, index["Cork"])
	assert.Equal(t, 2.0, index["Dublin"])

	// Density ranks descending: higher density ranks first.
	density := ca.Rankings["population_density"]
	assert.Equal(t, 1.0, density["Dublin"])
	assert.Equal(t, 3.0, density["Kerry"])
}

func TestAnalyzeCountiesRankingDirectionFollowsRole(t *testing.T) {
	a := testAnalyzer()
	rows := integratedFixture()

	// Give the counties distinct per-capita emissions through the estimated
	// allocation so the emissions-role ranking has something to order.
	for i := range rows {
		rows[i].EmissionsPerCapita = fptr(*rows[i].PopulationDensity / 10)
	}
	vars := availableVariables(rows, analysisVariables())

	ca := a.analyzeCounties(rows, vars)

	perCapita := ca.Rankings["emissions_per_capita"]
	require.Len(t, perCapita, 3)
	// Emissions-role metric: the lowest emitter ranks first.
	assert.Equal(t, 1.0, perCapita["Kerry"])
	assert.Equal(t, 3.0, perCapita["Dublin"])
}
