package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityScoreScale(t *testing.T) {
	// The scale is total over the four labels and strictly ordered.
	labels := []string{"Excellent", "Good", "Sufficient", "Poor"}
	var scores []float64
	for _, label := range labels {
		score, ok := QualityScore(label)
		require.True(t, ok, label)
		scores = append(scores, score)
	}

	assert.Equal(t, []float64{4, 3, 2, 1}, scores)
	for i := 1; i < len(scores); i++ {
		assert.Greater(t, scores[i-1], scores[i])
	}

	_, ok := QualityScore("Pristine")
	assert.False(t, ok)
}

func TestNormalizeWaterQualityAggregation(t *testing.T) {
	p := testProcessor()

	rows := []WaterQualityRow{
		{County: "Cork", Year: 2022, Classification: "Excellent", QualityScore: ptr(4)},
		{County: "Dublin", Year: 2022, Classification: "Good", QualityScore: ptr(3)},
		{County: "Cork", Year: 2023, Classification: "Excellent", QualityScore: ptr(4)},
	}

	summaries := p.normalizeWaterQuality(rows)
	require.Len(t, summaries, 3)

	byKey := make(map[[2]interface{}]WaterQualitySummary)
	for _, s := range summaries {
		byKey[[2]interface{}{s.County, s.Year}] = s
	}

	cork2022 := byKey[[2]interface{}{"Cork", 2022}]
	assert.Equal(t, 4.0, cork2022.AvgQualityScore)
	assert.Equal(t, 100.0, cork2022.PercentExcellent)
	assert.Equal(t, 100.0, cork2022.PercentGoodOrBetter)
	assert.Equal(t, 1, cork2022.SitesPerCounty)

	dublin2022 := byKey[[2]interface{}{"Dublin", 2022}]
	assert.Equal(t, 3.0, dublin2022.AvgQualityScore)
	assert.Equal(t, 0.0, dublin2022.PercentExcellent)
	assert.Equal(t, 100.0, dublin2022.PercentGoodOrBetter)
}

func TestNormalizeWaterQualityClassificationFallback(t *testing.T) {
	p := testProcessor()

	// No numeric score: classification label drives the 1-4 scale.
	rows := []WaterQualityRow{
		{County: "Mayo", Year: 2021, Classification: "Sufficient"},
		{County: "Mayo", Year: 2021, Classification: "Poor"},
	}

	summaries := p.normalizeWaterQuality(rows)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1.5, summaries[0].AvgQualityScore)
	assert.Equal(t, 2, summaries[0].SitesPerCounty)
	assert.Equal(t, 0.0, summaries[0].PercentGoodOrBetter)
}

func TestNormalizeWaterQualityFiltersToAnalysisSet(t *testing.T) {
	p := testProcessor()

	rows := []WaterQualityRow{
		{County: "Cork", Year: 2022, Classification: "Excellent"},
		{County: "Ireland", Year: 2022, Classification: "Good"},
		{County: "Narnia", Year: 2022, Classification: "Good"},
	}

	summaries := p.normalizeWaterQuality(rows)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Cork", summaries[0].County)
}

func TestNormalizeWaterQualityNormalizesCountyNames(t *testing.T) {
	p := testProcessor()

	rows := []WaterQualityRow{
		{County: "Co. Cork", Year: 2022, Classification: "Excellent"},
		{County: "Cork County Council", Year: 2022, Classification: "Poor"},
	}

	summaries := p.normalizeWaterQuality(rows)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Cork", summaries[0].County)
	assert.Equal(t, 2.5, summaries[0].AvgQualityScore)
	assert.Equal(t, 50.0, summaries[0].PercentExcellent)
}

func TestNormalizeWaterQualitySkipsUnknownClassification(t *testing.T) {
	p := testProcessor()

	rows := []WaterQualityRow{
		{County: "Cork", Year: 2022, Classification: "Mysterious"},
	}

	assert.Empty(t, p.normalizeWaterQuality(rows))
}
