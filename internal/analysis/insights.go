package analysis

import (
	"fmt"
	"math"
	"sort"
)

// generateInsights scans the finished results for the headline findings:
// correlations over the configured threshold, significant trends and the
// county extremes. Keys are stable so reports can address them directly.
func (a *Analyzer) generateInsights(res *Results) map[string]string {
	insights := make(map[string]string)

	for i, finding := range a.strongCorrelations(res.Correlations.Overall) {
		insights[fmt.Sprintf("correlation_%d", i+1)] = finding
	}

	for name, trend := range res.Trends.TrendStrength {
		if !trend.Significant || math.Abs(trend.Slope) <= slopeFloor {
			continue
		}
		insights["trend_"+name] = fmt.Sprintf(
			"%s shows a %s %s trend (slope %.3f per year)",
			name, trend.Strength, trend.Direction, trend.Slope)
	}

	if res.CountyAnalysis.BestWaterQuality != "" {
		insights["best_water_quality"] = fmt.Sprintf(
			"%s records the highest average bathing water quality", res.CountyAnalysis.BestWaterQuality)
	}
	if res.CountyAnalysis.WorstWaterQuality != "" {
		insights["worst_water_quality"] = fmt.Sprintf(
			"%s records the lowest average bathing water quality", res.CountyAnalysis.WorstWaterQuality)
	}
	if res.CountyAnalysis.HighestPollution != "" {
		insights["highest_pollution"] = fmt.Sprintf(
			"%s carries the highest average pollution index", res.CountyAnalysis.HighestPollution)
	}

	if oc := res.PollutionVsPopulation.OverallChanges; oc != nil {
		insights["national_changes"] = fmt.Sprintf(
			"over %s national population changed %.1f%% while emissions changed %.1f%%",
			oc.YearsSpan, oc.PopulationChangePct, oc.PollutionChangePct)
	}

	if hg := res.PopulationImpact.HighGrowthCounties; hg != nil && hg.AvgWaterQuality != nil {
		insights["high_growth_water"] = fmt.Sprintf(
			"the %d fastest-growing counties average a water quality score of %.2f",
			hg.Count, *hg.AvgWaterQuality)
	}

	return insights
}

// strongCorrelations lists matrix cells whose coefficient clears the
// configured threshold, each pair once, ordered by descending magnitude.
// Magnitude alone qualifies; significance is reported but not required.
func (a *Analyzer) strongCorrelations(m CorrelationMatrix) []string {
	type pair struct {
		left, right string
		res         CorrelationResult
	}
	var pairs []pair
	seen := make(map[string]bool)

	for left, row := range m.Cells {
		for right, res := range row {
			key := left + "|" + right
			if left > right {
				key = right + "|" + left
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			if math.Abs(res.Coefficient) > a.cfg.CorrelationThreshold {
				pairs = append(pairs, pair{left, right, res})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].res.Coefficient), math.Abs(pairs[j].res.Coefficient)
		if ai != aj {
			return ai > aj
		}
		return pairs[i].left+pairs[i].right < pairs[j].left+pairs[j].right
	})

	var out []string
	for _, p := range pairs {
		out = append(out, fmt.Sprintf("%s correlation between %s and %s (r=%.2f, p=%.4f)",
			p.res.Interpretation, p.left, p.right, p.res.Coefficient, p.res.PValue))
	}
	return out
}
