package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"eirstat/internal/dataprocessing"
)

// topGrowingCount bounds the fastest-growing-counties list.
const topGrowingCount = 5

// countyRankingCount bounds the per-county water quality ranking.
const countyRankingCount = 10

func variableByName(vars []Variable, name string) (Variable, bool) {
	for _, v := range vars {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// analyzePollutionVsPopulation works the census-years table: national trend
// points, overall first-to-last changes, per-county changes and the
// population/allocated-emissions correlation.
func (a *Analyzer) analyzePollutionVsPopulation(rows []dataprocessing.IntegratedRow) PollutionVsPopulationAnalysis {
	out := PollutionVsPopulationAnalysis{}
	if len(rows) == 0 {
		return out
	}

	byYear := make(map[int]dataprocessing.IntegratedRow)
	for _, row := range rows {
		if _, seen := byYear[row.Year]; !seen {
			byYear[row.Year] = row
		}
	}
	for year := range byYear {
		out.CensusYears = append(out.CensusYears, year)
	}
	sort.Ints(out.CensusYears)

	for _, year := range out.CensusYears {
		row := byYear[year]
		point := NationalTrendPoint{Year: year}
		if row.TotalEmissions != nil {
			point.TotalEmissions = *row.TotalEmissions
		}
		if row.PollutionIndex != nil {
			point.PollutionIndex = *row.PollutionIndex
		}
		if row.NationalPopulationTotal != nil {
			point.NationalPopulationTotal = *row.NationalPopulationTotal
		}
		out.NationalTrends = append(out.NationalTrends, point)
	}

	if len(out.NationalTrends) >= 2 {
		first := out.NationalTrends[0]
		last := out.NationalTrends[len(out.NationalTrends)-1]
		changes := &OverallChanges{
			YearsSpan: fmt.Sprintf("%d-%d", first.Year, last.Year),
		}
		if first.TotalEmissions != 0 {
			changes.PollutionChangePct = (last.TotalEmissions - first.TotalEmissions) / first.TotalEmissions * 100
		}
		if first.NationalPopulationTotal != 0 {
			changes.PopulationChangePct = (last.NationalPopulationTotal - first.NationalPopulationTotal) / first.NationalPopulationTotal * 100
		}
		out.OverallChanges = changes
	}

	out.CountyChanges = countyChanges(rows)
	if len(out.CountyChanges) > 0 {
		top := make([]CountyChange, len(out.CountyChanges))
		copy(top, out.CountyChanges)
		sort.Slice(top, func(i, j int) bool {
			if top[i].PopulationChangePct != top[j].PopulationChangePct {
				return top[i].PopulationChangePct > top[j].PopulationChangePct
			}
			return top[i].County < top[j].County
		})
		if len(top) > topGrowingCount {
			top = top[:topGrowingCount]
		}
		out.TopGrowingCounties = top
	}

	vars := analysisVariables()
	pop, _ := variableByName(vars, "population")
	est, _ := variableByName(vars, "estimated_county_emissions")
	out.PopulationEmissionsCorrelation = a.correlationBetween(rows, pop, est)

	return out
}

// countyChanges compares each county's first and last census-year figures.
// The national pseudo-county is skipped.
func countyChanges(rows []dataprocessing.IntegratedRow) []CountyChange {
	byCounty := make(map[string][]dataprocessing.IntegratedRow)
	for _, row := range rows {
		if row.County == "Ireland" {
			continue
		}
		byCounty[row.County] = append(byCounty[row.County], row)
	}

	var out []CountyChange
	for county, countyRows := range byCounty {
		if len(countyRows) < 2 {
			continue
		}
		sort.Slice(countyRows, func(i, j int) bool { return countyRows[i].Year < countyRows[j].Year })
		first, last := countyRows[0], countyRows[len(countyRows)-1]

		change := CountyChange{County: county}
		if first.Population != nil && last.Population != nil && *first.Population != 0 {
			change.PopulationChangePct = (*last.Population - *first.Population) / *first.Population * 100
		}
		if first.EstimatedCountyEmissions != nil && last.EstimatedCountyEmissions != nil && *first.EstimatedCountyEmissions != 0 {
			change.EmissionsChangePct = (*last.EstimatedCountyEmissions - *first.EstimatedCountyEmissions) / *first.EstimatedCountyEmissions * 100
		}
		out = append(out, change)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].County < out[j].County })
	return out
}

// analyzePollutionVsWater works the monitoring-years table: annual national
// summaries, the pollution/water correlation, county water rankings and the
// two component trends.
func (a *Analyzer) analyzePollutionVsWater(rows []dataprocessing.IntegratedRow) PollutionVsWaterAnalysis {
	out := PollutionVsWaterAnalysis{}
	if len(rows) == 0 {
		return out
	}

	vars := analysisVariables()
	quality, _ := variableByName(vars, "avg_quality_score")
	goodPct, _ := variableByName(vars, "percent_good_or_better")
	index, _ := variableByName(vars, "pollution_index")

	qualityByYear := annualMeans(rows, quality)
	goodByYear := yearMeanLookup(rows, goodPct)
	out.YearsCovered = qualityByYear.years

	pollutionByYear := make(map[int]dataprocessing.IntegratedRow)
	for _, row := range rows {
		if _, seen := pollutionByYear[row.Year]; !seen && row.PollutionIndex != nil {
			pollutionByYear[row.Year] = row
		}
	}

	for i, year := range qualityByYear.years {
		summary := AnnualWaterSummary{
			Year:            year,
			AvgQualityScore: qualityByYear.means[i],
		}
		if v, ok := goodByYear[year]; ok {
			summary.PercentGoodOrBetter = v
		}
		if row, ok := pollutionByYear[year]; ok {
			summary.PollutionIndex = row.PollutionIndex
			summary.TotalEmissions = row.TotalEmissions
		}
		out.AnnualSummary = append(out.AnnualSummary, summary)
	}

	out.PollutionWaterCorrelation = a.correlationBetween(rows, index, quality)

	rankings := countyMeans(rows, quality)
	for county, score := range rankings {
		out.CountyWaterRankings = append(out.CountyWaterRankings, CountyScore{County: county, Score: score})
	}
	sort.Slice(out.CountyWaterRankings, func(i, j int) bool {
		if out.CountyWaterRankings[i].Score != out.CountyWaterRankings[j].Score {
			return out.CountyWaterRankings[i].Score > out.CountyWaterRankings[j].Score
		}
		return out.CountyWaterRankings[i].County < out.CountyWaterRankings[j].County
	})
	if len(out.CountyWaterRankings) > countyRankingCount {
		out.CountyWaterRankings = out.CountyWaterRankings[:countyRankingCount]
	}
	if n := len(out.CountyWaterRankings); n > 0 {
		out.BestWaterCounty = out.CountyWaterRankings[0].County
		out.WorstWaterCounty = out.CountyWaterRankings[n-1].County
	}

	if res, ok := a.fitTrend(annualMeans(rows, index)); ok {
		out.PollutionTrend = &res
	}
	if res, ok := a.fitTrend(qualityByYear); ok {
		res.Direction = waterDirection(res)
		out.WaterQualityTrend = &res
	}

	return out
}

// waterDirection relabels a fit direction in water quality terms.
func waterDirection(res TrendResult) string {
	switch res.Direction {
	case "increasing":
		return "improving"
	case "decreasing":
		return "declining"
	default:
		return res.Direction
	}
}

func yearMeanLookup(rows []dataprocessing.IntegratedRow, v Variable) map[int]float64 {
	s := annualMeans(rows, v)
	out := make(map[int]float64, len(s.years))
	for i, year := range s.years {
		out[year] = s.means[i]
	}
	return out
}

// analyzePollutionWaterRelationship splits the primary table's rows at the
// median of pollution index and water quality and counts the four quadrants.
func (a *Analyzer) analyzePollutionWaterRelationship(rows []dataprocessing.IntegratedRow) PollutionWaterRelationship {
	out := PollutionWaterRelationship{}

	vars := analysisVariables()
	index, _ := variableByName(vars, "pollution_index")
	quality, _ := variableByName(vars, "avg_quality_score")
	out.Correlation = a.correlationBetween(rows, index, quality)

	xs, ys := pairedValues(rows, index, quality)
	if len(xs) < minSampleSize {
		return out
	}

	pollutionMedian := median(xs)
	qualityMedian := median(ys)

	// Values at the median count as high pollution and good water.
	dist := make(map[string]int, 4)
	for i := range xs {
		pollution := "low_pollution"
		if xs[i] >= pollutionMedian {
			pollution = "high_pollution"
		}
		water := "poor_water"
		if ys[i] >= qualityMedian {
			water = "good_water"
		}
		dist[pollution+"_"+water]++
	}
	out.CategoryDistribution = dist

	return out
}

// analyzePopulationImpact relates population pressure to environmental
// indicators on the primary table. High-growth counties are those whose mean
// growth sits in the top quartile.
func (a *Analyzer) analyzePopulationImpact(rows []dataprocessing.IntegratedRow) PopulationImpact {
	out := PopulationImpact{}

	vars := analysisVariables()
	density, _ := variableByName(vars, "population_density")
	growth, _ := variableByName(vars, "population_growth")
	index, _ := variableByName(vars, "pollution_index")
	est, _ := variableByName(vars, "estimated_county_emissions")
	quality, _ := variableByName(vars, "avg_quality_score")

	out.DensityPollutionCorrelation = a.correlationBetween(rows, density, index)
	out.GrowthEmissionsCorrelation = a.correlationBetween(rows, growth, est)

	growthMeans := countyMeans(rows, growth)
	if len(growthMeans) < 2 {
		return out
	}

	var growthValues []float64
	for _, v := range growthMeans {
		growthValues = append(growthValues, v)
	}
	cutoff := quantile(growthValues, 0.75)

	highGrowth := make(map[string]bool)
	for county, v := range growthMeans {
		if v >= cutoff {
			highGrowth[county] = true
		}
	}
	if len(highGrowth) == 0 || len(highGrowth) == len(growthMeans) {
		return out
	}

	summary := &HighGrowthSummary{Count: len(highGrowth)}
	var pollutionVals, qualityVals []float64
	for _, row := range rows {
		if !highGrowth[row.County] {
			continue
		}
		if v, ok := index.Get(row); ok {
			pollutionVals = append(pollutionVals, v)
		}
		if v, ok := quality.Get(row); ok {
			qualityVals = append(qualityVals, v)
		}
	}
	if len(pollutionVals) > 0 {
		mean := stat.Mean(pollutionVals, nil)
		summary.AvgPollution = &mean
	}
	if len(qualityVals) > 0 {
		mean := stat.Mean(qualityVals, nil)
		summary.AvgWaterQuality = &mean
	}
	out.HighGrowthCounties = summary

	return out
}
