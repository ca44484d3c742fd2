package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"eirstat/internal/dataprocessing"
)

// rankedMetrics names the variables that get county rankings.
var rankedMetrics = []string{
	"pollution_index", "avg_quality_score", "population_density", "emissions_per_capita",
}

// analyzeCounties computes per-county means for every available variable and
// ranks counties on the key metrics. Ranking direction follows the variable's
// role tag: for emissions-role metrics a lower value is better and ranks
// first; for every other role a higher value ranks first.
func (a *Analyzer) analyzeCounties(rows []dataprocessing.IntegratedRow, vars []Variable) CountyAnalysis {
	ca := CountyAnalysis{
		Means:    make(map[string]map[string]float64),
		Rankings: make(map[string]map[string]float64),
	}

	byRole := make(map[string]VariableRole, len(vars))
	for _, v := range vars {
		byRole[v.Name] = v.Role
		for county, mean := range countyMeans(rows, v) {
			if ca.Means[county] == nil {
				ca.Means[county] = make(map[string]float64)
			}
			ca.Means[county][v.Name] = mean
		}
	}

	for _, metric := range rankedMetrics {
		means := metricMeans(ca.Means, metric)
		if len(means) == 0 {
			continue
		}
		ascending := byRole[metric] == RoleEmissions
		ca.Rankings[metric] = rank(means, ascending)
	}

	if means := metricMeans(ca.Means, "pollution_index"); len(means) > 0 {
		ca.LowestPollution, ca.HighestPollution = extremes(means)
	}
	if means := metricMeans(ca.Means, "avg_quality_score"); len(means) > 0 {
		ca.WorstWaterQuality, ca.BestWaterQuality = extremes(means)
	}

	return ca
}

func countyMeans(rows []dataprocessing.IntegratedRow, v Variable) map[string]float64 {
	byCounty := make(map[string][]float64)
	for _, row := range rows {
		if x, ok := v.Get(row); ok {
			byCounty[row.County] = append(byCounty[row.County], x)
		}
	}

	out := make(map[string]float64, len(byCounty))
	for county, xs := range byCounty {
		out[county] = stat.Mean(xs, nil)
	}
	return out
}

func metricMeans(means map[string]map[string]float64, metric string) map[string]float64 {
	out := make(map[string]float64)
	for county, m := range means {
		if v, ok := m[metric]; ok {
			out[county] = v
		}
	}
	return out
}

// rank assigns 1-based ranks, averaging ties.
func rank(means map[string]float64, ascending bool) map[string]float64 {
	type entry struct {
		county string
		value  float64
	}
	entries := make([]entry, 0, len(means))
	for county, v := range means {
		entries = append(entries, entry{county, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			if ascending {
				return entries[i].value < entries[j].value
			}
			return entries[i].value > entries[j].value
		}
		return entries[i].county < entries[j].county
	})

	out := make(map[string]float64, len(entries))
	for i := 0; i < len(entries); {
		j := i
		for j < len(entries) && entries[j].value == entries[i].value {
			j++
		}
		// Tied values share the average of the positions they span.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			out[entries[k].county] = avg
		}
		i = j
	}
	return out
}

// extremes returns the counties with the lowest and highest mean.
func extremes(means map[string]float64) (lowest, highest string) {
	first := true
	for county, v := range means {
		if first {
			lowest, highest = county, county
			first = false
			continue
		}
		if v < means[lowest] || (v == means[lowest] && county < lowest) {
			lowest = county
		}
		if v > means[highest] || (v == means[highest] && county < highest) {
			highest = county
		}
	}
	return lowest, highest
}
