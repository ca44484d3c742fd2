package dataprocessing

import "sort"

// NationalGrowthRates are the two scalar growth rates over the full observed
// span, first vs last year with national totals. They are broadcast as
// constants onto every derived row and feed narrative text, not per-row
// analysis.
type NationalGrowthRates struct {
	PopulationTotalGrowthPct *float64 `json:"national_population_total_growth_pct,omitempty"`
	EmissionTotalGrowthPct   *float64 `json:"national_emission_total_growth_pct,omitempty"`
	FirstYear                int      `json:"first_year"`
	LastYear                 int      `json:"last_year"`
}

// computeNationalGrowthRates derives the span growth rates from rows that
// carry both a national population total and national emissions.
func computeNationalGrowthRates(rows []IntegratedRow) NationalGrowthRates {
	type yearTotals struct {
		population float64
		emissions  float64
	}

	byYear := make(map[int]yearTotals)
	var years []int
	for _, row := range rows {
		if row.NationalPopulationTotal == nil || row.TotalEmissions == nil {
			continue
		}
		if _, seen := byYear[row.Year]; !seen {
			years = append(years, row.Year)
			byYear[row.Year] = yearTotals{
				population: *row.NationalPopulationTotal,
				emissions:  *row.TotalEmissions,
			}
		}
	}

	var rates NationalGrowthRates
	if len(years) < 2 {
		return rates
	}
	sort.Ints(years)

	first, last := byYear[years[0]], byYear[years[len(years)-1]]
	rates.FirstYear, rates.LastYear = years[0], years[len(years)-1]

	if first.population != 0 {
		rates.PopulationTotalGrowthPct = ptr((last.population - first.population) / first.population * 100)
	}
	if first.emissions != 0 {
		rates.EmissionTotalGrowthPct = ptr((last.emissions - first.emissions) / first.emissions * 100)
	}

	return rates
}

// broadcastGrowthRates stamps the constant national growth rates onto every
// row of a derived table.
func broadcastGrowthRates(rows []IntegratedRow, rates NationalGrowthRates) {
	for i := range rows {
		rows[i].NationalPopulationTotalGrowthPct = rates.PopulationTotalGrowthPct
		rows[i].NationalEmissionTotalGrowthPct = rates.EmissionTotalGrowthPct
	}
}
