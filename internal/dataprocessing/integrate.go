package dataprocessing

import "sort"

// The integration engine materializes three join variants over the three
// normalized datasets. Each variant has its own broadcast/merge rule; all
// three share the invariant that national pollution carries no county
// dimension and is broadcast identically into every county row of its year.

// perCapitaScale expresses emissions per capita per thousand inhabitants.
const perCapitaScale = 1000

// integratePollutionVsPopulation joins county census populations with the
// national pollution row of each census year. One national row broadcasts to
// many county rows; county emissions are estimated by population share.
func (p *Processor) integratePollutionVsPopulation(national []PollutionSummary, population []PopulationRecord) []IntegratedRow {
	censusYears := censusYearsOf(population)
	pollution := pollutionByYear(filterYears(national, censusYears))
	popTotals := populationTotalsByYear(population)

	var rows []IntegratedRow
	for _, rec := range population {
		poll, ok := pollution[rec.Year]
		if !ok {
			continue
		}

		row := IntegratedRow{
			County:            rec.County,
			Year:              rec.Year,
			CensusYear:        rec.CensusYear,
			Population:        ptr(rec.Population),
			PopulationDensity: ptr(rec.PopulationDensity),
			PopulationGrowth:  rec.PopulationGrowth,
			TotalEmissions:    ptr(poll.TotalEmissions),
			PollutionIndex:    ptr(poll.PollutionIndex),
			Pollutants:        poll.Pollutants,
		}

		if total, ok := popTotals[rec.Year]; ok && total > 0 {
			row.NationalPopulationTotal = ptr(total)
			row.EmissionsPerCapita = ptr(poll.TotalEmissions / total * perCapitaScale)
			row.EstimatedCountyEmissions = ptr(poll.TotalEmissions * (rec.Population / total))
		}

		rows = append(rows, row)
	}

	return rows
}

// integratePollutionVsWater left-joins water-quality summaries with national
// pollution broadcast by year; the pollution side's county dimension is
// dropped entirely.
func (p *Processor) integratePollutionVsWater(national []PollutionSummary, water []WaterQualitySummary) []IntegratedRow {
	pollution := pollutionByYear(filterYears(national, yearsOf(water)))

	rows := make([]IntegratedRow, 0, len(water))
	for _, w := range water {
		row := waterRow(w)
		if poll, ok := pollution[w.Year]; ok {
			row.TotalEmissions = ptr(poll.TotalEmissions)
			row.PollutionIndex = ptr(poll.PollutionIndex)
			row.Pollutants = poll.Pollutants
		}
		rows = append(rows, row)
	}

	return rows
}

// integrateWaterVsPopulation builds the primary analysis table: water-quality
// rows for counties present in both datasets, the 2022 census population
// carried to every monitoring year, and national pollution broadcast by year.
// The national "Ireland" pseudo-row never enters this table.
func (p *Processor) integrateWaterVsPopulation(water []WaterQualitySummary, population []PopulationRecord, national []PollutionSummary) []IntegratedRow {
	popCounties := make(map[string]bool, len(population))
	for _, rec := range population {
		popCounties[rec.County] = true
	}

	var validCounties []string
	seen := make(map[string]bool)
	for _, w := range water {
		if w.County == "Ireland" || !popCounties[w.County] || seen[w.County] {
			continue
		}
		seen[w.County] = true
		validCounties = append(validCounties, w.County)
	}

	waterYears := yearsOf(water)

	census2022 := make(map[countyYear]float64)
	for _, rec := range population {
		if rec.CensusYear == 2022 {
			census2022[countyYear{County: rec.County, Year: rec.Year}] = rec.Population
		}
	}
	filledPopulation := fillAcrossYears(validCounties, waterYears, census2022)

	pollution := pollutionByYear(filterYears(national, waterYears))
	popTotals := populationTotalsByYear(population)

	var rows []IntegratedRow
	for _, w := range water {
		if !seen[w.County] {
			continue
		}

		row := waterRow(w)

		if pop, ok := filledPopulation[countyYear{County: w.County, Year: w.Year}]; ok {
			row.Population = ptr(pop)
			row.PopulationDensity = ptr(pop / p.counties.Area(w.County))
		}

		var poll PollutionSummary
		havePollution := false
		if poll, havePollution = pollution[w.Year]; havePollution {
			row.TotalEmissions = ptr(poll.TotalEmissions)
			row.PollutionIndex = ptr(poll.PollutionIndex)
			row.Pollutants = poll.Pollutants
		}

		if total, ok := popTotals[w.Year]; ok && total > 0 {
			row.NationalPopulationTotal = ptr(total)
			if havePollution {
				row.EmissionsPerCapita = ptr(poll.TotalEmissions / total * perCapitaScale)
				if row.Population != nil {
					row.EstimatedCountyEmissions = ptr(poll.TotalEmissions * (*row.Population / total))
				}
			}
		}

		rows = append(rows, row)
	}

	return rows
}

func waterRow(w WaterQualitySummary) IntegratedRow {
	return IntegratedRow{
		County:              w.County,
		Year:                w.Year,
		AvgQualityScore:     ptr(w.AvgQualityScore),
		PercentExcellent:    ptr(w.PercentExcellent),
		PercentGoodOrBetter: ptr(w.PercentGoodOrBetter),
		SitesPerCounty:      intPtr(w.SitesPerCounty),
	}
}

func censusYearsOf(population []PopulationRecord) []int {
	seen := make(map[int]bool)
	var years []int
	for _, rec := range population {
		if !seen[rec.CensusYear] {
			seen[rec.CensusYear] = true
			years = append(years, rec.CensusYear)
		}
	}
	sort.Ints(years)
	return years
}

func yearsOf(water []WaterQualitySummary) []int {
	seen := make(map[int]bool)
	var years []int
	for _, w := range water {
		if !seen[w.Year] {
			seen[w.Year] = true
			years = append(years, w.Year)
		}
	}
	sort.Ints(years)
	return years
}

func filterYears(summaries []PollutionSummary, years []int) []PollutionSummary {
	keep := make(map[int]bool, len(years))
	for _, y := range years {
		keep[y] = true
	}

	var out []PollutionSummary
	for _, s := range summaries {
		if keep[s.Year] {
			out = append(out, s)
		}
	}
	return out
}

// populationTotalsByYear sums county populations per year. For 2016 the only
// record is the recovered national total, so the sum degenerates to it.
func populationTotalsByYear(population []PopulationRecord) map[int]float64 {
	totals := make(map[int]float64)
	for _, rec := range population {
		totals[rec.Year] += rec.Population
	}
	return totals
}
