package dataprocessing

import (
	"sort"

	"eirstat/internal/county"
)

// statisticPopulationPerCounty labels the authoritative per-county census
// figure in the 2022 dataset; earlier censuses are rewritten to it once the
// official record has been selected.
const statisticPopulationPerCounty = "Population per County"

// normalizePopulation selects the authoritative per-county figure for each
// census year from a noisy raw dump, merges split administrative records and
// computes density and growth metrics. An empty result means no county-level
// population could be recovered; the caller logs and skips the dataset.
func (p *Processor) normalizePopulation(rows []PopulationRow) []PopulationRecord {
	normalized := make([]PopulationRow, len(rows))
	for i, row := range rows {
		row.County = county.Normalize(row.County)
		normalized[i] = row
	}

	var selected []PopulationRow
	selected = append(selected, selectCensus2022(normalized)...)
	if total, ok := p.selectCensus2016Total(normalized); ok {
		selected = append(selected, total)
	}
	selected = append(selected, p.selectCensus2011(normalized)...)

	if len(selected) == 0 {
		p.logger.Warn("no county-level population data found")
		return nil
	}

	selected = aggregateSplitRecords(selected)

	sort.Slice(selected, func(i, j int) bool {
		if selected[i].County != selected[j].County {
			return selected[i].County < selected[j].County
		}
		return selected[i].Year < selected[j].Year
	})

	return p.deriveGrowthMetrics(selected)
}

// selectCensus2022 keeps the direct county-level figures from the 2022
// census, excluding the national aggregate.
func selectCensus2022(rows []PopulationRow) []PopulationRow {
	var out []PopulationRow
	for _, row := range rows {
		if row.CensusYear == 2022 && row.Statistic == statisticPopulationPerCounty && row.County != "Ireland" {
			out = append(out, row)
		}
	}
	return out
}

// selectCensus2016Total recovers the 2016 national total. It is not
// published directly; the official figure travels inside the 2011 census
// response as an Ireland-level record identified only by falling in the
// configured numeric range. Brittle, and flagged as such: replace with an
// authoritative source when one exists.
func (p *Processor) selectCensus2016Total(rows []PopulationRow) (PopulationRow, bool) {
	for _, row := range rows {
		if row.CensusYear != 2011 || row.County != "Ireland" || row.Statistic != "Population" {
			continue
		}
		if row.Population > p.analysis.Census2016TotalMin && row.Population < p.analysis.Census2016TotalMax {
			row.Year = 2016
			row.CensusYear = 2016
			row.Statistic = statisticPopulationPerCounty
			return row, true
		}
	}
	return PopulationRow{}, false
}

// selectCensus2011 picks the official 2011 count per county. The source
// carries six "Population" rows per county at different estimate horizons;
// the official count is the second-highest value, falling back to the
// highest when a county has a single row. A fragile heuristic inherited
// from the provider's response shape.
func (p *Processor) selectCensus2011(rows []PopulationRow) []PopulationRow {
	perCounty := make(map[string][]PopulationRow)
	var order []string

	for _, row := range rows {
		if row.CensusYear != 2011 || row.Statistic != "Population" || row.County == "Ireland" {
			continue
		}
		if _, seen := perCounty[row.County]; !seen {
			order = append(order, row.County)
		}
		perCounty[row.County] = append(perCounty[row.County], row)
	}

	var out []PopulationRow
	for _, name := range order {
		candidates := perCounty[name]
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].Population > candidates[j].Population
		})

		official := candidates[0]
		if len(candidates) >= 2 {
			official = candidates[1]
		}
		official.Statistic = statisticPopulationPerCounty
		out = append(out, official)
	}

	if len(out) > 0 {
		p.logger.Info("selected 2011 census counts",
			"counties", len(out),
		)
	}

	return out
}

// aggregateSplitRecords folds split city/county administrations into analytic
// counties, per census year. Years whose records already arrive at the
// analytic grain pass through untouched.
func aggregateSplitRecords(rows []PopulationRow) []PopulationRow {
	byYear := make(map[int][]PopulationRow)
	var years []int
	for _, row := range rows {
		if _, seen := byYear[row.Year]; !seen {
			years = append(years, row.Year)
		}
		byYear[row.Year] = append(byYear[row.Year], row)
	}
	sort.Ints(years)

	var out []PopulationRow
	for _, year := range years {
		group := byYear[year]

		names := make([]string, len(group))
		for i, row := range group {
			names[i] = row.County
		}

		if !county.HasSplitRecords(names) {
			out = append(out, group...)
			continue
		}

		figures := make([]county.PopulationFigure, len(group))
		for i, row := range group {
			figures[i] = county.PopulationFigure{County: row.County, Population: row.Population}
		}

		template := group[0]
		for _, fig := range county.Aggregate(figures) {
			merged := template
			merged.County = fig.County
			merged.Population = fig.Population
			out = append(out, merged)
		}
	}

	return out
}

// deriveGrowthMetrics computes density and growth fields over rows sorted by
// (county, year). Growth for a county's first recorded year stays nil.
func (p *Processor) deriveGrowthMetrics(rows []PopulationRow) []PopulationRecord {
	records := make([]PopulationRecord, 0, len(rows))

	var prev *PopulationRecord
	var firstPopulation float64

	for _, row := range rows {
		rec := PopulationRecord{
			County:            row.County,
			Year:              row.Year,
			CensusYear:        row.CensusYear,
			Population:        row.Population,
			PopulationDensity: row.Population / p.counties.Area(row.County),
		}

		if prev != nil && prev.County == rec.County {
			if prev.Population != 0 {
				rec.PopulationGrowth = ptr((rec.Population - prev.Population) / prev.Population * 100)
			}
			if firstPopulation != 0 {
				rec.PopulationGrowthTotal = (rec.Population - firstPopulation) / firstPopulation * 100
			}
		} else {
			firstPopulation = rec.Population
		}

		records = append(records, rec)
		prev = &records[len(records)-1]
	}

	return records
}
