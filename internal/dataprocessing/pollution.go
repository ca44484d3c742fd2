package dataprocessing

import (
	"sort"

	"eirstat/internal/county"
)

// normalizePollution pivots long-format emissions rows into one summary per
// (scope, year), sums pollutant totals and computes the 0-100 pollution index.
func (p *Processor) normalizePollution(rows []PollutionRow) []PollutionSummary {
	type scopeYear struct {
		county string
		year   int
	}

	grouped := make(map[scopeYear]map[string]float64)
	scopes := make(map[scopeYear]Scope)

	for _, row := range rows {
		name := county.Normalize(row.County)

		scope := ScopeCounty
		if row.GeographicLevel == "National" || name == "Ireland" {
			scope = ScopeNational
		}

		key := scopeYear{county: name, year: row.Year}
		if grouped[key] == nil {
			grouped[key] = make(map[string]float64)
		}
		grouped[key][row.Pollutant] += row.Value
		scopes[key] = scope
	}

	summaries := make([]PollutionSummary, 0, len(grouped))
	for key, pollutants := range grouped {
		var total float64
		for _, v := range pollutants {
			total += v
		}
		summaries = append(summaries, PollutionSummary{
			Scope:          scopes[key],
			County:         key.county,
			Year:           key.year,
			Pollutants:     pollutants,
			TotalEmissions: total,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].County != summaries[j].County {
			return summaries[i].County < summaries[j].County
		}
		return summaries[i].Year < summaries[j].Year
	})

	applyPollutionIndex(summaries)

	return summaries
}

// applyPollutionIndex normalizes total emissions to [0, 100] relative to the
// observed maximum. A zero maximum leaves every index at 0 rather than
// propagating NaN.
func applyPollutionIndex(summaries []PollutionSummary) {
	var maxEmissions float64
	for _, s := range summaries {
		if s.TotalEmissions > maxEmissions {
			maxEmissions = s.TotalEmissions
		}
	}

	if maxEmissions <= 0 {
		return
	}

	for i := range summaries {
		summaries[i].PollutionIndex = summaries[i].TotalEmissions / maxEmissions * 100
	}
}

// nationalPollution filters summaries down to national-scope rows.
func nationalPollution(summaries []PollutionSummary) []PollutionSummary {
	var national []PollutionSummary
	for _, s := range summaries {
		if s.Scope == ScopeNational {
			national = append(national, s)
		}
	}
	return national
}

// pollutionByYear indexes national pollution summaries by year for broadcast
// joins. Later rows for the same year win, which cannot happen for national
// data (one row per year by construction).
func pollutionByYear(summaries []PollutionSummary) map[int]PollutionSummary {
	byYear := make(map[int]PollutionSummary, len(summaries))
	for _, s := range summaries {
		byYear[s.Year] = s
	}
	return byYear
}
