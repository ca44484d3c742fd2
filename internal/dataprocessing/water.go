package dataprocessing

import (
	"sort"

	"eirstat/internal/county"
)

// classificationScores maps water-quality classification labels onto the
// 1-4 numeric scale used when a source publishes no numeric score.
var classificationScores = map[string]float64{
	"Excellent":  4,
	"Good":       3,
	"Sufficient": 2,
	"Poor":       1,
}

// QualityScore resolves the numeric score for a classification label.
// The boolean is false for labels outside the fixed scale.
func QualityScore(classification string) (float64, bool) {
	score, ok := classificationScores[classification]
	return score, ok
}

// normalizeWaterQuality cleans bathing-water observations, restricts them to
// the analysis county set and aggregates them per (county, year).
func (p *Processor) normalizeWaterQuality(rows []WaterQualityRow) []WaterQualitySummary {
	type countyYear struct {
		county string
		year   int
	}

	type accumulator struct {
		scoreSum     float64
		excellentN   int
		goodOrBetter int
		sites        int
	}

	grouped := make(map[countyYear]*accumulator)

	for _, row := range rows {
		name := county.Normalize(row.County)
		if !p.counties.InAnalysisSet(name) {
			continue
		}

		var score float64
		if row.QualityScore != nil {
			score = *row.QualityScore
		} else {
			mapped, ok := QualityScore(row.Classification)
			if !ok {
				p.logger.Warn("unknown water quality classification, skipping observation",
					"county", name,
					"year", row.Year,
					"classification", row.Classification,
				)
				continue
			}
			score = mapped
		}

		key := countyYear{county: name, year: row.Year}
		acc := grouped[key]
		if acc == nil {
			acc = &accumulator{}
			grouped[key] = acc
		}

		acc.scoreSum += score
		acc.sites++
		if score >= p.analysis.ExcellentThreshold {
			acc.excellentN++
		}
		if score >= p.analysis.GoodThreshold {
			acc.goodOrBetter++
		}
	}

	summaries := make([]WaterQualitySummary, 0, len(grouped))
	for key, acc := range grouped {
		n := float64(acc.sites)
		summaries = append(summaries, WaterQualitySummary{
			County:              key.county,
			Year:                key.year,
			AvgQualityScore:     acc.scoreSum / n,
			PercentExcellent:    float64(acc.excellentN) / n * 100,
			PercentGoodOrBetter: float64(acc.goodOrBetter) / n * 100,
			SitesPerCounty:      acc.sites,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].County != summaries[j].County {
			return summaries[i].County < summaries[j].County
		}
		return summaries[i].Year < summaries[j].Year
	})

	return summaries
}
