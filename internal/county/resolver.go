// Package county canonicalizes Irish administrative area names and merges
// split city/county population records into single analytic counties.
//
// Two distinct operations live here and must not be conflated:
//
//  1. Normalization is syntactic: it produces the display/grouping name used
//     for every join key ("Co. Cork" -> "Cork", "State" -> "Ireland").
//  2. Aggregation is semantic: it folds split administrative population
//     records (Cork City + Cork County) into one analytic county figure.
package county

import "strings"

// preservedCityNames keep a distinct display identity: a trailing " City" is
// not stripped from them during normalization. They are still folded into
// their analytic county by the aggregation table.
var preservedCityNames = map[string]bool{
	"Cork City":   true,
	"Dublin City": true,
	"Galway City": true,
}

// aggregationTargets maps split administrative records to their analytic
// county. Names not present pass through unchanged.
var aggregationTargets = map[string]string{
	"Cork City":                 "Cork",
	"Cork County":               "Cork",
	"Dublin City":               "Dublin",
	"South Dublin":              "Dublin",
	"Fingal":                    "Dublin",
	"Dún Laoghaire Rathdown":    "Dublin",
	"Galway City":               "Galway",
	"Galway County":             "Galway",
	"Limerick City and County":  "Limerick",
	"Waterford City and County": "Waterford",
}

// Normalize canonicalizes a free-text area name into the county key used for
// all grouping and joins. The empty string maps to itself.
func Normalize(name string) string {
	if name == "" {
		return name
	}

	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "Co. ", "")
	name = strings.ReplaceAll(name, " County Council", "")
	name = strings.ReplaceAll(name, " City Council", "")
	if !preservedCityNames[name] {
		name = strings.TrimSuffix(name, " City")
	}

	if name == "Dún Laoghaire-Rathdown" {
		name = "Dún Laoghaire Rathdown"
	}
	if name == "State" {
		name = "Ireland"
	}

	return name
}

// PopulationFigure is a (county, population) pair subject to aggregation.
type PopulationFigure struct {
	County     string
	Population float64
}

// Aggregate sums split administrative population records into analytic
// counties. Input order of first appearance is preserved; counties absent
// from the aggregation table pass through unchanged. An empty input yields
// an empty output.
func Aggregate(figures []PopulationFigure) []PopulationFigure {
	if len(figures) == 0 {
		return []PopulationFigure{}
	}

	totals := make(map[string]float64, len(figures))
	var order []string

	for _, fig := range figures {
		target := fig.County
		if mapped, ok := aggregationTargets[fig.County]; ok {
			target = mapped
		}
		if _, seen := totals[target]; !seen {
			order = append(order, target)
		}
		totals[target] += fig.Population
	}

	out := make([]PopulationFigure, 0, len(order))
	for _, name := range order {
		out = append(out, PopulationFigure{County: name, Population: totals[name]})
	}
	return out
}

// AggregationTarget returns the analytic county a split administrative record
// belongs to, or the name itself when it is not a split record.
func AggregationTarget(name string) string {
	if mapped, ok := aggregationTargets[name]; ok {
		return mapped
	}
	return name
}

// splitCityRecords are the names that only ever appear when a source reports
// city and county administrations separately.
var splitCityRecords = map[string]bool{
	"Cork City":                 true,
	"Dublin City":               true,
	"Galway City":               true,
	"Limerick City and County":  true,
	"Waterford City and County": true,
}

// HasSplitRecords reports whether any of the given names indicate a source
// that reports split city/county administrations. Aggregation only applies
// to such sources; a source that already reports combined analytic counties
// (and may legitimately carry Fingal as its own county) must not be folded.
func HasSplitRecords(names []string) bool {
	for _, name := range names {
		if splitCityRecords[name] {
			return true
		}
	}
	return false
}
