package dataprocessing

import "sort"

// countyYear keys a value by canonical county and year.
type countyYear struct {
	County string
	Year   int
}

// fillAcrossYears expands sparse per-(county, year) values onto the full
// county×year grid using nearest-available-value filling: forward first,
// then backward for years before the earliest observation. Counties with no
// observation at all stay absent from the result.
func fillAcrossYears(counties []string, years []int, sparse map[countyYear]float64) map[countyYear]float64 {
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	filled := make(map[countyYear]float64, len(counties)*len(sorted))

	for _, name := range counties {
		var carry float64
		haveCarry := false

		for _, year := range sorted {
			if v, ok := sparse[countyYear{County: name, Year: year}]; ok {
				carry, haveCarry = v, true
			}
			if haveCarry {
				filled[countyYear{County: name, Year: year}] = carry
			}
		}

		// Backward pass covers years before the first observation.
		haveCarry = false
		for i := len(sorted) - 1; i >= 0; i-- {
			key := countyYear{County: name, Year: sorted[i]}
			if v, ok := filled[key]; ok {
				carry, haveCarry = v, true
				continue
			}
			if haveCarry {
				filled[key] = carry
			}
		}
	}

	return filled
}
