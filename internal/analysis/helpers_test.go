package analysis

import (
	"eirstat/internal/config"
	"eirstat/internal/dataprocessing"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(config.AnalysisConfig{
		SignificanceLevel:    0.05,
		CorrelationThreshold: 0.5,
		ExcellentThreshold:   4,
		GoodThreshold:        3,
	}, nil)
}

func fptr(v float64) *float64 { return &v }

func mustVariable(name string) Variable {
	v, ok := variableByName(analysisVariables(), name)
	if !ok {
		panic("unknown variable " + name)
	}
	return v
}

// integratedFixture builds a primary table with deliberate structure: the
// pollution index falls year over year, Cork has the best water and the
// lowest density, Dublin the opposite.
func integratedFixture() []dataprocessing.IntegratedRow {
	counties := []struct {
		name    string
		quality float64
		density float64
		pop     float64
		growth  float64
	}{
		{"Cork", 3.8, 78, 584156, 0.5},
		{"Kerry", 3.4, 32, 156458, 1.1},
		{"Dublin", 2.9, 1500, 1458154, 2.4},
	}
	indexByYear := map[int]float64{2020: 100, 2021: 90, 2022: 80, 2023: 70}

	var rows []dataprocessing.IntegratedRow
	for _, c := range counties {
		for year := 2020; year <= 2023; year++ {
			t := float64(year - 2020)
			rows = append(rows, dataprocessing.IntegratedRow{
				County:                   c.name,
				Year:                     year,
				AvgQualityScore:          fptr(c.quality + 0.05*t),
				PercentGoodOrBetter:      fptr(60 + 5*t),
				Population:               fptr(c.pop),
				PopulationDensity:        fptr(c.density),
				PopulationGrowth:         fptr(c.growth),
				PollutionIndex:           fptr(indexByYear[year]),
				TotalEmissions:           fptr(450 * indexByYear[year]),
				EstimatedCountyEmissions: fptr(c.pop / 100 * indexByYear[year] / 100),
			})
		}
	}
	return rows
}
