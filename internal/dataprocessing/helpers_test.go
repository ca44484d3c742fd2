package dataprocessing

import (
	"eirstat/internal/config"
)

func testProcessor() *Processor {
	counties := config.CountiesConfig{
		Analysis:    append([]string(nil), config.DefaultAnalysisCounties...),
		Areas:       config.DefaultCountyAreas,
		DefaultArea: 1000,
	}
	analysis := config.AnalysisConfig{
		SignificanceLevel:    0.05,
		CorrelationThreshold: 0.5,
		ExcellentThreshold:   4,
		GoodThreshold:        3,
		Census2016TotalMin:   4_700_000,
		Census2016TotalMax:   4_800_000,
	}
	return NewProcessor(counties, analysis, nil)
}
