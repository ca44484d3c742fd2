package dataprocessing

// Raw table rows as delivered by the data-source collaborator. Field presence
// follows the source contract: optional columns are zero-valued when absent.

// PollutionRow is one long-format air-emissions observation.
type PollutionRow struct {
	County          string  `json:"county"`
	Year            int     `json:"year"`
	Pollutant       string  `json:"pollutant"`
	Value           float64 `json:"value"`
	GeographicLevel string  `json:"geographic_level,omitempty"`
}

// WaterQualityRow is one bathing-water observation. QualityScore is nil when
// the source only publishes the classification label.
type WaterQualityRow struct {
	SiteCode       string   `json:"site_code,omitempty"`
	County         string   `json:"county"`
	Year           int      `json:"year"`
	Classification string   `json:"classification"`
	QualityScore   *float64 `json:"quality_score,omitempty"`
}

// PopulationRow is one raw census figure at whatever administrative grain the
// source publishes.
type PopulationRow struct {
	County     string  `json:"county"`
	Year       int     `json:"year"`
	CensusYear int     `json:"census_year"`
	Statistic  string  `json:"statistic"`
	Population float64 `json:"population"`
}

// Scope distinguishes national aggregates from county-level figures.
type Scope string

const (
	ScopeNational Scope = "national"
	ScopeCounty   Scope = "county"
)

// PollutionSummary is one row of the pivoted emissions table: one row per
// (scope, year) with one entry per pollutant.
type PollutionSummary struct {
	Scope  Scope  `json:"scope"`
	County string `json:"county"`
	Year   int    `json:"year"`
	// Pollutants holds per-pollutant totals keyed by pollutant name.
	Pollutants map[string]float64 `json:"pollutants"`
	// TotalEmissions is the sum over all pollutants.
	TotalEmissions float64 `json:"total_emissions"`
	// PollutionIndex is TotalEmissions normalized to [0, 100] against the
	// maximum across all summary rows (0 everywhere if that maximum is 0).
	PollutionIndex float64 `json:"pollution_index"`
}

// WaterQualitySummary is the per-(county, year) aggregate of bathing-water
// observations, restricted to the analysis county set.
type WaterQualitySummary struct {
	County              string  `json:"county"`
	Year                int     `json:"year"`
	AvgQualityScore     float64 `json:"avg_quality_score"`
	PercentExcellent    float64 `json:"percent_excellent"`
	PercentGoodOrBetter float64 `json:"percent_good_or_better"`
	SitesPerCounty      int     `json:"sites_per_county"`
}

// PopulationRecord is the authoritative per-county census figure with derived
// density and growth metrics. PopulationGrowth is nil for a county's first
// recorded year.
type PopulationRecord struct {
	County                string   `json:"county"`
	Year                  int      `json:"year"`
	CensusYear            int      `json:"census_year"`
	Population            float64  `json:"population"`
	PopulationDensity     float64  `json:"population_density"`
	PopulationGrowth      *float64 `json:"population_growth,omitempty"`
	PopulationGrowthTotal float64  `json:"population_growth_total"`
}

// IntegratedRow is one row of an integrated dataset. Which optional fields
// are populated depends on the join variant that produced the row.
type IntegratedRow struct {
	County     string `json:"county"`
	Year       int    `json:"year"`
	CensusYear int    `json:"census_year,omitempty"`

	// Water quality fields (water-based variants).
	AvgQualityScore     *float64 `json:"avg_quality_score,omitempty"`
	PercentExcellent    *float64 `json:"percent_excellent,omitempty"`
	PercentGoodOrBetter *float64 `json:"percent_good_or_better,omitempty"`
	SitesPerCounty      *int     `json:"sites_per_county,omitempty"`

	// Population fields.
	Population        *float64 `json:"population,omitempty"`
	PopulationDensity *float64 `json:"population_density,omitempty"`
	PopulationGrowth  *float64 `json:"population_growth,omitempty"`

	// National pollution broadcast by year.
	TotalEmissions *float64           `json:"total_emissions,omitempty"`
	PollutionIndex *float64           `json:"pollution_index,omitempty"`
	Pollutants     map[string]float64 `json:"pollutants,omitempty"`

	// Derived metrics.
	NationalPopulationTotal  *float64 `json:"national_population_total,omitempty"`
	EmissionsPerCapita       *float64 `json:"emissions_per_capita,omitempty"`
	EstimatedCountyEmissions *float64 `json:"estimated_county_emissions,omitempty"`

	// National growth rates broadcast as constants onto every row.
	NationalPopulationTotalGrowthPct *float64 `json:"national_population_total_growth_pct,omitempty"`
	NationalEmissionTotalGrowthPct   *float64 `json:"national_emission_total_growth_pct,omitempty"`
}

// ProcessedData holds every table computed by a run. Tables are written once
// and never mutated afterwards.
type ProcessedData struct {
	Pollution    []PollutionSummary    `json:"pollution"`
	WaterQuality []WaterQualitySummary `json:"water_quality"`
	Population   []PopulationRecord    `json:"population"`

	// Integrated is the primary analysis table (the water-vs-population join).
	Integrated            []IntegratedRow `json:"integrated"`
	PollutionVsPopulation []IntegratedRow `json:"pollution_vs_population"`
	PollutionVsWater      []IntegratedRow `json:"pollution_vs_water"`
}

func ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
