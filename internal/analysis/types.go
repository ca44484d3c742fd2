package analysis

import "eirstat/internal/dataprocessing"

// VariableRole is the explicit classification tag assigned to every analysis
// variable at construction time. Sub-matrix selection and ranking direction
// key off the role, never off the variable's name.
type VariableRole string

const (
	RoleEmissions    VariableRole = "emissions"
	RoleWaterQuality VariableRole = "water_quality"
	RolePopulation   VariableRole = "population"
	RoleOther        VariableRole = "other"
)

// Variable extracts one analysis variable from integrated rows. Get returns
// false when the row carries no value for it.
type Variable struct {
	Name string
	Role VariableRole
	Get  func(dataprocessing.IntegratedRow) (float64, bool)
}

// CorrelationResult is a Pearson correlation with its two-sided p-value.
type CorrelationResult struct {
	Coefficient    float64 `json:"coefficient"`
	PValue         float64 `json:"p_value"`
	Significant    bool    `json:"significant"`
	Interpretation string  `json:"interpretation"`
	SampleSize     int     `json:"sample_size"`
}

// CorrelationMatrix holds pairwise correlations for a variable subset.
// Cells is symmetric and indexed by variable name.
type CorrelationMatrix struct {
	Variables []string                                `json:"variables"`
	Cells     map[string]map[string]CorrelationResult `json:"cells"`
}

// Correlations groups the three correlation matrices handed to reporting.
type Correlations struct {
	Overall               CorrelationMatrix `json:"overall"`
	PollutionWater        CorrelationMatrix `json:"pollution_water"`
	PopulationEnvironment CorrelationMatrix `json:"population_environment"`
}

// TrendResult is an ordinary-least-squares fit of annual means against year.
type TrendResult struct {
	Slope       float64 `json:"slope"`
	RSquared    float64 `json:"r_squared"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
	Direction   string  `json:"direction"`
	Strength    string  `json:"strength,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// AnovaResult is a one-way variance test across county groups.
type AnovaResult struct {
	FStatistic  float64 `json:"f_statistic"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
}

// KendallResult flags a monotonic trend independent of linear fit quality.
type KendallResult struct {
	Tau       float64 `json:"tau"`
	PValue    float64 `json:"p_value"`
	HasTrend  bool    `json:"has_trend"`
	Direction string  `json:"direction"`
}

// Descriptive summarizes one numeric variable.
type Descriptive struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Trends carries the temporal analysis of the integrated table.
type Trends struct {
	AnnualMeans              map[string]map[int]float64            `json:"annual_means"`
	AnnualStds               map[string]map[int]float64            `json:"annual_stds"`
	YearOverYearChanges      map[string]map[int]float64            `json:"year_over_year_changes"`
	TrendStrength            map[string]TrendResult                `json:"trend_strength"`
	SignificantTrendsSummary []string                              `json:"significant_trends_summary"`
	CountyTrends             map[string]map[string]map[int]float64 `json:"county_trends"`
}

// Statistics carries the formal test results.
type Statistics struct {
	Descriptive map[string]Descriptive   `json:"descriptive"`
	CountyANOVA map[string]AnovaResult   `json:"county_anova"`
	TrendTests  map[string]KendallResult `json:"trend_tests"`
}

// CountyAnalysis summarizes per-county patterns and rankings.
type CountyAnalysis struct {
	// Means maps county → variable → mean value.
	Means map[string]map[string]float64 `json:"means"`
	// Rankings maps metric → county → rank (1 = best; emissions-role
	// metrics rank ascending, all others descending).
	Rankings map[string]map[string]float64 `json:"rankings"`

	LowestPollution   string `json:"lowest_pollution,omitempty"`
	HighestPollution  string `json:"highest_pollution,omitempty"`
	BestWaterQuality  string `json:"best_water_quality,omitempty"`
	WorstWaterQuality string `json:"worst_water_quality,omitempty"`
}

// NationalTrendPoint is one census-year national observation.
type NationalTrendPoint struct {
	Year                    int     `json:"year"`
	TotalEmissions          float64 `json:"total_emissions"`
	PollutionIndex          float64 `json:"pollution_index"`
	NationalPopulationTotal float64 `json:"national_population_total"`
}

// OverallChanges compares the first and last census years.
type OverallChanges struct {
	YearsSpan           string  `json:"years_span"`
	PollutionChangePct  float64 `json:"pollution_change_pct"`
	PopulationChangePct float64 `json:"population_change_pct"`
}

// CountyChange is a county's population/emissions change over the span.
type CountyChange struct {
	County              string  `json:"county"`
	PopulationChangePct float64 `json:"population_change_pct"`
	EmissionsChangePct  float64 `json:"emissions_change_pct"`
}

// PollutionVsPopulationAnalysis covers the census-years join variant.
type PollutionVsPopulationAnalysis struct {
	CensusYears                    []int                `json:"census_years"`
	NationalTrends                 []NationalTrendPoint `json:"national_trends"`
	OverallChanges                 *OverallChanges      `json:"overall_changes,omitempty"`
	CountyChanges                  []CountyChange       `json:"county_changes,omitempty"`
	TopGrowingCounties             []CountyChange       `json:"top_growing_counties,omitempty"`
	PopulationEmissionsCorrelation *CorrelationResult   `json:"population_emissions_correlation,omitempty"`
}

// CountyScore pairs a county with a metric value, used for rankings.
type CountyScore struct {
	County string  `json:"county"`
	Score  float64 `json:"score"`
}

// AnnualWaterSummary is one monitoring-year national summary.
type AnnualWaterSummary struct {
	Year                int      `json:"year"`
	PollutionIndex      *float64 `json:"pollution_index,omitempty"`
	TotalEmissions      *float64 `json:"total_emissions,omitempty"`
	AvgQualityScore     float64  `json:"avg_quality_score"`
	PercentGoodOrBetter float64  `json:"percent_good_or_better"`
}

// PollutionVsWaterAnalysis covers the monitoring-years join variant.
type PollutionVsWaterAnalysis struct {
	YearsCovered              []int                `json:"years_covered"`
	AnnualSummary             []AnnualWaterSummary `json:"annual_summary"`
	PollutionWaterCorrelation *CorrelationResult   `json:"pollution_water_correlation,omitempty"`
	CountyWaterRankings       []CountyScore        `json:"county_water_rankings,omitempty"`
	PollutionTrend            *TrendResult         `json:"pollution_trend,omitempty"`
	WaterQualityTrend         *TrendResult         `json:"water_quality_trend,omitempty"`
	BestWaterCounty           string               `json:"best_water_county,omitempty"`
	WorstWaterCounty          string               `json:"worst_water_county,omitempty"`
}

// PollutionWaterRelationship is the median-split view of pollution against
// water quality on the primary table.
type PollutionWaterRelationship struct {
	Correlation          *CorrelationResult `json:"correlation,omitempty"`
	CategoryDistribution map[string]int     `json:"category_distribution,omitempty"`
}

// HighGrowthSummary describes counties in the top population-growth quartile.
type HighGrowthSummary struct {
	Count           int      `json:"count"`
	AvgPollution    *float64 `json:"avg_pollution,omitempty"`
	AvgWaterQuality *float64 `json:"avg_water_quality,omitempty"`
}

// PopulationImpact relates population pressure to environmental indicators.
type PopulationImpact struct {
	DensityPollutionCorrelation *CorrelationResult `json:"density_pollution_correlation,omitempty"`
	GrowthEmissionsCorrelation  *CorrelationResult `json:"growth_emissions_correlation,omitempty"`
	HighGrowthCounties          *HighGrowthSummary `json:"high_growth_counties,omitempty"`
}

// Results is the single canonical structure handed to the reporting
// collaborator. Every consumer reads these fixed fields; there is no
// loose-map variant.
type Results struct {
	ProcessedData              dataprocessing.ProcessedData  `json:"processed_data"`
	Correlations               Correlations                  `json:"correlations"`
	Trends                     Trends                        `json:"trends"`
	Statistics                 Statistics                    `json:"statistics"`
	CountyAnalysis             CountyAnalysis                `json:"county_analysis"`
	PollutionVsPopulation      PollutionVsPopulationAnalysis `json:"pollution_vs_population_analysis"`
	PollutionVsWater           PollutionVsWaterAnalysis      `json:"pollution_vs_water_analysis"`
	PollutionWaterRelationship PollutionWaterRelationship    `json:"pollution_water_relationship"`
	PopulationImpact           PopulationImpact              `json:"population_impact"`
	Insights                   map[string]string             `json:"insights"`
}
