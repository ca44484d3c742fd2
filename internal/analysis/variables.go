package analysis

import "eirstat/internal/dataprocessing"

// analysisVariables is the fixed catalogue of variables the analyzer can read
// from an integrated row. Each carries its role tag; everything downstream
// (sub-matrix selection, ranking direction) consults the tag.
func analysisVariables() []Variable {
	return []Variable{
		{Name: "pollution_index", Role: RoleEmissions, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.PollutionIndex })},
		{Name: "total_emissions", Role: RoleEmissions, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.TotalEmissions })},
		{Name: "emissions_per_capita", Role: RoleEmissions, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.EmissionsPerCapita })},
		{Name: "estimated_county_emissions", Role: RoleEmissions, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.EstimatedCountyEmissions })},
		{Name: "avg_quality_score", Role: RoleWaterQuality, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.AvgQualityScore })},
		{Name: "percent_excellent", Role: RoleWaterQuality, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.PercentExcellent })},
		{Name: "percent_good_or_better", Role: RoleWaterQuality, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.PercentGoodOrBetter })},
		{Name: "population", Role: RolePopulation, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.Population })},
		{Name: "population_density", Role: RolePopulation, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.PopulationDensity })},
		{Name: "population_growth", Role: RolePopulation, Get: fromPtr(func(r dataprocessing.IntegratedRow) *float64 { return r.PopulationGrowth })},
	}
}

func fromPtr(get func(dataprocessing.IntegratedRow) *float64) func(dataprocessing.IntegratedRow) (float64, bool) {
	return func(r dataprocessing.IntegratedRow) (float64, bool) {
		if v := get(r); v != nil {
			return *v, true
		}
		return 0, false
	}
}

// availableVariables filters the catalogue down to variables with at least one
// observation in the given rows.
func availableVariables(rows []dataprocessing.IntegratedRow, vars []Variable) []Variable {
	var out []Variable
	for _, v := range vars {
		for _, row := range rows {
			if _, ok := v.Get(row); ok {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// variablesByRole selects variables whose role is in the given set.
func variablesByRole(vars []Variable, roles ...VariableRole) []Variable {
	var out []Variable
	for _, v := range vars {
		for _, role := range roles {
			if v.Role == role {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// pairedValues extracts the rows where both variables are present.
func pairedValues(rows []dataprocessing.IntegratedRow, a, b Variable) (xs, ys []float64) {
	for _, row := range rows {
		x, okX := a.Get(row)
		y, okY := b.Get(row)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// values extracts every present observation of one variable.
func values(rows []dataprocessing.IntegratedRow, v Variable) []float64 {
	var out []float64
	for _, row := range rows {
		if x, ok := v.Get(row); ok {
			out = append(out, x)
		}
	}
	return out
}
