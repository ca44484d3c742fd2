package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"eirstat/internal/dataprocessing"
)

// varianceFloor is the minimum variance of annual means required before a
// linear fit is attempted. Broadcast national constants and filled values
// produce near-zero variance series where a slope would be meaningless.
const varianceFloor = 0.01

// slopeFloor is the minimum absolute slope for a trend to make the
// significant-trends summary.
const slopeFloor = 0.01

// annualSeries is a variable's mean value per year, ordered by year.
type annualSeries struct {
	years []int
	means []float64
}

// annualMeans groups a variable's observations by year and averages them.
func annualMeans(rows []dataprocessing.IntegratedRow, v Variable) annualSeries {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, row := range rows {
		if x, ok := v.Get(row); ok {
			sums[row.Year] += x
			counts[row.Year]++
		}
	}

	var s annualSeries
	for year := range sums {
		s.years = append(s.years, year)
	}
	sort.Ints(s.years)
	for _, year := range s.years {
		s.means = append(s.means, sums[year]/float64(counts[year]))
	}
	return s
}

func annualStds(rows []dataprocessing.IntegratedRow, v Variable) map[int]float64 {
	byYear := make(map[int][]float64)
	for _, row := range rows {
		if x, ok := v.Get(row); ok {
			byYear[row.Year] = append(byYear[row.Year], x)
		}
	}

	out := make(map[int]float64, len(byYear))
	for year, xs := range byYear {
		if len(xs) < 2 {
			out[year] = 0
			continue
		}
		out[year] = stat.StdDev(xs, nil)
	}
	return out
}

// yearOverYearChanges computes the percent change of annual means between
// consecutive recorded years. Years whose predecessor mean is zero are skipped.
func yearOverYearChanges(s annualSeries) map[int]float64 {
	out := make(map[int]float64)
	for i := 1; i < len(s.years); i++ {
		prev := s.means[i-1]
		if prev == 0 {
			continue
		}
		out[s.years[i]] = (s.means[i] - prev) / prev * 100
	}
	return out
}

// fitTrend regresses annual means against year. Series that are too short or
// too flat come back with a Note instead of fit numbers.
func (a *Analyzer) fitTrend(s annualSeries) (TrendResult, bool) {
	n := len(s.years)
	if n < 3 {
		return TrendResult{}, false
	}

	if stat.Variance(s.means, nil) < varianceFloor {
		return TrendResult{PValue: 1, Direction: "stable", Note: "insufficient variation"}, true
	}

	xs := make([]float64, n)
	for i, year := range s.years {
		xs[i] = float64(year)
	}

	alpha, beta := stat.LinearRegression(xs, s.means, nil, false)
	r2 := stat.RSquared(xs, s.means, nil, alpha, beta)
	r := stat.Correlation(xs, s.means, nil)

	p := 0.0
	if denom := 1 - r*r; denom > 1e-12 && n > 2 {
		t := r * math.Sqrt(float64(n-2)/denom)
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		p = 2 * dist.CDF(-math.Abs(t))
	}

	res := TrendResult{
		Slope:       beta,
		RSquared:    r2,
		PValue:      p,
		Significant: p < a.cfg.SignificanceLevel,
		Direction:   trendDirection(beta),
		Strength:    trendStrength(r),
	}
	return res, true
}

func trendDirection(slope float64) string {
	switch {
	case slope > 0:
		return "increasing"
	case slope < 0:
		return "decreasing"
	default:
		return "stable"
	}
}

func trendStrength(r float64) string {
	switch abs := math.Abs(r); {
	case abs > 0.7:
		return "strong"
	case abs > 0.4:
		return "moderate"
	default:
		return "weak"
	}
}

// analyzeTrends runs the full temporal pass over the primary table.
func (a *Analyzer) analyzeTrends(rows []dataprocessing.IntegratedRow, vars []Variable) Trends {
	t := Trends{
		AnnualMeans:         make(map[string]map[int]float64),
		AnnualStds:          make(map[string]map[int]float64),
		YearOverYearChanges: make(map[string]map[int]float64),
		TrendStrength:       make(map[string]TrendResult),
		CountyTrends:        make(map[string]map[string]map[int]float64),
	}

	for _, v := range vars {
		s := annualMeans(rows, v)
		if len(s.years) == 0 {
			continue
		}

		means := make(map[int]float64, len(s.years))
		for i, year := range s.years {
			means[year] = s.means[i]
		}
		t.AnnualMeans[v.Name] = means
		t.AnnualStds[v.Name] = annualStds(rows, v)
		if changes := yearOverYearChanges(s); len(changes) > 0 {
			t.YearOverYearChanges[v.Name] = changes
		}

		res, ok := a.fitTrend(s)
		if !ok {
			continue
		}
		t.TrendStrength[v.Name] = res
		if res.Significant && math.Abs(res.Slope) > slopeFloor {
			t.SignificantTrendsSummary = append(t.SignificantTrendsSummary,
				fmt.Sprintf("%s is %s (slope %.3f per year, p=%.4f)", v.Name, res.Direction, res.Slope, res.PValue))
		}
	}

	for _, v := range vars {
		byCounty := countyAnnualMeans(rows, v)
		for county, series := range byCounty {
			if t.CountyTrends[county] == nil {
				t.CountyTrends[county] = make(map[string]map[int]float64)
			}
			t.CountyTrends[county][v.Name] = series
		}
	}

	return t
}

func countyAnnualMeans(rows []dataprocessing.IntegratedRow, v Variable) map[string]map[int]float64 {
	type key struct {
		county string
		year   int
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, row := range rows {
		if x, ok := v.Get(row); ok {
			k := key{row.County, row.Year}
			sums[k] += x
			counts[k]++
		}
	}

	out := make(map[string]map[int]float64)
	for k, sum := range sums {
		if out[k.county] == nil {
			out[k.county] = make(map[int]float64)
		}
		out[k.county][k.year] = sum / float64(counts[k])
	}
	return out
}
