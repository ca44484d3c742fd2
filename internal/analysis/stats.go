package analysis

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"eirstat/internal/dataprocessing"
)

// oneWayAnova tests whether a variable's mean differs across county groups.
// Returns false when fewer than two non-empty groups exist or the within-group
// variance is zero.
func (a *Analyzer) oneWayAnova(rows []dataprocessing.IntegratedRow, v Variable) (AnovaResult, bool) {
	groups := make(map[string][]float64)
	for _, row := range rows {
		if x, ok := v.Get(row); ok {
			groups[row.County] = append(groups[row.County], x)
		}
	}

	var all []float64
	var nonEmpty [][]float64
	for _, g := range groups {
		if len(g) > 0 {
			nonEmpty = append(nonEmpty, g)
			all = append(all, g...)
		}
	}

	k := len(nonEmpty)
	total := len(all)
	if k < 2 || total <= k {
		return AnovaResult{}, false
	}

	grandMean := stat.Mean(all, nil)

	var ssBetween, ssWithin float64
	for _, g := range nonEmpty {
		mean := stat.Mean(g, nil)
		ssBetween += float64(len(g)) * (mean - grandMean) * (mean - grandMean)
		for _, x := range g {
			ssWithin += (x - mean) * (x - mean)
		}
	}

	dfBetween := float64(k - 1)
	dfWithin := float64(total - k)
	if ssWithin == 0 {
		return AnovaResult{}, false
	}

	f := (ssBetween / dfBetween) / (ssWithin / dfWithin)
	dist := distuv.F{D1: dfBetween, D2: dfWithin}
	p := 1 - dist.CDF(f)

	return AnovaResult{
		FStatistic:  f,
		PValue:      p,
		Significant: p < a.cfg.SignificanceLevel,
	}, true
}

// kendallTrendTest checks the annual means of a variable for a monotonic
// trend using Kendall's tau with the normal approximation for the p-value.
// Needs at least three annual observations.
func (a *Analyzer) kendallTrendTest(s annualSeries) (KendallResult, bool) {
	n := len(s.years)
	if n < 3 {
		return KendallResult{}, false
	}

	xs := make([]float64, n)
	for i, year := range s.years {
		xs[i] = float64(year)
	}

	tau := stat.Kendall(xs, s.means, nil)
	if math.IsNaN(tau) {
		return KendallResult{}, false
	}

	nf := float64(n)
	z := 3 * tau * math.Sqrt(nf*(nf-1)) / math.Sqrt(2*(2*nf+5))
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	p := 2 * norm.CDF(-math.Abs(z))

	return KendallResult{
		Tau:       tau,
		PValue:    p,
		HasTrend:  p < a.cfg.SignificanceLevel,
		Direction: trendDirection(tau),
	}, true
}

// describe summarizes one variable's observations.
func describe(xs []float64) (Descriptive, bool) {
	if len(xs) == 0 {
		return Descriptive{}, false
	}

	d := Descriptive{
		Count: len(xs),
		Mean:  stat.Mean(xs, nil),
		Min:   slices.Min(xs),
		Max:   slices.Max(xs),
	}
	if len(xs) > 1 {
		d.Std = stat.StdDev(xs, nil)
	}
	return d, true
}

// runStatisticalTests assembles descriptive stats, per-variable county ANOVA
// and Kendall trend tests over the primary table.
func (a *Analyzer) runStatisticalTests(rows []dataprocessing.IntegratedRow, vars []Variable) Statistics {
	s := Statistics{
		Descriptive: make(map[string]Descriptive),
		CountyANOVA: make(map[string]AnovaResult),
		TrendTests:  make(map[string]KendallResult),
	}

	for _, v := range vars {
		if d, ok := describe(values(rows, v)); ok {
			s.Descriptive[v.Name] = d
		}
		if res, ok := a.oneWayAnova(rows, v); ok {
			s.CountyANOVA[v.Name] = res
		}
		if res, ok := a.kendallTrendTest(annualMeans(rows, v)); ok {
			s.TrendTests[v.Name] = res
		}
	}
	return s
}

// median is the midpoint median: the mean of the two central values for
// even-length input.
func median(xs []float64) float64 {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func quantile(xs []float64, q float64) float64 {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}
