package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"eirstat/internal/dataprocessing"
)

// minSampleSize is the smallest pairwise sample a correlation or trend test
// accepts. Below it the t-distribution has no degrees of freedom to spare and
// the result would be noise, so the pair is omitted rather than reported.
const minSampleSize = 4

// pearson computes the Pearson coefficient with its two-sided p-value from
// the t-distribution with n-2 degrees of freedom. Returns false when the
// sample is too small or either side is constant.
func (a *Analyzer) pearson(xs, ys []float64) (CorrelationResult, bool) {
	n := len(xs)
	if n < minSampleSize || len(ys) != n {
		return CorrelationResult{}, false
	}
	if isConstant(xs) || isConstant(ys) {
		return CorrelationResult{}, false
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return CorrelationResult{}, false
	}

	p := 0.0
	if denom := 1 - r*r; denom > 1e-12 {
		t := r * math.Sqrt(float64(n-2)/denom)
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		p = 2 * dist.CDF(-math.Abs(t))
	}

	return CorrelationResult{
		Coefficient:    r,
		PValue:         p,
		Significant:    p < a.cfg.SignificanceLevel,
		Interpretation: interpretCorrelation(r),
		SampleSize:     n,
	}, true
}

// interpretCorrelation labels the direction and magnitude of a coefficient.
// |r| below 0.3 counts as weak regardless of sign.
func interpretCorrelation(r float64) string {
	switch {
	case r > 0.3:
		return "positive"
	case r < -0.3:
		return "negative"
	default:
		return "weak"
	}
}

func isConstant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// correlationMatrix builds the symmetric pairwise matrix over the given
// variables. Pairs with too little overlapping data are simply absent from
// Cells; the diagonal is not stored.
func (a *Analyzer) correlationMatrix(rows []dataprocessing.IntegratedRow, vars []Variable) CorrelationMatrix {
	m := CorrelationMatrix{Cells: make(map[string]map[string]CorrelationResult)}
	for _, v := range vars {
		m.Variables = append(m.Variables, v.Name)
	}

	for i, left := range vars {
		for _, right := range vars[i+1:] {
			xs, ys := pairedValues(rows, left, right)
			res, ok := a.pearson(xs, ys)
			if !ok {
				continue
			}
			setCell(m.Cells, left.Name, right.Name, res)
			setCell(m.Cells, right.Name, left.Name, res)
		}
	}
	return m
}

func setCell(cells map[string]map[string]CorrelationResult, row, col string, res CorrelationResult) {
	if cells[row] == nil {
		cells[row] = make(map[string]CorrelationResult)
	}
	cells[row][col] = res
}

// correlationBetween correlates two named variables over the rows, returning
// nil when the pair cannot be tested.
func (a *Analyzer) correlationBetween(rows []dataprocessing.IntegratedRow, left, right Variable) *CorrelationResult {
	xs, ys := pairedValues(rows, left, right)
	res, ok := a.pearson(xs, ys)
	if !ok {
		return nil
	}
	return &res
}
