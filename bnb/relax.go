package bnb

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"git.solver4all.com/azaryc2s/lotsizing"
)

const lpTol = 1e-10

var (
	errNodeInfeasible = errors.New("relaxation is infeasible")
	errNodeUnbounded  = errors.New("relaxation is unbounded")
)

// row is a constraint in the form sum(val * x[ind]) + slack * s = rhs, where slack is
// 0 for equalities, 1 for <= rows and -1 for >= rows.
type row struct {
	ind   []int
	val   []float64
	slack float64
	rhs   float64
}

func senseSlack(s lotsizing.Sense) float64 {
	switch s {
	case lotsizing.LESS_EQUAL:
		return 1
	case lotsizing.GREATER_EQUAL:
		return -1
	default:
		return 0
	}
}

// relax solves the LP relaxation of model within the given variable bounds. All lower
// bounds must be finite and non-negative. Variables that appear in no row are set to the
// bound their objective coefficient prefers.
func relax(model *lotsizing.Model, lower, upper []float64) (float64, []float64, error) {
	n := model.NumVars()
	obj := model.Objective()

	var rows []row
	used := make([]bool, n)
	for i := 0; i < model.NumConstrs(); i++ {
		c := model.Constr(i)
		nonZero := false
		for k, idx := range c.Ind {
			if c.Val[k] != 0 {
				nonZero = true
				used[idx] = true
			}
		}
		if !nonZero {
			if !emptyRowHolds(c) {
				return 0, nil, errNodeInfeasible
			}
			continue
		}
		rows = append(rows, row{ind: c.Ind, val: c.Val, slack: senseSlack(c.Sense), rhs: c.RHS})
	}

	x := make([]float64, n)
	for j := 0; j < n; j++ {
		if lower[j] > upper[j]+lpTol {
			return 0, nil, errNodeInfeasible
		}
		if used[j] {
			continue
		}
		switch {
		case obj[j] >= 0:
			x[j] = lower[j]
		case !math.IsInf(upper[j], 1):
			x[j] = upper[j]
		default:
			return 0, nil, errNodeUnbounded
		}
	}

	// Bound rows for the columns that take part in the LP.
	for j := 0; j < n; j++ {
		if !used[j] {
			continue
		}
		if !math.IsInf(upper[j], 1) {
			rows = append(rows, row{ind: []int{j}, val: []float64{1}, slack: 1, rhs: upper[j]})
		}
		if lower[j] > 0 {
			rows = append(rows, row{ind: []int{j}, val: []float64{1}, slack: -1, rhs: lower[j]})
		}
	}

	// Columns: used model variables first, then one slack per inequality row.
	col := make([]int, n)
	cols := 0
	for j := 0; j < n; j++ {
		col[j] = -1
		if used[j] {
			col[j] = cols
			cols++
		}
	}
	if cols == 0 {
		return model.ObjectiveValue(x), x, nil
	}
	structural := cols
	for _, r := range rows {
		if r.slack != 0 {
			cols++
		}
	}

	A := mat.NewDense(len(rows), cols, nil)
	b := make([]float64, len(rows))
	c := make([]float64, cols)
	for j := 0; j < n; j++ {
		if used[j] {
			c[col[j]] = obj[j]
		}
	}
	slackCol := structural
	for i, r := range rows {
		// rows are stored with a non-negative right-hand side
		sign := 1.0
		if r.rhs < 0 {
			sign = -1
		}
		for k, idx := range r.ind {
			if r.val[k] != 0 {
				A.Set(i, col[idx], A.At(i, col[idx])+sign*r.val[k])
			}
		}
		if r.slack != 0 {
			A.Set(i, slackCol, sign*r.slack)
			slackCol++
		}
		b[i] = sign * r.rhs
	}

	_, optX, err := lp.Simplex(c, A, b, lpTol, nil)
	switch {
	case err == lp.ErrInfeasible:
		return 0, nil, errNodeInfeasible
	case err == lp.ErrUnbounded:
		return 0, nil, errNodeUnbounded
	case err != nil:
		return 0, nil, errors.Wrap(err, "simplex")
	}
	for j := 0; j < n; j++ {
		if used[j] {
			v := optX[col[j]]
			if math.Abs(v) < lpTol {
				v = 0
			}
			x[j] = v
		}
	}
	return model.ObjectiveValue(x), x, nil
}

func emptyRowHolds(c lotsizing.Constr) bool {
	switch c.Sense {
	case lotsizing.LESS_EQUAL:
		return 0 <= c.RHS
	case lotsizing.GREATER_EQUAL:
		return 0 >= c.RHS
	default:
		return c.RHS == 0
	}
}
