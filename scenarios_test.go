package lotsizing_test

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.solver4all.com/azaryc2s/lotsizing"
	"git.solver4all.com/azaryc2s/lotsizing/bnb"
)

const eps = 1e-6

var formulations = []lotsizing.Formulation{lotsizing.Standard{}, lotsizing.Flow{}}

func newInstance(t *testing.T, demand [][]int, stockingCost float64, transitionCost [][]float64) *lotsizing.Instance {
	t.Helper()
	inst, err := lotsizing.NewInstance(demand, stockingCost, transitionCost)
	require.NoError(t, err)
	return inst
}

// solveModel builds and solves inst and checks the structural properties every optimal
// assignment has to satisfy.
func solveModel(t *testing.T, inst *lotsizing.Instance, f lotsizing.Formulation) (*lotsizing.Model, lotsizing.Result) {
	t.Helper()
	m, err := lotsizing.Build(inst, f)
	require.NoError(t, err)
	res := bnb.New().Solve(context.Background(), m)
	if res.Status != lotsizing.OPTIMAL {
		return m, res
	}
	x := res.X
	reg := m.Registry()
	assert.InDelta(t, 0, m.Violation(x), eps)

	for tt := 0; tt < reg.M; tt++ {
		assert.InDelta(t, 0, x[reg.S(tt, -1)], eps)
		for p := 0; p < reg.N; p++ {
			balance := x[reg.S(tt, p-1)] + x[reg.X(tt, p)] - x[reg.S(tt, p)]
			assert.InDelta(t, float64(inst.Demand(tt, p)), balance, eps)
			assert.LessOrEqual(t, x[reg.X(tt, p)], x[reg.Y(tt, p)]+eps)
		}
	}
	for p := 0; p < reg.N; p++ {
		sum := 0.0
		for tt := 0; tt < reg.M; tt++ {
			sum += x[reg.Y(tt, p)]
		}
		assert.InDelta(t, 1, sum, eps, "period %d", p)
	}
	for i := 0; i < reg.M; i++ {
		for j := 0; j < reg.M; j++ {
			for p := 1; p < reg.N; p++ {
				if x[reg.Y(i, p-1)] > 0.5 && x[reg.Y(j, p)] > 0.5 {
					assert.InDelta(t, 1, x[reg.U(i, j, p)], eps)
				}
			}
		}
	}
	return m, res
}

func TestScenarioSingleItem(t *testing.T) {
	inst := newInstance(t, [][]int{{1}}, 1, [][]float64{{0}})
	for _, f := range formulations {
		m, res := solveModel(t, inst, f)
		require.Equal(t, lotsizing.OPTIMAL, res.Status, res.Reason)
		reg := m.Registry()
		assert.InDelta(t, 0, res.Objective, eps)
		assert.Equal(t, 1.0, res.X[reg.X(0, 0)])
		assert.InDelta(t, 0, res.X[reg.S(0, 0)], eps)
	}
}

func TestScenarioOneSwitch(t *testing.T) {
	inst := newInstance(t, [][]int{{1, 0}, {0, 1}}, 0, [][]float64{{0, 5}, {5, 0}})
	for _, f := range formulations {
		sol, err := lotsizing.Run(context.Background(), inst, f, bnb.New())
		require.NoError(t, err, f.Name())
		assert.InDelta(t, 5, sol.Obj, eps)
		assert.Equal(t, []int{0, 1}, sol.Production)
		assert.Equal(t, []int{0, 1}, sol.Configuration)
		assert.InDelta(t, 5, sol.TransitionCost, eps)

		valid, comment := lotsizing.CheckSolutionValidity(inst, sol)
		assert.True(t, valid, comment)
	}
}

func TestScenarioZeroDemand(t *testing.T) {
	single := newInstance(t, [][]int{{0}, {0}}, 1, [][]float64{{0, 2}, {2, 0}})
	for _, f := range formulations {
		m, res := solveModel(t, single, f)
		require.Equal(t, lotsizing.OPTIMAL, res.Status, res.Reason)
		assert.InDelta(t, 0, res.Objective, eps)
		reg := m.Registry()
		for tt := 0; tt < reg.M; tt++ {
			assert.Equal(t, 0.0, res.X[reg.X(tt, 0)])
		}
	}

	longer := newInstance(t, [][]int{{0, 0, 0}, {0, 0, 0}}, 1, [][]float64{{0, 2}, {2, 0}})
	for _, f := range formulations {
		m, res := solveModel(t, longer, f)
		require.Equal(t, lotsizing.OPTIMAL, res.Status, res.Reason)
		assert.InDelta(t, 0, res.Objective, eps)
		reg := m.Registry()
		for tt := 0; tt < reg.M; tt++ {
			for p := 0; p < reg.N; p++ {
				assert.Equal(t, 0.0, res.X[reg.X(tt, p)])
			}
		}
		for i := 0; i < reg.M; i++ {
			for j := 0; j < reg.M; j++ {
				if i != j {
					for p := 1; p < reg.N; p++ {
						assert.Equal(t, 0.0, res.X[reg.U(i, j, p)])
					}
				}
			}
		}
	}
}

func TestScenarioConflictingDemand(t *testing.T) {
	inst := newInstance(t, [][]int{{1}, {1}}, 1, [][]float64{{0, 1}, {1, 0}})
	for _, f := range formulations {
		_, res := solveModel(t, inst, f)
		assert.Equal(t, lotsizing.INFEASIBLE, res.Status, f.Name())

		_, err := lotsizing.Run(context.Background(), inst, f, bnb.New())
		var infErr *lotsizing.InfeasibleModelError
		assert.True(t, errors.As(err, &infErr), f.Name())
	}
}

func TestFormulationsAgreeWithEnumeration(t *testing.T) {
	instances := map[string]*lotsizing.Instance{
		"alternating": newInstance(t,
			[][]int{{0, 1, 0, 1}, {1, 0, 1, 0}},
			1,
			[][]float64{{0, 3}, {2, 0}}),
		"three types": newInstance(t,
			[][]int{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}},
			2,
			[][]float64{{0, 1, 4}, {1, 0, 1}, {4, 1, 0}}),
		"expensive switch": newInstance(t,
			[][]int{{0, 0, 1, 0, 1}, {0, 1, 0, 0, 1}},
			1,
			[][]float64{{0, 10}, {10, 0}}),
		"self cost": newInstance(t,
			[][]int{{0, 1, 1}, {0, 0, 0}},
			3,
			[][]float64{{2, 1}, {1, 0}}),
	}
	for name, inst := range instances {
		want, feasible := enumerate(inst)
		require.True(t, feasible, name)
		for _, f := range formulations {
			sol, err := lotsizing.Run(context.Background(), inst, f, bnb.New())
			require.NoError(t, err, "%s %s", name, f.Name())
			assert.InDelta(t, want, sol.Obj, eps, "%s %s", name, f.Name())

			valid, comment := lotsizing.CheckSolutionValidity(inst, sol)
			assert.True(t, valid, "%s %s: %s", name, f.Name(), comment)
		}
	}
}

// enumerate returns the optimal cost over all configuration sequences. For a fixed
// sequence each demand is served by the latest free production slot of its type.
func enumerate(inst *lotsizing.Instance) (float64, bool) {
	m, n := inst.Types(), inst.Periods()
	best := math.Inf(1)
	config := make([]int, n)
	var rec func(p int)
	rec = func(p int) {
		if p == n {
			if cost, ok := sequenceCost(inst, config); ok && cost < best {
				best = cost
			}
			return
		}
		for t := 0; t < m; t++ {
			config[p] = t
			rec(p + 1)
		}
	}
	rec(0)
	return best, !math.IsInf(best, 1)
}

func sequenceCost(inst *lotsizing.Instance, config []int) (float64, bool) {
	cost := inst.ConfigurationCost(config)
	for t := 0; t < inst.Types(); t++ {
		var slots []int
		for p, c := range config {
			if c == t {
				slots = append(slots, p)
			}
		}
		k := len(slots) - 1
		for d := inst.Periods() - 1; d >= 0; d-- {
			if inst.Demand(t, d) == 0 {
				continue
			}
			for k >= 0 && slots[k] > d {
				k--
			}
			if k < 0 {
				return 0, false
			}
			cost += float64(d-slots[k]) * inst.StockingCost()
			k--
		}
	}
	return cost, true
}
