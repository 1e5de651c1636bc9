package lotsizing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scheduleSolver answers every model with the assignment of a fixed schedule.
type scheduleSolver struct {
	inst       *Instance
	production []int
	config     []int
}

func (s scheduleSolver) Solve(_ context.Context, m *Model) Result {
	x := assignment(s.inst, m.Registry(), s.production, s.config)
	return Result{Status: OPTIMAL, Objective: m.ObjectiveValue(x), X: x, Nodes: 1}
}

type statusSolver Result

func (s statusSolver) Solve(context.Context, *Model) Result { return Result(s) }

func TestRunExtractsSolution(t *testing.T) {
	inst := exampleInstance(t)
	solver := scheduleSolver{inst: inst, production: []int{0, 1, IDLE, 1, 0, 2}, config: []int{0, 1, 1, 1, 0, 2}}

	for _, f := range []Formulation{Standard{}, Flow{}} {
		sol, err := Run(context.Background(), inst, f, solver)
		require.NoError(t, err)
		assert.Equal(t, f.Name(), sol.Formulation)
		assert.Equal(t, solver.production, sol.Production)
		assert.Equal(t, solver.config, sol.Configuration)
		assert.Equal(t, 15.0, sol.Obj)
		assert.Equal(t, 10.0, sol.StockCost)
		assert.Equal(t, 5.0, sol.TransitionCost)
		assert.True(t, sol.Optimal)
		assert.Equal(t, 1, sol.Nodes)
		assert.NotEmpty(t, sol.Time)
		_, err = uuid.Parse(sol.RunID)
		assert.NoError(t, err)

		valid, comment := CheckSolutionValidity(inst, sol)
		assert.True(t, valid, comment)
	}
}

func TestRunStatusErrors(t *testing.T) {
	inst := exampleInstance(t)

	_, err := Run(context.Background(), inst, Flow{}, statusSolver{Status: INFEASIBLE})
	var infErr *InfeasibleModelError
	require.True(t, errors.As(err, &infErr))
	assert.Equal(t, FORMULATION_FLOW, infErr.Formulation)

	var solverErr *SolverError
	_, err = Run(context.Background(), inst, Standard{}, statusSolver{Status: ERROR, Reason: "license expired"})
	require.True(t, errors.As(err, &solverErr))
	assert.Equal(t, "license expired", solverErr.Reason)

	_, err = Run(context.Background(), inst, Standard{}, statusSolver{Status: UNBOUNDED})
	require.True(t, errors.As(err, &solverErr))
	assert.Contains(t, solverErr.Error(), "unbounded")
}

func TestRunRejectsInvalidCosts(t *testing.T) {
	inst := mustInstance(t, [][]int{{1}}, -3, [][]float64{{0}})
	_, err := Run(context.Background(), inst, Standard{}, statusSolver{Status: OPTIMAL})
	var costErr *InvalidCostError
	assert.True(t, errors.As(err, &costErr))
}

func TestExtractSolutionErrors(t *testing.T) {
	inst := exampleInstance(t)
	m, err := Build(inst, Standard{})
	require.NoError(t, err)

	_, err = ExtractSolution(inst, m, make([]float64, 3))
	assert.Error(t, err)

	x := assignment(inst, m.Registry(), []int{0, 1, IDLE, 1, 0, 2}, []int{0, 1, 1, 1, 0, 2})
	x[m.Registry().X(2, 1)] = 1
	_, err = ExtractSolution(inst, m, x)
	assert.Error(t, err)
}

func TestExtractSolutionTolerance(t *testing.T) {
	inst := exampleInstance(t)
	m, err := Build(inst, Standard{})
	require.NoError(t, err)
	reg := m.Registry()

	x := assignment(inst, reg, []int{0, 1, IDLE, 1, 0, 2}, []int{0, 1, 1, 1, 0, 2})
	x[reg.X(0, 0)] = 0.995
	x[reg.X(2, 2)] = 0.004
	sol, err := ExtractSolution(inst, m, x)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, IDLE, 1, 0, 2}, sol.Production)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "optimal", OPTIMAL.String())
	assert.Equal(t, "infeasible", INFEASIBLE.String())
	assert.Equal(t, "unbounded", UNBOUNDED.String())
	assert.Equal(t, "error", ERROR.String())
}
