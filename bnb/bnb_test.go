package bnb

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.solver4all.com/azaryc2s/lotsizing"
)

// knapsack is max 5a + 4b + 3c subject to 2a + 3b + c <= 5 with binary a, b, c.
// Its relaxation is fractional, the optimum is a = b = 1.
func knapsack() *lotsizing.Model {
	b := &lotsizing.ModelBuilder{}
	a := b.AddVar("a", lotsizing.BINARY, 0, 1)
	bb := b.AddVar("b", lotsizing.BINARY, 0, 1)
	c := b.AddVar("c", lotsizing.BINARY, 0, 1)
	b.AddConstr([]int{a, bb, c}, []float64{2, 3, 1}, lotsizing.LESS_EQUAL, 5, "capacity")
	b.AddObj(a, -5)
	b.AddObj(bb, -4)
	b.AddObj(c, -3)
	return b.Model("knapsack", "test", nil)
}

func TestSolveKnapsack(t *testing.T) {
	res := New().Solve(context.Background(), knapsack())
	require.Equal(t, lotsizing.OPTIMAL, res.Status, res.Reason)
	assert.InDelta(t, -9, res.Objective, 1e-9)
	assert.Equal(t, []float64{1, 1, 0}, res.X)
	assert.Greater(t, res.Nodes, 1)
}

func TestSolveGeneralIntegers(t *testing.T) {
	// min -x - y - 0.5z subject to 2x + 2y <= 3, z <= x + 0.25 with integer x, y in [0, 10]
	b := &lotsizing.ModelBuilder{}
	x := b.AddVar("x", lotsizing.INTEGER, 0, 10)
	y := b.AddVar("y", lotsizing.INTEGER, 0, 10)
	z := b.AddVar("z", lotsizing.CONTINUOUS, 0, math.Inf(1))
	b.AddConstr([]int{x, y}, []float64{2, 2}, lotsizing.LESS_EQUAL, 3, "sum")
	b.AddConstr([]int{z, x}, []float64{1, -1}, lotsizing.LESS_EQUAL, 0.25, "link")
	b.AddObj(x, -1)
	b.AddObj(y, -1)
	b.AddObj(z, -0.5)
	m := b.Model("general", "test", nil)

	res := New().Solve(context.Background(), m)
	require.Equal(t, lotsizing.OPTIMAL, res.Status, res.Reason)
	assert.InDelta(t, -1.625, res.Objective, 1e-9)
	assert.Equal(t, 1.0, res.X[x])
	assert.Equal(t, 0.0, res.X[y])
	assert.InDelta(t, 1.25, res.X[z], 1e-9)
	assert.InDelta(t, 0, m.Violation(res.X), 1e-9)
}

func TestSolveInfeasible(t *testing.T) {
	// the relaxation a = 0.5 is feasible, both branches are not
	b := &lotsizing.ModelBuilder{}
	a := b.AddVar("a", lotsizing.BINARY, 0, 1)
	b.AddConstr([]int{a}, []float64{2}, lotsizing.EQUAL, 1, "half")
	res := New().Solve(context.Background(), b.Model("half", "test", nil))
	assert.Equal(t, lotsizing.INFEASIBLE, res.Status)
	assert.Equal(t, 3, res.Nodes)

	b = &lotsizing.ModelBuilder{}
	a = b.AddVar("a", lotsizing.BINARY, 0, 1)
	c := b.AddVar("c", lotsizing.BINARY, 0, 1)
	b.AddConstr([]int{a, c}, []float64{1, 1}, lotsizing.GREATER_EQUAL, 3, "too much")
	res = New().Solve(context.Background(), b.Model("root", "test", nil))
	assert.Equal(t, lotsizing.INFEASIBLE, res.Status)
	assert.Equal(t, 1, res.Nodes)
}

func TestSolveUnbounded(t *testing.T) {
	b := &lotsizing.ModelBuilder{}
	a := b.AddVar("a", lotsizing.BINARY, 0, 1)
	z := b.AddVar("z", lotsizing.CONTINUOUS, 0, math.Inf(1))
	b.AddConstr([]int{z, a}, []float64{1, -1}, lotsizing.GREATER_EQUAL, 0, "floor")
	b.AddObj(z, -1)
	res := New().Solve(context.Background(), b.Model("unbounded", "test", nil))
	assert.Equal(t, lotsizing.UNBOUNDED, res.Status)

	b = &lotsizing.ModelBuilder{}
	free := b.AddVar("free", lotsizing.CONTINUOUS, 0, math.Inf(1))
	b.AddObj(free, -1)
	res = New().Solve(context.Background(), b.Model("free", "test", nil))
	assert.Equal(t, lotsizing.UNBOUNDED, res.Status)
}

func TestSolveUnconstrained(t *testing.T) {
	b := &lotsizing.ModelBuilder{}
	up := b.AddVar("up", lotsizing.BINARY, 0, 1)
	down := b.AddVar("down", lotsizing.INTEGER, 2, 5)
	b.AddObj(up, -2)
	b.AddObj(down, 3)
	res := New().Solve(context.Background(), b.Model("bounds", "test", nil))
	require.Equal(t, lotsizing.OPTIMAL, res.Status, res.Reason)
	assert.Equal(t, []float64{1, 2}, res.X)
	assert.InDelta(t, 4, res.Objective, 1e-12)
}

func TestSolveLimits(t *testing.T) {
	res := New(WithMaxNodes(1)).Solve(context.Background(), knapsack())
	assert.Equal(t, lotsizing.ERROR, res.Status)
	assert.Equal(t, "node limit reached", res.Reason)
	assert.Equal(t, 1, res.Nodes)

	res = New(WithTimeLimit(time.Nanosecond)).Solve(context.Background(), knapsack())
	assert.Equal(t, lotsizing.ERROR, res.Status)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = New().Solve(ctx, knapsack())
	assert.Equal(t, lotsizing.ERROR, res.Status)
	assert.Contains(t, res.Reason, "interrupted")
	assert.Equal(t, 0, res.Nodes)
}

func TestSolveRejectsNegativeLowerBound(t *testing.T) {
	b := &lotsizing.ModelBuilder{}
	b.AddVar("neg", lotsizing.CONTINUOUS, -1, 1)
	res := New().Solve(context.Background(), b.Model("neg", "test", nil))
	assert.Equal(t, lotsizing.ERROR, res.Status)
}

func TestFromConfig(t *testing.T) {
	cfg := lotsizing.DefaultSolverConfig()
	cfg.TimeLimit = time.Minute
	cfg.MaxNodes = 100
	cfg.Tolerance = 1e-5
	s := FromConfig(cfg)
	assert.Equal(t, &Solver{TimeLimit: time.Minute, MaxNodes: 100, Tolerance: 1e-5}, s)
	assert.Equal(t, 1e-6, New().tolerance())
}

func TestMostFractional(t *testing.T) {
	integer := []bool{true, true, false, true}
	assert.Equal(t, 1, mostFractional([]float64{0.9, 0.45, 0.5, 1}, integer, 1e-6))
	assert.Equal(t, -1, mostFractional([]float64{1, 1e-9, 0.5, 3}, integer, 1e-6))
}
