// Package bnb is a pure Go MIP solver for lotsizing models: depth-first branch-and-bound
// over LP relaxations solved with the gonum simplex.
package bnb

import (
	"context"
	"math"
	"time"

	"git.solver4all.com/azaryc2s/lotsizing"
)

// Solver implements lotsizing.Solver. The zero value has no limits and an integrality
// tolerance of 1e-6.
type Solver struct {
	TimeLimit time.Duration
	MaxNodes  int
	Tolerance float64
}

type Option func(*Solver)

func WithTimeLimit(d time.Duration) Option {
	return func(s *Solver) { s.TimeLimit = d }
}

func WithMaxNodes(n int) Option {
	return func(s *Solver) { s.MaxNodes = n }
}

func WithTolerance(tol float64) Option {
	return func(s *Solver) { s.Tolerance = tol }
}

func New(opts ...Option) *Solver {
	s := &Solver{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromConfig creates a solver with the limits of cfg.
func FromConfig(cfg lotsizing.SolverConfig) *Solver {
	return New(WithTimeLimit(cfg.TimeLimit), WithMaxNodes(cfg.MaxNodes), WithTolerance(cfg.Tolerance))
}

type node struct {
	lower, upper []float64
	depth        int
}

func (nd node) child(j int, lower, upper float64) node {
	c := node{
		lower: append([]float64(nil), nd.lower...),
		upper: append([]float64(nil), nd.upper...),
		depth: nd.depth + 1,
	}
	c.lower[j] = lower
	c.upper[j] = upper
	return c
}

func (s *Solver) tolerance() float64 {
	if s.Tolerance > 0 {
		return s.Tolerance
	}
	return 1e-6
}

// Solve runs branch-and-bound on model. Limits and cancellation end the search with
// status ERROR even if an incumbent exists.
func (s *Solver) Solve(ctx context.Context, model *lotsizing.Model) lotsizing.Result {
	startTime := time.Now()
	tol := s.tolerance()
	n := model.NumVars()

	root := node{lower: make([]float64, n), upper: make([]float64, n)}
	integer := make([]bool, n)
	for j := 0; j < n; j++ {
		v := model.Var(j)
		if v.Lower < 0 || math.IsNaN(v.Lower) {
			return lotsizing.Result{Status: lotsizing.ERROR, Reason: "variable " + v.Name + " has a negative lower bound"}
		}
		root.lower[j] = v.Lower
		root.upper[j] = v.Upper
		integer[j] = v.Type != lotsizing.CONTINUOUS
		if integer[j] {
			root.lower[j] = math.Ceil(v.Lower - tol)
			root.upper[j] = math.Floor(v.Upper + tol)
		}
	}

	var incumbent []float64
	best := math.Inf(1)
	nodes := 0
	stack := []node{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return lotsizing.Result{Status: lotsizing.ERROR, Reason: "interrupted: " + err.Error(), Nodes: nodes}
		}
		if s.TimeLimit > 0 && time.Since(startTime) > s.TimeLimit {
			return lotsizing.Result{Status: lotsizing.ERROR, Reason: "time limit reached", Nodes: nodes}
		}
		if s.MaxNodes > 0 && nodes >= s.MaxNodes {
			return lotsizing.Result{Status: lotsizing.ERROR, Reason: "node limit reached", Nodes: nodes}
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		z, x, err := relax(model, nd.lower, nd.upper)
		switch err {
		case nil:
		case errNodeInfeasible:
			lotsizing.Log(lotsizing.LOG_SPAM, "Node %d at depth %d is infeasible", nodes, nd.depth)
			continue
		case errNodeUnbounded:
			return lotsizing.Result{Status: lotsizing.UNBOUNDED, Nodes: nodes}
		default:
			return lotsizing.Result{Status: lotsizing.ERROR, Reason: err.Error(), Nodes: nodes}
		}
		if z >= best-1e-9*math.Max(1, math.Abs(best)) {
			lotsizing.Log(lotsizing.LOG_SPAM, "Node %d at depth %d pruned by bound %v >= %v", nodes, nd.depth, z, best)
			continue
		}

		j := mostFractional(x, integer, tol)
		if j < 0 {
			incumbent = roundIntegers(x, integer)
			best = model.ObjectiveValue(incumbent)
			lotsizing.Log(lotsizing.LOG_INFO, "New incumbent with objective %v at node %d", best, nodes)
			continue
		}

		v := x[j]
		down := nd.child(j, nd.lower[j], math.Floor(v))
		up := nd.child(j, math.Ceil(v), nd.upper[j])
		lotsizing.Log(lotsizing.LOG_SPAM, "Branching on %s = %v at node %d", model.Var(j).Name, v, nodes)
		// the child on the side v leans to is explored first
		if v-math.Floor(v) > 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}

	if incumbent == nil {
		return lotsizing.Result{Status: lotsizing.INFEASIBLE, Nodes: nodes}
	}
	return lotsizing.Result{Status: lotsizing.OPTIMAL, Objective: best, X: incumbent, Nodes: nodes}
}

func mostFractional(x []float64, integer []bool, tol float64) int {
	bestIdx := -1
	bestDist := tol
	for j, v := range x {
		if !integer[j] {
			continue
		}
		frac := v - math.Floor(v)
		dist := math.Min(frac, 1-frac)
		if dist > bestDist {
			bestDist = dist
			bestIdx = j
		}
	}
	return bestIdx
}

func roundIntegers(x []float64, integer []bool) []float64 {
	res := append([]float64(nil), x...)
	for j := range res {
		if integer[j] {
			res[j] = math.Round(res[j])
		}
	}
	return res
}
