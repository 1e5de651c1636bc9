package lotsizing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Status int

const (
	OPTIMAL Status = iota
	INFEASIBLE
	UNBOUNDED
	ERROR
)

func (s Status) String() string {
	switch s {
	case OPTIMAL:
		return "optimal"
	case INFEASIBLE:
		return "infeasible"
	case UNBOUNDED:
		return "unbounded"
	default:
		return "error"
	}
}

// Result is what a Solver reports for a Model. X and Objective are set for OPTIMAL only,
// Reason for ERROR only.
type Result struct {
	Status    Status
	Objective float64
	X         []float64
	Reason    string
	Nodes     int
}

// Solver is an external MIP engine. Solve blocks until a verdict, a limit or ctx ends.
type Solver interface {
	Solve(ctx context.Context, model *Model) Result
}

// SolutionEpsilon is the tolerance for reading binaries from a solver assignment.
const SolutionEpsilon = 0.01

// Run builds inst with f, hands the model to solver and extracts the schedule.
func Run(ctx context.Context, inst *Instance, f Formulation, solver Solver) (*Solution, error) {
	model, err := Build(inst, f)
	if err != nil {
		return nil, err
	}
	startTime := time.Now()
	res := solver.Solve(ctx, model)
	elapsed := time.Since(startTime)
	Log(LOG_INFO, "---OPTIMIZATION DONE--- status %s after %d nodes in %s", res.Status, res.Nodes, elapsed)

	switch res.Status {
	case OPTIMAL:
	case INFEASIBLE:
		return nil, &InfeasibleModelError{Formulation: f.Name()}
	case UNBOUNDED:
		return nil, &SolverError{Reason: "model is unbounded"}
	default:
		return nil, &SolverError{Reason: res.Reason}
	}

	sol, err := ExtractSolution(inst, model, res.X)
	if err != nil {
		return nil, err
	}
	sol.RunID = uuid.NewString()
	sol.Obj = res.Objective
	sol.Optimal = true
	sol.Nodes = res.Nodes
	sol.Time = elapsed.String()
	Log(LOG_INFO, "Found schedule %v with obj %v (stock %v, transition %v)", sol.Production, sol.Obj, sol.StockCost, sol.TransitionCost)
	return sol, nil
}

// ExtractSolution reads the production and configuration schedule and the cost breakdown
// from an assignment x of model.
func ExtractSolution(inst *Instance, model *Model, x []float64) (*Solution, error) {
	reg := model.Registry()
	if len(x) != model.NumVars() {
		return nil, errors.Errorf("assignment has %d values for %d variables", len(x), model.NumVars())
	}
	sol := &Solution{
		Formulation:   model.Formulation(),
		Production:    make([]int, reg.N),
		Configuration: make([]int, reg.N),
	}
	for p := 0; p < reg.N; p++ {
		sol.Production[p] = IDLE
		best := -1.0
		for t := 0; t < reg.M; t++ {
			if x[reg.X(t, p)] > 1-SolutionEpsilon {
				if sol.Production[p] != IDLE {
					return nil, errors.Errorf("several machine types [%d %d] produced in time period %d", sol.Production[p], t, p)
				}
				sol.Production[p] = t
			}
			if y := x[reg.Y(t, p)]; y > best {
				best = y
				sol.Configuration[p] = t
			}
		}
	}
	for t := 0; t < reg.M; t++ {
		for p := 0; p < reg.N; p++ {
			sol.StockCost += inst.StockingCost() * x[reg.S(t, p)]
		}
	}
	for i := 0; i < reg.M; i++ {
		for j := 0; j < reg.M; j++ {
			for p := 1; p < reg.N; p++ {
				sol.TransitionCost += inst.TransitionCost(i, j) * x[reg.U(i, j, p)]
			}
		}
	}
	sol.Obj = sol.StockCost + sol.TransitionCost
	return sol, nil
}
