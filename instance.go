package lotsizing

import (
	"math"

	"github.com/pkg/errors"
)

// Instance is an immutable lot-sizing problem: m machine types over n periods with
// unit demands, a uniform stocking cost and a transition-cost matrix.
type Instance struct {
	m, n           int
	demand         [][]int
	stockingCost   float64
	transitionCost [][]float64
}

// NewInstance validates the demand matrix and copies all inputs. The number of types is
// len(demand) and the number of periods the length of its rows. Costs are validated when a
// model is built.
func NewInstance(demand [][]int, stockingCost float64, transitionCost [][]float64) (*Instance, error) {
	m := len(demand)
	if m == 0 {
		return nil, &DimensionError{Field: "types", Got: 0}
	}
	n := len(demand[0])
	if n == 0 {
		return nil, &DimensionError{Field: "periods", Got: 0}
	}
	d := make([][]int, m)
	for t := 0; t < m; t++ {
		if len(demand[t]) != n {
			return nil, &DimensionError{Field: "demand row " + itoa(t), Got: len(demand[t]), Want: n}
		}
		for p, v := range demand[t] {
			if v != 0 && v != 1 {
				return nil, &DemandError{Type: t, Period: p, Value: v}
			}
		}
		d[t] = append([]int(nil), demand[t]...)
	}
	tc := make([][]float64, len(transitionCost))
	for i := range transitionCost {
		tc[i] = append([]float64(nil), transitionCost[i]...)
	}
	return &Instance{m: m, n: n, demand: d, stockingCost: stockingCost, transitionCost: tc}, nil
}

func (inst *Instance) Types() int   { return inst.m }
func (inst *Instance) Periods() int { return inst.n }

func (inst *Instance) Demand(t, p int) int { return inst.demand[t][p] }

func (inst *Instance) StockingCost() float64 { return inst.stockingCost }

func (inst *Instance) TransitionCost(i, j int) float64 { return inst.transitionCost[i][j] }

// DemandMatrix returns a copy of the demand matrix.
func (inst *Instance) DemandMatrix() [][]int {
	res := make([][]int, inst.m)
	for t := range inst.demand {
		res[t] = append([]int(nil), inst.demand[t]...)
	}
	return res
}

// TransitionMatrix returns a copy of the transition-cost matrix as given.
func (inst *Instance) TransitionMatrix() [][]float64 {
	res := make([][]float64, len(inst.transitionCost))
	for i := range inst.transitionCost {
		res[i] = append([]float64(nil), inst.transitionCost[i]...)
	}
	return res
}

func (inst *Instance) TotalDemand() int {
	total := 0
	for t := 0; t < inst.m; t++ {
		for p := 0; p < inst.n; p++ {
			total += inst.demand[t][p]
		}
	}
	return total
}

// ValidateCosts checks the stocking cost and the transition-cost matrix. Transition
// costs must be non-negative: the transition constraints only bound u from below and rely
// on the minimization to keep it tight.
func (inst *Instance) ValidateCosts() error {
	if math.IsNaN(inst.stockingCost) || math.IsInf(inst.stockingCost, 0) {
		return &InvalidCostError{Reason: "stocking cost is not finite"}
	}
	if inst.stockingCost < 0 {
		return &InvalidCostError{Reason: "stocking cost is negative"}
	}
	if len(inst.transitionCost) != inst.m {
		return &InvalidCostError{Reason: "transition cost matrix has " + itoa(len(inst.transitionCost)) + " rows, expected " + itoa(inst.m)}
	}
	for i, row := range inst.transitionCost {
		if len(row) != inst.m {
			return &InvalidCostError{Reason: "transition cost row " + itoa(i) + " has " + itoa(len(row)) + " entries, expected " + itoa(inst.m)}
		}
		for j, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return &InvalidCostError{Reason: "transition cost " + itoa(i) + "->" + itoa(j) + " is not finite"}
			}
			if c < 0 {
				return &InvalidCostError{Reason: "transition cost " + itoa(i) + "->" + itoa(j) + " is negative"}
			}
		}
	}
	return nil
}

func (inst *Instance) checkIndex(t, p int) error {
	if p < 0 || p >= inst.n {
		return errors.Errorf("given time period %d expected to be in [0,%d)", p, inst.n)
	}
	if t < 0 || t >= inst.m {
		return errors.Errorf("given machine type %d expected to be in [0,%d)", t, inst.m)
	}
	return nil
}

// CumulativeDemand returns the demand of type t over the periods 0..p.
func (inst *Instance) CumulativeDemand(t, p int) (int, error) {
	if err := inst.checkIndex(t, p); err != nil {
		return 0, err
	}
	sum := 0
	for q := 0; q <= p; q++ {
		sum += inst.demand[t][q]
	}
	return sum, nil
}

// IsFeasible reports whether the production schedule (type per period, IDLE for none)
// meets every demand on time.
func (inst *Instance) IsFeasible(schedule []int) (bool, error) {
	if len(schedule) != inst.n {
		return false, errors.Errorf("length of schedule %d does not match the number of periods %d", len(schedule), inst.n)
	}
	for t := 0; t < inst.m; t++ {
		produced, demanded := 0, 0
		for p := 0; p < inst.n; p++ {
			if schedule[p] == t {
				produced++
			}
			demanded += inst.demand[t][p]
			if produced < demanded {
				return false, nil
			}
		}
	}
	return true, nil
}

// ScheduleTransitionCost sums the transition costs between consecutive produced types,
// ignoring idle periods.
func (inst *Instance) ScheduleTransitionCost(schedule []int) float64 {
	prev := IDLE
	cost := 0.0
	for _, state := range schedule {
		if state == IDLE {
			continue
		}
		if state != prev && prev != IDLE {
			cost += inst.transitionCost[prev][state]
		}
		prev = state
	}
	return cost
}

// ScheduleInventoryCost pairs the k-th production of a type with its k-th demand and
// charges the stocking cost for every period in between. Surplus items are held until
// the last period.
func (inst *Instance) ScheduleInventoryCost(schedule []int) float64 {
	cost := 0.0
	for t := 0; t < inst.m; t++ {
		var demand, production []int
		for p := 0; p < inst.n; p++ {
			if inst.demand[t][p] == 1 {
				demand = append(demand, p)
			}
		}
		for p, item := range schedule {
			if item == t {
				production = append(production, p)
			}
		}
		for len(demand) < len(production) {
			demand = append(demand, inst.n-1)
		}
		held := 0
		for k := 0; k < len(production) && k < len(demand); k++ {
			held += demand[k] - production[k]
		}
		cost += float64(held) * inst.stockingCost
	}
	return cost
}

func (inst *Instance) ScheduleCost(schedule []int) float64 {
	return inst.ScheduleTransitionCost(schedule) + inst.ScheduleInventoryCost(schedule)
}

// ConfigurationCost sums transitionCost[c[p-1]][c[p]] over all periods p >= 1,
// self-transitions included.
func (inst *Instance) ConfigurationCost(config []int) float64 {
	cost := 0.0
	for p := 1; p < len(config); p++ {
		cost += inst.transitionCost[config[p-1]][config[p]]
	}
	return cost
}
