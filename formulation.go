package lotsizing

import (
	"strings"

	"github.com/pkg/errors"
)

// Formulation is one algebraic encoding of the lot-sizing problem. Every formulation
// works on the same Instance and produces a Model any Solver accepts.
type Formulation interface {
	Name() string
	BuildVariables(inst *Instance, b *ModelBuilder) (*Registry, error)
	BuildConstraints(inst *Instance, reg *Registry, b *ModelBuilder) error
	BuildObjective(inst *Instance, reg *Registry, b *ModelBuilder) error
}

// Formulations lists the available encodings by name.
var Formulations = map[string]Formulation{
	FORMULATION_STD:  Standard{},
	FORMULATION_FLOW: Flow{},
}

func FormulationByName(name string) (Formulation, error) {
	f, ok := Formulations[strings.ToUpper(name)]
	if !ok {
		return nil, errors.Errorf("unknown formulation %q", name)
	}
	return f, nil
}

// Build validates the costs of inst and assembles a fresh Model with f.
func Build(inst *Instance, f Formulation) (*Model, error) {
	if inst == nil {
		return nil, errors.New("nil instance")
	}
	if err := inst.ValidateCosts(); err != nil {
		return nil, err
	}
	Log(LOG_DEBUG, "Demand matrix of %d types over %d periods:\n%s", inst.Types(), inst.Periods(), Print2DArray(inst.DemandMatrix()))
	b := &ModelBuilder{}
	reg, err := f.BuildVariables(inst, b)
	if err != nil {
		return nil, err
	}
	if err = f.BuildConstraints(inst, reg, b); err != nil {
		return nil, err
	}
	if err = f.BuildObjective(inst, reg, b); err != nil {
		return nil, err
	}
	m := b.Model("lotsizing", f.Name(), reg)
	Log(LOG_INFO, "Built %s model with %d variables and %d constraints", f.Name(), m.NumVars(), m.NumConstrs())
	return m, nil
}

// composeObjective sets the stocking and transition costs on the registered variables:
//
//	min sum_t sum_p c_s * s[t][p] + sum_i sum_j sum_{p>=1} c_ij * u[i][j][p]
func composeObjective(inst *Instance, reg *Registry, b *ModelBuilder) {
	Log(LOG_INFO, "Setting objective: stocking cost %v, transition costs over %d periods", inst.StockingCost(), reg.N-1)
	for t := 0; t < reg.M; t++ {
		for p := 0; p < reg.N; p++ {
			b.AddObj(reg.S(t, p), inst.StockingCost())
		}
	}
	for i := 0; i < reg.M; i++ {
		for j := 0; j < reg.M; j++ {
			for p := 1; p < reg.N; p++ {
				b.AddObj(reg.U(i, j, p), inst.TransitionCost(i, j))
			}
		}
	}
}

// addInventoryConstraints adds the families shared by all formulations: empty initial
// stock, flow balance per type and period, and production only in the configured type.
func addInventoryConstraints(inst *Instance, reg *Registry, b *ModelBuilder) {
	M, N := reg.M, reg.N

	Log(LOG_INFO, "Creating and setting initial stock constraints s_t_init = 0")
	for t := 0; t < M; t++ {
		b.AddConstr([]int{reg.S(t, -1)}, []float64{1}, EQUAL, 0, "init_stock_"+itoa(t))
	}

	Log(LOG_INFO, "Creating and setting demand constraints s_t_p-1 + x_t_p - s_t_p = d_t_p")
	for t := 0; t < M; t++ {
		for p := 0; p < N; p++ {
			ind := []int{reg.S(t, p-1), reg.X(t, p), reg.S(t, p)}
			val := []float64{1, 1, -1}
			b.AddConstr(ind, val, EQUAL, float64(inst.Demand(t, p)), "demand_"+itoa(t)+"_"+itoa(p))
		}
	}

	Log(LOG_INFO, "Creating and setting state constraints x_t_p <= y_t_p")
	for t := 0; t < M; t++ {
		for p := 0; p < N; p++ {
			ind := []int{reg.X(t, p), reg.Y(t, p)}
			val := []float64{1, -1}
			b.AddConstr(ind, val, LESS_EQUAL, 0, "state_"+itoa(t)+"_"+itoa(p))
		}
	}
}

// addConfigurationConstraint adds sum_t y_t_p = 1 for period p.
func addConfigurationConstraint(reg *Registry, b *ModelBuilder, p int) {
	ind := make([]int, 0, reg.M)
	val := make([]float64, 0, reg.M)
	for t := 0; t < reg.M; t++ {
		ind = append(ind, reg.Y(t, p))
		val = append(val, 1)
	}
	b.AddConstr(ind, val, EQUAL, 1, "config_"+itoa(p))
}
