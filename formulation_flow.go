package lotsizing

// Flow encodes the configuration sequence as a unit flow through the layered
// transition graph: node (t, p) is y_t_p and arc (i, p-1) -> (j, p) is u_i_j_p.
// One unit enters layer 0; conservation at every node keeps exactly one configuration
// per period and sets u_i_j_p = y_i_p-1 * y_j_p for binary y.
type Flow struct{}

func (Flow) Name() string { return FORMULATION_FLOW }

func (Flow) BuildVariables(inst *Instance, b *ModelBuilder) (*Registry, error) {
	return NewRegistry(inst, b)
}

func (Flow) BuildConstraints(inst *Instance, reg *Registry, b *ModelBuilder) error {
	addInventoryConstraints(inst, reg, b)

	// Conservation carries the unit through later layers. Configuration rows there
	// would be linearly dependent on the flow rows.
	Log(LOG_INFO, "Creating and setting source constraint sum_t(y_t_0) = 1")
	addConfigurationConstraint(reg, b, 0)

	Log(LOG_INFO, "Creating and setting outflow constraints sum_j(u_i_j_p) = y_i_p-1")
	for p := 1; p < reg.N; p++ {
		for i := 0; i < reg.M; i++ {
			ind := []int{reg.Y(i, p-1)}
			val := []float64{-1}
			for j := 0; j < reg.M; j++ {
				ind = append(ind, reg.U(i, j, p))
				val = append(val, 1)
			}
			b.AddConstr(ind, val, EQUAL, 0, "flow_out_"+itoa(i)+"_"+itoa(p))
		}
	}

	Log(LOG_INFO, "Creating and setting inflow constraints sum_i(u_i_j_p) = y_j_p")
	for p := 1; p < reg.N; p++ {
		for j := 0; j < reg.M; j++ {
			ind := []int{reg.Y(j, p)}
			val := []float64{-1}
			for i := 0; i < reg.M; i++ {
				ind = append(ind, reg.U(i, j, p))
				val = append(val, 1)
			}
			b.AddConstr(ind, val, EQUAL, 0, "flow_in_"+itoa(j)+"_"+itoa(p))
		}
	}
	return nil
}

func (Flow) BuildObjective(inst *Instance, reg *Registry, b *ModelBuilder) error {
	composeObjective(inst, reg, b)
	return nil
}
