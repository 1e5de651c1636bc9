package lotsizing

// Standard is the direct encoding: one configuration per period and transitions
// linearized as u_i_j_p >= y_i_p-1 + y_j_p - 1.
type Standard struct{}

func (Standard) Name() string { return FORMULATION_STD }

func (Standard) BuildVariables(inst *Instance, b *ModelBuilder) (*Registry, error) {
	return NewRegistry(inst, b)
}

func (Standard) BuildConstraints(inst *Instance, reg *Registry, b *ModelBuilder) error {
	addInventoryConstraints(inst, reg, b)

	Log(LOG_INFO, "Creating and setting configuration constraints sum_t(y_t_p) = 1")
	for p := 0; p < reg.N; p++ {
		addConfigurationConstraint(reg, b, p)
	}

	Log(LOG_INFO, "Creating and setting transition constraints u_i_j_p - y_i_p-1 - y_j_p >= -1")
	for i := 0; i < reg.M; i++ {
		for j := 0; j < reg.M; j++ {
			for p := 1; p < reg.N; p++ {
				ind := []int{reg.U(i, j, p), reg.Y(i, p-1), reg.Y(j, p)}
				val := []float64{1, -1, -1}
				b.AddConstr(ind, val, GREATER_EQUAL, -1, "transition_"+itoa(i)+"_"+itoa(j)+"_"+itoa(p))
			}
		}
	}
	return nil
}

func (Standard) BuildObjective(inst *Instance, reg *Registry, b *ModelBuilder) error {
	composeObjective(inst, reg, b)
	return nil
}
