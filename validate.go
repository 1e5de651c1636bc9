package lotsizing

import (
	"fmt"
	"math"
)

// CheckSolutionValidity recomputes the solution from its schedules: the production must
// meet every demand, happen in the configured type, and the recomputed costs must match Obj.
func CheckSolutionValidity(inst *Instance, sol *Solution) (bool, string) {
	if len(sol.Production) != inst.Periods() || len(sol.Configuration) != inst.Periods() {
		return false, fmt.Sprintf("The schedule covers %d/%d periods but the instance has %d!", len(sol.Production), len(sol.Configuration), inst.Periods())
	}
	for p, t := range sol.Configuration {
		if t < 0 || t >= inst.Types() {
			return false, fmt.Sprintf("Period %d is configured for unknown type %d!", p, t)
		}
		if prod := sol.Production[p]; prod != IDLE && prod != t {
			return false, fmt.Sprintf("Type %d is produced in period %d while the machine is configured for %d!", prod, p, t)
		}
	}
	feasible, err := inst.IsFeasible(sol.Production)
	if err != nil {
		return false, err.Error()
	}
	if !feasible {
		return false, fmt.Sprintf("The production schedule %v does not meet the demand!", sol.Production)
	}
	cost := inst.ScheduleInventoryCost(sol.Production) + inst.ConfigurationCost(sol.Configuration)
	if math.Abs(cost-sol.Obj) > 1e-6*math.Max(1, math.Abs(sol.Obj)) {
		return false, fmt.Sprintf("The computed solution costs %v but the objective is %v!", cost, sol.Obj)
	}
	return true, ""
}
