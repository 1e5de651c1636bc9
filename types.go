package lotsizing

const (
	FORMULATION_STD  = "STD"
	FORMULATION_FLOW = "FLOW"
	FORMAT_JSON      = "JSON"
	FORMAT_YAML      = "YAML"
	FORMAT_TEXT      = "TEXT"

	// IDLE marks a period without production in a schedule.
	IDLE = -1
)

// InstanceFile is the on-disk form of an instance. Solved instances carry their solution.
type InstanceFile struct {
	Name    string `json:"name" yaml:"name"`
	Comment string `json:"comment" yaml:"comment"`
	Type    string `json:"type" yaml:"type"`

	Periods        int         `json:"periods" yaml:"periods"`
	Types          int         `json:"types" yaml:"types"`
	Demand         [][]int     `json:"demand" yaml:"demand"`
	StockingCost   float64     `json:"stocking_cost" yaml:"stocking_cost"`
	TransitionCost [][]float64 `json:"transition_cost" yaml:"transition_cost"`

	Solution *Solution `json:"solution,omitempty" yaml:"solution,omitempty"`
}

type Solution struct {
	RunID          string  `json:"run_id" yaml:"run_id"`
	Formulation    string  `json:"formulation" yaml:"formulation"`
	Obj            float64 `json:"obj" yaml:"obj"`
	StockCost      float64 `json:"stock_cost" yaml:"stock_cost"`
	TransitionCost float64 `json:"transition_cost" yaml:"transition_cost"`
	Optimal        bool    `json:"optimal" yaml:"optimal"`
	Production     []int   `json:"production" yaml:"production"`
	Configuration  []int   `json:"configuration" yaml:"configuration"`
	Nodes          int     `json:"nodes" yaml:"nodes"`

	Time    string  `json:"time" yaml:"time"`
	System  SysInfo `json:"system" yaml:"system"`
	Comment string  `json:"comment" yaml:"comment"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string `json:"platform" yaml:"platform"`
	CPU      string `json:"cpu" yaml:"cpu"`
	RAM      string `json:"ram" yaml:"ram"`
}
