package lotsizing

import (
	"fmt"
	"math"
)

type VarType int8

const (
	CONTINUOUS VarType = iota
	BINARY
	INTEGER
)

func (t VarType) String() string {
	switch t {
	case BINARY:
		return "binary"
	case INTEGER:
		return "integer"
	default:
		return "continuous"
	}
}

type Sense int8

const (
	LESS_EQUAL Sense = iota
	GREATER_EQUAL
	EQUAL
)

func (s Sense) String() string {
	switch s {
	case LESS_EQUAL:
		return "<="
	case GREATER_EQUAL:
		return ">="
	default:
		return "="
	}
}

type Var struct {
	Name  string
	Type  VarType
	Lower float64
	Upper float64
}

// Constr is a sparse linear row: sum(Val[k] * x[Ind[k]]) Sense RHS.
type Constr struct {
	Name  string
	Ind   []int
	Val   []float64
	Sense Sense
	RHS   float64
}

// Model is a minimization MIP. It is created by Build and never changes afterwards.
type Model struct {
	name        string
	formulation string
	vars        []Var
	constrs     []Constr
	obj         []float64
	reg         *Registry
}

func (m *Model) Name() string        { return m.name }
func (m *Model) Formulation() string { return m.formulation }
func (m *Model) NumVars() int        { return len(m.vars) }
func (m *Model) NumConstrs() int     { return len(m.constrs) }

// Registry returns the variable index layout the model was built with.
func (m *Model) Registry() *Registry { return m.reg }

func (m *Model) Var(i int) Var { return m.vars[i] }

func (m *Model) Constr(i int) Constr {
	c := m.constrs[i]
	c.Ind = append([]int(nil), c.Ind...)
	c.Val = append([]float64(nil), c.Val...)
	return c
}

// Objective returns a copy of the objective coefficient vector.
func (m *Model) Objective() []float64 {
	return append([]float64(nil), m.obj...)
}

// ObjectiveValue evaluates the objective at x.
func (m *Model) ObjectiveValue(x []float64) float64 {
	val := 0.0
	for i, c := range m.obj {
		val += c * x[i]
	}
	return val
}

// Violation returns the largest bound or row violation of x.
func (m *Model) Violation(x []float64) float64 {
	worst := 0.0
	for i, v := range m.vars {
		worst = math.Max(worst, v.Lower-x[i])
		worst = math.Max(worst, x[i]-v.Upper)
	}
	for _, c := range m.constrs {
		lhs := 0.0
		for k, idx := range c.Ind {
			lhs += c.Val[k] * x[idx]
		}
		switch c.Sense {
		case LESS_EQUAL:
			worst = math.Max(worst, lhs-c.RHS)
		case GREATER_EQUAL:
			worst = math.Max(worst, c.RHS-lhs)
		default:
			worst = math.Max(worst, math.Abs(lhs-c.RHS))
		}
	}
	return worst
}

type ModelStats struct {
	Binary, Integer, Continuous int
	LessEqual, GreaterEqual     int
	Equal                       int
	NonZeros                    int
}

func (m *Model) Stats() ModelStats {
	var s ModelStats
	for _, v := range m.vars {
		switch v.Type {
		case BINARY:
			s.Binary++
		case INTEGER:
			s.Integer++
		default:
			s.Continuous++
		}
	}
	for _, c := range m.constrs {
		switch c.Sense {
		case LESS_EQUAL:
			s.LessEqual++
		case GREATER_EQUAL:
			s.GreaterEqual++
		default:
			s.Equal++
		}
		s.NonZeros += len(c.Ind)
	}
	return s
}

// ModelBuilder collects variables, rows and objective terms while a formulation is built.
// Referencing an undeclared variable is a programming error and panics.
type ModelBuilder struct {
	vars    []Var
	constrs []Constr
	obj     []float64
}

func (b *ModelBuilder) AddVar(name string, vtype VarType, lower, upper float64) int {
	b.vars = append(b.vars, Var{Name: name, Type: vtype, Lower: lower, Upper: upper})
	b.obj = append(b.obj, 0)
	return len(b.vars) - 1
}

func (b *ModelBuilder) NumVars() int { return len(b.vars) }

func (b *ModelBuilder) checkIndex(idx int) {
	if idx < 0 || idx >= len(b.vars) {
		panic(fmt.Sprintf("variable index %d has not been declared (%d variables)", idx, len(b.vars)))
	}
}

func (b *ModelBuilder) AddConstr(ind []int, val []float64, sense Sense, rhs float64, name string) {
	if len(ind) == 0 || len(ind) != len(val) {
		panic(fmt.Sprintf("constraint %s: %d indices for %d coefficients", name, len(ind), len(val)))
	}
	for _, idx := range ind {
		b.checkIndex(idx)
	}
	Log(LOG_SPAM, "Adding constraint %s with %d terms %s %v", name, len(ind), sense, rhs)
	b.constrs = append(b.constrs, Constr{
		Name:  name,
		Ind:   append([]int(nil), ind...),
		Val:   append([]float64(nil), val...),
		Sense: sense,
		RHS:   rhs,
	})
}

// AddObj adds coef to the objective coefficient of variable idx.
func (b *ModelBuilder) AddObj(idx int, coef float64) {
	b.checkIndex(idx)
	b.obj[idx] += coef
}

// Model freezes the collected variables, rows and objective. reg may be nil for models that
// are not built from an Instance.
func (b *ModelBuilder) Model(name, formulation string, reg *Registry) *Model {
	return &Model{
		name:        name,
		formulation: formulation,
		vars:        b.vars,
		constrs:     b.constrs,
		obj:         b.obj,
		reg:         reg,
	}
}
