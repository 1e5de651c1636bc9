package lotsizing

import (
	"fmt"
	"math"
)

// Registry maps the four variable families onto contiguous column ranges:
//
//	x[t][p]    production,  m*n binaries
//	y[t][p]    state,       m*n binaries
//	s[t][p]    stock,       m*(n+1) continuous, p = -1 is the pre-horizon stock
//	u[i][j][p] transition,  m*m*(n-1) binaries, p >= 1
type Registry struct {
	M, N int

	XStart, YStart, SStart, UStart int
	XCount, YCount, SCount, UCount int
	VarCount                       int
}

// NewRegistry declares all variables of inst on the builder and returns their layout.
func NewRegistry(inst *Instance, b *ModelBuilder) (*Registry, error) {
	M, N := inst.Types(), inst.Periods()
	if M <= 0 {
		return nil, &DimensionError{Field: "types", Got: M}
	}
	if N <= 0 {
		return nil, &DimensionError{Field: "periods", Got: N}
	}
	start := b.NumVars()
	r := &Registry{
		M:      M,
		N:      N,
		XCount: M * N,
		YCount: M * N,
		SCount: M * (N + 1),
		UCount: M * M * (N - 1),
	}
	r.XStart = start
	r.YStart = r.XStart + r.XCount
	r.SStart = r.YStart + r.YCount
	r.UStart = r.SStart + r.SCount
	r.VarCount = r.XCount + r.YCount + r.SCount + r.UCount

	Log(LOG_INFO, "Declaring %d variables (x=%d, y=%d, s=%d, u=%d)", r.VarCount, r.XCount, r.YCount, r.SCount, r.UCount)
	for t := 0; t < M; t++ {
		for p := 0; p < N; p++ {
			b.AddVar(fmt.Sprintf("x_%d_%d", t, p), BINARY, 0, 1)
		}
	}
	for t := 0; t < M; t++ {
		for p := 0; p < N; p++ {
			b.AddVar(fmt.Sprintf("y_%d_%d", t, p), BINARY, 0, 1)
		}
	}
	for t := 0; t < M; t++ {
		for p := -1; p < N; p++ {
			b.AddVar(stockName(t, p), CONTINUOUS, 0, math.Inf(1))
		}
	}
	for i := 0; i < M; i++ {
		for j := 0; j < M; j++ {
			for p := 1; p < N; p++ {
				b.AddVar(fmt.Sprintf("u_%d_%d_%d", i, j, p), BINARY, 0, 1)
			}
		}
	}
	return r, nil
}

func stockName(t, p int) string {
	if p < 0 {
		return fmt.Sprintf("s_%d_init", t)
	}
	return fmt.Sprintf("s_%d_%d", t, p)
}

func (r *Registry) checkTypePeriod(family string, t, p, minP int) {
	if t < 0 || t >= r.M || p < minP || p >= r.N {
		panic(fmt.Sprintf("%s[%d][%d] is not declared", family, t, p))
	}
}

// X returns the column of x[t][p].
func (r *Registry) X(t, p int) int {
	r.checkTypePeriod("x", t, p, 0)
	return r.XStart + t*r.N + p
}

func (r *Registry) Y(t, p int) int {
	r.checkTypePeriod("y", t, p, 0)
	return r.YStart + t*r.N + p
}

// S returns the column of s[t][p], p >= -1.
func (r *Registry) S(t, p int) int {
	r.checkTypePeriod("s", t, p, -1)
	return r.SStart + t*(r.N+1) + p + 1
}

// U returns the column of u[i][j][p], p >= 1.
func (r *Registry) U(i, j, p int) int {
	if j < 0 || j >= r.M {
		panic(fmt.Sprintf("u[%d][%d][%d] is not declared", i, j, p))
	}
	r.checkTypePeriod("u", i, p, 1)
	return r.UStart + (i*r.M+j)*(r.N-1) + p - 1
}
