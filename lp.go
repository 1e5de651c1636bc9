package lotsizing

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const lpTermsPerLine = 8

func formatCoef(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTerms(w *bufio.Writer, vars []Var, ind []int, val []float64) {
	for k, idx := range ind {
		if k > 0 && k%lpTermsPerLine == 0 {
			w.WriteString("\n   ")
		}
		if val[k] < 0 {
			w.WriteString(" - " + formatCoef(-val[k]))
		} else {
			w.WriteString(" + " + formatCoef(val[k]))
		}
		w.WriteString(" " + vars[idx].Name)
	}
}

// WriteLP writes the model in CPLEX LP format.
func (m *Model) WriteLP(out io.Writer) error {
	w := bufio.NewWriter(out)
	w.WriteString("\\ Model " + m.name + " (" + m.formulation + ")\n")
	w.WriteString("Minimize\n obj:")
	var ind []int
	var val []float64
	for i, c := range m.obj {
		if c != 0 {
			ind = append(ind, i)
			val = append(val, c)
		}
	}
	if len(ind) == 0 && len(m.vars) > 0 {
		ind, val = []int{0}, []float64{0}
	}
	writeTerms(w, m.vars, ind, val)
	w.WriteString("\nSubject To\n")
	for _, c := range m.constrs {
		w.WriteString(" " + c.Name + ":")
		writeTerms(w, m.vars, c.Ind, c.Val)
		w.WriteString(" " + c.Sense.String() + " " + formatCoef(c.RHS) + "\n")
	}

	var bounds, binaries, generals []string
	for _, v := range m.vars {
		switch v.Type {
		case BINARY:
			binaries = append(binaries, v.Name)
			continue
		case INTEGER:
			generals = append(generals, v.Name)
		}
		if v.Lower == 0 && math.IsInf(v.Upper, 1) {
			continue
		}
		lower := formatCoef(v.Lower)
		if math.IsInf(v.Lower, -1) {
			lower = "-inf"
		}
		upper := "+inf"
		if !math.IsInf(v.Upper, 1) {
			upper = formatCoef(v.Upper)
		}
		bounds = append(bounds, lower+" <= "+v.Name+" <= "+upper)
	}
	if len(bounds) > 0 {
		w.WriteString("Bounds\n " + strings.Join(bounds, "\n ") + "\n")
	}
	writeSection(w, "Binaries", binaries)
	writeSection(w, "Generals", generals)
	w.WriteString("End\n")
	return errors.Wrap(w.Flush(), "writing LP model")
}

func writeSection(w *bufio.Writer, title string, names []string) {
	if len(names) == 0 {
		return
	}
	w.WriteString(title + "\n")
	for k := 0; k < len(names); k += lpTermsPerLine {
		end := k + lpTermsPerLine
		if end > len(names) {
			end = len(names)
		}
		w.WriteString(" " + strings.Join(names[k:end], " ") + "\n")
	}
}
