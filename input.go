package lotsizing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FormatOf derives the file format from the extension of path.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FORMAT_JSON
	case ".yaml", ".yml":
		return FORMAT_YAML
	default:
		return FORMAT_TEXT
	}
}

// ParseText reads the plain format: number of periods, number of types, one demand row
// per type, the stocking cost and one transition-cost row per type. Blank lines are ignored.
func ParseText(r io.Reader) (*InstanceFile, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading instance")
	}
	if len(lines) < 2 {
		return nil, errors.Errorf("instance has %d lines, expected at least 2", len(lines))
	}
	periods, err := strconv.Atoi(lines[0])
	if err != nil {
		return nil, errors.Wrap(err, "parsing number of periods")
	}
	types, err := strconv.Atoi(lines[1])
	if err != nil {
		return nil, errors.Wrap(err, "parsing number of types")
	}
	if periods <= 0 {
		return nil, &DimensionError{Field: "periods", Got: periods}
	}
	if types <= 0 {
		return nil, &DimensionError{Field: "types", Got: types}
	}
	rest := lines[2:]
	if len(rest) != 2*types+1 {
		return nil, &DimensionError{Field: "instance lines after the header", Got: len(rest), Want: 2*types + 1}
	}
	f := &InstanceFile{Type: "lotsizing", Periods: periods, Types: types}
	for t := 0; t < types; t++ {
		row, err := parseInts(rest[t])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing demand of type %d", t)
		}
		f.Demand = append(f.Demand, row)
	}
	f.StockingCost, err = strconv.ParseFloat(rest[types], 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing stocking cost")
	}
	for t := 0; t < types; t++ {
		row, err := parseFloats(rest[types+1+t])
		if err != nil {
			return nil, errors.Wrapf(err, "parsing transition costs of type %d", t)
		}
		f.TransitionCost = append(f.TransitionCost, row)
	}
	return f, nil
}

func parseInts(line string) ([]int, error) {
	fields := strings.Fields(line)
	res := make([]int, len(fields))
	for i, s := range fields {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func parseFloats(line string) ([]float64, error) {
	fields := strings.Fields(line)
	res := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

// WriteText writes inst in the plain format read by ParseText.
func WriteText(w io.Writer, inst *Instance) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n%d\n", inst.Periods(), inst.Types())
	for _, row := range inst.DemandMatrix() {
		sb.WriteString(strings.Trim(fmt.Sprint(row), "[]") + "\n")
	}
	sb.WriteString(formatCoef(inst.StockingCost()) + "\n")
	for _, row := range inst.TransitionMatrix() {
		parts := make([]string, len(row))
		for j, c := range row {
			parts[j] = formatCoef(c)
		}
		sb.WriteString(strings.Join(parts, " ") + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "writing instance")
}

// Instance checks the declared sizes against the data and builds the Instance.
func (f *InstanceFile) Instance() (*Instance, error) {
	if f.Types <= 0 {
		return nil, &DimensionError{Field: "types", Got: f.Types}
	}
	if f.Periods <= 0 {
		return nil, &DimensionError{Field: "periods", Got: f.Periods}
	}
	if len(f.Demand) != f.Types {
		return nil, &DimensionError{Field: "demand", Got: len(f.Demand), Want: f.Types}
	}
	for t, row := range f.Demand {
		if len(row) != f.Periods {
			return nil, &DimensionError{Field: "demand row " + itoa(t), Got: len(row), Want: f.Periods}
		}
	}
	return NewInstance(f.Demand, f.StockingCost, f.TransitionCost)
}

// NewInstanceFile wraps inst for writing.
func NewInstanceFile(name string, inst *Instance) *InstanceFile {
	return &InstanceFile{
		Name:           name,
		Type:           "lotsizing",
		Periods:        inst.Periods(),
		Types:          inst.Types(),
		Demand:         inst.DemandMatrix(),
		StockingCost:   inst.StockingCost(),
		TransitionCost: inst.TransitionMatrix(),
	}
}

// ReadInstanceFile reads a text, JSON or YAML instance depending on the extension of path.
func ReadInstanceFile(path string) (*InstanceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	var f *InstanceFile
	switch FormatOf(path) {
	case FORMAT_JSON:
		f = &InstanceFile{}
		err = json.Unmarshal(data, f)
	case FORMAT_YAML:
		f = &InstanceFile{}
		err = yaml.Unmarshal(data, f)
	default:
		f, err = ParseText(strings.NewReader(string(data)))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// WriteInstanceFile writes f as JSON or YAML depending on the extension of path.
// Text paths are not supported since the text format cannot carry a solution.
func WriteInstanceFile(path string, f *InstanceFile) error {
	var (
		data []byte
		err  error
	)
	switch FormatOf(path) {
	case FORMAT_JSON:
		data, err = json.MarshalIndent(f, "", "\t")
		if err == nil {
			data = []byte(SanitizeJsonArrayLineBreaks(string(data)))
		}
	case FORMAT_YAML:
		data, err = yaml.Marshal(f)
	default:
		return errors.Errorf("cannot write instance file %s: use a .json or .yaml path", path)
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing %s", path)
}

// SolutionPath is the default output of a solved input: the input itself for JSON and
// YAML files, <name>.json next to it for text files.
func SolutionPath(input string) string {
	if FormatOf(input) != FORMAT_TEXT {
		return input
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
}
