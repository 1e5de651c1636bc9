package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/lotsizing"
)

func main() {
	app := cli.NewApp()
	app.Name = "generator"
	app.Usage = "Generates random lot sizing instances"
	app.Flags = []cli.Flag{
		cli.IntSliceFlag{Name: "m", Usage: "List of number of machine types"},
		cli.IntSliceFlag{Name: "n", Usage: "List of number of time periods"},
		cli.StringFlag{Name: "name", Value: "lotsizing", Usage: "Name for the instance"},
		cli.StringFlag{Name: "outputDir", Value: ".", Usage: "Output directory"},
		cli.StringFlag{Name: "format", Value: "json", Usage: "Output format. Possible: {json,yaml,txt}"},
		cli.IntFlag{Name: "count", Value: 1, Usage: "Number of instances per combination"},
		cli.Float64Flag{Name: "density", Value: 0.3, Usage: "Probability of a demand per type and period"},
		cli.IntFlag{Name: "stockCost", Value: 10, Usage: "Stocking cost per item and period"},
		cli.IntFlag{Name: "rngStart", Value: 1, Usage: "The lowest transition cost between two different types"},
		cli.IntFlag{Name: "rngEnd", Value: 10, Usage: "The highest added transition cost (actual max value is start+end-1)"},
		cli.Int64Flag{Name: "seed", Usage: "Random seed, 0 for the current time"},
	}
	app.Action = generate
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(c *cli.Context) error {
	types, periods := c.IntSlice("m"), c.IntSlice("n")
	if len(types) == 0 || len(periods) == 0 {
		return errors.New("at least one -m and one -n value is required")
	}
	if c.Int("rngEnd") < 1 {
		return errors.Errorf("rngEnd must be positive, got %d", c.Int("rngEnd"))
	}
	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	format := strings.ToLower(c.String("format"))

	for l := 0; l < c.Int("count"); l++ {
		for _, m := range types {
			for _, n := range periods {
				inst, err := randomInstance(rng, m, n, c.Float64("density"), c.Int("stockCost"), c.Int("rngStart"), c.Int("rngEnd"))
				if err != nil {
					return err
				}
				instName := fmt.Sprintf("%s_%d_%d_%d", c.String("name"), m, n, l)
				path := filepath.Join(c.String("outputDir"), instName+"."+format)
				if err := write(path, instName, inst, seed); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// randomInstance draws demands per period while the accumulated demand still fits into
// the periods seen so far, so every generated instance is feasible.
func randomInstance(rng *rand.Rand, m, n int, density float64, stockCost, rngStart, rngEnd int) (*lotsizing.Instance, error) {
	demand := make([][]int, m)
	for t := range demand {
		demand[t] = make([]int, n)
	}
	total := 0
	for p := 0; p < n; p++ {
		for t := 0; t < m; t++ {
			if rng.Float64() < density && total+1 <= p+1 {
				demand[t][p] = 1
				total++
			}
		}
	}
	trans := make([][]float64, m)
	for i := range trans {
		trans[i] = make([]float64, m)
		for j := range trans[i] {
			if i != j {
				trans[i][j] = float64(rngStart + rng.Intn(rngEnd))
			}
		}
	}
	return lotsizing.NewInstance(demand, float64(stockCost), trans)
}

func write(path, name string, inst *lotsizing.Instance, seed int64) error {
	if lotsizing.FormatOf(path) == lotsizing.FORMAT_TEXT {
		out, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "creating %s", path)
		}
		defer out.Close()
		return lotsizing.WriteText(out, inst)
	}
	f := lotsizing.NewInstanceFile(name, inst)
	f.Comment = fmt.Sprintf("%s instance with %d types and %d periods, seed %d", name, inst.Types(), inst.Periods(), seed)
	return lotsizing.WriteInstanceFile(path, f)
}
