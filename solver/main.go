package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/lotsizing"
	"git.solver4all.com/azaryc2s/lotsizing/bnb"
)

func main() {
	app := cli.NewApp()
	app.Name = "solver"
	app.Usage = "Integer programming formulations for the discrete, single-machine, multi-item, single-level lot sizing problem"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "input, i", Value: "input.json", Usage: "Path to the input instance or a directory of instances"},
		cli.StringFlag{Name: "output, o", Usage: "Path to the output file. By default the solution is added to the input file (text inputs get a .json next to them)"},
		cli.StringFlag{Name: "config, c", Usage: "Optional config file (yaml, json or toml)"},
		cli.StringFlag{Name: "formulation, f", Usage: "How the problem is to be modelled. Possible: {STD,FLOW}"},
		cli.IntFlag{Name: "log", Usage: "Level of the logging output. Higher value is more verbose. Range 1-4"},
		cli.DurationFlag{Name: "time-limit", Usage: "Time limit per instance, 0 for none"},
		cli.IntFlag{Name: "max-nodes", Usage: "Branch-and-bound node limit per instance, 0 for none"},
		cli.IntFlag{Name: "workers", Usage: "Number of instances solved in parallel when the input is a directory"},
		cli.BoolFlag{Name: "lp", Usage: "Write the model to <input>.lp before solving"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		lotsizing.Log(lotsizing.LOG_ERROR, "%s", err.Error())
		lotsizing.SyncLoggers()
		os.Exit(1)
	}
	lotsizing.SyncLoggers()
}

func loadConfig(c *cli.Context) (lotsizing.SolverConfig, error) {
	cfg, err := lotsizing.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("formulation") {
		cfg.Formulation = strings.ToUpper(c.String("formulation"))
	}
	if c.IsSet("log") {
		cfg.LogLevel = c.Int("log")
	}
	if c.IsSet("time-limit") {
		cfg.TimeLimit = c.Duration("time-limit")
	}
	if c.IsSet("max-nodes") {
		cfg.MaxNodes = c.Int("max-nodes")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("lp") {
		cfg.WriteLP = c.Bool("lp")
	}
	return cfg, cfg.Validate()
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	lotsizing.InitLoggers(cfg.LogLevel)
	formulation, err := lotsizing.FormulationByName(cfg.Formulation)
	if err != nil {
		return err
	}

	input := c.String("input")
	paths, err := instancePaths(input)
	if err != nil {
		return err
	}
	if len(paths) > 1 && c.String("output") != "" {
		return errors.New("--output can only be used with a single input file")
	}

	files := make([]*lotsizing.InstanceFile, len(paths))
	jobs := make([]lotsizing.Job, 0, len(paths))
	for i, path := range paths {
		f, err := lotsizing.ReadInstanceFile(path)
		if err != nil {
			return err
		}
		inst, err := f.Instance()
		if err != nil {
			return errors.Wrapf(err, "at %s", path)
		}
		if cfg.WriteLP {
			if err := writeLP(path, inst, formulation); err != nil {
				return err
			}
		}
		files[i] = f
		jobs = append(jobs, lotsizing.Job{Name: path, Instance: inst})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sysInfo := lotsizing.CollectSysInfo()
	results, err := lotsizing.SolveBatch(ctx, jobs, cfg.Workers, formulation, bnb.FromConfig(cfg))
	if err != nil {
		return err
	}

	failed := 0
	for i, res := range results {
		sol := res.Solution
		if res.Err != nil {
			failed++
			sol = &lotsizing.Solution{Formulation: formulation.Name(), Comment: res.Err.Error()}
		} else if valid, comment := lotsizing.CheckSolutionValidity(jobs[i].Instance, sol); !valid {
			lotsizing.Log(lotsizing.LOG_ERROR, "At %s: %s", res.Name, comment)
			sol.Comment = comment
		} else {
			lotsizing.Log(lotsizing.LOG_INFO, "The computed solution for %s is valid! Schedule %v with obj-Value %v", res.Name, sol.Production, sol.Obj)
		}
		sol.System = sysInfo
		files[i].Solution = sol

		output := c.String("output")
		if output == "" {
			output = lotsizing.SolutionPath(res.Name)
		}
		if err := lotsizing.WriteInstanceFile(output, files[i]); err != nil {
			return err
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d instances could not be solved", failed, len(results))
	}
	return nil
}

// instancePaths returns input itself or, for a directory, every instance file in it.
func instancePaths(input string) ([]string, error) {
	stat, err := os.Stat(input)
	if err != nil {
		return nil, errors.Wrapf(err, "at %s", input)
	}
	if !stat.IsDir() {
		return []string{input}, nil
	}
	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open directory %s", input)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml", ".txt":
			paths = append(paths, filepath.Join(input, e.Name()))
		}
	}
	return paths, nil
}

func writeLP(path string, inst *lotsizing.Instance, f lotsizing.Formulation) error {
	model, err := lotsizing.Build(inst, f)
	if err != nil {
		return errors.Wrapf(err, "at %s", path)
	}
	lpName := strings.TrimSuffix(path, filepath.Ext(path)) + ".lp"
	out, err := os.Create(lpName)
	if err != nil {
		return errors.Wrapf(err, "creating %s", lpName)
	}
	defer out.Close()
	return model.WriteLP(out)
}
