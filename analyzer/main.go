package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/lotsizing"
)

func main() {
	app := cli.NewApp()
	app.Name = "analyzer"
	app.Usage = "Prints a CSV summary of a directory of solved instances"
	app.ArgsUsage = "<directory>"
	app.Action = analyze
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func analyze(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("no directory passed")
	}
	dirName := c.Args().First()
	dir, err := os.ReadDir(dirName)
	if err != nil {
		return errors.Wrapf(err, "couldn't open directory %s", dirName)
	}
	fmt.Printf("Name,Formulation,Optimal,Time,Obj,StockCost,TransitionCost,Nodes,Types,Periods,Valid,Comment\n")
	for _, f := range dir {
		fileName := filepath.Join(dirName, f.Name())
		if format := lotsizing.FormatOf(fileName); format == lotsizing.FORMAT_TEXT || f.IsDir() {
			continue
		}
		inst, err := lotsizing.ReadInstanceFile(fileName)
		if err != nil {
			return err
		}
		if inst.Solution == nil {
			fmt.Printf("No solution for %s\n", inst.Name)
			continue
		}
		sol := *inst.Solution
		valid := false
		if instance, err := inst.Instance(); err != nil {
			sol.Comment = strings.TrimSpace(fmt.Sprintf("%s %s", sol.Comment, err.Error()))
		} else if sol.Optimal {
			var comment string
			valid, comment = lotsizing.CheckSolutionValidity(instance, &sol)
			if !valid {
				sol.Comment = strings.TrimSpace(fmt.Sprintf("%s %s", sol.Comment, comment))
			}
		}
		fmt.Printf("%s,%s,%t,%s,%v,%v,%v,%d,%d,%d,%t,%s\n", inst.Name, sol.Formulation, sol.Optimal, sol.Time, sol.Obj,
			sol.StockCost, sol.TransitionCost, sol.Nodes, inst.Types, inst.Periods, valid, strings.ReplaceAll(sol.Comment, ",", ";"))
	}
	return nil
}
