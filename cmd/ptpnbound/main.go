// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Command ptpnbound computes throughput and cycle-time bounds for a
// reference transition of a PTPN described in PNML format.
//
// Usage:
//
//	ptpnbound [flags] name tname
//
// name is the PNML file to read, without its ".pnml" extension; tname is
// the id of the reference transition. Exit codes: 0 on success, 1 if the
// net file cannot be read, 2 if tname does not name a transition of the
// net, 3 if the LP solver reports infeasibility, unboundedness, or a
// backend failure.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dalzilio/ptpn"
	"github.com/dalzilio/ptpn/dot"
	"github.com/dalzilio/ptpn/internal/pnml"
	"github.com/dalzilio/ptpn/simplex"
	"github.com/dalzilio/ptpn/solver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ptpnbound", flag.ContinueOnError)
	lpmodel := fs.Bool("lpmodel", false, "dump the LP models solved to stderr")
	lpsolution := fs.Bool("lpsolution", false, "dump the LP solutions found to stderr")
	out := fs.Bool("out", false, "write the net, annotated with the report, to the two following arguments: name format")
	verbose := fs.Bool("v", false, "verbose progress to stderr")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	var outName, outFormat string
	if *out {
		if len(rest) < 2 {
			fmt.Fprintln(os.Stderr, "usage: ptpnbound [flags] -out name format name tname")
			return 1
		}
		outName, outFormat, rest = rest[0], rest[1], rest[2:]
	}
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ptpnbound [flags] name tname")
		return 1
	}
	name, tname := rest[0], rest[1]

	f, err := os.Open(name + ".pnml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer f.Close()

	model, err := pnml.Parse(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	var b solver.Builder = simplex.Builder{}
	if *lpmodel || *lpsolution {
		b = dumpingBuilder{b, *lpmodel, *lpsolution}
	}

	report, err := ptpn.Analyze(model, tname, b)
	if err != nil {
		switch {
		case errors.Is(err, ptpn.ErrUnknownTransition):
			fmt.Fprintln(os.Stderr, "error:", err)
			return 2
		case errors.Is(err, ptpn.ErrInfeasible), errors.Is(err, ptpn.ErrUnbounded), errors.Is(err, ptpn.ErrSolver):
			fmt.Fprintln(os.Stderr, "error:", err)
			return 3
		default:
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "status: %s\n", report.Status)
	}
	fmt.Printf("throughput(%s) <= %g\n", tname, report.Throughput.Value)
	if report.Status == ptpn.StatusOptimal {
		fmt.Printf("cycle-time(%s) >= %g\n", tname, report.CycleTime.Value)
		fmt.Printf("critical subnet: %d places, %d transitions\n", len(report.Places()), len(report.Transitions()))
	}

	if *out {
		f, err := os.Create(outName)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		defer f.Close()
		switch outFormat {
		case "pnml":
			err = pnml.WriteAnnotated(f, model, report)
		case "dot":
			err = dot.Render(f, model, report)
		default:
			err = fmt.Errorf("unknown -out format %q, want pnml or dot", outFormat)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
	}

	return 0
}

// dumpingBuilder wraps a solver.Builder, writing every model it builds
// and/or every solution it finds to stderr, per the -lpmodel/-lpsolution
// flags.
type dumpingBuilder struct {
	solver.Builder
	model, solution bool
}

func (d dumpingBuilder) NewModel(name string, sense solver.Sense) solver.Model {
	return dumpingModel{d.Builder.NewModel(name, sense), d.model, d.solution}
}

type dumpingModel struct {
	solver.Model
	model, solution bool
}

func (d dumpingModel) Solve() (solver.Solution, error) {
	if d.model {
		d.Model.WriteModel(os.Stderr)
	}
	sol, err := d.Model.Solve()
	if err != nil {
		return sol, err
	}
	if d.solution {
		sol.WriteSolution(os.Stderr)
	}
	return sol, nil
}
