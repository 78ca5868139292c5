// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

/*
Package simplex is the concrete solver.Builder backend used by cmd/ptpnbound:
it accumulates a dense equality-standard-form tableau and hands it to
gonum.org/v1/gonum/optimize/convex/lp.Simplex, which includes its own
phase-1 search for an initial feasible basis. Package ptpn never imports
this package directly; it is wired in only by the CLI entry point.
*/
package simplex

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/dalzilio/ptpn/solver"
)

const tol = 1e-10

// Builder is a solver.Builder backed by gonum's dense simplex implementation.
// It holds no state of its own; every NewModel call returns a fresh Model.
type Builder struct{}

// NewModel returns a fresh, empty Model.
func (Builder) NewModel(name string, sense solver.Sense) solver.Model {
	return &Model{name: name, sense: sense}
}

type variable struct {
	name   string
	objCoef float64
}

type row struct {
	name  string
	coef  map[int]float64
	sense solver.ConstraintSense
	rhs   float64
}

// Model accumulates variables and constraints for one linear program before
// Solve converts it to the equality-standard form lp.Simplex requires:
// every LE row gains a slack column, every GE row a surplus column, both
// with objective coefficient 0.
type Model struct {
	name  string
	sense solver.Sense
	vars  []variable
	rows  []row
}

// AddVariable implements solver.Model.
func (m *Model) AddVariable(name string, objCoef float64) int {
	m.vars = append(m.vars, variable{name: name, objCoef: objCoef})
	return len(m.vars) - 1
}

// AddConstraint implements solver.Model.
func (m *Model) AddConstraint(name string, coef map[int]float64, sense solver.ConstraintSense, rhs float64) {
	cp := make(map[int]float64, len(coef))
	for k, v := range coef {
		cp[k] = v
	}
	m.rows = append(m.rows, row{name: name, coef: cp, sense: sense, rhs: rhs})
}

// Solve implements solver.Model. It builds the dense equality-standard-form
// tableau (original variables, then one slack/surplus column per LE/GE row)
// and calls lp.Simplex, always minimizing: a Maximize model is solved by
// negating its objective row and negating the returned optimum back.
func (m *Model) Solve() (solver.Solution, error) {
	nOrig := len(m.vars)
	nSlack := 0
	for _, r := range m.rows {
		if r.sense != solver.EQ {
			nSlack++
		}
	}
	n := nOrig + nSlack

	c := make([]float64, n)
	for i, v := range m.vars {
		c[i] = v.objCoef
		if m.sense == solver.Maximize {
			c[i] = -c[i]
		}
	}

	dense := mat.NewDense(len(m.rows), n, nil)
	b := make([]float64, len(m.rows))
	slackCol := nOrig
	for i, r := range m.rows {
		for j, coef := range r.coef {
			dense.Set(i, j, coef)
		}
		switch r.sense {
		case solver.LE:
			dense.Set(i, slackCol, 1)
			slackCol++
		case solver.GE:
			dense.Set(i, slackCol, -1)
			slackCol++
		}
		b[i] = r.rhs
	}

	optF, optX, err := lp.Simplex(c, dense, b, tol, nil)
	sol := &Solution{model: m, nOrig: nOrig}
	switch {
	case err == nil:
		sol.status = solver.StatusOptimal
		sol.objective = optF
		if m.sense == solver.Maximize {
			sol.objective = -sol.objective
		}
		sol.values = append([]float64(nil), optX[:nOrig]...)
		return sol, nil
	case err == lp.ErrInfeasible:
		sol.status = solver.StatusInfeasible
		return sol, nil
	case err == lp.ErrUnbounded:
		sol.status = solver.StatusUnbounded
		return sol, nil
	default:
		sol.status = solver.StatusError
		return sol, fmt.Errorf("simplex: %s: %w", m.name, err)
	}
}

// WriteModel implements solver.Model, writing a plain-text rendering of the
// objective and constraint rows (one per line, "name: coef*var ... <= rhs").
func (m *Model) WriteModel(w io.Writer) error {
	var b strings.Builder
	dir := "min"
	if m.sense == solver.Maximize {
		dir = "max"
	}
	fmt.Fprintf(&b, "%s: %s\n", m.name, dir)
	fmt.Fprint(&b, "obj:")
	for i, v := range m.vars {
		if v.objCoef != 0 {
			fmt.Fprintf(&b, " %+g*%s", v.objCoef, v.name)
		}
		_ = i
	}
	b.WriteByte('\n')
	symbols := map[solver.ConstraintSense]string{solver.EQ: "=", solver.LE: "<=", solver.GE: ">="}
	for _, r := range m.rows {
		fmt.Fprintf(&b, "%s:", r.name)
		for idx, coef := range r.coef {
			fmt.Fprintf(&b, " %+g*%s", coef, m.vars[idx].name)
		}
		fmt.Fprintf(&b, " %s %g\n", symbols[r.sense], r.rhs)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Solution is a solver.Solution backed by gonum's simplex result.
type Solution struct {
	model     *Model
	nOrig     int
	status    solver.Status
	objective float64
	values    []float64
}

// Status implements solver.Solution.
func (s *Solution) Status() solver.Status { return s.status }

// Objective implements solver.Solution.
func (s *Solution) Objective() float64 { return s.objective }

// Values implements solver.Solution.
func (s *Solution) Values() []float64 { return s.values }

// WriteSolution implements solver.Solution, writing one "var = value" line
// per original variable of the model.
func (s *Solution) WriteSolution(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "status: %s\n", statusName(s.status))
	if s.status == solver.StatusOptimal {
		fmt.Fprintf(&b, "objective: %s\n", strconv.FormatFloat(s.objective, 'g', -1, 64))
		for i, v := range s.values {
			fmt.Fprintf(&b, "%s = %s\n", s.model.vars[i].name, strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func statusName(s solver.Status) string {
	switch s {
	case solver.StatusOptimal:
		return "optimal"
	case solver.StatusInfeasible:
		return "infeasible"
	case solver.StatusUnbounded:
		return "unbounded"
	default:
		return "error"
	}
}
