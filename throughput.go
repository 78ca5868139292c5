// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

import (
	"fmt"

	"github.com/dalzilio/ptpn/solver"
)

// transpose turns a slice of columns (cols[j] is the sparse column j, over
// row indices) indexed 0..len(cols)-1 into a slice of rows indexed
// 0..nRows-1. Because cols is visited in increasing column order, each
// produced row stays sorted by column index without an extra sort pass.
func transpose(cols []Marking, nRows int) []Marking {
	rows := make([]Marking, nRows)
	for j, col := range cols {
		for _, a := range col {
			rows[a.Idx] = append(rows[a.Idx], Atom{j, a.Mult})
		}
	}
	return rows
}

// throughputResult is the interpreted solution of ThroughputLP.
type throughputResult struct {
	objective float64
	m         []float64 // M[i], i over expanded places
	s         []float64 // s[j], j over expanded transitions
	x         []float64 // x[j], j over expanded transitions
	visit     []float64 // v[j] = x[j] / x[ref]
}

// solveThroughput builds and solves the primal throughput-maximization LP
// (spec §4.4) for the expanded net n, with objective x[ref] where ref is the
// expanded index of the reference transition.
func solveThroughput(n *expandedNet, ecs [][]int, ref int, b solver.Builder) (*throughputResult, error) {
	np, nt := len(n.plID), len(n.trID)
	model := b.NewModel("maxX", solver.Maximize)

	// Variables: M[0..np), s[0..nt), x[0..nt), in that order.
	for i := 0; i < np; i++ {
		model.AddVariable(fmt.Sprintf("M%d", i), 0)
	}
	for j := 0; j < nt; j++ {
		model.AddVariable(fmt.Sprintf("s%d", j), 0)
	}
	for j := 0; j < nt; j++ {
		coef := 0.0
		if j == ref {
			coef = 1
		}
		model.AddVariable(fmt.Sprintf("x%d", j), coef)
	}
	mOf := func(i int) int { return i }
	sOf := func(j int) int { return np + j }
	xOf := func(j int) int { return np + nt + j }

	cRows := transpose(n.net, np)

	// Reachability: M[i] - sum_j C[i,j]*s[j] = M0[i]
	for i := 0; i < np; i++ {
		coef := map[int]float64{mOf(i): 1}
		for _, a := range cRows[i] {
			coef[sOf(a.Idx)] = -a.Mult
		}
		model.AddConstraint(fmt.Sprintf("reach%d", i), coef, solver.EQ, n.m0.Get(i))
	}

	// Conservative flow: sum_j C[i,j]*x[j] = 0
	for i := 0; i < np; i++ {
		coef := map[int]float64{}
		for _, a := range cRows[i] {
			coef[xOf(a.Idx)] = a.Mult
		}
		if len(coef) == 0 {
			continue
		}
		model.AddConstraint(fmt.Sprintf("flow%d", i), coef, solver.EQ, 0)
	}

	// Little's law: M[i] - delay[j]*B[i,j]*x[j] >= 0, for every (i,j) with
	// B[i,j] > 0 and delay[j] > 0.
	constrIdx := 0
	for j := 0; j < nt; j++ {
		if n.delay[j] <= 0 {
			continue
		}
		for _, a := range n.pre[j] {
			coef := map[int]float64{
				mOf(a.Idx): 1,
				xOf(j):     -n.delay[j] * a.Mult,
			}
			model.AddConstraint(fmt.Sprintf("little%d", constrIdx), coef, solver.GE, 0)
			constrIdx++
		}
	}

	// Routing: for every ECS of size >= 2, for every t in it,
	// (1-w[t])*x[t] - w[t]*sum_{t' != t in ECS} x[t'] = 0
	constrIdx = 0
	for _, group := range ecs {
		if len(group) < 2 {
			continue
		}
		for _, t := range group {
			coef := map[int]float64{xOf(t): 1 - n.w[t]}
			for _, t2 := range group {
				if t2 == t {
					continue
				}
				coef[xOf(t2)] -= n.w[t]
			}
			model.AddConstraint(fmt.Sprintf("routing%d", constrIdx), coef, solver.EQ, 0)
			constrIdx++
		}
	}

	sol, err := model.Solve()
	if err != nil {
		return nil, fmt.Errorf("%w: maxX: %s", ErrSolver, err)
	}
	switch sol.Status() {
	case solver.StatusInfeasible:
		return nil, fmt.Errorf("%w: maxX", ErrInfeasible)
	case solver.StatusUnbounded:
		return nil, fmt.Errorf("%w: maxX", ErrUnbounded)
	case solver.StatusError:
		return nil, fmt.Errorf("%w: maxX", ErrSolver)
	}

	values := sol.Values()
	res := &throughputResult{
		objective: sol.Objective(),
		m:         append([]float64(nil), values[0:np]...),
		s:         append([]float64(nil), values[np:np+nt]...),
		x:         append([]float64(nil), values[np+nt:np+2*nt]...),
	}
	if res.objective > 0 {
		res.visit = make([]float64, nt)
		for j := 0; j < nt; j++ {
			res.visit[j] = res.x[j] / res.x[ref]
		}
	}
	return res, nil
}
