// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

import (
	"fmt"

	"github.com/dalzilio/ptpn/solver"
)

// criticalResult is the interpreted solution of CriticalSubnetLP.
type criticalResult struct {
	objective float64
	y         []float64 // per expanded place

	// Back-mapped to original entities only (spec §4.5 "Back-mapping"):
	// synthetic places/transitions never appear here, and a critical
	// synthetic transition is reported via the original transition it was
	// expanded from.
	places []int           // expanded place indices, i < n.origPlaceCount
	trans  map[string]bool // original transition ids
}

// solveCriticalSubnet builds and solves the cycle-time LP (spec §4.5) for the
// expanded net n, parameterized by the visit-ratio vector visit computed by
// ThroughputLP, and extracts the critical subnet.
func solveCriticalSubnet(n *expandedNet, visit []float64, b solver.Builder) (*criticalResult, error) {
	const tol = 1e-9
	np, nt := len(n.plID), len(n.trID)
	model := b.NewModel("minCT", solver.Maximize)

	// Objective: maximize sum_j (sum_i B[i,j]*y[i]) * delay[j] * visit[j],
	// i.e. coefficient on y[i] is sum_j B[i,j]*delay[j]*visit[j].
	objCoef := make([]float64, np)
	for j := 0; j < nt; j++ {
		if n.delay[j] == 0 || visit[j] == 0 {
			continue
		}
		for _, a := range n.pre[j] {
			objCoef[a.Idx] += a.Mult * n.delay[j] * visit[j]
		}
	}
	for i := 0; i < np; i++ {
		model.AddVariable(fmt.Sprintf("y%d", i), objCoef[i])
	}

	// Place-invariant: C^T y = 0, one constraint per transition.
	for j := 0; j < nt; j++ {
		if len(n.net[j]) == 0 {
			continue
		}
		coef := make(map[int]float64, len(n.net[j]))
		for _, a := range n.net[j] {
			coef[a.Idx] = a.Mult
		}
		model.AddConstraint(fmt.Sprintf("pinv%d", j), coef, solver.EQ, 0)
	}

	// Normalization against the initial marking: M0^T y = 1.
	coef := make(map[int]float64, len(n.m0))
	for _, a := range n.m0 {
		coef[a.Idx] = a.Mult
	}
	model.AddConstraint("inimark", coef, solver.EQ, 1)

	sol, err := model.Solve()
	if err != nil {
		return nil, fmt.Errorf("%w: minCT: %s", ErrSolver, err)
	}
	switch sol.Status() {
	case solver.StatusInfeasible:
		return nil, fmt.Errorf("%w: minCT", ErrInfeasible)
	case solver.StatusUnbounded:
		return nil, fmt.Errorf("%w: minCT", ErrUnbounded)
	case solver.StatusError:
		return nil, fmt.Errorf("%w: minCT", ErrSolver)
	}

	y := sol.Values()
	support := make([]bool, np)
	for i := 0; i < np; i++ {
		support[i] = y[i] > tol
	}

	res := &criticalResult{
		objective: sol.Objective(),
		y:         append([]float64(nil), y...),
		trans:     make(map[string]bool),
	}
	for i := 0; i < n.origPlaceCount; i++ {
		if support[i] {
			res.places = append(res.places, i)
		}
	}
	for j := 0; j < nt; j++ {
		var preHit, postHit bool
		for _, a := range n.pre[j] {
			if support[a.Idx] {
				preHit = true
				break
			}
		}
		if !preHit {
			continue
		}
		for _, a := range n.post(j) {
			if support[a.Idx] {
				postHit = true
				break
			}
		}
		if postHit {
			res.trans[n.origin[j]] = true
		}
	}
	return res, nil
}
