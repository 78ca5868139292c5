// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package simplex

import (
	"bytes"
	"math"
	"testing"

	"github.com/dalzilio/ptpn/solver"
)

func TestSimplexMaximize(t *testing.T) {
	var b Builder
	m := b.NewModel("max-x", solver.Maximize)
	x := m.AddVariable("x", 1)
	m.AddConstraint("cap", map[int]float64{x: 1}, solver.LE, 5)

	sol, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if sol.Status() != solver.StatusOptimal {
		t.Fatalf("status = %v, want StatusOptimal", sol.Status())
	}
	if math.Abs(sol.Objective()-5) > 1e-6 {
		t.Errorf("objective = %v, want 5", sol.Objective())
	}
	if math.Abs(sol.Values()[x]-5) > 1e-6 {
		t.Errorf("x = %v, want 5", sol.Values()[x])
	}
}

func TestSimplexInfeasible(t *testing.T) {
	var b Builder
	m := b.NewModel("infeasible", solver.Minimize)
	x := m.AddVariable("x", 1)
	m.AddConstraint("eq1", map[int]float64{x: 1}, solver.EQ, 1)
	m.AddConstraint("eq2", map[int]float64{x: 1}, solver.EQ, 2)

	sol, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if sol.Status() != solver.StatusInfeasible {
		t.Fatalf("status = %v, want StatusInfeasible", sol.Status())
	}
}

func TestModelWriteModel(t *testing.T) {
	var b Builder
	m := b.NewModel("dump", solver.Maximize)
	x := m.AddVariable("x", 2)
	m.AddConstraint("cap", map[int]float64{x: 1}, solver.LE, 5)

	var buf bytes.Buffer
	if err := m.WriteModel(&buf); err != nil {
		t.Fatalf("WriteModel: %s", err)
	}
	if buf.Len() == 0 {
		t.Errorf("expected non-empty model dump")
	}
}
