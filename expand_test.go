// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

import "testing"

// TestExpandPreservesUndistributedTransition checks the "expansion
// preservation" invariant: a transition with no probabilistic output
// distribution keeps exactly its original pre/post arcs after expansion.
func TestExpandPreservesUndistributedTransition(t *testing.T) {
	model, err := NewNetModel("self-loop",
		[]Place{{ID: "p0", Initial: 1}},
		[]Transition{{ID: "t0", Time: Exponential, Params: map[string]float64{"lambda": 2}}},
		[]Arc{
			{ID: "a1", Mult: 1, PlaceID: "p0", TransID: "t0", Dir: ArcIn},
			{ID: "a2", Mult: 1, PlaceID: "p0", TransID: "t0", Dir: ArcOut},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	n, err := expand(model)
	if err != nil {
		t.Fatalf("expand: %s", err)
	}
	if len(n.plID) != 1 || len(n.trID) != 1 {
		t.Fatalf("expected no synthetic entities, got %d places, %d transitions", len(n.plID), len(n.trID))
	}
	tIdx := n.trIdx["t0"]
	if got := n.pre[tIdx].Get(0); got != 1 {
		t.Errorf("pre[t0].Get(p0) = %v, want 1", got)
	}
	if got := n.post(tIdx).Get(0); got != 1 {
		t.Errorf("post(t0).Get(p0) = %v, want 1", got)
	}
}

// TestExpandProbabilisticChoice exercises scenario 3 of the spec's literal
// test cases: a named distribution D on transition t with two outcomes.
func TestExpandProbabilisticChoice(t *testing.T) {
	model, err := NewNetModel("prob-choice",
		[]Place{{ID: "p", Initial: 1}, {ID: "q"}, {ID: "r"}},
		[]Transition{
			{ID: "t", Time: Exponential, Params: map[string]float64{"lambda": 1}},
			{ID: "u", Time: Constant, Params: map[string]float64{"k": 4}},
			{ID: "v", Time: Constant, Params: map[string]float64{"k": 1}},
		},
		[]Arc{
			{ID: "pt", Mult: 1, PlaceID: "p", TransID: "t", Dir: ArcIn},
			{ID: "tq", Mult: 1, PlaceID: "q", TransID: "t", Dir: ArcOut, DistID: "D", Prob: 0.5, HasProb: true},
			{ID: "tr", Mult: 1, PlaceID: "r", TransID: "t", Dir: ArcOut, DistID: "D", Prob: 0.5, HasProb: true},
			{ID: "qu", Mult: 1, PlaceID: "q", TransID: "u", Dir: ArcIn},
			{ID: "up", Mult: 1, PlaceID: "p", TransID: "u", Dir: ArcOut},
			{ID: "rv", Mult: 1, PlaceID: "r", TransID: "v", Dir: ArcIn},
			{ID: "vp", Mult: 1, PlaceID: "p", TransID: "v", Dir: ArcOut},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	n, err := expand(model)
	if err != nil {
		t.Fatalf("expand: %s", err)
	}
	if len(n.plID) != 4 {
		t.Fatalf("expected 1 intermediate place, got %d places total", len(n.plID))
	}
	pD, ok := n.plIdx["t/D"]
	if !ok {
		t.Fatalf("expected intermediate place t/D")
	}

	var weightSum float64
	var synthCount int
	for j, origin := range n.origin {
		if origin == "t" && n.synthetic[j] {
			synthCount++
			weightSum += n.w[j]
			if got := n.pre[j].Get(pD); got != 1 {
				t.Errorf("synthetic transition %d: pre[p_tD] = %v, want 1", j, got)
			}
		}
	}
	if synthCount != 2 {
		t.Fatalf("expected 2 synthetic transitions for D, got %d", synthCount)
	}
	if weightSum != 1 {
		t.Errorf("expected weights to sum to 1, got %v", weightSum)
	}
}
