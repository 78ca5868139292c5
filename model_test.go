// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

import (
	"errors"
	"testing"
)

func TestNewNetModelValid(t *testing.T) {
	m, err := NewNetModel("self-loop",
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
	if m.Trans[0].Delay != 0.5 {
		t.Errorf("expected delay 0.5, got %v", m.Trans[0].Delay)
	}
	if i, ok := m.PlaceIndex("p0"); !ok || i != 0 {
		t.Errorf("PlaceIndex(p0) = %d, %v", i, ok)
	}
}

func TestNewNetModelDuplicatePlace(t *testing.T) {
	_, err := NewNetModel("dup",
		[]Place{{ID: "p0"}, {ID: "p0"}},
		nil, nil,
	)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewNetModelNegativeInitial(t *testing.T) {
	_, err := NewNetModel("neg", []Place{{ID: "p0", Initial: -1}}, nil, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewNetModelInputArcCarriesDistribution(t *testing.T) {
	_, err := NewNetModel("bad-in",
		[]Place{{ID: "p0"}},
		[]Transition{{ID: "t0"}},
		[]Arc{{ID: "a1", Mult: 1, PlaceID: "p0", TransID: "t0", Dir: ArcIn, DistID: "D"}},
	)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// TestNewNetModelMalformedProbabilities is scenario 5 of the spec's
// testable properties: a distribution whose probabilities sum to 0.9.
func TestNewNetModelMalformedProbabilities(t *testing.T) {
	_, err := NewNetModel("malformed",
		[]Place{{ID: "p"}, {ID: "q"}, {ID: "r"}},
		[]Transition{{ID: "t", Time: Exponential, Params: map[string]float64{"lambda": 1}}},
		[]Arc{
			{ID: "a1", Mult: 1, PlaceID: "p", TransID: "t", Dir: ArcIn},
			{ID: "a2", Mult: 1, PlaceID: "q", TransID: "t", Dir: ArcOut, DistID: "D", Prob: 0.4, HasProb: true},
			{ID: "a3", Mult: 1, PlaceID: "r", TransID: "t", Dir: ArcOut, DistID: "D", Prob: 0.5, HasProb: true},
		},
	)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewNetModelBadTimeFunctionParams(t *testing.T) {
	_, err := NewNetModel("bad-params",
		[]Place{{ID: "p0"}},
		[]Transition{{ID: "t0", Time: Exponential, Params: map[string]float64{"lambda": 0}}},
		nil,
	)
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}
