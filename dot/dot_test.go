// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package dot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dalzilio/ptpn"
)

func TestRenderHighlightsCriticalSubnet(t *testing.T) {
	model, err := ptpn.NewNetModel("self-loop",
		[]ptpn.Place{{ID: "p0", Name: "p0", Initial: 1}},
		[]ptpn.Transition{{ID: "t0", Name: "t0", Time: ptpn.Exponential, Params: map[string]float64{"lambda": 2}}},
		[]ptpn.Arc{
			{ID: "a1", Mult: 1, PlaceID: "p0", TransID: "t0", Dir: ptpn.ArcIn},
			{ID: "a2", Mult: 1, PlaceID: "p0", TransID: "t0", Dir: ptpn.ArcOut},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	report := &ptpn.Report{
		CriticalSubnet: ptpn.CriticalSubnet{
			Places: model.Places,
			Trans:  model.Trans,
		},
	}

	var buf bytes.Buffer
	if err := Render(&buf, model, report); err != nil {
		t.Fatalf("Render: %s", err)
	}
	out := buf.String()
	if !strings.Contains(out, "pl_p0") || !strings.Contains(out, "tr_t0") {
		t.Errorf("expected rendered graph to contain both nodes:\n%s", out)
	}
	if !strings.Contains(out, criticalColor) {
		t.Errorf("expected critical nodes to be highlighted:\n%s", out)
	}
}

func TestRenderNilReport(t *testing.T) {
	model, err := ptpn.NewNetModel("trivial", []ptpn.Place{{ID: "p0"}}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, model, nil); err != nil {
		t.Fatalf("Render: %s", err)
	}
	if !strings.Contains(buf.String(), "pl_p0") {
		t.Errorf("expected place node in output")
	}
}
