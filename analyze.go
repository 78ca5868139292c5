// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

import (
	"fmt"

	"github.com/dalzilio/ptpn/solver"
)

// Analyze computes the throughput upper bound, cycle-time lower bound and
// critical subnet for refID, a transition of model, per spec §2's control
// flow: expand the net to its GSPN shape, partition it into equal-conflict
// sets, solve the throughput LP and, if the reference transition is live,
// solve the critical-subnet LP.
//
// b is the LP-solver backend; a fresh Model is requested from it once per
// LP solved, so b itself may be reused across calls to Analyze.
//
// Analyze mutates model.Trans[i].Bounds for the reference transition
// exactly once, on success.
func Analyze(model *NetModel, refID string, b solver.Builder) (*Report, error) {
	ti, ok := model.TransIndex(refID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransition, refID)
	}

	n, err := expand(model)
	if err != nil {
		return nil, err
	}
	ecs := partition(n)

	ref, ok := n.trIdx[refID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransition, refID)
	}

	tr, err := solveThroughput(n, ecs, ref, b)
	if err != nil {
		return nil, err
	}

	report := &Report{RefTransition: refID}
	if tr.objective <= 0 {
		report.Status = StatusNonLive
		report.Throughput = Bound{Sense: SenseMax, Value: 0}
		model.Trans[ti].Bounds = map[Metric]Bound{Throughput: report.Throughput}
		return report, nil
	}
	report.Status = StatusOptimal
	report.Throughput = Bound{Sense: SenseMax, Value: tr.objective}

	cr, err := solveCriticalSubnet(n, tr.visit, b)
	if err != nil {
		return nil, err
	}
	report.CycleTime = Bound{Sense: SenseMin, Value: cr.objective}

	for _, i := range cr.places {
		report.CriticalSubnet.Places = append(report.CriticalSubnet.Places, model.Places[i])
	}
	for _, t := range model.Trans {
		if cr.trans[t.ID] {
			report.CriticalSubnet.Trans = append(report.CriticalSubnet.Trans, t)
		}
	}

	model.Trans[ti].Bounds = map[Metric]Bound{
		Throughput: report.Throughput,
		CycleTime:  report.CycleTime,
	}
	return report, nil
}
