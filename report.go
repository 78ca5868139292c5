// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

// Status is the outcome of an Analyze run.
type Status string

// The two statuses a Report can carry.
const (
	// StatusOptimal means the reference transition is live under the given
	// initial marking and both bounds were computed.
	StatusOptimal Status = "Optimal"
	// StatusNonLive means ThroughputLP's optimum is 0: the reference
	// transition cannot fire infinitely often from the initial marking, so
	// no cycle-time bound or critical subnet is computed.
	StatusNonLive Status = "NonLive"
)

// CriticalSubnet is the set of original places and transitions that
// bottleneck the computed cycle-time bound (spec §4.5's "Back-mapping"):
// intermediate places and synthetic immediate transitions introduced by
// GspnExpander never appear here.
type CriticalSubnet struct {
	Places []Place
	Trans  []Transition
}

// Report is the outcome of Analyze for a single reference transition.
// CycleTime and CriticalSubnet are the zero value when Status is
// StatusNonLive.
type Report struct {
	RefTransition string
	Status        Status
	Throughput    Bound
	CycleTime     Bound
	CriticalSubnet
}

// Places returns the critical places of the report, for range-friendly use
// by the internal/pnml and dot export layers.
func (r *Report) Places() []Place { return r.CriticalSubnet.Places }

// Transitions returns the critical transitions of the report, for
// range-friendly use by the internal/pnml and dot export layers.
func (r *Report) Transitions() []Transition { return r.CriticalSubnet.Trans }
