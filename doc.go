// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

/*
Package ptpn computes performance bounds for Probabilistic Timed Petri Nets
(PTPN). Given a net with an initial marking, arc multiplicities, per-transition
firing-time distributions and per-transition probabilistic output
distributions, Analyze computes an upper bound on the steady-state throughput
of a designated reference transition, a lower bound on its cycle time, and the
critical subnet that bottlenecks that bound.

The analysis proceeds in four stages, always in this order: the PTPN is
rewritten into an equivalent generalized stochastic Petri net (GSPN) shape by
expanding every probabilistic output distribution into an intermediate place
and a set of weighted immediate transitions (see expand.go); the expanded
transitions are partitioned into equal-conflict sets (ecs.go); a linear
program maximizing the reference transition's throughput is built and solved
against a caller-supplied solver.Builder (throughput.go); and, if the net is
live, a second linear program over place invariants identifies the slowest
circuit and the places/transitions that make it up (critical.go).

The package never reads or writes PNML, never renders a graph, and never picks
a solver backend: those are the job of the internal/pnml, dot and simplex
packages respectively. This package only builds and interprets the linear
programs.
*/
package ptpn
