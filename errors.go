// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

import "errors"

// Sentinel errors returned (always wrapped with fmt.Errorf and the offending
// id or LP name) by the functions in this package. Callers should compare
// against these with errors.Is, not against the wrapped message.
var (
	// ErrValidation reports a violation of one of the input invariants on
	// places, transitions or arcs (bad arc endpoints, distribution
	// probabilities not summing to 1, negative multiplicities, ...).
	ErrValidation = errors.New("ptpn: validation error")

	// ErrInvalidParameters reports a time-function parameter that is
	// missing, non-finite or out of range for its time function.
	ErrInvalidParameters = errors.New("ptpn: invalid time-function parameters")

	// ErrUnknownTransition reports that the reference transition name
	// passed to Analyze is not present in the net.
	ErrUnknownTransition = errors.New("ptpn: unknown reference transition")

	// ErrInfeasible reports that a linear program has no feasible solution.
	ErrInfeasible = errors.New("ptpn: LP model infeasible")

	// ErrUnbounded reports that a linear program is unbounded.
	ErrUnbounded = errors.New("ptpn: LP model unbounded")

	// ErrSolver reports an internal failure of the solver backend that is
	// neither infeasibility nor unboundedness.
	ErrSolver = errors.New("ptpn: solver backend error")
)
