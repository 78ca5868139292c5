// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

import (
	"fmt"
	"math"
)

// delay returns the mean firing delay of a transition with time function tf
// and parameters p. It returns 0 for an absent or unrecognized time function,
// matching the "absent / unknown" row of the table in the component design.
//
// The "interval" case deliberately returns the earliest firing time (p.min),
// not the midpoint that "uniform" uses: this mirrors the original solver
// this package's formulas are grounded on, and is meant as a
// worst-case-earliest-firing bound rather than an accidental alias of
// "uniform".
func delay(tf TimeFunction, p map[string]float64) (float64, error) {
	get := func(name string) (float64, bool) {
		v, ok := p[name]
		return v, ok
	}
	switch tf {
	case "":
		return 0, nil
	case Exponential:
		lambda, ok := get("lambda")
		if !ok || lambda <= 0 {
			return 0, fmt.Errorf("exponential: missing or non-positive param 'lambda'")
		}
		return finite(1 / lambda)
	case Gamma:
		k, okK := get("k")
		theta, okT := get("theta")
		if !okK || !okT || k < 0 || theta < 0 {
			return 0, fmt.Errorf("gamma: missing or negative params 'k'/'theta'")
		}
		return finite(k * theta)
	case Normal:
		mu, ok := get("mu")
		if !ok || mu < 0 {
			return 0, fmt.Errorf("normal: missing or negative param 'mu'")
		}
		return finite(mu)
	case LogNormal:
		mu, okMu := get("mu")
		sigma, okSigma := get("sigma")
		if !okMu || !okSigma || sigma < 0 {
			return 0, fmt.Errorf("lognormal: missing param 'mu' or negative 'sigma'")
		}
		return finite(math.Exp(mu + sigma*sigma/2))
	case Uniform:
		min, okMin := get("min")
		max, okMax := get("max")
		if !okMin || !okMax || min < 0 || max < min {
			return 0, fmt.Errorf("uniform: missing or inconsistent params 'min'/'max'")
		}
		return finite((min + max) / 2)
	case Interval:
		min, ok := get("min")
		if !ok || min < 0 {
			return 0, fmt.Errorf("interval: missing or negative param 'min'")
		}
		return finite(min)
	case Constant:
		k, ok := get("k")
		if !ok || k < 0 {
			return 0, fmt.Errorf("constant: missing or negative param 'k'")
		}
		return finite(k)
	default:
		return 0, nil
	}
}

// finite rejects a non-finite mean delay, which can only arise from
// caller-supplied parameters that are themselves degenerate (e.g. lambda so
// close to 0 that 1/lambda overflows).
func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("computed delay is not finite")
	}
	return v, nil
}
