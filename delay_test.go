// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package ptpn

import (
	"math"
	"testing"
)

func TestDelay(t *testing.T) {
	tables := []struct {
		tf       TimeFunction
		params   map[string]float64
		expected float64
	}{
		{"", nil, 0},
		{Exponential, map[string]float64{"lambda": 2}, 0.5},
		{Gamma, map[string]float64{"k": 2, "theta": 3}, 6},
		{Normal, map[string]float64{"mu": 4}, 4},
		{LogNormal, map[string]float64{"mu": 0, "sigma": 0}, 1},
		{Uniform, map[string]float64{"min": 1, "max": 3}, 2},
		{Interval, map[string]float64{"min": 1, "max": 3}, 1},
		{Constant, map[string]float64{"k": 4}, 4},
		{TimeFunction("bogus"), nil, 0},
	}
	for _, tt := range tables {
		got, err := delay(tt.tf, tt.params)
		if err != nil {
			t.Errorf("delay(%v, %v): unexpected error %s", tt.tf, tt.params, err)
			continue
		}
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("delay(%v, %v) = %v, want %v", tt.tf, tt.params, got, tt.expected)
		}
	}
}

func TestDelayErrors(t *testing.T) {
	tables := []struct {
		tf     TimeFunction
		params map[string]float64
	}{
		{Exponential, map[string]float64{"lambda": 0}},
		{Exponential, nil},
		{Gamma, map[string]float64{"k": -1, "theta": 1}},
		{Uniform, map[string]float64{"min": 3, "max": 1}},
		{Interval, map[string]float64{}},
		{Constant, map[string]float64{"k": -1}},
	}
	for _, tt := range tables {
		if _, err := delay(tt.tf, tt.params); err == nil {
			t.Errorf("delay(%v, %v): expected error, got nil", tt.tf, tt.params)
		}
	}
}
