// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package deconv

import (
	"math"
	"testing"
)

var psiTestWeights = PsiWeights{Lambda1: shanLambda1, Lambda2: shanLambda2, Gamma: shanGamma}

// The minimizer must return a finite value with a score no worse than the
// always-valid zero candidate, for any input
func TestMinimizePsiTotality(t *testing.T) {
	w := psiTestWeights
	for _, mask := range []float32{0, 1} {
		for dL := float32(-0.5); dL <= 0.5; dL += 0.05 {
			for dI := float32(-0.5); dI <= 0.5; dI += 0.05 {
				v, score := MinimizePsi(dL, dI, mask, w)
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("dL=%f dI=%f mask=%f: non-finite value %f", dL, dI, mask, v)
				}
				zeroScore := w.Gamma*dL*dL + w.Lambda2*mask*dI*dI
				if score > zeroScore+1e-5 {
					t.Errorf("dL=%f dI=%f mask=%f: score %f worse than zero candidate %f", dL, dI, mask, score, zeroScore)
				}
			}
		}
	}
}

// Matching large derivatives in a masked region should stay close to the
// common value rather than collapse to zero
func TestMinimizePsiFollowsGradients(t *testing.T) {
	v, _ := MinimizePsi(0.4, 0.4, 1, psiTestWeights)
	if v < 0.3 || v > 0.6 {
		t.Errorf("v=%f; want near 0.4", v)
	}
	v, _ = MinimizePsi(-0.4, -0.4, 1, psiTestWeights)
	if v > -0.3 || v < -0.6 {
		t.Errorf("v=%f; want near -0.4", v)
	}
}

// With no pull from either derivative the sparse prior keeps the result at
// a boundary candidate of the linear region
func TestMinimizePsiZeroInput(t *testing.T) {
	v, _ := MinimizePsi(0, 0, 1, psiTestWeights)
	if absf32(v) > priorLT {
		t.Errorf("v=%f; want within [-lt,lt]", v)
	}
}

func TestMinimizePsiDeterministic(t *testing.T) {
	v1, s1 := MinimizePsi(0.123, -0.456, 1, psiTestWeights)
	v2, s2 := MinimizePsi(0.123, -0.456, 1, psiTestWeights)
	if v1 != v2 || s1 != s2 {
		t.Errorf("results differ: (%f,%f) vs (%f,%f)", v1, s1, v2, s2)
	}
}

// The parallel row-batch solve must agree with a serial per-pixel sweep
func TestSolvePsiMatchesSerial(t *testing.T) {
	w, width, height := psiTestWeights, 16, 37 // odd height leaves a partial batch
	n := width * height
	dLX, dLY := make([]float32, n), make([]float32, n)
	dIX, dIY := make([]float32, n), make([]float32, n)
	mask := make([]float32, n)
	for i := 0; i < n; i++ {
		dLX[i] = float32(i%11)*0.05 - 0.25
		dLY[i] = float32(i%7)*0.07 - 0.21
		dIX[i] = float32(i%5)*0.1 - 0.2
		dIY[i] = float32(i%13)*0.04 - 0.24
		mask[i] = float32(i % 2)
	}
	psiX, psiY := make([]float32, n), make([]float32, n)
	solvePsi(psiX, psiY, dLX, dLY, dIX, dIY, mask, w, width)
	for i := 0; i < n; i++ {
		wantX, _ := MinimizePsi(dLX[i], dIX[i], mask[i], w)
		wantY, _ := MinimizePsi(dLY[i], dIY[i], mask[i], w)
		if psiX[i] != wantX || psiY[i] != wantY {
			t.Fatalf("pixel %d: (%f,%f); want (%f,%f)", i, psiX[i], psiY[i], wantX, wantY)
		}
	}
}

func TestAnneal(t *testing.T) {
	w := psiTestWeights
	for i := 0; i < 5; i++ {
		next := anneal(w)
		if next.Lambda1 >= w.Lambda1 {
			t.Errorf("iteration %d: lambda1 %f not decreasing from %f", i, next.Lambda1, w.Lambda1)
		}
		if next.Lambda2 >= w.Lambda2 {
			t.Errorf("iteration %d: lambda2 %f not decreasing from %f", i, next.Lambda2, w.Lambda2)
		}
		if next.Gamma <= w.Gamma {
			t.Errorf("iteration %d: gamma %f not increasing from %f", i, next.Gamma, w.Gamma)
		}
		w = next
	}
}
