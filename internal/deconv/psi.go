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

// Constants of the non-convex sparse gradient prior of Shan et al 2008,
// calibrated on natural image statistics for 8-bit pixels and rescaled to
// [0,1] floating point ranges. The prior Phi is -k|v| for |v|<=lt and
// -(a v^2 + b) beyond, continuous at +-lt up to the calibration.
const (
	priorK  float32 = 2.7 * 255
	priorA  float32 = 0.00061 * 255 * 255
	priorB  float32 = 5.0
	priorLT float32 = 1.85263 / 255
)

// Weights of the three energy terms in the auxiliary objective. Annealed
// across outer iterations by the continuation schedule.
type PsiWeights struct {
	Lambda1 float32 // sparsity prior
	Lambda2 float32 // fidelity to the blurred observation, masked by smoothness
	Gamma   float32 // consistency with the current latent estimate
}

// MinimizePsi minimizes the per-pixel auxiliary objective
//
//	gamma*(v-dL)^2 + lambda2*mask*(v-dI)^2 + lambda1*Phi(v)
//
// over v, given the latent estimate's derivative dL, the blurred image's
// derivative dI and the smoothness mask value at the pixel. Phi is non-convex
// and non-differentiable at the region boundaries, so the stationary point of
// each analytic region is evaluated where it falls inside its region, plus
// the boundary points {0, +lt, -lt}. Candidates are considered in a fixed
// order and ties keep the earlier candidate; the zero candidate is always
// valid, so the search is total. Returns the minimizing value and its score.
func MinimizePsi(dL, dI, mask float32, w PsiWeights) (value, score float32) {
	best, bestScore, valid := float32(0), float32(0), false

	fidelity := func(v float32) float32 {
		return w.Gamma*(v-dL)*(v-dL) + w.Lambda2*mask*(v-dI)*(v-dI)
	}
	consider := func(v, s float32) {
		if !valid || s < bestScore {
			best, bestScore, valid = v, s, true
		}
	}

	// quadratic region |v|>lt, Phi(v) = -(a v^2 + b)
	v := (w.Gamma*dL + w.Lambda2*dI*mask) / (w.Gamma + w.Lambda2 - priorA*w.Lambda1)
	if absf32(v) > priorLT {
		consider(v, fidelity(v)-w.Lambda1*(priorA*v*v+priorB))
	}

	// positive linear region 0<=v<=lt, Phi(v) = -k v
	v = (w.Gamma*dL + w.Lambda2*dI*mask + w.Lambda1*priorK) / (w.Gamma + w.Lambda2)
	if v >= 0 && v <= priorLT {
		consider(v, fidelity(v)-w.Lambda1*priorK*v)
	}

	// negative linear region -lt<=v<=0, Phi(v) = k v
	v = (w.Gamma*dL + w.Lambda2*dI*mask - w.Lambda1*priorK) / (w.Gamma + w.Lambda2)
	if v >= -priorLT && v <= 0 {
		consider(v, fidelity(v)+w.Lambda1*priorK*v)
	}

	// region boundary points
	consider(0, fidelity(0))
	consider(priorLT, fidelity(priorLT)-w.Lambda1*priorK*priorLT)
	consider(-priorLT, fidelity(-priorLT)-w.Lambda1*priorK*priorLT)

	return best, bestScore
}
