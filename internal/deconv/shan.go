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
	"fmt"
	"io"
	"runtime"

	"github.com/mlnoga/deblur/internal/img"
	"github.com/mlnoga/deblur/internal/spectral"
)

// Initial energy term weights of the iterative solver
const (
	shanLambda1 float32 = 0.1
	shanLambda2 float32 = 15.0
	shanGamma   float32 = 2.0
)

// DefaultIterations is the outer iteration count used when none is given
const DefaultIterations = 2

// Continuation schedule between outer iterations: relax the prior and the
// blur fidelity, tighten the coupling between the auxiliary variables and
// the latent gradients
func anneal(w PsiWeights) PsiWeights {
	return PsiWeights{
		Lambda1: w.Lambda1 / 1.2,
		Lambda2: w.Lambda2 / 1.5,
		Gamma:   w.Gamma * 2,
	}
}

// Iterative deconvolves a blurred image with a known kernel via the
// half-quadratic splitting method of Shan et al, "High-quality Motion
// Deblurring from a Single Image" (SIGGRAPH 2008). Auxiliary gradient
// variables Psi decouple the non-convex sparse prior from the frequency-
// domain blur model; each outer iteration alternates a per-pixel Psi
// minimization with a closed-form frequency solve for the latent image,
// then anneals the weights. Color input is reduced to its luminance and
// the result is single-channel. The latent estimate starts at zero and the
// intermediate estimate of each iteration is handed to the checkpointer.
func Iterative(blurred, kernel *img.Image, iterations int, cp Checkpointer, logWriter io.Writer) (*img.Image, error) {
	if err := checkInputs(blurred, kernel); err != nil {
		return nil, err
	}
	if !spectral.Available() {
		return nil, spectral.ErrUnavailable
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if cp == nil {
		cp = NopCheckpointer{}
	}

	gray := img.ToLuminance(blurred)
	padded := Pad(gray)
	pw, ph := padded.Width, padded.Height
	ox, oy := PadOffsets(gray.Width, gray.Height)
	fmt.Fprintf(logWriter, "%d: Iterative deconvolution with %s kernel, %d iterations, padded %s to %s\n",
		blurred.ID, kernel.DimensionsToString(), iterations, gray.DimensionsToString(), padded.DimensionsToString())

	t, err := spectral.NewTransformer(pw, ph)
	if err != nil {
		return nil, err
	}
	bank := NewDerivBank(t, pw, ph)
	fk := t.FFT(EnlargeKernel(kernel, pw, ph))
	fi := t.FFT(padded)

	mask := SmoothnessMap(gray, kernel.Width, kernel.Height, pw, ph, ox, oy)

	// weighted squared-magnitude sum over the derivative bank
	delta := make([]float32, pw*ph)
	for _, flt := range bank.Filters {
		img.Add(delta, flt.Mag2.Plane(0, 0), flt.Weight)
	}
	gradMag2 := make([]float32, pw*ph)
	img.Add(gradMag2, bank.Filters[DerivX].Mag2.Plane(0, 0), 1)
	img.Add(gradMag2, bank.Filters[DerivY].Mag2.Plane(0, 0), 1)

	// kernel-dependent parts of the frequency solve, fixed across iterations:
	// numBase = conj(F(K))*delta*F(I), denBase = |F(K)|^2*delta
	numBase := fk.Copy()
	spectral.Conj(numBase)
	img.MulElems(numBase.Plane(0, 0), delta)
	img.MulElems(numBase.Plane(0, 1), delta)
	spectral.Mul(numBase, fi)
	denTmp := fk.Copy()
	spectral.MulConj(denTmp, fk)
	denBase := denTmp.Plane(0, 0)
	img.MulElems(denBase, delta)

	// observed gradients, fixed across iterations
	dIX := derivSpatialX(padded)
	dIY := derivSpatialY(padded)

	l := img.NewImage(pw, ph, 1, 1)
	psiX, psiY := img.NewImageLike(l), img.NewImageLike(l)
	w := PsiWeights{Lambda1: shanLambda1, Lambda2: shanLambda2, Gamma: shanGamma}

	for it := 0; it < iterations; it++ {
		// step 1: per-pixel auxiliary minimization, both axes
		dLX := derivSpatialX(l)
		dLY := derivSpatialY(l)
		solvePsi(psiX.Data, psiY.Data, dLX.Data, dLY.Data, dIX.Data, dIY.Data, mask.Data, w, pw)

		// step 2: closed-form frequency solve for the latent image,
		// F(L) = (numBase + gamma*(conj(F(dx))*F(Psi_x) + conj(F(dy))*F(Psi_y)))
		//      / (denBase + gamma*(|F(dx)|^2 + |F(dy)|^2))
		fpx := t.FFT(psiX)
		spectral.Mul(fpx, bank.Filters[DerivX].Conj)
		fpy := t.FFT(psiY)
		spectral.Mul(fpy, bank.Filters[DerivY].Conj)
		num := numBase.Copy()
		img.Add(num.Data, fpx.Data, w.Gamma)
		img.Add(num.Data, fpy.Data, w.Gamma)
		nre, nim := num.Plane(0, 0), num.Plane(0, 1)
		for i := range nre {
			d := denBase[i] + w.Gamma*gradMag2[i]
			nre[i] /= d
			nim[i] /= d
		}
		l = t.IFFT(num)

		if err := cp.Save(img.Crop(l, ox, oy, 0, gray.Width, gray.Height, 1), it); err != nil {
			return nil, err
		}
		fmt.Fprintf(logWriter, "%d: Iteration %d done, weights lambda1=%.4g lambda2=%.4g gamma=%.4g\n",
			blurred.ID, it, w.Lambda1, w.Lambda2, w.Gamma)

		w = anneal(w)
	}

	res := img.Crop(l, ox, oy, 0, gray.Width, gray.Height, 1)
	res.ID, res.FileName = blurred.ID, blurred.FileName
	res.CalcStats()
	fmt.Fprintf(logWriter, "%d: Latent image %s stats: %s\n", res.ID, res.DimensionsToString(), res.Stats)
	return res, nil
}

// Minimizes the auxiliary objective for every pixel and both axes, in
// parallel across row batches
func solvePsi(psiX, psiY, dLX, dLY, dIX, dIY, mask []float32, w PsiWeights, width int) {
	height := len(mask) / width
	numBatches := 8 * runtime.NumCPU()
	batchSize := (height + numBatches - 1) / numBatches
	limiter := make(chan bool, runtime.NumCPU())
	for yStart := 0; yStart < height; yStart += batchSize {
		limiter <- true
		go func(yStart int) {
			defer func() { <-limiter }()
			yEnd := yStart + batchSize
			if yEnd > height {
				yEnd = height
			}
			for i := yStart * width; i < yEnd*width; i++ {
				psiX[i], _ = MinimizePsi(dLX[i], dIX[i], mask[i], w)
				psiY[i], _ = MinimizePsi(dLY[i], dIY[i], mask[i], w)
			}
		}(yStart)
	}
	for i := 0; i < cap(limiter); i++ { // wait for goroutines to finish
		limiter <- true
	}
}
