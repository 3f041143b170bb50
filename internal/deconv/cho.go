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

	"github.com/mlnoga/deblur/internal/img"
	"github.com/mlnoga/deblur/internal/spectral"
)

// Regularization weight of the closed-form solver's gradient penalty
const choAlpha float32 = 1.0

// ClosedForm deconvolves a blurred image with a known kernel via the
// regularized frequency-domain inverse of Cho and Lee, "Fast Motion
// Deblurring" (SIGGRAPH Asia 2009): a single linear solve per frequency bin,
//
//	F(L) = conj(F(K)) * SumDeriv / (|F(K)|^2 * SumDeriv + alpha * SumGrad) * F(B)
//
// where SumDeriv is the weighted squared-magnitude sum over the derivative
// filter bank and SumGrad penalizes gradients. The image is boundary-padded
// first and the result cropped back, so periodic convolution does not ring
// across the borders. Deterministic, applied independently per channel.
func ClosedForm(blurred, kernel *img.Image, logWriter io.Writer) (*img.Image, error) {
	if err := checkInputs(blurred, kernel); err != nil {
		return nil, err
	}
	if !spectral.Available() {
		return nil, spectral.ErrUnavailable
	}

	padded := Pad(blurred)
	pw, ph := padded.Width, padded.Height
	fmt.Fprintf(logWriter, "%d: Closed-form deconvolution with %s kernel, padded %s to %s\n",
		blurred.ID, kernel.DimensionsToString(), blurred.DimensionsToString(), padded.DimensionsToString())

	t, err := spectral.NewTransformer(pw, ph)
	if err != nil {
		return nil, err
	}
	bank := NewDerivBank(t, pw, ph)
	fk := t.FFT(EnlargeKernel(kernel, pw, ph))

	sumDeriv := make([]float32, pw*ph)
	for _, flt := range bank.Filters {
		img.Add(sumDeriv, flt.Mag2.Plane(0, 0), flt.Weight)
	}
	sumGrad := make([]float32, pw*ph)
	img.Add(sumGrad, bank.Filters[DerivX].Mag2.Plane(0, 0), 1)
	img.Add(sumGrad, bank.Filters[DerivY].Mag2.Plane(0, 0), 1)

	// response = conj(F(K))*sumDeriv / (|F(K)|^2*sumDeriv + alpha*sumGrad),
	// with a real-valued denominator
	response := fk.Copy()
	spectral.Conj(response)
	den := fk.Copy()
	spectral.MulConj(den, fk)
	re, im := response.Plane(0, 0), response.Plane(0, 1)
	mag2 := den.Plane(0, 0)
	for i := range re {
		d := mag2[i]*sumDeriv[i] + choAlpha*sumGrad[i]
		re[i] = re[i] * sumDeriv[i] / d
		im[i] = im[i] * sumDeriv[i] / d
	}

	res := img.NewImage(pw, ph, padded.Frames, padded.Channels)
	res.ID, res.FileName = blurred.ID, blurred.FileName
	for c := 0; c < padded.Channels; c++ {
		for f := 0; f < padded.Frames; f++ {
			fb := t.FFT(padded.ChannelPlane(f, c))
			spectral.Mul(fb, response)
			latent := t.IFFT(fb)
			copy(res.Plane(f, c), latent.Plane(0, 0))
		}
	}

	ox, oy := PadOffsets(blurred.Width, blurred.Height)
	cropped := img.Crop(res, ox, oy, 0, blurred.Width, blurred.Height, blurred.Frames)
	cropped.CalcStats()
	fmt.Fprintf(logWriter, "%d: Latent image %s stats: %s\n", cropped.ID, cropped.DimensionsToString(), cropped.Stats)
	return cropped, nil
}
