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
	"github.com/mlnoga/deblur/internal/img"
	"github.com/mlnoga/deblur/internal/spectral"
)

// Indices of the fixed derivative filters in a DerivBank
const (
	DerivID = iota
	DerivX
	DerivXX
	DerivY
	DerivYY
	DerivXY
)

// A spatial filter tap at an integer offset from the origin
type derivTap struct {
	dx, dy int
	v      float32
}

// One derivative filter of the bank: its spatial taps, its prior weight,
// and its cached frequency-domain forms
type DerivFilter struct {
	Weight float32
	taps   []derivTap

	F    *img.Image // frequency-domain filter
	Conj *img.Image // conjugate of F
	Mag2 *img.Image // squared magnitude of F, real-valued
}

// The six derivative filters with their natural-image prior weights,
// 50/2^q for derivative order q. Taps sit at offsets 0..2 from the origin
// and rely on periodic indexing, so the filters need no geometric centering.
func derivFilterSpecs() []DerivFilter {
	return []DerivFilter{
		{Weight: 50, taps: []derivTap{{0, 0, 1}}},                                    // id
		{Weight: 25, taps: []derivTap{{0, 0, -1}, {1, 0, 1}}},                        // dx
		{Weight: 12.5, taps: []derivTap{{0, 0, 1}, {1, 0, -2}, {2, 0, 1}}},           // dxx
		{Weight: 25, taps: []derivTap{{0, 0, -1}, {0, 1, 1}}},                        // dy
		{Weight: 12.5, taps: []derivTap{{0, 0, 1}, {0, 1, -2}, {0, 2, 1}}},           // dyy
		{Weight: 12.5, taps: []derivTap{{0, 0, 1}, {1, 0, -1}, {0, 1, -1}, {1, 1, 1}}}, // dxy
	}
}

// The bank of derivative filters shared by both solvers, transformed once
// at the padded image resolution and immutable afterwards
type DerivBank struct {
	Filters []DerivFilter
}

// Builds the derivative filter bank for the given plane size, transforming
// each filter exactly once and caching its conjugate and squared magnitude
func NewDerivBank(t *spectral.Transformer, width, height int) *DerivBank {
	bank := &DerivBank{Filters: derivFilterSpecs()}
	for i := range bank.Filters {
		flt := &bank.Filters[i]
		spatial := img.NewImage(width, height, 1, 1)
		for _, tap := range flt.taps {
			spatial.Data[tap.dy*width+tap.dx] = tap.v
		}
		flt.F = t.FFT(spatial)
		flt.Conj = flt.F.Copy()
		spectral.Conj(flt.Conj)
		flt.Mag2 = flt.F.Copy()
		spectral.MulConj(flt.Mag2, flt.F)
	}
	return bank
}

// Spatial x derivative under periodic boundary handling, as the circular
// convolution the frequency-domain dx filter performs: out(x)=in(x-1)-in(x)
func derivSpatialX(src *img.Image) *img.Image {
	res := img.NewImageLike(src)
	img.Convolve1DX(res.Plane(0, 0), src.Plane(0, 0), src.Width, []float32{1, -1, 0}, img.Wrap)
	return res
}

// Spatial y derivative under periodic boundary handling, matching the
// frequency-domain dy filter: out(y)=in(y-1)-in(y)
func derivSpatialY(src *img.Image) *img.Image {
	res := img.NewImageLike(src)
	img.Convolve1DY(res.Plane(0, 0), src.Plane(0, 0), src.Width, []float32{1, -1, 0}, img.Wrap)
	return res
}
