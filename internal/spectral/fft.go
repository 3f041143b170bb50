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

package spectral

import (
	"errors"

	"github.com/mlnoga/deblur/internal/img"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Returned when the Fourier transform capability is switched off in this
// deployment. Callers must check before allocating working buffers, so a
// disabled deployment fails fast and without partial work.
var ErrUnavailable = errors.New("fourier transform capability is not available in this deployment")

var available = true

// Reports whether the Fourier transform capability is switched on
func Available() bool {
	return available
}

// Switches the Fourier transform capability on or off, returning the previous
// state. Deployments without spectral processing, and tests exercising the
// unavailable-capability error path, switch it off.
func SetAvailable(on bool) (prev bool) {
	prev, available = available, on
	return prev
}

// A 2D Fourier transformer for a fixed plane size. Transforms one
// width x height plane per call, rows first, then columns.
type Transformer struct {
	width, height int
	row           *fourier.CmplxFFT
	col           *fourier.CmplxFFT
	rowBuf        []complex128
	colBuf        []complex128
}

// Creates a transformer for the given plane size, or fails with
// ErrUnavailable if the capability is switched off
func NewTransformer(width, height int) (*Transformer, error) {
	if !available {
		return nil, ErrUnavailable
	}
	return &Transformer{
		width:  width,
		height: height,
		row:    fourier.NewCmplxFFT(width),
		col:    fourier.NewCmplxFFT(height),
		rowBuf: make([]complex128, width),
		colBuf: make([]complex128, height),
	}, nil
}

// Transforms a single-channel, single-frame real image into the frequency
// domain, returning a new 2-channel complex image (channel 0 real, 1 imaginary).
// The input is not modified.
func (t *Transformer) FFT(src *img.Image) *img.Image {
	res := img.NewImage(t.width, t.height, 1, 2)
	re, im := res.Plane(0, 0), res.Plane(0, 1)
	srcPlane := src.Plane(0, 0)

	// transform rows
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			t.rowBuf[x] = complex(float64(srcPlane[y*t.width+x]), 0)
		}
		t.row.Coefficients(t.rowBuf, t.rowBuf)
		for x := 0; x < t.width; x++ {
			re[y*t.width+x] = float32(real(t.rowBuf[x]))
			im[y*t.width+x] = float32(imag(t.rowBuf[x]))
		}
	}

	// transform columns
	t.transformCols(re, im, false)
	return res
}

// Transforms a 2-channel complex image back into the spatial domain,
// returning a new single-channel real image holding the real part,
// normalized by 1/(width*height). The input is not modified.
func (t *Transformer) IFFT(src *img.Image) *img.Image {
	re := append([]float32(nil), src.Plane(0, 0)...)
	im := append([]float32(nil), src.Plane(0, 1)...)

	// inverse transform columns, then rows
	t.transformCols(re, im, true)

	res := img.NewImage(t.width, t.height, 1, 1)
	dst := res.Plane(0, 0)
	norm := 1 / float64(t.width*t.height)
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			t.rowBuf[x] = complex(float64(re[y*t.width+x]), float64(im[y*t.width+x]))
		}
		t.row.Sequence(t.rowBuf, t.rowBuf)
		for x := 0; x < t.width; x++ {
			dst[y*t.width+x] = float32(real(t.rowBuf[x]) * norm)
		}
	}
	return res
}

// Transforms all columns of the given real/imaginary planes in place
func (t *Transformer) transformCols(re, im []float32, inverse bool) {
	for x := 0; x < t.width; x++ {
		for y := 0; y < t.height; y++ {
			t.colBuf[y] = complex(float64(re[y*t.width+x]), float64(im[y*t.width+x]))
		}
		if inverse {
			t.col.Sequence(t.colBuf, t.colBuf)
		} else {
			t.col.Coefficients(t.colBuf, t.colBuf)
		}
		for y := 0; y < t.height; y++ {
			re[y*t.width+x] = float32(real(t.colBuf[y]))
			im[y*t.width+x] = float32(imag(t.colBuf[y]))
		}
	}
}
