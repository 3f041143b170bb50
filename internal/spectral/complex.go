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
	"fmt"

	"github.com/mlnoga/deblur/internal/img"
)

// Elementwise operators over 2-channel complex images, channel 0 holding
// the real part and channel 1 the imaginary part. Both operands of a binary
// operator must share (width, height).

// Creates a zero-filled 2-channel complex image of the given plane size
func NewComplex(width, height int) *img.Image {
	return img.NewImage(width, height, 1, 2)
}

// Panics unless both operands are complex images of identical extent
func checkPair(dst, src *img.Image) {
	if dst.Channels != 2 || src.Channels != 2 || dst.Width != src.Width || dst.Height != src.Height {
		panic(fmt.Sprintf("complex operand mismatch: %s vs %s", dst.DimensionsToString(), src.DimensionsToString()))
	}
}

// Conjugates a complex image in place
func Conj(dst *img.Image) {
	im := dst.Plane(0, 1)
	for i, v := range im {
		im[i] = -v
	}
}

// Multiplies dst by src elementwise, in place
func Mul(dst, src *img.Image) {
	checkPair(dst, src)
	dre, dim := dst.Plane(0, 0), dst.Plane(0, 1)
	sre, sim := src.Plane(0, 0), src.Plane(0, 1)
	for i := range dre {
		re := dre[i]*sre[i] - dim[i]*sim[i]
		dim[i] = dre[i]*sim[i] + dim[i]*sre[i]
		dre[i] = re
	}
}

// Multiplies dst by the conjugate of src elementwise, in place.
// MulConj(x, x) yields the squared magnitude of x with zero imaginary part.
func MulConj(dst, src *img.Image) {
	checkPair(dst, src)
	dre, dim := dst.Plane(0, 0), dst.Plane(0, 1)
	sre, sim := src.Plane(0, 0), src.Plane(0, 1)
	for i := range dre {
		re := dre[i]*sre[i] + dim[i]*sim[i]
		dim[i] = dim[i]*sre[i] - dre[i]*sim[i]
		dre[i] = re
	}
}

// Divides dst by src elementwise, in place. Division by a zero
// denominator follows float32 semantics and produces Inf/NaN.
func Div(dst, src *img.Image) {
	checkPair(dst, src)
	dre, dim := dst.Plane(0, 0), dst.Plane(0, 1)
	sre, sim := src.Plane(0, 0), src.Plane(0, 1)
	for i := range dre {
		mag2 := sre[i]*sre[i] + sim[i]*sim[i]
		re := (dre[i]*sre[i] + dim[i]*sim[i]) / mag2
		dim[i] = (dim[i]*sre[i] - dre[i]*sim[i]) / mag2
		dre[i] = re
	}
}
