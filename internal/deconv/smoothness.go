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
)

// Local variance threshold separating smooth regions from edges,
// 25 gray levels squared on an 8-bit scale
const smoothnessVarLimit = 25.0 / (256.0 * 256.0)

// SmoothnessMap computes the per-pixel fidelity weight for the iterative
// solver: 1 where the local variance of the blurred luminance under a
// kernel-sized box filter stays below the threshold (texture and flat
// regions dominated by blur and noise), 0 near strong edges. The map is
// embedded into the padded extent at (xPad, yPad) with zero margins, so the
// fidelity term stays switched off over synthesized padding.
func SmoothnessMap(gray *img.Image, kernelWidth, kernelHeight, paddedWidth, paddedHeight, xPad, yPad int) *img.Image {
	boxX := make([]float32, kernelWidth)
	for i := range boxX {
		boxX[i] = 1 / float32(kernelWidth)
	}
	boxY := make([]float32, kernelHeight)
	for i := range boxY {
		boxY[i] = 1 / float32(kernelHeight)
	}

	// negated local variance: (E[I])^2 - E[I^2]
	mean := img.ConvolveSeparable(gray, boxX, boxY, img.Clamp)
	img.MulElems(mean.Data, mean.Data)
	sq := gray.Copy()
	img.MulElems(sq.Data, sq.Data)
	sm := img.ConvolveSeparable(sq, boxX, boxY, img.Clamp)
	img.Sub(sm.Data, mean.Data)
	img.Scale(sm.Data, -1)

	img.Threshold(sm.Data, -smoothnessVarLimit)
	return img.Crop(sm, -xPad, -yPad, 0, paddedWidth, paddedHeight, 1)
}
