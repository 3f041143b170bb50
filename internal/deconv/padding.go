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

// Pad extends an image beyond its borders with a smoothed, wrap-compatible
// margin, so that periodic convolution over the enlarged image does not
// contaminate the central region with ringing from the opposite edge.
// A simplified take on Liu and Jia, "Reducing Boundary Artifacts in Image
// Deconvolution" (ICCP 2008).
//
// An alpha-wide strip on each side is copied from the opposite edge of the
// image; the gap between those seams is filled by linear interpolation and
// smoothed with a 3-tap blur whose weight grows towards the middle of the
// strip. Vertical margins are synthesized first over the image width, then
// horizontal margins over the full canvas height, so corners stay consistent.
// The delivered result is the canvas cropped to half the working margin.
func Pad(src *img.Image) *img.Image {
	alpha, xPad, yPad := padMargins(src.Width, src.Height)

	canvas := img.Crop(src, -xPad, -yPad, 0, src.Width+2*xPad, src.Height+2*yPad, src.Frames)
	for c := 0; c < canvas.Channels; c++ {
		for f := 0; f < canvas.Frames; f++ {
			padPlane(canvas.Plane(f, c), canvas.Width, canvas.Height, src.Width, src.Height, xPad, yPad, alpha)
		}
	}

	// the full-margin canvas is scratch space; deliver the tighter crop
	return img.Crop(canvas, xPad/2, yPad/2, 0, src.Width+xPad, src.Height+yPad, src.Frames)
}

// Margin sizes for padding a width x height image: the seam strip width
// alpha and the full working margins per side
func padMargins(width, height int) (alpha, xPad, yPad int) {
	alpha = 1
	if width/3 < alpha {
		alpha = width / 3
	}
	if height/3 < alpha {
		alpha = height / 3
	}
	xPad = width / 2
	yPad = height / 2
	if xPad < alpha*3 {
		xPad = alpha * 3
	}
	if yPad < alpha*3 {
		yPad = alpha * 3
	}
	return alpha, xPad, yPad
}

// PadOffsets returns the position of the original width x height image
// within the result of Pad, for cropping results back to the input extent
func PadOffsets(width, height int) (x, y int) {
	_, xPad, yPad := padMargins(width, height)
	return xPad - xPad/2, yPad - yPad/2
}

// Synthesizes the padding margins of one canvas plane in place. The source
// image occupies [xPad,xPad+w) x [yPad,yPad+h) of the cw x ch canvas.
func padPlane(p []float32, cw, ch, w, h, xPad, yPad, alpha int) {
	// Copy the vertical alpha margins from the opposite edges of the image:
	// the outermost rows continue the bottom of the image, the rows touching
	// the image continue its top.
	for y := 0; y < alpha; y++ {
		copy(p[y*cw+xPad:y*cw+xPad+w], p[(y-alpha+h+yPad)*cw+xPad:(y-alpha+h+yPad)*cw+xPad+w])
		copy(p[(yPad-alpha+y)*cw+xPad:(yPad-alpha+y)*cw+xPad+w], p[(y+yPad)*cw+xPad:(y+yPad)*cw+xPad+w])
	}
	// Fill the strip between the seams
	for y := alpha; y < yPad-alpha; y++ {
		if y == 0 {
			continue // degenerate 1-2 pixel inputs have alpha 0
		}
		// interpolate towards the seam row
		weight := 1 / float32(yPad-alpha-(y-1))
		seam := (yPad - alpha) * cw
		for x := xPad; x < xPad+w; x++ {
			p[y*cw+x] = p[(y-1)*cw+x]*(1-weight) + p[seam+x]*weight
		}
		// blur with neighbors, increasingly towards the middle of the strip
		wing := float32(0.1) + 0.2*(1-absf32(float32(yPad)*0.5-float32(y))/(float32(yPad)*0.5))
		center := 1 - wing*2
		prev := p[y*cw+xPad]
		for x := xPad; x < xPad+w-1; x++ {
			tmp := p[y*cw+x]
			p[y*cw+x] = prev*wing + p[y*cw+x+1]*wing + tmp*center
			prev = tmp
		}
	}
	// The bottom margin is a periodic copy of the synthesized top margin
	for y := 0; y < yPad; y++ {
		copy(p[(y+h+yPad)*cw+xPad:(y+h+yPad)*cw+xPad+w], p[y*cw+xPad:y*cw+xPad+w])
	}

	// Horizontal alpha margins, now over the full canvas height including the
	// vertical margins
	for y := 0; y < ch; y++ {
		row := p[y*cw : (y+1)*cw]
		for x := 0; x < alpha; x++ {
			row[x] = row[w+xPad-alpha+x]
			row[xPad-alpha+x] = row[xPad+x]
		}
	}
	for x := alpha; x < xPad-alpha; x++ {
		if x == 0 {
			continue // degenerate 1-2 pixel inputs have alpha 0
		}
		weight := 1 / float32(xPad-alpha-(x-1))
		seam := xPad - alpha
		for y := 0; y < ch; y++ {
			p[y*cw+x] = p[y*cw+x-1]*(1-weight) + p[y*cw+seam]*weight
		}
		wing := float32(0.1) + 0.2*(1-absf32(float32(xPad)*0.5-float32(x))/(float32(xPad)*0.5))
		center := 1 - wing*2
		prev := p[x]
		for y := 0; y < ch-1; y++ {
			tmp := p[y*cw+x]
			p[y*cw+x] = prev*wing + p[(y+1)*cw+x]*wing + tmp*center
			prev = tmp
		}
	}
	// The right margin is a periodic copy of the synthesized left margin
	for y := 0; y < ch; y++ {
		copy(p[y*cw+w+xPad:y*cw+w+2*xPad], p[y*cw:y*cw+xPad])
	}
}
