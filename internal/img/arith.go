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

package img

// Boundary handling mode for spatial convolutions
type Boundary int

const (
	Clamp Boundary = iota // repeat the edge pixel
	Wrap                  // periodic continuation from the opposite edge
)

// Adds src scaled by the given factor to dst, elementwise. Slices must have equal length.
func Add(dst, src []float32, scale float32) {
	for i, s := range src {
		dst[i] += s * scale
	}
}

// Subtracts src from dst, elementwise. Slices must have equal length.
func Sub(dst, src []float32) {
	for i, s := range src {
		dst[i] -= s
	}
}

// Scales dst by the given factor, elementwise
func Scale(dst []float32, factor float32) {
	for i, d := range dst {
		dst[i] = d * factor
	}
}

// Multiplies dst with src, elementwise. Slices must have equal length.
func MulElems(dst, src []float32) {
	for i, s := range src {
		dst[i] *= s
	}
}

// Replaces every value above the threshold with 1 and every other value with 0
func Threshold(dst []float32, threshold float32) {
	for i, d := range dst {
		if d > threshold {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
}

// Maps a coordinate into [0, size-1] according to the boundary mode
func adjust(size, x int, b Boundary) int {
	if x >= 0 && x < size {
		return x
	}
	if b == Wrap {
		x %= size
		if x < 0 {
			x += size
		}
		return x
	}
	if x < 0 {
		return 0
	}
	return size - 1
}

// Convolve the 2D image given by data and width with the kernel along the x axis,
// storing the result in res. The kernel is centered; out of bounds coordinates
// are handled according to the boundary mode.
func Convolve1DX(res, data []float32, width int, kernel []float32, b Boundary) {
	height := len(data) / width
	k := len(kernel) / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum := float32(0)
			for i := -k; i <= k; i++ {
				x1 := adjust(width, x+i, b)
				sum += data[y*width+x1] * kernel[i+k]
			}
			res[y*width+x] = sum
		}
	}
}

// Convolve the 2D image given by data and width with the kernel along the y axis,
// storing the result in res. The kernel is centered; out of bounds coordinates
// are handled according to the boundary mode.
func Convolve1DY(res, data []float32, width int, kernel []float32, b Boundary) {
	height := len(data) / width
	k := len(kernel) / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum := float32(0)
			for i := -k; i <= k; i++ {
				y1 := adjust(height, y+i, b)
				sum += data[y1*width+x] * kernel[i+k]
			}
			res[y*width+x] = sum
		}
	}
}

// Convolves every (frame, channel) plane of the image with the given separable
// kernel in both axes, returning a new image
func ConvolveSeparable(src *Image, kernelX, kernelY []float32, b Boundary) *Image {
	res := NewImageLike(src)
	tmp := make([]float32, src.Width*src.Height)
	for c := 0; c < src.Channels; c++ {
		for f := 0; f < src.Frames; f++ {
			Convolve1DX(tmp, src.Plane(f, c), src.Width, kernelX, b)
			Convolve1DY(res.Plane(f, c), tmp, src.Width, kernelY, b)
		}
	}
	return res
}
