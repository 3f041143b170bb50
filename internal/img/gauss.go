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

import (
	"math"
)

var sqrt2 = float32(math.Sqrt2)

// Returns the definite integral of the gaussian function with midpoint mu and standard deviation sigma for input x
func GaussianDefiniteIntegral(mu, sigma, x float32) float32 {
	return 0.5 * (1 + float32(math.Erf(float64((x-mu)/(sqrt2*sigma)))))
}

// Generates a 1D gaussian kernel for the given sigma. Based on symbolic integration via error function
func GaussianKernel1D(sigma float32) (kernel []float32) {
	mu := float32(0)

	// Find minimal kernel width for which the area under the curve left of the kernel is below the acceptable error
	acceptOut := float32(0.01)
	radius := 0
	for {
		val := GaussianDefiniteIntegral(mu, sigma, float32(-0.5)-float32(radius))
		if val < acceptOut {
			radius--
			break
		}
		radius++
	}
	width := 2*radius + 1
	kernel = make([]float32, width)

	// Calculate left half of the kernel via symbolic integration
	sum := float32(0)
	lower := GaussianDefiniteIntegral(mu, sigma, float32(-0.5)-float32(radius))
	for i := 0; i <= radius; i++ {
		upper := GaussianDefiniteIntegral(mu, sigma, float32(-0.5)-float32(radius)+float32(i+1))
		delta := upper - lower
		kernel[i] = delta
		sum += delta
		lower = upper
	}

	// Mirror right half of the kernel to avoid numeric instability
	for i := 1; i <= radius; i++ {
		value := kernel[radius-i]
		kernel[radius+i] = value
		sum += value
	}

	// Normalize the sum of the kernel to 1, for dealing with the truncated part of the distribution.
	factor := 1.0 / sum
	for i := range kernel {
		kernel[i] *= factor
	}
	return kernel
}

// Generates a normalized 2D gaussian blur kernel image of the given odd size
// for the given sigma, as the outer product of the 1D kernel with itself.
// Single channel, single frame, geometrically centered.
func NewGaussianKernel(size int, sigma float32) *Image {
	k1 := GaussianKernel1D(sigma)
	if len(k1) > size {
		// trim to requested size and renormalize
		off := (len(k1) - size) / 2
		k1 = k1[off : off+size]
		sum := float32(0)
		for _, v := range k1 {
			sum += v
		}
		Scale(k1, 1/sum)
	} else if len(k1) < size {
		padded := make([]float32, size)
		copy(padded[(size-len(k1))/2:], k1)
		k1 = padded
	}

	k := NewImage(size, size, 1, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			k.Data[y*size+x] = k1[x] * k1[y]
		}
	}
	return k
}
