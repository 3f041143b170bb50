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
	"testing"
)

type gaussianKernel1DTestCase struct {
	Sigma  float32
	Kernel []float32
}

func TestGaussianKernel1D(t *testing.T) {
	epsilon := 1e-5
	tcs := []gaussianKernel1DTestCase{
		{1.0, []float32{0.27901, 0.44198, 0.27901}},
		{2.0, []float32{0.028532, 0.067234, 0.124009, 0.179044, 0.20236, 0.179044, 0.124009, 0.067234, 0.028532}},
		{3.0, []float32{0.018816, 0.034474, 0.056577, 0.083173, 0.109523, 0.129188, 0.136498, 0.129188, 0.109523,
			0.083173, 0.056577, 0.034474, 0.018816}},
	}

	for _, tc := range tcs {
		sigma := tc.Sigma
		kernel := GaussianKernel1D(sigma)
		sum := float32(0)
		for i, k := range kernel {
			if math.Abs(float64(k-tc.Kernel[i])) > epsilon {
				t.Errorf("sigma=%f k[%d]=%f; want %f", sigma, i, k, tc.Kernel[i])
			}
			sum += k
		}
		if math.Abs(float64(sum-1)) > epsilon {
			t.Errorf("sigma=%f sum=%f; want 1", sigma, sum)
		}
	}
}

func TestNewGaussianKernel(t *testing.T) {
	epsilon := 1e-4
	for _, tc := range []struct {
		Size  int
		Sigma float32
	}{{3, 1.0}, {5, 1.0}, {5, 2.0}, {9, 1.5}} {
		k := NewGaussianKernel(tc.Size, tc.Sigma)
		if k.Width != tc.Size || k.Height != tc.Size || k.Frames != 1 || k.Channels != 1 {
			t.Errorf("size=%d sigma=%f dimensions %s; want %dx%d", tc.Size, tc.Sigma, k.DimensionsToString(), tc.Size, tc.Size)
		}
		sum := float32(0)
		for _, v := range k.Data {
			sum += v
		}
		if math.Abs(float64(sum-1)) > epsilon {
			t.Errorf("size=%d sigma=%f sum=%f; want 1", tc.Size, tc.Sigma, sum)
		}
		c := tc.Size / 2
		for y := 0; y < tc.Size; y++ {
			for x := 0; x < tc.Size; x++ {
				if k.At(x, y, 0, 0) != k.At(tc.Size-1-x, tc.Size-1-y, 0, 0) {
					t.Errorf("size=%d sigma=%f kernel not symmetric at (%d,%d)", tc.Size, tc.Sigma, x, y)
				}
				if (x != c || y != c) && k.At(x, y, 0, 0) >= k.At(c, c, 0, 0) {
					t.Errorf("size=%d sigma=%f center not maximal vs (%d,%d)", tc.Size, tc.Sigma, x, y)
				}
			}
		}
	}
}
