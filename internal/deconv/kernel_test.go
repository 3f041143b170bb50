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
	"testing"

	"github.com/mlnoga/deblur/internal/img"
)

func TestEnlargeKernel(t *testing.T) {
	kernel := img.NewImage(3, 3, 1, 1)
	for i := range kernel.Data {
		kernel.Data[i] = float32(i + 1)
	}
	res := EnlargeKernel(kernel, 8, 8)
	if res.Width != 8 || res.Height != 8 {
		t.Fatalf("dimensions %s; want 8x8", res.DimensionsToString())
	}

	// the kernel center tap lands at (0,0); taps left/above wrap around
	tcs := []struct {
		X, Y int
		Want float32
	}{
		{0, 0, 5}, {1, 0, 6}, {7, 0, 4},
		{0, 1, 8}, {1, 1, 9}, {7, 1, 7},
		{0, 7, 2}, {1, 7, 3}, {7, 7, 1},
	}
	sum := float32(0)
	for _, v := range res.Data {
		sum += v
	}
	if sum != 45 {
		t.Errorf("sum=%f; want 45", sum)
	}
	for _, tc := range tcs {
		if v := res.At(tc.X, tc.Y, 0, 0); v != tc.Want {
			t.Errorf("res(%d,%d)=%f; want %f", tc.X, tc.Y, v, tc.Want)
		}
	}
	if v := res.At(4, 4, 0, 0); v != 0 {
		t.Errorf("res(4,4)=%f; want 0", v)
	}
}
