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

func TestToLuminancePassthrough(t *testing.T) {
	src := NewImage(4, 4, 1, 1)
	if res := ToLuminance(src); res != src {
		t.Errorf("single-channel input not passed through")
	}
}

func TestToLuminanceGray(t *testing.T) {
	// equal linear RGB components have that value as their CIE luminance
	src := NewImage(2, 2, 1, 3)
	for c := 0; c < 3; c++ {
		plane := src.Plane(0, c)
		for i := range plane {
			plane[i] = 0.25
		}
	}
	res := ToLuminance(src)
	if res.Channels != 1 {
		t.Fatalf("channels %d; want 1", res.Channels)
	}
	for i, v := range res.Data {
		if math.Abs(float64(v-0.25)) > 1e-4 {
			t.Errorf("luminance[%d]=%f; want 0.25", i, v)
		}
	}
}

func TestToLuminanceGreenDominates(t *testing.T) {
	mk := func(r, g, b float32) float32 {
		src := NewImage(1, 1, 1, 3)
		src.Plane(0, 0)[0], src.Plane(0, 1)[0], src.Plane(0, 2)[0] = r, g, b
		return ToLuminance(src).Data[0]
	}
	lr, lg, lb := mk(1, 0, 0), mk(0, 1, 0), mk(0, 0, 1)
	if !(lg > lr && lr > lb) {
		t.Errorf("luminance weights r=%f g=%f b=%f; want g > r > b", lr, lg, lb)
	}
}
