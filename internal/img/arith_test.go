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
	"testing"
)

func TestConvolve1DXBoundaries(t *testing.T) {
	// backward difference kernel: out(x)=in(x-1)-in(x)
	kernel := []float32{1, -1, 0}
	data := []float32{1, 2, 3, 4}

	tcs := []struct {
		B    Boundary
		Want []float32
	}{
		{Wrap, []float32{3, -1, -1, -1}},
		{Clamp, []float32{0, -1, -1, -1}},
	}
	for _, tc := range tcs {
		res := make([]float32, len(data))
		Convolve1DX(res, data, 4, kernel, tc.B)
		for i, r := range res {
			if r != tc.Want[i] {
				t.Errorf("boundary=%d res[%d]=%f; want %f", tc.B, i, r, tc.Want[i])
			}
		}
	}
}

func TestConvolve1DYBoundaries(t *testing.T) {
	kernel := []float32{1, -1, 0}
	data := []float32{
		1, 10,
		2, 20,
		3, 30,
	}
	res := make([]float32, len(data))
	Convolve1DY(res, data, 2, kernel, Wrap)
	want := []float32{2, 20, -1, -10, -1, -10}
	for i, r := range res {
		if r != want[i] {
			t.Errorf("res[%d]=%f; want %f", i, r, want[i])
		}
	}
}

func TestConvolveSeparableBox(t *testing.T) {
	// a 3x3 box filter on a constant image must reproduce the constant
	src := NewImage(5, 4, 1, 1)
	for i := range src.Data {
		src.Data[i] = 0.25
	}
	box := []float32{1.0 / 3, 1.0 / 3, 1.0 / 3}
	res := ConvolveSeparable(src, box, box, Clamp)
	for i, r := range res.Data {
		if r < 0.25-1e-6 || r > 0.25+1e-6 {
			t.Errorf("res[%d]=%f; want 0.25", i, r)
		}
	}
}

func TestThreshold(t *testing.T) {
	data := []float32{-1, 0, 0.5, 1, 1.5}
	Threshold(data, 0.5)
	want := []float32{0, 0, 0, 1, 1}
	for i, d := range data {
		if d != want[i] {
			t.Errorf("data[%d]=%f; want %f", i, d, want[i])
		}
	}
}

func TestElementwise(t *testing.T) {
	dst := []float32{1, 2, 3}
	Add(dst, []float32{1, 1, 1}, 2)
	if dst[0] != 3 || dst[1] != 4 || dst[2] != 5 {
		t.Errorf("Add result %v; want [3 4 5]", dst)
	}
	Sub(dst, []float32{1, 2, 3})
	if dst[0] != 2 || dst[1] != 2 || dst[2] != 2 {
		t.Errorf("Sub result %v; want [2 2 2]", dst)
	}
	MulElems(dst, []float32{1, 2, 3})
	if dst[0] != 2 || dst[1] != 4 || dst[2] != 6 {
		t.Errorf("MulElems result %v; want [2 4 6]", dst)
	}
	Scale(dst, 0.5)
	if dst[0] != 1 || dst[1] != 2 || dst[2] != 3 {
		t.Errorf("Scale result %v; want [1 2 3]", dst)
	}
}
