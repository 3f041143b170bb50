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
	"math"
	"testing"

	"github.com/mlnoga/deblur/internal/img"
)

func testScene(width, height int) *img.Image {
	i := img.NewImage(width, height, 1, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i.Set(x, y, 0, 0, float32(0.3+0.2*math.Sin(float64(x)*0.37)+0.2*math.Cos(float64(y)*0.53)))
		}
	}
	return i
}

func TestPadDimensions(t *testing.T) {
	src := testScene(64, 48)
	padded := Pad(src)
	if padded.Width != 96 || padded.Height != 72 {
		t.Fatalf("padded dimensions %s; want 96x72", padded.DimensionsToString())
	}
}

func TestPadInteriorRoundTrip(t *testing.T) {
	src := testScene(64, 64)
	padded := Pad(src)
	ox, oy := PadOffsets(64, 64)
	if ox != 16 || oy != 16 {
		t.Fatalf("offsets (%d,%d); want (16,16)", ox, oy)
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if padded.At(x+ox, y+oy, 0, 0) != src.At(x, y, 0, 0) {
				t.Fatalf("interior changed at (%d,%d): %f; want %f", x, y, padded.At(x+ox, y+oy, 0, 0), src.At(x, y, 0, 0))
			}
		}
	}
}

func TestPadMarginRange(t *testing.T) {
	// padding must interpolate between image values, never extrapolate
	// beyond their range
	src := testScene(32, 32)
	src.CalcStats()
	padded := Pad(src)
	eps := float32(1e-5)
	for _, v := range padded.Data {
		if v < src.Stats.Min-eps || v > src.Stats.Max+eps {
			t.Fatalf("padded value %f outside source range [%f,%f]", v, src.Stats.Min, src.Stats.Max)
		}
	}
}

func TestPadMultiChannel(t *testing.T) {
	src := img.NewImage(32, 32, 1, 3)
	for c := 0; c < 3; c++ {
		plane := src.Plane(0, c)
		for i := range plane {
			plane[i] = float32(c) * 0.25
		}
	}
	padded := Pad(src)
	if padded.Channels != 3 {
		t.Fatalf("channels %d; want 3", padded.Channels)
	}
	// constant channels must pad to the same constant
	for c := 0; c < 3; c++ {
		for _, v := range padded.Plane(0, c) {
			if math.Abs(float64(v-float32(c)*0.25)) > 1e-5 {
				t.Fatalf("channel %d padded to %f; want %f", c, v, float32(c)*0.25)
			}
		}
	}
}
