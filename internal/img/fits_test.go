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
	"bytes"
	"io"
	"math"
	"testing"
)

func TestFITSRoundTrip(t *testing.T) {
	src := NewImage(5, 3, 1, 1)
	for i := range src.Data {
		src.Data[i] = float32(i) * 0.125
	}
	src.Data[7] = float32(math.NaN()) // NaNs are replaced with zeros on write

	buf := bytes.Buffer{}
	if err := src.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != fitsBlockSize+len(src.Data)*4 {
		t.Errorf("output %d bytes; want one header block plus data", buf.Len())
	}

	res, err := Read(&buf, 3, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 5 || res.Height != 3 || res.Frames != 1 || res.Channels != 1 {
		t.Fatalf("dimensions %s; want 5x3", res.DimensionsToString())
	}
	if res.ID != 3 {
		t.Errorf("id %d; want 3", res.ID)
	}
	for i := range src.Data {
		want := src.Data[i]
		if i == 7 {
			want = 0
		}
		if res.Data[i] != want {
			t.Errorf("data[%d]=%f; want %f", i, res.Data[i], want)
		}
	}
	if res.Stats == nil {
		t.Errorf("stats not calculated on read")
	}
}

func TestFITSRoundTripColor(t *testing.T) {
	src := NewImage(4, 2, 1, 3)
	for i := range src.Data {
		src.Data[i] = float32(i)
	}
	buf := bytes.Buffer{}
	if err := src.Write(&buf); err != nil {
		t.Fatal(err)
	}
	res, err := Read(&buf, 0, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 4 || res.Height != 2 || res.Channels != 3 || res.Frames != 1 {
		t.Fatalf("dimensions %s; want 4x2x1x3", res.DimensionsToString())
	}
	for i := range src.Data {
		if res.Data[i] != src.Data[i] {
			t.Errorf("data[%d]=%f; want %f", i, res.Data[i], src.Data[i])
		}
	}
}
