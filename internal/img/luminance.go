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
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Reduces a 3-channel linear RGB image to a single-channel CIE luminance
// image via colorful's xyY conversion. Single-channel inputs are returned
// unchanged. Other channel counts give undefined results.
func ToLuminance(src *Image) *Image {
	if src.Channels == 1 {
		return src
	}
	res := NewImage(src.Width, src.Height, src.Frames, 1)
	res.ID, res.FileName = src.ID, src.FileName
	for f := 0; f < src.Frames; f++ {
		r := src.Plane(f, 0)
		g := src.Plane(f, 1)
		b := src.Plane(f, 2)
		dst := res.Plane(f, 0)
		for i := range dst {
			col := colorful.LinearRgb(float64(r[i]), float64(g[i]), float64(b[i]))
			_, _, lum := col.Xyy()
			dst[i] = float32(lum)
		}
	}
	return res
}
