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

// EnlargeKernel zero-pads a small spatial blur kernel to the given size,
// placing the kernel center at index (0,0) under periodic indexing. After a
// forward transform, elementwise application of the result is equivalent to
// circular convolution with the original kernel.
func EnlargeKernel(kernel *img.Image, width, height int) *img.Image {
	res := img.NewImage(width, height, 1, 1)
	cx, cy := kernel.Width/2, kernel.Height/2
	for y := 0; y < kernel.Height; y++ {
		dy := ((y-cy)%height + height) % height
		for x := 0; x < kernel.Width; x++ {
			dx := ((x-cx)%width + width) % width
			res.Data[dy*width+dx] = kernel.Data[y*kernel.Width+x]
		}
	}
	return res
}
