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
	"fmt"
)

// A planar float32 image with four axes: width, height, frames and channels.
// Data is laid out x fastest, then y, then frame, then channel, i.e. one
// contiguous width x height plane per (frame, channel) pair.
type Image struct {
	ID       int    // Sequential ID number, for log output
	FileName string // Original file name, if any, for log output

	Width    int
	Height   int
	Frames   int
	Channels int

	Data []float32 // The image data

	Stats *Stats // Basic image statistics: min, mean, max
}

// Creates a zero-filled image of the given dimensions
func NewImage(width, height, frames, channels int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Frames:   frames,
		Channels: channels,
		Data:     make([]float32, width*height*frames*channels),
	}
}

// Creates a zero-filled image with the same dimensions as the given one
func NewImageLike(src *Image) *Image {
	i := NewImage(src.Width, src.Height, src.Frames, src.Channels)
	i.ID, i.FileName = src.ID, src.FileName
	return i
}

// Creates a deep copy of the image
func (i *Image) Copy() *Image {
	res := NewImageLike(i)
	copy(res.Data, i.Data)
	return res
}

// Number of pixels in the image, product of all four axes
func (i *Image) Pixels() int {
	return i.Width * i.Height * i.Frames * i.Channels
}

// Index of pixel (x,y) in frame f and channel c
func (i *Image) index(x, y, f, c int) int {
	return ((c*i.Frames+f)*i.Height+y)*i.Width + x
}

// Returns the pixel value at (x,y) in frame f and channel c
func (i *Image) At(x, y, f, c int) float32 {
	return i.Data[i.index(x, y, f, c)]
}

// Sets the pixel value at (x,y) in frame f and channel c
func (i *Image) Set(x, y, f, c int, v float32) {
	i.Data[i.index(x, y, f, c)] = v
}

// Returns the contiguous width x height data plane for frame f and channel c
func (i *Image) Plane(f, c int) []float32 {
	start := (c*i.Frames + f) * i.Height * i.Width
	return i.Data[start : start+i.Height*i.Width]
}

// Returns a single-channel, single-frame image sharing storage with
// the given (frame, channel) plane of this image. Not a copy.
func (i *Image) ChannelPlane(f, c int) *Image {
	return &Image{
		ID:       i.ID,
		FileName: i.FileName,
		Width:    i.Width,
		Height:   i.Height,
		Frames:   1,
		Channels: 1,
		Data:     i.Plane(f, c),
	}
}

func (i *Image) DimensionsToString() string {
	if i.Frames == 1 && i.Channels == 1 {
		return fmt.Sprintf("%dx%d", i.Width, i.Height)
	}
	return fmt.Sprintf("%dx%dx%dx%d", i.Width, i.Height, i.Frames, i.Channels)
}

// A non-owning rectangular view into an image, used to pass sub-regions
// without copying
type Window struct {
	Image  *Image
	X0, Y0 int
	Width  int
	Height int
}

// Returns a window covering the whole image
func (i *Image) Full() Window {
	return Window{Image: i, X0: 0, Y0: 0, Width: i.Width, Height: i.Height}
}

// Returns a window for the given sub-region of the image
func (i *Image) Window(x0, y0, width, height int) Window {
	return Window{Image: i, X0: x0, Y0: y0, Width: width, Height: height}
}

// Returns a new image with the given extent cut out of the source.
// Negative offsets and extents beyond the source borders extend the
// canvas and are filled with zeros.
func Crop(src *Image, x0, y0, c0, width, height, frames int) *Image {
	res := NewImage(width, height, frames, src.Channels-c0)
	res.ID, res.FileName = src.ID, src.FileName
	for c := 0; c < res.Channels; c++ {
		for f := 0; f < frames; f++ {
			if f >= src.Frames {
				continue
			}
			dst := res.Plane(f, c)
			srcPlane := src.Plane(f, c+c0)
			for y := 0; y < height; y++ {
				sy := y + y0
				if sy < 0 || sy >= src.Height {
					continue
				}
				// clip the x range to the source, the rest stays zero
				xlo, xhi := 0, width
				if x0+xlo < 0 {
					xlo = -x0
				}
				if x0+xhi > src.Width {
					xhi = src.Width - x0
				}
				if xlo >= xhi {
					continue
				}
				copy(dst[y*width+xlo:y*width+xhi], srcPlane[sy*src.Width+x0+xlo:sy*src.Width+x0+xhi])
			}
		}
	}
	return res
}

// Returns a new image with the given extent cut out of the window,
// with zero channel offset and the window's frame count
func CropWindow(w Window, x0, y0, width, height int) *Image {
	return Crop(w.Image, w.X0+x0, w.Y0+y0, 0, width, height, w.Image.Frames)
}
