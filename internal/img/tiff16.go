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
	"bufio"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"golang.org/x/image/tiff"
)

// Write a grayscale image to 16-bit TIFF, using the given min and max for scaling.
func (i *Image) WriteMonoTIFF16ToFile(fileName string, min, max float32) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return i.WriteMonoTIFF16(writer, min, max)
}

// Write a grayscale image to 16-bit TIFF, using the given min and max for scaling.
func (i *Image) WriteMonoTIFF16(writer io.Writer, min, max float32) error {
	// convert pixels into Golang Image
	width, height := i.Width, i.Height
	out := image.NewGray16(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	scale := 1 / (max - min)
	plane := i.Plane(0, 0)
	for y := 0; y < height; y++ {
		yoffset := y * width
		for x := 0; x < width; x++ {
			gray := plane[yoffset+x]
			gray = (gray - min) * scale
			// replace NaNs with zeros for export, else TIFF output breaks
			if math.IsNaN(float64(gray)) || gray < 0 {
				gray = 0
			}
			if gray > 1 {
				gray = 1
			}
			c := color.Gray16{uint16(gray * 65535)}
			out.SetGray16(x, y, c)
		}
	}

	return tiff.Encode(writer, out, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// Write a 3-channel image to 16-bit RGB TIFF, using the given min and max for scaling.
func (i *Image) WriteTIFF16ToFile(fileName string, min, max float32) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return i.WriteTIFF16(writer, min, max)
}

// Write a 3-channel image to 16-bit RGB TIFF, using the given min and max for scaling.
func (i *Image) WriteTIFF16(writer io.Writer, min, max float32) error {
	width, height := i.Width, i.Height
	out := image.NewRGBA64(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	scale := 1 / (max - min)
	rp, gp, bp := i.Plane(0, 0), i.Plane(0, 1), i.Plane(0, 2)
	for y := 0; y < height; y++ {
		yoffset := y * width
		for x := 0; x < width; x++ {
			r := clampUnit((rp[yoffset+x] - min) * scale)
			g := clampUnit((gp[yoffset+x] - min) * scale)
			b := clampUnit((bp[yoffset+x] - min) * scale)
			c := color.RGBA64{uint16(r * 65535), uint16(g * 65535), uint16(b * 65535), 65535}
			out.SetRGBA64(x, y, c)
		}
	}

	return tiff.Encode(writer, out, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// Clamps a value to [0,1], replacing NaNs with zero
func clampUnit(v float32) float32 {
	if math.IsNaN(float64(v)) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
