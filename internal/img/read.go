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
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"strconv"
	"strings"
)

const fitsBlockSize int = 2880 // Block size of FITS header and data units
const fitsLineSize int = 80    // Line size of a FITS header card

// Reads an image from a FITS file with the given name.
// Decompresses gzip if a .gz or .gzip suffix is present.
func NewImageFromFile(fileName string, id int, logWriter io.Writer) (*Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	lExt := strings.ToLower(path.Ext(fileName))
	if lExt == ".gz" || lExt == ".gzip" {
		r, err = gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
	}

	i, err := Read(r, id, logWriter)
	if err != nil {
		return nil, err
	}
	i.FileName = fileName
	return i, nil
}

// Reads a FITS image from the given reader
func Read(r io.Reader, id int, logWriter io.Writer) (*Image, error) {
	h, err := readHeader(r, id)
	if err != nil {
		return nil, err
	}
	if !h.simple {
		return nil, fmt.Errorf("%d: not a valid FITS file; SIMPLE=T missing in header", id)
	}

	i := &Image{ID: id, Width: 1, Height: 1, Frames: 1, Channels: 1}
	switch len(h.naxisn) {
	case 2:
		i.Width, i.Height = h.naxisn[0], h.naxisn[1]
	case 3:
		i.Width, i.Height, i.Channels = h.naxisn[0], h.naxisn[1], h.naxisn[2]
	case 4:
		i.Width, i.Height, i.Frames, i.Channels = h.naxisn[0], h.naxisn[1], h.naxisn[2], h.naxisn[3]
	default:
		return nil, fmt.Errorf("%d: unsupported FITS axis count %d", id, len(h.naxisn))
	}

	if err := i.readData(r, h, logWriter); err != nil {
		return nil, err
	}
	i.CalcStats()
	return i, nil
}

// Parsed FITS header fields relevant for reading image data
type fitsHeader struct {
	simple bool
	bitpix int
	naxisn []int
	bzero  float32
	bscale float32
}

// Reads 2880-byte header blocks of 80-character cards until the END card
func readHeader(r io.Reader, id int) (*fitsHeader, error) {
	h := &fitsHeader{bscale: 1}
	block := make([]byte, fitsBlockSize)
	naxis := 0
	for {
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, fmt.Errorf("%d: %s", id, err.Error())
		}
		for line := 0; line < fitsBlockSize; line += fitsLineSize {
			card := string(block[line : line+fitsLineSize])
			key := strings.TrimRight(card[0:8], " ")
			if key == "END" {
				if naxis != len(h.naxisn) {
					return nil, fmt.Errorf("%d: FITS header NAXIS=%d but found %d axis sizes", id, naxis, len(h.naxisn))
				}
				return h, nil
			}
			if len(card) < 10 || card[8] != '=' {
				continue
			}
			value := strings.TrimSpace(card[10:])
			if idx := strings.IndexByte(value, '/'); idx >= 0 {
				value = strings.TrimSpace(value[:idx])
			}
			switch {
			case key == "SIMPLE":
				h.simple = value == "T"
			case key == "BITPIX":
				v, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("%d: invalid BITPIX value %s", id, value)
				}
				h.bitpix = v
			case key == "NAXIS":
				v, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("%d: invalid NAXIS value %s", id, value)
				}
				naxis = v
			case strings.HasPrefix(key, "NAXIS"):
				v, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("%d: invalid %s value %s", id, key, value)
				}
				h.naxisn = append(h.naxisn, v)
			case key == "BZERO":
				v, err := strconv.ParseFloat(value, 32)
				if err == nil {
					h.bzero = float32(v)
				}
			case key == "BSCALE":
				v, err := strconv.ParseFloat(value, 32)
				if err == nil {
					h.bscale = float32(v)
				}
			}
		}
	}
}

// Reads image data, converting to float32 and applying BSCALE and BZERO
func (i *Image) readData(r io.Reader, h *fitsHeader, logWriter io.Writer) error {
	pixels := i.Pixels()
	i.Data = make([]float32, pixels)

	switch h.bitpix {
	case 8:
		buf := make([]byte, pixels)
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%d: %s", i.ID, err.Error())
		}
		for j, v := range buf {
			i.Data[j] = float32(v)*h.bscale + h.bzero
		}

	case 16:
		buf := make([]byte, 2*pixels)
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%d: %s", i.ID, err.Error())
		}
		for j := 0; j < pixels; j++ {
			v := int16(uint16(buf[j<<1])<<8 | uint16(buf[(j<<1)+1]))
			i.Data[j] = float32(v)*h.bscale + h.bzero
		}

	case -32:
		buf := make([]byte, 4*pixels)
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%d: %s", i.ID, err.Error())
		}
		for j := 0; j < pixels; j++ {
			bits := uint32(buf[j<<2])<<24 | uint32(buf[(j<<2)+1])<<16 | uint32(buf[(j<<2)+2])<<8 | uint32(buf[(j<<2)+3])
			i.Data[j] = math.Float32frombits(bits)*h.bscale + h.bzero
		}

	default:
		return fmt.Errorf("%d: unsupported BITPIX value %d", i.ID, h.bitpix)
	}
	return nil
}
