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
	"fmt"

	"github.com/mlnoga/deblur/internal/img"
)

// A Checkpointer persists intermediate latent estimates of the iterative
// solver, keyed by outer iteration index. A failed save aborts the solve.
type Checkpointer interface {
	Save(l *img.Image, iteration int) error
}

// Discards all checkpoints
type NopCheckpointer struct{}

func (NopCheckpointer) Save(l *img.Image, iteration int) error { return nil }

// Writes each checkpoint as a FITS file, expanding the iteration index
// into the file pattern, e.g. "latent%02d.fits"
type FileCheckpointer struct {
	FilePattern string
}

func (c FileCheckpointer) Save(l *img.Image, iteration int) error {
	return l.WriteFile(fmt.Sprintf(c.FilePattern, iteration))
}
