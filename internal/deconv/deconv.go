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

// Package deconv implements non-blind image deconvolution: given a blurred
// image and a known blur kernel, it recovers a sharper latent image which,
// convolved with the kernel, approximately reproduces the blur. Two solvers
// are provided: the closed-form regularized inverse of Cho and Lee 2009, and
// the iterative sparse-gradient-prior method of Shan et al 2008. Both operate
// on boundary-padded images through frequency-domain linear systems.
package deconv

import (
	"errors"

	"github.com/mlnoga/deblur/internal/img"
)

var (
	ErrKernelDimensions = errors.New("kernel dimensions must be odd")
	ErrKernelShape      = errors.New("kernel must be single-channel and single-framed")
	ErrMultiFrame       = errors.New("blurred image must be single-framed")
	ErrChannels         = errors.New("blurred image must have one or three channels")
)

// Validates solver preconditions before any computation is performed
func checkInputs(blurred, kernel *img.Image) error {
	if kernel.Channels != 1 || kernel.Frames != 1 {
		return ErrKernelShape
	}
	if kernel.Width%2 != 1 || kernel.Height%2 != 1 {
		return ErrKernelDimensions
	}
	if blurred.Frames != 1 {
		return ErrMultiFrame
	}
	if blurred.Channels != 1 && blurred.Channels != 3 {
		return ErrChannels
	}
	return nil
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
