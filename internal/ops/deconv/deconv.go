// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed ins the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package deconv

import (
	"errors"
	"fmt"
	"strings"
	"github.com/valyala/fastrand"
	"github.com/mlnoga/deblur/internal/img"
	"github.com/mlnoga/deblur/internal/deconv"
	"github.com/mlnoga/deblur/internal/ops"
)

// Deconvolves an image with the kernel from the execution context,
// using the chosen solver method. Takes one input, produces one output
type OpDeconvolve struct {
	ops.OpUnaryBase
	Method       string  `json:"method"`      // "cho" or "shan"
	Iterations   int     `json:"iterations"`  // outer iterations for "shan"
	Checkpoint   string  `json:"checkpoint"`  // optional FITS file pattern for intermediate latents
}

func init() { ops.SetOperatorFactory(func() ops.Operator { return NewOpDeconvolveDefault()}) } // register the operator for JSON decoding

func NewOpDeconvolveDefault() *OpDeconvolve { return NewOpDeconvolve("cho", deconv.DefaultIterations, "") }

func NewOpDeconvolve(method string, iterations int, checkpoint string) *OpDeconvolve {
	op:=OpDeconvolve{
		OpUnaryBase : ops.OpUnaryBase{OpBase : ops.OpBase{Type: "deconvolve", Active: true}},
		Method      : method,
		Iterations  : iterations,
		Checkpoint  : checkpoint,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return &op
}

func (op *OpDeconvolve) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if !op.Active { return f, nil }
	if c.Kernel==nil { return nil, errors.New("deconvolve operator without a kernel in context") }
	switch strings.ToLower(op.Method) {
	case "cho":
		return deconv.ClosedForm(f, c.Kernel, c.Log)
	case "shan":
		var cp deconv.Checkpointer = deconv.NopCheckpointer{}
		if op.Checkpoint!="" {
			cp=deconv.FileCheckpointer{FilePattern: op.Checkpoint}
		}
		return deconv.Iterative(f, c.Kernel, op.Iterations, cp, c.Log)
	default:
		return nil, errors.New(fmt.Sprintf("unknown deconvolution method '%s'", op.Method))
	}
}


// Simulates a blurred observation from a sharp input: convolves with a
// gaussian kernel of the given size and sigma, adds uniform noise, and
// stores the kernel in the context for downstream deconvolution.
// Takes one input, produces one output
type OpSimulate struct {
	ops.OpUnaryBase
	KernelSize   int     `json:"kernelSize"`
	Sigma        float32 `json:"sigma"`
	Noise        float32 `json:"noise"`      // peak amplitude of additive uniform noise
}

func init() { ops.SetOperatorFactory(func() ops.Operator { return NewOpSimulateDefault()}) } // register the operator for JSON decoding

func NewOpSimulateDefault() *OpSimulate { return NewOpSimulate(5, 1.0, 0) }

func NewOpSimulate(kernelSize int, sigma, noise float32) *OpSimulate {
	op:=OpSimulate{
		OpUnaryBase : ops.OpUnaryBase{OpBase : ops.OpBase{Type: "simulate", Active: true}},
		KernelSize  : kernelSize,
		Sigma       : sigma,
		Noise       : noise,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return &op
}

func (op *OpSimulate) Apply(f *img.Image, c *ops.Context) (result *img.Image, err error) {
	if !op.Active { return f, nil }
	kernel:=img.NewGaussianKernel(op.KernelSize, op.Sigma)
	c.Kernel=kernel

	kernelX:=make([]float32, op.KernelSize)
	for y:=0; y<op.KernelSize; y++ {
		for x:=0; x<op.KernelSize; x++ {
			kernelX[x]+=kernel.At(x,y,0,0)
		}
	}
	kernelY:=make([]float32, op.KernelSize)
	for y:=0; y<op.KernelSize; y++ {
		sum:=float32(0)
		for x:=0; x<op.KernelSize; x++ {
			sum+=kernel.At(x,y,0,0)
		}
		kernelY[y]=sum
	}
	blurred:=img.ConvolveSeparable(f, kernelX, kernelY, img.Clamp)

	if op.Noise>0 {
		rng:=fastrand.RNG{}
		for i,d:=range blurred.Data {
			noise:=(float32(rng.Uint32n(1<<24))/float32(1<<24) - 0.5)*2*op.Noise
			blurred.Data[i]=d+noise
		}
	}
	blurred.CalcStats()
	fmt.Fprintf(c.Log, "%d: Simulated blur with %dx%d gaussian sigma %.4g noise %.4g: %s\n",
		        blurred.ID, op.KernelSize, op.KernelSize, op.Sigma, op.Noise, blurred.Stats)
	return blurred, nil
}
