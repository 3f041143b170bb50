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

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/debug"
	"strings"
	"time"
	"github.com/mlnoga/deblur/internal/img"
	"github.com/mlnoga/deblur/internal/deconv"
	"github.com/mlnoga/deblur/internal/ops"
	opsdeconv "github.com/mlnoga/deblur/internal/ops/deconv"
	"github.com/mlnoga/deblur/internal/rest"
)

const version = "0.1.0"

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var out        = flag.String("out", "out.fits", "save output to `file`, FITS or TIFF by suffix")
var log        = flag.String("log", "%auto",    "save log output to `file`. `%auto` replaces suffix of output file with .log")

var kernelFile = flag.String("kernel", "", "load blur kernel from FITS `file`")
var method     = flag.String("method", "cho", "deconvolution method, one of cho (closed-form) or shan (iterative)")
var iterations = flag.Int64("iterations", int64(deconv.DefaultIterations), "outer iterations for the shan method")
var checkpoint = flag.String("checkpoint", "", "save intermediate latent images with given filename pattern, e.g. `latent%02d.fits`")

var simSize    = flag.Int64("simSize", 5, "simulate: gaussian kernel size in pixels, must be odd")
var simSigma   = flag.Float64("simSigma", 1.0, "simulate: gaussian kernel sigma")
var simNoise   = flag.Float64("simNoise", 0.0, "simulate: peak amplitude of additive uniform noise")

var port       = flag.Int64("port", 8080, "serve: port number to listen on")
var chroot     = flag.String("chroot", "", "serve: change filesystem root to given directory (requires root)")
var setuid     = flag.Int64("setuid", -1, "serve: drop privileges to given numerical user id")

func main() {
	logWriter:=newTeeLog()
	debug.SetGCPercent(10)
	start:=time.Now()
	flag.Usage=func(){
 	    fmt.Fprintf(logWriter, `Deblur Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (deconvolve|simulate|serve|legal|version) (img0.fits ... imgn.fits)

Commands:
  deconvolve Deconvolve input images with the kernel given via -kernel
  simulate   Blur input images with a synthetic gaussian kernel, add noise, then deconvolve
  serve      Provide deconvolution as a REST API
  legal      Show license and attribution information
  version    Show version information

Flags:
`, os.Args[0])
	    flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	if *log=="%auto" {
		if *out!="" {
			*log=strings.TrimSuffix(*out, filepath.Ext(*out))+".log"
		} else {
			*log=""
		}
	}
	if *log!="" {
		if err:=logWriter.alsoToFile(*log); err!=nil {
			fmt.Fprintf(os.Stderr, "Unable to open logfile '%s'\n", *log)
			os.Exit(-1)
		}
	}
	defer logWriter.sync()

	// Enable CPU profiling if flagged
    if *cpuprofile != "" {
        f, err := os.Create(*cpuprofile)
        if err != nil {
            fmt.Fprintf(logWriter, "Could not create CPU profile: %s\n", err.Error())
            os.Exit(-1)
        }
        defer f.Close()
        if err := pprof.StartCPUProfile(f); err != nil {
            fmt.Fprintf(logWriter, "Could not start CPU profile: %s\n", err.Error())
            os.Exit(-1)
        }
        defer pprof.StopCPUProfile()
    }

    args:=flag.Args()
    if len(args)<1 {
    	flag.Usage()
    	return
    }

	ctx:=ops.NewContext(logWriter)
	var err error

    switch args[0] {
    case "serve":
    	rest.MakeSandbox(*chroot, int(*setuid))
    	rest.Serve(int(*port))

    case "deconvolve":
    	err=cmdDeconvolve(args[1:], ctx)

    case "simulate":
    	err=cmdSimulate(args[1:], ctx)

    case "legal":
    	fmt.Fprint(logWriter, legal)

    case "version":
    	fmt.Fprintf(logWriter, "Version %s\n", version)

    case "help", "?":
    	flag.Usage()

    default:
    	fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
    	flag.Usage()
    	return
    }

	now:=time.Now()
	elapsed:=now.Sub(start)
	fmt.Fprintf(logWriter, "\nDone after %v\n", elapsed)

	// Store memory profile if flagged
    if *memprofile != "" {
        f, err := os.Create(*memprofile)
        if err != nil {
            fmt.Fprintf(logWriter, "Could not create memory profile: %s\n", err.Error())
            os.Exit(-1)
        }
        defer f.Close()
        runtime.GC() // get up-to-date statistics
        if err := pprof.Lookup("allocs").WriteTo(f,0); err != nil {
            fmt.Fprintf(logWriter, "Could not write allocation profile: %s\n", err.Error())
            os.Exit(-1)
        }
    }

    if err!=nil {
		fmt.Fprintf(logWriter, "Error: %s\n", err.Error())
		logWriter.sync()
		os.Exit(-1)
	}
}

// Deconvolve the given files with the kernel from -kernel, using the
// method from -method, and save results to -out
func cmdDeconvolve(args []string, ctx *ops.Context) error {
	if *kernelFile=="" {
		return fmt.Errorf("deconvolve requires a blur kernel, use -kernel")
	}
	kernel, err:=img.NewImageFromFile(*kernelFile, 0, ctx.Log)
	if err!=nil { return err }
	ctx.Kernel=kernel

	opDeconvolve:=opsdeconv.NewOpDeconvolve(*method, int(*iterations), *checkpoint)
	seq:=ops.NewOpSequence(
		ops.NewOpLoadMany(args),
		ops.NewOpForEach(opDeconvolve),
		ops.NewOpForEach(ops.NewOpSave(*out)),
	)
	return runSequence(seq, ctx)
}

// Blur the given files with a synthetic gaussian kernel, add noise,
// deconvolve the simulated observation and save results to -out
func cmdSimulate(args []string, ctx *ops.Context) error {
	opSimulate  :=opsdeconv.NewOpSimulate(int(*simSize), float32(*simSigma), float32(*simNoise))
	opDeconvolve:=opsdeconv.NewOpDeconvolve(*method, int(*iterations), *checkpoint)
	seq:=ops.NewOpSequence(
		ops.NewOpLoadMany(args),
		ops.NewOpForEach(opSimulate),
		ops.NewOpForEach(opDeconvolve),
		ops.NewOpForEach(ops.NewOpSave(*out)),
	)
	return runSequence(seq, ctx)
}

func runSequence(seq *ops.OpSequence, ctx *ops.Context) error {
	m,err:=json.MarshalIndent(seq,"", "  ")
	if err!=nil { return err }
	fmt.Fprintf(ctx.Log, "\nProcessing with these settings:\n%s\n", string(m))

	promises, err:=seq.MakePromises(nil, ctx)
	if err!=nil { return err }
	_, err=ops.MaterializeAll(promises, ctx.MaxThreads, true)
	return err
}
