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


package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"github.com/gin-gonic/gin"

	"github.com/mlnoga/deblur/internal/img"
	"github.com/mlnoga/deblur/internal/ops"
	opsdeconv "github.com/mlnoga/deblur/internal/ops/deconv"
)


func Serve(port int) {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET ("/ping",        getPing)
			v1.POST("/deconvolve",  postDeconvolve)
		}
	}
	r.Run(fmt.Sprintf(":%d", port)) // listen and serve on 0.0.0.0:port
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

func printArgs(logWriter io.Writer, prefix, suffix string, args interface{}) error {
	m,err:=json.MarshalIndent(args, "", "  ")
	if err!=nil { return err }
	fmt.Fprintf(logWriter, "%s%s%s", prefix, string(m), suffix)
	return nil
}

type postDeconvolveArgs struct {
	FilePatterns []string                   `json:"filePatterns"`
	Kernel        string                    `json:"kernel"`
	Deconvolve   *opsdeconv.OpDeconvolve    `json:"deconvolve"`
	Save         *ops.OpSave                `json:"save"`
}

func postDeconvolve(c *gin.Context)  {
	logWriter := c.Writer
	var args postDeconvolveArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() } )
		return
	}
	if args.Deconvolve==nil || args.Kernel=="" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kernel and deconvolve arguments are required" } )
		return
	}

	header := logWriter.Header()
	header.Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)

	if err:=printArgs(logWriter, "Arguments:\n", "\n", args); err!=nil {
		fmt.Fprintf(logWriter, "Error printing arguments: %s\n", err.Error())
		return
	}

	ctx:=ops.NewContext(logWriter)
	kernel, err:=img.NewImageFromFile(args.Kernel, 0, logWriter)
	if err!=nil {
		fmt.Fprintf(logWriter, "Error loading kernel: %s\n", err.Error())
		return
	}
	ctx.Kernel=kernel

	// fix up JSON-decoded operators missing their method pointers
	args.Deconvolve=opsdeconv.NewOpDeconvolve(args.Deconvolve.Method, args.Deconvolve.Iterations, args.Deconvolve.Checkpoint)
	seq:=ops.NewOpSequence(ops.NewOpLoadMany(args.FilePatterns), ops.NewOpForEach(args.Deconvolve))
	if args.Save!=nil {
		seq.Append(ops.NewOpForEach(ops.NewOpSave(args.Save.FilePattern)))
	}

	promises, err:=seq.MakePromises(nil, ctx)
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
		logWriter.(http.Flusher).Flush()
		return
	}
	_, err=ops.MaterializeAll(promises, ctx.MaxThreads, true)
	if(err!=nil) {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
	}
	logWriter.(http.Flusher).Flush()

	return
}
