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
	"bufio"
	"os"
)

// An io.Writer which writes to stdout, and optionally tees into a log
// file. Does not add prefixes, or force newlines.
type teeLog struct {
	file   *bufio.Writer
	fileOS *os.File
}

func newTeeLog() *teeLog { return &teeLog{} }

// Enables logging to file in addition to stdout
func (l *teeLog) alsoToFile(fileName string) (err error) {
	if l.file!=nil {
		if err=l.file.Flush();    err!=nil { return err }
		if err=l.fileOS.Close();  err!=nil { return err }
	}
	l.fileOS, err = os.OpenFile(fileName, os.O_CREATE | os.O_TRUNC | os.O_WRONLY, 0666)
	if err!=nil { return err }
	l.file=bufio.NewWriter(l.fileOS)
	return nil
}

func (l *teeLog) Write(p []byte) (n int, err error) {
	n, err=os.Stdout.Write(p)
	if err!=nil || l.file==nil { return n, err }
	return l.file.Write(p)
}

// Flushes pending log output to the file, if any
func (l *teeLog) sync() {
	if l.file==nil { return }
	l.file.Flush()
	l.fileOS.Sync()
}
