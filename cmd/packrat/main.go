// Copyright 2026 The Packrat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command packrat parses arithmetic expressions and prints their trees.
//
// Usage:
//
//	packrat [flags] [expression ...]
//	packrat [flags] -f file ...
//
// Without arguments a few demonstration expressions are parsed.
package main // modernc.org/packrat/cmd/packrat

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/edsrzf/mmap-go"
	"modernc.org/packrat"
)

var demos = []string{
	"1",
	"1*2",
	"1+2*3-4",
	"12*34+56/78",
	"1+(2-3)*4+5",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("packrat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	oBudget := fs.Int("budget", 1e7, "maximum rule executions per input")
	oDepth := fs.Int("depth", 1e5, "maximum rule nesting per input")
	oDump := fs.Bool("dump", false, "print trees one node per line")
	oEOF := fs.Bool("eof", false, "fail inputs not consumed completely")
	oFiles := fs.Bool("f", false, "arguments are file names")
	oGrammar := fs.Bool("grammar", false, "print the grammar and exit")
	oMemo := fs.Bool("memo", true, "memoize rule matches")
	oStats := fs.Bool("stats", false, "print parse statistics")
	oTrc := fs.Bool("trc", false, "trace rules to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *oGrammar {
		g, err := packrat.Grammar()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}

		packrat.PrintEBNF(stdout, g)
		return 0
	}

	opts := []packrat.ConfigOption{
		packrat.ConfigBudget(*oBudget),
		packrat.ConfigMaxDepth(*oDepth),
		packrat.ConfigMemoize(*oMemo),
		packrat.ConfigRequireEOF(*oEOF),
	}
	if *oTrc {
		opts = append(opts, packrat.ConfigTrace(stderr))
	}
	cfg, err := packrat.NewConfig(opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	inputs, cleanup, err := readInputs(fs.Args(), *oFiles)

	defer cleanup()

	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	outcomes, err := cfg.ParseAll(inputs)
	var total packrat.Stats
	for _, v := range outcomes {
		report(stdout, stderr, v, *oDump, *oStats)
		if v.Result != nil {
			total.Add(&v.Result.Stats)
		}
	}
	if *oStats {
		fmt.Fprintf(stdout, "TOTAL inputs %v, bytes %v\n\t%v\n", humanize.Comma(int64(len(outcomes))), humanize.Bytes(uint64(size(inputs))), &total)
	}
	if err != nil {
		return 1
	}

	return 0
}

func size(inputs []packrat.Input) (r int) {
	for _, v := range inputs {
		r += len(v.Buf)
	}
	return r
}

func report(w, stderr io.Writer, o packrat.Outcome, dump, stats bool) {
	if o.Err != nil {
		fmt.Fprintf(w, "%s: no parse (%v)\n", o.Input.Name, o.Err)
		return
	}

	r := o.Result
	switch {
	case dump:
		fmt.Fprintf(w, "%s:\n", o.Input.Name)
		if err := packrat.Dump(w, r.Expr); err != nil {
			fmt.Fprintln(stderr, err)
		}
	default:
		fmt.Fprintf(w, "%s: %v\n", o.Input.Name, r.Expr)
	}
	if !r.End.EOF() {
		fmt.Fprintf(w, "\tunconsumed %q at %v\n", r.End.Rest(), r.End.Position())
	}
	if stats {
		fmt.Fprintf(w, "\t%v\n", &r.Stats)
	}
}

// readInputs returns the inputs named by args. File contents are memory mapped,
// cleanup unmaps them.
func readInputs(args []string, files bool) (r []packrat.Input, cleanup func(), err error) {
	var maps []mmap.MMap
	cleanup = func() {
		for _, v := range maps {
			v.Unmap()
		}
	}
	if !files {
		if len(args) == 0 {
			args = demos
		}
		for _, v := range args {
			r = append(r, packrat.Input{Name: v, Buf: []byte(v)})
		}
		return r, cleanup, nil
	}

	for _, v := range args {
		b, m, err := mapFile(v)
		if err != nil {
			return nil, cleanup, err
		}

		if m != nil {
			maps = append(maps, m)
		}
		r = append(r, packrat.Input{Name: v, Buf: bytes.TrimRight(b, "\r\n")})
	}
	return r, cleanup, nil
}

func mapFile(name string) (b []byte, m mmap.MMap, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}

	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	if fi.Size() == 0 {
		return nil, nil, nil
	}

	if m, err = mmap.Map(f, mmap.RDONLY, 0); err != nil {
		return nil, nil, fmt.Errorf("mapping %s: %v", name, err)
	}

	return m, m, nil
}
