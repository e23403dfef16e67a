// Package compiler is the two-pass assembler proper: import expansion,
// address/label resolution, and instruction/directive encoding, wired
// together behind a single Compile entry point.
package compiler

import (
	"context"

	"eeasm/output"
	"eeasm/preprocess"
	"eeasm/textio"
)

// Driver owns the collaborators a compile needs: the filesystem (for
// import resolution) and a verbosity flag that turns on pass 2's per-word
// trace to stderr.
type Driver struct {
	IO      textio.Reader
	Verbose bool
}

// NewDriver builds a Driver backed by io.
func NewDriver(io textio.Reader) *Driver {
	return &Driver{IO: io}
}

// Compile runs the full pipeline: import expansion, pass 1 (addresses and
// labels), then pass 2 (encoding). It never panics on malformed input;
// every failure mode surfaces as an ErrorRecord in the result.
func (d *Driver) Compile(inputLines []string, sourcePath string, mode output.Mode, addressFormatChar string) CompilationResult {
	expander := preprocess.NewExpander(d.IO)
	srcLines, err := expander.Expand(inputLines, sourcePath)
	if err != nil {
		return buildResult(mode, false, "", []ErrorRecord{{
			File:          sourcePath,
			Message:       err.Error(),
			AttemptedHex:  "N/A",
			FromMainInput: true,
		}})
	}

	labels := NewLabelTable()
	if p1errs := d.pass1(srcLines, labels); len(p1errs) > 0 {
		return buildResult(mode, false, "", p1errs)
	}

	outputLines, p2errs := d.pass2(srcLines, labels, mode, addressFormatChar)
	return buildResult(mode, len(p2errs) == 0, output.Join(outputLines), p2errs)
}

// CompileAsync runs Compile on its own goroutine and delivers the result
// over the returned channel. If ctx is done first, the channel instead
// delivers a failed result carrying ctx's error; the compile goroutine still
// runs to completion.
func (d *Driver) CompileAsync(ctx context.Context, inputLines []string, sourcePath string, mode output.Mode, addressFormatChar string) <-chan CompilationResult {
	results := make(chan CompilationResult, 1)
	go func() {
		results <- d.Compile(inputLines, sourcePath, mode, addressFormatChar)
	}()

	out := make(chan CompilationResult, 1)
	go func() {
		select {
		case r := <-results:
			out <- r
		case <-ctx.Done():
			out <- CompilationResult{
				Success: false,
				Mode:    mode,
				Errors: []ErrorRecord{{
					File:         sourcePath,
					Message:      ctx.Err().Error(),
					AttemptedHex: "N/A",
				}},
			}
		}
	}()
	return out
}

func buildResult(mode output.Mode, success bool, text string, errs []ErrorRecord) CompilationResult {
	return CompilationResult{
		Success:            success,
		Output:             text,
		Mode:               mode,
		Errors:             errs,
		MainFileErrorLines: dedupMainFileLines(errs),
	}
}

func dedupMainFileLines(errs []ErrorRecord) []int {
	seen := make(map[int]bool)
	var out []int
	for _, e := range errs {
		if !e.FromMainInput {
			continue
		}
		if seen[e.Line] {
			continue
		}
		seen[e.Line] = true
		out = append(out, e.Line)
	}
	return out
}
