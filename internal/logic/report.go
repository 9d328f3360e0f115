package logic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Reporter writes user-facing output. Results go to out, errors, stats and
// progress go to errOut.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
	live   bool

	ok   *color.Color
	fail *color.Color
	dim  *color.Color
}

// NewReporter creates a Reporter. Progress is only drawn when errOut is a
// terminal and quiet is off.
func NewReporter(out, errOut io.Writer, quiet bool) *Reporter {
	live := false

	if f, ok := errOut.(*os.File); ok && !quiet {
		live = term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
	}

	return &Reporter{
		out:    out,
		errOut: errOut,
		quiet:  quiet,
		live:   live,
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		dim:    color.New(color.Faint),
	}
}

// Processed reports a successful result.
func (r *Reporter) Processed(res Result) {
	if r.quiet {
		return
	}

	r.ok.Fprintf(r.out, "Processed %q -> %q\n", res.Input, res.Output)
}

// Deleted reports a removed input.
func (r *Reporter) Deleted(path string) {
	if r.quiet {
		return
	}

	r.dim.Fprintf(r.out, "Deleted %q\n", path)
}

// Failed reports an error for one input. Errors are never suppressed.
func (r *Reporter) Failed(input string, err error) {
	r.fail.Fprintf(r.errOut, "Error processing %q: %v\n", input, err)
}

// Progress draws a single updating progress line.
func (r *Reporter) Progress(stage string, done, total int) {
	if !r.live || total == 0 {
		return
	}

	fmt.Fprintf(r.errOut, "\r%-8s %3d%%", stage, done*100/total) //nolint:mnd

	if done == total {
		fmt.Fprintln(r.errOut)
	}
}

// Stats summarises a run.
type Stats struct {
	Inputs    int
	Processed int
	Errors    int
	Size      int64
	Duration  time.Duration
}

// PrintStats writes the stats block to errOut.
func (r *Reporter) PrintStats(s Stats) {
	fmt.Fprintf(r.errOut, "\nStats\n")
	fmt.Fprintf(r.errOut, "  Inputs:    %d\n", s.Inputs)
	fmt.Fprintf(r.errOut, "  Processed: %d\n", s.Processed)
	fmt.Fprintf(r.errOut, "  Errors:    %d\n", s.Errors)
	//nolint:gosec // Size is always non-negative (sum of file sizes)
	fmt.Fprintf(r.errOut, "  Size:      %s\n", humanize.IBytes(uint64(max(0, s.Size))))
	fmt.Fprintf(r.errOut, "  Duration:  %s\n", s.Duration.Round(time.Millisecond))
}
