package tui

import (
	"fmt"
	"io"
	"sort"

	"github.com/muesli/termenv"

	"github.com/prochem/flowsim/pkg/domain"
)

// Report renders a solve result as a colored stream table.
type Report struct {
	out     io.Writer
	profile termenv.Profile
}

// NewReport creates a report renderer for the given writer.
func NewReport(out io.Writer) *Report {
	return &Report{out: out, profile: termenv.ColorProfile()}
}

// Render prints the convergence summary followed by one line per stream,
// sorted by name so output is stable between runs.
func (r *Report) Render(result *domain.Result) {
	header := termenv.String(fmt.Sprintf(
		"converged in %d iterations, residual %.3e, %s",
		result.Iterations, result.Residual, result.Elapsed.Round(1000),
	)).Foreground(r.profile.Color("#4ade80")).Bold()
	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out)

	names := make([]string, 0, len(result.Streams))
	for name := range result.Streams {
		names = append(names, name)
	}
	sort.Strings(names)

	title := termenv.String(fmt.Sprintf("%-24s %12s %10s %8s", "STREAM", "FLOW kmol/h", "TEMP K", "PHASE")).
		Foreground(r.profile.Color("#38bdf8"))
	fmt.Fprintln(r.out, title)

	for _, name := range names {
		st := result.Streams[name]
		if !st.Known() {
			dim := termenv.String(fmt.Sprintf("%-24s %12s", name, "unknown")).Faint()
			fmt.Fprintln(r.out, dim)
			continue
		}
		fmt.Fprintf(r.out, "%-24s %12.3f %10.2f %8s\n", name, st.Flow, st.Temperature, phaseLabel(st.Phase))
	}
}

// RenderFailure prints a convergence failure with its residual history tail.
func (r *Report) RenderFailure(err *domain.ConvergenceFailure) {
	head := termenv.String(err.Error()).Foreground(r.profile.Color("#f87171")).Bold()
	fmt.Fprintln(r.out, head)

	tail := err.Trace
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	fmt.Fprintf(r.out, "last residuals: %v\n", tail)
}

func phaseLabel(p domain.Phase) string {
	if p == domain.PhaseUnknown {
		return "-"
	}
	return string(p)
}
