package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	boldCyan  = color.New(color.Bold, color.FgCyan).SprintFunc()
	boldGreen = color.New(color.Bold, color.FgGreen).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
)

// WriteSummary prints the result panel: sequence, then the five metrics.
func WriteSummary(w io.Writer, r *Report) {
	fmt.Fprintln(w, boldCyan("Results"))
	fmt.Fprintln(w, bold("Optimal Task Sequence:"))
	fmt.Fprintf(w, "  %s\n", r.SequenceString())
	fmt.Fprintln(w, bold("Performance Metrics:"))
	fmt.Fprintf(w, "  Makespan:      %s %s\n", boldGreen(FormatHours(r.Metrics.Makespan)), dim("hours"))
	fmt.Fprintf(w, "  Delay of M1:   %s\n", bold(FormatHours(r.Metrics.DelayM1)))
	fmt.Fprintf(w, "  Delay of M2:   %s\n", bold(FormatHours(r.Metrics.DelayM2)))
	fmt.Fprintf(w, "  Average Delay: %s\n", bold(fmt.Sprintf("%.4f", r.Metrics.AverageDelay)))
	fmt.Fprintf(w, "  Utilization:   %s\n", boldGreen(FormatPercent(r.Metrics.Utilization)))
}

// FormatHours prints whole numbers without a fraction.
func FormatHours(v float64) string {
	return fmt.Sprintf("%g", v)
}

// FormatPercent renders a fraction as a percentage with four decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.4f%%", v*100)
}
