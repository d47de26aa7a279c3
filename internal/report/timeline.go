package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
)

// barColors cycles per sequence position, so a task has the same colour on both tracks.
var barColors = []*color.Color{
	color.New(color.BgCyan, color.FgBlack),
	color.New(color.BgYellow, color.FgBlack),
	color.New(color.BgGreen, color.FgBlack),
	color.New(color.BgMagenta, color.FgBlack),
	color.New(color.BgBlue, color.FgWhite),
	color.New(color.BgRed, color.FgWhite),
	color.New(color.BgHiCyan, color.FgBlack),
	color.New(color.BgHiYellow, color.FgBlack),
}

const minTimelineWidth = 20

// RenderTimeline draws a text Gantt chart of r with the time axis scaled to width columns.
func RenderTimeline(w io.Writer, r *Report, width int) error {
	if width < minTimelineWidth {
		width = minTimelineWidth
	}
	fmt.Fprintln(w, bold("Gantt Chart - Johnson's Rule Optimal Schedule"))
	if len(r.Sequence) == 0 || r.Metrics.Makespan <= 0 {
		_, err := fmt.Fprintln(w, dim("  (no tasks)"))
		return err
	}

	pad := 0
	for _, tr := range r.Tracks {
		if len(tr.Machine) > pad {
			pad = len(tr.Machine)
		}
	}

	scale := float64(width) / r.Metrics.Makespan
	for _, tr := range r.Tracks {
		cells := make([]int, width)
		for c := range cells {
			cells[c] = -1
		}
		for pos, iv := range tr.Intervals {
			a := column(iv.Start, scale, width)
			b := column(iv.Finish, scale, width)
			if b == a && iv.Finish > iv.Start && a < width {
				b = a + 1
			}
			for c := a; c < b; c++ {
				cells[c] = pos
			}
		}
		if _, err := fmt.Fprintf(w, "%-*s |%s|\n", pad, tr.Machine, renderRow(cells, tr)); err != nil {
			return err
		}
	}

	axis, labels := renderAxis(r.Metrics.Makespan, scale, width)
	fmt.Fprintf(w, "%-*s +%s+\n", pad, "", axis)
	fmt.Fprintf(w, "%-*s  %s\n", pad, "", labels)
	_, err := fmt.Fprintf(w, "%-*s  %s\n", pad, "", dim("Time (hours)"))
	return err
}

func column(t, scale float64, width int) int {
	c := int(math.Round(t * scale))
	if c < 0 {
		return 0
	}
	if c > width {
		return width
	}
	return c
}

// renderRow turns runs of equal cell owners into labelled bars.
func renderRow(cells []int, tr Track) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		for j < len(cells) && cells[j] == cells[i] {
			j++
		}
		n := j - i
		if cells[i] < 0 {
			b.WriteString(strings.Repeat(" ", n))
		} else {
			pos := cells[i]
			b.WriteString(barColors[pos%len(barColors)].Sprint(barText(tr.Intervals[pos].Label, n)))
		}
		i = j
	}
	return b.String()
}

// barText centres label in n columns of '=', dropping it when it does not fit.
func barText(label string, n int) string {
	if len(label) > n {
		return strings.Repeat("=", n)
	}
	left := (n - len(label)) / 2
	return strings.Repeat("=", left) + label + strings.Repeat("=", n-left-len(label))
}

func renderAxis(makespan, scale float64, width int) (string, string) {
	step := tickStep(makespan, width)
	axis := []byte(strings.Repeat("-", width))
	labels := []byte(strings.Repeat(" ", width+8))
	next := 0
	for v := 0.0; v <= makespan+1e-9; v += step {
		c := column(v, scale, width)
		if c < width {
			axis[c] = '+'
		}
		txt := fmt.Sprintf("%g", v)
		if c < next || c+len(txt) > len(labels) {
			continue
		}
		copy(labels[c:], txt)
		next = c + len(txt) + 1
	}
	return string(axis), strings.TrimRight(string(labels), " ")
}

// tickStep picks 1, 2 or 5 times a power of ten so that roughly one tick lands every eight columns.
func tickStep(makespan float64, width int) float64 {
	ticks := float64(width) / 8
	if ticks < 1 {
		ticks = 1
	}
	raw := makespan / ticks
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}
