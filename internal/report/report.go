// Package report shapes a computed schedule for display: labelled sequence,
// metrics, timing arrays and one interval track per machine.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"johnsonShop/internal/flowshop"
)

// MachineNames label the two tracks top to bottom.
var MachineNames = [flowshop.Machines]string{"Processor 1", "Processor 2"}

type Track struct {
	Machine   string              `json:"machine"`
	Intervals []flowshop.Interval `json:"intervals"`
}

type Report struct {
	Strategy string           `json:"strategy"`
	Tasks    []flowshop.Task  `json:"tasks"`
	Sequence []int            `json:"sequence"`
	Labels   []string         `json:"labels"`
	Metrics  flowshop.Metrics `json:"metrics"`
	Timing   flowshop.Timing  `json:"timing"`
	Tracks   []Track          `json:"tracks"`
}

func New(inst *flowshop.Instance, timing flowshop.Timing, m flowshop.Metrics, strategy string) *Report {
	r := &Report{
		Strategy: strategy,
		Tasks:    append([]flowshop.Task(nil), inst.Tasks...),
		Sequence: append([]int(nil), timing.Sequence...),
		Labels:   flowshop.SequenceLabels(timing.Sequence),
		Metrics:  m,
		Timing:   timing,
	}
	for i, name := range MachineNames {
		r.Tracks = append(r.Tracks, Track{Machine: name, Intervals: timing.Intervals(i)})
	}
	return r
}

// SequenceString joins the labels the way the result panel shows them: "T3 → T1 → T2".
func (r *Report) SequenceString() string {
	return strings.Join(r.Labels, " → ")
}

// Encode writes r as indented JSON or YAML.
func Encode(w io.Writer, r *Report, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	case "yaml", "yml":
		data, err = yaml.Marshal(r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
