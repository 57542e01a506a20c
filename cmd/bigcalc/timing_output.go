package main

import (
	"encoding/json"
	"fmt"
	"io"

	"bigcalc/internal/observ"
)

// printTimings writes the phase summary, or a single JSON object when the
// command produces json output.
func printTimings(out io.Writer, timer *observ.Timer, format string) {
	if out == nil || timer == nil {
		return
	}
	report := timer.Report()
	if len(report.Phases) == 0 {
		return
	}
	if format == "json" {
		data, err := json.Marshal(struct {
			Timings observ.Report `json:"timings"`
		}{report})
		if err != nil {
			return
		}
		fmt.Fprintf(out, "%s\n", data)
		return
	}
	fmt.Fprint(out, timer.Summary())
}
