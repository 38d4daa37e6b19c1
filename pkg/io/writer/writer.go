// Package writer renders a solved model.Solution as plain text (spec §6):
// one "Route" line per non-empty route listing its job ids in visiting
// order, then a trailing "Cost" line.
package writer

import (
	"fmt"
	"io"

	"github.com/vrpsolver/vrp/pkg/model"
)

// Write renders sol to w, reporting totalCost as its cost. It returns an error rather
// than panicking when the solution still carries unassigned jobs, since a
// caller asking for a final report on an infeasible run needs that
// surfaced, not silently dropped.
func Write(w io.Writer, sol *model.Solution, totalCost float64) error {
	if len(sol.Unassigned) > 0 {
		return fmt.Errorf("io/writer: solution has %d unassigned job(s), refusing to write a final report", len(sol.Unassigned))
	}
	return writeRoutes(w, sol, totalCost)
}

// WriteVerbose is Write's lenient counterpart: it never refuses on
// unassigned jobs, instead appending an "Unassigned" line, for intermediate
// or best-effort reporting where a partial solution is still useful.
func WriteVerbose(w io.Writer, sol *model.Solution, totalCost float64) error {
	if err := writeRoutes(w, sol, totalCost); err != nil {
		return err
	}
	if len(sol.Unassigned) == 0 {
		return nil
	}
	if _, err := fmt.Fprint(w, "Unassigned:"); err != nil {
		return err
	}
	for job := range sol.Unassigned {
		if _, err := fmt.Fprintf(w, " %s", job.ID()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeRoutes(w io.Writer, sol *model.Solution, totalCost float64) error {
	n := 0
	for _, route := range sol.Routes {
		if route.IsEmpty() {
			continue
		}
		n++
		if _, err := fmt.Fprintf(w, "Route %d:", n); err != nil {
			return err
		}
		var lastID string
		for _, a := range route.Tour.JobActivities() {
			id := a.Job.ID()
			if id == lastID {
				continue
			}
			lastID = id
			if _, err := fmt.Fprintf(w, " %s", id); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Cost %g\n", totalCost)
	return err
}
