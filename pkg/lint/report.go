package lint

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report is the outcome of a lint run.
type Report struct {
	Findings []Finding `json:"findings"`
	Checked  int       `json:"checked"`
}

// Count returns the number of findings at the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Failed reports whether any finding reaches the fail threshold.
func (r *Report) Failed(failOn Severity) bool {
	for _, f := range r.Findings {
		if f.Severity >= failOn {
			return true
		}
	}
	return false
}

// WriteText renders the report in the conventional one-line-per-finding form.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d documents checked, %d errors, %d warnings\n",
		r.Checked, r.Count(SeverityError), r.Count(SeverityWarning))
	return err
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.jsonView())
}

type findingView struct {
	Finding
	Severity string `json:"severity"`
}

type reportView struct {
	Findings []findingView `json:"findings"`
	Checked  int           `json:"checked"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
}

func (r *Report) jsonView() reportView {
	view := reportView{
		Findings: make([]findingView, len(r.Findings)),
		Checked:  r.Checked,
		Errors:   r.Count(SeverityError),
		Warnings: r.Count(SeverityWarning),
	}
	for i, f := range r.Findings {
		view.Findings[i] = findingView{Finding: f, Severity: f.Severity.String()}
	}
	return view
}
