// Package quality runs a fixed battery of read-only data-quality checks
// over raw or harmonized observation files. Checks report anomalies for
// human review; nothing is ever corrected or persisted.
package quality

import (
	"fmt"
	"io"
	"time"
)

// Section collects the output of one check: informational notes plus
// flagged findings. A section with no findings is clean.
type Section struct {
	Name     string
	notes    []string
	findings []string
}

// Notef records an informational line.
func (s *Section) Notef(format string, args ...any) {
	s.notes = append(s.notes, fmt.Sprintf(format, args...))
}

// Flagf records an anomaly.
func (s *Section) Flagf(format string, args ...any) {
	s.findings = append(s.findings, fmt.Sprintf(format, args...))
}

// Clean reports whether the check flagged nothing.
func (s *Section) Clean() bool { return len(s.findings) == 0 }

// Findings returns the flagged anomalies.
func (s *Section) Findings() []string { return s.findings }

// Report is the full result of checking one file.
type Report struct {
	File        string
	Rows        int
	GeneratedAt time.Time
	Sections    []*Section
}

// Clean reports whether no section flagged anything.
func (r *Report) Clean() bool {
	for _, s := range r.Sections {
		if !s.Clean() {
			return false
		}
	}
	return true
}

// Render writes the report as text. All findings go to one stream; there
// is no machine-readable format.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "=== %s (%d rows, checked %s) ===\n",
		r.File, r.Rows, r.GeneratedAt.Format(time.RFC3339))

	for _, s := range r.Sections {
		status := "OK"
		if !s.Clean() {
			status = fmt.Sprintf("%d finding(s)", len(s.findings))
		}
		fmt.Fprintf(w, "\n--- %s: %s ---\n", s.Name, status)
		for _, n := range s.notes {
			fmt.Fprintf(w, "  %s\n", n)
		}
		for _, f := range s.findings {
			fmt.Fprintf(w, "  ! %s\n", f)
		}
	}
	fmt.Fprintln(w)
}
