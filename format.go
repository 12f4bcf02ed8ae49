package main

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSelection renders output A: the item count followed by the item
// labels, in ascending token order.
func FormatSelection(items *Interner, sel *TokenSet) (string, error) {
	var b strings.Builder
	b.WriteString(strconv.Itoa(sel.Len()))
	for _, t := range sel.Tokens() {
		label, ok := items.Label(t)
		if !ok {
			return "", fmt.Errorf("token %d has no label", t)
		}
		b.WriteByte(' ')
		b.WriteString(label)
	}
	b.WriteByte('\n')
	return b.String(), nil
}

// FormatSchedule renders output B: the plan count, then per plan the project
// name and its contributors in role order. No plans renders as empty.
func FormatSchedule(plans []Plan) string {
	if len(plans) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", len(plans))
	for _, p := range plans {
		b.WriteString(p.Project)
		b.WriteByte('\n')
		b.WriteString(strings.Join(p.Contributors, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// RunReport summarizes one run for -json output and the Lambda response.
type RunReport struct {
	RunID     string `json:"runId"`
	Problem   string `json:"problem"`
	Input     string `json:"input,omitempty"`
	Score     int    `json:"score"`
	Simple    int    `json:"simpleScore,omitempty"`
	Selected  int    `json:"selected,omitempty"`
	Committed int    `json:"committed,omitempty"`
	Discarded int    `json:"discarded,omitempty"`
	TimeMs    int64  `json:"timeMs"`
}

func printReport(r RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %s\n", "Run", r.RunID)
	fmt.Fprintf(&b, "%-12s %s\n", "Problem", r.Problem)
	switch r.Problem {
	case ProblemSelection.String():
		fmt.Fprintf(&b, "%-12s %d\n", "Selected", r.Selected)
		fmt.Fprintf(&b, "%-12s %d -> %d\n", "Satisfied", r.Simple, r.Score)
	case ProblemAssignment.String():
		fmt.Fprintf(&b, "%-12s %d\n", "Committed", r.Committed)
		fmt.Fprintf(&b, "%-12s %d\n", "Discarded", r.Discarded)
		fmt.Fprintf(&b, "%-12s %d\n", "Score", r.Score)
	}
	fmt.Fprintf(&b, "%-12s %.1fs\n", "Time", float64(r.TimeMs)/1000)
	return b.String()
}
