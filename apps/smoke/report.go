package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Verdicts by pass rate band.
const (
	VerdictAllPassed = "All checks passed. The dashboard is ready."
	VerdictMostly    = "Mostly healthy. Review the failed checks."
	VerdictPartial   = "Partially working. Several checks failed."
	VerdictCritical  = "Critical failures. The dashboard is not usable."
)

const defaultWidth = 60

// Report is the ordered list of probe results of one run.
type Report struct {
	Target    string
	StartedAt time.Time
	Duration  time.Duration
	Results   []ProbeResult
}

func (rep *Report) add(category, name string, status Status, detail string) {
	rep.Results = append(rep.Results, ProbeResult{Category: category, TestName: name, Status: status, Detail: detail})
}

// Counts returns the number of results per status.
func (rep Report) Counts() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, res := range rep.Results {
		counts[res.Status]++
	}
	return counts
}

// PassRate is the percentage of PASS results, READY results excluded.
func (rep Report) PassRate() float64 {
	counts := rep.Counts()
	rated := len(rep.Results) - counts[StatusReady]
	if rated == 0 {
		return 0
	}
	return float64(counts[StatusPass]) * 100 / float64(rated)
}

func (rep Report) Verdict() string {
	switch rate := rep.PassRate(); {
	case rate >= 100:
		return VerdictAllPassed
	case rate >= 90:
		return VerdictMostly
	case rate >= 70:
		return VerdictPartial
	default:
		return VerdictCritical
	}
}

// ExitCode is 0 only when every rated check passed.
func (rep Report) ExitCode() int {
	if rep.PassRate() >= 100 {
		return 0
	}
	return 1
}

// Category returns the results of category, in run order.
func (rep Report) Category(category string) []ProbeResult {
	var results []ProbeResult
	for _, res := range rep.Results {
		if res.Category == category {
			results = append(results, res)
		}
	}
	return results
}

var statusColors = map[Status]*color.Color{
	StatusPass:  color.New(color.FgGreen, color.Bold),
	StatusFail:  color.New(color.FgRed, color.Bold),
	StatusWarn:  color.New(color.FgYellow, color.Bold),
	StatusReady: color.New(color.FgCyan),
}

// Render writes the human readable report to w. width is the width of the separator lines.
func (rep Report) Render(w io.Writer, width int) {
	if width <= 0 || width > 120 {
		width = defaultWidth
	}
	rule := strings.Repeat("=", width)
	title := color.New(color.Bold).SprintFunc()

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title("Masomo dashboard smoke test"))
	fmt.Fprintf(w, "Target: %s\n", rep.Target)
	fmt.Fprintln(w, rule)

	var category string
	for _, res := range rep.Results {
		if res.Category != category {
			category = res.Category
			fmt.Fprintf(w, "\n%s\n", title(category))
		}
		status := statusColors[res.Status].Sprintf("%-5s", res.Status)
		if res.Detail != "" {
			fmt.Fprintf(w, "  [%s] %s: %s\n", status, res.TestName, res.Detail)
		} else {
			fmt.Fprintf(w, "  [%s] %s\n", status, res.TestName)
		}
	}

	counts := rep.Counts()
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "Passed: %d  Failed: %d  Warnings: %d  Ready: %d\n",
		counts[StatusPass], counts[StatusFail], counts[StatusWarn], counts[StatusReady])
	fmt.Fprintf(w, "Pass rate: %.1f%%  (%s)\n", rep.PassRate(), rep.Duration.Round(time.Millisecond))

	verdict := statusColors[StatusPass]
	if rep.ExitCode() != 0 {
		verdict = statusColors[StatusFail]
	}
	fmt.Fprintln(w, verdict.Sprint(rep.Verdict()))
	fmt.Fprintln(w, rule)
}
