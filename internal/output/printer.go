// Package output provides terminal output formatting for testgen.
//
// The [Printer] renders pipeline progress, fetched stories, generated test
// cases and run summaries with lipgloss styling. All output goes through a
// single writer so tests can capture it with [NewPrinterWithWriter].
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"testgen/internal/story"
)

// Printer formats and writes terminal output.
//
// Create instances with [NewPrinter] (stdout) or [NewPrinterWithWriter]
// (custom writer, used in tests).
type Printer struct {
	w              io.Writer
	truncateLength int

	headerStyle  lipgloss.Style
	stageStyle   lipgloss.Style
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	dimStyle     lipgloss.Style
	bulletStyle  lipgloss.Style
}

// NewPrinter creates a [Printer] that writes to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] that writes to the given writer.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{
		w:              w,
		truncateLength: 60,
		headerStyle:    lipgloss.NewStyle().Bold(true),
		stageStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		successStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failureStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dimStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		bulletStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// SetTruncateLength configures the maximum length of excerpts (prompt lines,
// descriptions) before they are shortened with "...".
func (p *Printer) SetTruncateLength(n int) {
	if n > 0 {
		p.truncateLength = n
	}
}

// Banner prints the run header with the issue key.
func (p *Printer) Banner(issueKey string) {
	fmt.Fprintln(p.w, p.headerStyle.Render(fmt.Sprintf("testgen: %s", issueKey)))
	fmt.Fprintln(p.w, p.dimStyle.Render("stages: start → fetch-story → generate-cases → update-jira"))
	fmt.Fprintln(p.w)
}

// StageProgress prints a progress line before a stage begins. Index is 1-based.
func (p *Printer) StageProgress(index, total int, name string) {
	fmt.Fprintf(p.w, "%s %s\n",
		p.dimStyle.Render(fmt.Sprintf("[%d/%d]", index, total)),
		p.stageStyle.Render(name))
}

// Story prints the fetched story: key, summary, truncated description and
// acceptance criteria.
func (p *Printer) Story(s *story.Story) {
	fmt.Fprintln(p.w, p.headerStyle.Render(fmt.Sprintf("%s  %s", s.Key, s.Summary)))
	if s.Description != "" {
		fmt.Fprintln(p.w, p.dimStyle.Render(p.truncate(s.Description)))
	}
	for _, ac := range s.AcceptanceCriteria {
		fmt.Fprintf(p.w, "  %s\n", ac)
	}
	fmt.Fprintln(p.w)
}

// TestCases prints the generated test cases as a bullet list.
func (p *Printer) TestCases(cases []string) {
	if len(cases) == 0 {
		fmt.Fprintln(p.w, p.dimStyle.Render("(no test cases generated)"))
		return
	}
	for _, tc := range cases {
		fmt.Fprintf(p.w, "%s %s\n", p.bulletStyle.Render("-"), tc)
	}
}

// Success prints a success line with the run duration.
func (p *Printer) Success(msg string, d time.Duration) {
	fmt.Fprintf(p.w, "\n%s %s %s\n",
		p.successStyle.Render("✓"),
		msg,
		p.dimStyle.Render(fmt.Sprintf("(%s)", d.Round(time.Millisecond))))
}

// Failure prints a failure line with the error.
func (p *Printer) Failure(err error) {
	fmt.Fprintf(p.w, "\n%s %v\n", p.failureStyle.Render("✗"), err)
}

// QueueResult is one issue's outcome in a queue run.
type QueueResult struct {
	IssueKey string
	Success  bool
	Duration time.Duration
}

// QueueHeader prints the queue run header.
func (p *Printer) QueueHeader(count int) {
	fmt.Fprintln(p.w, p.headerStyle.Render(fmt.Sprintf("testgen queue: %d issues", count)))
	fmt.Fprintln(p.w)
}

// QueueItem prints a progress line before an issue's run begins.
func (p *Printer) QueueItem(index, total int, issueKey string) {
	fmt.Fprintf(p.w, "%s %s\n",
		p.dimStyle.Render(fmt.Sprintf("queue [%d/%d]", index, total)),
		p.headerStyle.Render(issueKey))
}

// QueueSummary prints the per-issue results and totals for a queue run.
// Issues that never ran because the queue stopped early are listed as skipped.
func (p *Printer) QueueSummary(results []QueueResult, allKeys []string, total time.Duration) {
	fmt.Fprintln(p.w)
	for _, r := range results {
		mark := p.successStyle.Render("✓")
		if !r.Success {
			mark = p.failureStyle.Render("✗")
		}
		fmt.Fprintf(p.w, "%s %-20s %s\n", mark, r.IssueKey,
			p.dimStyle.Render(r.Duration.Round(time.Millisecond).String()))
	}
	for i := len(results); i < len(allKeys); i++ {
		fmt.Fprintf(p.w, "%s %-20s %s\n", p.dimStyle.Render("○"), allKeys[i],
			p.dimStyle.Render("(skipped)"))
	}
	fmt.Fprintf(p.w, "%s\n", p.dimStyle.Render(fmt.Sprintf("total: %s", total.Round(time.Millisecond))))
}

// truncate shortens s to the configured excerpt length, counting runes so
// multi-byte characters are never split.
func (p *Printer) truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= p.truncateLength {
		return s
	}
	if p.truncateLength <= 3 {
		return string(runes[:p.truncateLength])
	}
	return string(runes[:p.truncateLength-3]) + "..."
}
