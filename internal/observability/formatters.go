// Package observability provides formatted output utilities for the terminal client.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/hiring-portal/internal/fields"
	"github.com/jonathan/hiring-portal/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the terminal client
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs a human-readable summary of a job posting.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:      %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Department: %s\n", job.Department))
	sb.WriteString(fmt.Sprintf("Status:     %s\n", job.Status))
	sb.WriteString(fmt.Sprintf("Salary:     %s\n", job.SalaryRange.DisplayText))
	sb.WriteString(fmt.Sprintf("Posted:     %s\n", job.CreatedAt))

	if job.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(job.Description)
		sb.WriteString("\n")
	}

	if len(job.Requirements) > 0 {
		sb.WriteString("\nRequirements:\n")
		count := min(len(job.Requirements), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.Requirements[i]))
		}
		if len(job.Requirements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Requirements)-maxItemsToShow))
		}
	}

	p.printBox(strings.ToUpper(job.ID), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintForm lists the controls of an application form, marking required ones.
func (p *Printer) PrintForm(descs []fields.Descriptor) {
	if len(descs) == 0 {
		return
	}

	var sb strings.Builder
	for _, d := range descs {
		mark := " "
		if d.Required {
			mark = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %-14s %s", mark, d.Key, d.Label))
		if len(d.Options) > 0 {
			sb.WriteString(fmt.Sprintf(" [%s]", strings.Join(d.Options, "/")))
		}
		if d.Kind == fields.KindCapture {
			sb.WriteString(" (--photo)")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n* required")

	p.printBox("APPLICATION FORM", sb.String())
}

// PrintCandidate outputs a submitted application. Photo payloads are elided.
func (p *Printer) PrintCandidate(c *types.Candidate) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:      %s\n", c.ID))
	sb.WriteString(fmt.Sprintf("Job:     %s\n", c.JobID))
	sb.WriteString(fmt.Sprintf("Applied: %s\n", c.AppliedDate))
	if len(c.Fields) > 0 {
		sb.WriteString("\n")
	}
	for _, k := range c.FieldKeys() {
		v := c.Text(k)
		switch {
		case v == "":
			v = "-"
		case strings.HasPrefix(v, "data:"):
			v = fmt.Sprintf("<image, %d bytes encoded>", len(v))
		}
		sb.WriteString(fmt.Sprintf("%-14s %s\n", k, v))
	}

	p.printBox("APPLICATION", strings.TrimSuffix(sb.String(), "\n"))
}
