// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/fitscore/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs a human-readable summary of one evaluation result.
func (p *Printer) PrintResult(result *types.EvaluationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall:     %.1f/10  (%s)\n", types.Round1(result.Overall), result.Decision))
	sb.WriteString(fmt.Sprintf("Confidence:  %.1f%%\n", types.Round1(result.Confidence)))
	sb.WriteString("\n")

	for _, d := range types.Dimensions() {
		score := result.Dimensions[d]
		label := strings.ToUpper(string(d)[:1]) + string(d)[1:]
		sb.WriteString(fmt.Sprintf("%-13s %.1f/10", label+":", types.Round1(score.Value)))
		if len(score.Signals) > 0 {
			shown := score.Signals
			if len(shown) > maxItemsToShow {
				shown = shown[:maxItemsToShow]
			}
			sb.WriteString(fmt.Sprintf("  [%s]", strings.Join(shown, ", ")))
		}
		sb.WriteString("\n")
	}

	if len(result.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range result.Strengths {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}
	if len(result.Concerns) > 0 {
		sb.WriteString("\nConcerns:\n")
		for _, c := range result.Concerns {
			sb.WriteString(fmt.Sprintf("  • %s\n", c))
		}
	}

	sb.WriteString(fmt.Sprintf("\nVerified:    %t\n", result.Verified))
	if result.RoleDefaulted {
		sb.WriteString("Note:        unknown role, default benchmark applied\n")
	}
	sb.WriteString(fmt.Sprintf("Processed:   %.3fs", result.ProcessingTime.Seconds()))

	p.printBox("Candidate Evaluation", sb.String())
}

// PrintBatchSummary outputs a compact per-candidate summary of a batch run.
func (p *Printer) PrintBatchSummary(results []types.BatchResult) {
	var sb strings.Builder

	scored, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("%-12s ERROR: %s\n", truncateID(r.ID), r.Err))
			continue
		}
		scored++
		sb.WriteString(fmt.Sprintf("%-12s %.1f/10  %-12s conf %.0f%%\n",
			truncateID(r.ID), types.Round1(r.Result.Overall), r.Result.Decision, r.Result.Confidence))
	}
	sb.WriteString(fmt.Sprintf("\n%d scored, %d failed", scored, failed))

	p.printBox(fmt.Sprintf("Batch Results (%d candidates)", len(results)), sb.String())
}

func truncateID(id string) string {
	if len(id) > 10 {
		return id[:10] + "…"
	}
	return id
}
