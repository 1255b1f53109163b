package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/madstone-tech/loko/internal/core/diag"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

// ReportFormatter formats compile diagnostics and build statistics for
// console output.
type ReportFormatter struct{}

// NewReportFormatter creates a new ReportFormatter instance.
func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{}
}

// PrintDiagnostics prints a deduplicated diagnostic list to stdout.
func (f *ReportFormatter) PrintDiagnostics(diagnostics []diag.SourceDiagnostic) {
	if len(diagnostics) == 0 {
		fmt.Println(okStyle.Render("✓ No diagnostics"))
		return
	}

	diagnostics = diag.Deduplicate(diagnostics)
	for _, d := range diagnostics {
		loc := "<detached>"
		if d.Span.FileID != "" {
			loc = fmt.Sprintf("%s:%d-%d", d.Span.FileID, d.Span.Start, d.Span.End)
		}
		style := warningStyle
		if d.Severity == diag.SeverityError {
			style = errorStyle
		}
		fmt.Printf("  %s %s — %s\n", style.Render("["+string(d.Severity)+"]"), loc, d.Error())
	}

	fmt.Printf("\nTotal diagnostics: %d\n", len(diagnostics))
}

// BuildStats summarizes a single compile run for console reporting.
type BuildStats struct {
	Pages       int
	Diagnostics int
	Duration    time.Duration
}

// PrintBuildReport prints compile statistics to stdout.
func (f *ReportFormatter) PrintBuildReport(stats BuildStats) {
	fmt.Println(headingStyle.Render("Compile complete:"))
	fmt.Printf("  Pages: %d\n", stats.Pages)
	fmt.Printf("  Diagnostics: %d\n", stats.Diagnostics)
	fmt.Printf("  Duration: %s\n", stats.Duration.Round(time.Millisecond))
}
