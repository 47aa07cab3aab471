package twfold

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// OutputFormat selects the report rendering.
type OutputFormat string

const (
	// OutputText is the human-readable default.
	OutputText OutputFormat = "text"
	// OutputJSON exports the full result for tooling integration.
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the format from the flag value, falling
// back to text for anything unrecognized.
func DetermineOutputFormat(requested string) OutputFormat {
	if requested == string(OutputJSON) {
		return OutputJSON
	}
	return OutputText
}

// Terminal styles for report output. Lipgloss degrades colors
// automatically based on terminal capabilities.
var (
	styleCyan   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleRed    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleYellow = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleGreen  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// ShouldUseColors decides whether report output is colorized.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// WriteReport renders the run result in the requested format.
func WriteReport(w io.Writer, result *Result, format OutputFormat, useColors bool) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	// Per-file notices first, summary last, golangci style.
	for _, fr := range result.Files {
		for _, skip := range fr.Skipped {
			location := fmt.Sprintf("%s:%d:%d:", skip.File, skip.Line, skip.Column)
			fmt.Fprintf(w, "%s skipped (%s)\n",
				renderStyle(styleCyan, location, useColors),
				renderStyle(styleYellow, skip.Reason, useColors))
		}
	}
	for _, fr := range result.Files {
		if fr.Err != "" {
			fmt.Fprintf(w, "%s %s\n", renderStyle(styleRed, "error:", useColors), fr.Err)
		}
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, renderStyle(styleCyan, "Run summary", useColors))
	fmt.Fprintf(w, "  Files scanned:    %d (%d skipped)\n", result.Stats.FilesScanned, result.Stats.FilesSkipped)
	fmt.Fprintf(w, "  Occurrences:      %d\n", result.Occurrences)
	fmt.Fprintf(w, "  Replaced:         %d\n", result.Replaced)
	fmt.Fprintf(w, "  Skipped:          %d\n", result.Skipped)
	fmt.Fprintf(w, "  Short names:      %d\n", result.Summary.Mappings)
	fmt.Fprintf(w, "  Stylesheet rules: %d\n", result.Summary.Rules)
	if result.ErrorCount > 0 {
		fmt.Fprintf(w, "  %s\n", renderStyle(styleRed,
			fmt.Sprintf("File errors:      %d", result.ErrorCount), useColors))
	}

	if result.DryRun {
		fmt.Fprintf(w, "\n%s %s\n",
			renderStyle(styleYellow, "Dry run:", useColors),
			fmt.Sprintf("no files modified; stylesheet would be written to %s", result.Stylesheet))
	} else {
		fmt.Fprintf(w, "\n%s %s\n",
			renderStyle(styleGreen, "Stylesheet written:", useColors), result.Stylesheet)
	}
	fmt.Fprintln(w, renderStyle(styleGray, "Hint: run with --output-format json for machine-readable output", useColors))
	return nil
}
