package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twfold"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract, rewrite and emit the stylesheet",
	Long: `Scan the configured paths for class attributes, rewrite every static
class-string to its short name in place, and write the @apply stylesheet.
Dynamic expressions are detected and skipped, never rewritten.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return doRun(cmd)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringSlice("paths", nil, "Glob patterns for source files")
	f.String("output", twfold.DefaultOutput, "Stylesheet destination path")
	f.String("mode", "hash", "Name generation mode: hash|incremental|readable")
	f.Bool("dry-run", false, "Compute the plan and report it without writing")
	f.Bool("minify", false, "Compress the emitted stylesheet")
	f.Int("jobs", 0, "Parallel workers (0 = number of CPUs)")
	f.String("output-format", "text", "Report format: text|json")
}

// doRun is shared between `twfold run` and the bare `twfold` invocation.
func doRun(_ *cobra.Command) error {
	config := buildRunConfig()

	result, err := twfold.Run(config)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		format := twfold.DetermineOutputFormat(getStringWithFallback("output-format", "run.output-format", "text"))
		useColors := twfold.ShouldUseColors(getBoolWithFallback("color", "color", false))
		if err := twfold.WriteReport(os.Stdout, result, format, useColors); err != nil {
			return err
		}
	}

	// Per-file errors are reported but do not fail the run; the mapping
	// and stylesheet were still produced.
	return nil
}
