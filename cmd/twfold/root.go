package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "twfold",
	Short: "Fold utility-class strings into short generated class names",
	Long: `twfold extracts utility-class strings (Tailwind-style token lists) from
HTML, JSX and TSX files, replaces each distinct combination with a short
deterministic name, and emits a stylesheet mapping the names back to the
original combinations via @apply rules.`,
	// Default behavior: run the pipeline when no subcommand is given.
	// loadConfig must be called here because PreRunE of runCmd is not
	// triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return doRun(runCmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress report output")
	rootCmd.PersistentFlags().String("prefix", "tw-", "Prefix prepended to every short name")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".twfold.yaml", "Config file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
