package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twfold.yaml config file",
	Long:  `Create a .twfold.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".twfold.yaml"); err == nil && !force {
			return fmt.Errorf(".twfold.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".twfold.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .twfold.yaml")
		return nil
	},
}

const defaultConfig = `# twfold configuration
# Docs: https://github.com/yacobolo/twfold

# Shared settings
prefix: tw-
verbose: false

# Run settings
run:
  paths:
    - "**/*.html"
    - "**/*.htm"
    - "**/*.jsx"
    - "**/*.tsx"
  output: twfold.gen.css
  mode: hash               # hash | incremental | readable
  dry-run: false
  minify: false
  jobs: 0                  # 0 = number of CPUs
  output-format: text      # text | json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
