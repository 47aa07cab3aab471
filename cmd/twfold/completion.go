package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Write a shell completion script to stdout",
	Long: `Write a completion script for the given shell to stdout.

To load completions for the current bash session:

	source <(twfold completion bash)

For zsh, write the script somewhere on $fpath, e.g.:

	twfold completion zsh > "${fpath[1]}/_twfold"`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		out := cmd.OutOrStdout()
		gen := map[string]func(io.Writer) error{
			"bash":       func(w io.Writer) error { return root.GenBashCompletionV2(w, true) },
			"zsh":        root.GenZshCompletion,
			"fish":       func(w io.Writer) error { return root.GenFishCompletion(w, true) },
			"powershell": root.GenPowerShellCompletionWithDesc,
		}
		fn, ok := gen[args[0]]
		if !ok {
			return fmt.Errorf("unsupported shell %q", args[0])
		}
		return fn(out)
	},
}
