package commands

import (
	"github.com/spf13/cobra"

	"github.com/salmoriadev/bancodio3.0/internal/buildinfo"
	"github.com/salmoriadev/bancodio3.0/internal/config"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand, it starts the interactive menu.
func NewRootCommand() *cobra.Command {
	var global globalOptions
	var input string

	rootCmd := &cobra.Command{
		Use:     "bancodio",
		Short:   "In-memory retail bank simulator",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, global, input)
		},
	}

	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "path to a "+config.FileName+" file")
	rootCmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "override the configured log level")
	rootCmd.Flags().StringVar(&input, "input", "", "read menu input from a file instead of stdin")

	rootCmd.AddCommand(newRunCommand(&global))
	rootCmd.AddCommand(newConfigCommand(&global))

	return rootCmd
}
