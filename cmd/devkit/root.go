package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/config"
)

// NewRootCmd creates the root command for devkit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devkit",
		Short: "A toolbox of everyday developer utilities",
		Long: `devkit bundles small developer utilities behind one command.

Each tool reads its input from the arguments or from standard input and
writes the result as text, JSON or Markdown. Run "devkit list" to see every
tool grouped by category.

Settings are read from .devkit.yaml in the current directory, from
$XDG_CONFIG_HOME/devkit/config.yaml or from ~/.devkit.yaml. Flags override
the configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("config", "",
		"Configuration file path (default: .devkit.yaml in current, XDG config or home directory)")
	cmd.PersistentFlags().StringP("output", "o", config.DefaultOutput,
		"Output format: text, json or markdown")
	cmd.PersistentFlags().Bool("highlight", false,
		"Syntax-highlight structured output when writing to a terminal")

	// Add subcommands
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewInfoCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(toolCommands()...)

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
