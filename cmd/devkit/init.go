package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/config"
)

//go:embed templates/devkit.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new devkit configuration file",
		Long: `Initialize creates a new .devkit.yaml configuration file in the current directory.

The generated file includes:
- The default output format and batch concurrency
- Defaults for the token, UUID, hash, QR code and lorem ipsum generators
- Hub connection and reconnect settings for the SignalR notifier

Examples:
  # Create .devkit.yaml in current directory
  devkit init

  # Create config file at a specific path
  devkit init -p ~/.config/devkit/config.yaml

  # Force overwrite existing file
  devkit init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("path", "p", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("path")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/devkit.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to change defaults such as:")
	fmt.Fprintln(out, "  - The output format (text, json or markdown)")
	fmt.Fprintln(out, "  - Token length and charset")
	fmt.Fprintln(out, "  - The SignalR hub URL and method")

	return nil
}
