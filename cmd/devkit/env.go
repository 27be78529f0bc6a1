package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/config"
	"github.com/nao1215/devkit/internal/log"
	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/registry"
	"github.com/nao1215/devkit/internal/report"
)

// errNoInput is returned when a tool that needs input gets none.
var errNoInput = errors.New("no input: pass it as an argument or on standard input")

// toolEnv is what every tool command needs besides its own flags.
type toolEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	writer report.Writer
	out    io.Writer
}

// newToolEnv loads the configuration, applies the global flags and sets up
// logging and the result writer.
func newToolEnv(cmd *cobra.Command) (*toolEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.ConfigFilePath != "" {
		logger.Debug("loaded configuration", "path", cfg.ConfigFilePath)
	}

	out := cmd.OutOrStdout()
	w, err := report.NewWriter(cfg.Output, out, report.Options{
		Highlight: cfg.Highlight && report.IsTerminal(out),
	})
	if err != nil {
		return nil, err
	}

	return &toolEnv{cfg: cfg, logger: logger, writer: w, out: out}, nil
}

// emit writes a result with the configured writer.
func (e *toolEnv) emit(result *model.Result) error {
	_, err := e.writer.Write(result)
	return err
}

// styled reports whether output may carry ANSI styling.
func (e *toolEnv) styled() bool {
	return e.cfg.Output == report.FormatText && report.IsTerminal(e.out)
}

// lookupFlag finds a flag on the command or, when the command runs on its
// own, among the root's persistent flags.
func lookupFlag(cmd *cobra.Command, name string) (value string, changed, ok bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		f = cmd.Root().PersistentFlags().Lookup(name)
	}
	if f == nil {
		return "", false, false
	}
	return f.Value.String(), f.Changed, true
}

// getVerboseFlag gets the verbose flag from the command or its parents.
func getVerboseFlag(cmd *cobra.Command) bool {
	v, _, _ := lookupFlag(cmd, "verbose")
	return v == "true"
}

// loadConfig builds the configuration from the defaults, the configuration
// file and the global flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _, _ := lookupFlag(cmd, "config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	if v, changed, _ := lookupFlag(cmd, "output"); changed {
		cfg.Output = v
	}
	if v, changed, _ := lookupFlag(cmd, "highlight"); changed {
		cfg.Highlight = v == "true"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// readInput returns the arguments joined by a space, or standard input when
// there are no arguments or the only argument is "-". One trailing newline
// is dropped from standard input.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && (len(args) != 1 || args[0] != "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return trimNewline(string(data)), nil
}

// readSource returns the contents of the file named by the first argument,
// or standard input when there is none or it is "-".
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0]) //nolint:gosec // user-selected file
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

// intFlag returns the flag value when it was set and fallback otherwise.
// Flags fall back to the configuration this way.
func intFlag(cmd *cobra.Command, name string, fallback int) (int, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	return cmd.Flags().GetInt(name)
}

// stringFlag is the string variant of intFlag.
func stringFlag(cmd *cobra.Command, name, fallback string) (string, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	return cmd.Flags().GetString(name)
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// newToolCmd creates the command of a registered tool. The tool's
// description becomes the short help and its label heads the long help.
func newToolCmd(name, args, long string) *cobra.Command {
	// The registry is static and every name passed here is covered by tests.
	tool, _ := registry.Lookup(name)

	use := tool.Name()
	if args != "" {
		use += " " + args
	}
	return &cobra.Command{
		Use:   use,
		Short: tool.Description,
		Long:  tool.Label + "\n\n" + strings.TrimSpace(long),
	}
}

// toolCommands returns one command per registered tool, in registry order.
func toolCommands() []*cobra.Command {
	return []*cobra.Command{
		NewBase64Cmd(),
		NewURLEncoderCmd(),
		NewJWTDecoderCmd(),
		NewTokenGeneratorCmd(),
		NewUUIDGeneratorCmd(),
		NewHashGeneratorCmd(),
		NewQRCodeGeneratorCmd(),
		NewQRReaderCmd(),
		NewTimestampConverterCmd(),
		NewStringCaseConverterCmd(),
		NewSVGConverterCmd(),
		NewCSVToJSONCmd(),
		NewYAMLToJSONCmd(),
		NewXMLToJSONCmd(),
		NewTOMLToJSONCmd(),
		NewJSONPrettyPrintCmd(),
		NewCookiesToJSONCmd(),
		NewJSONParserCmd(),
		NewJSONEditorCmd(),
		NewURLComposerCmd(),
		NewIframerCmd(),
		NewSignalRNotifierCmd(),
		NewRegexTesterCmd(),
		NewColorConverterCmd(),
		NewCurlToMarkdownCmd(),
		NewMarkdownPreviewCmd(),
		NewHTMLEntityEncoderCmd(),
		NewLoremIpsumGeneratorCmd(),
		NewTextDiffViewerCmd(),
		NewHedbanzGameCmd(),
	}
}
