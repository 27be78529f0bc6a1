package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/color"
	"github.com/nao1215/devkit/internal/config"
	"github.com/nao1215/devkit/internal/curlmd"
	"github.com/nao1215/devkit/internal/hub"
	"github.com/nao1215/devkit/internal/iframe"
	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/prefs"
	"github.com/nao1215/devkit/internal/regextest"
	"github.com/nao1215/devkit/internal/urlcompose"
)

// openPrefs opens the preferences database in the configured directory.
func openPrefs(env *toolEnv) (*prefs.Store, error) {
	store, err := prefs.Open(env.cfg.DBDir, prefs.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	env.logger.Debug("opened preferences", "path", store.Path())
	return store, nil
}

// NewURLComposerCmd creates the url-composer command.
func NewURLComposerCmd() *cobra.Command {
	cmd := newToolCmd("url-composer", "", `
The last composed URL is remembered, so later runs only need the parts that
change. --param replaces every stored parameter; --reset starts from an
empty form.

Examples:
  devkit url-composer --protocol https --domain example.com --path api/users
  devkit url-composer --param page=2 --param sort=name
  devkit url-composer --reset --domain localhost --port 8080`)
	cmd.Args = cobra.NoArgs
	cmd.RunE = runURLComposerCmd

	cmd.Flags().String("protocol", "", "Protocol (default: http)")
	cmd.Flags().String("domain", "", "Domain name")
	cmd.Flags().String("port", "", "Port")
	cmd.Flags().String("path", "", "Path")
	cmd.Flags().StringArray("param", nil, "Query parameter name=value (repeatable)")
	cmd.Flags().Bool("reset", false, "Forget the stored form before applying the flags")

	return cmd
}

// runURLComposerCmd executes the url-composer command.
func runURLComposerCmd(cmd *cobra.Command, _ []string) error {
	var patch urlcompose.Form
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"protocol", &patch.Protocol},
		{"domain", &patch.Domain},
		{"port", &patch.Port},
		{"path", &patch.Path},
	} {
		v, err := cmd.Flags().GetString(f.name)
		if err != nil {
			return err
		}
		*f.dst = strings.TrimSpace(v)
	}

	rawParams, err := cmd.Flags().GetStringArray("param")
	if err != nil {
		return err
	}
	if len(rawParams) > 0 {
		if patch.Params, err = urlcompose.ParseParams(rawParams); err != nil {
			return err
		}
	}
	reset, err := cmd.Flags().GetBool("reset")
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}
	store, err := openPrefs(env)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var form urlcompose.Form
	if !reset {
		if err := store.Get(ctx, prefs.KeyURLComposer, &form); err != nil && !errors.Is(err, prefs.ErrNotFound) {
			return err
		}
	}
	form = urlcompose.Merge(form, patch)
	if err := store.Set(ctx, prefs.KeyURLComposer, form); err != nil {
		return err
	}

	result := model.NewResult("url-composer")
	result.Add("Protocol", form.Protocol).Add("Domain", form.Domain)
	if form.Port != "" {
		result.Add("Port", form.Port)
	}
	if form.Path != "" {
		result.Add("Path", form.Path)
	}
	for _, p := range form.Params {
		result.Add("?"+p.Name, p.Value)
	}
	return env.emit(result.WithBody(urlcompose.Compose(form), ""))
}

// NewIframerCmd creates the iframer command.
func NewIframerCmd() *cobra.Command {
	cmd := newToolCmd("iframer", "[url]", `
Without a URL the last one is used again.

Examples:
  devkit iframer https://example.com
  devkit iframer --width 800 --height 600 --page https://example.com > preview.html`)
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = runIframerCmd

	cmd.Flags().Int("width", config.DefaultIframeSize, "Width in pixels")
	cmd.Flags().Int("height", config.DefaultIframeSize, "Height in pixels")
	cmd.Flags().Bool("page", false, "Print a complete HTML page instead of the element")

	return cmd
}

// runIframerCmd executes the iframer command.
func runIframerCmd(cmd *cobra.Command, args []string) error {
	page, err := cmd.Flags().GetBool("page")
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	opts := iframe.Options{}
	if opts.Width, err = intFlag(cmd, "width", env.cfg.Iframe.Width); err != nil {
		return err
	}
	if opts.Height, err = intFlag(cmd, "height", env.cfg.Iframe.Height); err != nil {
		return err
	}

	store, err := openPrefs(env)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) > 0 {
		opts.URL = args[0]
	} else {
		var last iframe.Options
		if err := store.Get(ctx, prefs.KeyIframer, &last); err != nil {
			if errors.Is(err, prefs.ErrNotFound) {
				return fmt.Errorf("%w: no URL given and none stored", iframe.ErrInvalidURL)
			}
			return err
		}
		opts.URL = last.URL
	}

	render := iframe.Snippet
	if page {
		render = iframe.Page
	}
	out, err := render(opts)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, prefs.KeyIframer, opts); err != nil {
		return err
	}
	return env.emit(model.NewResult("iframer").WithBody(out, "html"))
}

// defaultHubTimeout bounds connecting and sending.
const defaultHubTimeout = 30 * time.Second

// NewSignalRNotifierCmd creates the signalr-notifier command.
func NewSignalRNotifierCmd() *cobra.Command {
	cmd := newToolCmd("signalr-notifier", "[message|-]", `
Connects to a SignalR hub over WebSockets and invokes a hub method with the
message. A message that is valid JSON is sent as JSON, anything else as a
string. Dropped connections are retried with exponential backoff.

Examples:
  devkit signalr-notifier --url https://example.com/hubs/notify "Deploy finished"
  devkit signalr-notifier --url wss://example.com/hub --method Broadcast '{"level":"info"}'`)
	cmd.RunE = runSignalRNotifierCmd

	cmd.Flags().String("url", "", "Hub URL (http, https, ws or wss)")
	cmd.Flags().String("method", config.DefaultHubMethod, "Hub method to invoke")
	cmd.Flags().Duration("timeout", defaultHubTimeout, "Timeout for connecting and sending")

	return cmd
}

// runSignalRNotifierCmd executes the signalr-notifier command.
func runSignalRNotifierCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	hubURL, err := stringFlag(cmd, "url", env.cfg.Hub.URL)
	if err != nil {
		return err
	}
	method, err := stringFlag(cmd, "method", env.cfg.Hub.Method)
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	if hubURL == "" {
		return errors.New("no hub URL: use --url or set hub.url in the configuration file")
	}

	message, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return errNoInput
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	rc := env.cfg.Hub.Reconnect
	client, err := hub.NewClient(hubURL,
		hub.WithLogger(env.logger),
		hub.WithTimeout(timeout),
		hub.WithReconnect(hub.ReconnectPolicy{
			InitialDelay: rc.InitialDelay,
			Multiplier:   rc.Multiplier,
			MaxDelay:     rc.MaxDelay,
			MaxAttempts:  rc.MaxAttempts,
			Jitter:       true,
		}),
		hub.WithStateHandler(func(s hub.State) {
			env.logger.Debug("hub state changed", "state", s.String())
		}),
	)
	if err != nil {
		return err
	}

	if err := client.Connect(ctx); err != nil {
		return errors.New(hub.ConnectionFailed(err))
	}
	defer client.Close()
	env.logger.Info(hub.StatusConnected, "url", hubURL)

	reply, err := client.Invoke(ctx, method, hub.ParseArgument(message))
	if err != nil {
		return errors.New(hub.SendFailed(err))
	}

	result := model.NewResult("signalr-notifier")
	result.Add("Hub", hubURL).
		Add("Method", method).
		Add("Status", hub.StatusMessageSent)
	if len(reply) > 0 && string(reply) != "null" {
		result.Add("Result", string(reply))
	}
	return env.emit(result)
}

// NewRegexTesterCmd creates the regex-tester command.
func NewRegexTesterCmd() *cobra.Command {
	cmd := newToolCmd("regex-tester", "[text|-]", `
Patterns use JavaScript syntax, including lookbehind and named groups.

Flags: g (all matches), i (ignore case), m (multiline), s (dot matches
newline), u (unicode)

Examples:
  devkit regex-tester -p '(\w+)@(\w+)\.com' "alice@example.com bob@test.com"
  devkit regex-tester -p '^error' -f gim < app.log`)
	cmd.RunE = runRegexTesterCmd

	cmd.Flags().StringP("pattern", "p", "", "Regular expression")
	cmd.Flags().StringP("flags", "f", regextest.DefaultFlags, "Regular expression flags")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

// runRegexTesterCmd executes the regex-tester command.
func runRegexTesterCmd(cmd *cobra.Command, args []string) error {
	pattern, err := cmd.Flags().GetString("pattern")
	if err != nil {
		return err
	}
	flags, err := cmd.Flags().GetString("flags")
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	res, err := regextest.Test(pattern, flags, text)
	if err != nil {
		return err
	}

	result := model.NewResult("regex-tester")
	result.Add("Matches", strconv.Itoa(len(res.Matches)))
	for i, m := range res.Matches {
		n := i + 1
		result.Add(fmt.Sprintf("Match %d", n), fmt.Sprintf("%s (index %d)", m.FullMatch, m.Index))
		for j, g := range m.Groups {
			result.Add(fmt.Sprintf("Match %d group %d", n, j+1), g)
		}
		for _, name := range slices.Sorted(maps.Keys(m.NamedGroups)) {
			result.Add(fmt.Sprintf("Match %d <%s>", n, name), m.NamedGroups[name])
		}
	}
	return env.emit(result.WithBody(markMatches(res.Parts, env.styled()), ""))
}

var matchStyle = lipgloss.NewStyle().Reverse(true)

// markMatches renders the parts with matches reversed on terminals and in
// brackets otherwise.
func markMatches(parts []regextest.Part, styled bool) string {
	var sb strings.Builder
	for _, p := range parts {
		switch {
		case !p.IsMatch:
			sb.WriteString(p.Text)
		case styled:
			sb.WriteString(matchStyle.Render(p.Text))
		default:
			sb.WriteString("[" + p.Text + "]")
		}
	}
	return sb.String()
}

// defaultColor is shown when no color is given.
const defaultColor = "#3b82f6"

// NewColorConverterCmd creates the color-converter command.
func NewColorConverterCmd() *cobra.Command {
	cmd := newToolCmd("color-converter", "[color]", `
The color may be written as HEX (#3b82f6), RGB(A) (rgb(59, 130, 246)) or
HSL(A) (hsl(217, 91%, 60%)).

Examples:
  devkit color-converter "#ff8800"
  devkit color-converter "rgba(255, 136, 0, 0.5)"
  devkit color-converter "hsl(217, 91%, 60%)"`)
	cmd.RunE = runColorConverterCmd
	return cmd
}

// runColorConverterCmd executes the color-converter command.
func runColorConverterCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	input := defaultColor
	if len(args) > 0 {
		input = strings.Join(args, " ")
	}

	c, err := color.Parse(input)
	if err != nil {
		return err
	}

	result := model.NewResult("color-converter")
	result.Add("HEX", c.Hex()).
		Add("RGB", c.RGBString()).
		Add("HSL", c.HSLString())
	if env.styled() {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(strings.Repeat(" ", 12))
		result.WithBody(swatch, "")
	}
	return env.emit(result)
}

// NewCurlToMarkdownCmd creates the curl-to-markdown command.
func NewCurlToMarkdownCmd() *cobra.Command {
	cmd := newToolCmd("curl-to-markdown", "[command|-]", `
The method, path and body of the request become a Markdown section. An
optional response is appended as a JSON block.

Examples:
  devkit curl-to-markdown "curl -X POST https://api.example.com/users -d '{\"name\":\"a\"}'"
  pbpaste | devkit curl-to-markdown --response response.json`)
	cmd.RunE = runCurlToMarkdownCmd
	cmd.Flags().String("response", "", "File holding the response body")
	return cmd
}

// runCurlToMarkdownCmd executes the curl-to-markdown command.
func runCurlToMarkdownCmd(cmd *cobra.Command, args []string) error {
	responsePath, err := cmd.Flags().GetString("response")
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	req, err := curlmd.Parse(input)
	if err != nil {
		return err
	}
	env.logger.Debug("parsed curl command", "method", req.Method, "url", req.URL)

	var response string
	if responsePath != "" {
		data, err := os.ReadFile(responsePath) //nolint:gosec // user-selected file
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = string(data)
	}

	return env.emit(model.NewResult("curl-to-markdown").WithBody(curlmd.Markdown(req, response), "markdown"))
}
