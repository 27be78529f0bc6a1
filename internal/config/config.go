package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "devkit"

	// DefaultOutput is the output format used when none is configured.
	DefaultOutput = "text"

	// DefaultConcurrency is the number of files processed in parallel by
	// batch hashing and batch conversion.
	DefaultConcurrency = 4

	// DefaultRevertDelay is how long a transient status stays visible
	// before it returns to its initial value.
	DefaultRevertDelay = 2 * time.Second

	// DefaultTokenLength is the length of generated tokens.
	DefaultTokenLength = 32

	// DefaultTokenCharset is the alphabet used for generated tokens.
	DefaultTokenCharset = "alphanumeric"

	// DefaultUUIDFormat is the rendering of generated UUIDs.
	DefaultUUIDFormat = "lowercase"

	// DefaultQRSize is the edge length of generated QR codes in pixels.
	DefaultQRSize = 256

	// DefaultQRLevel is the QR error correction level.
	DefaultQRLevel = "M"

	// DefaultQRMargin is the quiet zone around a QR code, in modules.
	DefaultQRMargin = 2

	// DefaultHubMethod is the hub method invoked by the notifier.
	DefaultHubMethod = "CloudMessage"

	// DefaultIframeSize is the width and height of the iframe loader.
	DefaultIframeSize = 500

	// MaxTokenLength is the longest token that may be generated.
	MaxTokenLength = 512
)

// Config holds all configuration options for devkit.
// It is built from NewConfig, overlaid with the optional config file,
// and finally with command line flags.
type Config struct {
	// Verbose enables debug logging.
	Verbose bool `yaml:"-"`

	// ConfigFilePath is the configuration file that was loaded, if any.
	ConfigFilePath string `yaml:"-"`

	// Output is the output format: text, json or markdown.
	Output string `yaml:"output"`

	// Highlight enables syntax highlighting of structured output on terminals.
	Highlight bool `yaml:"highlight"`

	// Concurrency bounds batch processing of files.
	Concurrency int `yaml:"concurrency"`

	// RevertDelay is the delay used by transient status values.
	RevertDelay time.Duration `yaml:"revert_delay"`

	// DBDir is the directory holding the preferences database.
	// Defaults to the XDG data directory.
	DBDir string `yaml:"db_dir"`

	Token  TokenSection  `yaml:"token"`
	UUID   UUIDSection   `yaml:"uuid"`
	Hash   HashSection   `yaml:"hash"`
	QR     QRSection     `yaml:"qr"`
	Lorem  LoremSection  `yaml:"lorem"`
	Hub    HubSection    `yaml:"hub"`
	Iframe IframeSection `yaml:"iframe"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Output:      DefaultOutput,
		Concurrency: DefaultConcurrency,
		RevertDelay: DefaultRevertDelay,
		DBDir:       XDGDataDir(),
		Token: TokenSection{
			Length:  DefaultTokenLength,
			Count:   1,
			Charset: DefaultTokenCharset,
		},
		UUID: UUIDSection{
			Format: DefaultUUIDFormat,
			Count:  1,
		},
		Hash: HashSection{
			Algorithms: []string{"SHA-1", "SHA-256", "SHA-384", "SHA-512"},
		},
		QR: QRSection{
			Size:       DefaultQRSize,
			Foreground: "#000000",
			Background: "#ffffff",
			Level:      DefaultQRLevel,
			Margin:     DefaultQRMargin,
		},
		Lorem: LoremSection{
			Paragraphs: 3,
			Sentences:  10,
			Words:      50,
		},
		Hub: HubSection{
			Method: DefaultHubMethod,
			Reconnect: ReconnectSection{
				InitialDelay: 2 * time.Second,
				Multiplier:   2,
				MaxDelay:     30 * time.Second,
				MaxAttempts:  4,
			},
		},
		Iframe: IframeSection{
			Width:  DefaultIframeSize,
			Height: DefaultIframeSize,
		},
	}
}

// XDGDataDir returns the XDG data directory for devkit.
// On Linux: ~/.local/share/devkit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for devkit.
// On Linux: ~/.config/devkit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json", "markdown":
	default:
		return ErrInvalidOutputFormat
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.RevertDelay <= 0 {
		return ErrInvalidRevertDelay
	}

	if c.Token.Length < 1 || c.Token.Length > MaxTokenLength {
		return ErrInvalidTokenLength
	}

	if c.QR.Size <= 0 {
		return ErrInvalidQRSize
	}

	if c.Hub.URL != "" && !validHubScheme(c.Hub.URL) {
		return ErrInvalidHubURL
	}

	return nil
}

func validHubScheme(u string) bool {
	for _, p := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(strings.ToLower(u), p) {
			return true
		}
	}
	return false
}
