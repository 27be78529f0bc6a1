package config

import "time"

// TokenSection holds token generator defaults.
type TokenSection struct {
	Length  int    `yaml:"length,omitempty"`
	Count   int    `yaml:"count,omitempty"`
	Charset string `yaml:"charset,omitempty"`
}

// UUIDSection holds UUID generator defaults.
type UUIDSection struct {
	Format string `yaml:"format,omitempty"`
	Count  int    `yaml:"count,omitempty"`
}

// HashSection holds hash generator defaults.
type HashSection struct {
	// Algorithms lists the digests computed when none are requested explicitly.
	Algorithms []string `yaml:"algorithms,omitempty"`
}

// QRSection holds QR code generator defaults.
type QRSection struct {
	Size       int    `yaml:"size,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Level      string `yaml:"level,omitempty"`
	Margin     int    `yaml:"margin,omitempty"`
}

// LoremSection holds lorem ipsum generator defaults.
type LoremSection struct {
	Paragraphs int `yaml:"paragraphs,omitempty"`
	Sentences  int `yaml:"sentences,omitempty"`
	Words      int `yaml:"words,omitempty"`
}

// HubSection holds message hub notifier settings.
type HubSection struct {
	// URL is the default hub endpoint.
	URL string `yaml:"url,omitempty"`

	// Method is the hub method invoked when sending a message.
	Method string `yaml:"method,omitempty"`

	Reconnect ReconnectSection `yaml:"reconnect,omitempty"`
}

// ReconnectSection describes the automatic reconnect policy of the hub client.
type ReconnectSection struct {
	InitialDelay time.Duration `yaml:"initial_delay,omitempty"`
	Multiplier   float64       `yaml:"multiplier,omitempty"`
	MaxDelay     time.Duration `yaml:"max_delay,omitempty"`
	MaxAttempts  int           `yaml:"max_attempts,omitempty"`
}

// IframeSection holds iframe loader defaults.
type IframeSection struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// File represents the structure of the .devkit.yaml configuration file.
// Every field is optional; zero values leave the defaults untouched.
type File struct {
	Output      string        `yaml:"output,omitempty"`
	Highlight   *bool         `yaml:"highlight,omitempty"`
	Concurrency int           `yaml:"concurrency,omitempty"`
	RevertDelay time.Duration `yaml:"revert_delay,omitempty"`
	DBDir       string        `yaml:"db_dir,omitempty"`

	Token  TokenSection  `yaml:"token,omitempty"`
	UUID   UUIDSection   `yaml:"uuid,omitempty"`
	Hash   HashSection   `yaml:"hash,omitempty"`
	QR     QRSection     `yaml:"qr,omitempty"`
	Lorem  LoremSection  `yaml:"lorem,omitempty"`
	Hub    HubSection    `yaml:"hub,omitempty"`
	Iframe IframeSection `yaml:"iframe,omitempty"`
}

// Apply overlays the non-zero values of the file onto the configuration.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.Output != "" {
		c.Output = f.Output
	}
	if f.Highlight != nil {
		c.Highlight = *f.Highlight
	}
	if f.Concurrency != 0 {
		c.Concurrency = f.Concurrency
	}
	if f.RevertDelay != 0 {
		c.RevertDelay = f.RevertDelay
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}

	setInt(&c.Token.Length, f.Token.Length)
	setInt(&c.Token.Count, f.Token.Count)
	setString(&c.Token.Charset, f.Token.Charset)

	setString(&c.UUID.Format, f.UUID.Format)
	setInt(&c.UUID.Count, f.UUID.Count)

	if len(f.Hash.Algorithms) > 0 {
		c.Hash.Algorithms = f.Hash.Algorithms
	}

	setInt(&c.QR.Size, f.QR.Size)
	setString(&c.QR.Foreground, f.QR.Foreground)
	setString(&c.QR.Background, f.QR.Background)
	setString(&c.QR.Level, f.QR.Level)
	setInt(&c.QR.Margin, f.QR.Margin)

	setInt(&c.Lorem.Paragraphs, f.Lorem.Paragraphs)
	setInt(&c.Lorem.Sentences, f.Lorem.Sentences)
	setInt(&c.Lorem.Words, f.Lorem.Words)

	setString(&c.Hub.URL, f.Hub.URL)
	setString(&c.Hub.Method, f.Hub.Method)
	if f.Hub.Reconnect.InitialDelay != 0 {
		c.Hub.Reconnect.InitialDelay = f.Hub.Reconnect.InitialDelay
	}
	if f.Hub.Reconnect.Multiplier != 0 {
		c.Hub.Reconnect.Multiplier = f.Hub.Reconnect.Multiplier
	}
	if f.Hub.Reconnect.MaxDelay != 0 {
		c.Hub.Reconnect.MaxDelay = f.Hub.Reconnect.MaxDelay
	}
	setInt(&c.Hub.Reconnect.MaxAttempts, f.Hub.Reconnect.MaxAttempts)

	setInt(&c.Iframe.Width, f.Iframe.Width)
	setInt(&c.Iframe.Height, f.Iframe.Height)
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
