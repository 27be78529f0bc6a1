package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/devkit/internal/registry"
)

// runDevkit executes the root command with a configuration file that keeps
// the preferences database inside a temporary directory.
func runDevkit(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "devkit.yaml")
	if err := os.WriteFile(cfgPath, []byte("db_dir: "+dir+"\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return runDevkitWithConfig(t, cfgPath, stdin, args...)
}

// runDevkitWithConfig is runDevkit with an existing configuration file.
func runDevkitWithConfig(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "devkit" {
			t.Errorf("expected use 'devkit', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != "text" {
			t.Errorf("expected default 'text', got %q", flag.DefValue)
		}
	})

	t.Run("has a command per tool", func(t *testing.T) {
		t.Parallel()
		for _, tool := range registry.Tools() {
			sub, _, err := cmd.Find([]string{tool.Name()})
			if err != nil || sub == cmd {
				t.Errorf("no command for tool %q", tool.Path)
				continue
			}
			if sub.Short != tool.Description {
				t.Errorf("%s: expected short %q, got %q", tool.Name(), tool.Description, sub.Short)
			}
			if !strings.HasPrefix(sub.Long, tool.Label) {
				t.Errorf("%s: long help does not start with the label", tool.Name())
			}
		}
	})

	t.Run("has management commands", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"list", "info", "init", "version"} {
			if sub, _, err := cmd.Find([]string{name}); err != nil || sub == cmd {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})
}

// TestToolFlagsDoNotShadowGlobals tests that no tool reuses a global shorthand.
func TestToolFlagsDoNotShadowGlobals(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	for _, sub := range root.Commands() {
		for _, short := range []string{"o", "v"} {
			if f := sub.Flags().ShorthandLookup(short); f != nil {
				t.Errorf("%s: flag --%s uses the global shorthand -%s", sub.Name(), f.Name, short)
			}
		}
	}
}

func TestRunUnknownOutputFormat(t *testing.T) {
	t.Parallel()

	_, err := runDevkit(t, "", "-o", "yaml", "base64", "hello")
	if err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
}

func TestRunMissingConfigFile(t *testing.T) {
	t.Parallel()

	_, err := runDevkitWithConfig(t, filepath.Join(t.TempDir(), "missing.yaml"), "", "base64", "hello")
	if err == nil {
		t.Fatal("expected an error for a missing configuration file")
	}
}
