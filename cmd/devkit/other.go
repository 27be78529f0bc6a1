package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nao1215/devkit/internal/game"
	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/textdiff"
)

// NewTextDiffViewerCmd creates the text-diff-viewer command.
func NewTextDiffViewerCmd() *cobra.Command {
	cmd := newToolCmd("text-diff-viewer", "<old> <new>", `
Compares two files line by line. Either file may be "-" for standard input.

Examples:
  devkit text-diff-viewer old.txt new.txt
  devkit text-diff-viewer --view unified --ignore-whitespace a.go b.go
  git show HEAD:main.go | devkit text-diff-viewer - main.go`)
	cmd.Args = cobra.ExactArgs(2)
	cmd.RunE = runTextDiffViewerCmd

	cmd.Flags().String("view", "split", "Layout: split or unified")
	cmd.Flags().Bool("ignore-whitespace", false, "Ignore changes in whitespace")
	cmd.Flags().Int("width", 0, "Total width of the split view (default: terminal width or 120)")

	return cmd
}

// defaultDiffWidth is used when the terminal width is unknown.
const defaultDiffWidth = 120

// runTextDiffViewerCmd executes the text-diff-viewer command.
func runTextDiffViewerCmd(cmd *cobra.Command, args []string) error {
	view, err := cmd.Flags().GetString("view")
	if err != nil {
		return err
	}
	ignoreWS, err := cmd.Flags().GetBool("ignore-whitespace")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}
	if view != "split" && view != "unified" {
		return fmt.Errorf("unknown view %q: must be split or unified", view)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("only one side can be read from standard input")
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	oldText, err := readSource(cmd, args[:1])
	if err != nil {
		return err
	}
	newText, err := readSource(cmd, args[1:])
	if err != nil {
		return err
	}

	lines := textdiff.Compare(oldText, newText, textdiff.Options{IgnoreWhitespace: ignoreWS})
	stats := textdiff.Count(lines)

	result := model.NewResult("text-diff-viewer")
	if stats.Identical() {
		result.Add("Result", "The texts are identical")
		return env.emit(result)
	}
	result.Add("Added", strconv.Itoa(stats.Added)).
		Add("Removed", strconv.Itoa(stats.Removed)).
		Add("Unchanged", strconv.Itoa(stats.Unchanged))

	styled := env.styled()
	if view == "unified" {
		lang := "diff"
		if styled {
			lang = ""
		}
		return env.emit(result.WithBody(textdiff.FormatUnified(lines, styled), lang))
	}

	if width <= 0 {
		width = terminalWidth()
	}
	return env.emit(result.WithBody(textdiff.FormatSplit(textdiff.Split(lines), width, styled), ""))
}

// terminalWidth returns the width of stdout, or defaultDiffWidth when it is
// not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 { //nolint:gosec // file descriptors fit in int
		return w
	}
	return defaultDiffWidth
}

// NewHedbanzGameCmd creates the hedbanz-game command.
func NewHedbanzGameCmd() *cobra.Command {
	cmd := newToolCmd("hedbanz-game", "", `
Un jugador se pone el personaje en la frente sin mirarlo; los demás dan
pistas hasta que lo adivine.

Keys: space/enter draw, r reveal, x reset, tab next category, 1-5 toggle a
category, q quit

Categories: Personajes de Películas, Animales, Profesiones, Personajes
Históricos, Objetos Cotidianos

Examples:
  devkit hedbanz-game
  devkit hedbanz-game --category Animales --category Profesiones
  devkit hedbanz-game --custom amigos.txt
  devkit hedbanz-game --once`)
	cmd.Args = cobra.NoArgs
	cmd.RunE = runHedbanzGameCmd

	cmd.Flags().StringArrayP("category", "c", nil, "Category to play (repeatable)")
	cmd.Flags().String("custom", "", "File with one custom item per line")
	cmd.Flags().Bool("once", false, "Print a single draw instead of starting the game")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible draws (0 picks a random seed)")

	return cmd
}

// runHedbanzGameCmd executes the hedbanz-game command.
func runHedbanzGameCmd(cmd *cobra.Command, _ []string) error {
	categories, err := cmd.Flags().GetStringArray("category")
	if err != nil {
		return err
	}
	customPath, err := cmd.Flags().GetString("custom")
	if err != nil {
		return err
	}
	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	var opts []game.Option
	if seed != 0 {
		opts = append(opts, game.WithSeed(seed))
	}
	g := game.New(opts...)

	for i, name := range categories {
		if i == 0 {
			err = g.Select(name)
		} else {
			err = g.Toggle(name)
		}
		if err != nil {
			return err
		}
	}
	if customPath != "" {
		data, err := os.ReadFile(customPath) //nolint:gosec // user-selected file
		if err != nil {
			return fmt.Errorf("failed to read custom items: %w", err)
		}
		g.SetCustom(string(data))
		if len(categories) == 0 {
			if err := g.Toggle(game.DefaultCategory); err != nil {
				return err
			}
		}
	}
	env.logger.Debug("game ready", "categories", g.Selected(), "total", g.Total())

	if once {
		e, err := g.Draw()
		if err != nil {
			return err
		}
		result := model.NewResult("hedbanz-game")
		result.Add("Personaje", e.Item).Add("Categoría", e.Category)
		return env.emit(result)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	p := tea.NewProgram(game.NewModel(g, env.cfg.RevertDelay),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
