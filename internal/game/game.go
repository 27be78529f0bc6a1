// Package game implements Hedbanz, a party guessing game: one player draws
// a character without looking while the others give clues.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Category names.
const (
	DefaultCategory = "Personajes de Películas"
	CustomCategory  = "Personalizado"
)

var (
	// ErrUnknownCategory is returned for a category that does not exist.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNoItems is returned by Draw when nothing is selected.
	ErrNoItems = errors.New("no items to draw from")
)

// Category is a named list of items to guess.
type Category struct {
	Name  string
	Items []string
}

var builtin = []Category{
	{Name: "Personajes de Películas", Items: []string{
		"Harry Potter", "Darth Vader", "Jack Sparrow", "Shrek", "Batman",
		"Spider-Man", "Elsa", "Woody", "Iron Man", "Gollum",
		"Forrest Gump", "Indiana Jones", "Terminator", "E.T.", "Yoda",
	}},
	{Name: "Animales", Items: []string{
		"León", "Elefante", "Pingüino", "Cocodrilo", "Águila",
		"Delfín", "Canguro", "Jirafa", "Pulpo", "Koala",
		"Tiburón", "Mariposa", "Tortuga", "Búho", "Camaleón",
	}},
	{Name: "Profesiones", Items: []string{
		"Médico", "Astronauta", "Chef", "Bombero", "Piloto",
		"Detective", "Veterinario", "Científico", "Músico", "Fotógrafo",
		"Arquitecto", "Maestro", "Abogado", "Periodista", "Atleta",
	}},
	{Name: "Comida", Items: []string{
		"Pizza", "Hamburguesa", "Sushi", "Tacos", "Helado",
		"Pasta", "Chocolate", "Paella", "Hot Dog", "Donut",
		"Croissant", "Ramen", "Burrito", "Waffles", "Nachos",
	}},
	{Name: "Objetos", Items: []string{
		"Teléfono", "Paraguas", "Guitarra", "Bicicleta", "Reloj",
		"Espejo", "Lámpara", "Televisor", "Computadora", "Cámara",
		"Libro", "Tijeras", "Martillo", "Globo", "Silla",
	}},
}

// Categories returns the built-in categories in display order.
func Categories() []Category {
	out := make([]Category, len(builtin))
	for i, c := range builtin {
		out[i] = Category{Name: c.Name, Items: append([]string(nil), c.Items...)}
	}
	return out
}

// LookupCategory finds a built-in category by name, ignoring case.
func LookupCategory(name string) (Category, error) {
	for _, c := range builtin {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// ParseCustom splits text into one item per non-blank line.
func ParseCustom(text string) []string {
	lines := strings.Split(text, "\n")
	items := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			items = append(items, l)
		}
	}
	return items
}

// Entry is one drawable item and the category it belongs to.
type Entry struct {
	Item     string `json:"item"`
	Category string `json:"category"`
}

// Game holds the selection and the items already drawn. It is not safe
// for concurrent use.
type Game struct {
	rnd      *rand.Rand
	selected map[string]bool
	custom   []string
	used     map[string]bool
	current  *Entry
	revealed bool
}

// Option configures a Game.
type Option func(*Game)

// WithSeed makes draws deterministic.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.rnd = rand.New(rand.NewPCG(seed, seed))
	}
}

// New creates a game with the default category selected.
func New(opts ...Option) *Game {
	g := &Game{
		rnd:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		selected: map[string]bool{DefaultCategory: true},
		used:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Select makes name the only selected category.
func (g *Game) Select(name string) error {
	c, err := LookupCategory(name)
	if err != nil {
		return err
	}
	g.selected = map[string]bool{c.Name: true}
	return nil
}

// Toggle adds or removes name from the selection.
func (g *Game) Toggle(name string) error {
	c, err := LookupCategory(name)
	if err != nil {
		return err
	}
	if g.selected[c.Name] {
		delete(g.selected, c.Name)
	} else {
		g.selected[c.Name] = true
	}
	return nil
}

// IsSelected reports whether the built-in category is selected.
func (g *Game) IsSelected(name string) bool {
	return g.selected[name]
}

// Selected returns the selected built-in categories in display order.
func (g *Game) Selected() []string {
	out := make([]string, 0, len(g.selected))
	for _, c := range builtin {
		if g.selected[c.Name] {
			out = append(out, c.Name)
		}
	}
	return out
}

// SetCustom replaces the custom items with the lines of text.
func (g *Game) SetCustom(text string) {
	g.custom = ParseCustom(text)
}

// Items returns every drawable entry: the selected categories followed by
// the custom items.
func (g *Game) Items() []Entry {
	items := make([]Entry, 0)
	for _, c := range builtin {
		if !g.selected[c.Name] {
			continue
		}
		for _, it := range c.Items {
			items = append(items, Entry{Item: it, Category: c.Name})
		}
	}
	for _, it := range g.custom {
		items = append(items, Entry{Item: it, Category: CustomCategory})
	}
	return items
}

// Total is the number of drawable entries.
func (g *Game) Total() int {
	return len(g.Items())
}

// Used is the number of items drawn since the last reset.
func (g *Game) Used() int {
	return len(g.used)
}

// Remaining is Total minus Used, never below zero.
func (g *Game) Remaining() int {
	return max(g.Total()-len(g.used), 0)
}

// Draw picks a random item that has not been drawn yet. Once every item has
// been drawn the used set starts over. The new item is hidden.
func (g *Game) Draw() (Entry, error) {
	all := g.Items()
	if len(all) == 0 {
		return Entry{}, ErrNoItems
	}

	available := make([]Entry, 0, len(all))
	for _, e := range all {
		if !g.used[e.Item] {
			available = append(available, e)
		}
	}
	if len(available) == 0 {
		g.used = make(map[string]bool)
		available = all
	}

	e := available[g.rnd.IntN(len(available))]
	g.used[e.Item] = true
	g.current = &e
	g.revealed = false
	return e, nil
}

// Current returns the last drawn entry.
func (g *Game) Current() (Entry, bool) {
	if g.current == nil {
		return Entry{}, false
	}
	return *g.current, true
}

// Reveal shows the current item.
func (g *Game) Reveal() {
	if g.current != nil {
		g.revealed = true
	}
}

// Revealed reports whether the current item is shown.
func (g *Game) Revealed() bool {
	return g.revealed
}

// Reset forgets the drawn items and the current one.
func (g *Game) Reset() {
	g.used = make(map[string]bool)
	g.current = nil
	g.revealed = false
}
