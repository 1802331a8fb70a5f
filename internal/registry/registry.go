// Package registry maps game IDs to factories. Each breaker control style
// registers itself from an init function under a canonical ID plus short
// aliases, so the CLI and the menus never name a concrete game type.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/breaker/internal/core"
)

// Game is the contract between a game core and the platform.
// Games contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the canonical identifier (e.g., "breaker_momentum").
	// Scores are stored under it.
	ID() string

	// Title returns a human-readable name for display (e.g., "Breaker (Momentum)").
	Title() string

	// Reset loads configuration and returns the game to its main menu.
	// Called once before the first Step.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the state as of the last Step.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID      string
	Title   string
	Aliases []string // Sorted
}

// Factory creates a new, un-reset game.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
	aliases []string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]*entry)
	aliases = make(map[string]string) // alias -> canonical ID
)

// Register adds a game factory under its canonical ID.
// Panics if the ID is already taken by a game or an alias.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	if _, exists := aliases[id]; exists {
		panic(fmt.Sprintf("registry: %q is already an alias", id))
	}

	entries[id] = &entry{factory: f, title: f().Title()}
}

// Alias lets name resolve to the registered game id.
// Panics if id is unknown or name is taken.
func Alias(name, id string) {
	mu.Lock()
	defer mu.Unlock()

	e, ok := entries[id]
	if !ok {
		panic(fmt.Sprintf("registry: alias %q for unknown game %q", name, id))
	}
	if _, exists := entries[name]; exists {
		panic(fmt.Sprintf("registry: alias %q shadows a game", name))
	}
	if _, exists := aliases[name]; exists {
		panic(fmt.Sprintf("registry: alias %q already registered", name))
	}

	aliases[name] = id
	e.aliases = append(e.aliases, name)
	sort.Strings(e.aliases)
}

// List returns all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{
			ID:      id,
			Title:   e.title,
			Aliases: append([]string(nil), e.aliases...),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Resolve maps an ID or alias to a canonical ID. Matching ignores case and
// surrounding spaces.
func Resolve(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	mu.RLock()
	defer mu.RUnlock()

	if _, ok := entries[name]; ok {
		return name, nil
	}
	if id, ok := aliases[name]; ok {
		return id, nil
	}
	return "", fmt.Errorf("registry: unknown game %q", name)
}

// Create instantiates a game by ID or alias.
func Create(name string) (Game, error) {
	id, err := Resolve(name)
	if err != nil {
		return nil, err
	}

	mu.RLock()
	f := entries[id].factory
	mu.RUnlock()
	return f(), nil
}

// Exists reports whether name is a registered ID or alias.
func Exists(name string) bool {
	_, err := Resolve(name)
	return err == nil
}
