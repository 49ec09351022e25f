// Package registry keeps the game variants the platform can start.
// Game packages register their factories from init, so commands and
// servers discover variants without importing them by name.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Game is the contract between a pure-logic game and the platform.
// Implementations never import Bubble Tea; the platform owns input
// mapping, timing and terminal output.
type Game interface {
	// ID is the stable key used by the CLI and score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions queued since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score and flags as of the last step.
	State() core.GameState
}

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new, not yet Reset, game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

// Registry maps game IDs to factories. The zero value is ready to use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// Register adds a factory. The title is read from one throwaway instance.
// Registering an ID twice, or an empty ID, panics.
func (r *Registry) Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]entry)
	}
	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.entries[id] = entry{info: GameInfo{ID: id, Title: f().Title()}, factory: f}
}

// List returns every registered variant sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]GameInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create returns a new instance of the variant with the given ID.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}

// defaultRegistry is filled by game packages' init functions.
var defaultRegistry Registry

// Register adds a factory to the default registry.
func Register(id string, f Factory) { defaultRegistry.Register(id, f) }

// List returns the variants in the default registry.
func List() []GameInfo { return defaultRegistry.List() }

// Create instantiates a variant from the default registry.
func Create(id string) (Game, error) { return defaultRegistry.Create(id) }

// Exists reports whether the default registry knows id.
func Exists(id string) bool { return defaultRegistry.Exists(id) }
