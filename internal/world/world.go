// Package world holds the game's entities in an arena addressed by stable
// handles. Each kind keeps its own ordered index so iteration is
// deterministic and cheap; there is no global query table.
package world

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/breaker/internal/core"
)

// ErrCardinality is returned when a kind expected to have exactly one live
// entity has zero or several.
var ErrCardinality = errors.New("world: singleton cardinality violated")

// Handle identifies an entity for its whole lifetime. Handles are never reused.
type Handle uint32

// Kind is a bitset of entity tags. An entity may carry several,
// e.g. the bottom wall is KindWall|KindBottomWall.
type Kind uint16

const (
	KindBall Kind = 1 << iota
	KindPaddle
	KindBrick
	KindWall
	KindBottomWall
	KindCamera
	KindText
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{KindBall, "ball"},
	{KindPaddle, "paddle"},
	{KindBrick, "brick"},
	{KindWall, "wall"},
	{KindBottomWall, "bottom-wall"},
	{KindCamera, "camera"},
	{KindText, "text"},
}

// Has reports whether k carries every tag in other.
func (k Kind) Has(other Kind) bool {
	return k&other == other
}

// String joins the tag names with '|'.
func (k Kind) String() string {
	var parts []string
	for _, kn := range kindNames {
		if k.Has(kn.kind) {
			parts = append(parts, kn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Entity is one record in the arena. Which fields matter depends on Kind.
type Entity struct {
	Handle Handle
	Kind   Kind
	Name   string

	// Pos is the box center. Z only orders drawing.
	Pos  mgl32.Vec3
	Size mgl32.Vec2

	// Velocity is the ball's travel direction. Its length is not the speed.
	Velocity mgl32.Vec2

	Strength int // Bricks only, in [1,3]
	Tint     core.Color
	Visible  bool
	Blink    *Blink // Non-nil while a blink window is running
	Text     string // Text displays only
}

// Center returns the entity's box center in the xy plane.
func (e *Entity) Center() mgl32.Vec2 {
	return e.Pos.Vec2()
}

// World is the entity arena.
type World struct {
	next     Handle
	entities map[Handle]*Entity
	byKind   map[Kind][]Handle // single-bit kind -> handles in spawn order
}

// New creates an empty world.
func New() *World {
	return &World{
		entities: make(map[Handle]*Entity),
		byKind:   make(map[Kind][]Handle),
	}
}

// Spawn adds an entity and returns its handle. The entity starts visible.
func (w *World) Spawn(e Entity) Handle {
	w.next++
	e.Handle = w.next
	e.Visible = true
	stored := e
	w.entities[e.Handle] = &stored

	for _, kn := range kindNames {
		if e.Kind.Has(kn.kind) {
			w.byKind[kn.kind] = append(w.byKind[kn.kind], e.Handle)
		}
	}
	return e.Handle
}

// Get returns the live entity for h.
func (w *World) Get(h Handle) (*Entity, bool) {
	e, ok := w.entities[h]
	return e, ok
}

// Despawn removes an entity. It reports false if h was not live.
func (w *World) Despawn(h Handle) bool {
	e, ok := w.entities[h]
	if !ok {
		return false
	}
	delete(w.entities, h)

	for _, kn := range kindNames {
		if !e.Kind.Has(kn.kind) {
			continue
		}
		list := w.byKind[kn.kind]
		if i := slices.Index(list, h); i >= 0 {
			w.byKind[kn.kind] = slices.Delete(list, i, i+1)
		}
	}
	return true
}

// Clear despawns every entity. Handles keep counting up.
func (w *World) Clear() {
	clear(w.entities)
	clear(w.byKind)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Query returns live entities carrying every tag in kind, in spawn order.
// The returned slice is a snapshot; despawning while ranging over it is safe.
func (w *World) Query(kind Kind) []*Entity {
	index := w.byKind[lowestBit(kind)]
	out := make([]*Entity, 0, len(index))
	for _, h := range index {
		e := w.entities[h]
		if e.Kind.Has(kind) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of live entities carrying every tag in kind.
func (w *World) Count(kind Kind) int {
	if kind == lowestBit(kind) {
		return len(w.byKind[kind])
	}
	return len(w.Query(kind))
}

// Single returns the one live entity of the given kind.
// It returns an error wrapping ErrCardinality when there are zero or several.
func (w *World) Single(kind Kind) (*Entity, error) {
	found := w.Query(kind)
	if len(found) != 1 {
		return nil, fmt.Errorf("%w: %d %s entities, expected 1", ErrCardinality, len(found), kind)
	}
	return found[0], nil
}

// Named returns the first live entity of the given kind with the given name.
func (w *World) Named(kind Kind, name string) (*Entity, bool) {
	for _, e := range w.Query(kind) {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

func lowestBit(k Kind) Kind {
	return k & -k
}
