// Package hologram keeps a vertical stack of lines anchored to a location
// and derives the world position of every line in it.
package hologram

import "fmt"

// LineGap is the extra spacing a full respawn puts between two lines.
// Reorganizing after an insert, removal or teleport does not apply it.
const LineGap = 0.02

// Hologram is an ordered stack of lines below an anchor. The first line sits
// at the anchor and every following line sits below the one before it.
//
// A Hologram is not safe for concurrent use.
type Hologram struct {
	id         string
	anchor     Location
	persistent bool
	dirty      bool
	lines      []Line
	region     RegionChecker
}

// Option configures a Hologram at construction.
type Option func(h *Hologram)

// WithPersistent sets the initial persistence flag.
func WithPersistent(persistent bool) Option {
	return func(h *Hologram) {
		h.persistent = persistent
	}
}

// WithRegion sets the checker Refresh consults before respawning.
func WithRegion(region RegionChecker) Option {
	return func(h *Hologram) {
		if region != nil {
			h.region = region
		}
	}
}

// New returns an empty, clean hologram.
func New(id string, anchor Location, opts ...Option) (*Hologram, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: hologram id cannot be empty", ErrInvalidArgument)
	}
	if !anchor.Valid() {
		return nil, fmt.Errorf("%w: hologram location cannot be empty", ErrInvalidArgument)
	}
	h := &Hologram{
		id:     id,
		anchor: anchor,
		region: alwaysLoaded,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// ID returns the identifier the hologram was created with.
func (h *Hologram) ID() string {
	return h.id
}

// Anchor returns a copy of the anchor location.
func (h *Hologram) Anchor() Location {
	return h.anchor
}

// IsPersistent reports whether a store keeps this hologram.
func (h *Hologram) IsPersistent() bool {
	return h.persistent
}

// SetPersistent changes whether a store keeps this hologram. It always marks
// the hologram dirty.
func (h *Hologram) SetPersistent(persistent bool) {
	h.persistent = persistent
	h.SetDirty(true)
}

// IsDirty reports whether the hologram changed since it was last saved.
// Stores never save holograms that are not persistent, so those stay dirty
// until someone clears the flag.
func (h *Hologram) IsDirty() bool {
	return h.dirty
}

// SetDirty sets the unsaved-changes flag without touching any line.
func (h *Hologram) SetDirty(dirty bool) {
	h.dirty = dirty
}

// Len returns the number of lines.
func (h *Hologram) Len() int {
	return len(h.lines)
}

// Lines returns the lines from top to bottom. The slice is a copy; use
// AddLine, InsertLine and RemoveLine to change the stack.
func (h *Hologram) Lines() []Line {
	out := make([]Line, len(h.lines))
	copy(out, h.lines)
	return out
}

// Line returns the line at index, or false when index is out of range.
func (h *Hologram) Line(index int) (Line, bool) {
	if index < 0 || index >= len(h.lines) {
		return nil, false
	}
	return h.lines[index], true
}

// AddLine appends line to the bottom of the stack.
func (h *Hologram) AddLine(line Line) error {
	return h.InsertLine(line, len(h.lines))
}

// InsertLine puts line at index and repositions it and every line below it.
func (h *Hologram) InsertLine(line Line, index int) error {
	if line == nil {
		return fmt.Errorf("%w: line cannot be nil", ErrInvalidArgument)
	}
	if index < 0 || index > len(h.lines) {
		return fmt.Errorf("%w: insert at %d with %d lines", ErrIndexOutOfRange, index, len(h.lines))
	}
	h.lines = append(h.lines, nil)
	copy(h.lines[index+1:], h.lines[index:])
	h.lines[index] = line
	h.reorganize(index)
	h.SetDirty(true)
	return nil
}

// RemoveLine takes line out of the stack, moves the lines below it up and
// despawns it.
func (h *Hologram) RemoveLine(line Line) error {
	index := h.indexOf(line)
	if index < 0 {
		return ErrLineNotFound
	}
	h.lines = append(h.lines[:index], h.lines[index+1:]...)
	h.reorganize(index)
	line.Despawn()
	h.SetDirty(true)
	return nil
}

func (h *Hologram) indexOf(line Line) int {
	if line == nil {
		return -1
	}
	for i, l := range h.lines {
		if l == line {
			return i
		}
	}
	return -1
}

// Refresh despawns every line and, when the anchor's region is loaded,
// spawns them all again from the anchor down.
func (h *Hologram) Refresh() {
	h.Despawn()
	if h.region.IsLoaded(h.anchor) {
		h.spawnEntities()
	}
}

// Despawn removes every line's visual. The lines stay in the hologram.
func (h *Hologram) Despawn() {
	for _, line := range h.lines {
		line.Despawn()
	}
}

// Teleport moves the anchor and repositions every line below it. Moving to
// the current anchor does nothing.
func (h *Hologram) Teleport(anchor Location) error {
	if !anchor.Valid() {
		return fmt.Errorf("%w: hologram location cannot be empty", ErrInvalidArgument)
	}
	if h.anchor.Equal(anchor) {
		return nil
	}
	h.anchor = anchor
	h.reorganize(0)
	h.SetDirty(true)
	return nil
}

// reorganize respawns the lines from index down. The line at index goes to
// where the line above it is spawned, or to the anchor for the first line.
// Every later line goes below its predecessor by its own height, without
// LineGap. Lines above index are left alone.
func (h *Hologram) reorganize(index int) {
	first, ok := h.Line(index)
	if !ok {
		return
	}

	at := h.anchor
	if prev, ok := h.Line(index - 1); ok {
		if loc, spawned := prev.Location(); spawned {
			at = loc
		} else {
			at = h.anchor.WithY(h.stackY(index - 1))
		}
	}

	first.Spawn(at)
	y := at.Y
	for i := index + 1; i < len(h.lines); i++ {
		y -= h.lines[i].Height()
		h.lines[i].Spawn(at.WithY(y))
	}
}

// spawnEntities respawns every line at the position a full layout gives it.
func (h *Hologram) spawnEntities() {
	h.Despawn()

	y := h.anchor.Y
	for i, line := range h.lines {
		if i > 0 {
			y -= h.lines[i-1].Height() + LineGap
		}
		line.Spawn(h.anchor.WithY(y))
	}
}

// stackY is the height spawnEntities gives the line at index.
func (h *Hologram) stackY(index int) float64 {
	y := h.anchor.Y
	for i := 1; i <= index && i < len(h.lines); i++ {
		y -= h.lines[i-1].Height() + LineGap
	}
	return y
}
