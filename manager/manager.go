// Package manager keeps the holograms of a world by id and ties them to the
// store and to chunk loading.
package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/store"
	"github.com/milk9111/holograms/world"
)

var (
	ErrExists   = errors.New("manager: hologram already exists")
	ErrNotFound = errors.New("manager: hologram not found")
)

// Manager is not safe for concurrent use.
type Manager struct {
	world     *world.World
	store     *store.Store
	holograms map[string]*hologram.Hologram
	deleted   bool
}

func New(w *world.World, s *store.Store) *Manager {
	return &Manager{
		world:     w,
		store:     s,
		holograms: make(map[string]*hologram.Hologram),
	}
}

func (m *Manager) World() *world.World {
	return m.world
}

// Create registers a new, empty, persistent hologram.
func (m *Manager) Create(id string, anchor hologram.Location) (*hologram.Hologram, error) {
	if m.exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrExists, id)
	}
	h, err := hologram.New(id, anchor, hologram.WithPersistent(true), hologram.WithRegion(m.world))
	if err != nil {
		return nil, err
	}
	h.SetDirty(true)
	m.holograms[id] = h
	slog.Info("Created hologram", "id", id, "location", anchor)
	return h, nil
}

// Add registers h under its id.
func (m *Manager) Add(h *hologram.Hologram) error {
	if m.exists(h.ID()) {
		return fmt.Errorf("%w: %s", ErrExists, h.ID())
	}
	m.holograms[h.ID()] = h
	return nil
}

// exists also counts ids the store skipped, which stay in the file.
func (m *Manager) exists(id string) bool {
	_, ok := m.holograms[id]
	return ok || m.store.IsSkipped(id)
}

func (m *Manager) Get(id string) (*hologram.Hologram, bool) {
	h, ok := m.holograms[id]
	return h, ok
}

// Remove despawns the hologram and forgets it.
func (m *Manager) Remove(id string) error {
	h, ok := m.holograms[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	h.Despawn()
	delete(m.holograms, id)
	if h.IsPersistent() {
		m.deleted = true
	}
	slog.Info("Deleted hologram", "id", id)
	return nil
}

// All returns every hologram ordered by id.
func (m *Manager) All() []*hologram.Hologram {
	out := make([]*hologram.Hologram, 0, len(m.holograms))
	for _, id := range slices.Sorted(maps.Keys(m.holograms)) {
		out = append(out, m.holograms[id])
	}
	return out
}

// InChunk returns the holograms anchored in chunk k, ordered by id.
func (m *Manager) InChunk(k world.ChunkKey) []*hologram.Hologram {
	var out []*hologram.Hologram
	for _, h := range m.All() {
		if world.ChunkOf(h.Anchor()) == k {
			out = append(out, h)
		}
	}
	return out
}

// LoadAllChunks loads the chunk of every hologram's anchor. The holograms
// spawn on the next world update.
func (m *Manager) LoadAllChunks() {
	for _, h := range m.holograms {
		m.world.LoadChunk(world.ChunkOf(h.Anchor()))
	}
}

// Load adds every hologram from the store and refreshes it. When the store
// skipped some holograms the rest are still loaded and the error wraps
// store.ErrSkipped.
func (m *Manager) Load() error {
	loaded, loadErr := m.store.Load(m.world)
	if loadErr != nil && !errors.Is(loadErr, store.ErrSkipped) {
		return loadErr
	}
	var errs []error
	for _, h := range loaded {
		if err := m.Add(h); err != nil {
			h.Despawn()
			errs = append(errs, err)
			continue
		}
		h.Refresh()
	}
	return errors.Join(append(errs, loadErr)...)
}

// Reload forgets every hologram and loads the store again.
func (m *Manager) Reload() error {
	for _, h := range m.holograms {
		h.Despawn()
	}
	clear(m.holograms)
	m.deleted = false
	return m.Load()
}

// Save writes every persistent hologram.
func (m *Manager) Save() error {
	if err := m.store.Save(m.All()); err != nil {
		return err
	}
	m.deleted = false
	return nil
}

// SaveDirty saves only when a persistent hologram changed or was deleted.
// It reports whether it wrote the store.
func (m *Manager) SaveDirty() (bool, error) {
	if !m.deleted && !slices.ContainsFunc(m.All(), func(h *hologram.Hologram) bool {
		return h.IsPersistent() && h.IsDirty()
	}) {
		return false, nil
	}
	if err := m.Save(); err != nil {
		return false, err
	}
	return true, nil
}
