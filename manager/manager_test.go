package manager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/line"
	"github.com/milk9111/holograms/manager"
	"github.com/milk9111/holograms/store"
	"github.com/milk9111/holograms/world"
)

func newManager(t *testing.T) (*manager.Manager, *store.Store) {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "holograms.yml"))
	w := world.New()
	m := manager.New(w, s)
	w.AddSystem(manager.NewChunkSystem(m))
	return m, s
}

func addText(t *testing.T, m *manager.Manager, h *hologram.Hologram, text string) {
	t.Helper()
	require.NoError(t, h.AddLine(line.NewText(m.World(), h.ID(), text)))
}

func TestCreate(t *testing.T) {
	m, _ := newManager(t)
	h, err := m.Create("spawn", hologram.NewLocation("overworld", 0, 64, 0))
	require.NoError(t, err)
	assert.True(t, h.IsPersistent())
	assert.True(t, h.IsDirty())

	got, ok := m.Get("spawn")
	assert.True(t, ok)
	assert.Same(t, h, got)

	_, err = m.Create("spawn", hologram.NewLocation("overworld", 0, 64, 0))
	assert.ErrorIs(t, err, manager.ErrExists)
	_, err = m.Create("", hologram.NewLocation("overworld", 0, 64, 0))
	assert.ErrorIs(t, err, hologram.ErrInvalidArgument)
}

func TestAllIsSorted(t *testing.T) {
	m, _ := newManager(t)
	for _, id := range []string{"c", "a", "b"} {
		_, err := m.Create(id, hologram.NewLocation("overworld", 0, 64, 0))
		require.NoError(t, err)
	}
	var ids []string
	for _, h := range m.All() {
		ids = append(ids, h.ID())
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRemove(t *testing.T) {
	m, _ := newManager(t)
	h, err := m.Create("spawn", hologram.NewLocation("overworld", 0, 64, 0))
	require.NoError(t, err)
	addText(t, m, h, "Hi")
	require.Equal(t, 1, ecs.Count(m.World().ECS()))

	require.NoError(t, m.Remove("spawn"))

	assert.Equal(t, 0, ecs.Count(m.World().ECS()))
	_, ok := m.Get("spawn")
	assert.False(t, ok)
	assert.ErrorIs(t, m.Remove("spawn"), manager.ErrNotFound)
}

func TestChunkSystem(t *testing.T) {
	m, _ := newManager(t)
	w := m.World()
	here := hologram.NewLocation("overworld", 4, 64, 4)
	there := hologram.NewLocation("overworld", 100, 64, 100)
	a, err := m.Create("a", here)
	require.NoError(t, err)
	b, err := m.Create("b", there)
	require.NoError(t, err)
	addText(t, m, a, "A")
	addText(t, m, b, "B")
	a.Despawn()
	b.Despawn()
	require.Equal(t, 0, ecs.Count(w.ECS()))

	w.LoadChunk(world.ChunkOf(here))
	w.Update()
	assert.Equal(t, 1, ecs.Count(w.ECS()), "only the hologram in the loaded chunk spawns")

	w.UnloadChunk(world.ChunkOf(here))
	w.Update()
	assert.Equal(t, 0, ecs.Count(w.ECS()))
}

func TestLoadAllChunksAfterReload(t *testing.T) {
	m, s := newManager(t)
	w := m.World()
	h, err := m.Create("a", hologram.NewLocation("overworld", 4, 64, 4))
	require.NoError(t, err)
	addText(t, m, h, "A")
	require.NoError(t, m.Save())

	require.NoError(t, m.Reload())
	m.LoadAllChunks()
	w.Update()
	require.Equal(t, 1, ecs.Count(w.ECS()))

	far, err := hologram.New("far", hologram.NewLocation("overworld", 500, 64, -500), hologram.WithPersistent(true))
	require.NoError(t, err)
	require.NoError(t, far.AddLine(line.NewText(w, "far", "B")))
	require.NoError(t, s.Save(append(m.All(), far)))
	far.Despawn()

	require.NoError(t, m.Reload())
	assert.Equal(t, 1, ecs.Count(w.ECS()), "the new hologram's chunk is not loaded yet")
	m.LoadAllChunks()
	w.Update()
	assert.Equal(t, 2, ecs.Count(w.ECS()))
	assert.True(t, w.IsChunkLoaded(world.ChunkOf(far.Anchor())))
}

func TestSaveDirty(t *testing.T) {
	m, _ := newManager(t)

	saved, err := m.SaveDirty()
	require.NoError(t, err)
	assert.False(t, saved)

	h, err := m.Create("spawn", hologram.NewLocation("overworld", 0, 64, 0))
	require.NoError(t, err)
	saved, err = m.SaveDirty()
	require.NoError(t, err)
	assert.True(t, saved)
	assert.False(t, h.IsDirty())

	saved, err = m.SaveDirty()
	require.NoError(t, err)
	assert.False(t, saved)

	require.NoError(t, m.Remove("spawn"))
	saved, err = m.SaveDirty()
	require.NoError(t, err)
	assert.True(t, saved, "deleting a persistent hologram needs a save")
}

func TestNonPersistentNeverSaved(t *testing.T) {
	m, _ := newManager(t)
	h, err := m.Create("temp", hologram.NewLocation("overworld", 0, 64, 0))
	require.NoError(t, err)
	h.SetPersistent(false)

	saved, err := m.SaveDirty()
	require.NoError(t, err)
	assert.False(t, saved)
	assert.True(t, h.IsDirty())
}

func TestLoadAndReload(t *testing.T) {
	m, s := newManager(t)
	anchor := hologram.NewLocation("overworld", 0, 64, 0)
	h, err := m.Create("spawn", anchor)
	require.NoError(t, err)
	addText(t, m, h, "One")
	addText(t, m, h, "Two")
	require.NoError(t, m.Save())

	w := world.New()
	other := manager.New(w, s)
	require.NoError(t, other.Load())
	loaded, ok := other.Get("spawn")
	require.True(t, ok)
	assert.Equal(t, 2, loaded.Len())
	assert.False(t, loaded.IsDirty())
	assert.Equal(t, 0, ecs.Count(w.ECS()), "chunk not loaded, nothing spawned")

	w.LoadChunk(world.ChunkOf(anchor))
	require.NoError(t, other.Reload())
	assert.Equal(t, 2, ecs.Count(w.ECS()))
	assert.Len(t, other.All(), 1)
}

func TestSaveKeepsSkippedHolograms(t *testing.T) {
	m, s := newManager(t)
	data := `holograms:
  good:
    location: {world: overworld, x: 0, y: 64, z: 0}
    lines:
      - type: text
        text: Hello
  bad:
    location: {world: overworld, x: 32, y: 64, z: 0}
    lines:
      - type: script
        script: "text := "
`
	require.NoError(t, os.WriteFile(s.Path(), []byte(data), 0o644))

	require.ErrorIs(t, m.Load(), store.ErrSkipped)
	_, ok := m.Get("bad")
	assert.False(t, ok)
	_, err := m.Create("bad", hologram.NewLocation("overworld", 0, 64, 0))
	assert.ErrorIs(t, err, manager.ErrExists)
	_, err = m.Create("new", hologram.NewLocation("overworld", 16, 64, 0))
	require.NoError(t, err)

	saved, err := m.SaveDirty()
	require.NoError(t, err)
	assert.True(t, saved)

	loaded, err := store.New(s.Path()).Load(world.New())
	assert.ErrorIs(t, err, store.ErrSkipped)
	var ids []string
	for _, h := range loaded {
		ids = append(ids, h.ID())
	}
	assert.Equal(t, []string{"good", "new"}, ids)
	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "bad:")
	assert.Contains(t, string(raw), "text := ")
}
