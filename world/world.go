// Package world is the space holograms are spawned into: an ECS world for
// the visuals plus the set of chunks currently loaded.
package world

import (
	"fmt"
	"log/slog"

	"github.com/ErikKalkoken/go-set"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/hologram"
)

const (
	EventChunkLoad   = "chunk_load"
	EventChunkUnload = "chunk_unload"
)

// ChunkKey identifies a chunk column in a named world.
type ChunkKey struct {
	World string
	X     int
	Z     int
}

func (k ChunkKey) String() string {
	return fmt.Sprintf("%s[%d,%d]", k.World, k.X, k.Z)
}

// ChunkOf returns the chunk containing at.
func ChunkOf(at hologram.Location) ChunkKey {
	x, z := at.Chunk()
	return ChunkKey{World: at.World, X: x, Z: z}
}

// World is not safe for concurrent use.
type World struct {
	ecs    *ecs.World
	loaded set.Set[ChunkKey]
}

func New() *World {
	return &World{ecs: ecs.NewWorld()}
}

// ECS returns the entity world lines spawn into.
func (w *World) ECS() *ecs.World {
	return w.ecs
}

// AddSystem registers a system run by Update.
func (w *World) AddSystem(s ecs.System) {
	w.ecs.AddSystem(s)
}

// Update runs one tick of every system.
func (w *World) Update() {
	w.ecs.Update()
}

// LoadChunk marks k loaded and queues a load event. Loading a chunk twice
// queues nothing the second time.
func (w *World) LoadChunk(k ChunkKey) {
	if w.loaded.Contains(k) {
		return
	}
	w.loaded.Add(k)
	slog.Debug("chunk loaded", "chunk", k)
	w.ecs.Events().Push(ecs.Event{Type: EventChunkLoad, Data: k})
}

// UnloadChunk marks k unloaded and queues an unload event.
func (w *World) UnloadChunk(k ChunkKey) {
	if !w.loaded.Contains(k) {
		return
	}
	w.loaded.Delete(k)
	slog.Debug("chunk unloaded", "chunk", k)
	w.ecs.Events().Push(ecs.Event{Type: EventChunkUnload, Data: k})
}

// LoadedChunks returns how many chunks are loaded.
func (w *World) LoadedChunks() int {
	return w.loaded.Size()
}

// IsChunkLoaded reports whether k is loaded.
func (w *World) IsChunkLoaded(k ChunkKey) bool {
	return w.loaded.Contains(k)
}

// IsLoaded reports whether the chunk containing at is loaded. It makes World
// a hologram.RegionChecker.
func (w *World) IsLoaded(at hologram.Location) bool {
	return w.loaded.Contains(ChunkOf(at))
}
