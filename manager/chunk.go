package manager

import (
	"log/slog"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/world"
)

// ChunkSystem respawns holograms when their chunk loads and despawns them
// when it unloads. It drains the world's event queue.
type ChunkSystem struct {
	manager *Manager
}

func NewChunkSystem(m *Manager) *ChunkSystem {
	return &ChunkSystem{manager: m}
}

func (s *ChunkSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, evt := range w.Events().Drain() {
		k, ok := evt.Data.(world.ChunkKey)
		if !ok {
			continue
		}
		switch evt.Type {
		case world.EventChunkLoad:
			for _, h := range s.manager.InChunk(k) {
				slog.Debug("Refreshing hologram", "id", h.ID(), "chunk", k)
				h.Refresh()
			}
		case world.EventChunkUnload:
			for _, h := range s.manager.InChunk(k) {
				slog.Debug("Despawning hologram", "id", h.ID(), "chunk", k)
				h.Despawn()
			}
		}
	}
}
