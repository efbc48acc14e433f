package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/world"
)

func TestChunkOf(t *testing.T) {
	k := world.ChunkOf(hologram.NewLocation("overworld", -1, 64, 31))
	assert.Equal(t, world.ChunkKey{World: "overworld", X: -1, Z: 1}, k)
	assert.Equal(t, "overworld[-1,1]", k.String())
}

func TestLoadChunk(t *testing.T) {
	w := world.New()
	k := world.ChunkKey{World: "overworld"}
	at := hologram.NewLocation("overworld", 3, 70, 3)

	assert.False(t, w.IsLoaded(at))

	w.LoadChunk(k)
	w.LoadChunk(k)

	assert.True(t, w.IsLoaded(at))
	assert.True(t, w.IsChunkLoaded(k))
	assert.False(t, w.IsLoaded(hologram.NewLocation("nether", 3, 70, 3)))
	assert.Equal(t, 1, w.LoadedChunks())
	assert.Equal(t, []ecs.Event{{Type: world.EventChunkLoad, Data: k}}, w.ECS().Events().Drain())

	w.UnloadChunk(k)
	w.UnloadChunk(k)

	assert.False(t, w.IsLoaded(at))
	assert.Equal(t, 0, w.LoadedChunks())
	assert.Equal(t, []ecs.Event{{Type: world.EventChunkUnload, Data: k}}, w.ECS().Events().Drain())
}

func TestWorldIsRegionChecker(t *testing.T) {
	var _ hologram.RegionChecker = world.New()
}
