package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/holograms/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			assert.Equal(t, c.create, Count(w))
			for _, e := range ents {
				assert.True(t, e.Valid())
				assert.True(t, IsAlive(w, e))
			}
			if c.destroyIndex >= 0 {
				assert.True(t, DestroyEntity(w, ents[c.destroyIndex]))
				assert.False(t, IsAlive(w, ents[c.destroyIndex]))
				assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "second destroy")
				assert.Equal(t, c.create-1, Count(w))
			}
		})
	}
}

func TestReusedIDHasNewGeneration(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	require.True(t, DestroyEntity(w, e1))
	e2 := CreateEntity(w)
	assert.Equal(t, e1.id(), e2.id())
	assert.NotEqual(t, e1, e2)
	assert.False(t, IsAlive(w, e1))
	assert.True(t, IsAlive(w, e2))
}

func TestZeroEntityIsInvalid(t *testing.T) {
	w := NewWorld()
	var e Entity
	assert.False(t, e.Valid())
	assert.False(t, IsAlive(w, e))
	assert.False(t, DestroyEntity(w, e))
}

func TestComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				require.True(t, ok)
				assert.Equal(t, 10, *v)
				assert.False(t, Has(w, e2, h1.Kind()))
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				assert.True(t, Has(w, e1, h2.Kind()))
				assert.True(t, Has(w, e2, h2.Kind()))
				assert.Equal(t, 2, Len(w, h2.Kind()))
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.setup())
			tc.check(t)
			assert.True(t, tc.teardown())
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)

	assert.ErrorIs(t, Add(w, e, h.Kind(), nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, e, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind)
	DestroyEntity(w, e)
	assert.ErrorIs(t, Add(w, e, h.Kind(), intPtr(1)), component.ErrEntityNotAlive)
}

func TestDestroyDropsComponents(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)
	require.NoError(t, Add(w, e, h.Kind(), intPtr(1)))

	DestroyEntity(w, e)
	reused := CreateEntity(w)

	assert.False(t, Has(w, reused, h.Kind()))
	assert.Equal(t, 0, Len(w, h.Kind()))
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		require.NoError(t, Add(w, e1, h.Kind(), intPtr(1)))
		require.NoError(t, Add(w, e3, h.Kind(), intPtr(3)))

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		assert.Contains(t, set, e1)
		assert.Contains(t, set, e3)
		assert.NotContains(t, set, e2)
	})
	t.Run("destroy while iterating", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		for i := 0; i < 4; i++ {
			require.NoError(t, Add(w, CreateEntity(w), h.Kind(), intPtr(i)))
		}

		visited := 0
		ForEach(w, h.Kind(), func(e Entity, _ *int) {
			visited++
			DestroyEntity(w, e)
		})

		assert.Equal(t, 4, visited)
		assert.Equal(t, 0, Count(w))
	})
}

func TestForEach2(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	require.NoError(t, Add(w, e1, ka, intPtr(1)))
	require.NoError(t, Add(w, e2, ka, intPtr(2)))
	require.NoError(t, Add(w, e2, kb, stringPtr("b")))
	require.NoError(t, Add(w, e3, kb, stringPtr("c")))

	var res []Entity
	ForEach2(w, ka, kb, func(e Entity, a *int, b *string) {
		assert.Equal(t, 2, *a)
		assert.Equal(t, "b", *b)
		res = append(res, e)
	})
	assert.Equal(t, []Entity{e2}, res)

	t.Run("missing_store", func(t *testing.T) {
		kc := component.NewComponentKind[int]()
		called := false
		ForEach2(w, ka, kc, func(Entity, *int, *int) { called = true })
		assert.False(t, called)
	})
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	_, ok := First(w, h.Kind())
	assert.False(t, ok)

	e := CreateEntity(w)
	require.NoError(t, Add(w, e, h.Kind(), intPtr(1)))
	got, ok := First(w, h.Kind())
	assert.True(t, ok)
	assert.Equal(t, e, got)
}

type countingSystem struct {
	updates int
	seen    []Event
}

func (s *countingSystem) Update(w *World) {
	s.updates++
	s.seen = append(s.seen, w.Events().Drain()...)
}

func TestUpdate(t *testing.T) {
	w := NewWorld()
	s := &countingSystem{}
	w.AddSystem(s)
	w.AddSystem(nil)

	w.Events().Push(Event{Type: "ping"})
	w.Update()
	w.Update()

	assert.Equal(t, 2, s.updates)
	assert.Equal(t, []Event{{Type: "ping"}}, s.seen)
	assert.Equal(t, 0, w.Events().Len())
}
