package ecs

import "github.com/milk9111/holograms/ecs/component"

func (w *World) entity(id entityID) Entity {
	return makeEntity(id, w.entities.gen[id-1])
}

// ForEach calls fn for every entity holding kind. fn may add, remove or
// destroy entities; the iteration works on a snapshot.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, v *T)) {
	if w == nil {
		return
	}
	s := w.store(kind.ID(), false)
	for _, id := range s.ids() {
		v, ok := s.get(id)
		if !ok {
			continue
		}
		if cast, ok := v.(*T); ok {
			fn(w.entity(id), cast)
		}
	}
}

// ForEach2 calls fn for every entity holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	if w == nil {
		return
	}
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	if sa == nil || sb == nil {
		return
	}
	for _, id := range intersect(sa, sb) {
		e := w.entity(id)
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// First returns any entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s.len() == 0 {
		return 0, false
	}
	return w.entity(s.dense[0]), true
}

// Len returns how many entities hold kind.
func Len[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).len()
}

// intersect returns ids present in both sets, iterating the smaller one.
func intersect(a, b *sparseSet) []entityID {
	if a.len() > b.len() {
		a, b = b, a
	}
	out := make([]entityID, 0, a.len())
	for _, id := range a.dense {
		if b.has(id) {
			out = append(out, id)
		}
	}
	return out
}
