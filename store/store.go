// Package store keeps persistent holograms in a YAML file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/line"
	"github.com/milk9111/holograms/world"
)

// ErrSkipped is returned next to the holograms Load could rebuild when some
// could not be.
var ErrSkipped = errors.New("store: holograms skipped")

// Document is the file layout.
type Document struct {
	Holograms map[string]HologramSpec `yaml:"holograms"`
}

type HologramSpec struct {
	Location hologram.Location `yaml:"location"`
	Lines    []line.Spec       `yaml:"lines"`
}

// Store reads and writes one holograms file. Holograms the last Load skipped
// are written back unchanged by Save.
type Store struct {
	path    string
	skipped map[string]HologramSpec
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads every hologram in the file. A missing file holds no holograms.
// Holograms that cannot be rebuilt are skipped and reported through an error
// wrapping ErrSkipped.
func (s *Store) Load(w *world.World) ([]*hologram.Hologram, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	s.skipped = make(map[string]HologramSpec)
	ids := make([]string, 0, len(doc.Holograms))
	for id := range doc.Holograms {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var out []*hologram.Hologram
	var errs []error
	for _, id := range ids {
		h, err := build(w, id, doc.Holograms[id])
		if err != nil {
			slog.Warn("Skipping hologram", "id", id, "error", err)
			s.skipped[id] = doc.Holograms[id]
			errs = append(errs, err)
			continue
		}
		out = append(out, h)
	}
	slog.Info("Loaded holograms", "path", s.path, "count", len(out))
	if len(errs) > 0 {
		return out, fmt.Errorf("%w: %w", ErrSkipped, errors.Join(errs...))
	}
	return out, nil
}

// IsSkipped reports whether the last Load skipped the hologram id.
func (s *Store) IsSkipped(id string) bool {
	_, ok := s.skipped[id]
	return ok
}

func build(w *world.World, id string, spec HologramSpec) (*hologram.Hologram, error) {
	h, err := hologram.New(id, spec.Location, hologram.WithPersistent(true), hologram.WithRegion(w))
	if err != nil {
		return nil, fmt.Errorf("store: hologram %s: %w", id, err)
	}
	for i, ls := range spec.Lines {
		l, err := line.FromSpec(w, id, ls)
		if err != nil {
			h.Despawn()
			return nil, fmt.Errorf("store: hologram %s line %d: %w", id, i+1, err)
		}
		if err := h.AddLine(l); err != nil {
			h.Despawn()
			return nil, fmt.Errorf("store: hologram %s line %d: %w", id, i+1, err)
		}
	}
	h.SetDirty(false)
	return h, nil
}

func (s *Store) read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: unmarshal %s: %w", s.path, err)
	}
	return &doc, nil
}

// Save writes every persistent hologram and marks them clean. Holograms that
// are not persistent are left out of the file and keep their dirty flag.
// Holograms skipped by the last Load are kept as they were read unless a
// hologram with the same id replaces them.
func (s *Store) Save(holograms []*hologram.Hologram) error {
	doc := Document{Holograms: make(map[string]HologramSpec)}
	for id, spec := range s.skipped {
		doc.Holograms[id] = spec
	}
	var saved []*hologram.Hologram
	for _, h := range holograms {
		if !h.IsPersistent() {
			continue
		}
		spec := HologramSpec{Location: h.Anchor()}
		for i, l := range h.Lines() {
			ls, err := line.ToSpec(l)
			if err != nil {
				return fmt.Errorf("store: hologram %s line %d: %w", h.ID(), i+1, err)
			}
			spec.Lines = append(spec.Lines, ls)
		}
		doc.Holograms[h.ID()] = spec
		saved = append(saved, h)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	if err := writeFile(s.path, data); err != nil {
		return err
	}
	for _, h := range saved {
		h.SetDirty(false)
	}
	slog.Debug("Saved holograms", "path", s.path, "count", len(saved), "kept", len(s.skipped))
	return nil
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	return nil
}
