package line

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/milk9111/holograms/ecs"
	"github.com/milk9111/holograms/ecs/component"
	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/world"
)

var DefaultColor = colornames.White

// Text is a line showing a fixed string.
type Text struct {
	entity
	text  string
	color color.RGBA
}

func NewText(w *world.World, owner, text string) *Text {
	return &Text{
		entity: entity{world: w, owner: owner},
		text:   text,
		color:  DefaultColor,
	}
}

func (l *Text) Text() string {
	return l.text
}

func (l *Text) Color() color.RGBA {
	return l.color
}

// SetColor changes the color used from the next spawn on.
func (l *Text) SetColor(c color.RGBA) {
	l.color = c
}

func (l *Text) Height() float64 {
	return TextHeight
}

func (l *Text) Spawn(at hologram.Location) {
	if err := l.spawn(at, nameplate(l.text, l.color)); err != nil {
		slog.Error("Failed to spawn text line", "error", err)
	}
}

func (l *Text) Despawn() {
	l.despawn()
}

func (l *Text) Location() (hologram.Location, bool) {
	return l.location()
}

func nameplate(text string, c color.RGBA) func(w *ecs.World, e ecs.Entity) error {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, component.NameplateComponent.Kind(), &component.Nameplate{Text: text, Color: c})
	}
}

// ParseColor accepts a color name like "gold" or a "#rrggbb" value. An
// empty name is DefaultColor.
func ParseColor(name string) (color.RGBA, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultColor, nil
	}
	if hex, ok := strings.CutPrefix(name, "#"); ok {
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("line: invalid color %q", name)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("line: invalid color %q: %w", name, err)
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	c, ok := colornames.Map[name]
	if !ok {
		return color.RGBA{}, fmt.Errorf("line: unknown color %q", name)
	}
	return c, nil
}

// FormatColor is the inverse of ParseColor. DefaultColor formats as "".
func FormatColor(c color.RGBA) string {
	if c == DefaultColor {
		return ""
	}
	for _, name := range colornames.Names {
		if colornames.Map[name] == c {
			return name
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
