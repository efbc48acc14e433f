package line

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/world"
)

// ScriptTimeout bounds a single evaluation of a script line.
const ScriptTimeout = 100 * time.Millisecond

// ScriptErrorText is shown when a script fails to produce its text.
const ScriptErrorText = "[script error]"

// Script is a text line whose text comes from a tengo script, evaluated
// every time the line spawns. The script must assign the variable text.
// The globals hologram (owner id) and now (unix seconds) are available.
type Script struct {
	entity
	source   string
	color    color.RGBA
	compiled *tengo.Compiled
	last     string
}

// NewScript compiles source and fails when it does not compile.
func NewScript(w *world.World, owner, source string) (*Script, error) {
	script := tengo.NewScript([]byte(source))
	_ = script.Add("hologram", "")
	_ = script.Add("now", int64(0))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("line: compile script: %w", err)
	}
	return &Script{
		entity:   entity{world: w, owner: owner},
		source:   source,
		color:    DefaultColor,
		compiled: compiled,
	}, nil
}

func (l *Script) Source() string {
	return l.source
}

func (l *Script) Color() color.RGBA {
	return l.color
}

func (l *Script) SetColor(c color.RGBA) {
	l.color = c
}

// Text returns what the script produced on the last spawn.
func (l *Script) Text() string {
	return l.last
}

func (l *Script) Height() float64 {
	return TextHeight
}

// Eval runs the script once and returns its text.
func (l *Script) Eval(ctx context.Context) (string, error) {
	c := l.compiled.Clone()
	if err := c.Set("hologram", l.owner); err != nil {
		return "", err
	}
	if err := c.Set("now", time.Now().Unix()); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, ScriptTimeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return "", fmt.Errorf("line: run script: %w", err)
	}
	if !c.IsDefined("text") {
		return "", errors.New("line: script does not assign text")
	}
	return c.Get("text").String(), nil
}

func (l *Script) Spawn(at hologram.Location) {
	text, err := l.Eval(context.Background())
	if err != nil {
		slog.Warn("Script line failed", "hologram", l.owner, "error", err)
		text = ScriptErrorText
	}
	l.last = text
	if err := l.spawn(at, nameplate(text, l.color)); err != nil {
		slog.Error("Failed to spawn script line", "error", err)
	}
}

func (l *Script) Despawn() {
	l.despawn()
}

func (l *Script) Location() (hologram.Location, bool) {
	return l.location()
}
