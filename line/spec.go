package line

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/world"
)

// Kinds of line stored in a Spec.
const (
	KindText   = "text"
	KindItem   = "item"
	KindScript = "script"
)

// Spec is the serializable form of a line.
type Spec struct {
	Type     string `yaml:"type"`
	Text     string `yaml:"text,omitempty"`
	Color    string `yaml:"color,omitempty"`
	Material string `yaml:"material,omitempty"`
	Amount   int    `yaml:"amount,omitempty"`
	Script   string `yaml:"script,omitempty"`
}

// FromSpec builds the line described by spec for the hologram owner.
func FromSpec(w *world.World, owner string, spec Spec) (hologram.Line, error) {
	switch spec.Type {
	case KindText, "":
		c, err := ParseColor(spec.Color)
		if err != nil {
			return nil, err
		}
		l := NewText(w, owner, spec.Text)
		l.SetColor(c)
		return l, nil
	case KindItem:
		if spec.Material == "" {
			return nil, fmt.Errorf("line: item without material")
		}
		return NewItem(w, owner, spec.Material, spec.Amount), nil
	case KindScript:
		c, err := ParseColor(spec.Color)
		if err != nil {
			return nil, err
		}
		l, err := NewScript(w, owner, spec.Script)
		if err != nil {
			return nil, err
		}
		l.SetColor(c)
		return l, nil
	}
	return nil, fmt.Errorf("line: unknown type %q", spec.Type)
}

// ToSpec describes l. It fails for line kinds this package does not know.
func ToSpec(l hologram.Line) (Spec, error) {
	switch v := l.(type) {
	case *Text:
		return Spec{Type: KindText, Text: v.text, Color: FormatColor(v.color)}, nil
	case *Item:
		return Spec{Type: KindItem, Material: v.material, Amount: v.amount}, nil
	case *Script:
		return Spec{Type: KindScript, Script: v.source, Color: FormatColor(v.color)}, nil
	}
	return Spec{}, fmt.Errorf("line: cannot describe %T", l)
}

// Parse builds a line from the raw form typed by users:
//
//	item:<material>[:<amount>]
//	script:<source>
//
// Anything else is a text line.
func Parse(w *world.World, owner, raw string) (hologram.Line, error) {
	if rest, ok := strings.CutPrefix(raw, "item:"); ok {
		material, amount, hasAmount := strings.Cut(rest, ":")
		spec := Spec{Type: KindItem, Material: strings.TrimSpace(material), Amount: 1}
		if hasAmount {
			n, err := strconv.Atoi(amount)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("line: invalid item amount %q", amount)
			}
			spec.Amount = n
		}
		return FromSpec(w, owner, spec)
	}
	if rest, ok := strings.CutPrefix(raw, "script:"); ok {
		return FromSpec(w, owner, Spec{Type: KindScript, Script: rest})
	}
	return FromSpec(w, owner, Spec{Type: KindText, Text: raw})
}

// Raw is the inverse of Parse.
func Raw(l hologram.Line) string {
	switch v := l.(type) {
	case *Text:
		return v.text
	case *Item:
		if v.amount == 1 {
			return "item:" + v.material
		}
		return fmt.Sprintf("item:%s:%d", v.material, v.amount)
	case *Script:
		return "script:" + v.source
	}
	return fmt.Sprintf("<%T>", l)
}
