// Package command runs the hologram commands typed by users.
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/holograms/hologram"
	"github.com/milk9111/holograms/line"
	"github.com/milk9111/holograms/manager"
)

var ErrUsage = errors.New("command: usage")

type handler struct {
	usage   string
	minArgs int
	run     func(d *Dispatcher, args []string) error
}

var handlers = map[string]handler{
	"create":     {"create <id> <world> <x> <y> <z> [line...]", 5, (*Dispatcher).create},
	"delete":     {"delete <id>", 1, (*Dispatcher).delete},
	"addline":    {"addline <id> <text>", 2, (*Dispatcher).addLine},
	"insertline": {"insertline <id> <index> <text>", 3, (*Dispatcher).insertLine},
	"setline":    {"setline <id> <index> <text>", 3, (*Dispatcher).setLine},
	"removeline": {"removeline <id> <index>", 2, (*Dispatcher).removeLine},
	"movehere":   {"movehere <id> <world> <x> <y> <z>", 5, (*Dispatcher).moveHere},
	"refresh":    {"refresh <id>", 1, (*Dispatcher).refresh},
	"list":       {"list", 0, (*Dispatcher).list},
	"info":       {"info <id>", 1, (*Dispatcher).info},
}

// Dispatcher runs commands against a manager and writes their output.
// Line indices typed by users start at 1.
type Dispatcher struct {
	manager *manager.Manager
	out     io.Writer
}

func New(m *manager.Manager, out io.Writer) *Dispatcher {
	return &Dispatcher{manager: m, out: out}
}

// Run executes one command. args[0] is the command name.
func (d *Dispatcher) Run(args []string) error {
	if len(args) == 0 || args[0] == "help" {
		d.help()
		return nil
	}
	h, ok := handlers[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	if len(args)-1 < h.minArgs {
		return fmt.Errorf("%w: %s", ErrUsage, h.usage)
	}
	slog.Debug("Running command", "args", args)
	return h.run(d, args[1:])
}

func (d *Dispatcher) help() {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(d.out, "Commands:")
	for _, name := range names {
		fmt.Fprintf(d.out, "  %s\n", handlers[name].usage)
	}
}

func (d *Dispatcher) hologram(id string) (*hologram.Hologram, error) {
	h, ok := d.manager.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", manager.ErrNotFound, id)
	}
	return h, nil
}

func (d *Dispatcher) create(args []string) error {
	at, err := parseLocation(args[1:5])
	if err != nil {
		return err
	}
	h, err := d.manager.Create(args[0], at)
	if err != nil {
		return err
	}
	for _, raw := range args[5:] {
		l, err := line.Parse(d.manager.World(), h.ID(), raw)
		if err != nil {
			_ = d.manager.Remove(h.ID())
			return err
		}
		if err := h.AddLine(l); err != nil {
			_ = d.manager.Remove(h.ID())
			return err
		}
	}
	h.Refresh()
	fmt.Fprintf(d.out, "Created hologram %s at %s\n", h.ID(), at)
	return nil
}

func (d *Dispatcher) delete(args []string) error {
	if err := d.manager.Remove(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Deleted hologram %s\n", args[0])
	return nil
}

func (d *Dispatcher) addLine(args []string) error {
	h, err := d.hologram(args[0])
	if err != nil {
		return err
	}
	l, err := line.Parse(d.manager.World(), h.ID(), strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if err := h.AddLine(l); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Added line %d to %s\n", h.Len(), h.ID())
	return nil
}

func (d *Dispatcher) insertLine(args []string) error {
	h, err := d.hologram(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1], h.Len()+1)
	if err != nil {
		return err
	}
	l, err := line.Parse(d.manager.World(), h.ID(), strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	if err := h.InsertLine(l, index); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Inserted line %d into %s\n", index+1, h.ID())
	return nil
}

// setLine replaces a line by removing it and inserting the new one in its place.
func (d *Dispatcher) setLine(args []string) error {
	h, err := d.hologram(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1], h.Len())
	if err != nil {
		return err
	}
	l, err := line.Parse(d.manager.World(), h.ID(), strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	old, _ := h.Line(index)
	if err := h.RemoveLine(old); err != nil {
		return err
	}
	if err := h.InsertLine(l, index); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Set line %d of %s\n", index+1, h.ID())
	return nil
}

func (d *Dispatcher) removeLine(args []string) error {
	h, err := d.hologram(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1], h.Len())
	if err != nil {
		return err
	}
	l, _ := h.Line(index)
	if err := h.RemoveLine(l); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Removed line %d from %s\n", index+1, h.ID())
	return nil
}

func (d *Dispatcher) moveHere(args []string) error {
	h, err := d.hologram(args[0])
	if err != nil {
		return err
	}
	at, err := parseLocation(args[1:5])
	if err != nil {
		return err
	}
	if err := h.Teleport(at); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Moved %s to %s\n", h.ID(), at)
	return nil
}

func (d *Dispatcher) refresh(args []string) error {
	h, err := d.hologram(args[0])
	if err != nil {
		return err
	}
	h.Refresh()
	fmt.Fprintf(d.out, "Refreshed %s\n", h.ID())
	return nil
}

func (d *Dispatcher) list(_ []string) error {
	all := d.manager.All()
	if len(all) == 0 {
		fmt.Fprintln(d.out, "No holograms")
		return nil
	}
	for _, h := range all {
		fmt.Fprintf(d.out, "%s at %s, %d lines\n", h.ID(), h.Anchor(), h.Len())
	}
	return nil
}

func (d *Dispatcher) info(args []string) error {
	h, err := d.hologram(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "%s at %s (persistent=%t dirty=%t)\n", h.ID(), h.Anchor(), h.IsPersistent(), h.IsDirty())
	for i, l := range h.Lines() {
		fmt.Fprintf(d.out, "%3d: %s\n", i+1, line.Raw(l))
	}
	return nil
}

// parseIndex turns a 1-based index no greater than limit into a 0-based one.
func parseIndex(s string, limit int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > limit {
		return 0, fmt.Errorf("%w: line index must be between 1 and %d, got %q", ErrUsage, limit, s)
	}
	return n - 1, nil
}

func parseLocation(args []string) (hologram.Location, error) {
	var xyz [3]float64
	for i, s := range args[1:4] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return hologram.Location{}, fmt.Errorf("%w: invalid coordinate %q", ErrUsage, s)
		}
		xyz[i] = v
	}
	return hologram.NewLocation(args[0], xyz[0], xyz[1], xyz[2]), nil
}
