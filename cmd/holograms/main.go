// Command holograms runs one hologram command against a holograms file and
// saves the file when something changed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/milk9111/holograms/command"
	"github.com/milk9111/holograms/config"
	"github.com/milk9111/holograms/manager"
	"github.com/milk9111/holograms/store"
	"github.com/milk9111/holograms/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	file := flag.String("file", cfg.File, "holograms file")
	level := flag.String("loglevel", cfg.LogLevel, "log level name")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <command> [args...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	cfg.File = *file
	cfg.LogLevel = *level

	logger, closer, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if err := run(cfg, flag.Args()); err != nil {
		slog.Error("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, args []string) error {
	chunks, err := cfg.LoadedChunks()
	if err != nil {
		return err
	}
	w := world.New()
	for _, k := range chunks {
		w.LoadChunk(k)
	}
	m := manager.New(w, store.New(cfg.File))
	w.AddSystem(manager.NewChunkSystem(m))
	if err := m.Load(); errors.Is(err, store.ErrSkipped) {
		slog.Warn("Some holograms could not be loaded", "error", err)
	} else if err != nil {
		return err
	}
	w.Update()

	if err := command.New(m, os.Stdout).Run(args); err != nil {
		return err
	}
	saved, err := m.SaveDirty()
	if err != nil {
		return err
	}
	if saved {
		slog.Info("Saved holograms", "file", cfg.File)
	}
	return nil
}
