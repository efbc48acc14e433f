// Package config reads settings from HOLOGRAMS_* environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/milk9111/holograms/world"
)

type Config struct {
	File          string   `env:"HOLOGRAMS_FILE" envDefault:"holograms.yml"`
	LogLevel      string   `env:"HOLOGRAMS_LOG_LEVEL" envDefault:"INFO"`
	LogFile       string   `env:"HOLOGRAMS_LOG_FILE"`
	LogMaxSize    int      `env:"HOLOGRAMS_LOG_MAX_SIZE" envDefault:"50"` // megabytes
	LogMaxBackups int      `env:"HOLOGRAMS_LOG_MAX_BACKUPS" envDefault:"3"`
	Chunks        []string `env:"HOLOGRAMS_LOADED_CHUNKS" envSeparator:","`
}

// Load parses the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(c.LogLevel)]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return v, nil
}

// LoadedChunks parses Chunks, each written as world:x:z.
func (c Config) LoadedChunks() ([]world.ChunkKey, error) {
	var out []world.ChunkKey
	for _, s := range c.Chunks {
		k, err := ParseChunk(s)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func ParseChunk(s string) (world.ChunkKey, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 || parts[0] == "" {
		return world.ChunkKey{}, fmt.Errorf("invalid chunk %q: want world:x:z", s)
	}
	x, errX := strconv.Atoi(parts[1])
	z, errZ := strconv.Atoi(parts[2])
	if errX != nil || errZ != nil {
		return world.ChunkKey{}, fmt.Errorf("invalid chunk %q: want world:x:z", s)
	}
	return world.ChunkKey{World: parts[0], X: x, Z: z}, nil
}

// NewLogger returns a text logger writing to fallback, or to a rotating
// LogFile when one is set. The closer must be closed on exit.
func (c Config) NewLogger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := c.Level()
	if err != nil {
		return nil, nil, err
	}
	out := fallback
	var closer io.Closer = io.NopCloser(nil)
	if c.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    c.LogMaxSize,
			MaxBackups: c.LogMaxBackups,
		}
		out, closer = lj, lj
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}
