package config

import (
	"log/slog"
	"os"
)

// NewLogger returns the JSON logger used by the binaries, at the configured level
func (c *Config) NewLogger() *slog.Logger {
	level, err := c.Log.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
