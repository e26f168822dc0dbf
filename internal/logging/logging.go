// Package logging configures the process logger. The TUI owns the
// terminal, so records go to a file or nowhere.
package logging

import (
	"log/slog"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// logPrefix tags lines written through the standard log package.
const logPrefix = "chsearch"

// Setup returns a logger writing to path at the given level and installs
// it as the slog default. An empty path yields a discarding logger. The
// returned close function is never nil.
//
// Files ending in .json or .jsonl get one JSON record per line; anything
// else gets logfmt-style text.
func Setup(path string, level slog.Level) (*slog.Logger, func() error, error) {
	if path == "" {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}

	file, err := tea.LogToFile(path, logPrefix)
	if err != nil {
		return nil, func() error { return nil }, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl":
		handler = slog.NewJSONHandler(file, opts)
	default:
		handler = slog.NewTextHandler(file, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, file.Close, nil
}
