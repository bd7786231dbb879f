package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lixenwraith/story-knights/logging"
)

// setupLogging sends log lines to path while tcell owns the terminal.
// An empty path discards them.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		logging.SetOutput(io.Discard)
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logging.SetOutput(f)
	return f, nil
}
