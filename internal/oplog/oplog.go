// Package oplog records file lifecycle operations (resizes, deletions, moves,
// size corrections) to a dedicated log file so storage changes stay auditable.
package oplog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogFileName is the file the operations log is written to inside the log
// directory.
const LogFileName = "file_operations.log"

// FileOperations writes structured file-operation records. A nil
// *FileOperations is valid and discards all records, so callers never need to
// guard their logging calls.
type FileOperations struct {
	logger *slog.Logger
	closer io.Closer
}

// New creates the log directory if needed and opens the operations log for
// appending. Setup is an explicit startup step owned by the caller.
func New(dir string) (*FileOperations, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open operations log: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &FileOperations{logger: slog.New(handler), closer: f}, nil
}

// NewWithLogger wraps an existing logger, used in tests and for custom sinks.
func NewWithLogger(logger *slog.Logger) *FileOperations {
	return &FileOperations{logger: logger}
}

// Close releases the underlying log file.
func (o *FileOperations) Close() error {
	if o == nil || o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

// LogResize records an image dimension change.
func (o *FileOperations) LogResize(name string, oldWidth, oldHeight, newWidth, newHeight int) {
	if o == nil || o.logger == nil {
		return
	}
	o.logger.Info("RESIZE",
		slog.String("file", name),
		slog.String("old_dimensions", fmt.Sprintf("%dx%d", oldWidth, oldHeight)),
		slog.String("new_dimensions", fmt.Sprintf("%dx%d", newWidth, newHeight)),
	)
}

// LogCompression records an image byte-size reduction.
func (o *FileOperations) LogCompression(name string, originalSize, newSize int) {
	if o == nil || o.logger == nil {
		return
	}
	savings := 0.0
	if originalSize > 0 {
		savings = 100 - float64(newSize)/float64(originalSize)*100
	}
	o.logger.Info("COMPRESS",
		slog.String("file", name),
		slog.Int("original_size", originalSize),
		slog.Int("new_size", newSize),
		slog.String("saved", fmt.Sprintf("%.1f%%", savings)),
	)
}

// LogSizeUpdate records a stored-size correction.
func (o *FileOperations) LogSizeUpdate(path string, oldSize, newSize int64) {
	if o == nil || o.logger == nil {
		return
	}
	o.logger.Info("SIZE_UPDATE",
		slog.String("file", path),
		slog.Int64("recorded_size", oldSize),
		slog.Int64("actual_size", newSize),
	)
}

// LogMove records a file move or rename.
func (o *FileOperations) LogMove(oldPath, newPath, reason string) {
	if o == nil || o.logger == nil {
		return
	}
	o.logger.Info("MOVE",
		slog.String("from", oldPath),
		slog.String("to", newPath),
		slog.String("reason", reason),
	)
}

// LogDelete records a file deletion.
func (o *FileOperations) LogDelete(path, reason string) {
	if o == nil || o.logger == nil {
		return
	}
	o.logger.Info("DELETE",
		slog.String("file", path),
		slog.String("reason", reason),
	)
}

// LogError records a failed file operation.
func (o *FileOperations) LogError(operation, path string, err error) {
	if o == nil || o.logger == nil {
		return
	}
	o.logger.Error("ERROR",
		slog.String("operation", operation),
		slog.String("file", path),
		slog.Any("error", err),
	)
}
