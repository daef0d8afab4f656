package mountfs

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
)

// tries to close and logs silently the failure
func silentClose(closer io.Closer) {
	err := closer.Close()
	if err != nil {
		slog.Warn("failed to close", "error", err)
	}
}

// tries to remove a leftover and logs silently the failure
func silentRemove(raw RawFileSystem, path string) {
	err := raw.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to remove", "path", path, "error", err)
	}
}
