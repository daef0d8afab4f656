package mountfs

import (
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// A WriteStrategy decides how content ends up in a file. The path is already physical, so a strategy works
// directly on the RawFileSystem.
type WriteStrategy interface {
	Write(raw RawFileSystem, path string, content io.Reader) error
}

// DefaultWriteStrategy truncates the file and copies the content into it.
type DefaultWriteStrategy struct{}

func (DefaultWriteStrategy) Write(raw RawFileSystem, path string, content io.Reader) error {
	writer, err := raw.OpenWrite(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(writer, content); err != nil {
		silentClose(writer)
		return err
	}
	return writer.Close()
}

// AtomicWriteStrategy writes into a hidden sibling first and renames it over the target, so readers either see
// the old or the new content but never a partial file.
type AtomicWriteStrategy struct{}

func (AtomicWriteStrategy) Write(raw RawFileSystem, path string, content io.Reader) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := (DefaultWriteStrategy{}).Write(raw, tmp, content); err != nil {
		silentRemove(raw, tmp)
		return err
	}
	if err := raw.Move(tmp, path, true); err != nil {
		silentRemove(raw, tmp)
		return err
	}
	return nil
}
