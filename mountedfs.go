package mountfs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
)

var _ FileSystem = (*MountedFileSystem)(nil)

// A MountedFileSystem translates every logical path through its Sandbox and delegates to a RawFileSystem.
// Without a mount point it is a plain pass-through file system.
type MountedFileSystem struct {
	sandbox *Sandbox
	raw     RawFileSystem
}

// New creates a MountedFileSystem. See Config for the defaults.
func New(config Config) (*MountedFileSystem, error) {
	sandbox, err := NewSandbox(config)
	if err != nil {
		return nil, err
	}
	return &MountedFileSystem{
		sandbox: sandbox,
		raw:     sandbox.raw,
	}, nil
}

// Sandbox returns the path translator of this file system.
func (m *MountedFileSystem) Sandbox() *Sandbox {
	return m.sandbox
}

// Read details: see FileSystem#Read
func (m *MountedFileSystem) Read(path string) (io.ReadCloser, error) {
	physical, err := m.sandbox.Translate(path)
	if err != nil {
		return nil, err
	}
	return m.raw.OpenRead(physical)
}

// ReadShared details: see FileSystem#ReadShared. Unix does not lock files on open, so this equals Read.
func (m *MountedFileSystem) ReadShared(path string) (io.ReadCloser, error) {
	return m.Read(path)
}

// ReadAllText details: see FileSystem#ReadAllText
func (m *MountedFileSystem) ReadAllText(path string) (string, error) {
	reader, err := m.Read(path)
	if err != nil {
		return "", err
	}
	defer silentClose(reader)

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write details: see FileSystem#Write
func (m *MountedFileSystem) Write(path string) (io.WriteCloser, error) {
	physical, err := m.sandbox.Translate(path)
	if err != nil {
		return nil, err
	}
	return m.raw.OpenWrite(physical)
}

// WriteAllLines details: see FileSystem#WriteAllLines
func (m *MountedFileSystem) WriteAllLines(path string, lines []string) error {
	writer, err := m.Write(path)
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(writer)
	for _, line := range lines {
		if _, err := buf.WriteString(line); err != nil {
			silentClose(writer)
			return err
		}
		if err := buf.WriteByte('\n'); err != nil {
			silentClose(writer)
			return err
		}
	}
	if err := buf.Flush(); err != nil {
		silentClose(writer)
		return err
	}
	return writer.Close()
}

// WriteWith details: see FileSystem#WriteWith
func (m *MountedFileSystem) WriteWith(path string, content io.Reader, strategy WriteStrategy) error {
	physical, err := m.sandbox.Translate(path)
	if err != nil {
		return err
	}
	if strategy == nil {
		strategy = DefaultWriteStrategy{}
	}
	return strategy.Write(m.raw, physical, content)
}

// WriteFrom details: see FileSystem#WriteFrom
func (m *MountedFileSystem) WriteFrom(ctx context.Context, content io.Reader, path string) error {
	writer, err := m.Write(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(writer, &contextReader{ctx: ctx, r: content}); err != nil {
		silentClose(writer)
		return err
	}
	return writer.Close()
}

// Exists details: see FileSystem#Exists
func (m *MountedFileSystem) Exists(path string) (bool, error) {
	physical, err := m.sandbox.Translate(path)
	if err != nil {
		return false, err
	}
	return m.raw.Exists(physical)
}

// Move details: see FileSystem#Move
func (m *MountedFileSystem) Move(path string, dest string, overwrite bool) error {
	physical, physicalDest, err := m.translatePair(path, dest)
	if err != nil {
		return err
	}
	return m.raw.Move(physical, physicalDest, overwrite)
}

// Copy details: see FileSystem#Copy
func (m *MountedFileSystem) Copy(path string, dest string, overwrite bool) error {
	physical, physicalDest, err := m.translatePair(path, dest)
	if err != nil {
		return err
	}
	return m.raw.Copy(physical, physicalDest, overwrite)
}

func (m *MountedFileSystem) translatePair(path string, dest string) (string, string, error) {
	physical, err := m.sandbox.Translate(path)
	if err != nil {
		return "", "", err
	}
	physicalDest, err := m.sandbox.Translate(dest)
	if err != nil {
		return "", "", err
	}
	return physical, physicalDest, nil
}

// Delete details: see FileSystem#Delete
func (m *MountedFileSystem) Delete(path string) error {
	physical, err := m.sandbox.Translate(path)
	if err != nil {
		return err
	}
	err = m.raw.Remove(physical)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List details: see FileSystem#List
func (m *MountedFileSystem) List(dir string) ([]string, error) {
	return m.listPathContents(dir, m.raw.List)
}

// ListPattern details: see FileSystem#ListPattern
func (m *MountedFileSystem) ListPattern(dir string, pattern string) ([]string, error) {
	return m.listPathContents(dir, func(physical string) ([]string, error) {
		return m.raw.ListMatch(physical, pattern)
	})
}

// ListDirectories details: see FileSystem#ListDirectories
func (m *MountedFileSystem) ListDirectories(dir string) ([]string, error) {
	return m.listPathContents(dir, m.raw.ListDirs)
}

func (m *MountedFileSystem) listPathContents(dir string, list func(physical string) ([]string, error)) ([]string, error) {
	physical, err := m.sandbox.Translate(dir)
	if err != nil {
		return nil, err
	}
	entries, err := list(physical)
	if err != nil {
		return nil, err
	}
	return m.sandbox.RestoreListing(dir, entries)
}

// CreateDirectory details: see FileSystem#CreateDirectory
func (m *MountedFileSystem) CreateDirectory(dir string) error {
	physical, err := m.sandbox.Translate(dir)
	if err != nil {
		return err
	}
	return m.raw.MkdirAll(physical)
}

// DirectoryExists details: see FileSystem#DirectoryExists
func (m *MountedFileSystem) DirectoryExists(dir string) (bool, error) {
	physical, err := m.sandbox.Translate(dir)
	if err != nil {
		return false, err
	}
	return m.raw.DirExists(physical)
}

// EnsureDirectoryExists details: see FileSystem#EnsureDirectoryExists
func (m *MountedFileSystem) EnsureDirectoryExists(dir string) error {
	exists, err := m.DirectoryExists(dir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.CreateDirectory(dir)
}

// DeleteDirectory details: see FileSystem#DeleteDirectory
func (m *MountedFileSystem) DeleteDirectory(dir string, recursive bool) error {
	physical, err := m.sandbox.Translate(dir)
	if err != nil {
		return err
	}
	if recursive {
		return m.raw.RemoveAll(physical)
	}
	return m.raw.Remove(physical)
}

// FileInfo details: see FileSystem#FileInfo
func (m *MountedFileSystem) FileInfo(path string) (*FileInfo, error) {
	physical, err := m.sandbox.Translate(path)
	if err != nil {
		return nil, err
	}
	info, err := m.raw.Stat(physical)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &FileInfo{Name: filepath.Base(physical), FullName: path}, nil
		}
		return nil, err
	}
	return newFileInfo(info, path), nil
}

// VersionInfo details: see FileSystem#VersionInfo
func (m *MountedFileSystem) VersionInfo(path string) (*VersionInfo, error) {
	reader, err := m.Read(path)
	if err != nil {
		return nil, err
	}
	defer silentClose(reader)
	return readVersionInfo(reader)
}

// AbsolutePath details: see FileSystem#AbsolutePath
func (m *MountedFileSystem) AbsolutePath(path string) (string, error) {
	physical, err := m.sandbox.Translate(path)
	if err != nil {
		return "", err
	}
	if m.sandbox.MountPoint() == "" {
		return filepath.Abs(physical)
	}
	return physical, nil
}

// Close tears down the sandbox, see Sandbox#Teardown.
func (m *MountedFileSystem) Close() error {
	return m.sandbox.Teardown()
}

// String returns a name or description of this file system.
func (m *MountedFileSystem) String() string {
	if m.sandbox.MountPoint() == "" {
		return "passthrough()"
	}
	return "mounted(" + m.sandbox.MountPoint() + ")"
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
