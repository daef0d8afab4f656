package mountfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var _ RawFileSystem = (*LocalFileSystem)(nil)

var errIsDir = errors.New("is a directory")

// A LocalFileSystem just works with the local filesystem, or any other afero backend.
type LocalFileSystem struct {
	// Fs is the backend. If nil, the operating system file system is used.
	Fs afero.Fs
}

// NewLocalFileSystem returns a LocalFileSystem backed by the operating system.
func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{Fs: afero.NewOsFs()}
}

func (p *LocalFileSystem) fs() afero.Fs {
	if p.Fs == nil {
		p.Fs = afero.NewOsFs()
	}
	return p.Fs
}

func (p *LocalFileSystem) isOs() bool {
	_, ok := p.fs().(*afero.OsFs)
	return ok
}

// OpenRead details: see RawFileSystem#OpenRead
func (p *LocalFileSystem) OpenRead(path string) (io.ReadCloser, error) {
	return p.fs().Open(path)
}

// OpenWrite details: see RawFileSystem#OpenWrite
func (p *LocalFileSystem) OpenWrite(path string) (io.WriteCloser, error) {
	return p.fs().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
}

// Copy details: see RawFileSystem#Copy
func (p *LocalFileSystem) Copy(src string, dst string, overwrite bool) error {
	in, err := p.fs().Open(src)
	if err != nil {
		return err
	}
	defer silentClose(in)

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: errIsDir}
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := p.fs().OpenFile(dst, flag, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		silentClose(out)
		return err
	}
	return out.Close()
}

// Move details: see RawFileSystem#Move
func (p *LocalFileSystem) Move(src string, dst string, overwrite bool) error {
	if overwrite {
		// os.Rename replaces an existing file in one step
		if p.isOs() {
			return p.fs().Rename(src, dst)
		}
		exists, err := p.Exists(dst)
		if err != nil {
			return err
		}
		if exists {
			if err := p.fs().Remove(dst); err != nil {
				return err
			}
		}
		return p.fs().Rename(src, dst)
	}

	if p.isOs() {
		return renameNoReplace(src, dst)
	}
	return renameIfAbsent(p.fs(), src, dst)
}

// renameIfAbsent is the non-atomic fallback for backends without a no-replace rename.
func renameIfAbsent(fsys afero.Fs, src string, dst string) error {
	_, err := fsys.Stat(dst)
	if err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return fsys.Rename(src, dst)
}

// Remove details: see RawFileSystem#Remove
func (p *LocalFileSystem) Remove(path string) error {
	return p.fs().Remove(path)
}

// RemoveAll details: see RawFileSystem#RemoveAll
func (p *LocalFileSystem) RemoveAll(path string) error {
	return p.fs().RemoveAll(path)
}

// List details: see RawFileSystem#List
func (p *LocalFileSystem) List(dir string) ([]string, error) {
	return p.readDir(dir, func(info os.FileInfo) (bool, error) {
		return !info.IsDir(), nil
	})
}

// ListMatch details: see RawFileSystem#ListMatch
func (p *LocalFileSystem) ListMatch(dir string, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, notSupported("invalid search pattern", pattern+":", err.Error())
	}
	return p.readDir(dir, func(info os.FileInfo) (bool, error) {
		if info.IsDir() {
			return false, nil
		}
		return filepath.Match(pattern, info.Name())
	})
}

// ListDirs details: see RawFileSystem#ListDirs
func (p *LocalFileSystem) ListDirs(dir string) ([]string, error) {
	return p.readDir(dir, func(info os.FileInfo) (bool, error) {
		return info.IsDir(), nil
	})
}

func (p *LocalFileSystem) readDir(dir string, accept func(info os.FileInfo) (bool, error)) ([]string, error) {
	list, err := afero.ReadDir(p.fs(), dir)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(list))
	for _, info := range list {
		ok, err := accept(info)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, filepath.Join(dir, info.Name()))
		}
	}
	return res, nil
}

// MkdirAll details: see RawFileSystem#MkdirAll
func (p *LocalFileSystem) MkdirAll(dir string) error {
	return p.fs().MkdirAll(dir, os.ModePerm)
}

// Exists details: see RawFileSystem#Exists
func (p *LocalFileSystem) Exists(path string) (bool, error) {
	info, err := p.fs().Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// DirExists details: see RawFileSystem#DirExists
func (p *LocalFileSystem) DirExists(path string) (bool, error) {
	return afero.DirExists(p.fs(), path)
}

// Stat details: see RawFileSystem#Stat
func (p *LocalFileSystem) Stat(path string) (*ResourceInfo, error) {
	info, err := p.fs().Stat(path)
	if err != nil {
		return nil, err
	}
	out := &ResourceInfo{
		Name:       info.Name(),
		Size:       info.Size(),
		Mode:       info.Mode(),
		ModTime:    info.ModTime(),
		AccessTime: info.ModTime(),
		BirthTime:  info.ModTime(),
	}
	if p.isOs() {
		readTimes(path, out)
	}
	return out, nil
}
