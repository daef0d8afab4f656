package mountfs

import (
	"io"
	"os"
	"time"
)

// The RawFileSystem interface executes file and directory operations against literal physical paths. It does
// not know anything about mount points, a Sandbox translates paths before they reach it.
//
// Design decisions
//
// There are the following opinionated decisions:
//
//  * It is an Interface, because the host file system is an external collaborator. LocalFileSystem is the default
//    implementation, tests may use any afero backend or their own wrapper.
//
//  * Paths are platform specific physical paths, e.g. as returned by Sandbox.Translate. A RawFileSystem must not
//    clean, join or otherwise reinterpret them.
//
//  * Listings return full paths (the directory joined with the entry name) in the order of the backend, so that
//    a Sandbox can map them back to logical paths.
type RawFileSystem interface {
	// OpenRead opens the file for reading.
	OpenRead(path string) (io.ReadCloser, error)

	// OpenWrite creates or truncates the file and opens it for writing.
	OpenWrite(path string) (io.WriteCloser, error)

	// Copy duplicates the content and permissions of a regular file. If overwrite is false and dst exists,
	// an error matching fs.ErrExist is returned.
	Copy(src string, dst string, overwrite bool) error

	// Move renames src to dst. If overwrite is false and dst exists, an error matching fs.ErrExist is returned.
	Move(src string, dst string, overwrite bool) error

	// Remove deletes a file or an empty directory.
	Remove(path string) error

	// RemoveAll deletes path and all contained children. It is not an error if path does not exist.
	RemoveAll(path string) error

	// List returns the regular files of dir.
	List(dir string) ([]string, error)

	// ListMatch returns the regular files of dir whose names match the shell pattern, see filepath.Match.
	ListMatch(dir string, pattern string) ([]string, error)

	// ListDirs returns the sub directories of dir.
	ListDirs(dir string) ([]string, error)

	// MkdirAll creates dir and all missing parents. It is not an error if dir already exists.
	MkdirAll(dir string) error

	// Exists tests whether path denotes a regular file (not a directory).
	Exists(path string) (bool, error)

	// DirExists tests whether path denotes a directory.
	DirExists(path string) (bool, error)

	// Stat reads the metadata of path.
	Stat(path string) (*ResourceInfo, error)
}

// A ResourceInfo represents the metadata of a physical entry.
type ResourceInfo struct {
	Name       string      // The local name of this resource
	Size       int64       // length in bytes for regular files; system-dependent for others
	Mode       os.FileMode // file mode bits. Mode.IsDir and Mode.IsRegular are your friends.
	ModTime    time.Time   // last modification
	AccessTime time.Time   // last access, falls back to ModTime if the backend cannot tell
	BirthTime  time.Time   // creation, falls back to ModTime if the backend cannot tell
}

// IsDir is a shortcut for Mode.IsDir.
func (e *ResourceInfo) IsDir() bool {
	return e.Mode.IsDir()
}
