// Package mountfs provides file system access which either targets the real file system or a sandbox below a
// mount point. The same logical path resolves to different physical locations, depending on the mount point,
// and never escapes it.
package mountfs

import (
	"context"
	"io"
)

// The FileSystem interface is the contract which callers use instead of the os package. All paths are logical
// paths, see Path.
//
// Design decisions
//
// There are the following opinionated decisions:
//
//  * It is an Interface, so that code can be written once and run either against the real file system
//    (pass-through) or inside a sandbox, e.g. in tests or for untrusted job data.
//
//  * It is a flat set of file operations instead of an os.File like handle API. The sandbox only has to
//    translate paths once per call and listing results can be mapped back to logical paths.
//
//  * A path which would escape the mount point is rejected with a *PathTraversalError, all other failures of
//    the underlying file system are returned unchanged. Use errors.Is(err, fs.ErrNotExist) and friends.
//
//  * It is an io.Closer, because a sandbox may have to delete its mount root when done.
type FileSystem interface {
	// Read opens the file for reading.
	Read(path string) (io.ReadCloser, error)

	// ReadShared opens the file for reading without locking it against concurrent writers or deletion.
	ReadShared(path string) (io.ReadCloser, error)

	// ReadAllText loads the entire file into a string.
	ReadAllText(path string) (string, error)

	// Write creates or truncates the file and opens it for writing.
	Write(path string) (io.WriteCloser, error)

	// WriteAllLines writes each line followed by a line feed.
	WriteAllLines(path string, lines []string) error

	// WriteWith hands the physical path and the content to the given strategy.
	WriteWith(path string, content io.Reader, strategy WriteStrategy) error

	// WriteFrom copies the content into the file until EOF or until ctx is done.
	WriteFrom(ctx context.Context, content io.Reader, path string) error

	// Exists tests whether path denotes a regular file. Directories do not count.
	Exists(path string) (bool, error)

	// Move renames a file. If dest exists and overwrite is false, an error matching fs.ErrExist is returned.
	Move(path string, dest string, overwrite bool) error

	// Copy duplicates a file. If dest exists and overwrite is false, an error matching fs.ErrExist is returned.
	Copy(path string, dest string, overwrite bool) error

	// Delete removes a file. It is not considered an error to delete a non-existing file.
	Delete(path string) error

	// List returns the logical paths of all files in dir.
	List(dir string) ([]string, error)

	// ListPattern returns the logical paths of all files in dir whose name matches the shell pattern.
	ListPattern(dir string, pattern string) ([]string, error)

	// ListDirectories returns the logical paths of all sub directories in dir.
	ListDirectories(dir string) ([]string, error)

	// CreateDirectory creates dir and all missing parents.
	CreateDirectory(dir string) error

	// DirectoryExists tests whether dir denotes a directory.
	DirectoryExists(dir string) (bool, error)

	// EnsureDirectoryExists creates dir if it does not exist yet.
	EnsureDirectoryExists(dir string) error

	// DeleteDirectory removes dir. If recursive is false, dir must be empty.
	DeleteDirectory(dir string, recursive bool) error

	// FileInfo reads the metadata of a file. A missing file is reported by FileInfo.Exists and not as an error.
	FileInfo(path string) (*FileInfo, error)

	// VersionInfo returns a version discriminator of the file content.
	VersionInfo(path string) (*VersionInfo, error)

	// AbsolutePath returns the physical, absolute path.
	AbsolutePath(path string) (string, error)

	// Close releases the file system, see Sandbox.Teardown.
	io.Closer
}
