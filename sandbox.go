package mountfs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// A TeardownPolicy decides what happens to the mount root when a Sandbox is torn down.
type TeardownPolicy int

const (
	// TeardownNone leaves the mount root and its contents untouched.
	TeardownNone TeardownPolicy = iota
	// TeardownDeleteRoot recursively deletes the mount root.
	TeardownDeleteRoot
)

// Config holds the configuration for a Sandbox or a MountedFileSystem.
type Config struct {
	// MountPoint is the physical directory all logical paths are translated into. If empty, logical
	// paths are used as they are.
	MountPoint string `yaml:"mount_point" json:"mount_point"`

	// Teardown is applied once the sandbox is torn down.
	Teardown TeardownPolicy `yaml:"teardown" json:"teardown"`

	// Raw executes the physical operations. Defaults to the operating system.
	Raw RawFileSystem `yaml:"-" json:"-"`

	// Logger for mount and teardown events. Defaults to slog.Default().
	Logger *slog.Logger `yaml:"-" json:"-"`
}

// A Sandbox is a poor man's chroot. It translates logical paths into physical paths below its mount point and
// guarantees that no logical path, whatever sequence of .., separators or drive letters it contains, resolves
// outside of it. Without a mount point, the Sandbox passes all paths through unchanged.
//
// The mount root is created lazily by the first translation and may be deleted by Teardown. A Sandbox is safe
// for concurrent use, except that Teardown must not run concurrently with other calls.
type Sandbox struct {
	mountPoint string // absolute and clean, or empty
	teardown   TeardownPolicy
	raw        RawFileSystem
	logger     *slog.Logger

	mu      sync.Mutex
	mounted atomic.Bool
}

// NewSandbox creates a Sandbox. The mount point is resolved to an absolute path but not created yet.
func NewSandbox(config Config) (*Sandbox, error) {
	mountPoint := config.MountPoint
	if mountPoint != "" {
		abs, err := filepath.Abs(mountPoint)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve mount point: %w", err)
		}
		mountPoint = abs
	}

	raw := config.Raw
	if raw == nil {
		raw = NewLocalFileSystem()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sandbox{
		mountPoint: mountPoint,
		teardown:   config.Teardown,
		raw:        raw,
		logger:     logger,
	}, nil
}

// MountPoint returns the resolved mount point or the empty string in pass-through mode.
func (s *Sandbox) MountPoint() string {
	return s.mountPoint
}

// TeardownPolicy returns the configured policy.
func (s *Sandbox) TeardownPolicy() TeardownPolicy {
	return s.teardown
}

// Mounted tells whether the mount root has been ensured since creation or the last deleting teardown.
func (s *Sandbox) Mounted() bool {
	return s.mounted.Load()
}

// Translate returns the physical path for the given logical path. In pass-through mode the path is returned
// as is. Otherwise leading separators are stripped, a leading drive letter becomes a plain name (c: becomes
// c_) and the result is joined onto the mount point and resolved. If the resolved path is not the mount point
// or below it, a *PathTraversalError is returned.
//
// The mount root is created on the first call, see EnsureMounted.
func (s *Sandbox) Translate(logical string) (string, error) {
	if s.mountPoint == "" {
		return logical, nil
	}

	if err := s.EnsureMounted(); err != nil {
		return "", err
	}

	resolved, err := filepath.Abs(filepath.Join(s.mountPoint, Path(logical).Relative()))
	if err != nil {
		return "", err
	}

	if !hasPathPrefix(resolved, s.mountPoint) {
		s.logger.Warn("rejected path traversal",
			"path", logical,
			"mount_point", s.mountPoint,
		)
		return "", &PathTraversalError{Path: logical, MountPoint: s.mountPoint}
	}

	return resolved, nil
}

// EnsureMounted creates the mount root and its parents, if required. Concurrent calls create it at most once.
// It does nothing in pass-through mode or if the root has already been ensured. A failure is returned as a
// *MountError and the next call tries again.
func (s *Sandbox) EnsureMounted() error {
	if s.mountPoint == "" || s.mounted.Load() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mounted.Load() {
		return nil
	}

	exists, err := s.raw.DirExists(s.mountPoint)
	if err != nil {
		return &MountError{MountPoint: s.mountPoint, Err: err}
	}

	if !exists {
		if err := s.raw.MkdirAll(s.mountPoint); err != nil {
			return &MountError{MountPoint: s.mountPoint, Err: err}
		}
		s.logger.Debug("created mount point", "mount_point", s.mountPoint)
	}

	s.mounted.Store(true)
	return nil
}

// Teardown applies the TeardownPolicy. It does nothing in pass-through mode or if the mount root does not
// exist, so it is safe to call on a sandbox which has never been used. With TeardownDeleteRoot, the root and
// everything below it is removed and a later translation creates it again.
func (s *Sandbox) Teardown() error {
	if s.mountPoint == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.raw.DirExists(s.mountPoint)
	if err != nil {
		return fmt.Errorf("failed to inspect mount point %s: %w", s.mountPoint, err)
	}
	if !exists || s.teardown != TeardownDeleteRoot {
		return nil
	}

	// never wipe a volume root like / or c:\
	if filepath.Dir(s.mountPoint) == s.mountPoint {
		return notSupported("refusing to delete volume root", s.mountPoint)
	}

	if err := s.raw.RemoveAll(s.mountPoint); err != nil {
		return fmt.Errorf("failed to delete mount point %s: %w", s.mountPoint, err)
	}
	s.mounted.Store(false)
	s.logger.Info("deleted mount point", "mount_point", s.mountPoint)
	return nil
}

// ReversePrefix returns the prefix which a listing of the logical directory dir puts before each entry. It is a
// single separator if dir is UNC style (//server or \\server) and a mount point is configured, otherwise empty.
func (s *Sandbox) ReversePrefix(dir string) string {
	if s.mountPoint == "" {
		return ""
	}
	if Path(dir).IsUNC() {
		return string(filepath.Separator)
	}
	return ""
}

// RestoreListing maps the physical entries of a listing of the logical directory dir back to logical paths,
// by cutting the mount point and its separator and prepending ReversePrefix. In pass-through mode the entries
// are returned unchanged.
func (s *Sandbox) RestoreListing(dir string, entries []string) ([]string, error) {
	if s.mountPoint == "" {
		return entries, nil
	}

	prefix := s.ReversePrefix(dir)
	offset := pathPrefixLen(s.mountPoint)
	res := make([]string, 0, len(entries))
	for _, entry := range entries {
		// holds for every entry below a translated directory
		if !hasPathPrefix(entry, s.mountPoint) {
			return nil, &PathTraversalError{Path: entry, MountPoint: s.mountPoint}
		}
		if len(entry) < offset {
			res = append(res, prefix)
			continue
		}
		res = append(res, prefix+entry[offset:])
	}
	return res, nil
}
