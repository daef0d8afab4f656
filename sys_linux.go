//go:build linux

package mountfs

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// renameNoReplace atomically renames src to dst and fails with EEXIST if dst exists.
func renameNoReplace(src string, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	if err == nil {
		return nil
	}
	// kernels before 3.15 and some file systems (e.g. older NFS) do not know the flag
	if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EINVAL) {
		return renameIfAbsent(afero.NewOsFs(), src, dst)
	}
	return &os.LinkError{Op: "rename", Old: src, New: dst, Err: err}
}

// readTimes fills the access and birth time using statx. Unknown times keep their current value.
func readTimes(path string, out *ResourceInfo) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_ATIME|unix.STATX_BTIME, &stx)
	if err != nil {
		return
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		out.AccessTime = time.Unix(stx.Atime.Sec, int64(stx.Atime.Nsec))
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		out.BirthTime = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
}
