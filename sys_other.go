//go:build !linux

package mountfs

import "github.com/spf13/afero"

func renameNoReplace(src string, dst string) error {
	return renameIfAbsent(afero.NewOsFs(), src, dst)
}

// readTimes keeps the ModTime fallback.
func readTimes(path string, out *ResourceInfo) {
}
