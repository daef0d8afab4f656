package mountfs

import (
	"path/filepath"
	"strings"
)

// A Path is a logical path as handed in by a caller. Both / and \ separate its names, independent of the
// platform, so that the same logical path addresses the same entry everywhere.
//
// Example
//
// Valid logical paths
//
//  * my/relative/file.txt
//  * /my/rooted/file.txt
//  * \\server\share\file.txt (UNC style)
//  * c:\my\windows\folder
//  * the empty path, which denotes the mount root itself
//
// A Path is never interpreted on its own. A Sandbox translates it into a physical path below its mount point,
// see Sandbox.Translate.
type Path string

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// Names splits the path by / and \ and returns all non-empty segments.
func (p Path) Names() []string {
	return strings.FieldsFunc(string(p), func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// IsUNC tests whether the path starts with a double separator, like //server/share or \\server\share.
func (p Path) IsUNC() bool {
	return strings.HasPrefix(string(p), `\\`) || strings.HasPrefix(string(p), "//")
}

// HasVolume tests whether the path starts with a drive letter followed by a colon.
func (p Path) HasVolume() bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// TrimLeadingSeparators removes all leading / and \.
func (p Path) TrimLeadingSeparators() Path {
	i := 0
	for i < len(p) && isSeparator(p[i]) {
		i++
	}
	return p[i:]
}

// Relative returns the path as a relative, platform specific path. Leading separators are dropped and a leading
// drive letter becomes a plain name (c: becomes c_), so the result can never act as a second root when joined.
func (p Path) Relative() string {
	p = p.TrimLeadingSeparators()
	if p.HasVolume() {
		p = p[:1] + "_" + p[2:]
	}
	return filepath.Join(p.Names()...)
}

// String returns the path as given.
func (p Path) String() string {
	return string(p)
}

// hasPathPrefix tests whether path equals root or denotes an entry below root. Both must be clean and absolute.
// In contrast to strings.HasPrefix, /a/bc is not below /a/b.
func hasPathPrefix(path string, root string) bool {
	if !strings.HasPrefix(path, root) {
		return false
	}
	if len(path) == len(root) {
		return true
	}
	// a root like / or c:\ already ends with the separator
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return true
	}
	return path[len(root)] == filepath.Separator
}

// pathPrefixLen returns the amount of bytes to cut from a path below root, including the separator after root.
func pathPrefixLen(root string) int {
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return len(root)
	}
	return len(root) + 1
}
