package mountfs

import "time"

// A FileInfo describes a file as seen through a FileSystem. FullName is the logical path which has been asked
// for, not the physical one, so sandboxed callers never see the mount point.
type FileInfo struct {
	Name              string
	FullName          string
	Length            int64
	Exists            bool
	CreationTimeUTC   time.Time
	LastAccessTimeUTC time.Time
	LastWriteTimeUTC  time.Time
}

func newFileInfo(info *ResourceInfo, fullName string) *FileInfo {
	return &FileInfo{
		Name:              info.Name,
		FullName:          fullName,
		Length:            info.Size,
		Exists:            !info.IsDir(),
		CreationTimeUTC:   info.BirthTime.UTC(),
		LastAccessTimeUTC: info.AccessTime.UTC(),
		LastWriteTimeUTC:  info.ModTime.UTC(),
	}
}
