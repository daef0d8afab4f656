package mountfs

import (
	"encoding/hex"
	"io"

	"github.com/zeebo/blake3"
)

// VersionInfoPrefix is put before the hex digest in VersionInfo.FileVersion.
const VersionInfoPrefix = "blake3:"

// A VersionInfo denotes a discriminator to distinguish different versions of the same file. Native executables
// on Unix carry no version resource, so the version is a cryptographic hash sum of the content.
type VersionInfo struct {
	FileVersion string
}

func readVersionInfo(reader io.Reader) (*VersionInfo, error) {
	hasher := blake3.New()
	if _, err := io.Copy(hasher, reader); err != nil {
		return nil, err
	}
	return &VersionInfo{FileVersion: VersionInfoPrefix + hex.EncodeToString(hasher.Sum(nil))}, nil
}
