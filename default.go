package mountfs

import (
	"fmt"
	"io"
	"log/slog"
)

var prov FileSystem = passThrough()

func passThrough() *MountedFileSystem {
	raw := NewLocalFileSystem()
	return &MountedFileSystem{
		sandbox: &Sandbox{raw: raw, logger: slog.Default()},
		raw:     raw,
	}
}

// Default returns the process wide file system. By default this is a pass-through MountedFileSystem on the
// local file system. Consider to reconfigure it with a mounted one, e.g. to keep the data of a job or a test
// inside a directory.
//
// Best practice
//
//  * Let your components accept a FileSystem and only fall back to Default in main.
//  * Never call SetDefault while other goroutines use Default.
func Default() FileSystem {
	return prov
}

// SetDefault updates the default file system. See also #Default()
func SetDefault(fsys FileSystem) {
	prov = fsys
}

// ReadAll loads the entire file into memory. Only use it, if you know that it fits into memory.
// Delegates to Default()#Read.
func ReadAll(path string) ([]byte, error) {
	reader, err := Default().Read(path)
	if err != nil {
		return nil, err
	}
	defer silentClose(reader)
	return io.ReadAll(reader)
}

// WriteAll just puts the given data into the path. Delegates to Default()#Write.
func WriteAll(path string, data []byte) (int, error) {
	writer, err := Default().Write(path)
	if err != nil {
		return 0, err
	}

	n, err := writer.Write(data)
	if err != nil {
		silentClose(writer)
		return n, err
	}
	if n != len(data) {
		silentClose(writer)
		return n, fmt.Errorf("file system %v has violated the Write contract", Default())
	}
	return n, writer.Close()
}

// Stat reads the metadata of a file. Delegates to Default()#FileInfo.
func Stat(path string) (*FileInfo, error) {
	return Default().FileInfo(path)
}
