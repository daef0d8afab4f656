package mountfs

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func writeFiles(t *testing.T, fsys afero.Fs, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fsys, path, []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// A mounted listing must look exactly like the listing of the same relative directory without a mount point.
func TestListingMatchesUnmounted(t *testing.T) {
	files := []string{"dir/b.txt", "dir/a.txt", "dir/c.log", "dir/sub/x.txt", "dir/zz/y.txt"}

	mounted := afero.NewMemMapFs()
	writeFiles(t, mounted, memRoot, files...)
	mountedFs, err := New(Config{MountPoint: memRoot, Raw: &LocalFileSystem{Fs: mounted}, Logger: discardLogger()})
	if err != nil {
		t.Fatal(err)
	}

	// the pass-through side lists the same relative directory inside a base path
	plain := afero.NewBasePathFs(afero.NewMemMapFs(), memRoot)
	writeFiles(t, plain, "", files...)
	plainFs, err := New(Config{Raw: &LocalFileSystem{Fs: plain}, Logger: discardLogger()})
	if err != nil {
		t.Fatal(err)
	}

	listings := []struct {
		name string
		list func(fsys FileSystem) ([]string, error)
	}{
		{"List", func(fsys FileSystem) ([]string, error) { return fsys.List("dir") }},
		{"ListPattern", func(fsys FileSystem) ([]string, error) { return fsys.ListPattern("dir", "*.txt") }},
		{"ListDirectories", func(fsys FileSystem) ([]string, error) { return fsys.ListDirectories("dir") }},
	}

	for _, listing := range listings {
		t.Run(listing.name, func(t *testing.T) {
			want, err := listing.list(plainFs)
			if err != nil {
				t.Fatal(err)
			}
			got, err := listing.list(mountedFs)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) == 0 {
				t.Fatal("expected a non-empty listing")
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("listing mismatch (-unmounted +mounted):\n%s", diff)
			}
		})
	}
}

func TestListing(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFiles(t, mem, memRoot, "dir/b.txt", "dir/a.txt", "dir/c.log", "dir/sub/x.txt", "a.txt")
	fsys, err := New(Config{MountPoint: memRoot, Raw: &LocalFileSystem{Fs: mem}, Logger: discardLogger()})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		list func() ([]string, error)
		want []string
	}{
		{"files", func() ([]string, error) { return fsys.List("dir") }, []string{
			filepath.Join("dir", "a.txt"),
			filepath.Join("dir", "b.txt"),
			filepath.Join("dir", "c.log"),
		}},
		{"pattern", func() ([]string, error) { return fsys.ListPattern("dir", "*.log") }, []string{
			filepath.Join("dir", "c.log"),
		}},
		{"dirs", func() ([]string, error) { return fsys.ListDirectories("dir") }, []string{
			filepath.Join("dir", "sub"),
		}},
		{"root", func() ([]string, error) { return fsys.List("") }, []string{"a.txt"}},
		{"root dirs", func() ([]string, error) { return fsys.ListDirectories("/") }, []string{"dir"}},
		{"unc", func() ([]string, error) { return fsys.List("//dir") }, []string{
			filepath.Join(string(filepath.Separator)+"dir", "a.txt"),
			filepath.Join(string(filepath.Separator)+"dir", "b.txt"),
			filepath.Join(string(filepath.Separator)+"dir", "c.log"),
		}},
		{"empty pattern result", func() ([]string, error) { return fsys.ListPattern("dir", "*.png") }, []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.list()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Fatalf("listing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListingInvalidPattern(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFiles(t, mem, memRoot, "dir/a.txt")
	fsys, err := New(Config{MountPoint: memRoot, Raw: &LocalFileSystem{Fs: mem}, Logger: discardLogger()})
	if err != nil {
		t.Fatal(err)
	}

	_, err = fsys.ListPattern("dir", "[")
	if _, ok := err.(*OperationNotSupportedError); !ok {
		t.Fatalf("expected *OperationNotSupportedError but got %T: %v", err, err)
	}
}

func TestListingTraversal(t *testing.T) {
	fsys, err := New(Config{MountPoint: memRoot, Raw: &LocalFileSystem{Fs: afero.NewMemMapFs()}, Logger: discardLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fsys.List("../.."); !IsPathTraversal(err) {
		t.Fatalf("expected traversal error but got %v", err)
	}
}

func TestRestoreListing(t *testing.T) {
	sandbox, _ := newMemSandbox(t, memRoot, TeardownNone)
	sep := string(filepath.Separator)

	got, err := sandbox.RestoreListing("dir", []string{
		memRoot,
		filepath.Join(memRoot, "dir", "a"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"", filepath.Join("dir", "a")}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	got, err = sandbox.RestoreListing(`\\dir`, []string{filepath.Join(memRoot, "dir", "a")})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{sep + filepath.Join("dir", "a")}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	_, err = sandbox.RestoreListing("dir", []string{memRoot + "x" + sep + "a"})
	if !IsPathTraversal(err) {
		t.Fatalf("expected an entry outside the mount point to be rejected but got %v", err)
	}

	plain, _ := newMemSandbox(t, "", TeardownNone)
	entries := []string{"x", sep + "y"}
	got, err = plain.RestoreListing("//dir", entries)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Fatalf("pass-through must not touch entries (-want +got):\n%s", diff)
	}
}
