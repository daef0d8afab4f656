package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/worldiety/mountfs"
)

type command struct {
	fsys      mountfs.FileSystem
	stdin     io.Reader
	stdout    io.Writer
	overwrite bool
}

func (c *command) dispatch(name string, args []string) error {
	switch name {
	case "resolve":
		return c.withArgs(name, args, 1, func() error { return c.resolve(args[0]) })
	case "ls":
		if len(args) == 2 {
			return c.printAll(c.fsys.ListPattern(args[0], args[1]))
		}
		return c.withArgs(name, args, 1, func() error { return c.printAll(c.fsys.List(args[0])) })
	case "lsdirs":
		return c.withArgs(name, args, 1, func() error { return c.printAll(c.fsys.ListDirectories(args[0])) })
	case "cat":
		return c.withArgs(name, args, 1, func() error { return c.cat(args[0]) })
	case "put":
		return c.withArgs(name, args, 1, func() error { return c.put(args[0]) })
	case "cp":
		return c.withArgs(name, args, 2, func() error { return c.fsys.Copy(args[0], args[1], c.overwrite) })
	case "mv":
		return c.withArgs(name, args, 2, func() error { return c.fsys.Move(args[0], args[1], c.overwrite) })
	case "rm":
		return c.withArgs(name, args, 1, func() error { return c.fsys.Delete(args[0]) })
	case "mkdir":
		return c.withArgs(name, args, 1, func() error { return c.fsys.CreateDirectory(args[0]) })
	case "rmdir":
		if len(args) == 2 && (args[0] == "-r" || args[0] == "--recursive") {
			return c.fsys.DeleteDirectory(args[1], true)
		}
		return c.withArgs(name, args, 1, func() error { return c.fsys.DeleteDirectory(args[0], false) })
	case "stat":
		return c.withArgs(name, args, 1, func() error { return c.stat(args[0]) })
	case "exists":
		return c.withArgs(name, args, 1, func() error { return c.exists(args[0]) })
	case "version":
		return c.withArgs(name, args, 1, func() error { return c.version(args[0]) })
	default:
		return fmt.Errorf("unknown command: %s", name)
	}
}

func (c *command) withArgs(name string, args []string, want int, f func() error) error {
	if len(args) != want {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, want, len(args))
	}
	return f()
}

func (c *command) resolve(path string) error {
	physical, err := c.fsys.AbsolutePath(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, physical)
	return err
}

func (c *command) printAll(entries []string, err error) error {
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	_, err = fmt.Fprintln(c.stdout, strings.Join(entries, "\n"))
	return err
}

func (c *command) cat(path string) error {
	reader, err := c.fsys.Read(path)
	if err != nil {
		return err
	}
	defer reader.Close()
	_, err = io.Copy(c.stdout, reader)
	return err
}

func (c *command) put(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := c.fsys.EnsureDirectoryExists(dir); err != nil {
			return err
		}
	}
	return c.fsys.WriteWith(path, c.stdin, mountfs.AtomicWriteStrategy{})
}

func (c *command) stat(path string) error {
	info, err := c.fsys.FileInfo(path)
	if err != nil {
		return err
	}
	if !info.Exists {
		return fmt.Errorf("%s: file does not exist", path)
	}
	_, err = fmt.Fprintf(c.stdout, "name:     %s\npath:     %s\nsize:     %d\ncreated:  %s\naccessed: %s\nmodified: %s\n",
		info.Name,
		info.FullName,
		info.Length,
		info.CreationTimeUTC.Format(time.RFC3339),
		info.LastAccessTimeUTC.Format(time.RFC3339),
		info.LastWriteTimeUTC.Format(time.RFC3339),
	)
	return err
}

func (c *command) exists(path string) error {
	exists, err := c.fsys.Exists(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, exists)
	return err
}

func (c *command) version(path string) error {
	info, err := c.fsys.VersionInfo(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, info.FileVersion)
	return err
}
