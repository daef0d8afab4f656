// mountfs runs file operations against the local file system or a sandbox below a mount point.
//
// Usage:
//
//	mountfs [flags] resolve <path>
//	mountfs [flags] ls <dir> [pattern]
//	mountfs [flags] lsdirs <dir>
//	mountfs [flags] cat <path>
//	mountfs [flags] put <path>            (content from stdin)
//	mountfs [flags] cp <src> <dst>
//	mountfs [flags] mv <src> <dst>
//	mountfs [flags] rm <path>
//	mountfs [flags] mkdir <dir>
//	mountfs [flags] rmdir [-r] <dir>
//	mountfs [flags] stat <path>
//	mountfs [flags] exists <path>
//	mountfs [flags] version <path>
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/worldiety/mountfs"
)

const (
	exitOK        = 0
	exitError     = 1
	exitTraversal = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	var (
		mountPoint string
		teardown   mountfs.TeardownPolicy
		configPath string
		debug      bool
		overwrite  bool
	)

	flagSet := pflag.NewFlagSet("mountfs", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVarP(&mountPoint, "mount", "m", "", "mount point; empty uses paths as they are")
	flagSet.Var(&teardown, "teardown", "what happens to the mount point on exit: none or delete")
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML or JSONC config file")
	flagSet.BoolVar(&debug, "debug", os.Getenv("MOUNTFS_DEBUG") != "", "enable debug logging")
	flagSet.BoolVarP(&overwrite, "force", "f", false, "overwrite the destination of cp and mv")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	config := mountfs.Config{}
	if configPath != "" {
		loaded, err := mountfs.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		config = loaded
	} else if err := mountfs.ApplyEnv(&config); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if flagSet.Changed("mount") {
		config.MountPoint = mountPoint
	}
	if flagSet.Changed("teardown") {
		config.Teardown = teardown
	}
	config.Logger = logger

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return exitError
	}

	fsys, err := mountfs.New(config)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	cmd := &command{fsys: fsys, stdin: stdin, stdout: stdout, overwrite: overwrite}
	err = cmd.dispatch(rest[0], rest[1:])
	if closeErr := fsys.Close(); closeErr != nil {
		logger.Error("teardown failed", "error", closeErr)
		if err == nil {
			err = closeErr
		}
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if mountfs.IsPathTraversal(err) {
			return exitTraversal
		}
		return exitError
	}
	return exitOK
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `mountfs - file operations on the local file system or inside a mount point

USAGE
    mountfs [flags] <command> [args...]

COMMANDS
    resolve <path>          Print the physical path
    ls <dir> [pattern]      List files, optionally filtered by a shell pattern
    lsdirs <dir>            List directories
    cat <path>              Print a file
    put <path>              Write stdin into a file
    cp <src> <dst>          Copy a file
    mv <src> <dst>          Move a file
    rm <path>               Delete a file
    mkdir <dir>             Create a directory and its parents
    rmdir [-r] <dir>        Delete a directory
    stat <path>             Print file metadata
    exists <path>           Print whether a file exists
    version <path>          Print the content version of a file

FLAGS
`)
	fmt.Fprint(w, flagSet.FlagUsages())
	fmt.Fprint(w, `
ENVIRONMENT
    MOUNTFS_MOUNT_POINT  Mount point (overridden by --mount)
    MOUNTFS_TEARDOWN     Teardown policy (overridden by --teardown)
    MOUNTFS_DEBUG        Enable debug logging
`)
}
