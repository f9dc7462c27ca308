// Package main provides the CLI entrypoint for iismap.
//
// iismap translates IIS configuration documents into installer tables and
// back:
//   - compile: XML document to a YAML or SQLite table set
//   - decompile: table set back to an XML document (or JSON)
//   - check: validate and resolve a document without writing anything
//   - tables: print the table layouts
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errFailed is returned when the translation itself reported errors. The
// diagnostics have already been printed.
var errFailed = errors.New("translation failed")

type command struct {
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = map[string]command{
	"compile":   {"compile an XML document into tables", runCompile},
	"decompile": {"rebuild an XML document from tables", runDecompile},
	"check":     {"validate a document without writing output", runCheck},
	"tables":    {"print the table layouts", runTables},
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		usage(stderr)

		if len(args) == 0 {
			return exitUsage
		}

		return exitOK
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "iismap: unknown command %q\n\n", args[0])
		usage(stderr)

		return exitUsage
	}

	err := cmd.run(ctx, args[1:], stdout, stderr)

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "iismap %s: %v\n", args[0], err)
		return exitUsage
	case errors.Is(err, errFailed):
		return exitError
	default:
		fmt.Fprintf(stderr, "iismap %s: %v\n", args[0], err)
		return exitError
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: iismap <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'iismap <command> -h' for the flags of a command.")
	fmt.Fprintln(w, "Every flag may also be set through an IISMAP_ environment variable,")
	fmt.Fprintln(w, "for example IISMAP_FORMAT=sqlite or IISMAP_LOG_FILE=iismap.log.")
}
