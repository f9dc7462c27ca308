package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"iismap/internal/compiler"
	"iismap/internal/store"
)

func runCompile(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := newFlagSet("compile", stderr)
	common := registerCommon(fs)

	var (
		flOut    = fs.String("o", "", "output file (default: input name with the format's extension)")
		flFormat = fs.String("format", "", "output format: yaml or sqlite (default from config, else yaml)")
	)

	if err := parse(fs, args); err != nil {
		return err
	}

	input, err := oneArg(fs, "input document")
	if err != nil {
		return err
	}

	e, err := common.setup(fs, stderr)
	if err != nil {
		return err
	}
	defer func() {
		err = e.finish(err)
	}()

	format, err := outputFormat(*flFormat, *flOut, e.cfg.Output.Format)
	if err != nil {
		return err
	}

	res, err := compileFile(common, e, input)
	if err != nil {
		return err
	}

	if err := e.settle(res.Diagnostics); err != nil {
		return err
	}

	out := *flOut
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + format.Extension()
	}

	if err := store.Save(ctx, out, format, res.Database); err != nil {
		return err
	}

	e.log.Infow("tables written", "path", out, "format", format, "rows", res.Database.Len())
	fmt.Fprintf(stdout, "%s: %d rows in %d tables\n", out, res.Database.Len(), len(res.Database.Tables()))

	return nil
}

// outputFormat picks the format from the flag, then the output extension,
// then the configuration.
func outputFormat(flagValue, out string, configured store.Format) (store.Format, error) {
	if flagValue != "" {
		f := store.Format(flagValue)
		if !f.IsValid() {
			return "", fmt.Errorf("%w: unknown format %q (want yaml or sqlite)", errUsage, flagValue)
		}

		return f, nil
	}

	if f, ok := store.FormatFor(out); ok {
		return f, nil
	}

	return configured, nil
}

func compileFile(common *commonFlags, e *env, input string) (*compiler.Result, error) {
	s, err := common.loadSchema()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", input, err)
	}
	defer f.Close()

	return compiler.New(s, e.log).CompileReader(f, input)
}
