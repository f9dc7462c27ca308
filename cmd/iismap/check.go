package main

import (
	"context"
	"fmt"
	"io"
)

func runCheck(_ context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := newFlagSet("check", stderr)
	common := registerCommon(fs)

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

	res, err := compileFile(common, e, input)
	if err != nil {
		return err
	}

	if err := e.settle(res.Diagnostics); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: ok, %d rows, %d warning(s)\n", input, res.Database.Len(), len(res.Diagnostics.Warnings))

	return nil
}
