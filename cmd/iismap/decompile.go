package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/clbanning/mxj"

	"iismap/internal/decompiler"
	"iismap/internal/store"
	"iismap/internal/xmltree"
)

func runDecompile(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := newFlagSet("decompile", stderr)
	common := registerCommon(fs)

	var (
		flOut  = fs.String("o", "", "output file (default: stdout)")
		flJSON = fs.Bool("json", false, "write the document as JSON instead of XML")
	)

	if err := parse(fs, args); err != nil {
		return err
	}

	input, err := oneArg(fs, "table file (.yaml or .db)")
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

	db, err := store.Load(ctx, input)
	if err != nil {
		return err
	}

	res := decompiler.New(e.log).Decompile(db)

	if err := e.settle(res.Diagnostics); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := xmltree.Write(&buf, res.Root); err != nil {
		return err
	}

	data := buf.Bytes()

	if *flJSON {
		if data, err = toJSON(data); err != nil {
			return err
		}
	}

	if *flOut == "" {
		_, err = stdout.Write(data)
		return err
	}

	if err := os.WriteFile(*flOut, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *flOut, err)
	}

	e.log.Infow("document written", "path", *flOut, "rows", db.Len())

	return nil
}

// toJSON converts an XML document into indented JSON. Attributes become
// "-Name" keys and repeated elements become arrays.
func toJSON(xmlData []byte) ([]byte, error) {
	mv, err := mxj.NewMapXml(xmlData)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	out, err := mv.JsonIndent("", "  ")
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	return append(out, '\n'), nil
}
