package main

import (
	"bytes"
	"compress/flate"
	"flag"
	"fmt"
	"io"
	"os"
)

// cmdletJSONDeflate deflates a JSON asset for bundle packaging, writing
// the result to -out (default: the input path plus ".deflate")
// (spec.md §6 "CLI surface (commandlets)": "json deflator").
func cmdletJSONDeflate(args []string) error {
	fs := flag.NewFlagSet("json-deflate", flag.ContinueOnError)
	in := fs.String("in", "", "input JSON path")
	out := fs.String("out", "", "output deflated path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("json-deflate: -in is required")
	}

	src, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *in, err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(src)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = *in + ".deflate"
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}
