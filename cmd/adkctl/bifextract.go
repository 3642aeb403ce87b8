package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/adkcanvas/canvas"
)

// cmdletBIFExtract pulls one or all frames out of a BIF sprite-sheet
// file, writing each as a standalone JPEG (spec.md §3 "Image": "BIF
// sprite-sheet state").
func cmdletBIFExtract(args []string) error {
	fs := flag.NewFlagSet("bif-extract", flag.ContinueOnError)
	in := fs.String("in", "", "input .bif path")
	outDir := fs.String("out-dir", ".", "directory to write extracted frames into")
	frame := fs.Int("frame", -1, "single frame index to extract; -1 extracts all frames")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("bif-extract: -in is required")
	}

	buf, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *in, err)
	}

	bif, err := canvas.ParseBIF(buf)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", *in, err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", *outDir, err)
	}

	base := filepath.Base(*in)

	write := func(i int) error {
		data, err := bif.FrameBytes(i)
		if err != nil {
			return err
		}
		path := filepath.Join(*outDir, fmt.Sprintf("%s.frame%04d.jpg", base, i))
		return os.WriteFile(path, data, 0o644)
	}

	if *frame >= 0 {
		return write(*frame)
	}
	for i := 0; i < int(bif.NumImages); i++ {
		if err := write(i); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}
