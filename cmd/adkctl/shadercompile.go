package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/naga"
)

// cmdletShaderCompile translates a GLSL/WGSL shader source file to its
// target-native compiled form via naga and writes the result alongside
// the input (spec.md §6 "CLI surface (commandlets)": "shader compiler").
func cmdletShaderCompile(args []string) error {
	fs := flag.NewFlagSet("shader-compile", flag.ContinueOnError)
	in := fs.String("in", "", "input shader source path")
	out := fs.String("out", "", "output compiled shader path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("shader-compile: -in is required")
	}

	src, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *in, err)
	}

	compiled, err := naga.Compile(string(src))
	if err != nil {
		return fmt.Errorf("compiling %s: %w", *in, err)
	}

	outPath := *out
	if outPath == "" {
		outPath = *in + ".compiled"
	}
	if err := os.WriteFile(outPath, compiled, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
