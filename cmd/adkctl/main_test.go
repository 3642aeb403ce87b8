package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCmdletJSONDeflateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "asset.json")
	if err := os.WriteFile(in, []byte(`{"a":1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "asset.json.deflate")
	if err := cmdletJSONDeflate([]string{"-in", in, "-out", out}); err != nil {
		t.Fatalf("cmdletJSONDeflate: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestCmdletBIFExtractRequiresInput(t *testing.T) {
	if err := cmdletBIFExtract(nil); err == nil {
		t.Fatal("expected an error when -in is not supplied")
	}
}

func TestCmdletShaderCompileRequiresInput(t *testing.T) {
	if err := cmdletShaderCompile(nil); err == nil {
		t.Fatal("expected an error when -in is not supplied")
	}
}

func TestCmdletHTTPTestRequiresURL(t *testing.T) {
	if err := cmdletHTTPTest(nil); err == nil {
		t.Fatal("expected an error when -url is not supplied")
	}
}
