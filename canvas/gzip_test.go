package canvas

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestInflateBoundedRoundTrips(t *testing.T) {
	want := []byte("hello from a bundled asset")
	got, err := InflateBounded(gzipBytes(t, want), 0)
	if err != nil {
		t.Fatalf("InflateBounded: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInflateBoundedRejectsOversizedPayload(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1024)
	_, err := InflateBounded(gzipBytes(t, payload), 16)
	if err != ErrGzipWorkingSpaceExceeded {
		t.Fatalf("err = %v, want ErrGzipWorkingSpaceExceeded", err)
	}
}

func TestInflateBoundedRejectsGarbageInput(t *testing.T) {
	if _, err := InflateBounded([]byte("not gzip"), 0); err == nil {
		t.Fatal("expected an error for a non-gzip payload")
	}
}
