package text

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFontLoadSucceedsOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake-font-bytes"))
	}))
	defer srv.Close()

	load := NewFontLoad(context.Background(), srv.Client(), 1, srv.URL)
	load.Wait()

	if load.State() != FontLoadReady {
		t.Fatalf("got state %v, want FontLoadReady", load.State())
	}
	src, err := load.Source()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(src.data) != "fake-font-bytes" {
		t.Fatalf("got %q", src.data)
	}
}

func TestFontLoadAcceptsRedirectAsSuccessfulRoute(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("redirected-bytes"))
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirector.Close()

	load := NewFontLoad(context.Background(), redirector.Client(), 1, redirector.URL)
	load.Wait()

	if load.State() != FontLoadReady {
		t.Fatalf("got state %v, want FontLoadReady", load.State())
	}
}

func TestFontLoadFailsOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	load := NewFontLoad(context.Background(), srv.Client(), 1, srv.URL)
	load.Wait()

	if load.State() != FontLoadFailed {
		t.Fatalf("got state %v, want FontLoadFailed", load.State())
	}
}

func TestFontLoadReleaseCancelsPendingLoad(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	defer close(block)

	load := NewFontLoad(context.Background(), srv.Client(), 1, srv.URL)
	load.AddRef()
	load.Release()
	if load.State() != FontLoadPending {
		t.Fatalf("expected load to still be pending after one of two refs released, got %v", load.State())
	}
	load.Release()

	select {
	case <-load.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cancellation to unblock the load")
	}
	if load.State() != FontLoadAborted {
		t.Fatalf("got state %v, want FontLoadAborted", load.State())
	}
}
