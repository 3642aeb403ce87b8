package text

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// FontLoadState mirrors canvas.Image's load-status shape for an in-flight
// font fetch (spec.md §4.3 font binding: "an async font load carries an
// in-flight state with a reference count; cancellation sets aborted").
type FontLoadState int32

const (
	FontLoadPending FontLoadState = iota
	FontLoadReady
	FontLoadFailed
	FontLoadAborted
)

// ErrFontFetchStatus reports an HTTP response outside the accepted
// success/redirect range (spec.md §4.3: "2xx and 3xx are accepted;
// anything else fails the load").
var ErrFontFetchStatus = errors.New("fontnetwork: unacceptable HTTP status")

// FontLoad tracks one async font fetch: a reference count (one per
// pending draw call that requested this font) and a cancellable
// in-flight state.
type FontLoad struct {
	URL string

	state   atomic.Int32
	refs    atomic.Int32
	cancel  context.CancelFunc
	done    chan struct{}
	source  *FontSource
	loadErr error
}

// NewFontLoad starts an async fetch of url, tagging the resulting
// FontSource with id. The fetch runs on its own goroutine; callers poll
// State() or block on Wait().
func NewFontLoad(ctx context.Context, client *http.Client, id uint64, url string) *FontLoad {
	ctx, cancel := context.WithCancel(ctx)
	l := &FontLoad{URL: url, cancel: cancel, done: make(chan struct{})}
	l.refs.Store(1)

	go l.run(ctx, client, id)
	return l
}

func (l *FontLoad) run(ctx context.Context, client *http.Client, id uint64) {
	defer close(l.done)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		l.fail(err)
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			l.state.Store(int32(FontLoadAborted))
			return
		}
		l.fail(err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		l.fail(fmt.Errorf("%w: %d", ErrFontFetchStatus, resp.StatusCode))
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		l.fail(err)
		return
	}

	l.source = NewFontSource(id, data)
	l.state.Store(int32(FontLoadReady))
}

func (l *FontLoad) fail(err error) {
	l.loadErr = err
	l.state.Store(int32(FontLoadFailed))
}

// State returns the load's current status.
func (l *FontLoad) State() FontLoadState { return FontLoadState(l.state.Load()) }

// Wait blocks until the load reaches a terminal state.
func (l *FontLoad) Wait() {
	<-l.done
}

// Source returns the loaded font source and any terminal error.
func (l *FontLoad) Source() (*FontSource, error) {
	return l.source, l.loadErr
}

// AddRef registers another caller depending on this in-flight load.
func (l *FontLoad) AddRef() { l.refs.Add(1) }

// Release drops a reference; once the count reaches zero the load is
// cancelled if still pending (spec.md §4.3: "cancellation sets
// aborted").
func (l *FontLoad) Release() {
	if l.refs.Add(-1) > 0 {
		return
	}
	if l.State() == FontLoadPending {
		l.cancel()
	}
}
