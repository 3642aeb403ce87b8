package cncbus

import (
	"sync"
	"testing"
)

func sendText(t *testing.T, bus *Bus, dest Address, mask Mask, text string) *Message {
	t.Helper()
	msg, ok := Begin(bus.Pool(), Header{Type: MsgTypeUTF8, DestAddr: dest, DestSubnet: mask})
	if !ok {
		t.Fatalf("Begin failed: pool exhausted")
	}
	if !msg.Write([]byte(text)) {
		t.Fatalf("Write failed: pool exhausted")
	}
	return msg
}

func TestBroadcastDeliversToAllReceivers(t *testing.T) {
	pool := NewPool(32)
	bus := NewBus(pool)

	var mu sync.Mutex
	received := map[Address]int{}
	record := func(addr Address) Handler {
		return func(msg *Message) {
			mu.Lock()
			received[addr]++
			mu.Unlock()
		}
	}

	r1 := bus.Connect(MakeAddress(1, 1, 1, 1), record(MakeAddress(1, 1, 1, 1)))
	r2 := bus.Connect(MakeAddress(2, 2, 2, 2), record(MakeAddress(2, 2, 2, 2)))
	defer bus.Disconnect(r1)
	defer bus.Disconnect(r2)

	msg := sendText(t, bus, Broadcast, MaskNone, "hello")
	matched := bus.Send(msg)
	if matched != 2 {
		t.Fatalf("matched = %d, want 2", matched)
	}

	for bus.Dispatch(DispatchFlush) == DispatchOK {
	}

	mu.Lock()
	defer mu.Unlock()
	if received[MakeAddress(1, 1, 1, 1)] != 1 || received[MakeAddress(2, 2, 2, 2)] != 1 {
		t.Fatalf("received = %v, want 1 each", received)
	}

	if got, want := pool.FreeCount(), pool.Total(); got != want {
		t.Fatalf("fragment pool not conserved: free=%d total=%d", got, want)
	}
}

func TestAddressMaskMatching(t *testing.T) {
	pool := NewPool(16)
	bus := NewBus(pool)

	var hits []Address
	var mu sync.Mutex
	mk := func(addr Address) Handler {
		return func(msg *Message) {
			mu.Lock()
			hits = append(hits, addr)
			mu.Unlock()
		}
	}

	inSubnet := MakeAddress(10, 0, 0, 5)
	outSubnet := MakeAddress(10, 0, 1, 5)
	r1 := bus.Connect(inSubnet, mk(inSubnet))
	r2 := bus.Connect(outSubnet, mk(outSubnet))
	defer bus.Disconnect(r1)
	defer bus.Disconnect(r2)

	mask := Mask(0xFFFFFF00) // match first 3 octets
	dest := MakeAddress(10, 0, 0, 1)
	msg := sendText(t, bus, dest, mask, "x")
	matched := bus.Send(msg)
	if matched != 1 {
		t.Fatalf("matched = %d, want 1", matched)
	}
	bus.Dispatch(DispatchFlush)

	mu.Lock()
	defer mu.Unlock()
	if len(hits) != 1 || hits[0] != inSubnet {
		t.Fatalf("hits = %v, want [%v]", hits, inSubnet)
	}
}

func TestMessageOrderingPerReceiver(t *testing.T) {
	pool := NewPool(64)
	bus := NewBus(pool)

	addr := MakeAddress(5, 5, 5, 5)
	var order []string
	var mu sync.Mutex
	r := bus.Connect(addr, func(msg *Message) {
		buf := make([]byte, msg.Size())
		msg.Read(buf)
		mu.Lock()
		order = append(order, string(buf))
		mu.Unlock()
	})
	defer bus.Disconnect(r)

	for _, s := range []string{"first", "second", "third"} {
		msg := sendText(t, bus, addr, MaskAll, s)
		bus.Send(msg)
	}

	for bus.Dispatch(DispatchFlush) == DispatchOK {
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestFragmentConservationAfterFlush(t *testing.T) {
	pool := NewPool(8)
	bus := NewBus(pool)

	addr := MakeAddress(9, 9, 9, 9)
	r := bus.Connect(addr, func(msg *Message) {})
	defer bus.Disconnect(r)

	for i := 0; i < 5; i++ {
		msg := sendText(t, bus, addr, MaskAll, "payload")
		bus.Send(msg)
	}
	for bus.Dispatch(DispatchFlush) == DispatchOK {
	}

	if got := pool.FreeCount(); got != pool.Total() {
		t.Fatalf("free = %d, want %d", got, pool.Total())
	}
}

func TestLogRecordRoundTrip(t *testing.T) {
	rec := LogRecord{
		EpochSeconds: 100,
		EpochMicros:  200,
		Tag:          MsgTypeLog,
		Func:         "drawFrame",
		File:         "canvas/context.go",
		Line:         42,
		Level:        LevelWarn,
		Text:         "clip stack overflow",
	}
	buf := EncodeLogRecord(rec)
	got, ok := DecodeLogRecord(buf)
	if !ok {
		t.Fatal("decode failed")
	}
	if got != rec {
		t.Fatalf("got %+v, want %+v", got, rec)
	}
}

func TestDisconnectDrainsWithoutBlockingOthers(t *testing.T) {
	pool := NewPool(16)
	bus := NewBus(pool)

	var delivered int
	var mu sync.Mutex
	survivor := bus.Connect(MakeAddress(1, 0, 0, 0), func(msg *Message) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})
	victim := bus.Connect(MakeAddress(2, 0, 0, 0), func(msg *Message) {})

	msg1 := sendText(t, bus, Broadcast, MaskNone, "a")
	bus.Send(msg1)

	bus.Disconnect(victim)

	msg2 := sendText(t, bus, Broadcast, MaskNone, "b")
	bus.Send(msg2)

	for bus.Dispatch(DispatchFlush) == DispatchOK {
	}
	bus.Disconnect(survivor)

	mu.Lock()
	defer mu.Unlock()
	if delivered != 2 {
		t.Fatalf("delivered = %d, want 2", delivered)
	}
	if got := pool.FreeCount(); got != pool.Total() {
		t.Fatalf("free = %d, want %d", got, pool.Total())
	}
}

func TestSendTwiceTraps(t *testing.T) {
	pool := NewPool(4)
	bus := NewBus(pool)
	r := bus.Connect(MakeAddress(1, 0, 0, 0), func(msg *Message) {})
	defer bus.Disconnect(r)

	msg := sendText(t, bus, Broadcast, MaskNone, "once")
	bus.Send(msg)

	defer func() {
		if recover() != ErrDoubleSend {
			t.Fatalf("expected ErrDoubleSend panic on double-send")
		}
	}()
	bus.Send(msg)
}
