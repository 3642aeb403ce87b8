package device

import (
	"encoding/binary"
	"math"
	"testing"
	"time"
)

func newTestDevice(t *testing.T) (*Device, *SoftwareRHI) {
	t.Helper()
	rhi := NewSoftwareRHI()
	d, err := Create(rhi, Config{NumCmdBuffers: 4, CmdBufSize: 256, MaxThreads: 2, MaxPendingFrames: 2, Tag: "test"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(d.Quit)
	return d, rhi
}

func encodeClear(r, g, b, a float32) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(r))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(b))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(a))
	return buf
}

func TestCommandBufferRoundTrip(t *testing.T) {
	d, _ := newTestDevice(t)
	buf := d.GetCmdBuf(Wait)
	if buf == nil {
		t.Fatal("expected a free command buffer")
	}
	payload := encodeClear(1, 0, 0, 1)
	if !buf.WriteCommand(OpClear, payload) {
		t.Fatal("WriteCommand failed to fit a small payload")
	}
	cmds := buf.Commands()
	if len(cmds) != 1 {
		t.Fatalf("expected 1 decoded command, got %d", len(cmds))
	}
	if cmds[0].Op != OpClear {
		t.Fatalf("expected OpClear, got %v", cmds[0].Op)
	}
	if len(cmds[0].Payload) != len(payload) {
		t.Fatalf("payload length mismatch: got %d want %d", len(cmds[0].Payload), len(payload))
	}
}

func TestFenceRetirementOrdering(t *testing.T) {
	d, rhi := newTestDevice(t)
	stream := d.NewCommandStream(Ordered, true)

	var fences []Fence
	for i := 0; i < 5; i++ {
		stream.WriteChecked(OpClear, encodeClear(0, 0, 0, 1))
		stream.Flush()
		fences = append(fences, stream.Fence())
	}

	for i, f := range fences {
		d.WaitFence(f)
		if !d.CheckFence(f) {
			t.Fatalf("fence %d should have retired after WaitFence", i)
		}
	}
	// A fence for a later submission implies all earlier ones retired too.
	if !d.CheckFence(fences[0]) {
		t.Fatal("earliest fence should still read as retired")
	}
	if rhi.Clears != 5 {
		t.Fatalf("expected 5 clears executed, got %d", rhi.Clears)
	}
}

func TestResourceNotDestroyedBeforeFenceRetires(t *testing.T) {
	d, rhi := newTestDevice(t)
	th, err := rhi.CreateTexture(ImageMips{Width: 4, Height: 4, Format: FormatRGBA8Unorm, Levels: [][]byte{make([]byte, 64)}}, FormatRGBA8Unorm, Sampler{})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	res := d.NewResource(KindTexture, "test-tex", uint64(th))

	stream := d.NewCommandStream(Unordered, true)
	stream.WriteChecked(OpDraw, encodeDrawPayload(PrimitiveTriangles, 3))
	stream.Flush()
	res.SetLastUse(stream.Fence())

	res.Release()

	// Before the fence retires, the resource must still be live.
	if _, ok := rhi.Textures[th]; !ok {
		t.Fatal("texture destroyed before its last-use fence retired")
	}

	d.WaitFence(res.LastUse())
	deadline := time.After(time.Second)
	for {
		d.drainPendingDestroys()
		if _, ok := rhi.Textures[th]; !ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("texture was never destroyed after its fence retired")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func encodeDrawPayload(mode PrimitiveMode, count int) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(mode))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(count))
	return buf
}

func TestGetCmdBufReturnsNilAfterQuitInsteadOfHanging(t *testing.T) {
	rhi := NewSoftwareRHI()
	d, err := Create(rhi, Config{NumCmdBuffers: 2, CmdBufSize: 256, MaxThreads: 1, MaxPendingFrames: 2, Tag: "test"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Exhaust both buffers: the default stream latched one at Create, and
	// held takes the other.
	held := d.GetCmdBuf(Wait)
	if held == nil {
		t.Fatal("expected the second buffer to be available")
	}

	d.Quit()

	if err := d.Err(); err != ErrDeviceStopped {
		t.Fatalf("got %v, want ErrDeviceStopped", err)
	}

	done := make(chan *CommandBuffer, 1)
	go func() { done <- d.GetCmdBuf(Wait) }()

	select {
	case buf := <-done:
		if buf != nil {
			t.Fatalf("expected nil after Quit with no buffers free, got %v", buf)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("GetCmdBuf(Wait) hung after Quit instead of returning nil")
	}
}
