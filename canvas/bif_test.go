package canvas

import (
	"encoding/binary"
	"testing"
)

// buildBIFSimple constructs a well-formed BIF buffer with exact offsets.
func buildBIFSimple(frames [][]byte) []byte {
	numImages := len(frames)
	indexEntries := numImages + 1
	dataStart := bifHeaderBytes + indexEntries*8

	offsets := make([]uint32, indexEntries)
	cur := dataStart
	for i, f := range frames {
		offsets[i] = uint32(cur)
		cur += len(f)
	}
	offsets[numImages] = uint32(cur)

	buf := make([]byte, cur)
	copy(buf[0:8], bifMagic[:])
	binary.LittleEndian.PutUint32(buf[8:12], 0)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(numImages))
	binary.LittleEndian.PutUint32(buf[16:20], 1000)

	for i := 0; i < indexEntries; i++ {
		off := bifHeaderBytes + i*8
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(i*1000))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], offsets[i])
	}

	pos := dataStart
	for _, f := range frames {
		copy(buf[pos:pos+len(f)], f)
		pos += len(f)
	}
	return buf
}

func TestParseBIFAndExtractFrames(t *testing.T) {
	frames := [][]byte{
		{0xFF, 0xD8, 0x01, 0x02},
		{0xFF, 0xD8, 0x03, 0x04, 0x05},
	}
	buf := buildBIFSimple(frames)

	bif, err := ParseBIF(buf)
	if err != nil {
		t.Fatalf("ParseBIF: %v", err)
	}
	if int(bif.NumImages) != len(frames) {
		t.Fatalf("got %d images, want %d", bif.NumImages, len(frames))
	}

	for i, want := range frames {
		got, err := bif.FrameBytes(i)
		if err != nil {
			t.Fatalf("FrameBytes(%d): %v", i, err)
		}
		if len(got) != len(want) {
			t.Fatalf("frame %d: got %d bytes, want %d", i, len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("frame %d byte %d: got %x, want %x", i, j, got[j], want[j])
			}
		}
	}
}

func TestParseBIFRejectsBadMagic(t *testing.T) {
	buf := buildBIFSimple([][]byte{{1, 2, 3}})
	buf[0] = 0x00
	if _, err := ParseBIF(buf); err != ErrBIFBadMagic {
		t.Fatalf("got %v, want ErrBIFBadMagic", err)
	}
}

func TestFrameBytesRejectsOutOfRange(t *testing.T) {
	buf := buildBIFSimple([][]byte{{1, 2, 3}})
	bif, err := ParseBIF(buf)
	if err != nil {
		t.Fatalf("ParseBIF: %v", err)
	}
	if _, err := bif.FrameBytes(5); err != ErrBIFIndexOutOfRange {
		t.Fatalf("got %v, want ErrBIFIndexOutOfRange", err)
	}
}
