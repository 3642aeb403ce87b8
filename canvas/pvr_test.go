package canvas

import (
	"encoding/binary"
	"testing"
)

func buildPVR(t *testing.T, width, height uint32, metadataSize uint32, payload []byte) []byte {
	t.Helper()
	buf := make([]byte, pvrHeaderBytes+int(metadataSize)+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], pvrMagicLE)
	binary.LittleEndian.PutUint32(buf[8:12], pvrPixelFormatETC1)
	binary.LittleEndian.PutUint32(buf[24:28], height)
	binary.LittleEndian.PutUint32(buf[28:32], width)
	binary.LittleEndian.PutUint32(buf[32:36], 1) // depth
	binary.LittleEndian.PutUint32(buf[48:52], metadataSize)
	copy(buf[pvrHeaderBytes+int(metadataSize):], payload)
	return buf
}

func TestDecodePVR_ETC1_8x8(t *testing.T) {
	payload := make([]byte, 16) // ceil(8/4)*ceil(8/4)*8 = 2*2*8 = 32... see below
	// 8x8 at 4x4 blocks: ceil(8/4)=2 each axis -> 2*2*8 = 32 bytes expected.
	payload = make([]byte, 32)
	buf := buildPVR(t, 8, 8, 0, payload)

	img, err := DecodePVR(buf)
	if err != nil {
		t.Fatalf("DecodePVR: %v", err)
	}
	if img.Width != 8 || img.Height != 8 {
		t.Fatalf("expected 8x8, got %dx%d", img.Width, img.Height)
	}
	wantLen := 32
	if img.DataLen != wantLen {
		t.Fatalf("expected data_len=%d, got %d", wantLen, img.DataLen)
	}
	if &img.Data[0] != &buf[pvrHeaderBytes] {
		t.Fatal("expected zero-copy view starting at offset 52")
	}
}

func TestDecodePVR_RejectsNonETC1(t *testing.T) {
	buf := buildPVR(t, 8, 8, 0, make([]byte, 32))
	binary.LittleEndian.PutUint32(buf[8:12], 99)
	if _, err := DecodePVR(buf); err != ErrPVRUnsupportedFormat {
		t.Fatalf("expected ErrPVRUnsupportedFormat, got %v", err)
	}
}

func TestDecodePVR_MetadataOffset(t *testing.T) {
	buf := buildPVR(t, 8, 8, 10, make([]byte, 32))
	img, err := DecodePVR(buf)
	if err != nil {
		t.Fatalf("DecodePVR: %v", err)
	}
	if &img.Data[0] != &buf[pvrHeaderBytes+10] {
		t.Fatal("expected data offset at 52 + metadata_size")
	}
}
