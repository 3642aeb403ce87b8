package canvas

import (
	"encoding/binary"
	"errors"
)

// bifMagic is the fixed 8-byte BIF container signature.
var bifMagic = [8]byte{0x89, 'B', 'I', 'F', 0x0d, 0x0a, 0x1a, 0x0a}

const bifHeaderBytes = 64 // magic(8) + version(4) + numImages(4) + tsMultiplier(4) + reserved(44)

// ErrBIFBadMagic, ErrBIFTruncated, ErrBIFIndexOutOfRange report BIF
// decode failures (spec.md §3 "Image": "BIF sprite-sheet decoding
// coordination").
var (
	ErrBIFBadMagic        = errors.New("bif: bad magic / not a BIF container")
	ErrBIFTruncated       = errors.New("bif: file shorter than its declared index")
	ErrBIFIndexOutOfRange = errors.New("bif: frame index out of range")
)

// BIFIndexEntry is one sprite-sheet frame's timestamp and byte offset.
type BIFIndexEntry struct {
	TimestampMultiplier uint32
	Offset              uint32
}

// BIFFile is a parsed BIF sprite-sheet header: the decoded frame index
// plus a reference to the underlying buffer for zero-copy frame
// extraction.
type BIFFile struct {
	Version    uint32
	NumImages  uint32
	Multiplier uint32
	Index      []BIFIndexEntry // length NumImages+1; the final entry is the end-of-file sentinel
	buf        []byte
}

// ParseBIF parses a BIF container's header and frame index.
func ParseBIF(buf []byte) (*BIFFile, error) {
	if len(buf) < bifHeaderBytes {
		return nil, ErrBIFTruncated
	}
	var magic [8]byte
	copy(magic[:], buf[0:8])
	if magic != bifMagic {
		return nil, ErrBIFBadMagic
	}

	version := binary.LittleEndian.Uint32(buf[8:12])
	numImages := binary.LittleEndian.Uint32(buf[12:16])
	multiplier := binary.LittleEndian.Uint32(buf[16:20])

	indexStart := bifHeaderBytes
	indexEntries := int(numImages) + 1
	indexEnd := indexStart + indexEntries*8
	if indexEnd > len(buf) {
		return nil, ErrBIFTruncated
	}

	index := make([]BIFIndexEntry, indexEntries)
	for i := 0; i < indexEntries; i++ {
		off := indexStart + i*8
		index[i] = BIFIndexEntry{
			TimestampMultiplier: binary.LittleEndian.Uint32(buf[off : off+4]),
			Offset:              binary.LittleEndian.Uint32(buf[off+4 : off+8]),
		}
	}

	return &BIFFile{Version: version, NumImages: numImages, Multiplier: multiplier, Index: index, buf: buf}, nil
}

// FrameBytes returns a zero-copy view of frame i's encoded image bytes
// (spec.md §3 "BIF sprite-sheet state": "target frame index, decoded
// frame index").
func (f *BIFFile) FrameBytes(i int) ([]byte, error) {
	if i < 0 || i >= int(f.NumImages) {
		return nil, ErrBIFIndexOutOfRange
	}
	start := f.Index[i].Offset
	end := f.Index[i+1].Offset
	if int(end) > len(f.buf) || start > end {
		return nil, ErrBIFTruncated
	}
	return f.buf[start:end], nil
}
