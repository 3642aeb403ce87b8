package canvas

import (
	"encoding/binary"
	"errors"
)

// pvrHeaderBytes is the fixed size of a PVR v3 container header
// (spec.md §6 "PVR container").
const pvrHeaderBytes = 52

// pvrMagicLE is the PVR v3 magic value; endianness is auto-detected by
// comparing the stored version field against this value byte-swapped
// (spec.md §6).
const pvrMagicLE uint32 = 0x03525650

// ErrPVRBadMagic, ErrPVRUnsupportedFormat, ErrPVRTruncated report PVR
// decode failures as sentinel errors (spec.md §7 "Protocol error").
var (
	ErrPVRBadMagic         = errors.New("pvr: bad magic / not a PVR v3 container")
	ErrPVRUnsupportedFormat = errors.New("pvr: only ETC1 pixel format is accepted")
	ErrPVRUnsupportedDepth  = errors.New("pvr: depth must be 1")
	ErrPVRTruncated         = errors.New("pvr: file shorter than header + metadata")
)

// pvrPixelFormatETC1 is the only accepted pixel_format value
// (spec.md §6 "Only pixel format = ETC1 is accepted").
const pvrPixelFormatETC1 = 6

// PVRImage is the result of decoding a PVR v3 ETC1 container: the
// decoded dimensions and a slice into the original buffer at the
// payload's offset, with no copy (spec.md §6 "zero-copy from memory").
type PVRImage struct {
	Width, Height int
	DataLen       int
	Data          []byte
}

// DecodePVR parses a 52-byte PVR v3 header from buf and returns a
// zero-copy view of its ETC1 payload (spec.md §6, §8 "PVR header").
func DecodePVR(buf []byte) (PVRImage, error) {
	if len(buf) < pvrHeaderBytes {
		return PVRImage{}, ErrPVRTruncated
	}

	order := binary.ByteOrder(binary.LittleEndian)
	version := binary.LittleEndian.Uint32(buf[0:4])
	if version != pvrMagicLE {
		swapped := binary.BigEndian.Uint32(buf[0:4])
		if swapped != pvrMagicLE {
			return PVRImage{}, ErrPVRBadMagic
		}
		order = binary.BigEndian
	}

	// flags := order.Uint32(buf[4:8])
	pixelFormatLo := order.Uint32(buf[8:12])
	pixelFormatHi := order.Uint32(buf[12:16])
	_ = pixelFormatHi // the high 32 bits distinguish compressed-format enums from packed four-CC formats; unused for ETC1
	// colorSpace := order.Uint32(buf[16:20])
	// channelType := order.Uint32(buf[20:24])
	height := order.Uint32(buf[24:28])
	width := order.Uint32(buf[28:32])
	depth := order.Uint32(buf[32:36])
	// numSurfaces := order.Uint32(buf[36:40])
	// numFaces := order.Uint32(buf[40:44])
	// mipmapCount := order.Uint32(buf[44:48])
	metadataSize := order.Uint32(buf[48:52])

	if pixelFormatLo != pvrPixelFormatETC1 {
		return PVRImage{}, ErrPVRUnsupportedFormat
	}
	if depth != 1 {
		return PVRImage{}, ErrPVRUnsupportedDepth
	}

	offset := pvrHeaderBytes + int(metadataSize)
	if offset > len(buf) {
		return PVRImage{}, ErrPVRTruncated
	}

	const etc1BlockBytes = 8
	dataLen := CompressedDataLen(int(width), int(height), etc1BlockBytes)
	if offset+dataLen > len(buf) {
		return PVRImage{}, ErrPVRTruncated
	}

	return PVRImage{
		Width:   int(width),
		Height:  int(height),
		DataLen: dataLen,
		Data:    buf[offset : offset+dataLen],
	}, nil
}

// CompressedDataLen computes the byte length of compressed image data
// for a w x h image: ceil(w/4)*ceil(h/4)*bytes_per_block (spec.md §6).
// Duplicated from device.CompressedDataLen rather than imported, since
// canvas does not depend on device (see mesh.go).
func CompressedDataLen(w, h, blockBytes int) int {
	bw := (w + 3) / 4
	bh := (h + 3) / 4
	return bw * bh * blockBytes
}
