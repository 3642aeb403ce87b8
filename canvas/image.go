package canvas

import "sync/atomic"

// ImageTextures holds an image's GPU-side texture handles: a color
// texture, and optionally a second alpha-mask texture sampled by
// draw_image_rect_alpha_mask (spec.md §3 "Image": "one or two GPU
// textures (color + optional alpha mask)"). A zero TextureRef means that
// slot isn't bound yet.
type ImageTextures struct {
	Color     TextureRef
	AlphaMask TextureRef
}

// PlayState is the image's animation transport state, independent of
// frame timing (spec.md §3 "Image": "animation state (stopped|running|
// restart)").
type PlayState int32

const (
	PlayStopped PlayState = iota
	PlayRunning
	PlayRestart
)

// AnimationKind tags which of GIF or BIF shape an Image's AnimationState
// carries, per spec.md §3's "tagged union instead of vtables" convention
// (see device/types.go ResourceKind for the same pattern).
type AnimationKind int

const (
	AnimationNone AnimationKind = iota
	AnimationGIF
	AnimationBIF
)

// GIFAnimation is an animated GIF's frame-timing state: the decoded
// frame's prev/next chain, per-frame delays, and the cursor into the
// asynchronous background decode (spec.md §3 "optional animated-GIF
// state (prev/next chain, frame durations, async decode cursor)").
type GIFAnimation struct {
	PrevFrame, NextFrame int
	DelaysMillis         []int
	FrameIndex           int
	ElapsedMs            int64
	// DecodeCursor is the byte (or frame) offset the background decoder
	// has reached; frames beyond it are not yet available to display.
	DecodeCursor int
}

// BIFAnimation is a BIF sprite-sheet scrub track's state: the frame the
// caller last requested versus the frame actually decoded and ready to
// display (spec.md §3 "BIF sprite-sheet state (target frame index,
// decoded frame index)").
type BIFAnimation struct {
	TargetFrameIndex  int
	DecodedFrameIndex int
}

// AnimationState holds the per-frame timing for an animated image,
// shaped as a GIF or BIF track depending on Kind; the other field is
// left zero-valued (spec.md §3 "Image").
type AnimationState struct {
	Kind      AnimationKind
	GIF       GIFAnimation
	BIF       BIFAnimation
	FrameCount int
}

// Advance steps a GIF animation's frame index by elapsedMs, wrapping at
// FrameCount. No-op for BIF tracks, which advance by explicit Seek calls
// instead of wall-clock time, and for a zero-length delay table.
func (a *AnimationState) Advance(elapsedMs int64) {
	if a.Kind != AnimationGIF || a.FrameCount == 0 || len(a.GIF.DelaysMillis) == 0 {
		return
	}
	g := &a.GIF
	g.ElapsedMs += elapsedMs
	for {
		d := int64(g.DelaysMillis[g.FrameIndex%len(g.DelaysMillis)])
		if d <= 0 || g.ElapsedMs < d {
			break
		}
		g.ElapsedMs -= d
		g.PrevFrame = g.FrameIndex
		g.FrameIndex = (g.FrameIndex + 1) % a.FrameCount
		g.NextFrame = (g.FrameIndex + 1) % a.FrameCount
	}
}

// Seek requests BIF frame index target; the decoded frame catches up
// asynchronously as the background decoder produces it (spec.md §3 "BIF
// sprite-sheet state").
func (a *AnimationState) Seek(target int) {
	if a.Kind != AnimationBIF {
		return
	}
	a.BIF.TargetFrameIndex = target
}

// Image is a decoded pixel buffer allocation plus its GPU-side
// textures, source descriptor, and animation state (spec.md §3 "Image").
// The decoders themselves (GIF/BIF/PVR/screenshot formats) are external
// collaborators from this package's point of view; Image only tracks the
// lifecycle and state those decoders drive.
type Image struct {
	Width, Height int
	Textures      ImageTextures
	FrameCount    int

	status atomic.Int32 // Status, packed
	play   atomic.Int32 // PlayState, packed

	// Animation holds GIF/BIF frame timing; nil for static images.
	Animation *AnimationState
}

// NewImage constructs a pending image of the given pixel dimensions.
func NewImage(w, h int) *Image {
	img := &Image{Width: w, Height: h}
	img.status.Store(int32(StatusPending))
	return img
}

// Status returns the image's current load status: pending, one of the
// granular failure kinds, or StatusOK once the decode/upload completed
// (spec.md §3 "load status").
func (img *Image) Status() Status { return Status(img.status.Load()) }

// MarkReady transitions a pending image to StatusOK, unless it was
// aborted in the meantime (spec.md §4.3 "cancellation sets aborted so
// that the completion path frees rather than installs the file").
func (img *Image) MarkReady() bool {
	return img.status.CompareAndSwap(int32(StatusPending), int32(StatusOK))
}

// MarkFailed transitions a pending image to the given failure status,
// which must not be StatusOK or StatusPending.
func (img *Image) MarkFailed(reason Status) bool {
	return img.status.CompareAndSwap(int32(StatusPending), int32(reason))
}

// Abort marks an in-flight load as aborted.
func (img *Image) Abort() {
	img.status.CompareAndSwap(int32(StatusPending), int32(StatusAborted))
}

// Play returns the image's current animation transport state.
func (img *Image) Play() PlayState { return PlayState(img.play.Load()) }

// SetPlay sets the animation transport state (spec.md §3 "animation
// state (stopped|running|restart)"). Setting PlayRestart also rewinds
// the frame-timing state to frame zero.
func (img *Image) SetPlay(p PlayState) {
	img.play.Store(int32(p))
	if p == PlayRestart && img.Animation != nil {
		switch img.Animation.Kind {
		case AnimationGIF:
			img.Animation.GIF = GIFAnimation{DelaysMillis: img.Animation.GIF.DelaysMillis}
		case AnimationBIF:
			img.Animation.BIF = BIFAnimation{}
		}
	}
}
