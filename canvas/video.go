package canvas

// VideoFrame is the contract consumed from the external video service:
// the core composites it but does not decode or manage it (spec.md §1
// "Video texture and subtitle composition — specified only as the
// consumed frame contract").
type VideoFrame struct {
	HasLuma, HasChroma bool
	TextureY, TextureUV TextureRef
	HDR                bool
}

// SubtitleFrame is the contract consumed for subtitle compositing.
type SubtitleFrame struct {
	Active       bool
	CoversRect   bool // true if the subtitle fully covers the video rect
	Texture      TextureRef
	BlendNotBlit bool // false = blit (opaque replace), true = alpha blend
}

// TextureRef mirrors device.TextureHandle's underlying type without
// importing the device package, keeping canvas decoupled from the
// render device's Go package boundary the same way it's decoupled from
// RHI specifics (spec.md §1 treats RHI as an external collaborator).
type TextureRef uint64

// BlitVideoFrame composites video, according to spec.md §4.2
// "Video composition": if the subtitle fully covers the video rect and
// there is no active luma/chroma, the punch-through background draw is
// skipped; otherwise a rect is drawn with alpha=fillAlpha (textured) or
// alpha=0 (punch-through), then the subtitle is blended or blitted
// depending on whether a video texture was present.
func BlitVideoFrame(video VideoFrame, sub SubtitleFrame, fillAlpha float32) []DrawOp {
	var ops []DrawOp

	hasVideoTexture := video.HasLuma || video.HasChroma
	skipBackground := sub.Active && sub.CoversRect && !hasVideoTexture

	if !skipBackground {
		alpha := float32(0)
		if hasVideoTexture {
			alpha = fillAlpha
		}
		shader := ShaderSelection{IsVideo: true, VideoHDR: video.HDR}.Select()
		ops = append(ops, DrawOp{Kind: DrawVideoBackground, Shader: shader, Alpha: alpha})
	}

	if sub.Active {
		kind := DrawSubtitleBlit
		if hasVideoTexture && sub.BlendNotBlit {
			kind = DrawSubtitleBlend
		}
		ops = append(ops, DrawOp{Kind: kind, Shader: ShaderColor, Alpha: 1})
	}
	return ops
}

// DrawOpKind tags one element of a composited draw plan.
type DrawOpKind int

const (
	DrawVideoBackground DrawOpKind = iota
	DrawSubtitleBlend
	DrawSubtitleBlit
)

// DrawOp is one step of a composited draw plan, returned by
// BlitVideoFrame so callers can submit it through their own command
// stream without this package depending on device.CommandStream. Blend
// is resolved per-op since the background and subtitle draws can need
// different blend modes for the same frame.
type DrawOp struct {
	Kind   DrawOpKind
	Shader Shader
	Alpha  float32
	Blend  BlendMode
	Mesh   Mesh
}

// BlitVideoFrame composites video and subtitle over rect, binding the
// current global alpha and (spec.md §6) enable_punchthrough_blend_mode_fix
// config into each returned DrawOp's Blend field (spec.md §4.2 "Video
// composition"). The fix is resolved per-op rather than pushed onto
// canvas state, since it applies only to the background draw and only
// while a video texture is active, not to the canvas's saved blend mode.
func (c *Canvas) BlitVideoFrame(rect Rect, video VideoFrame, sub SubtitleFrame) []DrawOp {
	top := c.states.Top()
	ops := BlitVideoFrame(video, sub, top.globalAlpha)
	hasVideoTexture := video.HasLuma || video.HasChroma
	quad := c.quadMesh(rect, [4]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, top.globalAlpha)

	for i := range ops {
		switch ops[i].Kind {
		case DrawVideoBackground:
			ops[i].Blend = c.VideoBlendMode(hasVideoTexture)
			ops[i].Mesh = quad
		case DrawSubtitleBlit:
			ops[i].Blend = BlendBlit
			ops[i].Mesh = quad
		default:
			ops[i].Blend = top.blend
			ops[i].Mesh = quad
		}
	}
	return ops
}

// VideoBlendMode reports which BlendMode a DrawVideoBackground op should
// bind given cfg's punchthrough fix and whether a video texture is bound
// (spec.md §6 "enable_punchthrough_blend_mode_fix: when true, coerces
// blend mode to source-alpha RGB while a video texture is active").
func (c *Canvas) VideoBlendMode(hasVideoTexture bool) BlendMode {
	if c.cfg.PunchthroughBlendModeFix && hasVideoTexture {
		return BlendSourceAlphaRGB
	}
	return c.states.Top().blend
}
