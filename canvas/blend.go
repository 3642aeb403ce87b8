package canvas

// BlendMode selects how fill/stroke output composites with the render
// target; it is one input to shader selection alongside texture and
// alpha-mask bindings (spec.md §3 "Canvas state": "source-alpha RGB-only,
// source-alpha all channels, blit, alpha-test").
type BlendMode int

const (
	// BlendSourceAlphaRGB blends the RGB channels by source alpha and
	// leaves the destination alpha channel untouched — the mode
	// enable_punchthrough_blend_mode_fix coerces into while a video
	// texture is bound (spec.md §6 "Configuration").
	BlendSourceAlphaRGB BlendMode = iota
	// BlendSourceAlphaAll blends all four channels by source alpha.
	BlendSourceAlphaAll
	// BlendBlit replaces the destination outright (bound for subtitle
	// blits, spec.md §4.2 "Video composition").
	BlendBlit
	// BlendAlphaTest discards fragments below the bound alpha-test
	// threshold instead of blending (spec.md §3 "alpha-test threshold").
	BlendAlphaTest
)

// Shader identifies which fragment shader a draw call binds, chosen from
// the current blend mode plus optional texture/alpha-mask/SDF state
// (spec.md §4.2 "Shader selection").
type Shader int

const (
	ShaderColor Shader = iota
	ShaderColorAlphaTest
	ShaderColorAlphaMask
	ShaderSDFRoundedRect
	ShaderSDFRoundedRectBorder
	ShaderVideoSDR
	ShaderVideoHDR
)

// ShaderSelection bundles the inputs that pick a Shader, and the chosen
// result, so callers can both compute and inspect the decision.
type ShaderSelection struct {
	HasTexture    bool
	HasAlphaMask  bool
	HasAlphaTest  bool
	AlphaTestMin  float32
	SDFRounded    bool
	SDFBordered   bool
	VideoHDR      bool
	IsVideo       bool
}

// Select resolves sel to a concrete Shader.
func (sel ShaderSelection) Select() Shader {
	switch {
	case sel.IsVideo && sel.VideoHDR:
		return ShaderVideoHDR
	case sel.IsVideo:
		return ShaderVideoSDR
	case sel.SDFRounded && sel.SDFBordered:
		return ShaderSDFRoundedRectBorder
	case sel.SDFRounded:
		return ShaderSDFRoundedRect
	case sel.HasAlphaMask:
		return ShaderColorAlphaMask
	case sel.HasAlphaTest:
		return ShaderColorAlphaTest
	default:
		return ShaderColor
	}
}
