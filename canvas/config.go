package canvas

// Config enumerates the canvas engine's tunables (spec.md §6
// "Configuration"). Options are a fixed enumerated set, not free-form key
// paths, matching the rest of the ADK's configuration surface.
type Config struct {
	// MaxStates bounds the save/restore state stack depth.
	MaxStates int

	// MaxTessellationSteps upper-bounds arc and Bézier tessellation.
	MaxTessellationSteps int

	// FontAtlasWidth, FontAtlasHeight size the glyph atlas; zero means
	// "use the virtual display size" (resolved by the caller).
	FontAtlasWidth, FontAtlasHeight int

	// TextMeshCacheEnabled toggles the text-mesh memoization cache.
	TextMeshCacheEnabled bool
	// TextMeshCacheSize is the memoization cache's recency-list capacity.
	TextMeshCacheSize int

	// GzipWorkingSpace bounds how many decompressed bytes InflateBounded
	// will accept from a single gzip-wrapped bundle entry. Zero means
	// unbounded.
	GzipWorkingSpace int

	// PunchthroughBlendModeFix coerces BlitVideoFrame's background draw
	// to BlendSourceAlphaRGB while a video texture is active, working
	// around platform video-overlay compositors that punch a hole through
	// the destination alpha channel (spec.md §6 "Configuration":
	// "enable_punchthrough_blend_mode_fix").
	PunchthroughBlendModeFix bool
}

// DefaultConfig returns reasonable defaults for a constrained set-top
// class device.
func DefaultConfig() Config {
	return Config{
		MaxStates:            16,
		MaxTessellationSteps: 64,
		TextMeshCacheEnabled: true,
		TextMeshCacheSize:    256,
		GzipWorkingSpace:     4 << 20,
	}
}
