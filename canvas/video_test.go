package canvas

import "testing"

func TestBlitVideoFrameSkipsBackgroundWhenSubtitleCoversEmptyVideo(t *testing.T) {
	ops := BlitVideoFrame(
		VideoFrame{},
		SubtitleFrame{Active: true, CoversRect: true},
		1,
	)
	for _, op := range ops {
		if op.Kind == DrawVideoBackground {
			t.Fatalf("expected no background op when subtitle covers an empty video frame")
		}
	}
}

func TestBlitVideoFramePunchThroughAlphaZeroWithoutTexture(t *testing.T) {
	ops := BlitVideoFrame(VideoFrame{}, SubtitleFrame{}, 1)
	if len(ops) != 1 || ops[0].Kind != DrawVideoBackground {
		t.Fatalf("expected a single background op, got %+v", ops)
	}
	if ops[0].Alpha != 0 {
		t.Fatalf("expected punch-through alpha 0, got %v", ops[0].Alpha)
	}
}

func TestBlitVideoFrameHDRSelectsHDRShader(t *testing.T) {
	ops := BlitVideoFrame(VideoFrame{HasLuma: true, HasChroma: true, HDR: true}, SubtitleFrame{}, 1)
	if len(ops) != 1 || ops[0].Shader != ShaderVideoHDR {
		t.Fatalf("expected ShaderVideoHDR, got %+v", ops)
	}
}

func TestCanvasBlitVideoFrameAppliesPunchthroughBlendFix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PunchthroughBlendModeFix = true
	c := New(cfg)
	c.SetBlendMode(BlendSourceAlphaAll)

	ops := c.BlitVideoFrame(Rect{X: 0, Y: 0, W: 100, H: 100}, VideoFrame{HasLuma: true, HasChroma: true}, SubtitleFrame{})
	if len(ops) == 0 {
		t.Fatal("expected at least one draw op")
	}
	for _, op := range ops {
		if op.Kind == DrawVideoBackground && op.Blend != BlendSourceAlphaRGB {
			t.Fatalf("expected background op blend coerced to BlendSourceAlphaRGB, got %v", op.Blend)
		}
		if len(op.Mesh.Vertices) != 6 {
			t.Fatalf("expected a six-vertex quad mesh, got %d vertices", len(op.Mesh.Vertices))
		}
	}
}

func TestCanvasBlitVideoFrameLeavesBlendAloneWithoutFix(t *testing.T) {
	c := New(DefaultConfig())
	c.SetBlendMode(BlendAlphaTest)

	ops := c.BlitVideoFrame(Rect{X: 0, Y: 0, W: 10, H: 10}, VideoFrame{HasLuma: true}, SubtitleFrame{})
	for _, op := range ops {
		if op.Kind == DrawVideoBackground && op.Blend != BlendAlphaTest {
			t.Fatalf("expected blend mode left at BlendAlphaTest without the fix enabled, got %v", op.Blend)
		}
	}
}

func TestVideoBlendModeNoFixReturnsStateBlend(t *testing.T) {
	c := New(DefaultConfig())
	c.SetBlendMode(BlendBlit)
	if got := c.VideoBlendMode(true); got != BlendBlit {
		t.Fatalf("VideoBlendMode = %v, want BlendBlit", got)
	}
}
