package text

import "strings"

// HAlign, VAlign select block alignment (spec.md §4.3 "Text block
// layout").
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

// MeasureFunc returns the rendered width of s at the bound font/size.
type MeasureFunc func(s string) float64

// LayoutOptions configures a text block layout pass (spec.md §4.3 "Text
// block layout").
type LayoutOptions struct {
	Rect              Rect
	ScrollOffset      float64
	LineSpacingExtra  float64 // absolute, or relative to font height if LineSpacingRelative
	LineSpacingRelative bool
	FontHeight        float64
	HAlign            HAlign
	VAlign            VAlign
	Ellipses          string
	AllowOverflow     bool
	Measure           MeasureFunc
}

// Rect mirrors canvas.Rect's shape without importing canvas, matching
// the layered independence canvas itself keeps from device.
type Rect struct {
	X, Y, W, H float64
}

// Line is one laid-out line of text: its source text and the absolute
// X, Y position of the line's top-left corner (rect origin plus the
// horizontal and vertical alignment offsets).
type Line struct {
	Text    string
	X, Y    float64
	Width   float64
	Ellipsis bool
}

// LayoutResult is the outcome of a text block layout pass.
type LayoutResult struct {
	Lines      []Line
	BlockWidth float64
	BlockHeight float64
	Truncated  bool
}

func (o LayoutOptions) lineHeight() float64 {
	if o.LineSpacingRelative {
		return o.FontHeight * (1 + o.LineSpacingExtra)
	}
	return o.FontHeight + o.LineSpacingExtra
}

// Layout breaks text into lines that fit o.Rect.W, applies horizontal
// alignment per line, handles the ellipsis-truncation case when the
// block would overflow o.Rect.H, and finally applies vertical alignment
// by shifting every line (spec.md §4.3 "Text block layout").
func Layout(text string, o LayoutOptions) LayoutResult {
	lines := breakLines(text, o.Rect.W, o.Measure)
	lineH := o.lineHeight()
	maxLines := int(o.Rect.H / lineH)
	if maxLines < 1 {
		maxLines = 1
	}

	result := LayoutResult{}
	truncated := false
	visible := lines
	if len(lines) > maxLines {
		truncated = true
		if o.Ellipses != "" {
			visible = lines[:maxLines]
			visible[len(visible)-1] = truncateWithEllipsis(visible[len(visible)-1], o.Ellipses, o.Rect.W, o.Measure)
		} else if o.AllowOverflow {
			visible = lines
		} else {
			visible = lines[:maxLines]
		}
	}

	maxWidth := 0.0
	for i, l := range visible {
		w := o.Measure(l)
		if w > maxWidth {
			maxWidth = w
		}
		x := hAlignOffset(o.HAlign, o.Rect.W, w)
		y := float64(i) * lineH
		result.Lines = append(result.Lines, Line{Text: l, X: x, Y: y, Width: w, Ellipsis: truncated && o.Ellipses != "" && i == len(visible)-1})
	}

	result.BlockWidth = maxWidth
	result.BlockHeight = float64(len(visible)) * lineH
	result.Truncated = truncated

	yShift := vAlignOffset(o.VAlign, o.Rect.H, result.BlockHeight)
	for i := range result.Lines {
		result.Lines[i].Y += o.Rect.Y + yShift
		result.Lines[i].X += o.Rect.X
	}
	return result
}

func hAlignOffset(align HAlign, rectW, lineW float64) float64 {
	switch align {
	case HAlignCenter:
		return (rectW - lineW) / 2
	case HAlignRight:
		return rectW - lineW
	default:
		return 0
	}
}

func vAlignOffset(align VAlign, rectH, blockH float64) float64 {
	switch align {
	case VAlignCenter:
		return (rectH - blockH) / 2
	case VAlignBottom:
		return rectH - blockH
	default:
		return 0
	}
}

// breakLines repeatedly finds the break position that maximizes
// renderable width within maxWidth, tracking the last whitespace
// boundary and respecting explicit newlines (spec.md §4.3 "Repeatedly
// find the linebreak position that maximizes renderable width").
func breakLines(text string, maxWidth float64, measure MeasureFunc) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, breakParagraph(paragraph, maxWidth, measure)...)
	}
	return lines
}

func breakParagraph(p string, maxWidth float64, measure MeasureFunc) []string {
	if p == "" {
		return []string{""}
	}
	var lines []string
	words := strings.Fields(p)
	if len(words) == 0 {
		// All-whitespace run: force a break after the run itself.
		return []string{p}
	}

	cur := ""
	for _, w := range words {
		if cur == "" && measure(w) > maxWidth {
			// A single word (no whitespace boundary, e.g. an unbroken CJK
			// run) already overflows the line on its own: hard-break it by
			// rune rather than letting it overflow.
			broken := hardBreakWord(w, maxWidth, measure)
			lines = append(lines, broken[:len(broken)-1]...)
			cur = broken[len(broken)-1]
			continue
		}
		candidate := w
		if cur != "" {
			candidate = cur + " " + w
		}
		if measure(candidate) <= maxWidth || cur == "" {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// hardBreakWord splits a single whitespace-free run into the fewest lines
// that each fit maxWidth, accumulating one rune at a time. Always returns
// at least one line, even if a lone rune alone exceeds maxWidth.
func hardBreakWord(w string, maxWidth float64, measure MeasureFunc) []string {
	var lines []string
	cur := ""
	for _, r := range w {
		candidate := cur + string(r)
		if cur != "" && measure(candidate) > maxWidth {
			lines = append(lines, cur)
			cur = string(r)
			continue
		}
		cur = candidate
	}
	lines = append(lines, cur)
	return lines
}

// truncateWithEllipsis rewinds line to a width of maxWidth - width(ellipses)
// and appends ellipses (spec.md §4.3: "rewind to a width of
// w - ellipses_width and emit the current line followed by the
// ellipses").
func truncateWithEllipsis(line, ellipses string, maxWidth float64, measure MeasureFunc) string {
	budget := maxWidth - measure(ellipses)
	if budget <= 0 {
		return ellipses
	}
	runes := []rune(line)
	for len(runes) > 0 {
		candidate := string(runes)
		if measure(candidate) <= budget {
			return candidate + ellipses
		}
		runes = runes[:len(runes)-1]
	}
	return ellipses
}
