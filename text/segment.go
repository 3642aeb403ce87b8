package text

import "golang.org/x/text/unicode/bidi"

// Segment is a contiguous run of text sharing one direction, ready to be
// shaped by FontContext.Shape independently (spec.md §4.3 glyph cache
// lookups are per-codepoint, but shaping and cursor placement must run
// per bidi run).
type Segment struct {
	Text      string
	Start     int
	End       int
	Direction Direction
}

// Segmenter splits text into bidi runs.
type Segmenter interface {
	Segment(text string) []Segment
}

// BidiSegmenter computes per-rune bidi levels with golang.org/x/text's
// Unicode Bidirectional Algorithm implementation and groups consecutive
// runes at the same level into a Segment.
type BidiSegmenter struct {
	BaseDirection Direction
}

// NewBidiSegmenter constructs a segmenter defaulting to ltr base
// direction.
func NewBidiSegmenter() *BidiSegmenter {
	return &BidiSegmenter{BaseDirection: DirectionLTR}
}

func (s *BidiSegmenter) Segment(text string) []Segment {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	levels := s.computeLevels(text, len(runes))
	return buildSegments(text, runes, levels)
}

func (s *BidiSegmenter) computeLevels(text string, n int) []int {
	levels := make([]int, n)

	defaultDir := bidi.Neutral
	if s.BaseDirection == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}

	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(defaultDir)); err != nil {
		return levels
	}
	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := 0
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := start; j <= end && j < len(levels); j++ {
			levels[j] = level
		}
	}
	return levels
}

func buildSegments(text string, runes []int32, levels []int) []Segment {
	var segments []Segment
	segStart := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && levels[i] == levels[segStart] {
			continue
		}
		dir := DirectionLTR
		if levels[segStart] == 1 {
			dir = DirectionRTL
		}
		segments = append(segments, Segment{
			Text:      string(runes[segStart:i]),
			Start:     segStart,
			End:       i,
			Direction: dir,
		})
		segStart = i
	}
	return segments
}
