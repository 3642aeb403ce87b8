package canvas

// SetClipRect intersects the current clip rect with r (spec.md §4.2
// "Clip": "set_clip_rect (intersection only)") — clipping can only ever
// shrink, never grow, until the next Restore.
func (c *Canvas) SetClipRect(r Rect) {
	c.states.mutate(func(s *state) {
		if s.clipOn {
			s.clip = s.clip.Intersect(r)
		} else {
			s.clip = r
		}
		s.clipOn = true
	})
}

// SetClipState toggles clipping on or off without changing the stored
// clip rect, so re-enabling restores the last intersection.
func (c *Canvas) SetClipState(on bool) {
	c.states.mutate(func(s *state) { s.clipOn = on })
}

// ClipRect returns the active clip rect and whether clipping is enabled.
func (c *Canvas) ClipRect() (Rect, bool) {
	top := c.states.Top()
	return top.clip, top.clipOn
}
