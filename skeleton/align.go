package skeleton

import "golang.org/x/text/unicode/bidi"

// ResolveAlign turns AlignAuto into a concrete alignment. Text whose first
// strong character is right-to-left aligns right, anything else aligns left.
// Explicit alignments are returned unchanged.
func ResolveAlign(text string, a HorizontalAlign) HorizontalAlign {
	if a != AlignAuto {
		return a
	}
	if IsRightToLeft(text) {
		return AlignRight
	}
	return AlignLeft
}

// IsRightToLeft reports whether the paragraph direction of text is
// right-to-left.
func IsRightToLeft(text string) bool {
	if text == "" {
		return false
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return false
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return false
	}
	run := ordering.Run(0)
	return run.Direction() == bidi.RightToLeft
}
