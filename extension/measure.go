package extension

import (
	"bytes"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ggsheet/skeleton"
)

// measurer computes text advances with HarfBuzz shaping.
type measurer struct {
	font *font.Font
	pool sync.Pool
}

func newMeasurer(ttf []byte) (*measurer, error) {
	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, err
	}
	m := &measurer{font: face.Font}
	m.pool.New = func() any { return &shaping.HarfbuzzShaper{} }
	return m, nil
}

// advance returns the shaped width of text at size, in the same units as
// size.
func (m *measurer) advance(text string, size float64) float64 {
	runes := []rune(text)
	if len(runes) == 0 || size <= 0 {
		return 0
	}
	dir := di.DirectionLTR
	if skeleton.IsRightToLeft(text) {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(m.font),
		Size:      fixed.Int26_6(size * 64),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := m.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.pool.Put(hb)

	adv := float64(out.Advance) / 64
	if adv < 0 {
		adv = -adv
	}
	return adv
}

// scriptOf detects the script from the first non-space rune.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
