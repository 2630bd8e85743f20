package marquee

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content string
	Font    Font
	Align   TextAlign
	Color   Color

	layoutDirty bool
	measuredW   float64
	measuredH   float64
}

// SetContent replaces the text and invalidates the cached layout. Setting the
// same content again is free.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// Size returns the measured width and height of the current content.
func (tb *TextBlock) Size() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.layoutDirty = false
	if tb.Font == nil || tb.Content == "" {
		tb.measuredW, tb.measuredH = 0, 0
		return
	}
	tb.measuredW, tb.measuredH = tb.Font.MeasureString(tb.Content)
}

// syncTextSize copies the measured text size to the node's box so text nodes
// can be observed like any other region.
func (n *Node) syncTextSize() {
	if n.TextBlock == nil {
		return
	}
	n.Width, n.Height = n.TextBlock.Size()
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("marquee: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, size: size, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// DefaultFont loads the Go Regular face at the given size.
func DefaultFont(size float64) (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the face size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// drawText renders a text node with its world transform applied.
func drawText(dst *ebiten.Image, n *Node, view affine) {
	tb := n.TextBlock
	f, ok := tb.Font.(*TTFFont)
	if !ok || strings.TrimSpace(tb.Content) == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM = view.mul(n.world).geoM()
	a := n.worldAlpha * tb.Color.A
	op.ColorScale.Scale(float32(tb.Color.R*a), float32(tb.Color.G*a), float32(tb.Color.B*a), float32(a))
	op.LineSpacing = f.lh
	switch tb.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	text.Draw(dst, tb.Content, f.face, op)
}

// WrapText breaks s into lines no wider than maxWidth, splitting on spaces.
// A single word wider than maxWidth keeps its own line.
func WrapText(s string, f Font, maxWidth float64) string {
	if f == nil || maxWidth <= 0 {
		return s
	}
	var b strings.Builder
	line := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if w, _ := f.MeasureString(candidate); w <= maxWidth || line == "" {
			line = candidate
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
		line = word
	}
	b.WriteString(line)
	return b.String()
}
