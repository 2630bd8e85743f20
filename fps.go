package marquee

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget creates a text node that displays the current FPS and TPS,
// refreshed about every half second.
func NewFPSWidget(font Font) *Node {
	node := NewText("fps_widget", "FPS: -\nTPS: -", font)
	node.TextBlock.Color = Color{R: 1, G: 1, B: 1, A: 0.8}

	var lastUpdate float64
	node.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0
		node.TextBlock.SetContent(fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
