package marquee

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// Screenshot asks for the frame being built to be saved as a PNG in
// ScreenshotDir once Draw finishes. Labels name the files, so a tour can
// capture "hero", "stats-settled" and so on.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots reads the finished frame back once and encodes it for
// every queued label in parallel.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	labels := s.screenshotQueue
	if len(labels) == 0 {
		return
	}
	s.screenshotQueue = nil

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.logger.Error("screenshot: mkdir failed", "dir", s.ScreenshotDir, "err", err)
		return
	}
	img := readFrame(screen)
	stamp := time.Now().Format("20060102_150405")

	var g errgroup.Group
	for _, label := range labels {
		path := screenshotPath(s.ScreenshotDir, stamp, s.frame, label)
		g.Go(func() error { return writePNG(path, img) })
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("screenshot: write failed", "err", err)
		return
	}
	s.logger.Info("screenshot: saved", "labels", labels, "dir", s.ScreenshotDir,
		"frame", s.frame, "scroll", s.Viewport().Y)
}

// readFrame copies the screen into a straight-alpha image. Ebitengine hands
// back premultiplied pixels; image/draw undoes that on the way into NRGBA.
func readFrame(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	raw := &image.RGBA{Pix: make([]byte, 4*b.Dx()*b.Dy()), Stride: 4 * b.Dx(), Rect: image.Rect(0, 0, b.Dx(), b.Dy())}
	screen.ReadPixels(raw.Pix)
	return unpremultiply(raw)
}

func unpremultiply(src *image.RGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, src.Rect.Min, draw.Src)
	return dst
}

// screenshotPath names a capture after the wall clock, the scene frame and
// the label, so shots from one run sort in the order they were taken.
func screenshotPath(dir, stamp string, frame uint64, label string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_f%06d_%s.png", stamp, frame, sanitizeLabel(label)))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.'; anything else becomes
// '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, label)
}
