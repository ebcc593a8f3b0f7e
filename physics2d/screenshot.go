package physics2d

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/phanxgames/crossdim"
)

// Screenshot queues a capture of the world canvas. It is taken at canvas
// resolution after the next frame is drawn, before the frame is scaled onto
// the screen, and written to ScreenshotDir as step<N>-<label>.png where N is
// the world step count.
func (r *Renderer) Screenshot(label string) {
	r.mu.Lock()
	r.screenshotQueue = append(r.screenshotQueue, label)
	r.mu.Unlock()
}

// flushScreenshots writes the canvas once for every queued label.
func (r *Renderer) flushScreenshots() {
	r.mu.Lock()
	labels := r.screenshotQueue
	r.screenshotQueue = nil
	r.mu.Unlock()
	if len(labels) == 0 || r.canvas == nil {
		return
	}

	// ReadPixels fills premultiplied RGBA, which is image.RGBA's layout.
	img := image.NewRGBA(r.canvas.Bounds())
	r.canvas.ReadPixels(img.Pix)

	var step uint64
	if r.world != nil {
		step = r.world.Steps()
	}
	log := crossdim.Logger()
	for _, label := range labels {
		path, err := saveShot(r.ScreenshotDir, shotName(step, label), img)
		if err != nil {
			log.Error().Err(err).Str("label", label).Msg("screenshot")
			continue
		}
		log.Info().Str("path", path).Msg("screenshot saved")
	}
}

// shotName names a capture taken at a world step. The label is lowercased
// and anything but letters and digits becomes '-'.
func shotName(step uint64, label string) string {
	clean := strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			return unicode.ToLower(c)
		}
		return '-'
	}, strings.TrimSpace(label))
	if clean == "" {
		return fmt.Sprintf("step%06d.png", step)
	}
	return fmt.Sprintf("step%06d-%s.png", step, clean)
}

// saveShot encodes img as PNG into dir, creating dir if needed. The encoder
// converts premultiplied pixels to PNG's straight alpha.
func saveShot(dir, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("screenshot %s: %w", name, err)
	}
	return path, f.Close()
}
