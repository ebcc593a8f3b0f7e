package physics2d

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/crossdim"
	"golang.org/x/image/font/gofont/goregular"
)

// labelSize is the font size of body ids and vertex numbers.
const labelSize = 10

var (
	labelOnce sync.Once
	labelFace *text.GoTextFace
)

// face returns the label face, or nil if the embedded font failed to parse.
func face() *text.GoTextFace {
	labelOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log := crossdim.Logger()
			log.Error().Err(err).Msg("parse label font")
			return
		}
		labelFace = &text.GoTextFace{Source: src, Size: labelSize}
	})
	return labelFace
}

// drawLabel draws s centred on (x, y).
func drawLabel(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	f := face()
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, f, op)
}
