//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// GridPainter uploads cell codes into a single RGBA image and draws it scaled.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette Palette
}

// NewGridPainter allocates a painter for a board of w*h cells.
func NewGridPainter(w, h int, palette Palette) *GridPainter {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), palette: palette}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit paints cells onto dst at the given scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, gp.palette)
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
