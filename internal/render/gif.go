package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GIFOptions controls animated export.
type GIFOptions struct {
	Scale   int  // pixels per cell
	Delay   int  // hundredths of a second per frame
	Every   int  // keep every n-th frame; the last frame is always kept
	Loop    bool // repeat forever instead of playing once
	Caption bool // draw a status line under the board
	Palette Palette
}

// DefaultGIFOptions mirrors the animate command defaults.
func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Scale: 24, Delay: 8, Every: 1, Loop: true, Caption: true, Palette: DefaultPalette}
}

const captionHeight = 18

var captionColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
var captionText = color.RGBA{R: 220, G: 220, B: 230, A: 255}

// WriteGIF encodes frames of a w*h board as an animated GIF.
func WriteGIF(out io.Writer, w, h int, frames []Frame, opts GIFOptions) error {
	if len(frames) == 0 {
		return errors.New("render: no frames")
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultPalette
	}

	pal := make(color.Palette, 0, len(opts.Palette)+2)
	for _, c := range opts.Palette {
		pal = append(pal, c)
	}
	bg := uint8(len(pal))
	pal = append(pal, captionColor, captionText)

	height := h * opts.Scale
	if opts.Caption {
		height += captionHeight
	}
	bounds := image.Rect(0, 0, w*opts.Scale, height)

	anim := &gif.GIF{LoopCount: -1}
	if opts.Loop {
		anim.LoopCount = 0
	}
	for i, f := range frames {
		if i%opts.Every != 0 && i != len(frames)-1 {
			continue
		}
		if len(f.Cells) != w*h {
			return fmt.Errorf("render: frame %d has %d cells, want %d", i, len(f.Cells), w*h)
		}
		img := image.NewPaletted(bounds, pal)
		paintCells(img, f.Cells, w, opts.Scale, len(opts.Palette)-1)
		if opts.Caption {
			drawCaption(img, h*opts.Scale, bg, Caption(f))
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	return gif.EncodeAll(out, anim)
}

// Caption is the status line shown for a frame.
func Caption(f Frame) string {
	s := fmt.Sprintf("step %d  state %d  %.1f%%", f.Step, f.State, 100*f.Coverage)
	if f.Outcome.Halted() {
		s += "  " + f.Outcome.String()
	}
	return s
}

func paintCells(img *image.Paletted, cells []uint8, w, scale, last int) {
	for i, c := range cells {
		idx := c
		if int(idx) > last {
			idx = uint8(last)
		}
		x0, y0 := (i%w)*scale, (i/w)*scale
		for y := y0; y < y0+scale; y++ {
			row := img.Pix[y*img.Stride:]
			for x := x0; x < x0+scale; x++ {
				row[x] = idx
			}
		}
	}
}

func drawCaption(img *image.Paletted, top int, bg uint8, text string) {
	b := img.Bounds()
	for y := top; y < b.Max.Y; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()]
		for x := range row {
			row[x] = bg
		}
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionText),
		Face: face,
		Dot:  fixed.P(4, top+face.Ascent+2),
	}
	d.DrawString(text)
}
