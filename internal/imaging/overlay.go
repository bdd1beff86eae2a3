package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/planscan/planmetrics/internal/geometry"
	"github.com/planscan/planmetrics/internal/walls"
)

// Overlay palette. Exterior walls are drawn red, interior walls orange,
// and the endpoint bounding box green.
var (
	exteriorHex = "#ff0000"
	interiorHex = "#ffa500"
	bboxHex     = "#00ff00"
)

func paletteColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{A: 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RenderOverlay draws the classified wall segments and their bounding
// box onto a copy of the base image. The base is never modified. When
// base is nil a white canvas sized to the segment bounding box plus the
// classification margin is used instead.
func RenderOverlay(base image.Image, m *walls.Metrics) (*image.RGBA, error) {
	if m == nil {
		return nil, fmt.Errorf("nil wall metrics")
	}

	var canvas *image.RGBA
	if base != nil {
		b := base.Bounds()
		canvas = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(canvas, canvas.Bounds(), base, b.Min, draw.Src)
	} else {
		w := m.BBoxPx.MaxX + m.MarginPx
		h := m.BBoxPx.MaxY + m.MarginPx
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		canvas = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	}

	exterior := paletteColor(exteriorHex)
	interior := paletteColor(interiorHex)
	for _, seg := range m.Segments {
		c := interior
		if seg.Class == walls.Exterior {
			c = exterior
		}
		drawLine(canvas, seg.P1, seg.P2, c)
	}

	drawRect(canvas, m.BBoxPx, paletteColor(bboxHex))
	return canvas, nil
}

// drawLine rasterizes the segment with a 2px-wide DDA walk.
func drawLine(img *image.RGBA, p1, p2 geometry.Point, c color.RGBA) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		setThick(img, p1.X, p1.Y, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := p1.X + dx*i/steps
		y := p1.Y + dy*i/steps
		setThick(img, x, y, c)
	}
}

func setThick(img *image.RGBA, x, y int, c color.RGBA) {
	for oy := 0; oy <= 1; oy++ {
		for ox := 0; ox <= 1; ox++ {
			if (image.Point{X: x + ox, Y: y + oy}).In(img.Bounds()) {
				img.SetRGBA(x+ox, y+oy, c)
			}
		}
	}
}

func drawRect(img *image.RGBA, r geometry.Rect, c color.RGBA) {
	tl := geometry.Point{X: r.MinX, Y: r.MinY}
	tr := geometry.Point{X: r.MaxX, Y: r.MinY}
	br := geometry.Point{X: r.MaxX, Y: r.MaxY}
	bl := geometry.Point{X: r.MinX, Y: r.MaxY}
	drawLine(img, tl, tr, c)
	drawLine(img, tr, br, c)
	drawLine(img, br, bl, c)
	drawLine(img, bl, tl, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Preview downsamples an overlay so that its longest edge is at most
// maxEdge pixels. Images already within the bound are returned as is.
func Preview(img image.Image, maxEdge int) image.Image {
	if img == nil || maxEdge <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}
	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// SaveOverlay writes the overlay to disk. The encoding is chosen from
// the file extension.
func SaveOverlay(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}
