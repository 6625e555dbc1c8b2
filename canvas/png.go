package canvas

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/midbel/poster"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultResolution is the number of pixels per millimetre of PNG posters.
const DefaultResolution = 4

var (
	regularFont *truetype.Font
	boldFont    *truetype.Font
)

func init() {
	regularFont, _ = truetype.Parse(goregular.TTF)
	boldFont, _ = truetype.Parse(gobold.TTF)
}

type faceKey struct {
	size float64
	bold bool
}

// PNG rasterizes a poster. Titles and animations are not rendered.
type PNG struct {
	w     io.Writer
	scale float64
	dc    *gg.Context
	faces map[faceKey]font.Face
	err   error
}

// NewPNG creates a raster canvas with resolution pixels per millimetre.
func NewPNG(w io.Writer, resolution float64) *PNG {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &PNG{
		w:     w,
		scale: resolution,
		faces: make(map[faceKey]font.Face),
	}
}

func (p *PNG) Open(size poster.XY) error {
	var (
		width  = int(math.Ceil(size.X * p.scale))
		height = int(math.Ceil(size.Y * p.scale))
	)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	p.dc = gg.NewContext(width, height)
	p.dc.Scale(p.scale, p.scale)
	return nil
}

func (p *PNG) Close() error {
	if p.err != nil {
		return p.err
	}
	return p.dc.EncodePNG(p.w)
}

func (p *PNG) Group(_ string) {}

func (p *PNG) GroupEnd() {}

func (p *PNG) Rect(pos, size poster.XY, fill string) {
	if !p.setColor(fill, 1) {
		return
	}
	p.dc.DrawRectangle(pos.X, pos.Y, size.X, size.Y)
	p.dc.Fill()
}

func (p *PNG) Text(pos poster.XY, str string, f poster.Font) {
	if str == "" || !p.setColor(f.Color, 1) {
		return
	}
	p.dc.SetFontFace(p.face(f.Size, f.Bold))

	var (
		w, h = p.dc.MeasureString(str)
		ax   float64
		ay   float64
	)
	switch f.Anchor {
	case poster.AnchorMiddle:
		ax = 0.5
	case poster.AnchorEnd:
		ax = 1
	}
	if f.Central {
		ay = 0.5
	}
	p.dc.DrawString(str, pos.X-ax*w/p.scale, pos.Y+ay*h/p.scale)
}

func (p *PNG) Circle(center poster.XY, radius float64, stroke poster.Stroke) {
	if !p.setStroke(stroke) {
		return
	}
	p.dc.NewSubPath()
	p.dc.DrawCircle(center.X, center.Y, radius)
	p.dc.Stroke()
}

func (p *PNG) Polyline(points []poster.XY, stroke poster.Stroke) {
	if len(points) == 0 || !p.setStroke(stroke) {
		return
	}
	p.dc.NewSubPath()
	p.dc.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	p.dc.Stroke()
}

func (p *PNG) Arc(arc poster.Arc, stroke poster.Stroke) {
	if !p.setStroke(stroke) {
		return
	}
	var (
		start = (arc.Start - 90) * math.Pi / 180
		end   = start + arc.Sweep()*math.Pi/180
	)
	p.dc.NewSubPath()
	p.dc.DrawArc(arc.Center.X, arc.Center.Y, arc.Radius, start, end)
	p.dc.Stroke()
}

// Image scales img to the pixel area covered by pos and size.
func (p *PNG) Image(pos, size poster.XY, img image.Image) error {
	var (
		x    = int(math.Round(pos.X * p.scale))
		y    = int(math.Round(pos.Y * p.scale))
		rect = image.Rect(0, 0, int(math.Round(size.X*p.scale)), int(math.Round(size.Y*p.scale)))
	)
	if rect.Empty() {
		return nil
	}
	scaled := image.NewRGBA(rect)
	draw.BiLinear.Scale(scaled, rect, img, img.Bounds(), draw.Src, nil)

	p.dc.Push()
	p.dc.Identity()
	p.dc.DrawImage(scaled, x, y)
	p.dc.Pop()
	return nil
}

func (p *PNG) Raster() image.Image {
	if p.dc == nil {
		return nil
	}
	return p.dc.Image()
}

func (p *PNG) setStroke(stroke poster.Stroke) bool {
	if !p.setColor(stroke.Color, stroke.Opacity) {
		return false
	}
	p.dc.SetLineWidth(stroke.Width * p.scale)
	if stroke.Round {
		p.dc.SetLineCapRound()
		p.dc.SetLineJoinRound()
	} else {
		p.dc.SetLineCapButt()
		p.dc.SetLineJoinBevel()
	}
	return true
}

func (p *PNG) setColor(str string, opacity float64) bool {
	c, err := poster.ParseColor(str)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return false
	}
	c = c.Clamped()
	p.dc.SetRGBA(c.R, c.G, c.B, opacity)
	return true
}

func (p *PNG) face(size float64, bold bool) font.Face {
	key := faceKey{size: size, bold: bold}
	if f, ok := p.faces[key]; ok {
		return f
	}
	ft := regularFont
	if bold {
		ft = boldFont
	}
	f := truetype.NewFace(ft, &truetype.Options{Size: size * p.scale})
	p.faces[key] = f
	return f
}
