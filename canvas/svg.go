package canvas

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/midbel/poster"
	"github.com/midbel/svg"
)

const (
	// CSS pixels per millimetre.
	pxPerMM = 96 / 25.4

	// x-height of Arial over its em size. Written as font-size-adjust it
	// leaves the text size unchanged when Arial is available.
	arialAspect = 0.519
)

// SVG draws a poster as a SVG document. One user unit of the document is
// one millimetre of the poster.
type SVG struct {
	w      io.Writer
	root   svg.SVG
	groups []*svg.Group
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{w: w}
}

func (s *SVG) Open(size poster.XY) error {
	s.root = svg.SVG{
		Dim: svg.NewDim(size.X*pxPerMM, size.Y*pxPerMM),
		ViewBox: svg.ViewBox{
			Pos: svg.NewPos(0, 0),
			Dim: svg.NewDim(size.X, size.Y),
		},
		Ratio: svg.Ratio{
			Align:       "xMidYMid",
			MeetOrSlice: "meet",
		},
	}
	s.groups = s.groups[:0]
	return nil
}

// Close ends the groups left open and writes the document.
func (s *SVG) Close() error {
	for len(s.groups) > 0 {
		s.GroupEnd()
	}
	bw := bufio.NewWriter(s.w)
	s.root.Render(bw)
	return bw.Flush()
}

func (s *SVG) Group(id string) {
	g := svg.Group{}
	g.Id = id
	s.groups = append(s.groups, &g)
}

func (s *SVG) GroupEnd() {
	n := len(s.groups)
	if n == 0 {
		return
	}
	g := s.groups[n-1]
	s.groups = s.groups[:n-1]
	s.append(g)
}

func (s *SVG) Rect(pos, size poster.XY, fill string) {
	s.append(&svg.Rect{
		Pos:  svg.NewPos(pos.X, pos.Y),
		Dim:  svg.NewDim(size.X, size.Y),
		Fill: svg.Fill{Color: fill, Opacity: 1},
	})
}

func (s *SVG) Text(pos poster.XY, str string, font poster.Font) {
	text := svg.NewText(html.EscapeString(str))
	text.Pos = svg.NewPos(pos.X, pos.Y)
	text.Font = svgFont(font)
	if font.Anchor != poster.AnchorStart {
		text.Anchor = font.Anchor.String()
	}
	if font.Central {
		text.Baseline = "central"
	}
	s.append(&text)
}

func (s *SVG) Circle(center poster.XY, radius float64, stroke poster.Stroke) {
	s.append(&svg.Circle{
		Pos:    svg.NewPos(center.X, center.Y),
		Radius: radius,
		Fill:   svg.NewFill("none"),
		Stroke: svgStroke(stroke),
	})
}

func (s *SVG) Polyline(points []poster.XY, stroke poster.Stroke) {
	if len(points) == 0 {
		return
	}
	line := svg.PolyLine{
		Points: make([]svg.Pos, len(points)),
		Fill:   svg.NewFill("none"),
		Stroke: svgStroke(stroke),
	}
	for i, p := range points {
		line.Points[i] = svg.NewPos(p.X, p.Y)
	}
	s.append(&line)
}

// Arc draws a clockwise arc. An animated arc is wrapped in a group holding
// the animate element of the path.
func (s *SVG) Arc(arc poster.Arc, stroke poster.Stroke) {
	var (
		from = arc.From()
		to   = arc.To()
		path = svg.Path{
			Fill:   svg.NewFill("none"),
			Stroke: svgStroke(stroke),
		}
	)
	path.Title = html.EscapeString(stroke.Title)
	path.AbsMoveTo(svg.NewPos(from.X, from.Y))
	path.AbsArcTo(svg.NewPos(to.X, to.Y), arc.Radius, arc.Radius, 0, arc.Large(), true)

	a := stroke.Animate
	if a == nil {
		s.append(&path)
		return
	}
	g := svg.Group{}
	g.Append(&path)
	g.Append(svg.NewLiteral(animate(a)))
	s.append(&g)
}

// Image embeds img as a PNG data URI.
func (s *SVG) Image(pos, size poster.XY, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	i := svg.NewImage("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
	i.Pos = svg.NewPos(pos.X, pos.Y)
	i.Dim = svg.NewDim(size.X, size.Y)
	i.PreserveRatio = []string{"none"}
	s.append(&i)
	return nil
}

func (s *SVG) append(e svg.Element) {
	if n := len(s.groups); n > 0 {
		s.groups[n-1].Append(e)
		return
	}
	s.root.Append(e)
}

func animate(a *poster.Animation) string {
	return fmt.Sprintf(`<animate attributeName=%q dur="%ss" values=%q keyTimes=%q repeatCount="indefinite"/>`,
		a.Attribute,
		strconv.FormatFloat(a.Duration, 'f', -1, 64),
		strings.Join(a.Values, ";"),
		strings.Join(a.KeyTimes, ";"),
	)
}

func svgFont(f poster.Font) svg.Font {
	font := svg.NewFont(f.Size, f.Family)
	font.Fill = f.Color
	font.Adjust = arialAspect
	if f.Bold {
		font.Weight = "bold"
	}
	return font
}

func svgStroke(s poster.Stroke) svg.Stroke {
	stroke := svg.NewStroke(s.Color, s.Width)
	stroke.Opacity = s.Opacity
	if s.Round {
		stroke.LineJoin = "round"
		stroke.LineCap = "round"
	}
	return stroke
}
