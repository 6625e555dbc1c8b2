package poster

import (
	"image"
	"strings"
)

type recordCanvas struct {
	opened    bool
	closed    bool
	groups    []string
	depth     int
	rects     int
	texts     []string
	circles   int
	polylines []Stroke
	arcs      []Stroke
	images    []image.Image
}

func (c *recordCanvas) Open(size XY) error {
	c.opened = true
	return nil
}

func (c *recordCanvas) Close() error {
	c.closed = true
	return nil
}

func (c *recordCanvas) Group(id string) {
	c.groups = append(c.groups, id)
	c.depth++
}

func (c *recordCanvas) GroupEnd() {
	c.depth--
}

func (c *recordCanvas) Rect(_, _ XY, _ string) {
	c.rects++
}

func (c *recordCanvas) Text(_ XY, str string, _ Font) {
	c.texts = append(c.texts, str)
}

func (c *recordCanvas) Circle(_ XY, _ float64, _ Stroke) {
	c.circles++
}

func (c *recordCanvas) Polyline(_ []XY, s Stroke) {
	c.polylines = append(c.polylines, s)
}

func (c *recordCanvas) Arc(_ Arc, s Stroke) {
	c.arcs = append(c.arcs, s)
}

func (c *recordCanvas) Image(_, _ XY, img image.Image) error {
	c.images = append(c.images, img)
	return nil
}

func (c *recordCanvas) hasGroup(id string) bool {
	for _, g := range c.groups {
		if g == id {
			return true
		}
	}
	return false
}

func (c *recordCanvas) hasText(prefix string) bool {
	for _, str := range c.texts {
		if strings.HasPrefix(str, prefix) {
			return true
		}
	}
	return false
}
