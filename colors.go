package poster

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

type Colors struct {
	Background string
	Text       string
	Track      string
	Track2     string
	Special    string
	Special2   string
}

func DefaultColors() Colors {
	return Colors{
		Background: "#222222",
		Text:       "#ffffff",
		Track:      "#4dd2ff",
		Track2:     "#4dd2ff",
		Special:    "#ffff00",
		Special2:   "#ffff00",
	}
}

// Validate checks that every colour can be parsed. The second colour of a
// gradient is optional.
func (c Colors) Validate() error {
	for _, str := range []string{c.Background, c.Text, c.Track, c.Special} {
		if _, err := ParseColor(str); err != nil {
			return err
		}
	}
	for _, str := range []string{c.Track2, c.Special2} {
		if str == "" {
			continue
		}
		if _, err := ParseColor(str); err != nil {
			return err
		}
	}
	return nil
}

// Gradient returns the colours a track length is interpolated between.
func (c Colors) Gradient(special bool) (string, string) {
	if special {
		return c.Special, orColor(c.Special2, c.Special)
	}
	return c.Track, orColor(c.Track2, c.Track)
}

// ParseColor accepts #rgb, #rrggbb and CSS colour names.
func ParseColor(str string) (colorful.Color, error) {
	str = strings.TrimSpace(str)
	if strings.HasPrefix(str, "#") {
		c, err := colorful.Hex(str)
		if err != nil {
			return c, fmt.Errorf("%w: %s", ErrInvalidColor, str)
		}
		return c, nil
	}
	rgb, ok := colornames.Map[strings.ToLower(str)]
	if !ok {
		return colorful.Color{}, fmt.Errorf("%w: %s", ErrInvalidColor, str)
	}
	c, _ := colorful.MakeColor(rgb)
	return c, nil
}

// InterpolateColor blends two colours in hue/saturation/luminance space.
// The ratio is clamped to [0, 1].
func InterpolateColor(color1, color2 string, ratio float64) (string, error) {
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	c1, err := ParseColor(color1)
	if err != nil {
		return "", err
	}
	c2, err := ParseColor(color2)
	if err != nil {
		return "", err
	}
	var (
		h1, s1, l1 = c1.Hsl()
		h2, s2, l2 = c2.Hsl()
		mix        = func(a, b float64) float64 {
			return (1-ratio)*a + ratio*b
		}
	)
	c3 := colorful.Hsl(mix(h1, h2), mix(s1, s2), mix(l1, l2))
	return toHex(c3), nil
}

// toHex truncates channels after adding just under a half, so 0.5 maps to
// 0x7f.
func toHex(c colorful.Color) string {
	const floatError = 1e-7
	c = c.Clamped()
	channel := func(v float64) uint8 {
		return uint8(math.Floor(v*255 + 0.5 - floatError))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func orColor(str, def string) string {
	if str == "" {
		return def
	}
	return str
}
