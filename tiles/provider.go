package tiles

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/midbel/poster"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTileSize  = 256
	DefaultMaxZoom   = 18
	DefaultWorkers   = 8
	DefaultUserAgent = "poster/1.0"
)

var ErrTile = errors.New("tile")

var _ poster.TileProvider = (*Provider)(nil)

type Tile struct {
	X int
	Y int
	Z int
}

func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Provider renders maps from a slippy map tile server. URL is a template
// where {z}, {x} and {y} are replaced by the coordinates of a tile.
type Provider struct {
	URL       string
	CacheDir  string
	UserAgent string
	Workers   int
	TileSize  int
	MaxZoom   int

	Client *http.Client
	Logger *log.Logger
}

func New(url string) *Provider {
	return &Provider{
		URL:       url,
		UserAgent: DefaultUserAgent,
		Workers:   DefaultWorkers,
		TileSize:  DefaultTileSize,
		MaxZoom:   DefaultMaxZoom,
		Client:    http.DefaultClient,
		Logger:    log.Default(),
	}
}

// WorldPixel gives the position of ll in pixels on the whole world map at
// zoom.
func WorldPixel(ll s2.LatLng, zoom, size int) poster.XY {
	var (
		lat = ll.Lat.Radians()
		n   = math.Exp2(float64(zoom)) * float64(size)
		x   = (ll.Lng.Degrees() + 180) / 360 * n
		y   = (1 - math.Asinh(math.Tan(lat))/math.Pi) / 2 * n
	)
	return poster.NewXY(x, y)
}

// Zoom gives the largest zoom level where bbox fits in width x height
// pixels.
func (p *Provider) Zoom(bbox s2.Rect, width, height int) int {
	for z := p.MaxZoom; z > 0; z-- {
		lo, hi := p.corners(bbox, z)
		if hi.X-lo.X <= float64(width) && lo.Y-hi.Y <= float64(height) {
			return z
		}
	}
	return 0
}

func (p *Provider) corners(bbox s2.Rect, zoom int) (poster.XY, poster.XY) {
	var (
		lo = WorldPixel(bbox.Lo(), zoom, p.TileSize)
		hi = WorldPixel(bbox.Hi(), zoom, p.TileSize)
	)
	if hi.X < lo.X {
		hi.X += math.Exp2(float64(zoom)) * float64(p.TileSize)
	}
	return lo, hi
}

// Render stitches the tiles covering an image of width x height pixels
// centered on the center of bbox. It returns the pixel positions of the
// south west and north east corners of bbox on the image.
func (p *Provider) Render(ctx context.Context, bbox s2.Rect, width, height int) (image.Image, poster.XY, poster.XY, error) {
	var (
		zoom   = p.Zoom(bbox, width, height)
		center = WorldPixel(bbox.Center(), zoom, p.TileSize)
		origin = center.Sub(poster.NewXY(float64(width), float64(height)).MulN(0.5))
		lo, hi = p.corners(bbox, zoom)
		list   = p.covering(origin, width, height, zoom)
		images = make([]image.Image, len(list))
	)
	grp, sub := errgroup.WithContext(ctx)
	grp.SetLimit(max(1, p.Workers))
	for i, t := range list {
		i, t := i, t
		grp.Go(func() error {
			img, err := p.Fetch(sub, t.Tile)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, lo, hi, err
	}

	var (
		out = image.NewRGBA(image.Rect(0, 0, width, height))
		ox  = int(math.Floor(origin.X))
		oy  = int(math.Floor(origin.Y))
	)
	for i, t := range list {
		var (
			x = t.col*p.TileSize - ox
			y = t.Y*p.TileSize - oy
			r = image.Rect(x, y, x+p.TileSize, y+p.TileSize)
		)
		draw.Draw(out, r, images[i], images[i].Bounds().Min, draw.Src)
	}
	return out, lo.Sub(origin), hi.Sub(origin), nil
}

type placedTile struct {
	Tile
	col int
}

func first(v, size float64) int {
	return int(math.Floor(v / size))
}

// covering lists the tiles intersecting the image. Columns wrap around the
// antimeridian; rows outside of the world are skipped.
func (p *Provider) covering(origin poster.XY, width, height, zoom int) []placedTile {
	var (
		ts    = float64(p.TileSize)
		n     = 1 << zoom
		x0    = first(origin.X, ts)
		y0    = first(origin.Y, ts)
		x1    = first(origin.X+float64(width)-1, ts)
		y1    = first(origin.Y+float64(height)-1, ts)
		tiles []placedTile
	)
	for y := y0; y <= y1; y++ {
		if y < 0 || y >= n {
			continue
		}
		for x := x0; x <= x1; x++ {
			t := Tile{
				X: ((x % n) + n) % n,
				Y: y,
				Z: zoom,
			}
			tiles = append(tiles, placedTile{Tile: t, col: x})
		}
	}
	return tiles
}

// Fetch gets one tile from the disk cache or from the tile server.
func (p *Provider) Fetch(ctx context.Context, t Tile) (image.Image, error) {
	file := p.cacheFile(t)
	if file != "" {
		if buf, err := os.ReadFile(file); err == nil {
			if img, _, err := image.Decode(bytes.NewReader(buf)); err == nil {
				return img, nil
			}
		}
	}
	buf, err := p.download(ctx, t)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %s", ErrTile, t, err)
	}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err == nil {
			err = os.WriteFile(file, buf, 0o644)
		}
		if err != nil {
			p.logger().Printf("tile %s: failed to cache: %s", t, err)
		}
	}
	return img, nil
}

func (p *Provider) download(ctx context.Context, t Tile) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.TileURL(t), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.UserAgent)

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %s: unexpected status %s", ErrTile, t, res.Status)
	}
	return io.ReadAll(res.Body)
}

func (p *Provider) TileURL(t Tile) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(t.Z),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	)
	return r.Replace(p.URL)
}

func (p *Provider) cacheFile(t Tile) string {
	if p.CacheDir == "" {
		return ""
	}
	return filepath.Join(p.CacheDir, strconv.Itoa(t.Z), strconv.Itoa(t.X), strconv.Itoa(t.Y))
}

func (p *Provider) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}
