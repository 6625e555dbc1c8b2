package poster

import (
	"context"
	"image"
	"math"

	"github.com/golang/geo/s2"
	"golang.org/x/image/draw"
)

const maxImageSize = 1024

// TileProvider renders a map of bbox on an image of width x height pixels.
// lo and hi are the pixel positions of the south west and north east
// corners of bbox on the returned image.
type TileProvider interface {
	Render(ctx context.Context, bbox s2.Rect, width, height int) (image.Image, XY, XY, error)
}

// MapImageSize gives the pixel size of the background image of bbox drawn
// over size. The largest side is limit pixels.
func MapImageSize(bbox s2.Rect, size XY, limit int) (int, int) {
	if size.X <= 0 || size.Y <= 0 {
		return 0, 0
	}
	var (
		dim    = bbox.Size()
		width  int
		height int
	)
	if Lng2X(dim.Lng.Degrees()) > Lat2Y(dim.Lat.Degrees()) {
		height = limit
		width = int(float64(height) / size.Y * size.X)
	} else {
		width = limit
		height = int(float64(width) / size.X * size.Y)
	}
	return width, height
}

// CropFrame gives the rectangle of a width x height image around the
// corners lo and hi with the aspect ratio of the image, centered.
func CropFrame(width, height int, lo, hi XY) image.Rectangle {
	var (
		w  = float64(width)
		h  = float64(height)
		sx = hi.X - lo.X
		sy = lo.Y - hi.Y
	)
	if sy == 0 || sx == 0 {
		return image.Rect(0, 0, width, height)
	}
	if w/h > sx/sy {
		sx = w / h * sy
	} else {
		sy = h / w * sx
	}
	var (
		left = (w - sx) / 2
		top  = (h - sy) / 2
	)
	return image.Rect(int(math.Round(left)), int(math.Round(top)), int(math.Round(left+sx)), int(math.Round(top+sy)))
}

// CropImage copies the part of img within frame. Parts of frame outside of
// img stay transparent.
func CropImage(img image.Image, frame image.Rectangle) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, frame.Dx(), frame.Dy()))
	draw.Draw(out, out.Bounds(), img, frame.Min, draw.Src)
	return out
}
