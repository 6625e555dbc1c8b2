package poster

import (
	"time"

	"github.com/golang/geo/s2"
)

// Track is one activity, possibly merged from several source files.
type Track struct {
	Files     []string
	Polylines [][]s2.LatLng
	Start     time.Time
	End       time.Time
	Length    Distance
	Special   bool
	Activity  string
}

func (t *Track) HasTime() bool {
	return !t.Start.IsZero() && !t.End.IsZero()
}

// Append merges a continuation of t into t.
func (t *Track) Append(other *Track) {
	t.End = other.End
	t.Polylines = append(t.Polylines, other.Polylines...)
	t.Length += other.Length
	t.Files = append(t.Files, other.Files...)
	t.Special = t.Special || other.Special
}

// BBox is the smallest rectangle containing every point of the track.
func (t *Track) BBox() s2.Rect {
	bbox := s2.EmptyRect()
	for _, line := range t.Polylines {
		for _, ll := range line {
			bbox = bbox.Union(s2.RectFromLatLng(ll.Normalized()))
		}
	}
	return bbox
}

func (t *Track) Points() int {
	var n int
	for _, line := range t.Polylines {
		n += len(line)
	}
	return n
}

func (t *Track) Date() string {
	return t.Start.Format("2006-01-02")
}
