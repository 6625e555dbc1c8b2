package loader

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/midbel/poster"
	"github.com/tkrajina/gpxgo/gpx"
)

const simplifyDistance = 5

func parseGPX(data []byte) (*poster.Track, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse gpx: %s", ErrTrackLoad, err)
	}
	bounds := doc.TimeBounds()
	if bounds.StartTime.IsZero() || bounds.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: track has no start or end time", ErrTrackLoad)
	}
	length := doc.Length2D()
	if length <= 0 {
		return nil, fmt.Errorf("%w: track is empty", ErrTrackLoad)
	}
	doc.SimplifyTracks(simplifyDistance)

	t := poster.Track{
		Start:  bounds.StartTime,
		End:    bounds.EndTime,
		Length: poster.Distance(length),
	}
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			line := make([]s2.LatLng, 0, len(seg.Points))
			for _, pt := range seg.Points {
				line = append(line, s2.LatLngFromDegrees(pt.Latitude, pt.Longitude))
			}
			t.Polylines = append(t.Polylines, line)
		}
	}
	if len(doc.Tracks) > 0 {
		t.Activity = strings.ToLower(doc.Tracks[0].Type)
	}
	return &t, nil
}
