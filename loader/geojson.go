package loader

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/geo/s2"
	"github.com/midbel/poster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

// Properties read from GeoJSON features. Times are RFC 3339.
const (
	propStart    = "start_time"
	propEnd      = "end_time"
	propActivity = "type"
)

// parseGeoJSON reads the LineString and MultiLineString features of a
// feature collection as one track. The start time is the earliest start
// of the features and the end time the latest end.
func parseGeoJSON(data []byte) (*poster.Track, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse geojson: %s", ErrTrackLoad, err)
	}
	var t poster.Track
	for _, f := range fc.Features {
		var lines []orb.LineString
		switch g := f.Geometry.(type) {
		case orb.LineString:
			lines = append(lines, g)
		case orb.MultiLineString:
			lines = append(lines, g...)
		default:
			continue
		}
		for _, ls := range lines {
			t.Length += poster.Distance(geo.Length(ls))
			t.Polylines = append(t.Polylines, toLatLngs(ls))
		}
		if err := featureTimes(&t, f.Properties); err != nil {
			return nil, err
		}
		if t.Activity == "" {
			t.Activity = strings.ToLower(f.Properties.MustString(propActivity, ""))
		}
	}
	if !t.HasTime() {
		return nil, fmt.Errorf("%w: track has no start or end time", ErrTrackLoad)
	}
	if t.Length <= 0 {
		return nil, fmt.Errorf("%w: track is empty", ErrTrackLoad)
	}
	return &t, nil
}

func featureTimes(t *poster.Track, props geojson.Properties) error {
	start, err := parseTime(props.MustString(propStart, ""))
	if err != nil {
		return err
	}
	end, err := parseTime(props.MustString(propEnd, ""))
	if err != nil {
		return err
	}
	if !start.IsZero() && (t.Start.IsZero() || start.Before(t.Start)) {
		t.Start = start
	}
	if !end.IsZero() && end.After(t.End) {
		t.End = end
	}
	return nil
}

func parseTime(str string) (time.Time, error) {
	if str == "" {
		return time.Time{}, nil
	}
	when, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return when, fmt.Errorf("%w: invalid time %q", ErrTrackLoad, str)
	}
	return when, nil
}

func toLatLngs(ls orb.LineString) []s2.LatLng {
	line := make([]s2.LatLng, 0, len(ls))
	for _, pt := range ls {
		line = append(line, s2.LatLngFromDegrees(pt.Lat(), pt.Lon()))
	}
	return line
}
