package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/geo/s2"
	"github.com/midbel/poster"
)

const cacheTimeFormat = time.RFC3339Nano

type cachedPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type cachedTrack struct {
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Length   float64         `json:"length"`
	Activity string          `json:"activity,omitempty"`
	Segments [][]cachedPoint `json:"segments"`
}

// Cache stores parsed tracks as JSON files named after the checksum of
// the source file content.
type Cache struct {
	Dir string
}

func (c Cache) Enabled() bool {
	return c.Dir != ""
}

func (c Cache) Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c Cache) path(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

func (c Cache) Load(key string) (*poster.Track, error) {
	buf, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, err
	}
	var ct cachedTrack
	if err := json.Unmarshal(buf, &ct); err != nil {
		return nil, fmt.Errorf("%w: failed to load track data from cache: %s", ErrTrackLoad, err)
	}
	var t poster.Track
	if t.Start, err = time.Parse(cacheTimeFormat, ct.Start); err != nil {
		return nil, fmt.Errorf("%w: invalid cached start time: %s", ErrTrackLoad, err)
	}
	if t.End, err = time.Parse(cacheTimeFormat, ct.End); err != nil {
		return nil, fmt.Errorf("%w: invalid cached end time: %s", ErrTrackLoad, err)
	}
	t.Length = poster.Distance(ct.Length)
	t.Activity = ct.Activity
	for _, seg := range ct.Segments {
		line := make([]s2.LatLng, 0, len(seg))
		for _, pt := range seg {
			line = append(line, s2.LatLngFromDegrees(pt.Lat, pt.Lng))
		}
		t.Polylines = append(t.Polylines, line)
	}
	return &t, nil
}

func (c Cache) Store(key string, t *poster.Track) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	ct := cachedTrack{
		Start:    t.Start.Format(cacheTimeFormat),
		End:      t.End.Format(cacheTimeFormat),
		Length:   float64(t.Length),
		Activity: t.Activity,
		Segments: make([][]cachedPoint, 0, len(t.Polylines)),
	}
	for _, line := range t.Polylines {
		seg := make([]cachedPoint, 0, len(line))
		for _, ll := range line {
			seg = append(seg, cachedPoint{Lat: ll.Lat.Degrees(), Lng: ll.Lng.Degrees()})
		}
		ct.Segments = append(ct.Segments, seg)
	}
	buf, err := json.Marshal(ct)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), buf, 0o644)
}
