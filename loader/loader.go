package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/midbel/poster"
	"github.com/midbel/slices"
	"golang.org/x/sync/errgroup"
)

var ErrTrackLoad = errors.New("track load")

const (
	extGPX     = ".gpx"
	extGeoJSON = ".geojson"
)

type Options struct {
	Workers  int
	CacheDir string

	Years        poster.YearRange
	MinDistance  poster.Distance
	ActivityType string
	MergeGap     time.Duration

	Special         []string
	SpecialDistance poster.Distance

	// Progress is called once per file, after it has been loaded.
	Progress func()
	Logger   *log.Logger
}

// Loader reads tracks from GPX and GeoJSON files.
type Loader struct {
	Options
	cache Cache
}

func New(opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Loader{
		Options: opts,
		cache:   Cache{Dir: opts.CacheDir},
	}
}

// Files lists the track files of paths. Directories are walked
// recursively; files are kept whatever their extension.
func Files(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !supported(file) {
				return nil
			}
			files = append(files, file)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func supported(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case extGPX, extGeoJSON:
		return true
	default:
		return false
	}
}

// Load reads the tracks of files in parallel. Files that can not be turned
// into a track are logged and skipped. The returned tracks are filtered,
// merged and sorted by start time.
func (l *Loader) Load(ctx context.Context, files []string) ([]*poster.Track, error) {
	var (
		grp, sub = errgroup.WithContext(ctx)
		tracks   = make([]*poster.Track, len(files))
	)
	grp.SetLimit(l.Workers)
	for i, file := range files {
		i, file := i, file
		grp.Go(func() error {
			if err := sub.Err(); err != nil {
				return err
			}
			defer l.progress()
			t, err := l.LoadFile(file)
			if err != nil {
				if errors.Is(err, ErrTrackLoad) {
					l.Logger.Printf("%s: skipping: %s", file, err)
					return nil
				}
				return fmt.Errorf("%s: %w", file, err)
			}
			tracks[i] = t
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	tracks = slices.Filter(tracks, func(t *poster.Track) bool {
		return t != nil
	})
	l.Logger.Printf("loaded %d tracks from %d files", len(tracks), len(files))

	tracks = slices.Filter(tracks, l.keep)
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].Start.Before(tracks[j].Start)
	})
	tracks = Merge(tracks, l.MergeGap)
	l.markSpecial(tracks)
	return tracks, nil
}

// LoadFile reads one file, going through the cache when it is enabled.
func (l *Loader) LoadFile(file string) (*poster.Track, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrTrackLoad)
	}
	var key string
	if l.cache.Enabled() {
		key = l.cache.Key(data)
		if t, err := l.cache.Load(key); err == nil {
			t.Files = []string{filepath.Base(file)}
			return t, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.Logger.Printf("%s: ignoring cache entry: %s", file, err)
		}
	}
	t, err := Parse(filepath.Ext(file), data)
	if err != nil {
		return nil, err
	}
	t.Files = []string{filepath.Base(file)}
	if l.cache.Enabled() {
		if err := l.cache.Store(key, t); err != nil {
			l.Logger.Printf("%s: failed to cache track: %s", file, err)
		}
	}
	return t, nil
}

// Parse decodes data according to the file extension ext.
func Parse(ext string, data []byte) (*poster.Track, error) {
	switch strings.ToLower(ext) {
	case extGPX:
		return parseGPX(data)
	case extGeoJSON:
		return parseGeoJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported file type", ErrTrackLoad, ext)
	}
}

func (l *Loader) keep(t *poster.Track) bool {
	switch {
	case !t.HasTime():
		return false
	case t.Length < l.MinDistance:
		return false
	case !l.Years.Contains(t.Start):
		return false
	case l.ActivityType != "" && l.ActivityType != "all" && t.Activity != l.ActivityType:
		return false
	default:
		return true
	}
}

func (l *Loader) markSpecial(tracks []*poster.Track) {
	for _, t := range tracks {
		if l.SpecialDistance > 0 && t.Length >= l.SpecialDistance {
			t.Special = true
			continue
		}
		if slices.Some(t.Files, l.isSpecial) {
			t.Special = true
		}
	}
}

func (l *Loader) isSpecial(file string) bool {
	return slices.Some(l.Special, func(s string) bool {
		return s == file
	})
}

func (l *Loader) progress() {
	if l.Progress != nil {
		l.Progress()
	}
}

// Merge appends to its predecessor every track starting less than gap
// after the end of the previous track. tracks must be sorted by start time.
func Merge(tracks []*poster.Track, gap time.Duration) []*poster.Track {
	if gap <= 0 || len(tracks) == 0 {
		return tracks
	}
	list := []*poster.Track{tracks[0]}
	for _, t := range tracks[1:] {
		last := list[len(list)-1]
		if t.Start.Sub(last.End) < gap {
			last.Append(t)
			continue
		}
		list = append(list, t)
	}
	return list
}
