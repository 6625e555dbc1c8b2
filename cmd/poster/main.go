package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/midbel/poster"
	"github.com/midbel/poster/canvas"
	"github.com/midbel/poster/config"
	"github.com/midbel/poster/loader"
	"github.com/midbel/poster/tiles"
	"github.com/schollz/progressbar/v3"
)

func main() {
	var (
		cfg     = config.Default()
		file    = flag.String("config", "", "configuration file")
		verbose = flag.Bool("verbose", false, "log progress to stderr")
		special = flag.String("special", "", "comma separated list of special track files")
		clock   = poster.NewClockDrawer()
		heatmap = poster.NewHeatmapDrawer()
	)
	flag.StringVar(&cfg.Title, "title", cfg.Title, "poster title")
	flag.StringVar(&cfg.Athlete, "athlete", cfg.Athlete, "athlete name to display")
	flag.StringVar(&cfg.Type, "type", cfg.Type, "type of poster (clock, heatmap)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "output format (svg, png)")
	flag.StringVar(&cfg.Output, "output", cfg.Output, "output file")
	flag.Float64Var(&cfg.Width, "width", cfg.Width, "poster width (mm)")
	flag.Float64Var(&cfg.Height, "height", cfg.Height, "poster height (mm)")
	flag.StringVar(&cfg.Language, "language", cfg.Language, "language of labels")
	flag.StringVar(&cfg.Units, "units", cfg.Units, "distance units (metric, imperial)")
	flag.StringVar(&cfg.Year, "year", cfg.Year, "years to draw (all, YYYY, YYYY-YYYY)")
	flag.StringVar(&cfg.Colors.Background, "background-color", cfg.Colors.Background, "background color")
	flag.StringVar(&cfg.Colors.Text, "text-color", cfg.Colors.Text, "text color")
	flag.StringVar(&cfg.Colors.Track, "track-color", cfg.Colors.Track, "track color")
	flag.StringVar(&cfg.Colors.Track2, "track-color2", cfg.Colors.Track2, "secondary track color")
	flag.StringVar(&cfg.Colors.Special, "special-color", cfg.Colors.Special, "special track color")
	flag.StringVar(&cfg.Colors.Special2, "special-color2", cfg.Colors.Special2, "secondary special track color")
	flag.Float64Var(&cfg.SpecialDistance, "special-distance", cfg.SpecialDistance, "tracks longer than distance are special")
	flag.Float64Var(&cfg.MinDistance, "min-distance", cfg.MinDistance, "skip tracks shorter than distance")
	flag.StringVar(&cfg.ActivityType, "activity-type", cfg.ActivityType, "keep only tracks of activity type")
	flag.DurationVar(&cfg.MergeGap, "merge-gap", cfg.MergeGap, "merge tracks separated by less than gap")
	flag.BoolVar(&cfg.Animation.Enabled, "with-animation", cfg.Animation.Enabled, "animate the clock poster")
	flag.Float64Var(&cfg.Animation.Time, "animation-time", cfg.Animation.Time, "duration of the animation (seconds)")
	flag.StringVar(&cfg.CacheDir, "cache", cfg.CacheDir, "cache directory")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel loaders")
	clock.RegisterFlags(flag.CommandLine)
	heatmap.RegisterFlags(flag.CommandLine)
	flag.Parse()

	initLogging(*verbose)
	visited := make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		visited[f.Name] = f.Value.String()
	})
	if *file != "" {
		loaded, err := config.Load(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fail to load configuration: %s\n", err)
			os.Exit(1)
		}
		cfg = loaded
		applyDrawers(cfg, visited, clock, heatmap)
		for name, value := range visited {
			flag.Set(name, value)
		}
	}
	if *special != "" {
		cfg.Special = strings.Split(*special, ",")
	}
	if flag.NArg() > 0 {
		cfg.Input = flag.Args()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %s\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, clock, heatmap); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, poster.ErrInvalidParameter) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func initLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if !verbose {
		log.SetOutput(io.Discard)
	}
}

// applyDrawers sets the drawer options from cfg when they were not given
// on the command line.
func applyDrawers(cfg config.Config, visited map[string]string, clock *poster.ClockDrawer, heatmap *poster.HeatmapDrawer) {
	set := func(name string, fn func()) {
		if _, ok := visited[name]; !ok {
			fn()
		}
	}
	set("clock-hours", func() { clock.Hours = cfg.Clock.Hours })
	set("clock-hour-color", func() { clock.HourColor = cfg.Clock.HourColor })
	set("heatmap-center", func() { heatmap.SetCenter(cfg.Heatmap.Center) })
	set("heatmap-radius", func() { heatmap.Radius = cfg.Heatmap.Radius })
	set("heatmap-tiles", func() { heatmap.TileURL = cfg.Heatmap.Tiles })
}

func run(ctx context.Context, cfg config.Config, clock *poster.ClockDrawer, heatmap *poster.HeatmapDrawer) error {
	p, err := cfg.Poster()
	if err != nil {
		return err
	}
	drawer, err := selectDrawer(cfg, clock, heatmap)
	if err != nil {
		return err
	}
	tracks, err := loadTracks(ctx, cfg)
	if err != nil {
		return err
	}
	p.SetTracks(tracks)
	log.Printf("drawing %s poster with %d tracks", drawer.Name(), len(tracks))
	return writePoster(ctx, p, drawer, cfg.Format, cfg.Output)
}

// writePoster renders the poster in memory and only creates file once the
// drawing succeeded.
func writePoster(ctx context.Context, p *poster.Poster, drawer poster.Drawer, format, file string) error {
	var (
		buf bytes.Buffer
		c   poster.Canvas
	)
	switch format {
	case "png":
		c = canvas.NewPNG(&buf, canvas.DefaultResolution)
	default:
		c = canvas.NewSVG(&buf)
	}
	if err := p.Draw(ctx, c, drawer); err != nil {
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0o644)
}

func selectDrawer(cfg config.Config, clock *poster.ClockDrawer, heatmap *poster.HeatmapDrawer) (poster.Drawer, error) {
	var drawer poster.Drawer
	switch cfg.Type {
	case clock.Name():
		drawer = clock
	case heatmap.Name():
		heatmap.Logger = log.Default()
		if heatmap.TileURL != "" {
			tp := tiles.New(heatmap.TileURL)
			if cfg.CacheDir != "" {
				tp.CacheDir = filepath.Join(cfg.CacheDir, "tiles")
			}
			heatmap.Tiles = tp
		}
		drawer = heatmap
	default:
		return poster.GetDrawer(cfg.Type)
	}
	return drawer, drawer.Validate()
}

func loadTracks(ctx context.Context, cfg config.Config) ([]*poster.Track, error) {
	files, err := loader.Files(cfg.Input)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.LoaderOptions()
	if err != nil {
		return nil, err
	}
	bar := progressbar.Default(int64(len(files)), "Loading tracks")
	defer bar.Finish()
	opts.Progress = func() {
		bar.Add(1)
	}
	opts.Logger = log.Default()
	return loader.New(opts).Load(ctx, files)
}
