package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/planbiir/gpxanalyzer/internal/config"
	"github.com/planbiir/gpxanalyzer/internal/gpx"
	"github.com/planbiir/gpxanalyzer/internal/pace"
	"github.com/planbiir/gpxanalyzer/internal/report"
	"github.com/planbiir/gpxanalyzer/pkg/logger"
	"github.com/planbiir/gpxanalyzer/pkg/metrics"
)

const version = "gpxan v0.3.0 - GPX gradient and pace analyzer"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gpxan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		inputFile   = fs.String("i", "", "Input GPX file")
		intervalM   = fs.Float64("interval", 0, "Gradient table interval in meters (default from config, 1000)")
		target      = fs.String("target", "", "Target finish time, e.g. 1:45:00")
		flatPace    = fs.String("pace", "", "Flat ground pace per km, e.g. 5:00")
		sensitivity = fs.String("sensitivity", "", "Elevation sensitivity: "+presetList()+" or seconds per meter")
		smooth      = fs.Int("smooth", -1, "Median filter window for elevation, 0 disables")
		despike     = fs.Bool("despike", false, "Remove GPS spikes before analysis")
		maxSpeed    = fs.Float64("max-speed", 0, "Spike filter speed limit in m/s (auto-detect if 0)")
		asJSON      = fs.Bool("json", false, "Output the report as JSON")
		metricsFile = fs.String("metrics-file", "", "Write Prometheus metrics to this file")
		showVersion = fs.Bool("version", false, "Show version information")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "gpxan - Gradient table and pace plan for GPX tracks\n\n")
		fmt.Fprintf(stderr, "usage: gpxan -i /path/to/file.gpx [options]\n\n")
		fmt.Fprintf(stderr, "examples:\n")
		fmt.Fprintf(stderr, "  gpxan -i trail.gpx -target 1:45:00\n")
		fmt.Fprintf(stderr, "  gpxan -i trail.gpx -pace 5:30 -sensitivity high -interval 500\n")
		fmt.Fprintf(stderr, "  gpxan -i trail.gpx -json > report.json\n\n")
		fmt.Fprintf(stderr, "configuration: GPXAN_CONFIG=file.yaml and GPXAN_* environment variables\n\n")
		fmt.Fprintf(stderr, "options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	if *inputFile == "" {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	// Flags override configuration
	if *intervalM != 0 {
		cfg.IntervalMeters = *intervalM
	}
	if *target != "" {
		cfg.TargetDuration = *target
	}
	if *flatPace != "" {
		cfg.FlatPace = *flatPace
	}
	if *sensitivity != "" {
		cfg.Sensitivity = *sensitivity
	}
	if *smooth >= 0 {
		cfg.ElevationWindow = *smooth
	}
	if *despike {
		cfg.Despike = true
	}
	if *maxSpeed > 0 {
		cfg.MaxSpeed = *maxSpeed
	}
	if *metricsFile != "" {
		cfg.MetricsFile = *metricsFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if cfg.TargetDuration != "" {
		if _, err := pace.ParsePace(cfg.TargetDuration); err != nil {
			fmt.Fprintf(stderr, "Error: invalid target time %q: %v\n", cfg.TargetDuration, err)
			return 2
		}
	}

	if err := logger.Init(stderr, logger.Format(cfg.LogFormat)); err != nil {
		fmt.Fprintf(stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	log := logger.Named("gpxan")

	m := metrics.NewManager()

	start := time.Now()
	f, err := gpx.Parse(*inputFile)
	if err != nil {
		log.Error(ctx, "failed to read GPX file", logger.String("file", *inputFile), logger.Error(err))
		return 1
	}
	m.ObserveStage(metrics.StageParse, time.Since(start))
	log.Debug(ctx, "GPX parsed",
		logger.String("file", *inputFile),
		logger.Int("tracks", f.Tracks),
		logger.Int("segments", f.Segments),
		logger.Int("skipped", f.Skipped),
	)

	opts := report.Options{
		IntervalMeters:  cfg.IntervalMeters,
		Goal:            cfg.Goal(),
		Sensitivity:     cfg.SensitivityFactor(),
		ElevationWindow: cfg.ElevationWindow,
		Despike:         cfg.Despike,
		MaxSpeed:        cfg.MaxSpeed,
	}

	r, err := report.New(log, m).AnalyzeFile(ctx, f, opts)
	if err != nil {
		log.Error(ctx, "analysis aborted", logger.Error(err))
		return 1
	}
	if r.Source == "" {
		r.Source = *inputFile
	}

	if *asJSON {
		err = report.WriteJSON(stdout, r)
	} else {
		err = report.WriteText(stdout, r)
	}
	if err != nil {
		log.Error(ctx, "failed to write report", logger.Error(err))
		return 1
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "failed to write metrics", logger.String("file", cfg.MetricsFile), logger.Error(err))
			return 1
		}
	}

	return 0
}

func presetList() string {
	return strings.Join(pace.PresetNames(), ", ")
}
