// Command contact-report measures ground contact time and flight time from
// a sequence of still frames.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/contact.report/internal/monitoring"
	"github.com/banshee-data/contact.report/internal/units"
	"github.com/banshee-data/contact.report/internal/version"
)

var (
	framesDir   = flag.String("frames", "", "Directory of frame images (PNG/JPEG), ordered by name")
	fps         = flag.Float64("fps", 30, "Frame rate of the image sequence")
	maxWidth    = flag.Int("max-width", 0, "Downscale frames wider than this (0 keeps the original size)")
	configPath  = flag.String("config", "", "Tuning config file (.json or .yaml); defaults apply when empty")
	synthetic   = flag.Bool("synthetic", false, "Analyse a generated hop sequence instead of -frames")
	outPath     = flag.String("out", "", "Write the result JSON here instead of stdout")
	plotDir     = flag.String("plot", "", "Write signal.png and signal.html debug plots into this directory")
	dbPath      = flag.String("db", "", "SQLite file for cached results and stored labels")
	labelsPath  = flag.String("labels", "", "Labels JSON to evaluate against (stored in -db when set)")
	toleranceMs = flag.Float64("tolerance-ms", 34, "Match tolerance for label evaluation in milliseconds")
	metricsOut  = flag.String("metrics-out", "", "Write Prometheus metrics in text format to this file")
	unitsFlag   = flag.String("units", units.MS, "Unit for the logged GCT and flight summary ("+units.GetValidUnitsString()+")")
	verbose     = flag.Bool("v", false, "Enable diagnostic logging")
	trace       = flag.Bool("trace", false, "Enable all logging streams, including per-stage telemetry")
	quiet       = flag.Bool("quiet", false, "Suppress progress logging")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		log.Printf("contact-report %s", version.String())
		return
	}

	switch {
	case *trace:
		monitoring.SetLegacyLogger(os.Stderr)
	case *verbose:
		monitoring.SetLogWriters(os.Stderr, os.Stderr, nil)
	default:
		monitoring.SetLogWriters(os.Stderr, nil, nil)
	}
	if *quiet {
		monitoring.SetLogger(nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := options{
		FramesDir:   *framesDir,
		FPS:         *fps,
		MaxWidth:    *maxWidth,
		ConfigPath:  *configPath,
		Synthetic:   *synthetic,
		OutPath:     *outPath,
		PlotDir:     *plotDir,
		DBPath:      *dbPath,
		LabelsPath:  *labelsPath,
		ToleranceMs: *toleranceMs,
		MetricsOut:  *metricsOut,
		Units:       *unitsFlag,
	}
	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatalf("contact-report: %v", err)
	}
}
