package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/banshee-data/contact.report/internal/config"
	"github.com/banshee-data/contact.report/internal/contact/debug"
	"github.com/banshee-data/contact.report/internal/contact/evaluation"
	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/contact/l6gate"
	"github.com/banshee-data/contact.report/internal/contact/pipeline"
	"github.com/banshee-data/contact.report/internal/contact/storage/sqlite"
	"github.com/banshee-data/contact.report/internal/monitoring"
	"github.com/banshee-data/contact.report/internal/units"
)

// syntheticSeconds is the length of the generated sequence for -synthetic.
const syntheticSeconds = 3

type options struct {
	FramesDir   string
	FPS         float64
	MaxWidth    int
	ConfigPath  string
	Synthetic   bool
	OutPath     string
	PlotDir     string
	DBPath      string
	LabelsPath  string
	ToleranceMs float64
	MetricsOut  string
	Units       string // unit for the logged summary, empty means ms
}

func (o options) validate() error {
	if o.Synthetic == (o.FramesDir != "") {
		return errors.New("exactly one of -frames or -synthetic is required")
	}
	if o.FPS <= 0 {
		return fmt.Errorf("-fps must be positive, got %v", o.FPS)
	}
	if o.ToleranceMs < 0 {
		return fmt.Errorf("-tolerance-ms must be non-negative, got %v", o.ToleranceMs)
	}
	if o.Units != "" && !units.IsValid(o.Units) {
		return fmt.Errorf("-units must be one of %s, got %q", units.GetValidUnitsString(), o.Units)
	}
	return nil
}

func (o options) unit() string {
	if o.Units == "" {
		return units.MS
	}
	return o.Units
}

// input is one resolved frame source with the identity used for caching.
type input struct {
	videoID    string
	src        l1frames.Source
	timestamps []float64
	decode     evaluation.Decode
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	if err := o.validate(); err != nil {
		return err
	}

	tuning := config.EmptyTuningConfig()
	if o.ConfigPath != "" {
		var err error
		if tuning, err = config.LoadTuningConfig(o.ConfigPath); err != nil {
			return err
		}
	}
	cfg := pipeline.ConfigFromTuning(tuning)

	in, err := resolveInput(o)
	if err != nil {
		return err
	}

	var (
		labels  evaluation.LabelStore  = evaluation.NewMemoryLabelStore()
		results evaluation.ResultStore = evaluation.NewMemoryResultStore()
	)
	if o.DBPath != "" {
		db, err := sqlite.Open(o.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		labels = sqlite.NewLabelStore(db.DB, nil)
		results = sqlite.NewResultStore(db.DB, nil)
	}

	key, err := evaluation.CacheKey(in.videoID, in.decode, cfg)
	if err != nil {
		return err
	}
	res, err := results.GetResult(ctx, key)
	switch {
	case err == nil:
		monitoring.Logf("using cached result for video %s", in.videoID)
	case errors.Is(err, evaluation.ErrNotFound):
		if res, err = pipeline.AnalyzeSource(ctx, in.src, in.timestamps, cfg); err != nil {
			return err
		}
		if err := results.PutResult(ctx, key, in.videoID, res); err != nil {
			return err
		}
	default:
		return err
	}
	monitoring.Logf("video %s: status=%s confidence=%.3f reasons=%v", in.videoID, res.Status, res.Confidence, res.RejectionReasons)
	if m := res.Metrics; m != nil {
		gct, err := formatDuration(m.GCTMs, o.unit())
		if err != nil {
			return err
		}
		flight, err := formatDuration(m.FlightMs, o.unit())
		if err != nil {
			return err
		}
		monitoring.Logf("video %s: gct=%s flight=%s", in.videoID, gct, flight)
	}

	out := stdout
	if o.OutPath != "" {
		f, err := os.Create(o.OutPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	report, err := evaluate(ctx, o, in.videoID, labels, res)
	if err != nil {
		return err
	}
	if report != nil {
		monitoring.Logf("landings: %d matched, mean error %.1f ms; takeoffs: %d matched, mean error %.1f ms",
			len(report.Landings.Pairs), report.Landings.MeanAbsErrorMs,
			len(report.Takeoffs.Pairs), report.Takeoffs.MeanAbsErrorMs)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("write evaluation: %w", err)
		}
	}

	if o.PlotDir != "" {
		if err := writePlots(o.PlotDir, res); err != nil {
			return err
		}
	}
	if o.MetricsOut != "" {
		if err := writeMetrics(o.MetricsOut, res); err != nil {
			return err
		}
	}
	return nil
}

func resolveInput(o options) (input, error) {
	if o.Synthetic {
		sc := l1frames.DefaultSynthConfig()
		sc.FPS = o.FPS
		sc.Frames = int(syntheticSeconds * o.FPS)
		batch := sc.Batch()
		ts := batch.Timestamps()
		return input{
			videoID:    evaluation.DeriveVideoID("synthetic", int64(sc.Frames)),
			src:        l1frames.SourceFunc(func(context.Context, []float64) (l1frames.Batch, error) { return batch, nil }),
			timestamps: ts,
			decode:     evaluation.Decode{FPS: o.FPS, TimestampsMs: ts},
		}, nil
	}

	src := l1frames.DirSource{Dir: o.FramesDir, FPS: o.FPS, MaxWidth: o.MaxWidth}
	files, err := src.Files()
	if err != nil {
		return input{}, err
	}
	var size int64
	for _, f := range files {
		st, err := os.Stat(f)
		if err != nil {
			return input{}, fmt.Errorf("stat frame: %w", err)
		}
		size += st.Size()
	}
	abs, err := filepath.Abs(o.FramesDir)
	if err != nil {
		return input{}, fmt.Errorf("resolve frame dir: %w", err)
	}
	ts := l1frames.EvenTimestamps(len(files), o.FPS, 0)
	return input{
		videoID:    evaluation.DeriveVideoID(abs, size),
		src:        src,
		timestamps: ts,
		decode:     evaluation.Decode{FPS: o.FPS, MaxWidth: o.MaxWidth, TimestampsMs: ts},
	}, nil
}

// evaluate returns nil when there is nothing to compare against. Labels
// from -labels are stored first so that later runs can find them by video.
func evaluate(ctx context.Context, o options, videoID string, store evaluation.LabelStore, r l6gate.Result) (*evaluation.Report, error) {
	var labels evaluation.Labels
	if o.LabelsPath != "" {
		b, err := os.ReadFile(o.LabelsPath)
		if err != nil {
			return nil, fmt.Errorf("read labels: %w", err)
		}
		if err := json.Unmarshal(b, &labels); err != nil {
			return nil, fmt.Errorf("parse labels %s: %w", o.LabelsPath, err)
		}
		if labels.VideoID == "" {
			labels.VideoID = videoID
		}
		if err := store.PutLabels(ctx, labels); err != nil {
			return nil, err
		}
	} else {
		var err error
		labels, err = store.GetLabels(ctx, videoID)
		if errors.Is(err, evaluation.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	report := evaluation.Evaluate(r, labels, o.ToleranceMs)
	return &report, nil
}

// formatDuration renders a millisecond metric in unit. Redacted metrics
// print as n/a.
func formatDuration(ms *float64, unit string) (string, error) {
	if ms == nil {
		return "n/a", nil
	}
	v, err := units.FromMillis(*ms, unit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.3f %s", v, unit), nil
}

func writePlots(dir string, r l6gate.Result) error {
	if len(r.Diagnostics.Samples) == 0 {
		monitoring.Logf("no signal samples, skipping plots")
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create plot dir: %w", err)
	}
	if err := debug.WriteSignalPlot(filepath.Join(dir, "signal.png"), r); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "signal.html"))
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	return debug.RenderSignalChart(f, r)
}

func writeMetrics(path string, r l6gate.Result) error {
	reg := prometheus.NewRegistry()
	m, err := monitoring.NewAnalysisMetrics(reg)
	if err != nil {
		return err
	}
	pipeline.Record(m, r)
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
