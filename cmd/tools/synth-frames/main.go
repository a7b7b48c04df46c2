// Command synth-frames writes a synthetic hop sequence as PNG frames, with a
// labels file holding the true landing and takeoff times.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/contact.report/internal/contact/evaluation"
	"github.com/banshee-data/contact.report/internal/contact/l1frames"
)

func main() {
	out := flag.String("out", "", "output directory")
	fps := flag.Float64("fps", 60, "frame rate")
	frames := flag.Int("n", 120, "number of frames")
	gct := flag.Float64("gct-ms", 250, "ground contact time")
	flight := flag.Float64("flight-ms", 400, "flight time")
	tilt := flag.Float64("tilt-deg", 0, "floor tilt")
	noise := flag.Int("noise", 2, "per-pixel noise amplitude")
	flag.Parse()

	if *out == "" {
		log.Fatal("-out is required")
	}

	sc := l1frames.DefaultSynthConfig()
	sc.FPS = *fps
	sc.Frames = *frames
	sc.GCTMs = *gct
	sc.FlightMs = *flight
	sc.TiltDeg = *tilt
	sc.NoiseAmp = *noise

	if err := write(*out, sc); err != nil {
		log.Fatalf("synth-frames: %v", err)
	}
	log.Printf("✓ Created %d frames in %s", sc.Frames, *out)
}

func write(dir string, sc l1frames.SynthConfig) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i := range sc.Frames {
		if err := l1frames.SaveFrame(sc.Render(i), filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))); err != nil {
			return err
		}
		if (i+1)%30 == 0 {
			log.Printf("%d/%d frames", i+1, sc.Frames)
		}
	}

	endMs := sc.StartMs + float64(sc.Frames)*1000/sc.FPS
	labels := evaluation.Labels{
		LandingsMs: sc.Landings(endMs),
		TakeoffsMs: sc.Takeoffs(endMs),
		Source:     "synth-frames",
	}
	b, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return err
	}
	// DirSource skips non-image files.
	return os.WriteFile(filepath.Join(dir, "labels.json"), b, 0o644)
}
