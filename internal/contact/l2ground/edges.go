package l2ground

import (
	"math"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/mathutil"
)

// EdgePixel is one thresholded gradient sample.
type EdgePixel struct {
	X, Y      int
	Magnitude float64
}

// SobelMagnitude returns the 3x3 Sobel gradient magnitude for every interior
// pixel, row-major over the full frame. Border pixels are zero.
func SobelMagnitude(f l1frames.Frame) []float64 {
	w, h := f.Width, f.Height
	mag := make([]float64, w*h)
	if w < 3 || h < 3 {
		return mag
	}
	p := func(x, y int) float64 { return float64(f.Pix[y*w+x]) }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -p(x-1, y-1) - 2*p(x-1, y) - p(x-1, y+1) +
				p(x+1, y-1) + 2*p(x+1, y) + p(x+1, y+1)
			gy := -p(x-1, y-1) - 2*p(x, y-1) - p(x+1, y-1) +
				p(x-1, y+1) + 2*p(x, y+1) + p(x+1, y+1)
			mag[y*w+x] = math.Hypot(gx, gy)
		}
	}
	return mag
}

// Edges thresholds the Sobel magnitude adaptively at mean + EdgeSigma*stddev
// over the interior pixels. Pixels are returned in row-major order.
func Edges(f l1frames.Frame, cfg Config) []EdgePixel {
	w, h := f.Width, f.Height
	if w < 3 || h < 3 {
		return nil
	}
	mag := SobelMagnitude(f)
	interior := make([]float64, 0, (w-2)*(h-2))
	for y := 1; y < h-1; y++ {
		interior = append(interior, mag[y*w+1:y*w+w-1]...)
	}
	mean, std := mathutil.MeanStdDev(interior)
	thr := mean + cfg.EdgeSigma*std

	var edges []EdgePixel
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m := mag[y*w+x]
			if m > thr && m > cfg.MinMagnitude {
				edges = append(edges, EdgePixel{X: x, Y: y, Magnitude: m})
			}
		}
	}
	return edges
}
