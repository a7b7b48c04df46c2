package l3region

import (
	"sort"

	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/mathutil"
)

type shift struct{ dx, dy int }

// moveGain is the relative SAD improvement over staying put that a shift
// must achieve before the tracker moves. Flat or noise-only patches then
// hold still instead of wandering along their degenerate directions.
const moveGain = 0.15

// searchOrder lists every shift within radius, nearest first, so that ties
// resolve towards staying put.
func searchOrder(radius int) []shift {
	var s []shift
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			s = append(s, shift{dx, dy})
		}
	}
	sort.SliceStable(s, func(i, j int) bool {
		return abs(s[i].dx)+abs(s[i].dy) < abs(s[j].dx)+abs(s[j].dy)
	})
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// patch is a rectangular window into a frame.
type patch struct{ x, y, w, h int }

func (p patch) inside(w, h int) bool {
	return p.x >= 0 && p.y >= 0 && p.x+p.w <= w && p.y+p.h <= h
}

// referencePatch is the per-pixel temporal median of p over frames, i.e.
// the static appearance of the region with transient motion removed.
func referencePatch(frames []l1frames.Frame, p patch) []float64 {
	ref := make([]float64, p.w*p.h)
	col := make([]float64, len(frames))
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			for i, f := range frames {
				col[i] = float64(f.At(p.x+x, p.y+y))
			}
			ref[y*p.w+x] = mathutil.Median(col)
		}
	}
	return ref
}

// clipPatch intersects p with the frame.
func clipPatch(p patch, w, h int) patch {
	x0, y0 := max(p.x, 0), max(p.y, 0)
	x1, y1 := min(p.x+p.w, w), min(p.y+p.h, h)
	return patch{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

func sad(ref []float64, f l1frames.Frame, p patch) float64 {
	var s float64
	for y := 0; y < p.h; y++ {
		row := (p.y + y) * f.Width
		for x := 0; x < p.w; x++ {
			d := float64(f.Pix[row+p.x+x]) - ref[y*p.w+x]
			if d < 0 {
				d = -d
			}
			s += d
		}
	}
	return s
}

// trackStability follows region r through frames with a local SAD search of
// +/-radius around its previous position, matching against the region's
// static appearance padded by margin and clipped to the frame. It returns
// the fraction of frame steps whose cumulative drift stayed within radius.
func trackStability(frames []l1frames.Frame, r Region, radius, margin int) float64 {
	if len(frames) < 2 {
		return 0
	}
	w, h := frames[0].Width, frames[0].Height
	p := clipPatch(patch{x: r.X - margin, y: r.Y - margin, w: r.W + 2*margin, h: r.H + 2*margin}, w, h)
	if p.w < 1 || p.h < 1 {
		return 0
	}

	ref := referencePatch(frames, p)
	order := searchOrder(radius)
	ox, oy := p.x, p.y
	within := 0
	for i := 1; i < len(frames); i++ {
		stay := sad(ref, frames[i], p)
		best, bestCost := shift{}, stay
		for _, s := range order[1:] {
			cand := patch{x: p.x + s.dx, y: p.y + s.dy, w: p.w, h: p.h}
			if !cand.inside(w, h) {
				continue
			}
			if c := sad(ref, frames[i], cand); c < bestCost && c < stay*(1-moveGain) {
				best, bestCost = s, c
			}
		}
		p.x += best.dx
		p.y += best.dy
		if abs(p.x-ox) <= radius && abs(p.y-oy) <= radius {
			within++
		}
	}
	return float64(within) / float64(len(frames)-1)
}
