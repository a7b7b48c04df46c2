package l3region

import (
	"github.com/banshee-data/contact.report/internal/contact/l1frames"
)

// energyTable is the summed-area table of |frame[i] - frame[i-1]|.
type energyTable struct {
	w, h int
	sum  []int64 // (w+1) x (h+1), row-major
}

func newEnergyTable(prev, cur l1frames.Frame) energyTable {
	w, h := cur.Width, cur.Height
	t := energyTable{w: w, h: h, sum: make([]int64, (w+1)*(h+1))}
	stride := w + 1
	for y := 0; y < h; y++ {
		var row int64
		for x := 0; x < w; x++ {
			d := int64(cur.Pix[y*w+x]) - int64(prev.Pix[y*w+x])
			if d < 0 {
				d = -d
			}
			row += d
			t.sum[(y+1)*stride+x+1] = t.sum[y*stride+x+1] + row
		}
	}
	return t
}

// rectSum returns the energy inside [x, x+w) x [y, y+h).
func (t energyTable) rectSum(x, y, w, h int) int64 {
	s := t.w + 1
	x2, y2 := x+w, y+h
	return t.sum[y2*s+x2] - t.sum[y*s+x2] - t.sum[y2*s+x] + t.sum[y*s+x]
}

// rectMean returns the mean energy per pixel of a rectangle.
func (t energyTable) rectMean(x, y, w, h int) float64 {
	return float64(t.rectSum(x, y, w, h)) / float64(w*h)
}

// energyTables builds tables for the last maxPairs consecutive frame pairs.
func energyTables(frames []l1frames.Frame, maxPairs int) []energyTable {
	start := 1
	if len(frames)-1 > maxPairs {
		start = len(frames) - maxPairs
	}
	tables := make([]energyTable, 0, len(frames)-start)
	for i := start; i < len(frames); i++ {
		tables = append(tables, newEnergyTable(frames[i-1], frames[i]))
	}
	return tables
}

// series samples one rectangle's mean energy in every table.
func series(tables []energyTable, x, y, w, h int) []float64 {
	out := make([]float64, len(tables))
	for i, t := range tables {
		out[i] = t.rectMean(x, y, w, h)
	}
	return out
}
