package l1frames

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/banshee-data/contact.report/internal/monitoring"
	"github.com/banshee-data/contact.report/internal/security"
)

// placeholderLevel fills frames that could not be decoded.
const placeholderLevel = 128

// DirSource serves frames from a directory of still images (PNG/JPEG),
// ordered by file name and spaced at a fixed frame rate.
type DirSource struct {
	Dir      string
	FPS      float64
	MaxWidth int // downscale wider images to this width, 0 keeps the original size
}

// Files returns the image files in Dir in name order. Symlinks that
// resolve outside Dir are skipped.
func (s DirSource) Files() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read frame dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			path := filepath.Join(s.Dir, e.Name())
			if err := security.ValidatePathWithinDirectory(path, s.Dir); err != nil {
				monitoring.Diagf("skipping frame %s: %v", e.Name(), err)
				continue
			}
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// AllTimestamps returns one timestamp per image file.
func (s DirSource) AllTimestamps() ([]float64, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}
	return EvenTimestamps(len(files), s.FPS, 0), nil
}

// Frames implements Source. A timestamp that maps to no file, or to a file
// that fails to decode, yields a uniform placeholder frame and marks the
// whole batch ProvenancePlaceholder.
func (s DirSource) Frames(ctx context.Context, timestampsMs []float64) (Batch, error) {
	if s.FPS <= 0 {
		return Batch{}, fmt.Errorf("frame rate must be positive, got %v", s.FPS)
	}
	files, err := s.Files()
	if err != nil {
		return Batch{}, err
	}

	batch := Batch{Provenance: ProvenanceReal, Frames: make([]Frame, 0, len(timestampsMs))}
	width, height := 0, 0
	missing := make([]int, 0)

	for i, ts := range timestampsMs {
		if err := ctx.Err(); err != nil {
			return Batch{}, err
		}
		idx := int(math.Round(ts * s.FPS / 1000))
		if idx < 0 || idx >= len(files) {
			missing = append(missing, i)
			batch.Frames = append(batch.Frames, Frame{TimestampMs: ts})
			continue
		}
		f, err := s.load(files[idx], ts)
		if err != nil {
			missing = append(missing, i)
			batch.Frames = append(batch.Frames, Frame{TimestampMs: ts})
			continue
		}
		if width == 0 {
			width, height = f.Width, f.Height
		}
		batch.Frames = append(batch.Frames, f)
	}

	if len(missing) > 0 {
		if width == 0 {
			width, height = 160, 120
		}
		for _, i := range missing {
			batch.Frames[i] = NewUniformFrame(width, height, placeholderLevel, timestampsMs[i])
		}
		batch.Provenance = ProvenancePlaceholder
	}
	return batch, nil
}

func (s DirSource) load(path string, ts float64) (Frame, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if s.MaxWidth > 0 && img.Bounds().Dx() > s.MaxWidth {
		img = imaging.Resize(img, s.MaxWidth, 0, imaging.Box)
	}
	return FromImage(img, ts), nil
}

// FromImage converts any image to a grayscale Frame.
func FromImage(img image.Image, ts float64) Frame {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			pix[y*w+x] = row[x*4]
		}
	}
	return Frame{Pix: pix, Width: w, Height: h, TimestampMs: ts}
}

// ToImage converts a Frame to an *image.Gray sharing no memory with it.
func ToImage(f Frame) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Pix)
	return img
}

// SaveFrame writes a frame as an image file; the format follows the extension.
func SaveFrame(f Frame, path string) error {
	if err := imaging.Save(ToImage(f), path); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	return nil
}
