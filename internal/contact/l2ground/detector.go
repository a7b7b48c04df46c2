package l2ground

import (
	"github.com/banshee-data/contact.report/internal/contact/l1frames"
	"github.com/banshee-data/contact.report/internal/monitoring"
)

// Reason codes attached to a Detection.
const (
	ReasonNoFrames      = "NO_FRAMES"
	ReasonNoEdges       = "NO_EDGES"
	ReasonNoClusters    = "NO_CLUSTERS"
	ReasonLowConfidence = "LOW_CONFIDENCE"
)

// maxReportedClusters bounds the cluster list kept for diagnostics.
const maxReportedClusters = 5

// Detection is the ground detector's output. Model is KindUnknown with zero
// confidence unless the best cluster reached cfg.MinConfidence.
type Detection struct {
	Model      Model     `json:"model"`
	Detected   bool      `json:"detected"`
	FrameCount int       `json:"frameCount"`
	EdgeFrames int       `json:"edgeFrames"`
	Candidates int       `json:"candidates"`
	Clusters   []Cluster `json:"clusters,omitempty"`
	Reasons    []string  `json:"reasons,omitempty"`
}

// Detect finds the single most persistent, plausible line across frames.
func Detect(frames []l1frames.Frame, cfg Config) Detection {
	det := Detection{Model: Unknown(), FrameCount: len(frames)}
	if len(frames) == 0 {
		det.Reasons = []string{ReasonNoFrames}
		return det
	}

	perFrame := make([][]Candidate, len(frames))
	for i, f := range frames {
		edges := Edges(f, cfg)
		if len(edges) == 0 {
			continue
		}
		det.EdgeFrames++
		perFrame[i] = FrameCandidates(edges, f.Width, f.Height, cfg)
		det.Candidates += len(perFrame[i])
	}
	if det.EdgeFrames == 0 {
		det.Reasons = []string{ReasonNoEdges}
		return det
	}

	return finish(det, perFrame, frames[0].Width, frames[0].Height, cfg)
}

// finish clusters per-frame candidates and fills in the chosen model.
func finish(det Detection, perFrame [][]Candidate, width, height int, cfg Config) Detection {
	ranked := scoreClusters(clusterCandidates(perFrame, cfg), len(perFrame), cfg)
	if len(ranked) == 0 {
		det.Reasons = append(det.Reasons, ReasonNoClusters)
		return det
	}
	if len(ranked) > maxReportedClusters {
		det.Clusters = ranked[:maxReportedClusters]
	} else {
		det.Clusters = ranked
	}

	best := ranked[0]
	monitoring.Tracef("ground: best theta=%.3f rho=%.1f score=%.3f conf=%.3f of %d clusters",
		best.Theta, best.Rho, best.Score, best.Confidence, len(ranked))
	if best.Confidence < cfg.MinConfidence {
		det.Reasons = append(det.Reasons, ReasonLowConfidence)
		return det
	}
	det.Detected = true
	det.Model = PolarModel(best.Theta, best.Rho, best.Confidence, width, height)
	return det
}
