package evaluation

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/contact.report/internal/contact/pipeline"
)

// namespace scopes every derived identifier to this project.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/banshee-data/contact.report"))

// DeriveVideoID returns a stable identifier for a video from its name and
// size in bytes. The same file always maps to the same ID.
func DeriveVideoID(name string, size int64) string {
	return uuid.NewSHA1(namespace, fmt.Appendf(nil, "video:%s:%d", name, size)).String()
}

// Decode describes how frames were read from a video. Two runs over the same
// video share a cached result only when their Decode values are equal.
type Decode struct {
	FPS          float64   `json:"fps"`
	MaxWidth     int       `json:"maxWidth"`
	TimestampsMs []float64 `json:"timestampsMs"`
}

// CacheKey identifies the result of analysing videoID, decoded as d, with
// cfg. Any change to the decode parameters or the configuration yields a
// different key.
func CacheKey(videoID string, d Decode, cfg pipeline.Config) (string, error) {
	b, err := json.Marshal(struct {
		Decode Decode          `json:"decode"`
		Config pipeline.Config `json:"config"`
	}{d, cfg})
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return uuid.NewSHA1(namespace, append([]byte("result:"+videoID+":"), b...)).String(), nil
}
