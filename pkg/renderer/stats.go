package renderer

import (
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Stats describes the state of a progressive render
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Samples          uint64  `json:"samples"`     // Passes merged per pixel
	Checkpoints      int     `json:"checkpoints"` // Results merged
	ElapsedSeconds   float64 `json:"elapsed_seconds"`
	SamplesPerSecond float64 `json:"samples_per_second"`
	AverageLuminance float64 `json:"average_luminance"` // Of the latest snapshot
	PeakRadiance     float64 `json:"peak_radiance"`     // Brightest channel mean as of the latest snapshot
}

func newStats(res image.Point, samples uint64, checkpoints int, elapsed time.Duration) Stats {
	stats := Stats{
		Width:          res.X,
		Height:         res.Y,
		Samples:        samples,
		Checkpoints:    checkpoints,
		ElapsedSeconds: elapsed.Seconds(),
	}
	if stats.ElapsedSeconds > 0 {
		stats.SamplesPerSecond = float64(samples) / stats.ElapsedSeconds
	}
	return stats
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img
// with channels normalized to [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255).Luminance()
		}
	}
	return total / float64(count)
}
