package renderer

import "time"

// RenderStats summarizes a completed render
type RenderStats struct {
	Width            int
	Height           int
	SamplesPerPixel  int
	TotalSamples     uint64
	TotalTiles       int
	CompletedTiles   int
	DiscardedSamples uint64
	ArenaOverflows   uint64
	Workers          int
	Elapsed          time.Duration
}

// SamplesPerSecond returns the sample throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}
