package collision

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

// FieldConfig describes a jittered grid of obstacles laid over a square
// region of the world frame.
type FieldConfig struct {
	Min, Max float64 // grid extent on both axes
	Spacing  float64
	Jitter   float64 // full span of the uniform jitter on each coordinate
	Radius   float64
	// Clearance is the keep out distance around the start and goal
	// positions; grid slots inside it stay sentinels.
	Clearance float64
}

// GenerateField lays out the grid, jittering every obstacle position and
// replacing any slot that would crowd the start or goal with a sentinel.
// Randomness comes only from the supplied source, so fields are reproducible
// under a fixed seed.
func GenerateField(rnd *rand.Rand, cfg FieldConfig, start, goal r2.Point) []Obstacle {
	var obstacles []Obstacle
	for x := cfg.Min; x <= cfg.Max+cfg.Spacing/2; x += cfg.Spacing {
		for y := cfg.Min; y <= cfg.Max+cfg.Spacing/2; y += cfg.Spacing {
			p := r2.Point{
				X: round2(x + cfg.Jitter*(rnd.Float64()-0.5)),
				Y: round2(y + cfg.Jitter*(rnd.Float64()-0.5)),
			}
			if p.Sub(start).Norm() <= cfg.Clearance || p.Sub(goal).Norm() <= cfg.Clearance {
				obstacles = append(obstacles, SentinelObstacle())
				continue
			}
			obstacles = append(obstacles, Obstacle{Center: p, Radius: cfg.Radius})
		}
	}
	return obstacles
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
