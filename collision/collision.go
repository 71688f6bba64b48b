// Package collision provides the footprint versus obstacle feasibility
// predicate the planner uses as its hard constraint, plus the jittered
// obstacle field generator used to lay out test courses.
package collision

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"

	"github.com/harborbotics/helmsman/dynamics"
)

// Obstacle is a circular exclusion region in the world frame.
type Obstacle struct {
	Center r2.Point
	Radius float64
}

// sentinelCoordinate places unused obstacle slots far outside any plausible
// operating envelope; the distance check then never trips for reachable
// states without needing a special case.
const sentinelCoordinate = -9999

// SentinelObstacle returns the far away placeholder marking an empty slot in
// a generated obstacle field.
func SentinelObstacle() Obstacle {
	return Obstacle{Center: r2.Point{X: sentinelCoordinate, Y: sentinelCoordinate}, Radius: 0}
}

// Footprint is a static set of body frame sample points covering the hull
// plus a safety buffer, computed once from the vessel geometry.
type Footprint struct {
	points []r2.Point
}

// NewFootprint grids the hull rectangle, inflated by buffer, at the given
// spacing. Length runs along the body x axis, width along body y.
func NewFootprint(length, width, buffer, spacing float64) *Footprint {
	halfLength := (length + buffer) / 2
	halfWidth := (width + buffer) / 2
	var points []r2.Point
	// The half spacing slack keeps the far edge included despite float
	// accumulation in the loop variable.
	for x := -halfLength; x <= halfLength+spacing/2; x += spacing {
		for y := -halfWidth; y <= halfWidth+spacing/2; y += spacing {
			points = append(points, r2.Point{X: x, Y: y})
		}
	}
	return &Footprint{points: points}
}

// Points returns the body frame sample points.
func (f *Footprint) Points() []r2.Point {
	return f.points
}

// Checker decides whether a state keeps the whole footprint clear of every
// obstacle.
type Checker struct {
	Footprint *Footprint
	Obstacles []Obstacle

	// Margin scales each obstacle radius when testing clearance. The
	// historical value of 2 folds the vessel's safety margin into the
	// obstacle radius rather than inflating the footprint.
	Margin float64
}

// DefaultMargin doubles the obstacle radius when testing clearance.
const DefaultMargin = 2

// NewChecker builds a Checker with the default clearance margin.
func NewChecker(footprint *Footprint, obstacles []Obstacle) *Checker {
	return &Checker{Footprint: footprint, Obstacles: obstacles, Margin: DefaultMargin}
}

// IsFeasible reports whether the state's footprint, rotated by its heading
// and translated to its position, clears every obstacle by the margin. The
// bare position is always checked too, even when it falls outside the
// footprint grid. The wrench is accepted for future actuator dependent
// constraints and ignored by the geometric check. Works for both state
// layouts: only the pose channels are read.
func (c *Checker) IsFeasible(state, wrench *mat.VecDense) bool {
	sinH, cosH := math.Sincos(state.AtVec(dynamics.StateHeading))
	pos := r2.Point{X: state.AtVec(dynamics.StateX), Y: state.AtVec(dynamics.StateY)}

	for _, ob := range c.Obstacles {
		limit := c.Margin * ob.Radius
		if pos.Sub(ob.Center).Norm() <= limit {
			return false
		}
		for _, p := range c.Footprint.points {
			world := r2.Point{
				X: pos.X + cosH*p.X - sinH*p.Y,
				Y: pos.Y + sinH*p.X + cosH*p.Y,
			}
			if world.Sub(ob.Center).Norm() <= limit {
				return false
			}
		}
	}
	return true
}
