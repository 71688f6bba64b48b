// Package vesselmath provides the small pieces of planar math shared by the
// dynamics, control, and collision packages: angle wraparound and rotation
// matrix construction. Headings are never assumed normalized anywhere in this
// module; wraparound is handled at each point of use with these helpers.
package vesselmath

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// WrapToPi returns the given angle in the (-pi, pi] range.
func WrapToPi(theta float64) float64 {
	wrapped := math.Mod(theta, 2*math.Pi)
	if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	} else if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// AngleDiff returns the shortest signed difference goal-theta, always in
// (-pi, pi] regardless of how many full turns separate the raw angles.
// Identical inputs yield exactly zero.
func AngleDiff(goal, theta float64) float64 {
	sg, cg := math.Sincos(goal)
	s, c := math.Sincos(theta)
	return math.Atan2(sg*c-cg*s, cg*c+sg*s)
}

// RotationMatrix2D returns the 2x2 planar rotation for theta, converting
// body frame coordinates to world frame.
func RotationMatrix2D(theta float64) *mat.Dense {
	s, c := math.Sincos(theta)
	return mat.NewDense(2, 2, []float64{
		c, -s,
		s, c,
	})
}

// RotationMatrix3D returns the 3x3 rotation acting on [x y yaw] channels.
// The yaw channel passes through unrotated.
func RotationMatrix3D(theta float64) *mat.Dense {
	s, c := math.Sincos(theta)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// WorldToBodyProjection returns the 2x3 matrix projecting a world frame
// [x y heading] error onto the surge and yaw axes of a vessel at the given
// heading. These are the first and third rows of RotationMatrix3D transposed;
// the sway row is dropped because the constrained model has no sway channel.
func WorldToBodyProjection(theta float64) *mat.Dense {
	s, c := math.Sincos(theta)
	return mat.NewDense(2, 3, []float64{
		c, s, 0,
		0, 0, 1,
	})
}
