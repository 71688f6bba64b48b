// Package dynamics models the discrete time motion of a planar surface
// vessel. Two models are provided: a constrained planning model whose
// velocity stays tangent to its heading, and a richer ground truth model with
// full holonomic freedom and asymmetric drag. The planner searches with the
// first; the tracking simulator reveals the second.
//
// States and wrenches are gonum vectors. Pose channels are world frame,
// twist and wrench channels are body frame. Step methods always allocate the
// next state rather than mutating their input.
package dynamics

// Planning model dimensionality.
const (
	PlanningStateDim   = 5
	PlanningControlDim = 2
)

// Ground truth model dimensionality.
const (
	TruthStateDim   = 6
	TruthControlDim = 3
)

// State channel indices shared by both models. The truth model inserts a
// sway velocity channel between surge and yaw rate.
const (
	StateX       = 0
	StateY       = 1
	StateHeading = 2
	StateSurge   = 3
	StateYawRate = 4 // planning model only

	TruthStateSway    = 4
	TruthStateYawRate = 5
)

// Wrench channel indices.
const (
	WrenchSurge = 0
	WrenchYaw   = 1 // planning model

	TruthWrenchSway = 1
	TruthWrenchYaw  = 2
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
