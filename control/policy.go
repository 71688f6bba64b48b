// Package control synthesizes the gain scheduled feedback policies for both
// vessel models and the heading aware state error they act on. Each policy
// returns a cost to go matrix S and a feedback gain K for a given state; the
// gain rotates fixed body frame PD blocks into the world frame of the
// current heading, so it must be re-evaluated whenever the state changes.
package control

import (
	"gonum.org/v1/gonum/mat"

	"github.com/harborbotics/helmsman/dynamics"
	"github.com/harborbotics/helmsman/vesselmath"
)

// PlanningGains holds the body frame PD gains and cost weights of the
// planning model policy. Proportional gains act on the projected pose error,
// derivative gains act directly on the body frame rates.
type PlanningGains struct {
	Kp          [2]float64                         // surge, yaw
	Kd          [2]float64                         // surge, yaw
	CostWeights [dynamics.PlanningStateDim]float64 // diagonal of S
}

// DefaultPlanningGains returns the tuned gains for the reference vessel.
func DefaultPlanningGains() *PlanningGains {
	return &PlanningGains{
		Kp:          [2]float64{120, 600},
		Kd:          [2]float64{120, 600},
		CostWeights: [...]float64{1, 1, 0.1, 0.01, 0.001},
	}
}

// Policy returns the cost to go matrix S (5x5) and feedback gain K (2x5) at
// the given planning model state. S is a constant diagonal; K projects the
// world frame pose error onto the surge and yaw axes of the current heading
// before applying Kp, then appends Kd on the velocity channels. Both
// matrices are rebuilt on every call, and callers must not assume caching.
func (g *PlanningGains) Policy(state *mat.VecDense) (*mat.Dense, *mat.Dense) {
	w2b := vesselmath.WorldToBodyProjection(state.AtVec(dynamics.StateHeading))

	var pos mat.Dense
	pos.Mul(mat.NewDiagDense(2, g.Kp[:]), w2b)

	var k mat.Dense
	k.Augment(&pos, mat.NewDiagDense(2, g.Kd[:]))

	s := mat.NewDense(dynamics.PlanningStateDim, dynamics.PlanningStateDim, nil)
	for i, w := range g.CostWeights {
		s.Set(i, i, w)
	}
	return s, &k
}

// TruthGains holds the body frame PD gains and cost weights of the ground
// truth model policy.
type TruthGains struct {
	Kp          [3]float64 // surge, sway, yaw
	Kd          [3]float64
	CostWeights [dynamics.TruthStateDim]float64
}

// DefaultTruthGains returns the tuned gains for the reference vessel.
func DefaultTruthGains() *TruthGains {
	return &TruthGains{
		Kp:          [3]float64{120, 120, 300},
		Kd:          [3]float64{120, 120, 200},
		CostWeights: [...]float64{1, 1, 0, 0.05, 0.05, 0},
	}
}

// Policy returns the cost to go matrix S (6x6) and feedback gain K (3x6) at
// the given truth model state. The proportional block rotates the world
// frame pose error into the body frame with the transpose of the full planar
// rotation; the derivative block applies unrotated to the body frame twist.
func (g *TruthGains) Policy(state *mat.VecDense) (*mat.Dense, *mat.Dense) {
	r := vesselmath.RotationMatrix3D(state.AtVec(dynamics.StateHeading))

	var pos mat.Dense
	pos.Mul(mat.NewDiagDense(3, g.Kp[:]), r.T())

	var k mat.Dense
	k.Augment(&pos, mat.NewDiagDense(3, g.Kd[:]))

	s := mat.NewDense(dynamics.TruthStateDim, dynamics.TruthStateDim, nil)
	for i, w := range g.CostWeights {
		s.Set(i, i, w)
	}
	return s, &k
}
