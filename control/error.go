package control

import (
	"gonum.org/v1/gonum/mat"

	"github.com/harborbotics/helmsman/dynamics"
	"github.com/harborbotics/helmsman/vesselmath"
)

// ErrorBetween returns goal minus state with the heading channel replaced by
// the shortest signed angular difference, so that channel always lands in
// (-pi, pi] no matter how many full turns separate the raw headings. It
// works for both the 5 channel planning layout and the 6 channel truth
// layout, since heading sits at the same index in each.
func ErrorBetween(goal, state *mat.VecDense) *mat.VecDense {
	e := mat.NewVecDense(state.Len(), nil)
	e.SubVec(goal, state)
	e.SetVec(dynamics.StateHeading, vesselmath.AngleDiff(
		goal.AtVec(dynamics.StateHeading), state.AtVec(dynamics.StateHeading)))
	return e
}
