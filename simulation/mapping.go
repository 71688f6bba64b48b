package simulation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/harborbotics/helmsman/dynamics"
)

// PlanningToTruthState widens a 5 channel planning state into the 6 channel
// truth layout by inserting a zero sway velocity between surge and yaw rate.
// The correspondence is fixed by hand, not a generic reshape: the planning
// model simply never models sway. A state already in the truth layout is
// copied through unchanged.
func PlanningToTruthState(x *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(dynamics.TruthStateDim, nil)
	if x.Len() == dynamics.TruthStateDim {
		out.CopyVec(x)
		return out
	}
	out.SetVec(dynamics.StateX, x.AtVec(dynamics.StateX))
	out.SetVec(dynamics.StateY, x.AtVec(dynamics.StateY))
	out.SetVec(dynamics.StateHeading, x.AtVec(dynamics.StateHeading))
	out.SetVec(dynamics.StateSurge, x.AtVec(dynamics.StateSurge))
	out.SetVec(dynamics.TruthStateSway, 0)
	out.SetVec(dynamics.TruthStateYawRate, x.AtVec(dynamics.StateYawRate))
	return out
}

// PlanningToTruthEffort widens a 2 channel planning wrench with a zero sway
// force. A wrench already in the truth layout is copied through unchanged.
func PlanningToTruthEffort(u *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(dynamics.TruthControlDim, nil)
	if u.Len() == dynamics.TruthControlDim {
		out.CopyVec(u)
		return out
	}
	out.SetVec(dynamics.WrenchSurge, u.AtVec(dynamics.WrenchSurge))
	out.SetVec(dynamics.TruthWrenchSway, 0)
	out.SetVec(dynamics.TruthWrenchYaw, u.AtVec(dynamics.WrenchYaw))
	return out
}
