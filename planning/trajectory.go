package planning

import (
	"gonum.org/v1/gonum/mat"
)

// Trajectory is the time indexed plan produced by the planner: a continuous
// mapping from elapsed time to reference state and reference effort,
// immutable once produced. State and Effort are defined on [0, Duration];
// behavior outside that interval is unspecified and callers must bound their
// queries.
type Trajectory interface {
	State(t float64) *mat.VecDense
	Effort(t float64) *mat.VecDense
	Duration() float64
}

// ConstantTrajectory holds a single reference state with zero effort for a
// fixed duration. It stands in for a real plan in tests and hold-position
// commands.
type ConstantTrajectory struct {
	Ref       *mat.VecDense
	NControls int
	T         float64
}

// State returns a copy of the held reference state.
func (ct *ConstantTrajectory) State(float64) *mat.VecDense {
	out := mat.NewVecDense(ct.Ref.Len(), nil)
	out.CopyVec(ct.Ref)
	return out
}

// Effort returns the zero wrench.
func (ct *ConstantTrajectory) Effort(float64) *mat.VecDense {
	return mat.NewVecDense(ct.NControls, nil)
}

// Duration returns the hold time.
func (ct *ConstantTrajectory) Duration() float64 {
	return ct.T
}

// SampledTrajectory interpolates linearly between reference knots recorded
// at fixed times, the form a tree search planner naturally produces.
// Queries are clamped to the first and last knots, so a slightly out of
// range time degrades to holding an endpoint rather than extrapolating.
type SampledTrajectory struct {
	times   []float64
	states  []*mat.VecDense
	efforts []*mat.VecDense
}

// NewSampledTrajectory builds a trajectory from equal length, time ordered
// knot slices. At least one knot is required; times must strictly increase.
func NewSampledTrajectory(times []float64, states, efforts []*mat.VecDense) (*SampledTrajectory, error) {
	if len(times) == 0 || len(times) != len(states) || len(times) != len(efforts) {
		return nil, errLengthMismatch(len(times), len(states), len(efforts))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, errNonIncreasingTimes(i)
		}
	}
	return &SampledTrajectory{times: times, states: states, efforts: efforts}, nil
}

// State returns the reference state at time t.
func (st *SampledTrajectory) State(t float64) *mat.VecDense {
	return st.interpolate(t, st.states)
}

// Effort returns the reference effort at time t.
func (st *SampledTrajectory) Effort(t float64) *mat.VecDense {
	return st.interpolate(t, st.efforts)
}

// Duration returns the time of the final knot.
func (st *SampledTrajectory) Duration() float64 {
	return st.times[len(st.times)-1]
}

func (st *SampledTrajectory) interpolate(t float64, knots []*mat.VecDense) *mat.VecDense {
	n := len(st.times)
	out := mat.NewVecDense(knots[0].Len(), nil)
	if t <= st.times[0] {
		out.CopyVec(knots[0])
		return out
	}
	if t >= st.times[n-1] {
		out.CopyVec(knots[n-1])
		return out
	}
	hi := 1
	for st.times[hi] < t {
		hi++
	}
	lo := hi - 1
	frac := (t - st.times[lo]) / (st.times[hi] - st.times[lo])
	out.AddScaledVec(knots[lo], frac, vecSub(knots[hi], knots[lo]))
	return out
}

func vecSub(a, b *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(a.Len(), nil)
	out.SubVec(a, b)
	return out
}
