package planning

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func feasibleAlways(state, wrench *mat.VecDense) bool { return true }

func validConstraints() Constraints {
	return Constraints{
		NStates:    5,
		NControls:  2,
		GoalBuffer: []float64{8, 8, math.Inf(1), 1.1, 0.2},
		SearchBuffer: SearchBuffer{
			Min: []float64{0, 0, -math.Pi, 1, -0.2},
			Max: []float64{0, 0, math.Pi, 1.1, 0.2},
		},
		IsFeasible: feasibleAlways,
	}
}

func TestSearchBuffer(t *testing.T) {
	b := SearchBuffer{Min: []float64{0, 1, -math.Pi}, Max: []float64{0, 1.1, math.Pi}}
	test.That(t, b.Span(0), test.ShouldEqual, 0)
	test.That(t, b.Offset(0), test.ShouldEqual, 0)
	test.That(t, b.Span(1), test.ShouldAlmostEqual, 0.1)
	test.That(t, b.Offset(1), test.ShouldAlmostEqual, 1.05)
	test.That(t, b.Span(2), test.ShouldAlmostEqual, 2*math.Pi)
	test.That(t, b.Offset(2), test.ShouldEqual, 0)
}

func TestConstraintsValidate(t *testing.T) {
	c := validConstraints()
	test.That(t, c.Validate(), test.ShouldBeNil)

	c.GoalBuffer = c.GoalBuffer[:3]
	c.IsFeasible = nil
	err := c.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "goal buffer has 3 channels, want 5")
	test.That(t, err.Error(), test.ShouldContainSubstring, "feasibility predicate is required")
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		Dynamics:       func(x, u *mat.VecDense, dt float64) *mat.VecDense { return x },
		Policy:         func(x *mat.VecDense) (*mat.Dense, *mat.Dense) { return nil, nil },
		Constraints:    validConstraints(),
		Horizon:        10,
		Step:           0.1,
		ErrorTolerance: []float64{5, 5, math.Inf(1), 1.1, 0.2},
		MinPlanTime:    3,
		MaxPlanTime:    4,
		MaxNodes:       100000,
		Goal:           mat.NewVecDense(5, []float64{40, 40, math.Pi / 2, 0, 0}),
	}
	test.That(t, cfg.Validate(), test.ShouldBeNil)

	cfg.Step = 0
	cfg.MaxPlanTime = 1
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "step must be positive")
	test.That(t, err.Error(), test.ShouldContainSubstring, "not a valid interval")
}

func TestConstantTrajectory(t *testing.T) {
	ref := mat.NewVecDense(5, []float64{1, 2, 3, 4, 5})
	traj := &ConstantTrajectory{Ref: ref, NControls: 2, T: 7.5}

	test.That(t, traj.Duration(), test.ShouldEqual, 7.5)
	for _, tm := range []float64{0, 3.3, 7.5} {
		s := traj.State(tm)
		test.That(t, mat.Equal(s, ref), test.ShouldBeTrue)
		u := traj.Effort(tm)
		test.That(t, u.Len(), test.ShouldEqual, 2)
		test.That(t, mat.Norm(u, 2), test.ShouldEqual, 0)
	}

	// Returned states are copies; mutating one cannot corrupt the plan.
	s := traj.State(0)
	s.SetVec(0, -100)
	test.That(t, traj.State(0).AtVec(0), test.ShouldEqual, 1)
}

func TestSampledTrajectory(t *testing.T) {
	times := []float64{0, 1, 3}
	states := []*mat.VecDense{
		mat.NewVecDense(2, []float64{0, 0}),
		mat.NewVecDense(2, []float64{2, 10}),
		mat.NewVecDense(2, []float64{4, 10}),
	}
	efforts := []*mat.VecDense{
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{6}),
		mat.NewVecDense(1, []float64{6}),
	}
	traj, err := NewSampledTrajectory(times, states, efforts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Duration(), test.ShouldEqual, 3.0)

	// Exact knots.
	test.That(t, traj.State(1).AtVec(0), test.ShouldEqual, 2)
	// Midpoints interpolate linearly.
	test.That(t, traj.State(0.5).AtVec(0), test.ShouldAlmostEqual, 1)
	test.That(t, traj.State(0.5).AtVec(1), test.ShouldAlmostEqual, 5)
	test.That(t, traj.State(2).AtVec(0), test.ShouldAlmostEqual, 3)
	test.That(t, traj.Effort(0.5).AtVec(0), test.ShouldAlmostEqual, 3)
	// Queries clamp at the endpoints.
	test.That(t, traj.State(-1).AtVec(0), test.ShouldEqual, 0)
	test.That(t, traj.State(99).AtVec(0), test.ShouldEqual, 4)

	_, err = NewSampledTrajectory(times[:2], states, efforts)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "equal length")

	_, err = NewSampledTrajectory([]float64{0, 2, 2}, states, efforts)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "strictly increase")
}
