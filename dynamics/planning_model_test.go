package dynamics

import (
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestNewPlanningConfig(t *testing.T) {
	_, err := NewPlanningConfig(0, 500, [2]float64{1.1, 0.2}, [2]float64{600, 1800}, 0.1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "mass must be positive")

	_, err = NewPlanningConfig(500, 500, [2]float64{-1, 0.2}, [2]float64{600, 1800}, 1.5)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "max speed on axis 0")
	test.That(t, err.Error(), test.ShouldContainSubstring, "reverse thrust ratio")

	cfg, err := NewPlanningConfig(500, 500, [2]float64{1.1, 0.2}, [2]float64{660, 1800}, 0.1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Drag(0), test.ShouldAlmostEqual, 600)
	test.That(t, cfg.Drag(1), test.ShouldAlmostEqual, 9000)
}

func TestPlanningSaturation(t *testing.T) {
	cfg := DefaultPlanningConfig()

	u := cfg.Saturate(mat.NewVecDense(2, []float64{1e6, -1e6}))
	test.That(t, u.AtVec(0), test.ShouldAlmostEqual, cfg.MaxWrench[0])
	test.That(t, u.AtVec(1), test.ShouldAlmostEqual, -cfg.MaxWrench[1])

	// Only a tenth of surge thrust is available astern.
	u = cfg.Saturate(mat.NewVecDense(2, []float64{-1e6, 1e6}))
	test.That(t, u.AtVec(0), test.ShouldAlmostEqual, -cfg.MaxWrench[0]/10)
	test.That(t, u.AtVec(1), test.ShouldAlmostEqual, cfg.MaxWrench[1])

	// In-range wrenches pass through untouched.
	in := mat.NewVecDense(2, []float64{10, -10})
	u = cfg.Saturate(in)
	test.That(t, u.AtVec(0), test.ShouldEqual, 10)
	test.That(t, u.AtVec(1), test.ShouldEqual, -10)
	test.That(t, in.AtVec(0), test.ShouldEqual, 10)
}

func TestPlanningStepAtRest(t *testing.T) {
	cfg := DefaultPlanningConfig()

	// No wrench, no velocity: the vessel must not move at all.
	state := mat.NewVecDense(PlanningStateDim, nil)
	next := cfg.Step(state, mat.NewVecDense(PlanningControlDim, nil), 0.1)
	for i := 0; i < PlanningStateDim; i++ {
		test.That(t, next.AtVec(i), test.ShouldEqual, 0)
	}
	// The input state is never aliased.
	test.That(t, next, test.ShouldNotEqual, state)
}

func TestPlanningStepTangency(t *testing.T) {
	cfg := DefaultPlanningConfig()

	// Heading north with surge speed: motion is entirely along +y.
	state := mat.NewVecDense(PlanningStateDim, []float64{0, 0, 1.5707963267948966, 1, 0})
	next := cfg.Step(state, mat.NewVecDense(PlanningControlDim, nil), 0.1)
	test.That(t, next.AtVec(StateX), test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, next.AtVec(StateY), test.ShouldAlmostEqual, 0.1)

	// Yaw rate turns the heading regardless of forward motion.
	state = mat.NewVecDense(PlanningStateDim, []float64{0, 0, 0, 0, 0.2})
	next = cfg.Step(state, mat.NewVecDense(PlanningControlDim, nil), 0.1)
	test.That(t, next.AtVec(StateHeading), test.ShouldAlmostEqual, 0.02)
	test.That(t, next.AtVec(StateX), test.ShouldEqual, 0)
}

func TestPlanningStepSurgeClamp(t *testing.T) {
	cfg := DefaultPlanningConfig()

	// With a large enough dt the drag term alone would integrate surge
	// past zero; the clamp must catch it at exactly zero.
	state := mat.NewVecDense(PlanningStateDim, []float64{0, 0, 0, 0.01, 0})
	next := cfg.Step(state, mat.NewVecDense(PlanningControlDim, nil), 1.0)
	test.That(t, next.AtVec(StateSurge), test.ShouldEqual, 0)

	// With a small dt drag only decays surge toward zero.
	next = cfg.Step(state, mat.NewVecDense(PlanningControlDim, nil), 0.1)
	test.That(t, next.AtVec(StateSurge), test.ShouldBeGreaterThan, 0)
	test.That(t, next.AtVec(StateSurge), test.ShouldBeLessThan, 0.01)

	// Full reverse thrust can never produce a negative surge speed.
	state = mat.NewVecDense(PlanningStateDim, []float64{0, 0, 0, 0.05, 0})
	next = cfg.Step(state, mat.NewVecDense(PlanningControlDim, []float64{-1e6, 0}), 5.0)
	test.That(t, next.AtVec(StateSurge), test.ShouldEqual, 0)
}

func TestPlanningTopSpeed(t *testing.T) {
	cfg := DefaultPlanningConfig()

	// Holding max wrench converges surge to the configured top speed.
	state := mat.NewVecDense(PlanningStateDim, nil)
	u := mat.NewVecDense(PlanningControlDim, []float64{cfg.MaxWrench[0], 0})
	for i := 0; i < 20000; i++ {
		state = cfg.Step(state, u, 0.05)
	}
	test.That(t, state.AtVec(StateSurge), test.ShouldAlmostEqual, cfg.MaxSpeed[0], 1e-3)
}
