package dynamics

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

// PlanningConfig holds the immutable physical parameters of the constrained
// planning model: velocity is tangent to heading like a car, but yaw
// authority is independent of forward motion like a boat. Construct with
// NewPlanningConfig so the drag coefficients stay consistent with the wrench
// and speed limits.
type PlanningConfig struct {
	Mass    float64 // kg
	Inertia float64 // kg m^2

	// Body frame axis limits: index 0 is surge, index 1 is yaw.
	MaxSpeed  [2]float64 // m/s, rad/s
	MaxWrench [2]float64 // N, N*m

	// ReverseThrustRatio is the fraction of the forward surge wrench
	// available astern. The saturation bound on the surge axis is
	// [-ReverseThrustRatio*MaxWrench[0], +MaxWrench[0]].
	ReverseThrustRatio float64

	drag [2]float64
}

// NewPlanningConfig validates the parameters and derives the effective
// linear drag coefficients from the wrench and speed limits (D = |u_max| /
// |v_max| per axis, so the model tops out at exactly the configured speeds).
func NewPlanningConfig(mass, inertia float64, maxSpeed, maxWrench [2]float64, reverseThrustRatio float64) (*PlanningConfig, error) {
	var errs error
	if mass <= 0 {
		errs = multierr.Append(errs, errors.Errorf("mass must be positive, got %v", mass))
	}
	if inertia <= 0 {
		errs = multierr.Append(errs, errors.Errorf("inertia must be positive, got %v", inertia))
	}
	for i := 0; i < 2; i++ {
		if maxSpeed[i] <= 0 {
			errs = multierr.Append(errs, errors.Errorf("max speed on axis %d must be positive, got %v", i, maxSpeed[i]))
		}
		if maxWrench[i] <= 0 {
			errs = multierr.Append(errs, errors.Errorf("max wrench on axis %d must be positive, got %v", i, maxWrench[i]))
		}
	}
	if reverseThrustRatio < 0 || reverseThrustRatio > 1 {
		errs = multierr.Append(errs, errors.Errorf("reverse thrust ratio must be in [0, 1], got %v", reverseThrustRatio))
	}
	if errs != nil {
		return nil, errors.Wrap(errs, "invalid planning config")
	}
	cfg := &PlanningConfig{
		Mass:               mass,
		Inertia:            inertia,
		MaxSpeed:           maxSpeed,
		MaxWrench:          maxWrench,
		ReverseThrustRatio: reverseThrustRatio,
	}
	for i := 0; i < 2; i++ {
		cfg.drag[i] = math.Abs(maxWrench[i] / maxSpeed[i])
	}
	return cfg, nil
}

// DefaultPlanningConfig returns the experimentally determined parameters of
// the reference vessel: 500 kg, twin 220 N thrusters on 2.15 m levers, and a
// tenth of forward thrust available astern.
func DefaultPlanningConfig() *PlanningConfig {
	thrustMax := 220.0
	thrustLever := 2.15
	cfg, err := NewPlanningConfig(
		500, 500,
		[2]float64{1.1, 0.2},
		[2]float64{2 * math.Sqrt2 * thrustMax, 4 * thrustLever * thrustMax},
		0.1,
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Drag returns the derived linear drag coefficient for the given axis.
func (cfg *PlanningConfig) Drag(axis int) float64 {
	return cfg.drag[axis]
}

// Saturate clamps a wrench to the actuator limits. The surge axis is
// asymmetric: only ReverseThrustRatio of the forward output is available in
// reverse. The input is never mutated.
func (cfg *PlanningConfig) Saturate(wrench *mat.VecDense) *mat.VecDense {
	u := mat.NewVecDense(PlanningControlDim, nil)
	u.SetVec(WrenchSurge, clamp(wrench.AtVec(WrenchSurge), -cfg.ReverseThrustRatio*cfg.MaxWrench[0], cfg.MaxWrench[0]))
	u.SetVec(WrenchYaw, clamp(wrench.AtVec(WrenchYaw), -cfg.MaxWrench[1], cfg.MaxWrench[1]))
	return u
}

// Step advances the planning model one timestep by explicit first order
// integration of M*vdot + D*v = u with pdot tangent to the heading. The
// wrench is saturated before evaluation, and the resulting surge speed is
// clamped to be non negative afterwards: the planning model cannot drive
// backward even when drag alone would overshoot zero.
func (cfg *PlanningConfig) Step(state, wrench *mat.VecDense, dt float64) *mat.VecDense {
	u := cfg.Saturate(wrench)

	heading := state.AtVec(StateHeading)
	surge := state.AtVec(StateSurge)
	yawRate := state.AtVec(StateYawRate)
	s, c := math.Sincos(heading)

	next := mat.NewVecDense(PlanningStateDim, nil)
	next.SetVec(StateX, state.AtVec(StateX)+c*surge*dt)
	next.SetVec(StateY, state.AtVec(StateY)+s*surge*dt)
	next.SetVec(StateHeading, heading+yawRate*dt)
	next.SetVec(StateSurge, surge+(u.AtVec(WrenchSurge)-cfg.drag[0]*surge)/cfg.Mass*dt)
	next.SetVec(StateYawRate, yawRate+(u.AtVec(WrenchYaw)-cfg.drag[1]*yawRate)/cfg.Inertia*dt)

	if next.AtVec(StateSurge) < 0 {
		next.SetVec(StateSurge, 0)
	}
	return next
}
