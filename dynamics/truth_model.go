package dynamics

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

// TruthConfig holds the immutable physical parameters of the ground truth
// model: a fully holonomic planar vessel with distinct drag coefficients for
// forward and reverse motion on every axis. It deliberately shares nothing
// with PlanningConfig so neither model can silently read the other's
// constants.
type TruthConfig struct {
	Mass    float64 // kg
	Inertia float64 // kg m^2

	// Body frame axis limits: surge, sway, yaw. Reverse speeds are
	// negative (top speed moving astern / to port / turning the other
	// way).
	MaxSpeedForward [3]float64
	MaxSpeedReverse [3]float64
	MaxWrench       [3]float64 // N, N, N*m; symmetric saturation

	dragForward [3]float64
	dragReverse [3]float64
}

// NewTruthConfig validates the parameters and derives both drag coefficient
// sets from the wrench and speed limits.
func NewTruthConfig(mass, inertia float64, maxSpeedForward, maxSpeedReverse, maxWrench [3]float64) (*TruthConfig, error) {
	var errs error
	if mass <= 0 {
		errs = multierr.Append(errs, errors.Errorf("mass must be positive, got %v", mass))
	}
	if inertia <= 0 {
		errs = multierr.Append(errs, errors.Errorf("inertia must be positive, got %v", inertia))
	}
	for i := 0; i < 3; i++ {
		if maxSpeedForward[i] <= 0 {
			errs = multierr.Append(errs, errors.Errorf("forward speed limit on axis %d must be positive, got %v", i, maxSpeedForward[i]))
		}
		if maxSpeedReverse[i] >= 0 {
			errs = multierr.Append(errs, errors.Errorf("reverse speed limit on axis %d must be negative, got %v", i, maxSpeedReverse[i]))
		}
		if maxWrench[i] <= 0 {
			errs = multierr.Append(errs, errors.Errorf("max wrench on axis %d must be positive, got %v", i, maxWrench[i]))
		}
	}
	if errs != nil {
		return nil, errors.Wrap(errs, "invalid truth config")
	}
	cfg := &TruthConfig{
		Mass:            mass,
		Inertia:         inertia,
		MaxSpeedForward: maxSpeedForward,
		MaxSpeedReverse: maxSpeedReverse,
		MaxWrench:       maxWrench,
	}
	for i := 0; i < 3; i++ {
		cfg.dragForward[i] = math.Abs(maxWrench[i] / maxSpeedForward[i])
		cfg.dragReverse[i] = math.Abs(maxWrench[i] / maxSpeedReverse[i])
	}
	return cfg, nil
}

// DefaultTruthConfig returns the revealed parameters of the reference
// vessel. The hull is slower astern and abeam than ahead, which is where the
// asymmetric drag sets come from.
func DefaultTruthConfig() *TruthConfig {
	thrustMax := 220.0
	thrustLever := 2.15
	surgeMax := 2 * math.Sqrt2 * thrustMax
	cfg, err := NewTruthConfig(
		500, 500,
		[3]float64{1.1, 0.45, 0.2},
		[3]float64{-0.68, -0.45, -0.2},
		[3]float64{surgeMax, surgeMax, 4 * thrustLever * thrustMax},
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Drag returns the drag coefficient selected for the given axis at the given
// body frame velocity: the forward set for non negative motion, the reverse
// set otherwise.
func (cfg *TruthConfig) Drag(axis int, velocity float64) float64 {
	if velocity >= 0 {
		return cfg.dragForward[axis]
	}
	return cfg.dragReverse[axis]
}

// Saturate clamps a wrench to the symmetric actuator limits. The input is
// never mutated.
func (cfg *TruthConfig) Saturate(wrench *mat.VecDense) *mat.VecDense {
	u := mat.NewVecDense(TruthControlDim, nil)
	for i := 0; i < TruthControlDim; i++ {
		u.SetVec(i, clamp(wrench.AtVec(i), -cfg.MaxWrench[i], cfg.MaxWrench[i]))
	}
	return u
}

// Step advances the truth model one timestep by explicit first order
// integration. The body frame twist is rotated into the world frame by the
// full planar rotation of the current heading, and each axis selects its
// drag coefficient from the sign of its body frame velocity at the start of
// the step. There is no sign clamp afterwards; the real vessel reverses
// freely.
func (cfg *TruthConfig) Step(state, wrench *mat.VecDense, dt float64) *mat.VecDense {
	u := cfg.Saturate(wrench)

	heading := state.AtVec(StateHeading)
	surge := state.AtVec(StateSurge)
	sway := state.AtVec(TruthStateSway)
	yawRate := state.AtVec(TruthStateYawRate)
	s, c := math.Sincos(heading)

	invMass := [3]float64{1 / cfg.Mass, 1 / cfg.Mass, 1 / cfg.Inertia}
	twist := [3]float64{surge, sway, yawRate}

	next := mat.NewVecDense(TruthStateDim, nil)
	next.SetVec(StateX, state.AtVec(StateX)+(c*surge-s*sway)*dt)
	next.SetVec(StateY, state.AtVec(StateY)+(s*surge+c*sway)*dt)
	next.SetVec(StateHeading, heading+yawRate*dt)
	for i := 0; i < 3; i++ {
		accel := invMass[i] * (u.AtVec(i) - cfg.Drag(i, twist[i])*twist[i])
		next.SetVec(StateSurge+i, twist[i]+accel*dt)
	}
	return next
}
