// Package simulation replays a planned trajectory through the ground truth
// dynamics under gain scheduled feedback and records what actually happens,
// revealing how well a plan made with the constrained model survives the
// real vessel.
package simulation

import (
	"math"

	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/mat"

	"github.com/harborbotics/helmsman/control"
	"github.com/harborbotics/helmsman/dynamics"
	"github.com/harborbotics/helmsman/planning"
)

// Record is one instant of a tracking run.
type Record struct {
	Time           float64
	TrueState      *mat.VecDense
	ReferenceState *mat.VecDense
	GoalState      *mat.VecDense
	AppliedWrench  *mat.VecDense
}

// History is the fixed step record of a full tracking run, ordered by time.
type History []Record

// Tracker runs the closed loop simulation of a planned trajectory against
// the ground truth model.
type Tracker struct {
	cfg    *dynamics.TruthConfig
	gains  *control.TruthGains
	logger golog.Logger
}

// NewTracker builds a Tracker around the given truth model and gains.
func NewTracker(cfg *dynamics.TruthConfig, gains *control.TruthGains, logger golog.Logger) *Tracker {
	return &Tracker{cfg: cfg, gains: gains, logger: logger}
}

// Track replays the trajectory from the initial state at fixed step dt over
// [0, duration). Planning layout states widen via the fixed channel maps.
//
// At each step the reference state and effort are queried at the current
// time, the feedback gain is evaluated at the true state rather than the
// reference (the controller measures the real vessel), and the applied
// wrench is K times the heading aware error plus the reference effort as
// feed-forward. There is no early exit on convergence; the caller gets the
// whole horizon, including any loitering after the goal is reached. Query
// times stay within the trajectory's stated domain only if duration does;
// bounding that is the caller's job.
func (tk *Tracker) Track(initial *mat.VecDense, traj planning.Trajectory, goal *mat.VecDense, dt, duration float64) History {
	steps := int(math.Ceil(duration / dt))
	x := PlanningToTruthState(initial)
	goalState := PlanningToTruthState(goal)

	history := make(History, 0, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) * dt
		ref := PlanningToTruthState(traj.State(t))
		refEffort := PlanningToTruthEffort(traj.Effort(t))

		_, k := tk.gains.Policy(x)
		wrench := mat.NewVecDense(dynamics.TruthControlDim, nil)
		wrench.MulVec(k, control.ErrorBetween(ref, x))
		wrench.AddVec(wrench, refEffort)

		history = append(history, Record{
			Time:           t,
			TrueState:      x,
			ReferenceState: ref,
			GoalState:      goalState,
			AppliedWrench:  wrench,
		})
		x = tk.cfg.Step(x, wrench, dt)
	}
	tk.logger.Debugf("tracked %d steps of %.3fs over %.2fs", steps, dt, duration)
	return history
}
