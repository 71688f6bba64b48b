// Package planning defines the contracts shared with the external
// kinodynamic tree search planner. The kernel supplies dynamics, policy,
// feasibility, and sampling callbacks through these types; the planner hands
// back a time indexed trajectory satisfying the Trajectory interface. The
// search itself (node expansion, nearest neighbor queries, budget
// enforcement) lives entirely in the collaborator.
package planning

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

// DynamicsFunc advances a state one timestep under a wrench and returns the
// next state without mutating its inputs.
type DynamicsFunc func(state, wrench *mat.VecDense, dt float64) *mat.VecDense

// PolicyFunc returns the cost to go matrix S and feedback gain K at a state.
type PolicyFunc func(state *mat.VecDense) (*mat.Dense, *mat.Dense)

// ErrorFunc returns the error between a goal state and a state.
type ErrorFunc func(goal, state *mat.VecDense) *mat.VecDense

// FeasibleFunc reports whether a state and wrench violate any hard
// constraint.
type FeasibleFunc func(state, wrench *mat.VecDense) bool

// SampleFunc draws a candidate state for tree expansion given a read only
// view of the tree, the current goal, the search buffer, and the per channel
// goal snapping probabilities.
type SampleFunc func(tree Tree, goal *mat.VecDense, buffer SearchBuffer, bias []float64) *mat.VecDense

// SearchBuffer widens the sampling region around the goal. Each channel
// carries an asymmetric [Min, Max] interval; Span and Offset derive the
// width and center shift samplers actually use.
type SearchBuffer struct {
	Min []float64
	Max []float64
}

// Span returns the width of the buffer interval on the given channel.
func (b SearchBuffer) Span(i int) float64 {
	return b.Max[i] - b.Min[i]
}

// Offset returns the center shift of the buffer interval on the given
// channel.
func (b SearchBuffer) Offset(i int) float64 {
	return (b.Max[i] + b.Min[i]) / 2
}

// Constraints is the bundle of bounds and predicates handed to the planner
// at construction.
type Constraints struct {
	NStates   int
	NControls int
	// GoalBuffer is the symmetric per channel tolerance inside which a
	// state counts as having reached the goal.
	GoalBuffer   []float64
	SearchBuffer SearchBuffer
	IsFeasible   FeasibleFunc
}

// Validate checks that the constraint dimensions are consistent.
func (c *Constraints) Validate() error {
	var errs error
	if c.NStates <= 0 {
		errs = multierr.Append(errs, errors.Errorf("state dimension must be positive, got %d", c.NStates))
	}
	if c.NControls <= 0 {
		errs = multierr.Append(errs, errors.Errorf("control dimension must be positive, got %d", c.NControls))
	}
	if len(c.GoalBuffer) != c.NStates {
		errs = multierr.Append(errs, errors.Errorf("goal buffer has %d channels, want %d", len(c.GoalBuffer), c.NStates))
	}
	if len(c.SearchBuffer.Min) != c.NStates || len(c.SearchBuffer.Max) != c.NStates {
		errs = multierr.Append(errs, errors.Errorf("search buffer has %d/%d channels, want %d",
			len(c.SearchBuffer.Min), len(c.SearchBuffer.Max), c.NStates))
	}
	if c.IsFeasible == nil {
		errs = multierr.Append(errs, errors.New("feasibility predicate is required"))
	}
	if errs != nil {
		return errors.Wrap(errs, "invalid constraints")
	}
	return nil
}

// Config collects the construction parameters of the collaborator planner.
type Config struct {
	Dynamics    DynamicsFunc
	Policy      PolicyFunc
	Error       ErrorFunc // nil means plain subtraction
	Constraints Constraints

	Horizon        float64 // seconds of rollout per tree extension
	Step           float64 // integration timestep, seconds
	ErrorTolerance []float64

	// Planning time budget, seconds. The planner keeps refining until
	// MinPlanTime even after finding a path, and gives up at MaxPlanTime.
	MinPlanTime float64
	MaxPlanTime float64
	// MaxNodes bounds the tree; exhausting it without reaching the goal
	// tolerance is the planner's externally visible failure.
	MaxNodes int

	Goal *mat.VecDense
}

// Validate checks the planner construction parameters.
func (c *Config) Validate() error {
	var errs error
	if c.Dynamics == nil {
		errs = multierr.Append(errs, errors.New("dynamics function is required"))
	}
	if c.Policy == nil {
		errs = multierr.Append(errs, errors.New("policy function is required"))
	}
	if c.Horizon <= 0 {
		errs = multierr.Append(errs, errors.Errorf("horizon must be positive, got %v", c.Horizon))
	}
	if c.Step <= 0 {
		errs = multierr.Append(errs, errors.Errorf("step must be positive, got %v", c.Step))
	}
	if c.MinPlanTime < 0 || c.MaxPlanTime < c.MinPlanTime {
		errs = multierr.Append(errs, errors.Errorf("plan time budget [%v, %v] is not a valid interval", c.MinPlanTime, c.MaxPlanTime))
	}
	if c.MaxNodes <= 0 {
		errs = multierr.Append(errs, errors.Errorf("node budget must be positive, got %d", c.MaxNodes))
	}
	if c.Goal == nil || c.Goal.Len() != c.Constraints.NStates {
		errs = multierr.Append(errs, errors.New("goal must match the state dimension"))
	}
	if err := c.Constraints.Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return errors.Wrap(errs, "invalid planner config")
	}
	return nil
}

// UpdateOptions tune a single planning call.
type UpdateOptions struct {
	// SamplingBias holds per channel goal snapping probabilities for the
	// default sampler.
	SamplingBias []float64
	// Sampler overrides the planner's default random state generator.
	Sampler SampleFunc
	// FinishOnGoal lets the search terminate as soon as the goal
	// tolerance is met instead of spending its whole time budget.
	FinishOnGoal bool
}

// Tree is the read only view of the planner's search tree offered to
// samplers and diagnostic tooling. Node zero is always the root holding the
// start state.
type Tree interface {
	// Size returns the number of nodes.
	Size() int
	// State returns the state recorded at a node.
	State(id int) *mat.VecDense
	// StateSequence returns the states traversed from the root to a node.
	StateSequence(id int) []*mat.VecDense
	// CostToGo scores a node's state against the current goal; samplers
	// use it to find the most promising frontier node.
	CostToGo(id int) float64
}

// Planner is the interface the external collaborator satisfies.
type Planner interface {
	// Update replans from the given start state and returns the new
	// trajectory. Exhausting the node budget without reaching the goal
	// tolerance returns NewNodeBudgetError; callers must treat that as
	// fatal to the attempt rather than retryable as-is.
	Update(ctx context.Context, start *mat.VecDense, opts UpdateOptions) (Trajectory, error)
	// Tree exposes the search tree read only.
	Tree() Tree
	// NodeSequence returns the node ids composing the selected solution
	// path, root first.
	NodeSequence() []int
}

// NewNodeBudgetError signals that the node budget was exhausted before any
// path satisfied the goal tolerance.
func NewNodeBudgetError(maxNodes int) error {
	return errors.Errorf("exhausted %d-node budget before reaching goal tolerance", maxNodes)
}
