// Package sampling implements the goal biased random state generator the
// planner calls while growing its tree. All randomness comes from an
// explicit source so expansions replay exactly under a fixed seed.
package sampling

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/harborbotics/helmsman/dynamics"
	"github.com/harborbotics/helmsman/planning"
	"github.com/harborbotics/helmsman/vesselmath"
)

// DefaultHeadingNoise is the standard deviation of the bearing noise applied
// to the heading channel, about 30 degrees.
var DefaultHeadingNoise = vesselmath.DegToRad(30)

// GoalBiasSampler draws candidate states in a span centered on the goal,
// snaps individual channels onto the goal with per channel probability, and
// unconditionally points the heading channel at the goal from the most
// promising tree node.
type GoalBiasSampler struct {
	// Start is the nominal start state; together with the goal it fixes
	// the base sampling span per channel.
	Start *mat.VecDense
	// HeadingNoise is the stddev of the zero mean angular noise added to
	// the goal bearing, radians.
	HeadingNoise float64

	rnd *rand.Rand
}

// NewGoalBiasSampler builds a sampler around the given nominal start. The
// random source is required, not optional: seeding is the caller's choice.
func NewGoalBiasSampler(start *mat.VecDense, headingNoise float64, rnd *rand.Rand) *GoalBiasSampler {
	return &GoalBiasSampler{Start: start, HeadingNoise: headingNoise, rnd: rnd}
}

// Sample implements planning.SampleFunc.
//
// The base candidate is uniform over a span of width 2*|goal - start| plus
// the buffer span on each channel, centered on the goal and shifted by the
// buffer offset. Each channel then snaps to the goal value with its bias
// probability. Finally the heading channel is overridden, regardless of the
// bias outcome, with the bearing toward the goal from the tree node of
// minimum cost to go, plus noise. A single node tree (just the start) is
// handled like any other.
func (s *GoalBiasSampler) Sample(tree planning.Tree, goal *mat.VecDense, buffer planning.SearchBuffer, bias []float64) *mat.VecDense {
	n := goal.Len()
	candidate := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		span := 2*math.Abs(goal.AtVec(i)-s.Start.AtVec(i)) + buffer.Span(i)
		candidate.SetVec(i, goal.AtVec(i)+span*(s.rnd.Float64()-0.5)+buffer.Offset(i))
	}

	for i := 0; i < n && i < len(bias); i++ {
		if s.rnd.Float64() < bias[i] {
			candidate.SetVec(i, goal.AtVec(i))
		}
	}

	closest := tree.State(s.closestNode(tree))
	bearing := math.Atan2(
		goal.AtVec(dynamics.StateY)-closest.AtVec(dynamics.StateY),
		goal.AtVec(dynamics.StateX)-closest.AtVec(dynamics.StateX))
	candidate.SetVec(dynamics.StateHeading, bearing+s.HeadingNoise*s.rnd.NormFloat64())

	return candidate
}

func (s *GoalBiasSampler) closestNode(tree planning.Tree) int {
	best := 0
	bestCost := math.Inf(1)
	for id := 0; id < tree.Size(); id++ {
		if c := tree.CostToGo(id); c < bestCost {
			bestCost = c
			best = id
		}
	}
	return best
}
