package simulation

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/harborbotics/helmsman/dynamics"
	"github.com/harborbotics/helmsman/vesselmath"
)

// Summary aggregates the tracking performance of a run.
type Summary struct {
	// Position error is the planar distance between true and reference
	// states, meters.
	MeanPositionError  float64
	MaxPositionError   float64
	FinalPositionError float64
	// Heading error is the absolute wrapped difference, radians.
	MeanHeadingError float64
	MaxHeadingError  float64
}

// Summary reduces the history to tracking error statistics.
func (h History) Summary() (Summary, error) {
	if len(h) == 0 {
		return Summary{}, errors.New("cannot summarize an empty history")
	}

	positionErrs := make(stats.Float64Data, len(h))
	headingErrs := make(stats.Float64Data, len(h))
	for i, rec := range h {
		positionErrs[i] = math.Hypot(
			rec.ReferenceState.AtVec(dynamics.StateX)-rec.TrueState.AtVec(dynamics.StateX),
			rec.ReferenceState.AtVec(dynamics.StateY)-rec.TrueState.AtVec(dynamics.StateY))
		headingErrs[i] = math.Abs(vesselmath.AngleDiff(
			rec.ReferenceState.AtVec(dynamics.StateHeading),
			rec.TrueState.AtVec(dynamics.StateHeading)))
	}

	var s Summary
	var err error
	if s.MeanPositionError, err = stats.Mean(positionErrs); err != nil {
		return Summary{}, errors.Wrap(err, "position error mean")
	}
	if s.MaxPositionError, err = stats.Max(positionErrs); err != nil {
		return Summary{}, errors.Wrap(err, "position error max")
	}
	if s.MeanHeadingError, err = stats.Mean(headingErrs); err != nil {
		return Summary{}, errors.Wrap(err, "heading error mean")
	}
	if s.MaxHeadingError, err = stats.Max(headingErrs); err != nil {
		return Summary{}, errors.Wrap(err, "heading error max")
	}
	s.FinalPositionError = positionErrs[len(positionErrs)-1]
	return s, nil
}
