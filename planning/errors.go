package planning

import "github.com/pkg/errors"

func errLengthMismatch(times, states, efforts int) error {
	return errors.Errorf("trajectory knots must be non-empty and equal length, got %d times, %d states, %d efforts",
		times, states, efforts)
}

func errNonIncreasingTimes(i int) error {
	return errors.Errorf("trajectory knot times must strictly increase, violated at index %d", i)
}
