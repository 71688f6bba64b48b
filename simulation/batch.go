package simulation

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/mat"

	"github.com/harborbotics/helmsman/planning"
)

// Run is a single tracking trial.
type Run struct {
	Initial    *mat.VecDense
	Trajectory planning.Trajectory
	Goal       *mat.VecDense
	Dt         float64
	Duration   float64
}

func (r *Run) validate() error {
	var errs error
	if r.Initial == nil {
		errs = multierr.Append(errs, errors.New("initial state is required"))
	}
	if r.Trajectory == nil {
		errs = multierr.Append(errs, errors.New("trajectory is required"))
	}
	if r.Goal == nil {
		errs = multierr.Append(errs, errors.New("goal state is required"))
	}
	if r.Dt <= 0 {
		errs = multierr.Append(errs, errors.Errorf("dt must be positive, got %v", r.Dt))
	}
	if r.Duration < 0 {
		errs = multierr.Append(errs, errors.Errorf("duration must be non-negative, got %v", r.Duration))
	}
	return errs
}

// RunBatch tracks independent trials concurrently, e.g. Monte Carlo sweeps
// over initial conditions. Each trial only reads shared configuration, so
// the runs never contend; results land at the index of their run. A run
// that fails validation leaves a nil History in its slot and contributes to
// the combined error.
func (tk *Tracker) RunBatch(runs []Run) ([]History, error) {
	histories := make([]History, len(runs))
	runErrs := make([]error, len(runs))

	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		i := i
		goutils.PanicCapturingGo(func() {
			defer wg.Done()
			run := runs[i]
			if err := run.validate(); err != nil {
				runErrs[i] = errors.Wrapf(err, "run %d", i)
				return
			}
			histories[i] = tk.Track(run.Initial, run.Trajectory, run.Goal, run.Dt, run.Duration)
		})
	}
	wg.Wait()

	return histories, multierr.Combine(runErrs...)
}
