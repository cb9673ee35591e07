// Package loop provides a headless frame driver that steps a simulation
// without a display.
package loop

import (
	"context"
	"time"
)

// Stepper is a frame driver that calls the scheduled step from Run.
// Start and Stop may be called from inside the step itself.
type Stepper struct {
	// Interval paces steps. Zero steps as fast as possible.
	Interval time.Duration

	step    func()
	running bool
}

// Start schedules step to run on every frame, replacing any earlier step.
func (s *Stepper) Start(step func()) {
	s.step = step
	s.running = true
}

// Stop halts stepping. Run returns after the current step.
func (s *Stepper) Stop() {
	s.running = false
}

// Running reports whether a step is scheduled.
func (s *Stepper) Running() bool {
	return s.running
}

// Run steps until the driver is stopped, limit steps have run or ctx is
// done. A limit of zero or less means no limit. It returns the number of
// steps taken and ctx.Err() when the context ended the run.
func (s *Stepper) Run(ctx context.Context, limit int) (int, error) {
	var ticker *time.Ticker
	if s.Interval > 0 {
		ticker = time.NewTicker(s.Interval)
		defer ticker.Stop()
	}

	n := 0
	for s.running && (limit <= 0 || n < limit) {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return n, err
		}
		s.step()
		n++
	}
	return n, nil
}
