// SPDX-License-Identifier: MIT
package solver

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Report summarizes one finished fit for observers.
type Report struct {
	Algo       string
	RunID      string
	Iterations int
	Converged  bool
	Objective  float64
	Duration   time.Duration
	Err        error
}

// Observer receives a Report after every fit. Implementations must be safe
// for concurrent use when fits run in parallel.
type Observer interface {
	ObserveFit(Report)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Report)

// ObserveFit calls f(r).
func (f ObserverFunc) ObserveFit(r Report) { f(r) }

// Trace carries the logging and observation knobs embedded in every options struct.
//
// Fields:
//   - Verbose  — emit per-iteration progress at debug level and a completion line at info.
//   - Logger   — base logger; nil selects the global zerolog logger.
//   - Observer — optional sink notified once per fit (e.g. a Prometheus collector).
type Trace struct {
	Verbose  bool            `yaml:"verbose"`
	Logger   *zerolog.Logger `yaml:"-"`
	Observer Observer        `yaml:"-"`
}

// Run is the per-fit logging scope created by Trace.Begin.
// A Run belongs to a single fit and must not be shared across goroutines.
type Run struct {
	algo     string
	id       string
	log      zerolog.Logger
	start    time.Time
	verbose  bool
	observer Observer
}

// Begin opens a Run for algo: a fresh uuid run id, a logger scoped with the
// "algo" and "run" fields and the start time.
func (t Trace) Begin(algo string) *Run {
	base := log.Logger
	if t.Logger != nil {
		base = *t.Logger
	}
	id := uuid.New().String()

	return &Run{
		algo:     algo,
		id:       id,
		log:      base.With().Str("algo", algo).Str("run", id).Logger(),
		start:    time.Now(),
		verbose:  t.Verbose,
		observer: t.Observer,
	}
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Logger returns the scoped logger.
func (r *Run) Logger() *zerolog.Logger { return &r.log }

// Debug returns a debug event, or nil (a no-op for zerolog) when not verbose.
func (r *Run) Debug() *zerolog.Event {
	if !r.verbose {
		return nil
	}

	return r.log.Debug()
}

// Warn returns a warning event; warnings are emitted regardless of Verbose.
func (r *Run) Warn() *zerolog.Event { return r.log.Warn() }

// Progress logs one iteration with its convergence measure.
func (r *Run) Progress(iter int, measure float64) {
	r.Debug().Int("iter", iter).Float64("conv", measure).Msg("iteration")
}

// Finish closes the run: it logs the outcome, warns on non-convergence and
// notifies the observer. The returned Report is what the observer received.
func (r *Run) Finish(res Result, err error) Report {
	rep := Report{
		Algo:       r.algo,
		RunID:      r.id,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Objective:  res.Objective,
		Duration:   time.Since(r.start),
		Err:        err,
	}
	switch {
	case err != nil:
		r.log.Error().Err(err).Int("iter", res.Iterations).Msg("fit failed")
	case !res.Converged:
		r.log.Warn().Int("iter", res.Iterations).Float64("conv", res.Objective).
			Msg("did not converge within the iteration budget")
	case r.verbose:
		r.log.Info().Int("iter", res.Iterations).Float64("conv", res.Objective).
			Dur("elapsed", rep.Duration).Msg("converged")
	}
	if r.observer != nil {
		r.observer.ObserveFit(rep)
	}

	return rep
}
