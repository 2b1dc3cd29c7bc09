// SPDX-License-Identifier: MIT
// Package telemetry exports fit outcomes as Prometheus metrics.
//
// A Collector is a solver.Observer; install it in an options struct
// (opts.Observer = c) or across a whole config with config.Solvers.WithTrace.
//
// Series, labelled by algo:
//   - <ns>_fits_total{algo,converged}  finished fits without error
//   - <ns>_fit_errors_total{algo}      failed fits
//   - <ns>_fit_iterations{algo}        histogram of outer iterations
//   - <ns>_fit_duration_seconds{algo}  histogram of wall time
package telemetry

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/lvmetric/solver"
)

// DefaultNamespace prefixes every series when NewCollector gets an empty namespace.
const DefaultNamespace = "lvmetric"

// Collector records solver.Reports. It is safe for concurrent use.
type Collector struct {
	fits       *prometheus.CounterVec
	errors     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
}

// NewCollector creates the metric vectors and registers them with reg.
// A nil reg selects prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	c := &Collector{
		fits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fits_total",
			Help:      "Completed metric-learning fits by algorithm and convergence.",
		}, []string{"algo", "converged"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fit_errors_total",
			Help:      "Fits that returned an error.",
		}, []string{"algo"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_iterations",
			Help:      "Outer iterations performed per fit.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"algo"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_duration_seconds",
			Help:      "Wall time per fit.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"algo"}),
	}
	for _, col := range []prometheus.Collector{c.fits, c.errors, c.iterations, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("telemetry: register: %w", err)
		}
	}

	return c, nil
}

// ObserveFit implements solver.Observer.
func (c *Collector) ObserveFit(r solver.Report) {
	c.duration.WithLabelValues(r.Algo).Observe(r.Duration.Seconds())
	if r.Err != nil {
		c.errors.WithLabelValues(r.Algo).Inc()
		return
	}
	c.fits.WithLabelValues(r.Algo, strconv.FormatBool(r.Converged)).Inc()
	c.iterations.WithLabelValues(r.Algo).Observe(float64(r.Iterations))
}

// Fits exposes the fits_total vector.
func (c *Collector) Fits() *prometheus.CounterVec { return c.fits }

// Errors exposes the fit_errors_total vector.
func (c *Collector) Errors() *prometheus.CounterVec { return c.errors }

var _ solver.Observer = (*Collector)(nil)
