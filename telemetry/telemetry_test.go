// SPDX-License-Identifier: MIT
package telemetry_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/itml"
	"github.com/katalvlaran/lvmetric/solver"
	"github.com/katalvlaran/lvmetric/telemetry"
)

func TestCollector_ObserveFit(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	c, err := telemetry.NewCollector(reg, "test")
	require.NoError(t, err)

	c.ObserveFit(solver.Report{Algo: "itml", Iterations: 3, Converged: true, Duration: time.Millisecond})
	c.ObserveFit(solver.Report{Algo: "itml", Iterations: 1000, Converged: false, Duration: time.Second})
	c.ObserveFit(solver.Report{Algo: "sdml", Err: errors.New("boom")})

	expected := `
# HELP test_fits_total Completed metric-learning fits by algorithm and convergence.
# TYPE test_fits_total counter
test_fits_total{algo="itml",converged="false"} 1
test_fits_total{algo="itml",converged="true"} 1
# HELP test_fit_errors_total Fits that returned an error.
# TYPE test_fit_errors_total counter
test_fit_errors_total{algo="sdml"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_fits_total", "test_fit_errors_total"))

	// one histogram series per algo for duration, iterations only for successes
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "test_fit_duration_seconds"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "test_fit_iterations"))
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := telemetry.NewCollector(reg, "")
	require.NoError(t, err)
	_, err = telemetry.NewCollector(reg, "")
	assert.Error(t, err)
}

func TestCollector_WiredIntoFit(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := telemetry.NewCollector(reg, "lvm")
	require.NoError(t, err)

	pairs, err := constraint.NewPairSet([][][]float64{
		{{0, 0}, {0.1, 0}},
		{{0, 0}, {3, 0}},
	}, []int{1, -1})
	require.NoError(t, err)

	opts := itml.DefaultOptions()
	opts.Observer = c

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = itml.Fit(pairs, nil, opts)
		}()
	}
	wg.Wait()

	bad := itml.DefaultOptions()
	bad.Observer = c
	bad.MaxIter = 0
	_, err = itml.Fit(pairs, nil, bad)
	require.Error(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "lvm_fit_duration_seconds"))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Errors().WithLabelValues(itml.Name)))
	fits := testutil.ToFloat64(c.Fits().WithLabelValues(itml.Name, "true")) +
		testutil.ToFloat64(c.Fits().WithLabelValues(itml.Name, "false"))
	assert.Equal(t, 4.0, fits)
}
