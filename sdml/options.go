// SPDX-License-Identifier: MIT
package sdml

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvmetric/solver"
)

// Name is the algorithm tag used in logs and telemetry.
const Name = "sdml"

// Policy selects the handling of a non-PSD target or an indefinite estimate.
type Policy int

const (
	// PolicyShift translates the target spectrum by −λ_min to build the
	// starting covariance and logs a warning. An indefinite estimate is a
	// numerical error.
	PolicyShift Policy = iota

	// PolicyStrict rejects a non-PSD target with a configuration error.
	PolicyStrict

	// PolicyShrink behaves like PolicyShift for the target and additionally
	// repairs an indefinite estimate by shrinking it toward the identity.
	// This recovery path is deprecated and logs a warning every time it fires.
	PolicyShrink
)

var policyNames = [...]string{"shift", "strict", "shrink"}

// String returns the lower-case policy name.
func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}

	return policyNames[p]
}

// ParsePolicy maps a policy name back to its value, case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if strings.EqualFold(s, name) {
			return Policy(i), nil
		}
	}

	return 0, solver.Configf("sdml: unknown policy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// Options configures Fit.
type Options struct {
	BalanceParam  float64 `yaml:"balance_param"`  // η, weight of the pair loss
	SparsityParam float64 `yaml:"sparsity_param"` // λ, off-diagonal L1 penalty
	MaxIter       int     `yaml:"max_iter"`       // graphical lasso sweeps
	Tol           float64 `yaml:"tol"`            // dual gap tolerance
	EnetMaxIter   int     `yaml:"enet_max_iter"`  // coordinate descent passes per column
	EnetTol       float64 `yaml:"enet_tol"`
	Policy        Policy  `yaml:"policy"`

	solver.Trace `yaml:",inline"`
}

// DefaultOptions mirrors the customary SDML settings.
func DefaultOptions() Options {
	return Options{
		BalanceParam:  0.5,
		SparsityParam: 0.01,
		MaxIter:       100,
		Tol:           1e-4,
		EnetMaxIter:   100,
		EnetTol:       1e-4,
		Policy:        PolicyShift,
	}
}

// Validate checks the option ranges. Errors wrap solver.ErrConfiguration.
func (o Options) Validate() error {
	if !(o.BalanceParam >= 0) {
		return solver.Configf("sdml: balance_param must be non-negative, got %g", o.BalanceParam)
	}
	if !(o.SparsityParam >= 0) {
		return solver.Configf("sdml: sparsity_param must be non-negative, got %g", o.SparsityParam)
	}
	if err := solver.ValidateIterations("sdml: max_iter", o.MaxIter); err != nil {
		return err
	}
	if err := solver.ValidateIterations("sdml: enet_max_iter", o.EnetMaxIter); err != nil {
		return err
	}
	if err := solver.ValidatePositive("sdml: tol", o.Tol); err != nil {
		return err
	}
	if err := solver.ValidatePositive("sdml: enet_tol", o.EnetTol); err != nil {
		return err
	}
	if o.Policy < PolicyShift || o.Policy > PolicyShrink {
		return solver.Configf("sdml: unknown policy %d", int(o.Policy))
	}

	return nil
}
