// SPDX-License-Identifier: MIT
// Package learn routes a constraint set to one of the metric-learning solvers.
//
// The solvers share no base type: ITML, SDML and MMC consume labelled pairs,
// LSML consumes quadruplets. Kind names the algorithm, Input carries either
// form, and Fit checks that the two agree before routing.
//
//	cfg, _ := config.Load("solvers.yaml")
//	model, err := learn.Fit(learn.ITML, learn.Input{Pairs: pairs}, nil, cfg)
//	d, _ := model.Metric.Distance(x, y)
package learn

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvmetric/config"
	"github.com/katalvlaran/lvmetric/constraint"
	"github.com/katalvlaran/lvmetric/itml"
	"github.com/katalvlaran/lvmetric/lsml"
	"github.com/katalvlaran/lvmetric/matrix"
	"github.com/katalvlaran/lvmetric/metric"
	"github.com/katalvlaran/lvmetric/mmc"
	"github.com/katalvlaran/lvmetric/sdml"
	"github.com/katalvlaran/lvmetric/solver"
)

// Kind selects a solver.
type Kind int

const (
	ITML Kind = iota
	SDML
	MMC
	LSML
)

var kindNames = [...]string{itml.Name, sdml.Name, mmc.Name, lsml.Name}

// String returns the solver tag used in logs and telemetry.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind maps a solver tag to its Kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}

	return 0, solver.Configf("learn: unknown algorithm %q", s)
}

// Tuple returns the number of points per constraint: 2 for pair solvers, 4 for LSML.
func (k Kind) Tuple() int {
	if k == LSML {
		return 4
	}

	return 2
}

// Input holds the constraints of one fit. Exactly the field matching the
// Kind's tuple size must be set.
type Input struct {
	Pairs       *constraint.PairSet
	Quadruplets *constraint.QuadrupletSet
}

// Model is a fitted metric.
type Model struct {
	Kind   Kind
	Result solver.Result
	Metric *metric.Metric
}

// Fit validates that in matches kind, runs the solver with its section of
// cfg and freezes the learned matrix into a metric.Metric.
//
// Errors:
//   - solver.ErrConfiguration: unknown kind, missing or mismatched input, and
//     every configuration error of the chosen solver.
//   - solver.ErrNumerical: propagated from the solver.
func Fit(kind Kind, in Input, prior matrix.Matrix, cfg config.Solvers) (Model, error) {
	if err := validateInput(kind, in); err != nil {
		return Model{}, err
	}

	var (
		res solver.Result
		err error
	)
	switch kind {
	case ITML:
		res, err = itml.Fit(in.Pairs, prior, cfg.ITML)
	case SDML:
		res, err = sdml.Fit(in.Pairs, prior, cfg.SDML)
	case MMC:
		res, err = mmc.Fit(in.Pairs, prior, cfg.MMC)
	case LSML:
		res, err = lsml.Fit(in.Quadruplets, prior, cfg.LSML)
	}
	if err != nil {
		return Model{}, fmt.Errorf("learn: %s: %w", kind, err)
	}

	m, err := metric.New(res.Metric)
	if err != nil {
		return Model{}, fmt.Errorf("learn: %s: %w", kind, solver.Classify("freeze", err))
	}

	return Model{Kind: kind, Result: res, Metric: m}, nil
}

func validateInput(kind Kind, in Input) error {
	if kind < ITML || kind > LSML {
		return solver.Configf("learn: unknown algorithm %d", int(kind))
	}
	if kind.Tuple() == 4 {
		if in.Quadruplets == nil {
			return solver.Configf("learn: %s needs quadruplets", kind)
		}
		if in.Pairs != nil {
			return solver.Configf("learn: %s does not take pairs", kind)
		}

		return nil
	}
	if in.Pairs == nil {
		return solver.Configf("learn: %s needs labelled pairs", kind)
	}
	if in.Quadruplets != nil {
		return solver.Configf("learn: %s does not take quadruplets", kind)
	}

	return nil
}
