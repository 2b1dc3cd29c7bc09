// SPDX-License-Identifier: MIT
package sdml

// Test-only access to internals.
var (
	GraphicalLasso   = graphicalLasso
	ShrinkToIdentity = shrinkToIdentity
	Invert           = invert
)

// Precision exposes the estimated precision of a graphical-lasso run.
func Precision(g *glasso) [][]float64 { return g.precision }
