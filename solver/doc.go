// Package solver holds the contract shared by every metric learner: the
// error taxonomy, the Result triple, prior resolution and the
// logging/observation hooks (Trace, Run).
//
// Errors fall in two families matched with errors.Is:
//
//	ErrConfiguration — invalid constraints, options or prior; detected before iterating.
//	ErrNumerical     — an intermediate or final matrix is singular, indefinite or non-finite.
//
// Running out of iterations is not an error: the solver returns its
// best-effort metric with Result.Converged == false and Run.Finish logs a
// warning.
package solver
