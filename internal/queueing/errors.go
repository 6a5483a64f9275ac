package queueing

import "errors"

var (
	// ErrInvalidParameter reports a parameter set outside the model's
	// domain (servers < 1, negative waiting capacity).
	ErrInvalidParameter = errors.New("queueing: invalid parameter")

	// ErrUnstable reports an unbounded system with rho >= 1. Such a system
	// has no finite steady state, so no metrics can be computed for it.
	ErrUnstable = errors.New("queueing: system is unstable")
)
