package domain

import (
	"errors"
	"fmt"
)

// ErrSnapshotNotFound signals that a snapshot store has no entry under the
// requested run ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// UnknownStreamError reports a reference to a stream name that was never
// declared. Malformed topology, fails fast before any pass runs.
type UnknownStreamError struct {
	Name string
}

func (e *UnknownStreamError) Error() string {
	return fmt.Sprintf("unknown stream %q", e.Name)
}

// UnknownUnitError reports a calculation-order entry or wiring reference to
// an undeclared unit.
type UnknownUnitError struct {
	Name string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Name)
}

// SplitFractionError reports splitter fractions that do not sum to 1.0
// within tolerance. Signals bad parameters, never retried.
type SplitFractionError struct {
	Unit string
	Sum  float64
}

func (e *SplitFractionError) Error() string {
	return fmt.Sprintf("splitter %q: fractions sum to %.6f, expected 1.0", e.Unit, e.Sum)
}

// MassImbalanceError reports a unit whose computed outlets violate component
// mole conservation beyond tolerance. A unit-model bug or bad parameters.
type MassImbalanceError struct {
	Unit      string
	Component string
	In        float64
	Out       float64
}

func (e *MassImbalanceError) Error() string {
	return fmt.Sprintf("unit %q: component %s imbalance, in %.6g kmol/h vs out %.6g kmol/h",
		e.Unit, e.Component, e.In, e.Out)
}

// MissingParameterFileError reports a unit whose File reference did not
// resolve to a loaded parameter record.
type MissingParameterFileError struct {
	Unit string
	File string
}

func (e *MissingParameterFileError) Error() string {
	return fmt.Sprintf("unit %q: parameter file %q not loaded", e.Unit, e.File)
}

// StreamWriteError reports a unit writing a stream it does not declare as an
// outlet. Programming-error class: fatal, not user-recoverable.
type StreamWriteError struct {
	Unit   string
	Stream string
}

func (e *StreamWriteError) Error() string {
	return fmt.Sprintf("unit %q wrote stream %q which it does not own", e.Unit, e.Stream)
}

// ConvergenceFailure reports a steady-state solve that exceeded its pass
// cap. The residual trace is attached so callers can diagnose a poorly tuned
// loop or a genuinely unstable topology.
type ConvergenceFailure struct {
	Passes   int
	Residual float64
	Trace    []float64
}

func (e *ConvergenceFailure) Error() string {
	return fmt.Sprintf("no convergence after %d passes, last residual %.3e", e.Passes, e.Residual)
}
