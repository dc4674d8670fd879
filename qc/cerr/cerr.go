// Package cerr defines the error-kind sentinels shared across the
// compiler core (spec §7), so every layer can annotate and wrap the
// same root cause instead of inventing ad-hoc string errors. Mirrors
// the teacher dag package's exported-sentinel-variable convention
// (dag.ErrValidated, dag.ErrBadQubit, ...), generalized project-wide.
package cerr

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per spec §7 error kind. Use errors.Is against
// these, never string comparison.
var (
	ErrJsonShape           = errors.New("cerr: json violates expected shape")
	ErrUnknownPassType     = errors.New("cerr: unknown pass type")
	ErrDuplicateInstance   = errors.New("cerr: duplicate instance name among siblings")
	ErrInvalidInstanceName = errors.New("cerr: invalid instance name")
	ErrPathNotFound        = errors.New("cerr: pass path not found")
	ErrPassNotGroup        = errors.New("cerr: pass is not a group")
	ErrOptionPathNotFound  = errors.New("cerr: option path not found")
	ErrOptionValueInvalid  = errors.New("cerr: option value invalid")
	ErrGraphNotAcyclic     = errors.New("cerr: dependency graph is not acyclic")
	ErrOutOfRealQubits     = errors.New("cerr: no free real qubit available")
	ErrScheduleInfeasible  = errors.New("cerr: schedule infeasible: resource manager never released a gate")
	ErrCycleOverflow       = errors.New("cerr: cycle arithmetic overflowed")
	ErrAlreadyConstructed  = errors.New("cerr: option set already frozen by construct()")
	ErrAlreadyValidated    = errors.New("cerr: already validated, no further mutation")
)

// Context wraps err with a single layer of annotation (pass name,
// kernel name, gate index, ...), matching spec §7's propagation rule:
// "errors ... annotated with context at each layer ... by the enclosing
// component."
func Context(err error, layer, detail string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s[%s]: %w", layer, detail, err)
}

// Chain collects multiple sub-errors (e.g. the pass manager running
// several sub-passes) into one root-cause chain, preserving errors.Is
// compatibility via errors.Join.
func Chain(errs ...error) error {
	return errors.Join(errs...)
}
