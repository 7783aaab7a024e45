package formula

import (
	"errors"
	"fmt"
)

var (
	// ErrTailNormalForm is raised when tail normal form is requested for a
	// modality-headed formula.
	ErrTailNormalForm = errors.New("tail normal form is undefined for modal formulas")
	// ErrNegativePower is raised when a modal operator is built with power < 0.
	ErrNegativePower = errors.New("modal power must be non-negative")
	// ErrNilSubformula is raised when a node is built over a nil formula.
	ErrNilSubformula = errors.New("subformula must not be nil")
)

// ContractError is the panic value for caller contract violations.
type ContractError struct {
	Op     string
	Kind   Kind
	Detail string
	Err    error
}

func (e *ContractError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s on %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s on %s (%s): %v", e.Op, e.Kind, e.Detail, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }

func violate(op string, kind Kind, err error, detail string) {
	panic(&ContractError{Op: op, Kind: kind, Detail: detail, Err: err})
}
