package formula

import (
	"fmt"
	"strconv"
	"strings"
)

// ModalOption configures Box and Diamond construction.
type ModalOption func(*modalOptions)

type modalOptions struct {
	s5 bool
}

// WithS5 marks the operator as living in S5, which switches Diamond to the
// S5 simplification strategy.
func WithS5(enabled bool) ModalOption {
	return func(o *modalOptions) {
		o.s5 = enabled
	}
}

func applyModalOptions(opts []ModalOption) modalOptions {
	var o modalOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func checkModalArgs(op string, k Kind, power int, sub Formula) {
	if sub == nil {
		violate(op, k, ErrNilSubformula, "")
	}
	if power < 0 {
		violate(op, k, ErrNegativePower, fmt.Sprintf("power %d", power))
	}
}

// clampPower caps repetition of a modal operator: nested under another
// modal context it collapses to one application, at the top it keeps at
// most two.
func clampPower(depth, power int) int {
	if depth > 0 {
		return 1
	}
	return min(power, 2)
}

func renderModal(left, right string, modality, power int, sub Formula) string {
	return strings.Repeat(left+strconv.Itoa(modality)+right, power) + sub.String()
}
