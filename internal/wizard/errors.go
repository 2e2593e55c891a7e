package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfOrder is returned when a slice is merged outside its step.
	ErrOutOfOrder = errors.New("wizard: slice merged out of order")

	// ErrTerminal is returned by any transition attempted from the summary.
	ErrTerminal = errors.New("wizard: booking already confirmed")

	// ErrNoPayment is returned when confirming without a recorded payment.
	ErrNoPayment = errors.New("wizard: no payment recorded")

	// ErrCannotGoBack is returned by Back on the first step.
	ErrCannotGoBack = errors.New("wizard: cannot go back from first step")

	// ErrBrokenDraft is returned when a draft violates the field order.
	ErrBrokenDraft = errors.New("wizard: draft fields out of dependency order")

	// ErrEmptySlice is returned when a slice lacks its payload.
	ErrEmptySlice = errors.New("wizard: empty slice")
)

func outOfOrder(kind SliceKind, at Step) error {
	return fmt.Errorf("%w: %s slice at step %s", ErrOutOfOrder, kind, at)
}
