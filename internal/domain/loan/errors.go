package loan

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("loan not found")
	ErrProductNotFound    = errors.New("loan product not found")
	ErrProductInactive    = errors.New("loan product is not active")
	ErrNotActive          = errors.New("loan is not active")
	ErrNonPositivePayment = errors.New("payment amount must be greater than zero")
)

// AmountOutOfRangeError reports the product bound the requested amount violated.
type AmountOutOfRangeError struct {
	Min    float64
	Max    float64
	Amount float64
}

func (e *AmountOutOfRangeError) Error() string {
	if e.Amount < e.Min {
		return fmt.Sprintf("minimum loan amount is %.2f", e.Min)
	}
	return fmt.Sprintf("maximum loan amount is %.2f", e.Max)
}

// TermOutOfRangeError reports the product term bound that was violated.
type TermOutOfRangeError struct {
	Min  int
	Max  int
	Term int
}

func (e *TermOutOfRangeError) Error() string {
	if e.Term < e.Min {
		return fmt.Sprintf("minimum loan term is %d months", e.Min)
	}
	return fmt.Sprintf("maximum loan term is %d months", e.Max)
}

// InvalidTransitionError reports an unmodeled status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid loan status transition from %s to %s", e.From, e.To)
}

// OutstandingBalanceError blocks closing a loan that is not fully repaid.
type OutstandingBalanceError struct {
	Remaining float64
}

func (e *OutstandingBalanceError) Error() string {
	return fmt.Sprintf("cannot close loan with remaining balance %.2f", e.Remaining)
}
