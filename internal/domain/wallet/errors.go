package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnknownType         = errors.New("unknown transaction type")
	ErrNonPositiveAmount   = errors.New("amount must be greater than zero")
)

// InsufficientBalanceError carries the violated bound so callers can render an
// actionable message.
type InsufficientBalanceError struct {
	Available float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient wallet balance: requested %.2f, available %.2f", e.Requested, e.Available)
}
