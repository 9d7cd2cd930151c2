package investment

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("investment not found")
	ErrPlanNotFound = errors.New("investment plan not found")
	ErrPlanInactive = errors.New("investment plan is not active")
)

// AmountOutOfRangeError reports the plan bound the requested amount violated.
type AmountOutOfRangeError struct {
	Min    float64
	Max    float64
	Amount float64
}

func (e *AmountOutOfRangeError) Error() string {
	if e.Amount < e.Min {
		return fmt.Sprintf("minimum investment amount is %.2f", e.Min)
	}
	return fmt.Sprintf("maximum investment amount is %.2f", e.Max)
}

// UnsupportedStatusError rejects administrative transitions the engine does not
// model (anything other than completed or cancelled).
type UnsupportedStatusError struct {
	Status Status
}

func (e *UnsupportedStatusError) Error() string {
	return fmt.Sprintf("unsupported investment status %q", e.Status)
}
