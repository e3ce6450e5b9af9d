package service

import (
	"errors"
	"fmt"
)

// Non-retryable intake failures, used by the broker consumer to decide
// against redelivery.
var (
	ErrDecode     = errors.New("decode")
	ErrValidation = errors.New("validation")
)

// FatalError aborts the request before any row is committed. Everything
// after the row is committed is logged and swallowed instead, so a caller
// that saw success holds a permanently recorded order.
type FatalError struct {
	State State
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("intake failed at %s: %v", e.State, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }
