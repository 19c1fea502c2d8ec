// Package common defines shared constants and sentinel errors used across
// client and server layers of TalentLedger. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrAuthRequired is returned when a mutating action is attempted
	// without a signed-in user. Nothing is changed.
	ErrAuthRequired = errors.New("sign in required")

	// ErrInsufficientFunds is matched by *InsufficientFundsError.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPersistence wraps any failed store write or read. The UI re-derives
	// truth from a subsequent read instead of trusting the failed write.
	ErrPersistence = errors.New("persistence error")

	// ErrPartialUnlock marks an unlock whose debit succeeded but whose grant
	// write failed. The debit is not rolled back.
	ErrPartialUnlock = errors.New("partial unlock: charged without grant")

	ErrInvalidAmount = errors.New("invalid amount")
)

// InsufficientFundsError carries the exact amounts involved in a refused debit.
type InsufficientFundsError struct {
	Required  int64
	Available int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %d coins required, %d available", e.Required, e.Available)
}

// Is reports ErrInsufficientFunds as the matching sentinel.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
