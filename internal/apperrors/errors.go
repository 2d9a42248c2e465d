package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the resource's current state.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrPeriodClosed indicates that an entry was dated into a fiscal period that no longer accepts postings.
var ErrPeriodClosed = errors.New("fiscal period is closed for posting")

// ErrInactiveAccount indicates that a journal line references a deactivated account.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrEntryNotEditable indicates a mutation was attempted on a journal entry that is no longer a draft.
var ErrEntryNotEditable = errors.New("journal entry is not editable")

// ErrAlreadyReversed indicates the journal entry has already been reversed.
var ErrAlreadyReversed = errors.New("journal entry already reversed")

// ErrAlreadyFinalized indicates the GST return has already been finalized.
var ErrAlreadyFinalized = errors.New("GST return already finalized")

// ErrUnknownSequence indicates a document sequence name that was never registered.
var ErrUnknownSequence = errors.New("unknown document sequence")

// ErrAccountCycle indicates a parent assignment that would create a cycle in the account tree.
var ErrAccountCycle = errors.New("account hierarchy cycle detected")

// ErrPrecisionMismatch indicates an amount with more decimal places than the currency allows.
var ErrPrecisionMismatch = errors.New("amount precision exceeds currency decimal places")

// UnbalancedError reports a journal entry whose debit and credit totals differ.
// It carries both totals so the caller can correct and retry.
type UnbalancedError struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("journal entry is unbalanced: debits %s, credits %s, delta %s",
		e.TotalDebits.String(), e.TotalCredits.String(), e.Delta().String())
}

// Delta returns debits minus credits.
func (e *UnbalancedError) Delta() decimal.Decimal {
	return e.TotalDebits.Sub(e.TotalCredits)
}

// NewUnbalancedError builds an UnbalancedError from the two column totals.
func NewUnbalancedError(debits, credits decimal.Decimal) *UnbalancedError {
	return &UnbalancedError{TotalDebits: debits, TotalCredits: credits}
}

// IsUnbalanced reports whether err is (or wraps) an UnbalancedError.
func IsUnbalanced(err error) bool {
	var ub *UnbalancedError
	return errors.As(err, &ub)
}

// AppError wraps lower-level failures (typically storage) with an HTTP-ish
// code and a message safe to log. The wrapped error is preserved for errors.Is.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
