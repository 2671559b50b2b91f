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

// ErrForbidden indicates the requesting user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation lost a concurrent race or hit a state
// that changed underneath it; the caller may retry the whole operation.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// InsufficientFundsError is returned when a billing account cannot cover a
// requested debit. Shortfall is the amount missing after the credit limit is
// taken into account.
type InsufficientFundsError struct {
	AccountID string
	Shortfall decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %s: short by %s", e.AccountID, e.Shortfall.String())
}

// InvalidTransitionError is returned when a shipment status change is not
// permitted by the transition table. The shipment is left unchanged.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// AlreadyMemberError is returned when a user is added to an organization while
// still belonging to a different one.
type AlreadyMemberError struct {
	UserID         string
	OrganizationID string
}

func (e *AlreadyMemberError) Error() string {
	return fmt.Sprintf("user %s already belongs to organization %s", e.UserID, e.OrganizationID)
}

// AppError wraps an underlying error with an HTTP-ish status code and a
// human-readable message. Used by repositories for infrastructure failures.
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

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
