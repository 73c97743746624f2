package transaction

import (
	"errors"

	"encore.dev/beta/errs"

	"encore.app/transfer/domain"
	"encore.app/transfer/money"
)

var (
	ErrIncompleteProcessor = errors.New("processor is missing a collaborator")
	ErrTransactionInFlight = errors.New("transaction in flight")
	ErrAlreadyExecuted     = errors.New("transaction already executed")
	ErrNotExecutable       = errors.New("transaction cannot be executed")
	ErrCustomFeeRequired   = errors.New("custom fee level requires an amount")
)

func inFlight() error {
	return errs.WrapCode(ErrTransactionInFlight, errs.FailedPrecondition, "a transaction is already being executed")
}

func alreadyExecuted() error {
	return errs.WrapCode(ErrAlreadyExecuted, errs.FailedPrecondition, "transaction already executed; reset to start again")
}

func notExecutable(state domain.ValidationState) error {
	return errs.WrapCode(ErrNotExecutable, errs.FailedPrecondition, "transaction cannot be executed: "+string(state))
}

// coded attaches an API code to the plain errors of the money and domain
// packages. Errors that already carry a code are returned unchanged.
func coded(err error) error {
	var e *errs.Error
	switch {
	case err == nil || errors.As(err, &e):
		return err
	case errors.Is(err, money.ErrUnsupportedCurrency):
		return errs.WrapCode(err, errs.NotFound, err.Error())
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrInvalidInput),
		errors.Is(err, money.ErrCurrencyMismatch):
		return errs.WrapCode(err, errs.InvalidArgument, err.Error())
	}
	return err
}
