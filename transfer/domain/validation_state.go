package domain

// ValidationState is the outcome of checking a pending transaction against
// balance, limit and address rules. It is stored and displayed, never thrown.
type ValidationState string

const (
	ValidationUninitialized             ValidationState = "uninitialized"
	ValidationCanExecute                ValidationState = "can_execute"
	ValidationBelowMinimumLimit         ValidationState = "below_minimum_limit"
	ValidationInsufficientFunds         ValidationState = "insufficient_funds"
	ValidationInsufficientGas           ValidationState = "insufficient_gas"
	ValidationInsufficientFundsForFees  ValidationState = "insufficient_funds_for_fees"
	ValidationInvalidAmount             ValidationState = "invalid_amount"
	ValidationInvalidAddress            ValidationState = "invalid_address"
	ValidationInvoiceExpired            ValidationState = "invoice_expired"
	ValidationTransactionInFlight       ValidationState = "transaction_in_flight"
	ValidationAddressIsContract         ValidationState = "address_is_contract"
	ValidationOptionInvalid             ValidationState = "option_invalid"
	ValidationOverGoldTierLimit         ValidationState = "over_gold_tier_limit"
	ValidationOverSilverTierLimit       ValidationState = "over_silver_tier_limit"
	ValidationOverMaximumLimit          ValidationState = "over_maximum_limit"
	ValidationPendingOrdersLimitReached ValidationState = "pending_orders_limit_reached"
	ValidationUnknownError              ValidationState = "unknown_error"
)

var validationStates = []ValidationState{
	ValidationUninitialized,
	ValidationCanExecute,
	ValidationBelowMinimumLimit,
	ValidationInsufficientFunds,
	ValidationInsufficientGas,
	ValidationInsufficientFundsForFees,
	ValidationInvalidAmount,
	ValidationInvalidAddress,
	ValidationInvoiceExpired,
	ValidationTransactionInFlight,
	ValidationAddressIsContract,
	ValidationOptionInvalid,
	ValidationOverGoldTierLimit,
	ValidationOverSilverTierLimit,
	ValidationOverMaximumLimit,
	ValidationPendingOrdersLimitReached,
	ValidationUnknownError,
}

// IsKnown reports whether s is one of the declared states.
func (s ValidationState) IsKnown() bool {
	for _, known := range validationStates {
		if s == known {
			return true
		}
	}
	return false
}

// IsBlocking is true for every state other than uninitialized and canExecute.
func (s ValidationState) IsBlocking() bool {
	return s != ValidationUninitialized && s != ValidationCanExecute
}

type notice struct {
	title   string
	message string
}

var notices = map[ValidationState]notice{
	ValidationBelowMinimumLimit:         {"Amount too low", "The amount is below the minimum allowed for this transaction."},
	ValidationInsufficientFunds:         {"Not enough funds", "You do not have enough funds to send this amount."},
	ValidationInsufficientGas:           {"Not enough for network fees", "Your fee wallet cannot cover the network fee for this transaction."},
	ValidationInsufficientFundsForFees:  {"Not enough for fees", "Your balance does not cover the network fee."},
	ValidationInvalidAmount:             {"Invalid amount", "Enter an amount greater than zero."},
	ValidationInvalidAddress:            {"Invalid address", "The destination address is not valid for this asset."},
	ValidationInvoiceExpired:            {"Invoice expired", "This invoice has expired. Request a new one to continue."},
	ValidationTransactionInFlight:       {"Transaction in progress", "Wait for your pending transaction to confirm and try again."},
	ValidationAddressIsContract:         {"Contract address", "Sending to a contract address is not supported."},
	ValidationOptionInvalid:             {"Missing confirmation", "Review and accept the required options before continuing."},
	ValidationOverGoldTierLimit:         {"Over your limit", "The amount exceeds your Gold tier limit."},
	ValidationOverSilverTierLimit:       {"Over your limit", "The amount exceeds your Silver tier limit. Upgrade to Gold for higher limits."},
	ValidationOverMaximumLimit:          {"Over maximum", "The amount is above the maximum allowed for this transaction."},
	ValidationPendingOrdersLimitReached: {"Too many pending orders", "Wait for your pending orders to complete before placing another."},
	ValidationUnknownError:              {"Something went wrong", "Please try again later."},
}

// Notice returns the user-facing title and message for s. Uninitialized and
// canExecute have none.
func (s ValidationState) Notice() (title, message string, ok bool) {
	n, ok := notices[s]
	return n.title, n.message, ok
}
