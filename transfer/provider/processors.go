package provider

import (
	"time"

	"encore.app/transfer/business/transaction"
	"encore.app/transfer/domain"
)

// Processors builds the processor for each account from the catalog and the
// shared collaborators.
func Processors(
	c *Catalog,
	balances transaction.BalanceSource,
	sink transaction.ExecutionSink,
	addresses transaction.AddressValidator,
	countdown time.Duration,
) transaction.ProcessorSource {
	return transaction.ProcessorFunc(func(account domain.Account) (transaction.Processor, error) {
		rules, err := c.Rules(account.Asset)
		if err != nil {
			return transaction.Processor{}, err
		}
		return transaction.Processor{
			Balances:  balances,
			Quotes:    c,
			Fees:      c,
			Sink:      sink,
			Limits:    c,
			Addresses: addresses,
			Countdown: countdown,
			Rules:     rules,
		}, nil
	})
}
