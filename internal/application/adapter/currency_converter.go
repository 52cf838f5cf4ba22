// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "github.com/shopspring/decimal"

// CurrencyConverter converts a money amount between currencies. It is a pure
// function dependency: same inputs, same output, no I/O on the call path.
// A conversion with no known rate returns domain ErrMissingConversionRate;
// the engine degrades the affected goal instead of failing the recompute.
type CurrencyConverter interface {
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}
