// Package adapters implements service adapters for external integrations.
package adapters

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/application/adapter"
	domainerror "github.com/life-planner/backend/internal/domain/error"
)

// RateTableCurrencyService converts currencies from an in-memory rate table.
// The rate feed (whatever process refreshes rates) loads pairs via SetRate;
// conversions are pure lookups with no I/O, as the engine requires.
type RateTableCurrencyService struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal // keyed "FROM/TO"
}

// NewRateTableCurrencyService creates a converter with an empty rate table.
func NewRateTableCurrencyService() *RateTableCurrencyService {
	return &RateTableCurrencyService{
		rates: make(map[string]decimal.Decimal),
	}
}

var _ adapter.CurrencyConverter = (*RateTableCurrencyService)(nil)

// SetRate stores the rate for one direction and its inverse.
func (s *RateTableCurrencyService) SetRate(from, to string, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[from+"/"+to] = rate
	if !rate.IsZero() {
		s.rates[to+"/"+from] = decimal.NewFromInt(1).Div(rate)
	}
}

// Convert converts amount from one currency to another. Converting a
// currency to itself is the identity. An unknown pair returns a
// MissingConversionRate error; callers degrade rather than guess a number.
func (s *RateTableCurrencyService) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to || from == "" || to == "" {
		return amount, nil
	}

	s.mu.RLock()
	rate, ok := s.rates[from+"/"+to]
	s.mu.RUnlock()
	if !ok {
		return decimal.Zero, domainerror.NewProgressError(
			domainerror.ErrCodeMissingConversionRate,
			"no rate for "+from+"/"+to,
			domainerror.ErrMissingConversionRate,
		)
	}
	return amount.Mul(rate), nil
}
