// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// FinanceRingProvider supplies the finance gauge for the home dashboard.
// The value is computed by the finance subsystem and merely passed through;
// implementations must clamp it to [0, 1].
type FinanceRingProvider interface {
	FinanceRing(ctx context.Context) float64
}
