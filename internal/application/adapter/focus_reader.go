// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// FocusSessionReader is the read-only view of logged focus sessions.
type FocusSessionReader interface {
	// TotalFocusMinutes returns the sum of completed focus minutes logged on
	// the calendar day containing the given instant.
	TotalFocusMinutes(ctx context.Context, day time.Time) (int, error)
}
