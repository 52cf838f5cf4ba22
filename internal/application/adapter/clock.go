// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock abstracts wall-clock time so pace and ETA computations can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
}
