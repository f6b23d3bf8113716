// Package adapter declares the ports the use cases depend on. The integration
// layer provides the implementations.
package adapter

import "time"

// Clock supplies the current time. The cycle engine never reads the clock
// itself; use cases take "today" from here when the caller does not pass it.
type Clock interface {
	Now() time.Time
	// Today returns the current calendar date in the configured time zone.
	Today() time.Time
}
