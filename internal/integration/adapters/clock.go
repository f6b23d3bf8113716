package adapters

import (
	"time"

	"github.com/caresync/backend/internal/application/adapter"
)

// systemClock reads the wall clock and reports calendar dates in a fixed
// time zone.
type systemClock struct {
	location *time.Location
}

// NewSystemClock creates a clock for the given IANA time zone. Unknown or
// empty zones fall back to UTC.
func NewSystemClock(timeZone string) adapter.Clock {
	location := time.UTC
	if timeZone != "" {
		if loc, err := time.LoadLocation(timeZone); err == nil {
			location = loc
		}
	}
	return &systemClock{location: location}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.location)
}

// Today returns the current local date as UTC midnight, the form every date
// in the domain takes.
func (c *systemClock) Today() time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
