package clock

import "time"

// Clock provides time to the application layer.
// Tests substitute a manual clock to pin timestamps.
type Clock interface {
	Now() time.Time
}
