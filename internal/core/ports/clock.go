package ports

import "time"

// Clock supplies the current time. Tests replace it to drive the age trigger.
type Clock interface {
	Now() time.Time
}
