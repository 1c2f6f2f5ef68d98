package clock

import "time"

// Clock provides the current time. Injected so that time-sensitive
// business rules stay testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Business wraps a Clock with the fixed business timezone and the
// trading-hours rules applied to transaction timestamps.
type Business struct {
	clock Clock
	loc   *time.Location
}

// NewBusiness creates a Business clock with a fixed UTC offset in hours.
func NewBusiness(c Clock, offsetHours int) *Business {
	return &Business{
		clock: c,
		loc:   time.FixedZone("business", offsetHours*3600),
	}
}

// Now returns the current time in the business timezone.
func (b *Business) Now() time.Time {
	return b.clock.Now().In(b.loc)
}

// Location returns the business timezone.
func (b *Business) Location() *time.Location {
	return b.loc
}

// AdjustTransactionTime folds off-hours sales into the adjacent trading
// bucket: anything before 07:00 is recorded as 07:00, anything at or after
// 17:00 as 17:00. Times within trading hours pass through unchanged.
func (b *Business) AdjustTransactionTime(t time.Time) time.Time {
	t = t.In(b.loc)
	switch {
	case t.Hour() >= 17:
		return time.Date(t.Year(), t.Month(), t.Day(), 17, 0, 0, 0, b.loc)
	case t.Hour() < 7:
		return time.Date(t.Year(), t.Month(), t.Day(), 7, 0, 0, 0, b.loc)
	default:
		return t
	}
}

// DayBounds returns the start and end of the calendar day containing t,
// in the business timezone.
func (b *Business) DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(b.loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, b.loc)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
