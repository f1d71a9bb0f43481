package timex

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// NowMillis returns c.Now() as Unix epoch milliseconds.
func NowMillis(c Clock) int64 {
	return c.Now().UnixMilli()
}
