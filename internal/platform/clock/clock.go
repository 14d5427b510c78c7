package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Elapsed returns the time passed since start according to clk.
func Elapsed(clk Clock, start time.Time) time.Duration {
	d := clk.Now().Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
