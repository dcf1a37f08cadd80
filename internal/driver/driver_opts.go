package driver

import "time"

type GameDriverOpt func(*GameDriver)

// WithTickLength overrides the two second default, mostly for tests.
func WithTickLength(tickLength time.Duration) GameDriverOpt {
	return func(d *GameDriver) {
		d.tickLength = tickLength
	}
}
