package clock

import "time"

type CalendarOpt func(*Calendar)

func WithDayLength(d time.Duration) CalendarOpt {
	return func(c *Calendar) {
		c.dayLength = d
	}
}

func WithSeasonDays(n int) CalendarOpt {
	return func(c *Calendar) {
		c.seasonDays = n
	}
}
