package clock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-farm/internal/farm"
)

const (
	DefaultDayLength  = 10 * time.Minute
	DefaultSeasonDays = 28
)

// Clock abstracts wall time so calendar math is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// State is the persisted portion of the calendar. Warp is the debug
// offset accumulated by warp commands, carried so game time survives
// restarts.
type State struct {
	Epoch time.Time     `json:"epoch"`
	Warp  time.Duration `json:"warp"`
}

type StateSaver interface {
	SaveCalendarState(State) error
}

// Calendar maps wall time onto game days and seasons. Day zero starts
// at the epoch; seasons cycle every SeasonDays days in the fixed
// spring, summer, autumn, winter order.
type Calendar struct {
	clock      Clock
	saver      StateSaver
	dayLength  time.Duration
	seasonDays int

	mu      sync.Mutex
	epoch   time.Time
	warp    time.Duration
	lastDay int
}

func NewCalendar(clock Clock, saver StateSaver, opts ...CalendarOpt) *Calendar {
	c := &Calendar{
		clock:      clock,
		saver:      saver,
		dayLength:  DefaultDayLength,
		seasonDays: DefaultSeasonDays,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.epoch = c.clock.Now()
	c.lastDay = c.dayLocked()
	return c
}

// Restore applies a persisted calendar state, typically right after the
// save document is loaded. A zero epoch is ignored so empty save
// sections leave the fresh calendar in place.
func (c *Calendar) Restore(st State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if st.Epoch.IsZero() {
		return
	}
	c.epoch = st.Epoch
	c.warp = st.Warp
	c.lastDay = c.dayLocked()
}

// State returns the persistable calendar state.
func (c *Calendar) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{Epoch: c.epoch, Warp: c.warp}
}

func (c *Calendar) CurrentDay() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dayLocked()
}

func (c *Calendar) CurrentSeason() farm.Season {
	c.mu.Lock()
	defer c.mu.Unlock()

	return farm.Season(c.dayLocked() / c.seasonDays % farm.SeasonCount)
}

// DayOfSeason is the one-based day within the current season.
func (c *Calendar) DayOfSeason() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dayLocked()%c.seasonDays + 1
}

// Year counts completed four-season cycles.
func (c *Calendar) Year() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dayLocked() / (c.seasonDays * farm.SeasonCount)
}

func (c *Calendar) DayLength() time.Duration {
	return c.dayLength
}

func (c *Calendar) SeasonDays() int {
	return c.seasonDays
}

// Warp shifts game time by d and persists the new state. It returns
// the day the calendar landed on. The caller is expected to force a
// driver pass afterwards so plots catch up immediately.
func (c *Calendar) Warp(d time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warp += d
	if c.saver != nil {
		if err := c.saver.SaveCalendarState(State{Epoch: c.epoch, Warp: c.warp}); err != nil {
			slog.Warn("saving calendar state", "error", err)
		}
	}

	return c.dayLocked()
}

// Tick implements the driver manager. The calendar has no state to
// advance, it only announces day rollovers.
func (c *Calendar) Tick(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	day := c.dayLocked()
	if day != c.lastDay {
		c.lastDay = day
		slog.InfoContext(ctx, "day rolled over",
			"day", day,
			"season", farm.Season(day/c.seasonDays%farm.SeasonCount).String(),
			"day_of_season", day%c.seasonDays+1,
		)
	}

	return nil
}

func (c *Calendar) dayLocked() int {
	elapsed := c.clock.Now().Add(c.warp).Sub(c.epoch)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / c.dayLength)
}
