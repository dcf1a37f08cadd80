package clock

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-testutil"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeStateSaver struct {
	saves  int
	latest State
}

func (s *fakeStateSaver) SaveCalendarState(st State) error {
	s.saves++
	s.latest = st
	return nil
}

func newTestCalendar() (*Calendar, *fakeClock, *fakeStateSaver) {
	fc := &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	saver := &fakeStateSaver{}
	cal := NewCalendar(fc, saver, WithDayLength(10*time.Minute), WithSeasonDays(28))
	return cal, fc, saver
}

func TestCalendar_DayMath(t *testing.T) {
	cal, fc, _ := newTestCalendar()

	testutil.AssertEqual(t, "day at epoch", cal.CurrentDay(), 0)
	testutil.AssertEqual(t, "day of season", cal.DayOfSeason(), 1)

	fc.advance(9 * time.Minute)
	testutil.AssertEqual(t, "day before rollover", cal.CurrentDay(), 0)

	fc.advance(time.Minute)
	testutil.AssertEqual(t, "day after rollover", cal.CurrentDay(), 1)
	testutil.AssertEqual(t, "day of season after rollover", cal.DayOfSeason(), 2)

	fc.advance(100 * time.Minute)
	testutil.AssertEqual(t, "day after ten more", cal.CurrentDay(), 11)
}

func TestCalendar_Seasons(t *testing.T) {
	cal, fc, _ := newTestCalendar()

	tests := map[string]struct {
		day       int
		expSeason farm.Season
		expYear   int
	}{
		"spring start":     {day: 0, expSeason: farm.Spring, expYear: 0},
		"spring end":       {day: 27, expSeason: farm.Spring, expYear: 0},
		"summer start":     {day: 28, expSeason: farm.Summer, expYear: 0},
		"autumn":           {day: 60, expSeason: farm.Autumn, expYear: 0},
		"winter":           {day: 100, expSeason: farm.Winter, expYear: 0},
		"second spring":    {day: 112, expSeason: farm.Spring, expYear: 1},
		"deep second year": {day: 150, expSeason: farm.Summer, expYear: 1},
	}

	epoch := fc.now
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fc.now = epoch.Add(time.Duration(tt.day) * 10 * time.Minute)
			testutil.AssertEqual(t, "day", cal.CurrentDay(), tt.day)
			testutil.AssertEqual(t, "season", cal.CurrentSeason(), tt.expSeason)
			testutil.AssertEqual(t, "year", cal.Year(), tt.expYear)
		})
	}
}

func TestCalendar_Warp(t *testing.T) {
	cal, _, saver := newTestCalendar()

	day := cal.Warp(3 * 10 * time.Minute)
	testutil.AssertEqual(t, "day after warp", day, 3)
	testutil.AssertEqual(t, "warp persisted", saver.saves, 1)
	testutil.AssertEqual(t, "persisted offset", saver.latest.Warp, 30*time.Minute)

	day = cal.Warp(10 * time.Minute)
	testutil.AssertEqual(t, "warps accumulate", day, 4)
	testutil.AssertEqual(t, "second save", saver.saves, 2)
}

func TestCalendar_ClampsBeforeEpoch(t *testing.T) {
	cal, _, _ := newTestCalendar()

	day := cal.Warp(-5 * time.Hour)
	testutil.AssertEqual(t, "day never negative", day, 0)
	testutil.AssertEqual(t, "season stays spring", cal.CurrentSeason(), farm.Spring)
}

func TestCalendar_Restore(t *testing.T) {
	cal, fc, _ := newTestCalendar()

	st := State{
		Epoch: fc.now.Add(-25 * 10 * time.Minute),
		Warp:  5 * 10 * time.Minute,
	}
	cal.Restore(st)

	testutil.AssertEqual(t, "restored day", cal.CurrentDay(), 30)
	testutil.AssertEqual(t, "restored season", cal.CurrentSeason(), farm.Summer)

	round := cal.State()
	testutil.AssertEqual(t, "epoch round-trip", round.Epoch.Equal(st.Epoch), true)
	testutil.AssertEqual(t, "warp round-trip", round.Warp, st.Warp)
}

func TestCalendar_RestoreIgnoresZeroState(t *testing.T) {
	cal, fc, _ := newTestCalendar()
	fc.advance(15 * time.Minute)

	cal.Restore(State{})
	testutil.AssertEqual(t, "fresh epoch kept", cal.CurrentDay(), 1)
}

func TestCalendar_Tick(t *testing.T) {
	cal, fc, _ := newTestCalendar()
	ctx := context.Background()

	if err := cal.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fc.advance(25 * time.Minute)
	if err := cal.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "day seen by tick", cal.CurrentDay(), 2)
}
