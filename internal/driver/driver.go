package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

type Manager interface {
	Tick(context.Context) error
}

// GameDriver runs every manager once per tick, in registration order.
// The calendar is registered ahead of the farm engine so a tick always
// evaluates plots against the day it just rolled to.
type GameDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewGameDriver(managers []Manager, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks until the context is cancelled.
func (d *GameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			start := time.Now()
			if err := d.Tick(ctx); err != nil {
				return err
			}
			if took := time.Since(start); took > d.tickLength {
				slog.WarnContext(ctx, "tick pass overran the tick length", "took", took, "tick_length", d.tickLength)
			}
		}
	}
}

// Tick is exported so the console can force a pass outside the timer,
// right after warping the clock.
func (d *GameDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
