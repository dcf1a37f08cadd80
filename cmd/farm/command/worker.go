package command

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-farm/internal/clock"
	"github.com/pixil98/go-farm/internal/console"
	"github.com/pixil98/go-farm/internal/driver"
	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-farm/internal/inventory"
	"github.com/pixil98/go-farm/internal/journal"
	"github.com/pixil98/go-farm/internal/listener"
	"github.com/pixil98/go-farm/internal/savegame"
	"github.com/pixil98/go-farm/internal/storage"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Stores
	crops, err := cfg.Storage.Crops.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating crop store: %w", err)
	}
	docs, err := cfg.Storage.Saves.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating save store: %w", err)
	}

	// Save slot
	saves := savegame.NewStore(docs, crops, cfg.Game.SaveSlot)
	doc, fresh := saves.Load()
	if fresh {
		slog.Info("starting new farm", "slot", cfg.Game.SaveSlot)
	} else {
		slog.Info("loaded farm save", "slot", cfg.Game.SaveSlot, "plots", len(doc.Plots))
	}

	// Calendar
	var calOpts []clock.CalendarOpt
	if cfg.Game.DayLength != "" {
		d, err := time.ParseDuration(cfg.Game.DayLength)
		if err != nil {
			return nil, fmt.Errorf("parsing day_length: %w", err)
		}
		calOpts = append(calOpts, clock.WithDayLength(d))
	}
	if cfg.Game.SeasonDays > 0 {
		calOpts = append(calOpts, clock.WithSeasonDays(cfg.Game.SeasonDays))
	}

	cal := clock.NewCalendar(clock.SystemClock(), saves, calOpts...)
	calState, found, err := saves.CalendarState()
	switch {
	case err != nil:
		slog.Warn("discarding unreadable calendar state", "error", err)
	case found:
		cal.Restore(calState)
	}
	if err := saves.SaveCalendarState(cal.State()); err != nil {
		return nil, fmt.Errorf("persisting calendar state: %w", err)
	}

	// Inventory
	items := doc.Items
	if fresh && len(cfg.Game.StarterItems) > 0 {
		items = cfg.Game.StarterItems
		slog.Info("granting starter items", "items", len(items))
	}
	bag := inventory.NewLedger(items, saves)
	if fresh {
		if err := saves.SaveItems(bag.Items()); err != nil {
			return nil, fmt.Errorf("persisting starter items: %w", err)
		}
	}

	can := inventory.NewWateringCan(cfg.Game.CanCapacity, saves)
	if doc.Can.Capacity > 0 {
		can.Restore(doc.Can)
	} else if err := saves.SaveCanState(can.State()); err != nil {
		return nil, fmt.Errorf("persisting can state: %w", err)
	}

	// Message bus
	ns, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Farm engine
	engine := farm.NewEngine(cal, crops, bag, saves, ns)
	engine.LoadPlots(doc.Plots)

	// Tick driver. The calendar goes first so every pass evaluates the
	// plots against the day it just rolled to.
	var drvOpts []driver.GameDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		drvOpts = append(drvOpts, driver.WithTickLength(d))
	}
	drv := driver.NewGameDriver([]driver.Manager{cal, engine}, drvOpts...)

	// Console
	shell := console.NewShell(engine, cal, bag, can,
		storage.NewSelectableStorer[*farm.Crop](crops), drv, storage.Identifier(cfg.Game.Map))
	cm := listener.NewConnectionManager(shell)

	// Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	return service.WorkerList{
		"nats":      ns,
		"driver":    drv,
		"journal":   journal.NewJournal(ns),
		"listeners": &listeners,
	}, nil
}
