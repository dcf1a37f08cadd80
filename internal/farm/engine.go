package farm

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/pixil98/go-farm/internal/storage"
)

// TimeSource supplies the game calendar. Days increase monotonically.
type TimeSource interface {
	CurrentDay() int
	CurrentSeason() Season
}

// Stockist is the inventory collaborator. ConsumeSeed returns false when
// the caller has no stock left, which rejects the planting.
type Stockist interface {
	ConsumeSeed(itemId string, qty int) bool
	CreditHarvest(itemId string, qty int)
}

// PlotSaver persists the full plot list after every successful mutation.
type PlotSaver interface {
	SaveFarmPlots(plots []Plot) error
}

// Publisher carries plot lifecycle events to observers.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// PlantResult reports a planting attempt. Reason is player-facing text,
// surfaced verbatim by the caller.
type PlantResult struct {
	OK     bool
	Reason string
}

// Planting failure reasons.
const (
	ReasonWrongSeason     = "wrong season"
	ReasonNotTilled       = "not tilled"
	ReasonAlreadyOccupied = "already occupied"
	ReasonUnknownCrop     = "unknown crop"
	ReasonOutOfSeeds      = "out of seeds"
)

// Harvest is the outcome of harvesting a ready plot.
type Harvest struct {
	CropId  storage.Identifier `json:"crop_id"`
	Yield   int                `json:"yield"`
	Quality Quality            `json:"quality"`
}

// ActionResult is the outcome of applying a tool to a plot.
type ActionResult struct {
	OK      bool
	Reason  string
	Harvest *Harvest
}

// Engine is the single source of truth for all plot state. All access must
// go through its methods to ensure thread-safety; readers only ever get
// copies.
type Engine struct {
	mu    sync.RWMutex
	clock TimeSource
	crops storage.Storer[*Crop]
	stock Stockist
	saver PlotSaver
	pub   Publisher

	plots map[PlotKey]*Plot
	roll  func(n int) int
}

// NewEngine creates an engine over an empty plot store. Call LoadPlots to
// rehydrate from a save. The publisher may be nil.
func NewEngine(clock TimeSource, crops storage.Storer[*Crop], stock Stockist, saver PlotSaver, pub Publisher, opts ...EngineOpt) *Engine {
	e := &Engine{
		clock: clock,
		crops: crops,
		stock: stock,
		saver: saver,
		pub:   pub,
		plots: map[PlotKey]*Plot{},
		roll:  rand.IntN,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// LoadPlots replaces the plot store with the given records. Fallow records
// are skipped, duplicate keys collapse to the last record. The resulting
// store is persisted so a normalised save is written back immediately.
func (e *Engine) LoadPlots(plots []Plot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.plots = make(map[PlotKey]*Plot, len(plots))
	for _, p := range plots {
		if p.State == StateFallow {
			continue
		}
		cp := p
		e.plots[cp.Key()] = &cp
	}

	e.persistLocked()
}

// GetPlot returns a copy of the plot at the given tile. The second return
// is false when the tile is fallow (no record).
func (e *Engine) GetPlot(mapId storage.Identifier, pos TilePos) (Plot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.plots[PlotKey{MapId: mapId, Pos: pos}]
	if !ok {
		return Plot{}, false
	}
	return *p, true
}

// GetAllPlots returns copies of every plot, ordered by map then tile.
func (e *Engine) GetAllPlots() []Plot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.snapshotLocked()
}

// TillSoil turns a fallow tile into tilled soil. Any existing record,
// including a dead crop, blocks the hoe.
func (e *Engine) TillSoil(mapId storage.Identifier, pos TilePos) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := PlotKey{MapId: mapId, Pos: pos}
	if _, ok := e.plots[key]; ok {
		return false
	}

	e.plots[key] = &Plot{
		MapId:          mapId,
		Pos:            pos,
		State:          StateTilled,
		LastWateredDay: -1,
	}

	e.persistLocked()
	return true
}

// PlantSeed sows a crop on a tilled plot, consuming one unit of seedItem
// from the inventory collaborator.
func (e *Engine) PlantSeed(mapId storage.Identifier, pos TilePos, cropId storage.Identifier, seedItem string) PlantResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	crop := e.crops.Get(string(cropId))
	if crop == nil {
		slog.Warn("planting unknown crop", "crop", cropId, "map", mapId, "pos", pos)
		return PlantResult{Reason: ReasonUnknownCrop}
	}

	p, ok := e.plots[PlotKey{MapId: mapId, Pos: pos}]
	if !ok || p.State == StateFallow {
		return PlantResult{Reason: ReasonNotTilled}
	}
	if p.State != StateTilled {
		return PlantResult{Reason: ReasonAlreadyOccupied}
	}

	if !crop.GrowsIn(e.clock.CurrentSeason()) {
		return PlantResult{Reason: ReasonWrongSeason}
	}

	if e.stock != nil && !e.stock.ConsumeSeed(seedItem, 1) {
		return PlantResult{Reason: ReasonOutOfSeeds}
	}

	if !e.setStateLocked(p, StatePlanted) {
		return PlantResult{Reason: ReasonAlreadyOccupied}
	}
	p.CropId = cropId
	p.PlantedDay = e.clock.CurrentDay()
	p.LastWateredDay = -1
	p.WateredStreak = 0
	p.Quality = QualityNormal

	e.persistLocked()
	e.publishLocked(EventPlanted, p, nil)
	return PlantResult{OK: true}
}

// WaterPlot waters the tile. It returns true when the watering had an
// effect today, so the caller knows to spend a can charge and play the
// animation. Repeat waterings on the same day are free no-ops.
func (e *Engine) WaterPlot(mapId storage.Identifier, pos TilePos) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.plots[PlotKey{MapId: mapId, Pos: pos}]
	if !ok || p.State == StateDead {
		return false
	}

	today := e.clock.CurrentDay()
	if p.LastWateredDay == today {
		return false
	}

	switch p.State {
	case StateTilled, StateReady:
		// Moisture only. Tilled soil keeps no streak, and a ready crop is
		// done growing.
		p.LastWateredDay = today

	case StatePlanted, StateWatered, StateWilting:
		if p.LastWateredDay == today-1 {
			p.WateredStreak++
		} else {
			p.WateredStreak = 1
		}
		if crop := e.crops.Get(string(p.CropId)); crop != nil && p.WateredStreak > crop.GrowthDays {
			p.WateredStreak = crop.GrowthDays
		}
		p.LastWateredDay = today
		if p.State != StateWatered && !e.setStateLocked(p, StateWatered) {
			return false
		}
		e.refreshQualityLocked(p)

	default:
		return false
	}

	e.persistLocked()
	return true
}

// HarvestCrop gathers a ready crop, credits the yield to the inventory
// collaborator, and returns the tile to fallow.
func (e *Engine) HarvestCrop(mapId storage.Identifier, pos TilePos) (Harvest, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := PlotKey{MapId: mapId, Pos: pos}
	p, ok := e.plots[key]
	if !ok || p.State != StateReady {
		return Harvest{}, false
	}

	crop := e.crops.Get(string(p.CropId))
	if crop == nil {
		// Content error: the catalogue lost a crop that is planted in a
		// save. Fail the harvest rather than credit unknown items.
		slog.Warn("harvesting unknown crop", "crop", p.CropId, "map", mapId, "pos", pos)
		return Harvest{}, false
	}

	h := Harvest{
		CropId:  p.CropId,
		Yield:   crop.YieldMin + e.roll(crop.YieldMax-crop.YieldMin+1),
		Quality: QualityFor(p.WateredStreak, crop.GrowthDays),
	}

	if e.stock != nil {
		e.stock.CreditHarvest(crop.HarvestItem, h.Yield)
	}

	if !p.State.CanBecome(StateFallow) {
		return Harvest{}, false
	}
	delete(e.plots, key)

	e.persistLocked()
	e.publishLocked(EventHarvested, p, &h)
	return h, true
}

// ClearDeadCrop removes a dead crop, returning the tile to fallow.
func (e *Engine) ClearDeadCrop(mapId storage.Identifier, pos TilePos) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := PlotKey{MapId: mapId, Pos: pos}
	p, ok := e.plots[key]
	if !ok || p.State != StateDead || !p.State.CanBecome(StateFallow) {
		return false
	}
	delete(e.plots, key)

	e.persistLocked()
	return true
}

// ApplyTool dispatches a resolved tool to the matching operation. A dead
// plot is cleared by any tool.
func (e *Engine) ApplyTool(tool Tool, mapId storage.Identifier, pos TilePos) ActionResult {
	if p, ok := e.GetPlot(mapId, pos); ok && p.State == StateDead {
		return ActionResult{OK: e.ClearDeadCrop(mapId, pos)}
	}

	switch tool.Kind {
	case ToolHoe:
		return ActionResult{OK: e.TillSoil(mapId, pos)}

	case ToolWateringCan:
		return ActionResult{OK: e.WaterPlot(mapId, pos)}

	case ToolSeed:
		var seedItem string
		if crop := e.crops.Get(string(tool.Crop)); crop != nil {
			seedItem = crop.SeedItem
		}
		res := e.PlantSeed(mapId, pos, tool.Crop, seedItem)
		return ActionResult{OK: res.OK, Reason: res.Reason}

	case ToolHand:
		h, ok := e.HarvestCrop(mapId, pos)
		if !ok {
			return ActionResult{}
		}
		return ActionResult{OK: true, Harvest: &h}

	default:
		return ActionResult{}
	}
}

// Tick re-evaluates growth for every plot against the current day. It is
// pure day arithmetic, so running it any number of times within the same
// day gives the same store state. It never touches the inventory.
func (e *Engine) Tick(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.clock.CurrentDay()
	changed := 0
	var died []*Plot

	for _, p := range e.plots {
		res := e.tickPlotLocked(p, today)
		if res.changed {
			changed++
		}
		if res.died {
			died = append(died, p)
		}
	}

	if changed > 0 {
		e.persistLocked()
	}
	for _, p := range died {
		e.publishLocked(EventDied, p, nil)
	}

	slog.DebugContext(ctx, "farm tick", "day", today, "plots", len(e.plots), "changed", changed)
	return nil
}

type tickResult struct {
	changed bool
	died    bool
}

// tickPlotLocked advances one plot. The ripen check runs before the kill
// check so a crop that completes growth on the same day it would die is
// kept.
func (e *Engine) tickPlotLocked(p *Plot, today int) tickResult {
	switch p.State {
	case StatePlanted, StateWatered, StateWilting:
	default:
		// Tilled soil has nothing growing, ready and dead are terminal.
		return tickResult{}
	}

	crop := e.crops.Get(string(p.CropId))
	if crop == nil {
		slog.Warn("ticking unknown crop", "crop", p.CropId, "map", p.MapId, "pos", p.Pos)
		return tickResult{}
	}

	if p.State != StatePlanted && today-p.PlantedDay >= crop.GrowthDays {
		if e.setStateLocked(p, StateReady) {
			p.Quality = QualityFor(p.WateredStreak, crop.GrowthDays)
			return tickResult{changed: true}
		}
		return tickResult{}
	}

	// Watering freshness: count the full days before today that went by
	// since the last watering. The planting day itself is not counted as
	// missed for a crop that was never watered.
	last := p.LastWateredDay
	if last < 0 {
		last = p.PlantedDay - 1
	}
	missed := (today - 1) - last

	switch {
	case missed >= 2:
		if e.setStateLocked(p, StateDead) {
			return tickResult{changed: true, died: true}
		}
	case missed == 1 && p.State != StateWilting:
		if e.setStateLocked(p, StateWilting) {
			return tickResult{changed: true}
		}
	}

	return tickResult{}
}

// setStateLocked moves a plot to the next state if the lifecycle allows
// it. A refused move is a bug, not a player error, so it is logged.
func (e *Engine) setStateLocked(p *Plot, next PlotState) bool {
	if !p.State.CanBecome(next) {
		slog.Warn("refusing plot transition", "from", p.State, "to", next, "map", p.MapId, "pos", p.Pos)
		return false
	}
	p.State = next
	return true
}

func (e *Engine) refreshQualityLocked(p *Plot) {
	if crop := e.crops.Get(string(p.CropId)); crop != nil {
		p.Quality = QualityFor(p.WateredStreak, crop.GrowthDays)
	}
}

func (e *Engine) snapshotLocked() []Plot {
	plots := make([]Plot, 0, len(e.plots))
	for _, p := range e.plots {
		plots = append(plots, *p)
	}

	slices.SortFunc(plots, func(a, b Plot) int {
		if a.MapId != b.MapId {
			if a.MapId < b.MapId {
				return -1
			}
			return 1
		}
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y - b.Pos.Y
		}
		return a.Pos.X - b.Pos.X
	})

	return plots
}

func (e *Engine) persistLocked() {
	if e.saver == nil {
		return
	}
	if err := e.saver.SaveFarmPlots(e.snapshotLocked()); err != nil {
		slog.Warn("saving farm plots", "error", err)
	}
}
