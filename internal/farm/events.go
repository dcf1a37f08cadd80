package farm

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-farm/internal/storage"
)

// Event kinds published on the bus. Subjects are "farm." + kind, so
// observers can subscribe to "farm.>" for everything.
const (
	EventPlanted   = "planted"
	EventHarvested = "harvested"
	EventDied      = "died"

	SubjectPrefix = "farm."
)

// PlotEvent is the envelope published for plot lifecycle events. Quest and
// journal observers consume these; the engine never waits on them.
type PlotEvent struct {
	Id     string             `json:"id"`
	Kind   string             `json:"kind"`
	Day    int                `json:"day"`
	Season Season             `json:"season"`
	MapId  storage.Identifier `json:"map_id"`
	Pos    TilePos            `json:"pos"`
	Crop   storage.Identifier `json:"crop"`

	// Harvest is set on harvested events only.
	Harvest *Harvest `json:"harvest,omitempty"`
}

// Subject returns the bus subject the event belongs on.
func (e *PlotEvent) Subject() string {
	return SubjectPrefix + e.Kind
}

func (e *Engine) publishLocked(kind string, p *Plot, h *Harvest) {
	if e.pub == nil {
		return
	}

	ev := &PlotEvent{
		Id:      uuid.NewString(),
		Kind:    kind,
		Day:     e.clock.CurrentDay(),
		Season:  e.clock.CurrentSeason(),
		MapId:   p.MapId,
		Pos:     p.Pos,
		Crop:    p.CropId,
		Harvest: h,
	}

	data, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("marshalling farm event", "kind", kind, "error", err)
		return
	}

	if err := e.pub.Publish(ev.Subject(), data); err != nil {
		slog.Warn("publishing farm event", "subject", ev.Subject(), "error", err)
	}
}
