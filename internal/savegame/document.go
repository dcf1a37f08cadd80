package savegame

import (
	"log/slog"

	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-farm/internal/inventory"
	"github.com/pixil98/go-farm/internal/storage"
)

// Document is everything one save slot holds. Subsystems own their own
// sections; anything without a fixed field rides in Extensions (the
// calendar does).
type Document struct {
	Plots      []farm.Plot        `json:"plots"`
	Items      map[string]int     `json:"items"`
	Can        inventory.CanState `json:"can"`
	Extensions Extensions         `json:"extensions,omitempty"`
}

// Validate is intentionally lenient. Old or damaged saves are repaired
// field by field during normalisation instead of failing the boot.
func (d *Document) Validate() error {
	return nil
}

// normalise repairs a loaded document in place: fallow or crop-less
// records are pruned, unknown crops dropped, duplicate tiles collapse
// to the last record, counters are clamped to their legal ranges.
func (d *Document) normalise(crops storage.Storer[*farm.Crop]) {
	kept := make([]farm.Plot, 0, len(d.Plots))
	seen := map[farm.PlotKey]int{}

	for _, p := range d.Plots {
		switch {
		case p.State == farm.StateFallow:
			// Unknown state strings decode to fallow, so this prunes
			// both true fallow records and unrecognised ones.
			continue

		case p.State == farm.StateTilled:
			// Tilled soil carries no crop.
			p.CropId = ""
			p.PlantedDay = 0
			p.WateredStreak = 0
			p.Quality = farm.QualityNormal

		case p.CropId == "":
			slog.Warn("dropping saved plot without a crop", "map", p.MapId, "pos", p.Pos, "state", p.State)
			continue

		case crops != nil && crops.Get(p.CropId.String()) == nil:
			slog.Warn("dropping saved plot with unknown crop", "map", p.MapId, "pos", p.Pos, "crop", p.CropId)
			continue
		}

		if p.WateredStreak < 0 {
			p.WateredStreak = 0
		}
		if p.LastWateredDay < 0 {
			p.LastWateredDay = -1
		}
		if p.PlantedDay < 0 {
			p.PlantedDay = 0
		}

		if i, ok := seen[p.Key()]; ok {
			kept[i] = p
			continue
		}
		seen[p.Key()] = len(kept)
		kept = append(kept, p)
	}
	d.Plots = kept

	for id, n := range d.Items {
		if n <= 0 {
			delete(d.Items, id)
		}
	}
	if d.Items == nil {
		d.Items = map[string]int{}
	}
}
