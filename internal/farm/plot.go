package farm

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-farm/internal/storage"
)

// PlotState is the soil lifecycle stage of a single tile.
type PlotState int

const (
	StateFallow PlotState = iota
	StateTilled
	StatePlanted
	StateWatered
	StateWilting
	StateReady
	StateDead
)

var plotStateNames = []string{"fallow", "tilled", "planted", "watered", "wilting", "ready", "dead"}

func (s PlotState) String() string {
	if s < 0 || int(s) >= len(plotStateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return plotStateNames[s]
}

func (s PlotState) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(plotStateNames) {
		return nil, fmt.Errorf("invalid plot state: %d", int(s))
	}
	return []byte(plotStateNames[s]), nil
}

// UnmarshalText maps unknown state names to fallow so a corrupted or
// newer-versioned save record degrades instead of failing the whole load.
// Fallow records are then pruned by the save layer.
func (s *PlotState) UnmarshalText(text []byte) error {
	for i, n := range plotStateNames {
		if n == string(text) {
			*s = PlotState(i)
			return nil
		}
	}
	*s = StateFallow
	return nil
}

// plotTransitions is the closed set of legal lifecycle moves. Fallow is
// represented by record absence, so till creates a record and the moves
// into fallow delete one.
var plotTransitions = map[PlotState][]PlotState{
	StateFallow:  {StateTilled},
	StateTilled:  {StatePlanted},
	StatePlanted: {StateWatered, StateWilting, StateDead},
	StateWatered: {StateWilting, StateReady, StateDead},
	StateWilting: {StateWatered, StateReady, StateDead},
	StateReady:   {StateFallow},
	StateDead:    {StateFallow},
}

// CanBecome reports whether next is a legal lifecycle move from s.
func (s PlotState) CanBecome(next PlotState) bool {
	for _, t := range plotTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// TilePos is an integer tile coordinate on a map.
type TilePos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p TilePos) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// PlotKey identifies a plot. Plots are partitioned per map, so tiles on
// different maps never collide even at the same coordinate.
type PlotKey struct {
	MapId storage.Identifier
	Pos   TilePos
}

// Plot is one farmable tile's growth record. The engine hands out copies,
// never references, so holders cannot bypass the lifecycle operations.
type Plot struct {
	MapId storage.Identifier `json:"map_id"`
	Pos   TilePos            `json:"pos"`
	State PlotState          `json:"state"`

	// Crop fields, set only while a crop occupies the plot.
	CropId     storage.Identifier `json:"crop_id,omitempty"`
	PlantedDay int                `json:"planted_day,omitempty"`

	// LastWateredDay is -1 until the plot is watered after planting.
	LastWateredDay int `json:"last_watered_day"`

	// WateredStreak counts consecutive watered days and never exceeds the
	// crop's growth duration.
	WateredStreak int `json:"watered_streak,omitempty"`

	// Quality is a display cache. The authoritative tier is recomputed from
	// the streak at harvest time.
	Quality Quality `json:"quality,omitempty"`
}

func (p *Plot) UnmarshalJSON(b []byte) error {
	type Alias Plot
	tmp := Alias{LastWateredDay: -1}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*p = Plot(tmp)
	return nil
}

// Key returns the plot's store key.
func (p *Plot) Key() PlotKey {
	return PlotKey{MapId: p.MapId, Pos: p.Pos}
}
