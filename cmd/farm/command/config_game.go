package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-farm/internal/storage"
)

// GameConfig holds the farm's world settings. Save documents carry their
// own calendar epoch, so changing day_length or season_days on an
// existing save only affects days from the restart onward.
type GameConfig struct {
	SaveSlot     string         `json:"save_slot"`
	Map          string         `json:"map"`
	DayLength    string         `json:"day_length"`
	SeasonDays   int            `json:"season_days"`
	CanCapacity  int            `json:"can_capacity"`
	StarterItems map[string]int `json:"starter_items"`
}

func (c *GameConfig) Validate() error {
	el := errors.NewErrorList()

	if c.SaveSlot == "" {
		el.Add(fmt.Errorf("save_slot is required"))
	} else if !storage.ValidIdentifier(c.SaveSlot) {
		el.Add(fmt.Errorf("save_slot must be alphanumeric"))
	}
	if c.Map == "" {
		el.Add(fmt.Errorf("map is required"))
	}
	if c.DayLength != "" {
		d, err := time.ParseDuration(c.DayLength)
		if err != nil {
			el.Add(fmt.Errorf("parsing day_length: %w", err))
		} else if d < time.Minute {
			el.Add(fmt.Errorf("day_length must be at least 1 minute"))
		}
	}
	if c.SeasonDays < 0 {
		el.Add(fmt.Errorf("season_days cannot be negative"))
	}
	if c.CanCapacity < 0 {
		el.Add(fmt.Errorf("can_capacity cannot be negative"))
	}
	for item, qty := range c.StarterItems {
		if qty < 1 {
			el.Add(fmt.Errorf("starter item %q: quantity must be at least 1", item))
		}
	}

	return el.Err()
}
