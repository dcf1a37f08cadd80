package farm

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Crop defines a plantable crop loaded from asset files.
type Crop struct {
	Name        string   `json:"name"`
	Seasons     []Season `json:"seasons"`
	GrowthDays  int      `json:"growth_days"`
	SellPrice   int      `json:"sell_price"`
	SeedItem    string   `json:"seed_item"`
	HarvestItem string   `json:"harvest_item"`
	YieldMin    int      `json:"yield_min"`
	YieldMax    int      `json:"yield_max"`
}

func (c *Crop) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if len(c.Seasons) == 0 {
		el.Add(fmt.Errorf("at least one season must be set"))
	}
	if c.GrowthDays < 1 {
		el.Add(fmt.Errorf("growth_days must be at least 1"))
	}
	if c.SellPrice < 0 {
		el.Add(fmt.Errorf("sell_price cannot be negative"))
	}
	if c.SeedItem == "" {
		el.Add(fmt.Errorf("seed_item must be set"))
	}
	if c.HarvestItem == "" {
		el.Add(fmt.Errorf("harvest_item must be set"))
	}
	if c.YieldMin < 1 {
		el.Add(fmt.Errorf("yield_min must be at least 1"))
	}
	if c.YieldMax < c.YieldMin {
		el.Add(fmt.Errorf("yield_max cannot be less than yield_min"))
	}

	return el.Err()
}

func (c *Crop) Selector() string {
	return c.Name
}

// GrowsIn reports whether the crop can be planted during season s.
func (c *Crop) GrowsIn(s Season) bool {
	for _, valid := range c.Seasons {
		if valid == s {
			return true
		}
	}
	return false
}
