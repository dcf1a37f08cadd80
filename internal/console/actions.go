package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pixil98/go-farm/internal"
	"github.com/pixil98/go-farm/internal/display"
	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-farm/internal/storage"
)

func (s *session) cmdLook(ctx context.Context, args []string) error {
	out, err := s.lookReport()
	if err != nil {
		return err
	}
	return s.writeLine(out)
}

func (s *session) cmdTill(ctx context.Context, args []string) error {
	pos, err := parsePos(args)
	if err != nil {
		return err
	}

	if !s.engine.TillSoil(s.mapId, pos) {
		return NewUserError(fmt.Sprintf("You cannot till %s, the ground there is not fallow.", pos))
	}
	return s.writeLine(fmt.Sprintf("You till the soil at %s.", pos))
}

func (s *session) cmdPlant(ctx context.Context, args []string) error {
	pos, rest, err := parsePosArgs(args)
	if err != nil {
		return err
	}

	var cropId string
	if len(rest) > 0 {
		cropId = strings.ToLower(rest[0])
	} else {
		cropId, err = s.crops.Prompt(s.promptIO(), "Which seeds will you sow?")
		if err != nil {
			return err
		}
	}

	var seedItem string
	crop := s.crops.Get(cropId)
	if crop != nil {
		seedItem = crop.SeedItem
	}

	res := s.engine.PlantSeed(s.mapId, pos, storage.Identifier(cropId), seedItem)
	if !res.OK {
		return NewUserError(fmt.Sprintf("You cannot plant there: %s.", res.Reason))
	}
	return s.writeLine(fmt.Sprintf("You sow %s at %s.", crop.Name, pos))
}

func (s *session) cmdWater(ctx context.Context, args []string) error {
	pos, err := parsePos(args)
	if err != nil {
		return err
	}

	// The engine is resource-agnostic: the can is checked and spent
	// here, and only when the watering actually had an effect.
	if s.can.Empty() {
		return NewUserError("Your watering can is empty. 'refill' it first.")
	}

	if !s.engine.WaterPlot(s.mapId, pos) {
		return NewUserError("Watering does nothing there right now.")
	}

	s.can.Use()
	return s.writeLine(fmt.Sprintf("You water %s. (%d/%d charges left)", pos, s.can.Charges(), s.can.Capacity()))
}

func (s *session) cmdHarvest(ctx context.Context, args []string) error {
	pos, err := parsePos(args)
	if err != nil {
		return err
	}

	h, ok := s.engine.HarvestCrop(s.mapId, pos)
	if !ok {
		return NewUserError("There is nothing ready to harvest there.")
	}
	return s.writeLine(fmt.Sprintf("You harvest %dx %s (%s quality).", h.Yield, s.cropName(h.CropId.String()), h.Quality))
}

func (s *session) cmdClear(ctx context.Context, args []string) error {
	pos, err := parsePos(args)
	if err != nil {
		return err
	}

	if !s.engine.ClearDeadCrop(s.mapId, pos) {
		return NewUserError("There is no dead crop there.")
	}
	return s.writeLine(fmt.Sprintf("You clear away the dead crop at %s.", pos))
}

func (s *session) cmdUse(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return NewUserError("Use what, where? Try 'use hoe 2,3' or 'use seed:radish 2,3'.")
	}

	tool, err := farm.ParseTool(strings.ToLower(args[0]))
	if err != nil {
		return NewUserError(fmt.Sprintf("You have no %q. Tools are hand, hoe, can, and seed:<crop>.", args[0]))
	}

	pos, _, err := parsePosArgs(args[1:])
	if err != nil {
		return err
	}

	wasDead := false
	if p, ok := s.engine.GetPlot(s.mapId, pos); ok && p.State == farm.StateDead {
		wasDead = true
	}

	if tool.Kind == farm.ToolWateringCan && !wasDead && s.can.Empty() {
		return NewUserError("Your watering can is empty. 'refill' it first.")
	}

	res := s.engine.ApplyTool(tool, s.mapId, pos)
	if !res.OK {
		if res.Reason != "" {
			return NewUserError(fmt.Sprintf("You cannot plant there: %s.", res.Reason))
		}
		return NewUserError("Nothing happens.")
	}

	if wasDead {
		return s.writeLine(fmt.Sprintf("You clear away the dead crop at %s.", pos))
	}

	switch tool.Kind {
	case farm.ToolHoe:
		return s.writeLine(fmt.Sprintf("You till the soil at %s.", pos))

	case farm.ToolWateringCan:
		s.can.Use()
		return s.writeLine(fmt.Sprintf("You water %s. (%d/%d charges left)", pos, s.can.Charges(), s.can.Capacity()))

	case farm.ToolSeed:
		return s.writeLine(fmt.Sprintf("You sow %s at %s.", s.cropName(tool.Crop.String()), pos))

	case farm.ToolHand:
		if res.Harvest != nil {
			h := res.Harvest
			return s.writeLine(fmt.Sprintf("You harvest %dx %s (%s quality).", h.Yield, s.cropName(h.CropId.String()), h.Quality))
		}
		return s.writeLine("Nothing happens.")

	default:
		return s.writeLine("Nothing happens.")
	}
}

func (s *session) cmdRefill(ctx context.Context, args []string) error {
	s.can.Refill()
	return s.writeLine(fmt.Sprintf("You refill your watering can. (%d/%d charges)", s.can.Charges(), s.can.Capacity()))
}

func (s *session) cmdBag(ctx context.Context, args []string) error {
	out, err := s.bagReport()
	if err != nil {
		return err
	}
	return s.writeLine(out)
}

func (s *session) cmdTime(ctx context.Context, args []string) error {
	out, err := s.timeReport()
	if err != nil {
		return err
	}
	return s.writeLine(out)
}

func (s *session) cmdWarp(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return NewUserError("Warp how far? Give days like 'warp 3' or a duration like 'warp 45m'.")
	}

	var d time.Duration
	if days, err := strconv.Atoi(args[0]); err == nil {
		d = time.Duration(days) * s.cal.DayLength()
	} else {
		d, err = time.ParseDuration(args[0])
		if err != nil {
			return NewUserError("Warp how far? Give days like 'warp 3' or a duration like 'warp 45m'.")
		}
	}
	if d <= 0 {
		return NewUserError("Time only moves forward here.")
	}

	day := s.cal.Warp(d)
	if err := s.driver.Tick(ctx); err != nil {
		return fmt.Errorf("ticking after warp: %w", err)
	}

	return s.writeLine(fmt.Sprintf("The days blur past. It is now %s %d (day %d).",
		display.Capitalize(s.cal.CurrentSeason().String()), s.cal.DayOfSeason(), day))
}

func (s *session) cmdReset(ctx context.Context, args []string) error {
	ok, err := internal.PromptYN(s.promptIO(), fmt.Sprintf("Really clear every plot on the %s field? ", s.mapId))
	if err != nil {
		return err
	}
	if !ok {
		return s.writeLine("Nothing happens.")
	}

	var kept []farm.Plot
	for _, p := range s.engine.GetAllPlots() {
		if p.MapId != s.mapId {
			kept = append(kept, p)
		}
	}
	s.engine.LoadPlots(kept)

	return s.writeLine("The field is cleared back to fallow soil.")
}

func (s *session) cmdMap(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.writeLine(fmt.Sprintf("You are on the %s field.", s.mapId))
	}

	s.mapId = storage.Identifier(strings.ToLower(args[0]))
	return s.cmdLook(ctx, nil)
}

func (s *session) cmdHelp(ctx context.Context, args []string) error {
	return s.writeLine(s.commands.helpText())
}

func (s *session) cmdQuit(ctx context.Context, args []string) error {
	s.quit = true
	return nil
}

// parsePos reads a tile coordinate given as "2,3" or "2 3".
func parsePos(args []string) (farm.TilePos, error) {
	pos, rest, err := parsePosArgs(args)
	if err != nil {
		return farm.TilePos{}, err
	}
	if len(rest) > 0 {
		return farm.TilePos{}, errBadPos
	}
	return pos, nil
}

var errBadPos = NewUserError("Give the plot as X,Y - for example '2,3'.")

// parsePosArgs reads a leading tile coordinate and returns whatever
// arguments follow it. The coordinate may span one token ("2,3") or
// two ("2 3").
func parsePosArgs(args []string) (farm.TilePos, []string, error) {
	if len(args) == 0 {
		return farm.TilePos{}, nil, errBadPos
	}

	if x, y, ok := strings.Cut(args[0], ","); ok {
		pos, err := posFrom(x, y)
		return pos, args[1:], err
	}

	if len(args) < 2 {
		return farm.TilePos{}, nil, errBadPos
	}
	pos, err := posFrom(args[0], args[1])
	return pos, args[2:], err
}

func posFrom(xs, ys string) (farm.TilePos, error) {
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return farm.TilePos{}, errBadPos
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return farm.TilePos{}, errBadPos
	}
	return farm.TilePos{X: x, Y: y}, nil
}
