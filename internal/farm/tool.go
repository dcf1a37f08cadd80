package farm

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-farm/internal/storage"
)

// ToolKind enumerates the tools a player can apply to a plot.
type ToolKind int

const (
	ToolHand ToolKind = iota
	ToolHoe
	ToolWateringCan
	ToolSeed
)

// Tool is a resolved tool selection. Crop is set only for seed tools.
// Input layers resolve their raw tool identifiers into a Tool once, so the
// engine never re-parses strings.
type Tool struct {
	Kind ToolKind
	Crop storage.Identifier
}

func HandTool() Tool {
	return Tool{Kind: ToolHand}
}

func HoeTool() Tool {
	return Tool{Kind: ToolHoe}
}

func CanTool() Tool {
	return Tool{Kind: ToolWateringCan}
}

func SeedTool(crop storage.Identifier) Tool {
	return Tool{Kind: ToolSeed, Crop: crop}
}

func (t Tool) String() string {
	switch t.Kind {
	case ToolHand:
		return "hand"
	case ToolHoe:
		return "hoe"
	case ToolWateringCan:
		return "watering can"
	case ToolSeed:
		return fmt.Sprintf("seed:%s", t.Crop)
	default:
		return fmt.Sprintf("tool(%d)", int(t.Kind))
	}
}

// ParseTool resolves a tool name as entered by a player. Seed tools are
// written "seed:<cropId>".
func ParseTool(s string) (Tool, error) {
	if crop, ok := strings.CutPrefix(s, "seed:"); ok {
		if crop == "" {
			return Tool{}, fmt.Errorf("seed tool needs a crop id")
		}
		return SeedTool(storage.Identifier(crop)), nil
	}

	switch s {
	case "hand":
		return HandTool(), nil
	case "hoe":
		return HoeTool(), nil
	case "can", "wateringcan", "watering-can":
		return CanTool(), nil
	default:
		return Tool{}, fmt.Errorf("unknown tool: %s", s)
	}
}
