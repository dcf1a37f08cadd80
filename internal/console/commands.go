package console

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandFunc func(s *session, ctx context.Context, args []string) error

type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	run     commandFunc
}

type commandSet struct {
	ordered []*command
	byName  map[string]*command
}

func newCommandSet() *commandSet {
	cs := &commandSet{byName: map[string]*command{}}

	for _, c := range []*command{
		{name: "look", aliases: []string{"l"}, usage: "look", help: "Survey the plots on this field.", run: (*session).cmdLook},
		{name: "till", usage: "till X,Y", help: "Till fallow ground into soil.", run: (*session).cmdTill},
		{name: "plant", aliases: []string{"sow"}, usage: "plant X,Y [crop]", help: "Sow seeds on tilled soil.", run: (*session).cmdPlant},
		{name: "water", usage: "water X,Y", help: "Water a plot, spending a can charge.", run: (*session).cmdWater},
		{name: "harvest", usage: "harvest X,Y", help: "Gather a ready crop.", run: (*session).cmdHarvest},
		{name: "clear", usage: "clear X,Y", help: "Clear away a dead crop.", run: (*session).cmdClear},
		{name: "use", usage: "use <tool> X,Y", help: "Apply a tool: hand, hoe, can, or seed:<crop>.", run: (*session).cmdUse},
		{name: "refill", usage: "refill", help: "Refill the watering can.", run: (*session).cmdRefill},
		{name: "bag", aliases: []string{"inventory", "inv"}, usage: "bag", help: "Check your bag and can.", run: (*session).cmdBag},
		{name: "time", usage: "time", help: "Check the day and season.", run: (*session).cmdTime},
		{name: "warp", usage: "warp <days|duration>", help: "Skip time forward and run growth at once.", run: (*session).cmdWarp},
		{name: "reset", usage: "reset", help: "Clear every plot on this field.", run: (*session).cmdReset},
		{name: "map", usage: "map [id]", help: "Show or switch the active field.", run: (*session).cmdMap},
		{name: "help", aliases: []string{"?"}, usage: "help", help: "List commands.", run: (*session).cmdHelp},
		{name: "quit", aliases: []string{"exit"}, usage: "quit", help: "Leave the console.", run: (*session).cmdQuit},
	} {
		cs.ordered = append(cs.ordered, c)
		cs.byName[c.name] = c
		for _, a := range c.aliases {
			cs.byName[a] = c
		}
	}

	return cs
}

func (cs *commandSet) helpText() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, c := range cs.ordered {
		fmt.Fprintf(&b, "  %-22s %s\n", c.usage, c.help)
	}
	return strings.TrimRight(b.String(), "\n")
}

// unknown builds the message for an unrecognized command, with close
// matches when there are any.
func (cs *commandSet) unknown(input string) string {
	msg := fmt.Sprintf("Unknown command %q.", input)
	if hits := cs.suggest(input); len(hits) > 0 {
		msg += fmt.Sprintf(" Did you mean %s?", strings.Join(hits, ", "))
	} else {
		msg += " Type 'help' for commands."
	}
	return msg
}

func (cs *commandSet) suggest(input string) []string {
	type scored struct {
		name string
		dist int
	}

	var hits []scored
	for _, c := range cs.ordered {
		best := -1
		for _, alias := range append([]string{c.name}, c.aliases...) {
			dist := levenshtein.ComputeDistance(input, alias)
			if dist <= levenshteinLimit(len(alias)) && (best == -1 || dist < best) {
				best = dist
			}
		}
		if best >= 0 {
			hits = append(hits, scored{name: c.name, dist: best})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].name < hits[j].name
		}
		return hits[i].dist < hits[j].dist
	})

	names := make([]string, 0, 3)
	for _, h := range hits {
		names = append(names, h.name)
		if len(names) == 3 {
			break
		}
	}
	return names
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
