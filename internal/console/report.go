package console

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-farm/internal/farm"
)

const lookTemplate = `{{ .Map | title }} field, {{ .Season | title }} {{ .DayOfSeason }} of year {{ .Year }} (day {{ .Day }}). Watering can {{ .Charges }}/{{ .Capacity }}.
{{- if not .Plots }}
Nothing here but fallow soil.
{{- else }}
{{- range .Plots }}
  {{ printf "%-7s" .Pos }} {{ printf "%-8s" .State }}{{ if .Detail }} {{ .Detail }}{{ end }}
{{- end }}
{{- end }}`

const timeTemplate = `It is {{ .Season | title }} {{ .DayOfSeason }} of year {{ .Year }}, day {{ .Day }} overall. {{ .DaysLeft }} day{{ if ne .DaysLeft 1 }}s{{ end }} until {{ .Next | title }}.`

const bagTemplate = `{{ if not .Items }}Your bag is empty.{{ else }}You are carrying:
{{- range .Items }}
  {{ .Count }}x {{ .Name }}
{{- end }}{{ end }}
Watering can: {{ .Charges }}/{{ .Capacity }} charges.`

type plotLine struct {
	Pos    string
	State  string
	Detail string
}

type lookData struct {
	Map         string
	Season      string
	DayOfSeason int
	Year        int
	Day         int
	Charges     int
	Capacity    int
	Plots       []plotLine
}

type timeData struct {
	Season      string
	DayOfSeason int
	Year        int
	Day         int
	DaysLeft    int
	Next        string
}

type bagItem struct {
	Name  string
	Count int
}

type bagData struct {
	Items    []bagItem
	Charges  int
	Capacity int
}

func (s *session) lookReport() (string, error) {
	today := s.cal.CurrentDay()

	var lines []plotLine
	for _, p := range s.engine.GetAllPlots() {
		if p.MapId != s.mapId {
			continue
		}
		lines = append(lines, plotLine{
			Pos:    p.Pos.String(),
			State:  p.State.String(),
			Detail: s.plotDetail(p, today),
		})
	}

	return ExpandTemplate(lookTemplate, lookData{
		Map:         s.mapId.String(),
		Season:      s.cal.CurrentSeason().String(),
		DayOfSeason: s.cal.DayOfSeason(),
		Year:        s.cal.Year() + 1,
		Day:         today,
		Charges:     s.can.Charges(),
		Capacity:    s.can.Capacity(),
		Plots:       lines,
	})
}

func (s *session) plotDetail(p farm.Plot, today int) string {
	switch p.State {
	case farm.StateTilled:
		if p.LastWateredDay == today {
			return "moist soil"
		}
		return ""

	case farm.StateReady:
		return s.cropName(p.CropId.String()) + ", ready to harvest"

	case farm.StateDead:
		return s.cropName(p.CropId.String()) + ", dead"

	default:
		crop := s.crops.Get(p.CropId.String())
		if crop == nil {
			return p.CropId.String()
		}
		day := today - p.PlantedDay + 1
		if day > crop.GrowthDays {
			day = crop.GrowthDays
		}
		return fmt.Sprintf("%s, day %d of %d (%s)", crop.Name, day, crop.GrowthDays, p.Quality)
	}
}

func (s *session) timeReport() (string, error) {
	season := s.cal.CurrentSeason()
	return ExpandTemplate(timeTemplate, timeData{
		Season:      season.String(),
		DayOfSeason: s.cal.DayOfSeason(),
		Year:        s.cal.Year() + 1,
		Day:         s.cal.CurrentDay(),
		DaysLeft:    s.cal.SeasonDays() - s.cal.DayOfSeason() + 1,
		Next:        season.Next().String(),
	})
}

func (s *session) bagReport() (string, error) {
	items := s.bag.Items()

	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := make([]bagItem, 0, len(names))
	for _, name := range names {
		lines = append(lines, bagItem{Name: name, Count: items[name]})
	}

	return ExpandTemplate(bagTemplate, bagData{
		Items:    lines,
		Charges:  s.can.Charges(),
		Capacity: s.can.Capacity(),
	})
}

func (s *session) cropName(id string) string {
	if crop := s.crops.Get(id); crop != nil {
		return crop.Name
	}
	return id
}
