package farm

import "fmt"

// Season is one quarter of the game year.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

// SeasonCount is the number of seasons in a game year.
const SeasonCount = 4

var seasonNames = [SeasonCount]string{"spring", "summer", "autumn", "winter"}

func (s Season) String() string {
	if s < 0 || int(s) >= SeasonCount {
		return fmt.Sprintf("season(%d)", int(s))
	}
	return seasonNames[s]
}

// Next returns the season following s, wrapping at year end.
func (s Season) Next() Season {
	return (s + 1) % SeasonCount
}

func (s Season) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= SeasonCount {
		return nil, fmt.Errorf("invalid season: %d", int(s))
	}
	return []byte(seasonNames[s]), nil
}

func (s *Season) UnmarshalText(text []byte) error {
	parsed, err := ParseSeason(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeason resolves a season name. Names are matched as written in
// asset files ("spring", "summer", "autumn", "winter").
func ParseSeason(name string) (Season, error) {
	for i, n := range seasonNames {
		if n == name {
			return Season(i), nil
		}
	}
	return 0, fmt.Errorf("unknown season: %s", name)
}
