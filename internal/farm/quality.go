package farm

import "fmt"

// Quality is the harvest tier earned by watering a crop consistently.
type Quality int

const (
	QualityNormal Quality = iota
	QualityGood
	QualityExcellent
)

var qualityNames = []string{"normal", "good", "excellent"}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("quality(%d)", int(q))
	}
	return qualityNames[q]
}

func (q Quality) MarshalText() ([]byte, error) {
	if q < 0 || int(q) >= len(qualityNames) {
		return nil, fmt.Errorf("invalid quality: %d", int(q))
	}
	return []byte(qualityNames[q]), nil
}

func (q *Quality) UnmarshalText(text []byte) error {
	for i, n := range qualityNames {
		if n == string(text) {
			*q = Quality(i)
			return nil
		}
	}
	// Unknown tiers in old saves degrade to normal rather than failing the load.
	*q = QualityNormal
	return nil
}

// Multiplier returns the sale price multiplier for the tier. Pricing itself
// is the caller's concern, the engine only hands out the tier.
func (q Quality) Multiplier() float64 {
	switch q {
	case QualityGood:
		return 1.5
	case QualityExcellent:
		return 2.0
	default:
		return 1.0
	}
}

// QualityFor computes the tier a watering streak has earned on a crop that
// takes growthDays to mature. A full streak is excellent, at least half
// (rounded up) is good, anything less is normal.
func QualityFor(streak, growthDays int) Quality {
	if growthDays <= 0 || streak <= 0 {
		return QualityNormal
	}
	if streak >= growthDays {
		return QualityExcellent
	}
	if streak >= (growthDays+1)/2 {
		return QualityGood
	}
	return QualityNormal
}
