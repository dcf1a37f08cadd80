package journal

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pixil98/go-farm/internal/farm"
)

const retryInterval = 250 * time.Millisecond

// Subscriber is the slice of the message bus the journal needs.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Journal tails the farm event feed and writes one log line per event.
// It is the in-process stand-in for external observers such as quest
// triggers, which attach to the same subjects.
type Journal struct {
	bus Subscriber
}

func NewJournal(bus Subscriber) *Journal {
	return &Journal{bus: bus}
}

// Start subscribes to every farm subject and blocks until the context
// ends. The bus worker boots concurrently, so early subscribe attempts
// can fail; retry until it is up.
func (j *Journal) Start(ctx context.Context) error {
	var unsub func()
	for {
		var err error
		unsub, err = j.bus.Subscribe(farm.SubjectPrefix+">", j.record)
		if err == nil {
			break
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retryInterval):
		}
	}
	defer unsub()

	<-ctx.Done()
	return nil
}

func (j *Journal) record(data []byte) {
	var ev farm.PlotEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Warn("decoding farm event", "error", err)
		return
	}

	args := []any{
		"day", ev.Day,
		"season", ev.Season.String(),
		"map", ev.MapId,
		"pos", ev.Pos.String(),
		"crop", ev.Crop,
	}
	if ev.Harvest != nil {
		args = append(args, "yield", ev.Harvest.Yield, "quality", ev.Harvest.Quality.String())
	}

	slog.Info("farm "+ev.Kind, args...)
}
