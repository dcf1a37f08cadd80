package inventory

import (
	"log/slog"
	"sync"
)

// Saver persists the item counts after each mutation.
type Saver interface {
	SaveItems(items map[string]int) error
}

// Ledger tracks stackable item counts: seeds going out, harvested
// produce coming in. It satisfies the engine's inventory collaborator.
type Ledger struct {
	mu    sync.Mutex
	items map[string]int
	saver Saver
}

// NewLedger starts from the given counts, usually a loaded save or the
// new-game starter kit. The map is copied.
func NewLedger(items map[string]int, saver Saver) *Ledger {
	l := &Ledger{
		items: make(map[string]int, len(items)),
		saver: saver,
	}
	for id, n := range items {
		if n > 0 {
			l.items[id] = n
		}
	}
	return l
}

// ConsumeSeed removes qty of itemId, refusing when the stock is short.
func (l *Ledger) ConsumeSeed(itemId string, qty int) bool {
	if qty <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.items[itemId] < qty {
		return false
	}

	l.items[itemId] -= qty
	if l.items[itemId] == 0 {
		delete(l.items, itemId)
	}

	l.persistLocked()
	return true
}

func (l *Ledger) CreditHarvest(itemId string, qty int) {
	if qty <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.items[itemId] += qty
	l.persistLocked()
}

func (l *Ledger) Count(itemId string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.items[itemId]
}

// Items returns a copy of the counts.
func (l *Ledger) Items() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make(map[string]int, len(l.items))
	for id, n := range l.items {
		items[id] = n
	}
	return items
}

func (l *Ledger) persistLocked() {
	if l.saver == nil {
		return
	}

	items := make(map[string]int, len(l.items))
	for id, n := range l.items {
		items[id] = n
	}
	if err := l.saver.SaveItems(items); err != nil {
		slog.Warn("saving inventory", "error", err)
	}
}
