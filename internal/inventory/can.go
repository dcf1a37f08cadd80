package inventory

import (
	"log/slog"
	"sync"
)

const DefaultCanCapacity = 5

// CanState is the persisted portion of the watering can.
type CanState struct {
	Charges  int `json:"charges"`
	Capacity int `json:"capacity"`
}

type CanSaver interface {
	SaveCanState(CanState) error
}

// WateringCan is the bounded charge counter the console spends before
// asking the engine to water. The engine itself never sees it.
type WateringCan struct {
	mu       sync.Mutex
	charges  int
	capacity int
	saver    CanSaver
}

// NewWateringCan starts full. Capacity values below one fall back to
// the default.
func NewWateringCan(capacity int, saver CanSaver) *WateringCan {
	if capacity < 1 {
		capacity = DefaultCanCapacity
	}
	return &WateringCan{
		charges:  capacity,
		capacity: capacity,
		saver:    saver,
	}
}

// Restore applies saved charges. Capacity stays as configured, and
// charges from saves written under a larger capacity are clamped.
func (w *WateringCan) Restore(st CanState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	charges := st.Charges
	if charges < 0 {
		charges = 0
	}
	if charges > w.capacity {
		charges = w.capacity
	}
	w.charges = charges
}

// Use spends one charge. It reports false on an empty can, in which
// case nothing is consumed.
func (w *WateringCan) Use() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.charges == 0 {
		return false
	}
	w.charges--
	w.persistLocked()
	return true
}

// Refill tops the can back up to capacity.
func (w *WateringCan) Refill() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.charges == w.capacity {
		return
	}
	w.charges = w.capacity
	w.persistLocked()
}

func (w *WateringCan) Charges() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.charges
}

func (w *WateringCan) Capacity() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.capacity
}

func (w *WateringCan) Empty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.charges == 0
}

func (w *WateringCan) State() CanState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return CanState{Charges: w.charges, Capacity: w.capacity}
}

func (w *WateringCan) persistLocked() {
	if w.saver == nil {
		return
	}
	if err := w.saver.SaveCanState(CanState{Charges: w.charges, Capacity: w.capacity}); err != nil {
		slog.Warn("saving watering can", "error", err)
	}
}
