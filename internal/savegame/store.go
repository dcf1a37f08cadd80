package savegame

import (
	"fmt"
	"sync"

	"github.com/pixil98/go-farm/internal/clock"
	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-farm/internal/inventory"
	"github.com/pixil98/go-farm/internal/storage"
)

const calendarExtension = "calendar"

// Store binds one save slot to a document store and serves as the
// persistence collaborator for every subsystem: each sink rewrites its
// section and saves the whole document, matching the engine's
// write-after-every-mutation contract. Engines for different slots get
// different Stores over the same backing FileStore.
type Store struct {
	slot  string
	docs  storage.Storer[*Document]
	crops storage.Storer[*farm.Crop]

	mu  sync.Mutex
	doc *Document
}

func NewStore(docs storage.Storer[*Document], crops storage.Storer[*farm.Crop], slot string) *Store {
	return &Store{
		slot:  slot,
		docs:  docs,
		crops: crops,
		doc:   &Document{Items: map[string]int{}},
	}
}

// Load pulls the slot's document and normalises it. The second return
// is true when the slot had no document yet, telling the caller to
// apply new-game setup such as the starter kit.
func (s *Store) Load() (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.docs.Get(s.slot)
	if doc == nil {
		s.doc = &Document{Items: map[string]int{}}
		return *s.doc, true
	}

	doc.normalise(s.crops)
	s.doc = doc
	return *doc, false
}

// SaveFarmPlots implements the engine's save hook.
func (s *Store) SaveFarmPlots(plots []farm.Plot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Plots = plots
	return s.persistLocked()
}

// SaveItems implements the inventory save hook.
func (s *Store) SaveItems(items map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Items = items
	return s.persistLocked()
}

// SaveCanState implements the watering can save hook.
func (s *Store) SaveCanState(st inventory.CanState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Can = st
	return s.persistLocked()
}

// SaveCalendarState implements the calendar save hook.
func (s *Store) SaveCalendarState(st clock.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.doc.Extensions.Set(calendarExtension, st); err != nil {
		return err
	}
	return s.persistLocked()
}

// CalendarState reads the calendar section back out of the loaded
// document. Found is false for fresh slots and pre-calendar saves.
func (s *Store) CalendarState() (clock.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st clock.State
	found, err := s.doc.Extensions.Get(calendarExtension, &st)
	if err != nil {
		return clock.State{}, found, fmt.Errorf("reading calendar state: %w", err)
	}
	return st, found, nil
}

func (s *Store) persistLocked() error {
	if err := s.docs.Save(s.slot, s.doc); err != nil {
		return fmt.Errorf("saving slot %q: %w", s.slot, err)
	}
	return nil
}
