package savegame

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-farm/internal/clock"
	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-farm/internal/inventory"
	"github.com/pixil98/go-farm/internal/storage"
	"github.com/pixil98/go-testutil"
)

// catalogue is a minimal crop store with a fixed set of known ids.
type catalogue struct {
	known map[string]*farm.Crop
}

func (c *catalogue) Save(id string, crop *farm.Crop) error { c.known[id] = crop; return nil }
func (c *catalogue) Get(id string) *farm.Crop              { return c.known[id] }
func (c *catalogue) GetAll() map[string]*farm.Crop         { return c.known }

func testCatalogue() *catalogue {
	return &catalogue{known: map[string]*farm.Crop{
		"radish": {Name: "Radish", GrowthDays: 3},
	}}
}

func newDocStore(t *testing.T, dir string) storage.Storer[*Document] {
	t.Helper()
	docs, err := storage.NewFileStore[*Document](dir)
	if err != nil {
		t.Fatalf("creating doc store: %v", err)
	}
	return docs
}

func TestStore_LoadFreshSlot(t *testing.T) {
	docs := newDocStore(t, t.TempDir())
	store := NewStore(docs, testCatalogue(), "slot-1")

	doc, fresh := store.Load()

	testutil.AssertEqual(t, "fresh", fresh, true)
	testutil.AssertEqual(t, "no plots", len(doc.Plots), 0)
	testutil.AssertEqual(t, "no items", len(doc.Items), 0)

	_, found, err := store.CalendarState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "no calendar section", found, false)
}

func TestStore_LoadNormalises(t *testing.T) {
	dir := t.TempDir()

	// A save written by an older build: a fallow record, a state string
	// this build does not know, a crop the catalogue lost, a duplicated
	// tile, a negative streak, and no watering timestamps at all.
	raw := `{
		"version": 1,
		"id": "slot-1",
		"spec": {
			"plots": [
				{"map_id": "farm", "pos": {"x": 0, "y": 0}, "state": "fallow"},
				{"map_id": "farm", "pos": {"x": 1, "y": 0}, "state": "glowing"},
				{"map_id": "farm", "pos": {"x": 2, "y": 0}, "state": "planted", "crop_id": "moonfruit", "planted_day": 1},
				{"map_id": "farm", "pos": {"x": 3, "y": 0}, "state": "planted", "crop_id": "radish", "planted_day": 1},
				{"map_id": "farm", "pos": {"x": 3, "y": 0}, "state": "watered", "crop_id": "radish", "planted_day": 2, "last_watered_day": 2, "watered_streak": -4},
				{"map_id": "farm", "pos": {"x": 4, "y": 0}, "state": "tilled", "crop_id": "radish", "planted_day": 9},
				{"map_id": "farm", "pos": {"x": 5, "y": 0}, "state": "wilting"}
			],
			"items": {"radish-seeds": 3, "cursed": -2, "empty": 0}
		}
	}`
	if err := os.WriteFile(filepath.Join(dir, "slot-1.json"), []byte(raw), 0644); err != nil {
		t.Fatalf("writing save fixture: %v", err)
	}

	store := NewStore(newDocStore(t, dir), testCatalogue(), "slot-1")
	doc, fresh := store.Load()

	testutil.AssertEqual(t, "fresh", fresh, false)
	testutil.AssertEqual(t, "plots kept", len(doc.Plots), 2)

	dup := doc.Plots[0]
	testutil.AssertEqual(t, "dup pos", dup.Pos, farm.TilePos{X: 3, Y: 0})
	testutil.AssertEqual(t, "last record wins", dup.State, farm.StateWatered)
	testutil.AssertEqual(t, "streak clamped", dup.WateredStreak, 0)

	tilled := doc.Plots[1]
	testutil.AssertEqual(t, "tilled pos", tilled.Pos, farm.TilePos{X: 4, Y: 0})
	testutil.AssertEqual(t, "tilled keeps no crop", tilled.CropId, storage.Identifier(""))
	testutil.AssertEqual(t, "tilled planted day reset", tilled.PlantedDay, 0)
	testutil.AssertEqual(t, "missing timestamp defaults", tilled.LastWateredDay, -1)

	testutil.AssertEqual(t, "items kept", doc.Items["radish-seeds"], 3)
	testutil.AssertEqual(t, "item count", len(doc.Items), 1)
}

func TestStore_SaveSectionsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(newDocStore(t, dir), testCatalogue(), "slot-1")
	store.Load()

	plots := []farm.Plot{
		{MapId: "farm", Pos: farm.TilePos{X: 1, Y: 2}, State: farm.StateWatered, CropId: "radish", PlantedDay: 4, LastWateredDay: 5, WateredStreak: 2, Quality: farm.QualityGood},
	}
	if err := store.SaveFarmPlots(plots); err != nil {
		t.Fatalf("saving plots: %v", err)
	}
	if err := store.SaveItems(map[string]int{"radish": 7}); err != nil {
		t.Fatalf("saving items: %v", err)
	}
	if err := store.SaveCanState(inventory.CanState{Charges: 1, Capacity: 5}); err != nil {
		t.Fatalf("saving can: %v", err)
	}
	calSt := clock.State{
		Epoch: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Warp:  30 * time.Minute,
	}
	if err := store.SaveCalendarState(calSt); err != nil {
		t.Fatalf("saving calendar: %v", err)
	}

	// A second store over the same directory sees everything, field for
	// field.
	reloaded := NewStore(newDocStore(t, dir), testCatalogue(), "slot-1")
	doc, fresh := reloaded.Load()

	testutil.AssertEqual(t, "fresh", fresh, false)
	testutil.AssertEqual(t, "plot count", len(doc.Plots), 1)
	testutil.AssertEqual(t, "plot", doc.Plots[0], plots[0])
	testutil.AssertEqual(t, "items", doc.Items["radish"], 7)
	testutil.AssertEqual(t, "can", doc.Can, inventory.CanState{Charges: 1, Capacity: 5})

	st, found, err := reloaded.CalendarState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "calendar found", found, true)
	testutil.AssertEqual(t, "epoch", st.Epoch.Equal(calSt.Epoch), true)
	testutil.AssertEqual(t, "warp", st.Warp, calSt.Warp)
}

func TestStore_SlotsAreIndependent(t *testing.T) {
	docs := newDocStore(t, t.TempDir())

	one := NewStore(docs, testCatalogue(), "slot-1")
	two := NewStore(docs, testCatalogue(), "slot-2")
	one.Load()
	two.Load()

	if err := one.SaveItems(map[string]int{"radish": 1}); err != nil {
		t.Fatalf("saving items: %v", err)
	}

	doc, fresh := two.Load()
	testutil.AssertEqual(t, "other slot untouched", fresh, true)
	testutil.AssertEqual(t, "no items leak", len(doc.Items), 0)
}
