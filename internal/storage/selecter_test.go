package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

var errBadCrop = errors.New("bad crop")

// menuCrop implements validatingSelectable for testing
type menuCrop struct {
	name  string
	valid bool
}

func (c *menuCrop) Validate() error {
	if !c.valid {
		return errBadCrop
	}
	return nil
}

func (c *menuCrop) Selector() string {
	return c.name
}

// menuCatalogue implements Storer[*menuCrop] for testing
type menuCatalogue struct {
	records map[string]*menuCrop
}

func (m *menuCatalogue) Save(id string, o *menuCrop) error {
	m.records[id] = o
	return nil
}

func (m *menuCatalogue) Get(id string) *menuCrop {
	return m.records[id]
}

func (m *menuCatalogue) GetAll() map[string]*menuCrop {
	return m.records
}

// pickerConn implements io.ReadWriter for testing Prompt
type pickerConn struct {
	readBuf  *bytes.Buffer
	writeBuf *bytes.Buffer
}

func (m *pickerConn) Read(p []byte) (n int, err error) {
	return m.readBuf.Read(p)
}

func (m *pickerConn) Write(p []byte) (n int, err error) {
	return m.writeBuf.Write(p)
}

func TestNewSelectableStorer(t *testing.T) {
	tests := map[string]struct {
		records      map[string]*menuCrop
		expChoices   int
		expFirstPick string
	}{
		"empty catalogue": {
			records:    map[string]*menuCrop{},
			expChoices: 0,
		},
		"single crop": {
			records: map[string]*menuCrop{
				"radish": {name: "Radish", valid: true},
			},
			expChoices:   1,
			expFirstPick: "radish",
		},
		"crops sort by display name": {
			records: map[string]*menuCrop{
				"radish":    {name: "Radish", valid: true},
				"beet":      {name: "Beet", valid: true},
				"moonfruit": {name: "Moonfruit", valid: true},
			},
			expChoices:   3,
			expFirstPick: "beet",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ss := NewSelectableStorer(&menuCatalogue{records: tt.records})

			testutil.AssertEqual(t, "choice count", len(ss.choices), tt.expChoices)
			testutil.AssertEqual(t, "first pick", ss.Select(1), tt.expFirstPick)

			if tt.expChoices > 0 && len(ss.menu) == 0 {
				t.Errorf("expected a rendered menu")
			}
		})
	}
}

func TestSelectableStorer_Select(t *testing.T) {
	ss := NewSelectableStorer(&menuCatalogue{records: map[string]*menuCrop{
		"radish":    {name: "Radish", valid: true},
		"beet":      {name: "Beet", valid: true},
		"moonfruit": {name: "Moonfruit", valid: true},
	}})

	// Sorted by name: Beet, Moonfruit, Radish.
	tests := map[string]struct {
		index int
		expId string
	}{
		"first entry": {
			index: 1,
			expId: "beet",
		},
		"middle entry": {
			index: 2,
			expId: "moonfruit",
		},
		"last entry": {
			index: 3,
			expId: "radish",
		},
		"zero is off the menu": {
			index: 0,
			expId: "",
		},
		"negative is off the menu": {
			index: -1,
			expId: "",
		},
		"one past the end": {
			index: 4,
			expId: "",
		},
		"far past the end": {
			index: 100,
			expId: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "picked id", ss.Select(tt.index), tt.expId)
		})
	}
}

func TestSelectableStorer_Select_Empty(t *testing.T) {
	ss := NewSelectableStorer(&menuCatalogue{records: map[string]*menuCrop{}})

	testutil.AssertEqual(t, "picked id", ss.Select(1), "")
}

func TestSelectableStorer_Render(t *testing.T) {
	tests := map[string]struct {
		records map[string]*menuCrop
		expRows int
	}{
		"empty menu keeps the minimum rows": {
			records: map[string]*menuCrop{},
			expRows: menuMinRows,
		},
		"short menu keeps the minimum rows": {
			records: map[string]*menuCrop{
				"radish": {name: "Radish", valid: true},
				"beet":   {name: "Beet", valid: true},
			},
			expRows: menuMinRows,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ss := NewSelectableStorer(&menuCatalogue{records: tt.records})

			testutil.AssertEqual(t, "menu rows", len(ss.menu), tt.expRows)
		})
	}
}

func TestSelectableStorer_Render_NameWiderThanConsole(t *testing.T) {
	long := strings.Repeat("overgrown pumpkin ", 6)
	ss := NewSelectableStorer(&menuCatalogue{records: map[string]*menuCrop{
		"pumpkin": {name: long, valid: true},
	}})

	if len(ss.menu) == 0 {
		t.Fatal("expected a rendered menu")
	}
	if !strings.Contains(ss.menu[0], long) {
		t.Errorf("expected the first row to carry the long name")
	}
}

func TestSelectableStorer_Prompt(t *testing.T) {
	ss := NewSelectableStorer(&menuCatalogue{records: map[string]*menuCrop{
		"radish": {name: "Radish", valid: true},
		"beet":   {name: "Beet", valid: true},
	}})

	tests := map[string]struct {
		input string
		expId string
	}{
		"pick the first crop": {
			input: "1\n",
			expId: "beet",
		},
		"pick the second crop": {
			input: "2\n",
			expId: "radish",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rw := &pickerConn{
				readBuf:  bytes.NewBufferString(tt.input),
				writeBuf: &bytes.Buffer{},
			}

			result, err := ss.Prompt(rw, "Which seeds will you sow?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "picked id", result, tt.expId)

			out := rw.writeBuf.String()
			if !strings.Contains(out, "Which seeds will you sow?") {
				t.Errorf("expected the question in the output, got %q", out)
			}
			if !strings.Contains(out, "1. Beet") {
				t.Errorf("expected a numbered menu entry, got %q", out)
			}
			if !strings.Contains(out, "Pick a number: ") {
				t.Errorf("expected the pick prompt, got %q", out)
			}
		})
	}
}

func TestSelectableStorer_Prompt_RetriesBadPicks(t *testing.T) {
	ss := NewSelectableStorer(&menuCatalogue{records: map[string]*menuCrop{
		"radish": {name: "Radish", valid: true},
	}})

	// A word, then a number off the menu, then a good pick.
	rw := &pickerConn{
		readBuf:  bytes.NewBufferString("parsnip\n9\n1\n"),
		writeBuf: &bytes.Buffer{},
	}

	result, err := ss.Prompt(rw, "Which seeds will you sow?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "picked id", result, "radish")
	testutil.AssertEqual(t, "retries written",
		strings.Count(rw.writeBuf.String(), "That's not one of the choices."), 2)
}
