package savegame

import (
	"encoding/json"
	"fmt"
)

// Extensions holds the save sections this build has no struct fields for.
// Sections ride along as raw JSON, so a slot written by a newer build keeps
// its extra state across a load and save here.
type Extensions map[string]json.RawMessage

// Set encodes v and stores it as the named section.
func (e *Extensions) Set(name string, v any) error {
	if name == "" {
		return fmt.Errorf("section name cannot be empty")
	}
	if *e == nil {
		*e = Extensions{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding save section %q: %w", name, err)
	}

	(*e)[name] = json.RawMessage(b)
	return nil
}

// Get decodes the named section into out. It returns found=false when the
// section is absent, which callers treat as "use the defaults".
func (e Extensions) Get(name string, out any) (bool, error) {
	if e == nil {
		return false, nil
	}

	raw, ok := e[name]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decoding save section %q: %w", name, err)
	}
	return true, nil
}

// Delete drops the named section, if present.
func (e Extensions) Delete(name string) {
	if e == nil {
		return
	}
	delete(e, name)
}
