package storage

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/pixil98/go-farm/internal"
	"github.com/pixil98/go-farm/internal/display"
)

// menuMinRows keeps short menus from collapsing into a single crowded line.
const menuMinRows = 5

type validatingSelectable interface {
	ValidatingSpec
	Selector() string
}

// SelectableStorer wraps a Storer with a numbered pick list. The console
// uses it for the seed menu when a plant command names no crop. The menu
// is rendered once, so it reflects the records present when the store was
// wrapped.
type SelectableStorer[T validatingSelectable] struct {
	Storer[T]

	choices []choice[T]
	menu    []string
}

type choice[T validatingSelectable] struct {
	id  string
	val T
}

func NewSelectableStorer[T validatingSelectable](st Storer[T]) *SelectableStorer[T] {
	s := &SelectableStorer[T]{Storer: st}

	for id, val := range s.GetAll() {
		s.choices = append(s.choices, choice[T]{id: id, val: val})
	}
	slices.SortFunc(s.choices, func(a, b choice[T]) int {
		return cmp.Compare(a.val.Selector(), b.val.Selector())
	})
	s.render()

	return s
}

func (s *SelectableStorer[T]) render() {
	// Cell width fits the longest name plus its "nn. " prefix.
	cell := 0
	for _, c := range s.choices {
		if l := len(c.val.Selector()) + 4; l > cell {
			cell = l
		}
	}

	// Numbers run down the columns, left to right. A name wider than the
	// console still gets one column.
	cols := 1
	if cell > 0 && cell+2 <= display.Width {
		cols = display.Width / (cell + 2)
	}
	rows := (len(s.choices) + cols - 1) / cols
	if rows < menuMinRows {
		rows = menuMinRows
	}

	menu := make([]string, rows)
	for i, c := range s.choices {
		menu[i%rows] += fmt.Sprintf("%-*s  ", cell, fmt.Sprintf("%2d. %s", i+1, c.val.Selector()))
	}
	s.menu = menu
}

// Prompt writes the question and the menu, then asks until the answer is a
// number on the menu. It returns the picked record's id.
func (s *SelectableStorer[T]) Prompt(rw io.ReadWriter, prompt string) (string, error) {
	if _, err := fmt.Fprintf(rw, "%s\n", prompt); err != nil {
		return "", err
	}

	for _, row := range s.menu {
		if len(row) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(rw, "%s\n", row); err != nil {
			return "", err
		}
	}

	pick, err := internal.Prompt(rw, "Pick a number: ", internal.WithValidator(s.checkPick))
	if err != nil {
		return "", err
	}

	n, err := strconv.Atoi(pick)
	if err != nil {
		return "", err
	}

	return s.Select(n), nil
}

func (s *SelectableStorer[T]) checkPick(str string) (bool, string) {
	n, err := strconv.Atoi(str)
	if err != nil || s.Select(n) == "" {
		return false, "That's not one of the choices.\n"
	}
	return true, ""
}

// Select maps a 1-based menu number to the record id behind it, or "" when
// the number is off the menu.
func (s *SelectableStorer[T]) Select(i int) string {
	if i < 1 || i > len(s.choices) {
		return ""
	}
	return s.choices[i-1].id
}
