// Package cart implements the shopping cart rules: one line per item, one
// AI package at a time, nothing the user already owns.
package cart

import (
	"fmt"
	"strings"

	"github.com/fjod/chess_academy/internal/domain"
)

type Outcome string

const (
	Added    Outcome = "added"
	Replaced Outcome = "replaced"
	Removed  Outcome = "removed"
	Cleared  Outcome = "cleared"
)

// Event is delivered to listeners after every committed mutation.
type Event struct {
	Op       Outcome
	Line     *domain.CartLine
	Replaced *domain.CartLine
	Count    int
	Total    int64
}

type Listener func(Event)

// Ownership answers whether an item is already in the user's library.
type Ownership interface {
	Owns(id domain.ItemID) bool
}

// Library adapts a slice of library entries to Ownership.
type Library []domain.LibraryEntry

func (l Library) Owns(id domain.ItemID) bool {
	return domain.Owns(l, id)
}

type AddResult struct {
	Outcome  Outcome          `json:"outcome"`
	Replaced *domain.CartLine `json:"replaced,omitempty"`
}

// Cart is not safe for concurrent use. The service holds the user's lock
// while a Cart is loaded, mutated and saved.
type Cart struct {
	lines     []domain.CartLine
	listeners []Listener
}

func New(lines []domain.CartLine) *Cart {
	return &Cart{lines: append([]domain.CartLine(nil), lines...)}
}

func (c *Cart) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Add appends a line. A new AI package replaces the one already in the cart.
func (c *Cart) Add(line domain.CartLine, owned Ownership) (AddResult, error) {
	if err := Validate(line); err != nil {
		return AddResult{}, err
	}
	if line.Kind != domain.KindBooking && owned != nil && owned.Owns(line.ID) {
		return AddResult{}, fmt.Errorf("%w: %s", ErrAlreadyOwned, line.ID)
	}
	if c.index(line.ID) >= 0 {
		return AddResult{}, fmt.Errorf("%w: %s", ErrAlreadyInCart, line.ID)
	}

	res := AddResult{Outcome: Added}
	if line.Kind == domain.KindAI {
		for i, l := range c.lines {
			if l.Kind == domain.KindAI {
				prev := l
				res = AddResult{Outcome: Replaced, Replaced: &prev}
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
				break
			}
		}
	}

	c.lines = append(c.lines, line)
	c.notify(Event{Op: res.Outcome, Line: &line, Replaced: res.Replaced})
	return res, nil
}

// Remove drops the line with the given id. Removing a missing id is a no-op
// and reports false.
func (c *Cart) Remove(id domain.ItemID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	removed := c.lines[i]
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.notify(Event{Op: Removed, Line: &removed})
	return true
}

func (c *Cart) Clear() {
	c.lines = nil
	c.notify(Event{Op: Cleared})
}

func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Total() int64 {
	return Total(c.lines)
}

// Total sums line prices. Free lines contribute zero.
func Total(lines []domain.CartLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Price
	}
	return sum
}

// Validate checks the fields every cart line must carry.
func Validate(line domain.CartLine) error {
	switch {
	case line.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidLine)
	case strings.TrimSpace(line.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidLine)
	case !line.Kind.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidLine, line.Kind)
	case line.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidLine)
	}
	return nil
}

func (c *Cart) index(id domain.ItemID) int {
	for i, l := range c.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) notify(e Event) {
	e.Count = len(c.lines)
	e.Total = c.Total()
	for _, l := range c.listeners {
		l(e)
	}
}
