package names

import (
	"fmt"

	"github.com/arloliu/borsh/errs"
)

// Tracker records names in declaration order and rejects duplicates.
// The schema package uses it for struct field lists and for the definition
// order of struct types.
type Tracker struct {
	index map[string]int // name → position in list
	list  []string
}

// NewTracker creates an empty tracker with room for capacity names.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		index: make(map[string]int, capacity),
		list:  make([]string, 0, capacity),
	}
}

// Track appends name.
//
// Returns errs.ErrInvalidSchema for an empty name and errs.ErrDuplicateField
// when name was already tracked.
func (t *Tracker) Track(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty field name at position %d", errs.ErrInvalidSchema, len(t.list))
	}
	if pos, exists := t.index[name]; exists {
		return fmt.Errorf("%w: %q already declared at position %d", errs.ErrDuplicateField, name, pos)
	}

	t.index[name] = len(t.list)
	t.list = append(t.list, name)

	return nil
}

// Position returns the declaration position of name.
func (t *Tracker) Position(name string) (int, bool) {
	pos, ok := t.index[name]
	return pos, ok
}

// Names returns the tracked names in declaration order.
func (t *Tracker) Names() []string {
	return t.list
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.list)
}
