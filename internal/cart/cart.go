package cart

import (
	"github.com/shopspring/decimal"
)

// Line is one purchasable title plus its quantity. Catalog fields are copied
// at add time; a line never references the live catalog row.
type Line struct {
	ItemID      string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	CoverImage  string            `json:"cover_image,omitempty"`
	UnitPrice   decimal.Decimal   `json:"price"`
	Quantity    int               `json:"quantity"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Totals are derived aggregates, recomputed from the lines on every read so
// they can never drift from the actual contents.
type Totals struct {
	ItemCount  int
	TotalPrice decimal.Decimal
}

// State holds the ordered cart lines for one session. It is a plain container:
// the owning Service serializes access and drives persistence.
type State struct {
	lines []Line
	index map[string]int
	open  bool
}

// NewState returns an empty cart.
func NewState() *State {
	return &State{index: map[string]int{}}
}

// Hydrate rebuilds a State from a persisted line sequence, preserving order.
func Hydrate(lines []Line) *State {
	st := NewState()
	for _, line := range lines {
		if line.ItemID == "" || line.Quantity < 1 {
			continue
		}
		if _, ok := st.index[line.ItemID]; ok {
			continue
		}
		st.index[line.ItemID] = len(st.lines)
		st.lines = append(st.lines, line)
	}
	return st
}

// AddItem merges the item into the cart. A repeated item id adds to the
// existing quantity and keeps the line's original position; a new id appends.
// Callers must pass quantity >= 1 and a non-empty item id.
func (s *State) AddItem(item Line, quantity int) {
	if item.ItemID == "" || quantity < 1 {
		return
	}
	if pos, ok := s.index[item.ItemID]; ok {
		s.lines[pos].Quantity += quantity
		return
	}
	item.Quantity = quantity
	s.index[item.ItemID] = len(s.lines)
	s.lines = append(s.lines, item)
}

// Remove drops the line with the given id. Absent ids are a no-op.
func (s *State) Remove(itemID string) bool {
	pos, ok := s.index[itemID]
	if !ok {
		return false
	}
	s.lines = append(s.lines[:pos], s.lines[pos+1:]...)
	delete(s.index, itemID)
	for i := pos; i < len(s.lines); i++ {
		s.index[s.lines[i].ItemID] = i
	}
	return true
}

// SetQuantity replaces a line's quantity in place. A non-positive quantity is
// a deletion, not an error.
func (s *State) SetQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		s.Remove(itemID)
		return
	}
	if pos, ok := s.index[itemID]; ok {
		s.lines[pos].Quantity = quantity
	}
}

// Clear empties the cart unconditionally.
func (s *State) Clear() {
	s.lines = nil
	s.index = map[string]int{}
}

// Lines returns a copy of the ordered line sequence.
func (s *State) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len reports the number of distinct lines.
func (s *State) Len() int {
	return len(s.lines)
}

// Totals recomputes the derived aggregates from the current lines.
func (s *State) Totals() Totals {
	totals := Totals{TotalPrice: decimal.Zero}
	for _, line := range s.lines {
		totals.ItemCount += line.Quantity
		totals.TotalPrice = totals.TotalPrice.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return totals
}

// SetOpen toggles the drawer visibility flag. Never persisted.
func (s *State) SetOpen(open bool) {
	s.open = open
}

// IsOpen reports the drawer visibility flag.
func (s *State) IsOpen() bool {
	return s.open
}
