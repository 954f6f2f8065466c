package services

import (
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
)

var ErrLineNotFound = errors.New("ticket line not found")

// OrderLine is one distinct (menu item, modifier selection) combination
// on the ticket. UnitPrice already includes the selected deltas, so the
// per-unit price survives quantity changes unchanged.
type OrderLine struct {
	ID         string          `json:"id"`
	MenuID     uint            `json:"menu_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Selections SelectionSet    `json:"selections"`

	key string
}

// Total is quantity × per-unit price.
func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ticket is the active cart for one register session. Operator actions
// are serialized by the mutex; subtotal and tax are always derived from
// the current lines, never cached.
type Ticket struct {
	mu      sync.Mutex
	taxRate decimal.Decimal
	lines   []*OrderLine
}

func NewTicket(taxRate float64) *Ticket {
	return &Ticket{taxRate: decimal.NewFromFloat(taxRate)}
}

// AddLine rings an item up. A line matching on menu id and canonical
// selection key absorbs the add as a quantity increment; otherwise a
// new line with quantity 1 is appended.
func (t *Ticket) AddLine(item models.Menu, selections SelectionSet) OrderLine {
	t.mu.Lock()
	defer t.mu.Unlock()

	if selections == nil {
		selections = SelectionSet{}
	}
	key := lineKey(item.ID, selections)

	for _, line := range t.lines {
		if line.key == key {
			line.Quantity++
			return *line
		}
	}

	line := &OrderLine{
		ID:         uuid.NewString(),
		MenuID:     item.ID,
		Name:       item.Name,
		Quantity:   1,
		UnitPrice:  decimal.NewFromFloat(item.Price).Add(selections.PriceDelta()),
		Selections: selections.clone(),
		key:        key,
	}
	t.lines = append(t.lines, line)
	return *line
}

// ChangeQuantity adjusts a line by delta, clamping at zero. A line that
// reaches zero is removed from the ticket.
func (t *Ticket) ChangeQuantity(lineID string, delta int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, line := range t.lines {
		if line.ID != lineID {
			continue
		}
		newQty := line.Quantity + delta
		if newQty <= 0 {
			t.lines = append(t.lines[:i], t.lines[i+1:]...)
			return nil
		}
		line.Quantity = newQty
		return nil
	}
	return ErrLineNotFound
}

// RemoveLine deletes a line outright.
func (t *Ticket) RemoveLine(lineID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, line := range t.lines {
		if line.ID == lineID {
			t.lines = append(t.lines[:i], t.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear voids every line. Callers gate this behind manager
// authorization for non-manager operators.
func (t *Ticket) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = nil
}

// Lines returns a snapshot of the current lines.
func (t *Ticket) Lines() []OrderLine {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]OrderLine, len(t.lines))
	for i, line := range t.lines {
		out[i] = *line
	}
	return out
}

func (t *Ticket) IsEmpty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines) == 0
}

// Subtotal is the exact sum of line totals.
func (t *Ticket) Subtotal() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()

	sum := decimal.Zero
	for _, line := range t.lines {
		sum = sum.Add(line.Total())
	}
	return sum
}

// Tax is subtotal × the configured flat rate.
func (t *Ticket) Tax() decimal.Decimal {
	return t.Subtotal().Mul(t.taxRate)
}

// Restore replaces the ticket contents with a resumed snapshot.
func (t *Ticket) Restore(lines []OrderLine) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = make([]*OrderLine, len(lines))
	for i := range lines {
		line := lines[i]
		line.key = lineKey(line.MenuID, line.Selections)
		t.lines[i] = &line
	}
}

func lineKey(menuID uint, selections SelectionSet) string {
	return strconv.FormatUint(uint64(menuID), 10) + "|" + selections.CanonicalKey()
}
