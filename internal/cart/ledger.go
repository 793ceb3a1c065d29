// Package cart keeps the shopper's running cart and derives its totals.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

// DefaultShippingFee is the flat per-order delivery charge.
var DefaultShippingFee = decimal.NewFromInt(50)

// Ledger is the authoritative list of cart items for one session.
// Items keep insertion order, ids are unique and quantities are always >= 1.
// Totals are derived on every read. A Ledger is not safe for concurrent use.
type Ledger struct {
	items       []models.CartItem
	shippingFee decimal.Decimal
}

// NewLedger creates a ledger with a flat shipping fee and an optional restored
// item list. Duplicate ids are merged and non-positive quantities dropped.
func NewLedger(shippingFee decimal.Decimal, initial ...models.CartItem) *Ledger {
	l := &Ledger{shippingFee: shippingFee}
	for _, item := range initial {
		if item.Quantity <= 0 {
			continue
		}
		if i := l.indexOf(item.ID); i >= 0 {
			l.items[i].Quantity += item.Quantity
			continue
		}
		l.items = append(l.items, item)
	}
	return l
}

// Add puts one unit of the product in the cart. An existing line is bumped by one,
// otherwise a new line is appended with the product's current price, unit and image.
func (l *Ledger) Add(p models.Product) {
	if i := l.indexOf(p.ID); i >= 0 {
		l.SetQuantity(p.ID, l.items[i].Quantity+1)
		return
	}
	l.items = append(l.items, p.ToCartItem(1))
}

// SetQuantity changes the quantity of a line in place. A quantity of zero or less
// removes the line. Unknown ids are ignored. It reports whether the cart changed.
func (l *Ledger) SetQuantity(id, quantity int) bool {
	if quantity <= 0 {
		return l.Remove(id)
	}
	i := l.indexOf(id)
	if i < 0 || l.items[i].Quantity == quantity {
		return false
	}
	l.items[i].Quantity = quantity
	return true
}

// Remove deletes the line with the given id. Removing an absent id is a no-op.
func (l *Ledger) Remove(id int) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Item returns the line for id.
func (l *Ledger) Item(id int) (models.CartItem, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.items[i], true
	}
	return models.CartItem{}, false
}

// Items returns a copy of the lines in insertion order.
func (l *Ledger) Items() []models.CartItem {
	out := make([]models.CartItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of distinct lines.
func (l *Ledger) Len() int { return len(l.items) }

// IsEmpty reports whether the cart has no lines.
func (l *Ledger) IsEmpty() bool { return len(l.items) == 0 }

// Subtotal is the sum of unit price times quantity over all lines.
func (l *Ledger) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range l.items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ShippingFee is the flat delivery charge, independent of the items.
func (l *Ledger) ShippingFee() decimal.Decimal { return l.shippingFee }

// Total is Subtotal plus ShippingFee.
func (l *Ledger) Total() decimal.Decimal {
	return l.Subtotal().Add(l.shippingFee)
}

// Snapshot captures the lines and derived totals at a point in time.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Items:       l.Items(),
		Subtotal:    l.Subtotal(),
		ShippingFee: l.shippingFee,
		Total:       l.Total(),
	}
}

func (l *Ledger) indexOf(id int) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Snapshot is a read-only copy of the ledger state.
type Snapshot struct {
	Items       []models.CartItem `json:"items"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	ShippingFee decimal.Decimal   `json:"shippingFee"`
	Total       decimal.Decimal   `json:"total"`
}

// ItemCount is the number of units across all lines.
func (s Snapshot) ItemCount() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}
