// Package checkout validates the order-confirmation step and builds the
// order summary shown before it.
package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WIIN2602/Farm2Hand/internal/cart"
	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
)

const confirmTemplate = "ยืนยันการสั่งซื้อด้วยการ%s"

// Coordinator owns the payment catalog and the confirmation rules.
type Coordinator struct {
	methods []models.PaymentMethod
}

// NewCoordinator creates a coordinator over the given payment catalog. A nil
// catalog uses models.PaymentMethods.
func NewCoordinator(methods []models.PaymentMethod) *Coordinator {
	if methods == nil {
		methods = models.PaymentMethods()
	}
	return &Coordinator{methods: methods}
}

// Methods returns the payment catalog in display order.
func (c *Coordinator) Methods() []models.PaymentMethod {
	out := make([]models.PaymentMethod, len(c.methods))
	copy(out, c.methods)
	return out
}

// Lookup resolves a payment method id.
func (c *Coordinator) Lookup(id models.PaymentMethodID) (models.PaymentMethod, error) {
	for _, m := range c.methods {
		if m.ID == id {
			return m, nil
		}
	}
	return models.PaymentMethod{}, ErrUnknownPaymentMethod
}

// Confirmation is the outcome of a successful confirm.
type Confirmation struct {
	Method      models.PaymentMethod `json:"method"`
	ItemCount   int                  `json:"itemCount"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	ShippingFee decimal.Decimal      `json:"shippingFee"`
	Total       decimal.Decimal      `json:"total"`
	Message     string               `json:"message"`
}

// Confirm validates the selection against the ledger and composes the
// confirmation message. The ledger is read, never cleared.
func (c *Coordinator) Confirm(selected *models.PaymentMethod, ledger *cart.Ledger) (Confirmation, error) {
	if selected == nil {
		return Confirmation{}, ErrPaymentMethodRequired
	}
	if ledger.IsEmpty() {
		return Confirmation{}, ErrCartEmpty
	}
	snap := ledger.Snapshot()
	return Confirmation{
		Method:      *selected,
		ItemCount:   snap.ItemCount(),
		Subtotal:    snap.Subtotal,
		ShippingFee: snap.ShippingFee,
		Total:       snap.Total,
		Message:     fmt.Sprintf(confirmTemplate, selected.Label),
	}, nil
}

// MethodOption is a payment method with its selection state.
type MethodOption struct {
	models.PaymentMethod
	Selected bool `json:"selected"`
}

// Summary is the order-summary panel. When Empty is set only ExitAction is offered.
type Summary struct {
	Empty       bool              `json:"empty"`
	ExitAction  string            `json:"exitAction,omitempty"`
	Items       []models.CartItem `json:"items,omitempty"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	ShippingFee decimal.Decimal   `json:"shippingFee"`
	Total       decimal.Decimal   `json:"total"`
	Methods     []MethodOption    `json:"paymentMethods,omitempty"`
	CanConfirm  bool              `json:"canConfirm"`
}

// Summarize builds the order summary for the ledger and current selection.
// An empty ledger yields the empty-cart affordance whose only exit browses products.
func (c *Coordinator) Summarize(ledger *cart.Ledger, selected *models.PaymentMethod) Summary {
	snap := ledger.Snapshot()
	if ledger.IsEmpty() {
		return Summary{
			Empty:       true,
			ExitAction:  navigator.BrowseProducts.String(),
			Subtotal:    snap.Subtotal,
			ShippingFee: snap.ShippingFee,
			Total:       snap.Total,
		}
	}
	options := make([]MethodOption, 0, len(c.methods))
	for _, m := range c.methods {
		options = append(options, MethodOption{
			PaymentMethod: m,
			Selected:      selected != nil && selected.ID == m.ID,
		})
	}
	return Summary{
		Items:       snap.Items,
		Subtotal:    snap.Subtotal,
		ShippingFee: snap.ShippingFee,
		Total:       snap.Total,
		Methods:     options,
		CanConfirm:  selected != nil,
	}
}
