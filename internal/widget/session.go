// Package widget implements the storefront assistant panel: one session owns
// the active view, the payment selection and the cart, and hands terminal
// intents off to a Sink.
package widget

import (
	"errors"

	"go.uber.org/zap"

	"github.com/WIIN2602/Farm2Hand/internal/cart"
	"github.com/WIIN2602/Farm2Hand/internal/catalog"
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
	"github.com/WIIN2602/Farm2Hand/internal/orders"
)

// Session is a single shopper's widget state. It is not safe for concurrent use.
type Session struct {
	view    navigator.View
	payment *models.PaymentMethod
	ledger  *cart.Ledger

	coordinator *checkout.Coordinator
	catalog     catalog.Provider
	orders      orders.Registry
	sink        Sink
	observer    Observer
	limits      Limits
	logger      *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLedger starts the session with an existing cart.
func WithLedger(l *cart.Ledger) Option {
	return func(s *Session) { s.ledger = l }
}

// WithCatalog sets the catalog used for panels.
func WithCatalog(p catalog.Provider) Option {
	return func(s *Session) { s.catalog = p }
}

// WithOrders sets the order registry used for the tracking panel.
func WithOrders(r orders.Registry) Option {
	return func(s *Session) { s.orders = r }
}

// WithCoordinator sets the checkout coordinator.
func WithCoordinator(c *checkout.Coordinator) Option {
	return func(s *Session) { s.coordinator = c }
}

// WithObserver registers an observer for session events.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithLimits overrides the panel display limits.
func WithLimits(l Limits) Option {
	return func(s *Session) { s.limits = l }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session on the menu with an empty cart and the seed
// catalog unless overridden.
func NewSession(sink Sink, opts ...Option) *Session {
	s := &Session{
		view:     navigator.Menu(),
		sink:     sink,
		observer: NopObserver{},
		limits:   DefaultLimits(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ledger == nil {
		s.ledger = cart.NewLedger(cart.DefaultShippingFee)
	}
	if s.coordinator == nil {
		s.coordinator = checkout.NewCoordinator(nil)
	}
	if s.catalog == nil {
		s.catalog = catalog.NewSeedCatalog()
	}
	if s.orders == nil {
		s.orders = orders.NewStatic(orders.SeedOrders())
	}
	if s.sink == nil {
		s.sink = SinkFunc(func(string) {})
	}
	return s
}

// View returns the active panel.
func (s *Session) View() navigator.View { return s.view }

// PaymentMethod returns the selected payment method, if any.
func (s *Session) PaymentMethod() (models.PaymentMethod, bool) {
	if s.payment == nil {
		return models.PaymentMethod{}, false
	}
	return *s.payment, true
}

// Cart returns the current cart contents and totals.
func (s *Session) Cart() cart.Snapshot { return s.ledger.Snapshot() }

// Coordinator returns the checkout coordinator backing the session.
func (s *Session) Coordinator() *checkout.Coordinator { return s.coordinator }

// Activate applies a navigation intent. Free text is forwarded verbatim and
// leaves the view alone. Back also clears the payment selection.
func (s *Session) Activate(t navigator.Trigger) navigator.View {
	if t.Kind == navigator.FreeText {
		s.forward(t.Text)
		return s.view
	}
	next := navigator.Transition(s.view, t)
	if navigator.ResetsSession(t) {
		s.payment = nil
	}
	s.moveTo(next)
	return s.view
}

// Ask handles a click on a question-menu label or typed text.
func (s *Session) Ask(text string) navigator.View {
	return s.Activate(navigator.ParseQuestion(text))
}

// ShowMore forwards the request for more options.
func (s *Session) ShowMore() {
	s.forward(ShowMoreText)
}

// SelectProduct asks for details of a featured product and closes the grid.
// It is inert for out-of-stock products or when the product grid is not shown.
func (s *Session) SelectProduct(p models.Product) bool {
	if !s.view.Is(navigator.KindProductGrid) || !p.InStock {
		return false
	}
	s.forward(ProductDetailsMessage(p.Name))
	s.moveTo(navigator.Menu())
	return true
}

// SelectCategoryProduct asks for details of a curated entry and closes the grid.
// It is inert unless a category product grid is shown.
func (s *Session) SelectCategoryProduct(p models.CategoryProduct) bool {
	if !s.view.Is(navigator.KindCategoryProductGrid) {
		return false
	}
	s.forward(CategoryProductDetailsMessage(p))
	s.moveTo(navigator.Menu())
	return true
}

// AddToCart adds one unit of p.
func (s *Session) AddToCart(p models.Product) {
	s.ledger.Add(p)
	s.observer.CartChanged(CartOpAdd)
}

// UpdateQuantity sets a line's quantity; zero or less removes it.
func (s *Session) UpdateQuantity(id, quantity int) bool {
	op := CartOpUpdate
	if quantity <= 0 {
		op = CartOpRemove
	}
	changed := s.ledger.SetQuantity(id, quantity)
	if changed {
		s.observer.CartChanged(op)
	}
	return changed
}

// RemoveFromCart deletes a line. Absent ids are ignored.
func (s *Session) RemoveFromCart(id int) bool {
	changed := s.ledger.Remove(id)
	if changed {
		s.observer.CartChanged(CartOpRemove)
	}
	return changed
}

// SelectPaymentMethod picks the payment method on the order summary.
func (s *Session) SelectPaymentMethod(id models.PaymentMethodID) error {
	if !s.view.Is(navigator.KindOrderSummary) {
		return checkout.ErrNotInOrderSummary
	}
	if s.ledger.IsEmpty() {
		return checkout.ErrCartEmpty
	}
	m, err := s.coordinator.Lookup(id)
	if err != nil {
		return err
	}
	s.payment = &m
	return nil
}

// ConfirmOrder validates the selection, forwards the confirmation and returns
// to the menu. On failure nothing changes. The cart is kept either way.
func (s *Session) ConfirmOrder() (checkout.Confirmation, error) {
	conf, err := s.coordinator.Confirm(s.payment, s.ledger)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			s.logger.Info("order confirmation rejected", zap.String("reason", verr.Message))
		}
		s.observer.ConfirmRejected(err)
		return checkout.Confirmation{}, err
	}
	s.forward(conf.Message)
	s.moveTo(navigator.Menu())
	s.observer.OrderConfirmed(conf)
	s.logger.Info("order confirmed",
		zap.String("payment_method", string(conf.Method.ID)),
		zap.Int("items", conf.ItemCount),
		zap.String("total", conf.Total.String()),
	)
	return conf, nil
}

// RequestTracking forwards a tracking request for orderID. It changes nothing.
func (s *Session) RequestTracking(orderID string) {
	s.forward(TrackingMessage(orderID))
}

// moveTo activates next. Leaving the order summary drops the payment selection.
func (s *Session) moveTo(next navigator.View) {
	prev := s.view
	if prev.Is(navigator.KindOrderSummary) && !next.Is(navigator.KindOrderSummary) {
		s.payment = nil
	}
	s.view = next
	if prev != next {
		s.observer.ViewChanged(prev, next)
		s.logger.Debug("view changed", zap.Stringer("from", prev), zap.Stringer("to", next))
	}
}

func (s *Session) forward(text string) {
	s.sink.Send(text)
	s.observer.MessageForwarded(text)
}
