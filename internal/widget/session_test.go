package widget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WIIN2602/Farm2Hand/internal/cart"
	"github.com/WIIN2602/Farm2Hand/internal/catalog"
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
)

type recordingSink struct {
	sent []string
}

func (r *recordingSink) Send(text string) { r.sent = append(r.sent, text) }

type recordingObserver struct {
	NopObserver
	views     []navigator.View
	cartOps   []string
	confirmed int
	rejected  int
	forwarded int
}

func (o *recordingObserver) ViewChanged(from, to navigator.View)  { o.views = append(o.views, to) }
func (o *recordingObserver) CartChanged(op string)                { o.cartOps = append(o.cartOps, op) }
func (o *recordingObserver) OrderConfirmed(checkout.Confirmation) { o.confirmed++ }
func (o *recordingObserver) ConfirmRejected(error)                { o.rejected++ }
func (o *recordingObserver) MessageForwarded(string)              { o.forwarded++ }

func newTestSession(t *testing.T, items ...models.CartItem) (*Session, *recordingSink, *recordingObserver) {
	t.Helper()
	sink := &recordingSink{}
	obs := &recordingObserver{}
	s := NewSession(sink,
		WithLedger(cart.NewLedger(cart.DefaultShippingFee, items...)),
		WithObserver(obs),
	)
	return s, sink, obs
}

func featured(t *testing.T, id int) models.Product {
	t.Helper()
	for _, p := range catalog.SeedFeaturedProducts() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("no featured product %d", id)
	return models.Product{}
}

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession(nil)

	assert.True(t, s.View().Is(navigator.KindMenu))
	_, ok := s.PaymentMethod()
	assert.False(t, ok)
	assert.Empty(t, s.Cart().Items)
	assert.True(t, s.Cart().Total.Equal(decimal.NewFromInt(50)))
}

func TestSession_FreeTextIsForwardedVerbatim(t *testing.T) {
	s, sink, _ := newTestSession(t)
	s.Activate(navigator.On(navigator.BrowseCategories))

	view := s.Ask("ถามวิธีซื้อ")

	assert.True(t, view.Is(navigator.KindCategoryGrid))
	assert.Equal(t, []string{"ถามวิธีซื้อ"}, sink.sent)
}

func TestSession_QuestionLabelsNavigate(t *testing.T) {
	s, sink, _ := newTestSession(t)

	assert.True(t, s.Ask(navigator.QuestionBrowseProducts).Is(navigator.KindProductGrid))
	assert.True(t, s.Ask(navigator.QuestionTrackOrders).Is(navigator.KindOrderTracking))
	assert.Empty(t, sink.sent)
}

func TestSession_SelectOutOfStockProductIsInert(t *testing.T) {
	s, sink, obs := newTestSession(t)
	s.Activate(navigator.On(navigator.BrowseProducts))
	obs.views = nil

	assert.False(t, s.SelectProduct(featured(t, 3)))

	assert.Empty(t, sink.sent)
	assert.Empty(t, obs.views)
	assert.True(t, s.View().Is(navigator.KindProductGrid))
}

func TestSession_SelectProduct(t *testing.T) {
	s, sink, _ := newTestSession(t)

	assert.False(t, s.SelectProduct(featured(t, 1)), "inert outside the product grid")
	assert.Empty(t, sink.sent)

	s.Activate(navigator.On(navigator.BrowseProducts))
	require.True(t, s.SelectProduct(featured(t, 1)))

	assert.Equal(t, []string{"ขอดูรายละเอียดมะม่วงน้ำดอกไม้"}, sink.sent)
	assert.True(t, s.View().Is(navigator.KindMenu))
}

func TestSession_SelectCategoryProduct(t *testing.T) {
	s, sink, _ := newTestSession(t)
	mango := catalog.SeedCategoryProducts()[models.Fruits][0]

	assert.False(t, s.SelectCategoryProduct(mango))

	s.Activate(navigator.On(navigator.BrowseCategories))
	s.Activate(navigator.Choose(models.Fruits))
	require.True(t, s.SelectCategoryProduct(mango))

	assert.Equal(t, []string{"ขอดูรายละเอียดมะม่วง (Mango)"}, sink.sent)
	assert.True(t, s.View().Is(navigator.KindMenu))
	_, ok := s.View().Category()
	assert.False(t, ok)
}

func TestSession_BackToCategoriesKeepsCart(t *testing.T) {
	s, _, _ := newTestSession(t, featured(t, 1).ToCartItem(2))
	s.Activate(navigator.On(navigator.BrowseCategories))
	s.Activate(navigator.Choose(models.Fruits))
	before := s.Cart()

	s.Activate(navigator.On(navigator.BackToCategories))

	assert.Equal(t, navigator.CategoryGrid(), s.View())
	assert.Equal(t, before, s.Cart())
}

func TestSession_CartOperations(t *testing.T) {
	s, _, obs := newTestSession(t)

	s.AddToCart(featured(t, 1))
	s.AddToCart(featured(t, 1))
	s.AddToCart(featured(t, 2))
	assert.True(t, s.UpdateQuantity(2, 4))
	assert.False(t, s.UpdateQuantity(2, 4))
	assert.True(t, s.UpdateQuantity(1, 0))
	assert.False(t, s.RemoveFromCart(1))
	assert.True(t, s.RemoveFromCart(2))

	assert.Equal(t, []string{CartOpAdd, CartOpAdd, CartOpAdd, CartOpUpdate, CartOpRemove, CartOpRemove}, obs.cartOps)
	assert.Empty(t, s.Cart().Items)
}

func TestSession_SelectPaymentMethod(t *testing.T) {
	s, _, _ := newTestSession(t, featured(t, 1).ToCartItem(1))

	err := s.SelectPaymentMethod(models.PaymentCreditCard)
	assert.ErrorIs(t, err, checkout.ErrNotInOrderSummary)

	s.Activate(navigator.On(navigator.StartOrder))
	assert.ErrorIs(t, s.SelectPaymentMethod("paypal"), checkout.ErrUnknownPaymentMethod)
	require.NoError(t, s.SelectPaymentMethod(models.PaymentCashOnDelivery))

	m, ok := s.PaymentMethod()
	require.True(t, ok)
	assert.Equal(t, models.PaymentCashOnDelivery, m.ID)
}

func TestSession_SelectPaymentMethodOnEmptyCart(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Activate(navigator.On(navigator.StartOrder))

	assert.ErrorIs(t, s.SelectPaymentMethod(models.PaymentCreditCard), checkout.ErrCartEmpty)
}

func TestSession_LeavingOrderSummaryClearsPayment(t *testing.T) {
	leave := []navigator.Trigger{
		navigator.On(navigator.Back),
		navigator.On(navigator.BrowseProducts),
		navigator.On(navigator.BrowseCategories),
		navigator.On(navigator.TrackOrders),
	}
	for _, trigger := range leave {
		s, _, _ := newTestSession(t, featured(t, 1).ToCartItem(1))
		s.Activate(navigator.On(navigator.StartOrder))
		require.NoError(t, s.SelectPaymentMethod(models.PaymentBankTransfer))

		s.Activate(trigger)

		_, ok := s.PaymentMethod()
		assert.False(t, ok, "after %s", trigger.Kind)
	}
}

func TestSession_StayingOnOrderSummaryKeepsPayment(t *testing.T) {
	s, sink, _ := newTestSession(t, featured(t, 1).ToCartItem(1))
	s.Activate(navigator.On(navigator.StartOrder))
	require.NoError(t, s.SelectPaymentMethod(models.PaymentBankTransfer))

	s.Activate(navigator.On(navigator.StartOrder))
	s.Ask("มีโปรโมชั่นไหม")
	s.AddToCart(featured(t, 2))

	_, ok := s.PaymentMethod()
	assert.True(t, ok)
	assert.Len(t, sink.sent, 1)
}

func TestSession_ConfirmWithoutPaymentMethod(t *testing.T) {
	s, sink, obs := newTestSession(t, featured(t, 1).ToCartItem(2))
	s.Activate(navigator.On(navigator.StartOrder))
	before := s.Cart()

	_, err := s.ConfirmOrder()

	var verr *checkout.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payment method required", verr.Message)
	assert.True(t, s.View().Is(navigator.KindOrderSummary))
	assert.Equal(t, before, s.Cart())
	assert.Empty(t, sink.sent)
	assert.Equal(t, 1, obs.rejected)
}

func TestSession_ConfirmOrder(t *testing.T) {
	s, sink, obs := newTestSession(t, catalog.SeedCart()...)
	s.Activate(navigator.On(navigator.StartOrder))
	require.NoError(t, s.SelectPaymentMethod(models.PaymentCreditCard))

	conf, err := s.ConfirmOrder()

	require.NoError(t, err)
	assert.Equal(t, "ยืนยันการสั่งซื้อด้วยการบัตรเครดิต/เดบิต", conf.Message)
	assert.Equal(t, []string{conf.Message}, sink.sent)
	assert.True(t, s.View().Is(navigator.KindMenu))
	_, ok := s.PaymentMethod()
	assert.False(t, ok)
	assert.Len(t, s.Cart().Items, 3, "cart survives confirmation")
	assert.Equal(t, 1, obs.confirmed)
	assert.True(t, conf.Total.Equal(decimal.NewFromInt(485)))
}

func TestSession_RequestTracking(t *testing.T) {
	s, sink, obs := newTestSession(t)
	s.Activate(navigator.On(navigator.TrackOrders))
	obs.views = nil

	s.RequestTracking("ORD-2024-003")

	assert.Equal(t, []string{"ติดตามออเดอร์ ORD-2024-003"}, sink.sent)
	assert.True(t, s.View().Is(navigator.KindOrderTracking))
	assert.Empty(t, obs.views)
}

func TestSession_ShowMore(t *testing.T) {
	s, sink, obs := newTestSession(t)

	s.ShowMore()

	assert.Equal(t, []string{ShowMoreText}, sink.sent)
	assert.Equal(t, 1, obs.forwarded)
}

func TestSession_ObserverSeesViewChanges(t *testing.T) {
	s, _, obs := newTestSession(t)

	s.Activate(navigator.On(navigator.BrowseCategories))
	s.Activate(navigator.Choose(models.Rice))
	s.Activate(navigator.On(navigator.Back))
	s.Activate(navigator.On(navigator.Back))

	assert.Equal(t, []navigator.View{
		navigator.CategoryGrid(),
		navigator.CategoryProducts(models.Rice),
		navigator.Menu(),
	}, obs.views)
}
