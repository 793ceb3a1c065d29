package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

var _ widget.Observer = (*Collector)(nil)

func TestCollector_ViewAndCart(t *testing.T) {
	c := NewCollector(nil)

	c.ViewChanged(navigator.Menu(), navigator.ProductGrid())
	c.ViewChanged(navigator.ProductGrid(), navigator.Menu())
	c.ViewChanged(navigator.Menu(), navigator.ProductGrid())
	c.CartChanged(widget.CartOpAdd)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.viewChanges.WithLabelValues("product_grid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.viewChanges.WithLabelValues("menu")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cartOps.WithLabelValues("add")))

	v, ok := c.Monitor().Value("view_changes")
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestCollector_Orders(t *testing.T) {
	c := NewCollector(NewMonitor())

	c.OrderConfirmed(checkout.Confirmation{
		Method: models.PaymentMethod{ID: models.PaymentCashOnDelivery},
		Total:  decimal.NewFromInt(485),
	})
	c.ConfirmRejected(checkout.ErrPaymentMethodRequired)
	c.ConfirmRejected(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.confirmations.WithLabelValues("cod")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejections.WithLabelValues(checkout.ErrMsgPaymentMethodRequired)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejections.WithLabelValues("other")))

	v, _ := c.Monitor().Value("confirmed_value")
	assert.Equal(t, 485.0, v)
}

func TestCollector_Sessions(t *testing.T) {
	c := NewCollector(nil)
	c.SessionOpened()
	c.SessionOpened()
	c.SessionClosed()
	c.MessageForwarded("hi")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.activeSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.forwarded))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(nil)
	c.CartChanged(widget.CartOpRemove)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `farm2hand_cart_operations_total{op="remove"} 1`)
}
