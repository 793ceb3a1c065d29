package widget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WIIN2602/Farm2Hand/internal/checkout"
)

func TestDispatch_Walkthrough(t *testing.T) {
	ctx := context.Background()
	s, sink, _ := newTestSession(t)

	steps := []Action{
		{Type: ActionTrigger, Trigger: "browseProducts"},
		{Type: ActionSelectProduct, ProductID: 2},
		{Type: ActionTrigger, Trigger: "startOrder"},
		{Type: ActionAddToCart, ProductID: 9},
		{Type: ActionAddToCart, ProductID: 9},
		{Type: ActionUpdateQuantity, ProductID: 9, Quantity: 5},
		{Type: ActionAddToCart, ProductID: 7},
		{Type: ActionRemoveFromCart, ProductID: 7},
		{Type: ActionSelectPaymentMethod, PaymentMethod: "cod"},
	}
	for _, a := range steps {
		_, err := Dispatch(ctx, s, a)
		require.NoError(t, err, a.Type)
	}

	res, err := Dispatch(ctx, s, Action{Type: ActionConfirmOrder})
	require.NoError(t, err)
	require.NotNil(t, res.Confirmation)
	assert.Equal(t, "menu", res.View)
	assert.Equal(t, 5, res.Confirmation.ItemCount)
	assert.Equal(t, []string{
		"ขอดูรายละเอียดผักกาดหอมออร์แกนิค",
		"ยืนยันการสั่งซื้อด้วยการเก็บเงินปลายทาง",
	}, sink.sent)
}

func TestDispatch_CategoryFlow(t *testing.T) {
	ctx := context.Background()
	s, sink, _ := newTestSession(t)

	res, err := Dispatch(ctx, s, Action{Type: ActionSelectCategoryProduct, Name: "Mango"})
	require.NoError(t, err)
	assert.False(t, res.Changed)

	_, err = Dispatch(ctx, s, Action{Type: ActionTrigger, Trigger: "browseCategories"})
	require.NoError(t, err)
	res, err = Dispatch(ctx, s, Action{Type: ActionTrigger, Trigger: "selectCategory", Category: "Rice"})
	require.NoError(t, err)
	assert.Equal(t, "category_product_grid(Rice)", res.View)

	_, err = Dispatch(ctx, s, Action{Type: ActionSelectCategoryProduct, Name: "Mango"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	res, err = Dispatch(ctx, s, Action{Type: ActionSelectCategoryProduct, Name: "Sticky rice"})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"ขอดูรายละเอียดข้าวเหนียว (Sticky rice)"}, sink.sent)
}

func TestDispatch_InertActionsAreNotErrors(t *testing.T) {
	ctx := context.Background()
	s, sink, _ := newTestSession(t)

	res, err := Dispatch(ctx, s, Action{Type: ActionTrigger, Trigger: "browseProducts"})
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = Dispatch(ctx, s, Action{Type: ActionSelectProduct, ProductID: 6})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, "product_grid", res.View)

	res, err = Dispatch(ctx, s, Action{Type: ActionRemoveFromCart, ProductID: 42})
	require.NoError(t, err)
	assert.False(t, res.Changed)

	res, err = Dispatch(ctx, s, Action{Type: ActionTrigger, Trigger: "backToCategories"})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, sink.sent)
}

func TestDispatch_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		action Action
		target error
	}{
		{name: "unknown type", action: Action{Type: "dance"}, target: ErrUnknownAction},
		{name: "unknown trigger", action: Action{Type: ActionTrigger, Trigger: "fly"}, target: ErrInvalidAction},
		{name: "free text trigger", action: Action{Type: ActionTrigger, Trigger: "freeText"}, target: ErrInvalidAction},
		{name: "bad category", action: Action{Type: ActionTrigger, Trigger: "selectCategory", Category: "Seafood"}, target: ErrInvalidAction},
		{name: "empty ask", action: Action{Type: ActionAsk}, target: ErrInvalidAction},
		{name: "unknown product", action: Action{Type: ActionAddToCart, ProductID: 404}, target: ErrProductNotFound},
		{name: "tracking without id", action: Action{Type: ActionRequestTracking}, target: ErrInvalidAction},
		{name: "payment off summary", action: Action{Type: ActionSelectPaymentMethod, PaymentMethod: "cod"}, target: checkout.ErrNotInOrderSummary},
		{name: "confirm without payment", action: Action{Type: ActionConfirmOrder}, target: checkout.ErrPaymentMethodRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(t)
			_, err := Dispatch(ctx, s, tt.action)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestDispatch_AskAndTracking(t *testing.T) {
	ctx := context.Background()
	s, sink, _ := newTestSession(t)

	res, err := Dispatch(ctx, s, Action{Type: ActionAsk, Text: "ค้นหาสินค้า"})
	require.NoError(t, err)
	assert.Equal(t, "category_grid", res.View)

	_, err = Dispatch(ctx, s, Action{Type: ActionRequestTracking, OrderID: "ORD-2024-001"})
	require.NoError(t, err)
	_, err = Dispatch(ctx, s, Action{Type: ActionShowMore})
	require.NoError(t, err)

	assert.Equal(t, []string{"ติดตามออเดอร์ ORD-2024-001", ShowMoreText}, sink.sent)
	_, ok := s.PaymentMethod()
	assert.False(t, ok)
}
