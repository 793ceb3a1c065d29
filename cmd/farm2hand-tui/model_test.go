package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WIIN2602/Farm2Hand/internal/api"
	"github.com/WIIN2602/Farm2Hand/internal/catalog"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
	"github.com/WIIN2602/Farm2Hand/internal/orders"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

func newTestModel(t *testing.T, seedCart bool) Model {
	t.Helper()
	factory := &api.SessionFactory{
		Catalog:     catalog.NewSeedCatalog(),
		Orders:      orders.NewStatic(orders.SeedOrders()),
		Limits:      widget.DefaultLimits(),
		ShippingFee: decimal.NewFromInt(50),
		SeedCart:    seedCart,
		History:     10,
	}
	session, transcript := factory.New("test", nil)
	return newModel(session, transcript)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func selectTitle(t *testing.T, m Model, title string) Model {
	t.Helper()
	for i, li := range m.options.Items() {
		if li.(item).title == title {
			m.options.Select(i)
			return m
		}
	}
	t.Fatalf("no option %q", title)
	return m
}

func TestItemsFor_Menu(t *testing.T) {
	m := newTestModel(t, true)
	items := m.options.Items()
	require.Len(t, items, 6)

	first := items[0].(item)
	require.NotNil(t, first.action)
	assert.Equal(t, widget.ActionTrigger, first.action.Type)
	assert.Equal(t, "browseProducts", first.action.Trigger)

	howTo := items[3].(item)
	assert.Equal(t, widget.ActionAsk, howTo.action.Type)

	assert.Equal(t, widget.ActionShowMore, items[5].(item).action.Type)
}

func TestItemsFor_OutOfStockIsInert(t *testing.T) {
	m := press(t, newTestModel(t, false), "enter")
	require.True(t, m.session.View().Is(navigator.KindProductGrid))

	var inert int
	for _, li := range m.options.Items() {
		if li.(item).action == nil {
			inert++
		}
	}
	assert.Equal(t, 1, inert)
}

func TestModel_NavigateAndBack(t *testing.T) {
	m := newTestModel(t, true)
	m = selectTitle(t, m, navigator.QuestionBrowseCategories)
	m = press(t, m, "enter")
	require.True(t, m.session.View().Is(navigator.KindCategoryGrid))

	m = press(t, m, "enter")
	require.True(t, m.session.View().Is(navigator.KindCategoryProductGrid))
	assert.NotEmpty(t, m.options.Title)

	m = press(t, m, "esc")
	assert.True(t, m.session.View().Is(navigator.KindCategoryGrid))

	m = press(t, m, "esc")
	assert.True(t, m.session.View().Is(navigator.KindMenu))
}

func TestModel_CheckoutFlow(t *testing.T) {
	m := newTestModel(t, true)
	m = selectTitle(t, m, navigator.QuestionStartOrder)
	m = press(t, m, "enter")
	require.True(t, m.session.View().Is(navigator.KindOrderSummary))

	m = selectTitle(t, m, "ยืนยันการสั่งซื้อ")
	m = press(t, m, "enter")
	assert.Equal(t, "กรุณาเลือกวิธีการชำระเงิน", m.error)

	m = selectTitle(t, m, "○ เก็บเงินปลายทาง")
	m = press(t, m, "enter")
	assert.Empty(t, m.error)

	m = selectTitle(t, m, "ยืนยันการสั่งซื้อ")
	m = press(t, m, "enter")
	assert.Equal(t, "ยืนยันการสั่งซื้อด้วยการเก็บเงินปลายทาง", m.status)
	assert.True(t, m.session.View().Is(navigator.KindMenu))
	assert.Contains(t, m.View(), "ยืนยันการสั่งซื้อด้วยการเก็บเงินปลายทาง")
}

func TestModel_AdjustCartLine(t *testing.T) {
	m := newTestModel(t, true)
	m = selectTitle(t, m, navigator.QuestionStartOrder)
	m = press(t, m, "enter")

	m.options.Select(0)
	first := m.options.SelectedItem().(item)
	require.NotZero(t, first.cartLine)

	before := m.session.Cart().ItemCount()
	m = press(t, m, "+")
	assert.Equal(t, before+1, m.session.Cart().ItemCount())

	m.options.Select(0)
	m = press(t, m, "x")
	assert.Len(t, m.session.Cart().Items, 2)
}

func TestModel_AskFreeText(t *testing.T) {
	m := newTestModel(t, true)
	m = press(t, m, "/")
	require.True(t, m.input.Focused())

	m = press(t, m, "ผักสด", "enter")
	assert.False(t, m.input.Focused())
	entries := m.transcript.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "ผักสด", entries[0].Text)
}
