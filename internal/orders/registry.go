// Package orders lists previously placed orders for the tracking panel.
package orders

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

// Registry is a read-only source of placed orders.
type Registry interface {
	// ListRecentOrders returns at most limit orders, newest first. A limit of
	// zero or less returns all orders.
	ListRecentOrders(ctx context.Context, limit int) ([]models.Order, error)
}

// Static serves a fixed set of orders.
type Static struct {
	orders []models.Order
}

// NewStatic creates a registry over orders. The input is copied and sorted
// newest first by order date, ties broken by id.
func NewStatic(orders []models.Order) *Static {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	SortNewestFirst(sorted)
	return &Static{orders: sorted}
}

func (s *Static) ListRecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	n := len(s.orders)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Order, n)
	copy(out, s.orders[:n])
	return out, nil
}

// SortNewestFirst orders by descending order date, then descending id.
func SortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.After(orders[j].OrderDate)
		}
		return orders[i].ID > orders[j].ID
	})
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func line(name string, qty int, price int64) models.OrderLine {
	return models.OrderLine{Name: name, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

// SeedOrders returns the demo order history.
func SeedOrders() []models.Order {
	return []models.Order{
		{
			ID:            "ORD-2024-001",
			Status:        models.OrderStatusDelivered,
			Items:         []models.OrderLine{line("มะม่วงน้ำดอกไม้", 2, 120), line("ผักกาดหอมออร์แกนิค", 3, 45)},
			Total:         decimal.NewFromInt(375),
			OrderDate:     day(2024, time.January, 15),
			DeliveryDate:  dayPtr(2024, time.January, 17),
			PaymentStatus: models.PaymentStatusPaid,
		},
		{
			ID:                "ORD-2024-002",
			Status:            models.OrderStatusShipping,
			Items:             []models.OrderLine{line("กล้วยหอมทอง", 1, 60), line("แครอทเบบี้", 2, 95)},
			Total:             decimal.NewFromInt(250),
			OrderDate:         day(2024, time.January, 18),
			EstimatedDelivery: dayPtr(2024, time.January, 20),
			PaymentStatus:     models.PaymentStatusPaid,
		},
		{
			ID:            "ORD-2024-003",
			Status:        models.OrderStatusPendingPayment,
			Items:         []models.OrderLine{line("ข้าวหอมมะลิ", 5, 45)},
			Total:         decimal.NewFromInt(225),
			OrderDate:     day(2024, time.January, 19),
			PaymentStatus: models.PaymentStatusPending,
		},
	}
}
