package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of a placed order
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusShipping       OrderStatus = "shipping"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// PaymentStatus represents whether a placed order has been paid
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

// Order is a read-only snapshot of a previously placed order.
type Order struct {
	ID                string          `json:"id"`
	Status            OrderStatus     `json:"status"`
	Items             []OrderLine     `json:"items"`
	Total             decimal.Decimal `json:"total"`
	OrderDate         time.Time       `json:"orderDate"`
	DeliveryDate      *time.Time      `json:"deliveryDate,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
}

// OrderLine is an item of a placed order, priced at order time.
type OrderLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ShortID returns the trailing sequence of an id like "ORD-2024-001".
func (o Order) ShortID() string {
	parts := strings.Split(o.ID, "-")
	if len(parts) < 3 {
		return o.ID
	}
	return parts[2]
}

// AwaitingPayment reports whether the shopper still has to pay for the order.
func (o Order) AwaitingPayment() bool {
	return o.PaymentStatus == PaymentStatusPending
}
