package widget

import (
	"fmt"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

// Localized labels and intents forwarded to the assistant.
const (
	ShowMoreText  = "ดูตัวเลือกเพิ่มเติม"
	ShowMoreLabel = "ดูเพิ่มเติม..."

	detailsPrefix  = "ขอดูรายละเอียด"
	trackingPrefix = "ติดตามออเดอร์ "

	LabelPayNow      = "ชำระเงิน"
	LabelViewDetails = "ดูรายละเอียด"
)

// ProductDetailsMessage asks the assistant about a catalog product.
func ProductDetailsMessage(name string) string {
	return detailsPrefix + name
}

// CategoryProductDetailsMessage asks about a curated entry using both of its names.
func CategoryProductDetailsMessage(p models.CategoryProduct) string {
	return fmt.Sprintf("%s%s (%s)", detailsPrefix, p.LocalizedName, p.Name)
}

// TrackingMessage asks the assistant to track an order.
func TrackingMessage(orderID string) string {
	return trackingPrefix + orderID
}

var statusLabels = map[models.OrderStatus]string{
	models.OrderStatusDelivered:      "จัดส่งแล้ว",
	models.OrderStatusShipping:       "กำลังจัดส่ง",
	models.OrderStatusPendingPayment: "รอชำระเงิน",
}

// StatusLabel returns the localized badge for an order status.
func StatusLabel(s models.OrderStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// TrackingActionLabel picks the order card button by payment status.
func TrackingActionLabel(o models.Order) string {
	if o.AwaitingPayment() {
		return LabelPayNow
	}
	return LabelViewDetails
}
