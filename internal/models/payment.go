package models

// PaymentMethodID identifies a supported payment method
type PaymentMethodID string

const (
	PaymentCreditCard     PaymentMethodID = "credit_card"
	PaymentBankTransfer   PaymentMethodID = "bank_transfer"
	PaymentCashOnDelivery PaymentMethodID = "cod"
)

// PaymentMethod is display data for a payment option. Icons are resolved by
// the presentation layer from the ID.
type PaymentMethod struct {
	ID          PaymentMethodID `json:"id"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
}

// PaymentMethods returns the fixed payment catalog in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: PaymentCreditCard, Label: "บัตรเครดิต/เดบิต", Description: "Visa, Mastercard, JCB"},
		{ID: PaymentBankTransfer, Label: "โอนผ่านธนาคาร", Description: "ธนาคารไทยพาณิชย์, กสิกรไทย, กรุงเทพ"},
		{ID: PaymentCashOnDelivery, Label: "เก็บเงินปลายทาง", Description: "ชำระเมื่อได้รับสินค้า"},
	}
}
