package checkout

// Validation messages surfaced to the shopper.
const (
	ErrMsgPaymentMethodRequired = "payment method required"
	ErrMsgCartEmpty             = "cart is empty"
	ErrMsgUnknownPaymentMethod  = "unknown payment method"
	ErrMsgNotInOrderSummary     = "payment method can only be chosen from the order summary"
)

// Localized prompts shown next to a rejected action.
const (
	PromptPaymentMethodRequired = "กรุณาเลือกวิธีการชำระเงิน"
	PromptCartEmpty             = "ตะกร้าว่างเปล่า"
	PromptUnknownPaymentMethod  = "ไม่รู้จักวิธีการชำระเงินนี้"
	PromptNotInOrderSummary     = "กรุณาเลือกวิธีการชำระเงินจากหน้าสรุปการสั่งซื้อ"
)

// ValidationError is a user-recoverable rejection of a checkout step.
type ValidationError struct {
	Message string
	Prompt  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches validation errors by message so sentinels work with errors.Is.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Message == e.Message
}

var (
	ErrPaymentMethodRequired = &ValidationError{Message: ErrMsgPaymentMethodRequired, Prompt: PromptPaymentMethodRequired}
	ErrCartEmpty             = &ValidationError{Message: ErrMsgCartEmpty, Prompt: PromptCartEmpty}
	ErrUnknownPaymentMethod  = &ValidationError{Message: ErrMsgUnknownPaymentMethod, Prompt: PromptUnknownPaymentMethod}
	ErrNotInOrderSummary     = &ValidationError{Message: ErrMsgNotInOrderSummary, Prompt: PromptNotInOrderSummary}
)
