package widget

import (
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
)

// Sink receives intents handed off to the surrounding assistant. Send must not
// block; the session never waits for or reacts to a reply.
type Sink interface {
	Send(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

func (f SinkFunc) Send(text string) { f(text) }

// Cart operations reported to observers.
const (
	CartOpAdd    = "add"
	CartOpUpdate = "update"
	CartOpRemove = "remove"
)

// Observer is notified of session events. Implementations must be cheap and
// must not call back into the session.
type Observer interface {
	ViewChanged(from, to navigator.View)
	CartChanged(op string)
	OrderConfirmed(c checkout.Confirmation)
	ConfirmRejected(err error)
	MessageForwarded(text string)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) ViewChanged(from, to navigator.View)  {}
func (NopObserver) CartChanged(op string)                {}
func (NopObserver) OrderConfirmed(checkout.Confirmation) {}
func (NopObserver) ConfirmRejected(error)                {}
func (NopObserver) MessageForwarded(string)              {}
