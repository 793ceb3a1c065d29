package widget

import (
	"context"
	"errors"
	"fmt"

	"github.com/WIIN2602/Farm2Hand/internal/catalog"
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidAction   = errors.New("invalid action")
	ErrProductNotFound = errors.New("product not found")
)

// Action types accepted by Dispatch.
const (
	ActionTrigger               = "trigger"
	ActionAsk                   = "ask"
	ActionShowMore              = "showMore"
	ActionSelectProduct         = "selectProduct"
	ActionSelectCategoryProduct = "selectCategoryProduct"
	ActionAddToCart             = "addToCart"
	ActionUpdateQuantity        = "updateQuantity"
	ActionRemoveFromCart        = "removeFromCart"
	ActionSelectPaymentMethod   = "selectPaymentMethod"
	ActionConfirmOrder          = "confirmOrder"
	ActionRequestTracking       = "requestTracking"
)

// Action is a client command in wire form, shared by the HTTP and socket surfaces.
type Action struct {
	Type          string `json:"type" binding:"required"`
	Trigger       string `json:"trigger,omitempty"`
	Category      string `json:"category,omitempty"`
	Text          string `json:"text,omitempty"`
	ProductID     int    `json:"productId,omitempty"`
	Name          string `json:"name,omitempty"`
	Quantity      int    `json:"quantity,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	OrderID       string `json:"orderId,omitempty"`
}

// Result reports what an action did.
type Result struct {
	Changed      bool                   `json:"changed"`
	View         string                 `json:"view"`
	Confirmation *checkout.Confirmation `json:"confirmation,omitempty"`
}

// Dispatch decodes a and applies it to s. Inert actions succeed with Changed unset.
func Dispatch(ctx context.Context, s *Session, a Action) (Result, error) {
	before := s.View()
	res, err := apply(ctx, s, a)
	res.View = s.View().String()
	if !res.Changed && s.View() != before {
		res.Changed = true
	}
	return res, err
}

func apply(ctx context.Context, s *Session, a Action) (Result, error) {
	switch a.Type {
	case ActionTrigger:
		t, err := navigator.ParseTrigger(a.Trigger, a.Category)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		s.Activate(t)
		return Result{}, nil

	case ActionAsk:
		if a.Text == "" {
			return Result{}, fmt.Errorf("%w: text is required", ErrInvalidAction)
		}
		s.Ask(a.Text)
		return Result{Changed: true}, nil

	case ActionShowMore:
		s.ShowMore()
		return Result{Changed: true}, nil

	case ActionSelectProduct:
		p, err := lookupProduct(ctx, s.catalog, a.ProductID)
		if err != nil {
			return Result{}, err
		}
		return Result{Changed: s.SelectProduct(p)}, nil

	case ActionSelectCategoryProduct:
		category, ok := s.View().Category()
		if !ok {
			return Result{}, nil
		}
		entry, found, err := catalog.FindCategoryProduct(ctx, s.catalog, category, a.Name)
		if err != nil {
			return Result{}, err
		}
		if !found {
			return Result{}, fmt.Errorf("%w: %q in %s", ErrProductNotFound, a.Name, category)
		}
		return Result{Changed: s.SelectCategoryProduct(entry)}, nil

	case ActionAddToCart:
		p, err := lookupProduct(ctx, s.catalog, a.ProductID)
		if err != nil {
			return Result{}, err
		}
		s.AddToCart(p)
		return Result{Changed: true}, nil

	case ActionUpdateQuantity:
		return Result{Changed: s.UpdateQuantity(a.ProductID, a.Quantity)}, nil

	case ActionRemoveFromCart:
		return Result{Changed: s.RemoveFromCart(a.ProductID)}, nil

	case ActionSelectPaymentMethod:
		if err := s.SelectPaymentMethod(models.PaymentMethodID(a.PaymentMethod)); err != nil {
			return Result{}, err
		}
		return Result{Changed: true}, nil

	case ActionConfirmOrder:
		conf, err := s.ConfirmOrder()
		if err != nil {
			return Result{}, err
		}
		return Result{Changed: true, Confirmation: &conf}, nil

	case ActionRequestTracking:
		if a.OrderID == "" {
			return Result{}, fmt.Errorf("%w: orderId is required", ErrInvalidAction)
		}
		s.RequestTracking(a.OrderID)
		return Result{Changed: true}, nil
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
}

func lookupProduct(ctx context.Context, p catalog.Provider, id int) (models.Product, error) {
	product, found, err := catalog.FindProduct(ctx, p, id)
	if err != nil {
		return models.Product{}, err
	}
	if !found {
		return models.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return product, nil
}
