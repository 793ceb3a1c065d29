package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fallbacks applied when a catalog source leaves optional product fields empty.
const (
	UnknownFarmer   = "Unknown Farmer"
	UnknownLocation = "Unknown Location"
)

// Product is a purchasable catalog entry as shown in the featured grid and
// the add-to-cart list.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Image       string          `json:"image"`
	InStock     bool            `json:"inStock"`
	Farmer      string          `json:"farmer,omitempty"`
	Location    string          `json:"location,omitempty"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	Discount    *int            `json:"discount,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Organic     bool            `json:"organic"`
	Tags        []string        `json:"tags,omitempty"`
	Stock       int             `json:"stock"`
}

// ValidateProduct checks the fields the cart and the grids rely on.
func ValidateProduct(p *Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("product id must be positive")
	}
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product price must not be negative")
	}
	return nil
}

// ToCartItem snapshots the product into a cart line with the given quantity.
// Price, unit and image are copied so later catalog changes do not re-price the cart.
func (p Product) ToCartItem(quantity int) CartItem {
	return CartItem{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Unit:      p.Unit,
		Quantity:  quantity,
		Image:     p.Image,
	}
}

// CartItem is a single line in the shopper's cart.
type CartItem struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Unit      string          `json:"unit"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// LineTotal returns unit price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
