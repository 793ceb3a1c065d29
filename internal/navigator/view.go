// Package navigator decides which widget panel is presented and how user
// intents move between panels.
package navigator

import "github.com/WIIN2602/Farm2Hand/internal/models"

// Kind enumerates the mutually exclusive panels.
type Kind int

const (
	KindMenu Kind = iota
	KindProductGrid
	KindCategoryGrid
	KindCategoryProductGrid
	KindOrderSummary
	KindOrderTracking
)

var kindNames = map[Kind]string{
	KindMenu:                "menu",
	KindProductGrid:         "product_grid",
	KindCategoryGrid:        "category_grid",
	KindCategoryProductGrid: "category_product_grid",
	KindOrderSummary:        "order_summary",
	KindOrderTracking:       "order_tracking",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// View is the active panel. The zero value is the menu. Only the category
// product grid carries a category, which the constructors guarantee.
type View struct {
	kind     Kind
	category models.CategoryName
}

// Menu is the question menu shown when the widget opens.
func Menu() View { return View{kind: KindMenu} }

// ProductGrid lists the featured products.
func ProductGrid() View { return View{kind: KindProductGrid} }

// CategoryGrid lists the product categories.
func CategoryGrid() View { return View{kind: KindCategoryGrid} }

// OrderSummary shows the cart, payment methods and the confirm button.
func OrderSummary() View { return View{kind: KindOrderSummary} }

// OrderTracking lists recent orders.
func OrderTracking() View { return View{kind: KindOrderTracking} }

// CategoryProducts returns the grid for one category. An invalid category
// yields the category grid instead so the payload is never dangling.
func CategoryProducts(name models.CategoryName) View {
	if !name.Valid() {
		return CategoryGrid()
	}
	return View{kind: KindCategoryProductGrid, category: name}
}

// Kind returns the panel kind.
func (v View) Kind() Kind { return v.kind }

// Category returns the selected category while the category product grid is active.
func (v View) Category() (models.CategoryName, bool) {
	if v.kind != KindCategoryProductGrid {
		return "", false
	}
	return v.category, true
}

// Is reports whether the view is of kind k.
func (v View) Is(k Kind) bool { return v.kind == k }

func (v View) String() string {
	if v.kind == KindCategoryProductGrid {
		return v.kind.String() + "(" + string(v.category) + ")"
	}
	return v.kind.String()
}
