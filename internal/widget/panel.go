package widget

import (
	"context"
	"fmt"

	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/navigator"
)

// Limits caps how many entries each panel shows. Zero means no cap.
type Limits struct {
	FeaturedProducts int `yaml:"featured_products" json:"featuredProducts"`
	CategoryProducts int `yaml:"category_products" json:"categoryProducts"`
	Orders           int `yaml:"orders" json:"orders"`
}

// DefaultLimits matches the compact popup layout.
func DefaultLimits() Limits {
	return Limits{FeaturedProducts: 4, CategoryProducts: 4, Orders: 2}
}

// Question is a question-menu entry. Trigger is empty for questions that are
// forwarded to the assistant as text.
type Question struct {
	Label   string `json:"label"`
	Trigger string `json:"trigger,omitempty"`
}

// MenuQuestions lists the question menu in display order.
func MenuQuestions() []Question {
	labels := []string{
		navigator.QuestionBrowseProducts,
		navigator.QuestionBrowseCategories,
		navigator.QuestionStartOrder,
		navigator.QuestionHowToBuy,
		navigator.QuestionTrackOrders,
	}
	out := make([]Question, 0, len(labels))
	for _, label := range labels {
		q := Question{Label: label}
		if t := navigator.ParseQuestion(label); t.Kind != navigator.FreeText {
			q.Trigger = t.Kind.String()
		}
		out = append(out, q)
	}
	return out
}

// ProductCard is a featured product with its clickability.
type ProductCard struct {
	models.Product
	Selectable bool `json:"selectable"`
}

// OrderCard is an order with its localized badge and button.
type OrderCard struct {
	models.Order
	ShortID     string `json:"shortId"`
	StatusLabel string `json:"statusLabel"`
	ActionLabel string `json:"actionLabel"`
}

// Panel is the render model of the active view. Only the fields of the
// active view are populated.
type Panel struct {
	View             string                   `json:"view"`
	Category         *models.Category         `json:"category,omitempty"`
	Questions        []Question               `json:"questions,omitempty"`
	ShowMoreLabel    string                   `json:"showMoreLabel,omitempty"`
	Products         []ProductCard            `json:"products,omitempty"`
	Categories       []models.Category        `json:"categories,omitempty"`
	CategoryProducts []models.CategoryProduct `json:"categoryProducts,omitempty"`
	Summary          *checkout.Summary        `json:"summary,omitempty"`
	AddableProducts  []models.Product         `json:"addableProducts,omitempty"`
	Orders           []OrderCard              `json:"orders,omitempty"`
	CartCount        int                      `json:"cartCount"`
}

// Panel renders the active view using the session's catalog and order registry.
func (s *Session) Panel(ctx context.Context) (Panel, error) {
	p := Panel{View: s.view.Kind().String(), CartCount: s.ledger.Snapshot().ItemCount()}

	switch s.view.Kind() {
	case navigator.KindMenu:
		p.Questions = MenuQuestions()
		p.ShowMoreLabel = ShowMoreLabel

	case navigator.KindProductGrid:
		products, err := s.catalog.ListFeaturedProducts(ctx)
		if err != nil {
			return Panel{}, fmt.Errorf("list featured products: %w", err)
		}
		products = capped(products, s.limits.FeaturedProducts)
		p.Products = make([]ProductCard, 0, len(products))
		for _, product := range products {
			p.Products = append(p.Products, ProductCard{Product: product, Selectable: product.InStock})
		}

	case navigator.KindCategoryGrid:
		categories, err := s.catalog.ListCategories(ctx)
		if err != nil {
			return Panel{}, fmt.Errorf("list categories: %w", err)
		}
		p.Categories = categories

	case navigator.KindCategoryProductGrid:
		name, _ := s.view.Category()
		entries, err := s.catalog.ListCategoryProducts(ctx, name)
		if err != nil {
			return Panel{}, fmt.Errorf("list category products: %w", err)
		}
		p.CategoryProducts = capped(entries, s.limits.CategoryProducts)
		categories, err := s.catalog.ListCategories(ctx)
		if err != nil {
			return Panel{}, fmt.Errorf("list categories: %w", err)
		}
		for i := range categories {
			if categories[i].Name == name {
				p.Category = &categories[i]
				break
			}
		}

	case navigator.KindOrderSummary:
		summary := s.coordinator.Summarize(s.ledger, s.payment)
		p.Summary = &summary
		if !summary.Empty {
			addable, err := s.catalog.ListAddableProducts(ctx)
			if err != nil {
				return Panel{}, fmt.Errorf("list addable products: %w", err)
			}
			p.AddableProducts = addable
		}

	case navigator.KindOrderTracking:
		recent, err := s.orders.ListRecentOrders(ctx, s.limits.Orders)
		if err != nil {
			return Panel{}, fmt.Errorf("list recent orders: %w", err)
		}
		p.Orders = make([]OrderCard, 0, len(recent))
		for _, o := range recent {
			p.Orders = append(p.Orders, OrderCard{
				Order:       o,
				ShortID:     o.ShortID(),
				StatusLabel: StatusLabel(o.Status),
				ActionLabel: TrackingActionLabel(o),
			})
		}
	}
	return p, nil
}

func capped[T any](in []T, limit int) []T {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
