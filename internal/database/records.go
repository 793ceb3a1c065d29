package database

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

// ProductRecord is a catalog product row. Optional columns are nullable and
// ratings are stored as integers scaled by ten.
type ProductRecord struct {
	ID          int             `gorm:"primary_key;auto_increment:false"`
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unit        string
	Image       string
	InStock     bool
	Farmer      *string
	Location    *string
	Rating      *int
	Reviews     *int
	Discount    *int
	Category    *string
	Description *string
	Organic     bool
	Tags        *string
	Stock       *int
	Featured    bool `gorm:"index"`
	Addable     bool `gorm:"index"`
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductRecord) TableName() string { return "products" }

// CategoryRecord is a browse category row.
type CategoryRecord struct {
	Name        string `gorm:"primary_key"`
	Emoji       string
	Description string
	Position    int
}

func (CategoryRecord) TableName() string { return "categories" }

// CategoryProductRecord is a curated entry of one category.
type CategoryProductRecord struct {
	ID            uint   `gorm:"primary_key"`
	Category      string `gorm:"index;not null"`
	Name          string `gorm:"not null"`
	LocalizedName string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unit          string
	Image         string
	Position      int
}

func (CategoryProductRecord) TableName() string { return "category_products" }

// OrderRecord is a placed order row.
type OrderRecord struct {
	ID                string          `gorm:"primary_key"`
	Status            string          `gorm:"not null"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OrderDate         time.Time       `gorm:"index"`
	DeliveryDate      *time.Time
	EstimatedDelivery *time.Time
	PaymentStatus     string
	Lines             []OrderLineRecord `gorm:"foreignkey:OrderID"`
}

func (OrderRecord) TableName() string { return "orders" }

// OrderLineRecord is an item of a placed order.
type OrderLineRecord struct {
	ID        uint   `gorm:"primary_key"`
	OrderID   string `gorm:"index;not null"`
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)"`
	Position  int
}

func (OrderLineRecord) TableName() string { return "order_lines" }

// ToProduct converts the row, applying the documented defaults for empty
// optional columns.
func (r ProductRecord) ToProduct() models.Product {
	p := models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Unit:        r.Unit,
		Image:       r.Image,
		InStock:     r.InStock,
		Farmer:      models.UnknownFarmer,
		Location:    models.UnknownLocation,
		Category:    deref(r.Category),
		Description: deref(r.Description),
		Organic:     r.Organic,
		Tags:        splitTags(deref(r.Tags)),
	}
	if v := deref(r.Farmer); v != "" {
		p.Farmer = v
	}
	if v := deref(r.Location); v != "" {
		p.Location = v
	}
	if r.Rating != nil {
		p.Rating = float64(*r.Rating) / 10
	}
	if r.Reviews != nil {
		p.Reviews = *r.Reviews
	}
	if r.Discount != nil && *r.Discount != 0 {
		d := *r.Discount
		p.Discount = &d
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	return p
}

// NewProductRecord converts a product for storage.
func NewProductRecord(p models.Product, position int, featured, addable bool) ProductRecord {
	rating := int(math.Round(p.Rating * 10))
	r := ProductRecord{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Unit:     p.Unit,
		Image:    p.Image,
		InStock:  p.InStock,
		Rating:   &rating,
		Reviews:  intPtr(p.Reviews),
		Discount: p.Discount,
		Organic:  p.Organic,
		Stock:    intPtr(p.Stock),
		Featured: featured,
		Addable:  addable,
		Position: position,
	}
	r.Farmer = strPtr(p.Farmer)
	r.Location = strPtr(p.Location)
	r.Category = strPtr(p.Category)
	r.Description = strPtr(p.Description)
	if len(p.Tags) > 0 {
		r.Tags = strPtr(strings.Join(p.Tags, ","))
	}
	return r
}

func (r CategoryRecord) ToCategory() models.Category {
	return models.Category{Name: models.CategoryName(r.Name), Emoji: r.Emoji, Description: r.Description}
}

func (r CategoryProductRecord) ToCategoryProduct() models.CategoryProduct {
	return models.CategoryProduct{
		Name:          r.Name,
		LocalizedName: r.LocalizedName,
		Price:         r.Price,
		Unit:          r.Unit,
		Image:         r.Image,
	}
}

func (r OrderRecord) ToOrder() models.Order {
	o := models.Order{
		ID:                r.ID,
		Status:            models.OrderStatus(r.Status),
		Total:             r.Total,
		OrderDate:         r.OrderDate,
		DeliveryDate:      r.DeliveryDate,
		EstimatedDelivery: r.EstimatedDelivery,
		PaymentStatus:     models.PaymentStatus(r.PaymentStatus),
		Items:             make([]models.OrderLine, 0, len(r.Lines)),
	}
	for _, l := range r.Lines {
		o.Items = append(o.Items, models.OrderLine{Name: l.Name, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return o
}

// NewOrderRecord converts an order and its lines for storage.
func NewOrderRecord(o models.Order) OrderRecord {
	r := OrderRecord{
		ID:                o.ID,
		Status:            string(o.Status),
		Total:             o.Total,
		OrderDate:         o.OrderDate,
		DeliveryDate:      o.DeliveryDate,
		EstimatedDelivery: o.EstimatedDelivery,
		PaymentStatus:     string(o.PaymentStatus),
	}
	for i, item := range o.Items {
		r.Lines = append(r.Lines, OrderLineRecord{
			OrderID:   o.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Position:  i,
		})
	}
	return r
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
