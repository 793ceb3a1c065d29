package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

const (
	imgMango  = "https://images.pexels.com/photos/2294471/pexels-photo-2294471.jpeg?auto=compress&cs=tinysrgb&w=300"
	imgGreens = "https://images.pexels.com/photos/1656663/pexels-photo-1656663.jpeg?auto=compress&cs=tinysrgb&w=300"
	imgTomato = "https://images.pexels.com/photos/533280/pexels-photo-533280.jpeg?auto=compress&cs=tinysrgb&w=300"
	imgBanana = "https://images.pexels.com/photos/2872755/pexels-photo-2872755.jpeg?auto=compress&cs=tinysrgb&w=300"
	imgCarrot = "https://images.pexels.com/photos/143133/pexels-photo-143133.jpeg?auto=compress&cs=tinysrgb&w=300"
	imgFruit  = "https://images.pexels.com/photos/1414130/pexels-photo-1414130.jpeg?auto=compress&cs=tinysrgb&w=300"
	imgKale   = "https://images.pexels.com/photos/2255935/pexels-photo-2255935.jpeg?auto=compress&cs=tinysrgb&w=300"
	unitKilo  = "กก."
	unitBag   = "ถุง"
	unitBunch = "หวี"
	unitPiece = "ลูก"
	unitTray  = "แผง"
	unitBox   = "กล่อง"
)

// Static serves a fixed in-memory catalog.
type Static struct {
	featured   []models.Product
	addable    []models.Product
	categories []models.Category
	curated    map[models.CategoryName][]models.CategoryProduct
}

// NewStatic creates a static catalog. Every category must have a curated list.
func NewStatic(featured, addable []models.Product, categories []models.Category, curated map[models.CategoryName][]models.CategoryProduct) (*Static, error) {
	for _, c := range categories {
		if !c.Name.Valid() {
			return nil, fmt.Errorf("category %q: %w", c.Name, models.ErrUnknownCategory)
		}
		if _, ok := curated[c.Name]; !ok {
			return nil, fmt.Errorf("category %q has no curated products", c.Name)
		}
	}
	for _, list := range [][]models.Product{featured, addable} {
		for i := range list {
			if err := models.ValidateProduct(&list[i]); err != nil {
				return nil, fmt.Errorf("product %d: %w", list[i].ID, err)
			}
		}
	}
	return &Static{featured: featured, addable: addable, categories: categories, curated: curated}, nil
}

// NewSeedCatalog returns the storefront's built-in catalog.
func NewSeedCatalog() *Static {
	s, err := NewStatic(SeedFeaturedProducts(), SeedAddableProducts(), SeedCategories(), SeedCategoryProducts())
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Static) ListFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return cloneProducts(s.featured), nil
}

func (s *Static) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *Static) ListCategoryProducts(ctx context.Context, name models.CategoryName) ([]models.CategoryProduct, error) {
	list, ok := s.curated[name]
	if !ok {
		return nil, fmt.Errorf("list category products %q: %w", name, models.ErrUnknownCategory)
	}
	out := make([]models.CategoryProduct, len(list))
	copy(out, list)
	return out, nil
}

func (s *Static) ListAddableProducts(ctx context.Context) ([]models.Product, error) {
	return cloneProducts(s.addable), nil
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	copy(out, in)
	return out
}

func baht(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// SeedFeaturedProducts is the recommended-products list. Two entries are out of stock.
func SeedFeaturedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "มะม่วงน้ำดอกไม้", Price: baht(120), Unit: unitKilo, Image: imgMango, InStock: true,
			Farmer: "สวนป้าสมใจ", Location: "จ.เชียงใหม่", Rating: 4.8, Category: string(models.Fruits)},
		{ID: 2, Name: "ผักกาดหอมออร์แกนิค", Price: baht(45), Unit: unitBag, Image: imgGreens, InStock: true,
			Farmer: "ฟาร์มสีเขียว", Location: "จ.นครปฐม", Rating: 4.9, Category: string(models.FreshVegetables), Organic: true},
		{ID: 3, Name: "มะเขือเทศราชินี", Price: baht(80), Unit: unitKilo, Image: imgTomato, InStock: false,
			Farmer: "เกษตรกรรุ่นใหม่", Location: "จ.เพชรบุรี", Rating: 4.7, Category: string(models.FreshVegetables)},
		{ID: 4, Name: "กล้วยหอมทอง", Price: baht(60), Unit: unitBunch, Image: imgBanana, InStock: true,
			Farmer: "สวนลุงประสิทธิ์", Location: "จ.ระยอง", Rating: 4.6, Category: string(models.Fruits)},
		{ID: 5, Name: "แครอทเบบี้", Price: baht(95), Unit: unitKilo, Image: imgCarrot, InStock: true,
			Farmer: "ฟาร์มคุณแม่", Location: "จ.เลย", Rating: 4.8, Category: string(models.FreshVegetables)},
		{ID: 6, Name: "ส้มโอขาวน้ำหวาน", Price: baht(150), Unit: unitPiece, Image: imgFruit, InStock: false,
			Farmer: "สวนส้มโอนครปฐม", Location: "จ.นครปฐม", Rating: 4.9, Category: string(models.Fruits)},
	}
}

// SeedAddableProducts is the add-to-cart list shown on the order summary.
func SeedAddableProducts() []models.Product {
	return []models.Product{
		{ID: 7, Name: "ข้าวหอมมะลิ", Price: baht(45), Unit: unitKilo, Image: imgGreens, InStock: true},
		{ID: 8, Name: "ไข่ไก่สด", Price: baht(120), Unit: unitTray, Image: imgGreens, InStock: true},
		{ID: 9, Name: "มะเขือเทศ", Price: baht(80), Unit: unitKilo, Image: imgTomato, InStock: true},
		{ID: 10, Name: "แครอท", Price: baht(95), Unit: unitKilo, Image: imgCarrot, InStock: true},
	}
}

// SeedCategories is the fixed browse taxonomy.
func SeedCategories() []models.Category {
	return []models.Category{
		{Name: models.FreshVegetables, Emoji: "🥬", Description: "ผักสดใหม่จากเกษตรกร"},
		{Name: models.Fruits, Emoji: "🍌", Description: "ผลไม้หวานฉ่ำ"},
		{Name: models.Rice, Emoji: "🌾", Description: "ข้าวคุณภาพดี"},
		{Name: models.ChickenEggs, Emoji: "🥚", Description: "ไข่ไก่สดใหม่"},
		{Name: models.OutOfSeason, Emoji: "❄️", Description: "สินค้านอกฤดูกาล"},
	}
}

func entry(name, localized string, price int64, unit, image string) models.CategoryProduct {
	return models.CategoryProduct{Name: name, LocalizedName: localized, Price: baht(price), Unit: unit, Image: image}
}

// SeedCategoryProducts is the curated list for every category.
func SeedCategoryProducts() map[models.CategoryName][]models.CategoryProduct {
	return map[models.CategoryName][]models.CategoryProduct{
		models.FreshVegetables: {
			entry("Kale", "คะน้า", 35, unitBag, imgKale),
			entry("Morning glory", "ผักบุ้ง", 25, unitBag, imgGreens),
			entry("Chinese water spinach", "ผักกาดขาว", 30, unitBag, imgGreens),
			entry("Coriander", "ผักชี", 20, unitBag, imgGreens),
			entry("Spring Onion", "ต้นหอม", 15, unitBag, imgGreens),
			entry("Sweet basil", "โหระพา", 18, unitBag, imgGreens),
		},
		models.Fruits: {
			entry("Mango", "มะม่วง", 120, unitKilo, imgMango),
			entry("Banana", "กล้วย", 60, unitBunch, imgBanana),
			entry("Papaya", "มะละกอ", 40, unitPiece, imgFruit),
			entry("Dragon fruit", "แก้วมังกร", 80, unitKilo, imgFruit),
			entry("Pineapple", "สับปะรด", 50, unitPiece, imgFruit),
			entry("Coconut", "มะพร้าว", 25, unitPiece, imgFruit),
		},
		models.Rice: {
			entry("Jasmine rice", "ข้าวหอมมะลิ", 45, unitKilo, imgGreens),
			entry("Brown rice", "ข้าวกล้อง", 55, unitKilo, imgGreens),
			entry("Sticky rice", "ข้าวเหนียว", 50, unitKilo, imgGreens),
			entry("Red rice", "ข้าวแดง", 65, unitKilo, imgGreens),
			entry("Black rice", "ข้าวดำ", 75, unitKilo, imgGreens),
			entry("Organic rice", "ข้าวออร์แกนิค", 85, unitKilo, imgGreens),
		},
		models.ChickenEggs: {
			entry("Free-range eggs", "ไข่ไก่เลี้ยงแบบปล่อย", 120, unitTray, imgGreens),
			entry("Organic eggs", "ไข่ไก่ออร์แกนิค", 150, unitTray, imgGreens),
			entry("Farm fresh eggs", "ไข่ไก่สดจากฟาร์ม", 100, unitTray, imgGreens),
			entry("Brown eggs", "ไข่ไก่สีน้ำตาล", 110, unitTray, imgGreens),
			entry("Duck eggs", "ไข่เป็ด", 80, unitTray, imgGreens),
			entry("Quail eggs", "ไข่นกกระทา", 60, unitTray, imgGreens),
		},
		models.OutOfSeason: {
			entry("Winter strawberries", "สตรอเบอร์รี่นอกฤดู", 200, unitBox, imgFruit),
			entry("Summer durian", "ทุเรียนนอกฤดู", 300, unitKilo, imgFruit),
			entry("Winter longan", "ลำไยนอกฤดู", 180, unitKilo, imgFruit),
			entry("Summer lychee", "ลิ้นจี่นอกฤดู", 220, unitKilo, imgFruit),
			entry("Winter rambutan", "เงาะนอกฤดู", 160, unitKilo, imgFruit),
			entry("Summer mangosteen", "มังคุดนอกฤดู", 250, unitKilo, imgFruit),
		},
	}
}

// SeedCart is the cart a fresh demo session starts with.
func SeedCart() []models.CartItem {
	featured := SeedFeaturedProducts()
	return []models.CartItem{
		featured[0].ToCartItem(2),
		featured[1].ToCartItem(3),
		featured[3].ToCartItem(1),
	}
}
