package navigator

// Transition returns the view that follows current when t fires. It is a pure
// function: the browse intents select their panel from anywhere, category
// selection only applies on the category grid, back returns to the menu,
// back-to-categories only applies on a category product grid, and free text
// never moves.
func Transition(current View, t Trigger) View {
	switch t.Kind {
	case BrowseProducts:
		return ProductGrid()
	case BrowseCategories:
		return CategoryGrid()
	case StartOrder:
		return OrderSummary()
	case TrackOrders:
		return OrderTracking()
	case SelectCategory:
		if current.Is(KindCategoryGrid) && t.Category.Valid() {
			return CategoryProducts(t.Category)
		}
	case Back:
		return Menu()
	case BackToCategories:
		if current.Is(KindCategoryProductGrid) {
			return CategoryGrid()
		}
	}
	return current
}

// ResetsSession reports whether the trigger clears all transient session
// state in addition to moving the view.
func ResetsSession(t Trigger) bool {
	return t.Kind == Back
}
