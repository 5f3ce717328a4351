package entity

import "time"

// DefaultCategoryIcon icono cuando no se indica uno.
const DefaultCategoryIcon = "📦"

// Category agrupa ítems de inventario. Name es único.
type Category struct {
	ID        string
	Name      string
	Icon      string
	CreatedAt time.Time
}

// DefaultCategories categorías sembradas al inicializar el almacén.
var DefaultCategories = []Category{
	{Name: "Beverages", Icon: "🥤"},
	{Name: "Bread", Icon: "🍞"},
	{Name: "Dairy", Icon: "🥛"},
	{Name: "Desserts", Icon: "🍰"},
	{Name: "Frozen Foods", Icon: "❄️"},
	{Name: "Fruits", Icon: "🍎"},
	{Name: "Grocery", Icon: "🛒"},
	{Name: "Sauce", Icon: "🫙"},
	{Name: "Vegetable", Icon: "🥬"},
}
