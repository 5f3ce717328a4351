// Package classifier deduce categoría y unidad a partir del nombre libre de un ítem.
// Las tablas se recorren en orden y gana la primera coincidencia (subcadena, sin distinguir mayúsculas).
package classifier

import "strings"

// Valores por defecto cuando ninguna palabra clave coincide.
const (
	DefaultCategory = "Grocery"
	DefaultUnit     = "KG"
)

type rule struct {
	label    string
	keywords []string
}

var categoryRules = []rule{
	{"Beverages", []string{"juice", "water", "soda", "cola", "pepsi", "coke", "fanta", "sprite", "coffee", "tea", "drink", "energy drink", "lassi", "buttermilk", "milkshake", "smoothie", "beer", "wine", "alcohol"}},
	{"Bread", []string{"bread", "bun", "toast", "roti", "naan", "paratha", "chapati", "pita", "baguette", "croissant", "bagel", "muffin", "roll", "loaf", "pav"}},
	{"Dairy", []string{"milk", "curd", "paneer", "ghee", "butter", "cream", "cheese", "yogurt", "khoya", "mawa", "dahi", "whey", "cottage"}},
	{"Desserts", []string{"cake", "pastry", "sweet", "candy", "chocolate", "ice cream", "pudding", "halwa", "gulab jamun", "rasgulla", "ladoo", "barfi", "jalebi", "kheer", "custard", "cookie", "biscuit", "mithai"}},
	{"Frozen Foods", []string{"frozen", "ice", "fries", "nuggets", "patty", "samosa", "paratha frozen", "peas frozen", "corn frozen", "mixed veg frozen"}},
	{"Fruits", []string{"apple", "banana", "orange", "mango", "grape", "papaya", "watermelon", "lemon", "lime", "pomegranate", "guava", "pineapple", "strawberry", "kiwi", "chikoo", "sapota", "custard apple", "mosambi", "sweet lime", "coconut", "cherry", "peach", "plum"}},
	{"Grocery", []string{"rice", "wheat", "flour", "atta", "maida", "rava", "semolina", "sooji", "besan", "gram", "dal", "lentil", "chana", "moong", "toor", "urad", "rajma", "chickpea", "poha", "oats", "corn", "millet", "ragi", "jowar", "bajra", "basmati", "salt", "sugar", "jaggery", "honey", "oil", "spice", "masala", "powder", "pickle", "papad", "chips", "vinegar", "soya", "tamarind", "noodles", "pasta", "vermicelli"}},
	{"Sauce", []string{"sauce", "ketchup", "mayonnaise", "mustard", "chutney", "dip", "dressing", "soy sauce", "hot sauce", "bbq", "sriracha", "salsa", "pesto", "gravy"}},
	{"Vegetable", []string{"onion", "tomato", "potato", "carrot", "capsicum", "cabbage", "cauliflower", "beans", "peas", "brinjal", "ladies finger", "okra", "spinach", "palak", "methi", "coriander", "curry leaves", "ginger", "garlic", "green chilli", "drumstick", "beetroot", "radish", "cucumber", "gourd", "pumpkin", "bhindi", "aloo", "pyaz", "tamatar", "shimla mirch", "gobhi", "gajar", "pudina", "mint", "dhaniya", "lettuce", "celery", "mushroom"}},
}

var unitRules = []rule{
	{"BTL", []string{"bottle", "btl", "drink", "soda", "cola", "beer", "wine", "juice bottle"}},
	{"KG", []string{"rice", "flour", "atta", "maida", "sugar", "salt", "dal", "vegetable", "fruit", "meat", "chicken", "fish", "potato", "onion", "tomato"}},
	{"LTR", []string{"milk", "oil", "ghee", "curd", "buttermilk", "juice", "water", "cream", "lassi", "sauce", "ketchup", "liter", "litre"}},
	{"NOS", []string{"coconut", "egg", "lemon", "lime", "papaya", "watermelon", "pumpkin", "cabbage", "cauliflower", "drumstick"}},
	{"PCS", []string{"bread", "bun", "roll", "samosa", "patty", "nugget", "cake", "pastry", "muffin", "cookie", "piece", "slice"}},
	{"PKT", []string{"chips", "biscuit", "noodles", "pasta", "packet", "pack", "frozen", "masala", "spice"}},
	{"TIN", []string{"tin", "can", "canned", "condensed"}},
}

// DetectCategory devuelve la primera categoría cuya palabra clave aparece en el nombre.
func DetectCategory(itemName string) string {
	return match(categoryRules, itemName, DefaultCategory)
}

// DetectUnit devuelve la primera unidad cuya palabra clave aparece en el nombre.
func DetectUnit(itemName string) string {
	return match(unitRules, itemName, DefaultUnit)
}

func match(rules []rule, itemName, def string) string {
	name := strings.ToLower(itemName)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.label
			}
		}
	}
	return def
}

// Categories categorías reconocidas, en orden de tabla.
func Categories() []string { return labels(categoryRules) }

// Units unidades reconocidas, en orden de tabla.
func Units() []string { return labels(unitRules) }

func labels(rules []rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.label
	}
	return out
}

// NormalizeCategory devuelve la categoría canónica si s coincide sin distinguir mayúsculas.
func NormalizeCategory(s string) (string, bool) { return normalize(categoryRules, s) }

// NormalizeUnit devuelve la unidad canónica si s coincide sin distinguir mayúsculas.
func NormalizeUnit(s string) (string, bool) { return normalize(unitRules, s) }

func normalize(rules []rule, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, r := range rules {
		if strings.EqualFold(r.label, s) {
			return r.label, true
		}
	}
	return "", false
}
