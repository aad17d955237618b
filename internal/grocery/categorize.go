package grocery

import "strings"

// Categorize returns the grocery category for the given item name.
// It performs case-insensitive matching: exact match first, then substring
// match. Falls back to "Other" if no match is found. Used as the instant
// categorizer for manual adds; bulk categorization goes through the model.
func Categorize(itemName string) string {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return "Other"
	}

	// Phase 1: exact match
	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	// Phase 2: substring match (ordered longer/more-specific first)
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return "Other"
}

var exactMatch = map[string]string{
	// Produce
	"apple":        "Produce",
	"apples":       "Produce",
	"banana":       "Produce",
	"bananas":      "Produce",
	"orange":       "Produce",
	"oranges":      "Produce",
	"lemon":        "Produce",
	"lemons":       "Produce",
	"avocado":      "Produce",
	"avocados":     "Produce",
	"tomato":       "Produce",
	"tomatoes":     "Produce",
	"potato":       "Produce",
	"potatoes":     "Produce",
	"onion":        "Produce",
	"onions":       "Produce",
	"garlic":       "Produce",
	"lettuce":      "Produce",
	"spinach":      "Produce",
	"kale":         "Produce",
	"broccoli":     "Produce",
	"carrots":      "Produce",
	"celery":       "Produce",
	"cucumber":     "Produce",
	"mushrooms":    "Produce",
	"grapes":       "Produce",
	"strawberries": "Produce",
	"blueberries":  "Produce",
	"cilantro":     "Produce",
	"ginger":       "Produce",
	"zucchini":     "Produce",

	// Dairy
	"milk":           "Dairy",
	"eggs":           "Dairy",
	"butter":         "Dairy",
	"cheese":         "Dairy",
	"yogurt":         "Dairy",
	"cream cheese":   "Dairy",
	"sour cream":     "Dairy",
	"heavy cream":    "Dairy",
	"half and half":  "Dairy",
	"cottage cheese": "Dairy",

	// Meat
	"chicken":       "Meat",
	"beef":          "Meat",
	"pork":          "Meat",
	"turkey":        "Meat",
	"bacon":         "Meat",
	"sausage":       "Meat",
	"ham":           "Meat",
	"steak":         "Meat",
	"ground beef":   "Meat",
	"ground turkey": "Meat",
	"hot dogs":      "Meat",
	"deli meat":     "Meat",
	"lamb":          "Meat",

	// Seafood
	"salmon":  "Seafood",
	"shrimp":  "Seafood",
	"tuna":    "Seafood",
	"fish":    "Seafood",
	"crab":    "Seafood",
	"lobster": "Seafood",
	"tilapia": "Seafood",
	"cod":     "Seafood",

	// Bakery
	"bread":     "Bakery",
	"bagels":    "Bakery",
	"tortillas": "Bakery",
	"rolls":     "Bakery",
	"buns":      "Bakery",
	"muffins":   "Bakery",
	"pita":      "Bakery",

	// Pantry
	"rice":          "Pantry",
	"pasta":         "Pantry",
	"flour":         "Pantry",
	"sugar":         "Pantry",
	"salt":          "Pantry",
	"pepper":        "Pantry",
	"olive oil":     "Pantry",
	"vinegar":       "Pantry",
	"soy sauce":     "Pantry",
	"ketchup":       "Pantry",
	"mustard":       "Pantry",
	"mayonnaise":    "Pantry",
	"honey":         "Pantry",
	"peanut butter": "Pantry",
	"cereal":        "Pantry",
	"oatmeal":       "Pantry",
	"soup":          "Pantry",
	"broth":         "Pantry",
	"beans":         "Pantry",
	"lentils":       "Pantry",
	"spaghetti":     "Pantry",
	"salsa":         "Pantry",

	// Frozen
	"ice cream":      "Frozen",
	"frozen pizza":   "Frozen",
	"frozen veggies": "Frozen",
	"popsicles":      "Frozen",

	// Beverages
	"water":           "Beverages",
	"juice":           "Beverages",
	"coffee":          "Beverages",
	"tea":             "Beverages",
	"soda":            "Beverages",
	"beer":            "Beverages",
	"wine":            "Beverages",
	"sparkling water": "Beverages",

	// Snacks
	"chips":        "Snacks",
	"crackers":     "Snacks",
	"cookies":      "Snacks",
	"popcorn":      "Snacks",
	"pretzels":     "Snacks",
	"granola bars": "Snacks",
	"trail mix":    "Snacks",
	"candy":        "Snacks",
	"chocolate":    "Snacks",

	// Household
	"paper towels":      "Household",
	"toilet paper":      "Household",
	"trash bags":        "Household",
	"dish soap":         "Household",
	"laundry detergent": "Household",
	"sponges":           "Household",
	"aluminum foil":     "Household",
	"batteries":         "Household",
	"napkins":           "Household",
	"bleach":            "Household",

	// Personal Care
	"shampoo":     "Personal Care",
	"conditioner": "Personal Care",
	"soap":        "Personal Care",
	"body wash":   "Personal Care",
	"toothpaste":  "Personal Care",
	"deodorant":   "Personal Care",
	"lotion":      "Personal Care",
	"sunscreen":   "Personal Care",
	"floss":       "Personal Care",
	"razors":      "Personal Care",
	"tissues":     "Personal Care",
}

type substringEntry struct {
	keyword  string
	category string
}

// Ordered with longer/more-specific keywords first for deterministic priority.
var substringMatches = []substringEntry{
	// Meat, longer phrases first
	{"chicken breast", "Meat"},
	{"chicken thigh", "Meat"},
	{"ground beef", "Meat"},
	{"ground turkey", "Meat"},
	{"deli meat", "Meat"},
	{"pork chop", "Meat"},
	{"hot dog", "Meat"},
	{"chicken", "Meat"},
	{"turkey", "Meat"},
	{"bacon", "Meat"},
	{"sausage", "Meat"},
	{"steak", "Meat"},

	// Seafood
	{"salmon", "Seafood"},
	{"shrimp", "Seafood"},
	{"tuna", "Seafood"},
	{"fish", "Seafood"},
	{"crab", "Seafood"},
	{"scallop", "Seafood"},

	// Dairy
	{"cream cheese", "Dairy"},
	{"sour cream", "Dairy"},
	{"heavy cream", "Dairy"},
	{"cottage cheese", "Dairy"},
	{"greek yogurt", "Dairy"},
	{"almond milk", "Dairy"},
	{"oat milk", "Dairy"},
	{"yogurt", "Dairy"},
	{"cheese", "Dairy"},
	{"milk", "Dairy"},
	{"butter", "Dairy"},
	{"cream", "Dairy"},
	{"egg", "Dairy"},

	// Produce
	{"salad mix", "Produce"},
	{"baby spinach", "Produce"},
	{"green onion", "Produce"},
	{"sweet potato", "Produce"},
	{"bell pepper", "Produce"},
	{"cherry tomato", "Produce"},
	{"romaine", "Produce"},
	{"cabbage", "Produce"},
	{"cauliflower", "Produce"},
	{"squash", "Produce"},
	{"melon", "Produce"},
	{"berries", "Produce"},
	{"berry", "Produce"},
	{"fruit", "Produce"},
	{"lettuce", "Produce"},
	{"spinach", "Produce"},
	{"apple", "Produce"},
	{"banana", "Produce"},
	{"tomato", "Produce"},
	{"potato", "Produce"},
	{"onion", "Produce"},
	{"pepper", "Produce"},
	{"carrot", "Produce"},
	{"celery", "Produce"},

	// Bakery
	{"sourdough", "Bakery"},
	{"whole wheat", "Bakery"},
	{"bread", "Bakery"},
	{"bagel", "Bakery"},
	{"tortilla", "Bakery"},
	{"bun", "Bakery"},
	{"roll", "Bakery"},
	{"muffin", "Bakery"},
	{"croissant", "Bakery"},

	// Pantry
	{"peanut butter", "Pantry"},
	{"olive oil", "Pantry"},
	{"maple syrup", "Pantry"},
	{"hot sauce", "Pantry"},
	{"soy sauce", "Pantry"},
	{"pasta sauce", "Pantry"},
	{"tomato sauce", "Pantry"},
	{"canned", "Pantry"},
	{"cereal", "Pantry"},
	{"oatmeal", "Pantry"},
	{"granola", "Pantry"},
	{"rice", "Pantry"},
	{"pasta", "Pantry"},
	{"noodle", "Pantry"},
	{"flour", "Pantry"},
	{"sugar", "Pantry"},
	{"spice", "Pantry"},
	{"seasoning", "Pantry"},
	{"sauce", "Pantry"},
	{"broth", "Pantry"},
	{"stock", "Pantry"},
	{"soup", "Pantry"},
	{"bean", "Pantry"},
	{"lentil", "Pantry"},

	// Frozen
	{"frozen", "Frozen"},
	{"ice cream", "Frozen"},
	{"popsicle", "Frozen"},

	// Beverages
	{"sparkling water", "Beverages"},
	{"orange juice", "Beverages"},
	{"coffee", "Beverages"},
	{"tea", "Beverages"},
	{"juice", "Beverages"},
	{"soda", "Beverages"},
	{"water", "Beverages"},
	{"beer", "Beverages"},
	{"wine", "Beverages"},
	{"drink", "Beverages"},

	// Snacks
	{"granola bar", "Snacks"},
	{"trail mix", "Snacks"},
	{"chip", "Snacks"},
	{"cracker", "Snacks"},
	{"cookie", "Snacks"},
	{"popcorn", "Snacks"},
	{"pretzel", "Snacks"},
	{"candy", "Snacks"},
	{"chocolate", "Snacks"},
	{"snack", "Snacks"},

	// Household
	{"paper towel", "Household"},
	{"toilet paper", "Household"},
	{"trash bag", "Household"},
	{"garbage bag", "Household"},
	{"dish soap", "Household"},
	{"laundry", "Household"},
	{"detergent", "Household"},
	{"cleaner", "Household"},
	{"cleaning", "Household"},
	{"sponge", "Household"},
	{"foil", "Household"},
	{"battery", "Household"},

	// Personal Care
	{"body wash", "Personal Care"},
	{"shampoo", "Personal Care"},
	{"conditioner", "Personal Care"},
	{"toothpaste", "Personal Care"},
	{"toothbrush", "Personal Care"},
	{"deodorant", "Personal Care"},
	{"lotion", "Personal Care"},
	{"sunscreen", "Personal Care"},
	{"razor", "Personal Care"},
	{"tissue", "Personal Care"},
}
