package grocery

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"milk", "Dairy"},
		{"Milk", "Dairy"},
		{"  bananas  ", "Produce"},
		{"chicken", "Meat"},
		{"chicken breast", "Meat"},
		{"salmon fillet", "Seafood"},
		{"sourdough bread", "Bakery"},
		{"olive oil", "Pantry"},
		{"frozen peas", "Frozen"},
		{"sparkling water", "Beverages"},
		{"tortilla chips", "Bakery"}, // substring "tortilla" wins before "chip"
		{"paper towels", "Household"},
		{"toothpaste", "Personal Care"},
		{"mystery item", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		if got := Categorize(tt.name); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCategorizeExactBeatsSubstring(t *testing.T) {
	// "ice cream" must hit the Frozen exact entry, not the Dairy "cream"
	// substring.
	if got := Categorize("ice cream"); got != "Frozen" {
		t.Errorf("Categorize(ice cream) = %q, want Frozen", got)
	}
}
