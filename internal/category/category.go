// Package category holds the fixed, closed set of expense categories.
package category

const (
	Food           = "Food"
	Transportation = "Transportation"
	Entertainment  = "Entertainment"
	Utilities      = "Utilities"
	Rent           = "Rent"
	Others         = "Others"
)

type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Order matters: the first entry is the form default and the order drives listings.
var categories = []Category{
	{Name: Food, Description: "groceries, meals and dining out"},
	{Name: Transportation, Description: "fuel, fares and vehicle costs"},
	{Name: Entertainment, Description: "leisure, events and subscriptions"},
	{Name: Utilities, Description: "power, water, internet and phone"},
	{Name: Rent, Description: "housing rent"},
	{Name: Others, Description: "anything else"},
}

func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func Names() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// IsValid reports whether name is one of the fixed categories. Matching is exact.
func IsValid(name string) bool {
	return Index(name) >= 0
}

// Index returns the position of name in the fixed order, or -1.
func Index(name string) int {
	for i, c := range categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func Default() string {
	return categories[0].Name
}
