// Package domain defines the core types and interfaces for Sofre.
// All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// Recipe is a complete dish recipe, either generated by the AI gateway or
// taken from the bundled cookbook. Immutable once produced: a new dish
// selection replaces it wholesale. Recipes are never persisted — they live
// only as long as the user is looking at them.
//
// The JSON tags match the schema the generation backend is asked to fill.
type Recipe struct {
	Name         string   `json:"recipeName"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cookingTime"`
	Servings     string   `json:"servings"`
}

// BaseServings extracts the leading integer from the free-form servings
// string ("۴ نفر", "4 people", "2-4"). Defaults to 4 when no digit is found.
// Persian (Extended Arabic-Indic) digits are folded to ASCII first.
func (r *Recipe) BaseServings() int {
	n := 0
	seen := false
	for _, c := range foldDigits(r.Servings) {
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
			seen = true
			continue
		}
		if seen {
			break
		}
	}
	if !seen {
		return 4
	}
	return n
}

// foldDigits maps Persian and Arabic-Indic digits to their ASCII forms.
func foldDigits(s string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= '۰' && c <= '۹': // U+06F0..U+06F9
			return '0' + (c - '۰')
		case c >= '٠' && c <= '٩': // U+0660..U+0669
			return '0' + (c - '٠')
		}
		return c
	}, s)
}

// ShoppingListItem is one line of the shopping list. The ingredient text is
// the identity key — exact, case-sensitive match, because entries are full
// phrases like "۲ پیمانه برنج" where folding would merge distinct lines.
type ShoppingListItem struct {
	Item      string `json:"item"`
	Purchased bool   `json:"purchased"`
}

// PantryItem is one ingredient the user has on hand. Name is the identity
// key, compared case-insensitively via NormalizeName. Quantity is free-form
// human text and may be empty.
type PantryItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	IsSpice  bool   `json:"isSpice"`
}

// HouseholdItem is a non-food item (cleaning supplies, kitchenware). Same
// identity rule as PantryItem, independent collection.
type HouseholdItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Background is a static catalog entry for the app backdrop. Only the
// chosen FullURL is persisted.
type Background struct {
	ID           string
	Name         string
	ThumbnailURL string
	FullURL      string
}

// ItemContext tells the recognition backend what kind of items to look for
// in a photo.
type ItemContext string

const (
	ContextFood      ItemContext = "food"
	ContextHousehold ItemContext = "household"
)
