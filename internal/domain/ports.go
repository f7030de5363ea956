package domain

import "context"

// Gateway is the set of request/response operations against the generative
// backend. Each operation maps one structured input to one structured
// output, or fails — no partial results, no streaming, no retries.
type Gateway interface {
	// GenerateRecipe authors a full recipe for the named dish.
	GenerateRecipe(ctx context.Context, dishName string) (*Recipe, error)
	// GenerateImage synthesizes an illustrative photo and returns an image
	// reference (a data URL).
	GenerateImage(ctx context.Context, dishName string) (string, error)
	// SuggestFromImage infers a dish name from an ingredient photo.
	// Returns ErrNoIngredients when nothing edible is visible.
	SuggestFromImage(ctx context.Context, image []byte, mimeType string) (string, error)
	// SuggestFromPantry infers a dish name from the pantry contents.
	// Returns ErrEmptyPantry when items is empty.
	SuggestFromPantry(ctx context.Context, items []PantryItem) (string, error)
	// IdentifyItems recognizes item names in a photo. An empty slice is a
	// valid result (nothing recognized), not an error.
	IdentifyItems(ctx context.Context, image []byte, mimeType string, itemCtx ItemContext) ([]string, error)
	// RescaleIngredients adjusts ingredient quantities from the original
	// serving count to a new one.
	RescaleIngredients(ctx context.Context, ingredients []string, fromServings string, toServings int) ([]string, error)
	// DeductCooked subtracts the used ingredients from the pantry and
	// returns the full replacement list. Lenient name matching and quantity
	// arithmetic are the backend's policy, not ours.
	DeductCooked(ctx context.Context, pantry []PantryItem, used []string) ([]PantryItem, error)
}

// Store persists the user's collections between sessions. Loads fall back
// to a sane default on missing or corrupt data and saves swallow failures —
// persistence problems degrade to "nothing was saved this time", they never
// reach the user.
type Store interface {
	LoadShoppingList() []ShoppingListItem
	SaveShoppingList(items []ShoppingListItem)
	LoadPantry() []PantryItem
	SavePantry(items []PantryItem)
	LoadHousehold() []HouseholdItem
	SaveHousehold(items []HouseholdItem)
	LoadBackground(fallback string) string
	SaveBackground(url string)
}

// Recognizer is the dictation capability: one bounded listen at a time,
// exposing the last finalized transcript. Components hide voice affordances
// when Supported reports false.
type Recognizer interface {
	Supported() bool
	Start(ctx context.Context) bool
	Stop()
	Listening() bool
	Transcript() string
}

// Speaker is the read-aloud capability. At most one utterance is active;
// starting a new one cancels any in-flight speech.
type Speaker interface {
	Speak(ctx context.Context, text string)
	Stop()
}
