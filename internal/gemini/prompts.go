package gemini

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/sofre/internal/domain"
)

// Prompt builders for each backend operation. All user-facing text the
// model produces must be Persian; the instructions themselves are English
// because the models follow them more reliably that way.

func recipePrompt(dishName string) string {
	return fmt.Sprintf(`Generate a complete recipe for the Iranian dish "%s", suitable for 2 to 4 people.
The entire response must be in Persian (Farsi).
Ingredients must include exact quantities. Instructions must be clear, numbered steps.
cookingTime is the total time as a short Persian phrase. servings states how many people the recipe serves.`, dishName)
}

func imagePrompt(dishName string) string {
	return fmt.Sprintf(`A highly realistic, appetizing, professionally photographed image of the Persian dish "%s", served in traditional Iranian tableware, warm natural lighting, top-down view, square 1:1 composition.`, dishName)
}

const extractIngredientsPrompt = `Look at this photo and list the food ingredients you can identify in it, as a single comma-separated line in Persian (Farsi). If there are no identifiable food ingredients in the photo, respond with exactly "NONE".`

func suggestFromIngredientsPrompt(ingredients string) string {
	return fmt.Sprintf(`Given these available ingredients: %s
Suggest one Iranian dish that can be cooked with them. Respond with only the Persian name of the dish, nothing else.`, ingredients)
}

func suggestFromPantryPrompt(items []domain.PantryItem) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("، ")
		}
		b.WriteString(it.Name)
		if it.Quantity != "" {
			b.WriteString(" (")
			b.WriteString(it.Quantity)
			b.WriteString(")")
		}
	}
	return fmt.Sprintf(`Given these ingredients available at home: %s
Suggest one Iranian dish that can realistically be cooked with them. Respond with only the Persian name of the dish, nothing else. If no dish can be made, respond with exactly "NONE".`, b.String())
}

func identifyItemsPrompt(itemCtx domain.ItemContext) string {
	switch itemCtx {
	case domain.ContextHousehold:
		return `Look at this photo and identify the household products in it (cleaning supplies, toiletries, paper goods and similar). Return their names in Persian (Farsi). If nothing is identifiable, return an empty list.`
	default:
		return `Look at this photo and identify the food items in it (ingredients, groceries, produce and similar). Return their names in Persian (Farsi). If nothing is identifiable, return an empty list.`
	}
}

func rescalePrompt(ingredients []string, fromServings string, toServings int) string {
	return fmt.Sprintf(`The following recipe ingredient list is for %s servings:
%s
Rescale every quantity for exactly %d servings. Keep the wording and order of each line, only adjust the numbers and amounts. All text stays in Persian (Farsi). Return the adjusted lines as a JSON array of strings, one element per original line, same length and order.`,
		fromServings, strings.Join(ingredients, "\n"), toServings)
}

func deductPrompt(pantry []domain.PantryItem, used []string) string {
	pantryJSON, _ := jsonCompact(pantry)
	return fmt.Sprintf(`A user just cooked a meal. Their pantry before cooking, as JSON: %s
The recipe used these ingredients:
%s
Subtract the used amounts from the pantry. Match ingredient names leniently (an ingredient line may mention a pantry item with extra words around it). Remove items that are fully used up; reduce quantities that are partially used; leave untouched items as they are. Spices keep their isSpice flag. Return the complete updated pantry as a JSON array in the same shape, all names and quantities in Persian (Farsi).`,
		pantryJSON, strings.Join(used, "\n"))
}

// ── Response schemas ─────────────────────────────────────────────

func recipeSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"recipeName":   {Type: "string"},
			"description":  {Type: "string"},
			"ingredients":  {Type: "array", Items: &Schema{Type: "string"}},
			"instructions": {Type: "array", Items: &Schema{Type: "string"}},
			"cookingTime":  {Type: "string"},
			"servings":     {Type: "string"},
		},
		Required: []string{"recipeName", "description", "ingredients", "instructions", "cookingTime", "servings"},
	}
}

func itemListSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"items": {Type: "array", Items: &Schema{Type: "string"}},
		},
		Required: []string{"items"},
	}
}

func stringArraySchema() *Schema {
	return &Schema{Type: "array", Items: &Schema{Type: "string"}}
}

func pantrySchema() *Schema {
	return &Schema{
		Type: "array",
		Items: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"name":     {Type: "string"},
				"quantity": {Type: "string"},
				"isSpice":  {Type: "boolean"},
			},
			Required: []string{"name"},
		},
	}
}
