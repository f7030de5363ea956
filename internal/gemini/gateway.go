package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hammamikhairi/sofre/internal/domain"
	"github.com/hammamikhairi/sofre/internal/logger"
)

// Compile-time interface check.
var _ domain.Gateway = (*Gateway)(nil)

// Gateway maps the app's backend operations onto the Gemini client and
// translates failures into the domain error taxonomy.
type Gateway struct {
	client *Client
	log    *logger.Logger
}

// NewGateway wraps a client.
func NewGateway(client *Client, log *logger.Logger) *Gateway {
	return &Gateway{client: client, log: log}
}

// GenerateRecipe authors a full Persian recipe for the named dish.
func (g *Gateway) GenerateRecipe(ctx context.Context, dishName string) (*domain.Recipe, error) {
	reply, err := g.client.Generate(ctx, []Part{TextPart(recipePrompt(dishName))}, recipeSchema())
	if err != nil {
		g.log.Error("recipe generation for %q: %v", dishName, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	var recipe domain.Recipe
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &recipe); err != nil {
		g.log.Error("recipe generation for %q: bad JSON: %v", dishName, err)
		return nil, fmt.Errorf("%w: decode recipe: %v", domain.ErrGeneration, err)
	}
	if recipe.Name == "" || len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		return nil, fmt.Errorf("%w: incomplete recipe", domain.ErrGeneration)
	}
	return &recipe, nil
}

// GenerateImage synthesizes a dish photo and returns it as a data URL.
func (g *Gateway) GenerateImage(ctx context.Context, dishName string) (string, error) {
	b64, mime, err := g.client.Predict(ctx, imagePrompt(dishName))
	if err != nil {
		g.log.Error("image generation for %q: %v", dishName, err)
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, b64), nil
}

// SuggestFromImage extracts ingredients from the photo and asks for a dish
// that uses them. Returns ErrNoIngredients when nothing edible is visible.
func (g *Gateway) SuggestFromImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	parts := []Part{TextPart(extractIngredientsPrompt), ImagePart(image, mimeType)}
	reply, err := g.client.Generate(ctx, parts, nil)
	if err != nil {
		g.log.Error("ingredient extraction: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	ingredients := strings.TrimSpace(reply)
	if ingredients == "" || strings.EqualFold(ingredients, "NONE") {
		return "", domain.ErrNoIngredients
	}
	g.log.Debug("extracted ingredients: %s", ingredients)

	dish, err := g.client.Generate(ctx, []Part{TextPart(suggestFromIngredientsPrompt(ingredients))}, nil)
	if err != nil {
		g.log.Error("dish suggestion from photo: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return strings.TrimSpace(dish), nil
}

// SuggestFromPantry asks for a dish the pantry contents can cook.
func (g *Gateway) SuggestFromPantry(ctx context.Context, items []domain.PantryItem) (string, error) {
	if len(items) == 0 {
		return "", domain.ErrEmptyPantry
	}

	reply, err := g.client.Generate(ctx, []Part{TextPart(suggestFromPantryPrompt(items))}, nil)
	if err != nil {
		g.log.Error("dish suggestion from pantry: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	dish := strings.TrimSpace(reply)
	if dish == "" || strings.EqualFold(dish, "NONE") {
		return "", fmt.Errorf("%w: no dish fits the pantry", domain.ErrGeneration)
	}
	return dish, nil
}

// IdentifyItems recognizes item names in a photo. An empty slice means
// nothing was recognized; that is a valid result.
func (g *Gateway) IdentifyItems(ctx context.Context, image []byte, mimeType string, itemCtx domain.ItemContext) ([]string, error) {
	parts := []Part{TextPart(identifyItemsPrompt(itemCtx)), ImagePart(image, mimeType)}
	reply, err := g.client.Generate(ctx, parts, itemListSchema())
	if err != nil {
		g.log.Error("item recognition (%s): %v", itemCtx, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognition, err)
	}

	var result struct {
		Items []string `json:"items"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &result); err != nil {
		g.log.Error("item recognition (%s): bad JSON: %v", itemCtx, err)
		return nil, fmt.Errorf("%w: decode items: %v", domain.ErrRecognition, err)
	}

	var items []string
	for _, it := range result.Items {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	return items, nil
}

// RescaleIngredients adjusts ingredient quantities for a new serving count.
func (g *Gateway) RescaleIngredients(ctx context.Context, ingredients []string, fromServings string, toServings int) ([]string, error) {
	prompt := rescalePrompt(ingredients, fromServings, toServings)
	reply, err := g.client.Generate(ctx, []Part{TextPart(prompt)}, stringArraySchema())
	if err != nil {
		g.log.Error("ingredient rescale to %d: %v", toServings, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrAdjustment, err)
	}

	var rescaled []string
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &rescaled); err != nil {
		g.log.Error("ingredient rescale to %d: bad JSON: %v", toServings, err)
		return nil, fmt.Errorf("%w: decode ingredients: %v", domain.ErrAdjustment, err)
	}
	if len(rescaled) != len(ingredients) {
		return nil, fmt.Errorf("%w: got %d lines for %d ingredients", domain.ErrAdjustment, len(rescaled), len(ingredients))
	}
	return rescaled, nil
}

// DeductCooked subtracts the used ingredients from the pantry and returns
// the full replacement list.
func (g *Gateway) DeductCooked(ctx context.Context, pantry []domain.PantryItem, used []string) ([]domain.PantryItem, error) {
	if len(pantry) == 0 {
		return nil, nil
	}
	reply, err := g.client.Generate(ctx, []Part{TextPart(deductPrompt(pantry, used))}, pantrySchema())
	if err != nil {
		g.log.Error("pantry deduction: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrDeduction, err)
	}

	var updated []domain.PantryItem
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &updated); err != nil {
		g.log.Error("pantry deduction: bad JSON: %v", err)
		return nil, fmt.Errorf("%w: decode pantry: %v", domain.ErrDeduction, err)
	}
	return updated, nil
}

// jsonCompact marshals v on one line for prompt embedding.
func jsonCompact(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
