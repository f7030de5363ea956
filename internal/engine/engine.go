// Package engine implements the app state controller: dish selection,
// the shopping list, the pantry, household items and the backdrop, with
// write-through persistence. It depends only on interfaces and is fully
// testable with fakes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hammamikhairi/sofre/internal/cookbook"
	"github.com/hammamikhairi/sofre/internal/domain"
	"github.com/hammamikhairi/sofre/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithDefaultBackground overrides the backdrop used when none is saved.
func WithDefaultBackground(url string) Option {
	return func(e *Engine) { e.defaultBackground = url }
}

// State is a point-in-time snapshot of everything the UI renders. Slices
// are copies; callers may keep them across further mutations.
type State struct {
	Loading      bool
	LoadingLabel string
	Dish         string
	Recipe       *domain.Recipe
	ImageURL     string
	Servings     int
	Rescaling    bool
	ErrorMsg     string
	ShoppingList []domain.ShoppingListItem
	Pantry       []domain.PantryItem
	Household    []domain.HouseholdItem
	Background   string
}

// Engine owns all mutable app state behind one mutex. Gateway calls run
// outside the lock; results are committed only if the selection that
// started them is still the latest one.
type Engine struct {
	gateway domain.Gateway
	store   domain.Store
	book    *cookbook.Book
	log     *logger.Logger

	defaultBackground string

	mu    sync.Mutex
	token uint64 // bumped on every selection start and on Back

	loading      bool
	loadingLabel string
	dish         string
	recipe       *domain.Recipe
	baseIngreds  []string // ingredients at the recipe's own serving count
	imageURL     string
	servings     int
	rescaling    bool
	errorMsg     string

	shopping   []domain.ShoppingListItem
	pantry     []domain.PantryItem
	household  []domain.HouseholdItem
	background string
}

// New creates the engine and hydrates all collections from the store.
func New(gateway domain.Gateway, store domain.Store, book *cookbook.Book, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		gateway:           gateway,
		store:             store,
		book:              book,
		log:               log,
		defaultBackground: cookbook.DefaultBackground(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.shopping = store.LoadShoppingList()
	e.pantry = store.LoadPantry()
	e.household = store.LoadHousehold()
	e.background = store.LoadBackground(e.defaultBackground)

	log.Info("loaded %d shopping, %d pantry, %d household items",
		len(e.shopping), len(e.pantry), len(e.household))
	return e
}

// State returns a snapshot of the current app state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := State{
		Loading:      e.loading,
		LoadingLabel: e.loadingLabel,
		Dish:         e.dish,
		ImageURL:     e.imageURL,
		Servings:     e.servings,
		Rescaling:    e.rescaling,
		ErrorMsg:     e.errorMsg,
		ShoppingList: append([]domain.ShoppingListItem(nil), e.shopping...),
		Pantry:       append([]domain.PantryItem(nil), e.pantry...),
		Household:    append([]domain.HouseholdItem(nil), e.household...),
		Background:   e.background,
	}
	if e.recipe != nil {
		r := *e.recipe
		r.Ingredients = append([]string(nil), e.recipe.Ingredients...)
		r.Instructions = append([]string(nil), e.recipe.Instructions...)
		s.Recipe = &r
	}
	return s
}

// ── Dish selection ───────────────────────────────────────────────

// SelectDish resolves a dish name to a recipe and an image. Cookbook
// dishes skip recipe generation; everything else is authored by the
// backend, with the recipe and image fetched concurrently. The selection
// commits only when both the recipe and the image arrive; either failure
// ends it in the error state with both unset. A newer selection
// supersedes this one: its results are dropped on arrival.
func (e *Engine) SelectDish(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	tok := e.beginSelection(name, LabelGenerating)

	if r := e.book.Find(name); r != nil {
		e.log.Debug("cookbook hit for %q", name)
		img, err := e.gateway.GenerateImage(ctx, name)
		if err != nil {
			e.log.Warn("image for %q unavailable: %v", name, err)
			e.failSelection(tok, MsgSelectFailed)
			return err
		}
		e.commitSelection(tok, r, img)
		return nil
	}

	var (
		wg        sync.WaitGroup
		recipe    *domain.Recipe
		img       string
		recipeErr error
		imageErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		recipe, recipeErr = e.gateway.GenerateRecipe(ctx, name)
	}()
	go func() {
		defer wg.Done()
		img, imageErr = e.gateway.GenerateImage(ctx, name)
	}()
	wg.Wait()

	if e.superseded(tok) {
		e.log.Debug("selection for %q superseded, dropping result", name)
		return nil
	}
	if recipeErr != nil || imageErr != nil {
		e.failSelection(tok, MsgSelectFailed)
		if recipeErr != nil {
			return recipeErr
		}
		e.log.Warn("image for %q unavailable: %v", name, imageErr)
		return imageErr
	}
	e.commitSelection(tok, recipe, img)
	return nil
}

// SelectFromPhoto suggests a dish from an ingredient photo, then selects it.
func (e *Engine) SelectFromPhoto(ctx context.Context, image []byte, mimeType string) error {
	tok := e.beginSelection("", LabelAnalyzingPhoto)

	dish, err := e.gateway.SuggestFromImage(ctx, image, mimeType)
	if err != nil {
		msg := MsgSuggestFailed
		if errors.Is(err, domain.ErrNoIngredients) {
			msg = MsgPhotoNoIngredients
		}
		e.failSelection(tok, msg)
		return err
	}

	if e.superseded(tok) {
		return nil
	}
	e.log.Info("photo suggests %q", dish)
	return e.SelectDish(ctx, dish)
}

// SelectFromPantry suggests a dish from the pantry contents, then selects
// it. Never reaches the backend when the pantry is empty.
func (e *Engine) SelectFromPantry(ctx context.Context) error {
	e.mu.Lock()
	items := append([]domain.PantryItem(nil), e.pantry...)
	e.mu.Unlock()

	if len(items) == 0 {
		e.mu.Lock()
		e.errorMsg = MsgPantryEmpty
		e.mu.Unlock()
		return domain.ErrEmptyPantry
	}

	tok := e.beginSelection("", LabelSearchingPantry)

	dish, err := e.gateway.SuggestFromPantry(ctx, items)
	if err != nil {
		e.failSelection(tok, MsgPantryNoDish)
		return err
	}

	if e.superseded(tok) {
		return nil
	}
	e.log.Info("pantry suggests %q", dish)
	return e.SelectDish(ctx, dish)
}

// SelectRandom picks a cookbook dish at random and selects it. No backend
// call is involved in the pick itself.
func (e *Engine) SelectRandom(ctx context.Context) error {
	name := e.book.Random()
	if name == "" {
		return fmt.Errorf("cookbook is empty")
	}
	return e.SelectDish(ctx, name)
}

// Back returns to the home state. Any in-flight selection result is
// dropped when it arrives.
func (e *Engine) Back() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.token++
	e.loading = false
	e.loadingLabel = ""
	e.dish = ""
	e.recipe = nil
	e.baseIngreds = nil
	e.imageURL = ""
	e.servings = 0
	e.rescaling = false
	e.errorMsg = ""
}

// beginSelection bumps the token and enters the loading state.
func (e *Engine) beginSelection(dish, label string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.token++
	e.loading = true
	e.loadingLabel = label
	e.dish = dish
	e.recipe = nil
	e.baseIngreds = nil
	e.imageURL = ""
	e.servings = 0
	e.rescaling = false
	e.errorMsg = ""
	return e.token
}

// superseded reports whether a newer selection has started since tok.
func (e *Engine) superseded(tok uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return tok != e.token
}

// failSelection leaves the loading state with a message, unless superseded.
func (e *Engine) failSelection(tok uint64, msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tok != e.token {
		return
	}
	e.loading = false
	e.loadingLabel = ""
	e.dish = ""
	e.errorMsg = msg
}

// commitSelection installs the recipe and its image together, unless a
// newer selection has started since tok.
func (e *Engine) commitSelection(tok uint64, r *domain.Recipe, img string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tok != e.token {
		return
	}
	e.loading = false
	e.loadingLabel = ""
	e.dish = r.Name
	e.recipe = r
	e.baseIngreds = append([]string(nil), r.Ingredients...)
	e.servings = r.BaseServings()
	e.imageURL = img
}

// ── Serving rescale ──────────────────────────────────────────────

// RescaleServings adjusts the displayed ingredients to a new serving
// count. The count updates optimistically and reverts on failure. A
// request arriving while one is in flight is ignored, not queued.
func (e *Engine) RescaleServings(ctx context.Context, to int) error {
	e.mu.Lock()
	if e.recipe == nil || to < 1 || to == e.servings {
		e.mu.Unlock()
		return nil
	}
	if e.rescaling {
		e.log.Debug("rescale to %d ignored, one already in flight", to)
		e.mu.Unlock()
		return nil
	}

	prev := e.servings
	base := e.recipe.BaseServings()
	e.servings = to
	e.errorMsg = ""

	// Back at the recipe's own count, the original lines are authoritative.
	if to == base {
		e.recipe.Ingredients = append([]string(nil), e.baseIngreds...)
		e.mu.Unlock()
		return nil
	}

	e.rescaling = true
	tok := e.token
	ingredients := append([]string(nil), e.baseIngreds...)
	from := e.recipe.Servings
	e.mu.Unlock()

	rescaled, err := e.gateway.RescaleIngredients(ctx, ingredients, from, to)

	e.mu.Lock()
	defer e.mu.Unlock()
	if tok != e.token {
		return nil
	}
	e.rescaling = false
	if err != nil {
		e.servings = prev
		e.errorMsg = MsgRescaleFailed
		return err
	}
	e.recipe.Ingredients = rescaled
	return nil
}

// ── Cooking ──────────────────────────────────────────────────────

// RecordCooked deducts the current recipe's ingredients from the pantry.
// The pantry is only replaced when the backend succeeds.
func (e *Engine) RecordCooked(ctx context.Context) error {
	e.mu.Lock()
	if e.recipe == nil {
		e.mu.Unlock()
		return fmt.Errorf("no dish selected")
	}
	if len(e.pantry) == 0 {
		e.mu.Unlock()
		return nil
	}
	pantry := append([]domain.PantryItem(nil), e.pantry...)
	used := append([]string(nil), e.recipe.Ingredients...)
	e.mu.Unlock()

	updated, err := e.gateway.DeductCooked(ctx, pantry, used)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.pantry = updated
	e.store.SavePantry(e.pantry)
	e.log.Info("pantry updated after cooking, %d items remain", len(e.pantry))
	return nil
}

// ── Shopping list ────────────────────────────────────────────────

// AddShoppingItem appends an item. Exact duplicates are ignored; two
// entries are the same only when their text matches exactly.
func (e *Engine) AddShoppingItem(item string) {
	item = strings.TrimSpace(item)
	if item == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, it := range e.shopping {
		if it.Item == item {
			return
		}
	}
	e.shopping = append(e.shopping, domain.ShoppingListItem{Item: item})
	e.store.SaveShoppingList(e.shopping)
}

// AddShoppingItems appends every missing item, preserving order.
func (e *Engine) AddShoppingItems(items []string) {
	for _, it := range items {
		e.AddShoppingItem(it)
	}
}

// ToggleShoppingItem flips the purchased mark of the matching entry.
func (e *Engine) ToggleShoppingItem(item string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.shopping {
		if e.shopping[i].Item == item {
			e.shopping[i].Purchased = !e.shopping[i].Purchased
			e.store.SaveShoppingList(e.shopping)
			return
		}
	}
}

// RemoveShoppingItem deletes the matching entry.
func (e *Engine) RemoveShoppingItem(item string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.shopping {
		if e.shopping[i].Item == item {
			e.shopping = append(e.shopping[:i], e.shopping[i+1:]...)
			e.store.SaveShoppingList(e.shopping)
			return
		}
	}
}

// ClearPurchased drops every entry marked as purchased.
func (e *Engine) ClearPurchased() {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.shopping[:0]
	for _, it := range e.shopping {
		if !it.Purchased {
			kept = append(kept, it)
		}
	}
	e.shopping = kept
	e.store.SaveShoppingList(e.shopping)
}

// ClearShoppingList empties the whole list.
func (e *Engine) ClearShoppingList() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shopping = nil
	e.store.SaveShoppingList(e.shopping)
}

// InShoppingList reports whether the exact item text is already listed.
func (e *Engine) InShoppingList(item string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, it := range e.shopping {
		if it.Item == item {
			return true
		}
	}
	return false
}

// ── Pantry ───────────────────────────────────────────────────────

// AddPantryItem adds an ingredient. When a same-named item already exists
// the call is a no-op: the first write wins, quantities never merge.
// Names match after normalization.
func (e *Engine) AddPantryItem(name, quantity string, isSpice bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	key := domain.NormalizeName(name)
	for i := range e.pantry {
		if domain.NormalizeName(e.pantry[i].Name) == key {
			return
		}
	}
	e.pantry = append(e.pantry, domain.PantryItem{
		Name:     name,
		Quantity: strings.TrimSpace(quantity),
		IsSpice:  isSpice,
	})
	e.store.SavePantry(e.pantry)
}

// AddPantryItems adds every name not already present, without quantities.
// Used for photo-recognized items.
func (e *Engine) AddPantryItems(names []string) {
	for _, n := range names {
		if !e.InPantry(n) {
			e.AddPantryItem(n, "", false)
		}
	}
}

// RemovePantryItem deletes the normalized-name match.
func (e *Engine) RemovePantryItem(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := domain.NormalizeName(name)
	for i := range e.pantry {
		if domain.NormalizeName(e.pantry[i].Name) == key {
			e.pantry = append(e.pantry[:i], e.pantry[i+1:]...)
			e.store.SavePantry(e.pantry)
			return
		}
	}
}

// ClearPantry empties the pantry.
func (e *Engine) ClearPantry() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pantry = nil
	e.store.SavePantry(e.pantry)
}

// InPantry reports whether any pantry item is mentioned by the given
// text, which may be a bare name or a full ingredient line.
func (e *Engine) InPantry(text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, it := range e.pantry {
		if domain.MentionsName(text, it.Name) {
			return true
		}
	}
	return false
}

// ── Household items ──────────────────────────────────────────────

// AddHouseholdItem adds a non-food item. A normalized-name duplicate is
// a no-op, same rule as the pantry.
func (e *Engine) AddHouseholdItem(name, quantity string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	key := domain.NormalizeName(name)
	for i := range e.household {
		if domain.NormalizeName(e.household[i].Name) == key {
			return
		}
	}
	e.household = append(e.household, domain.HouseholdItem{
		Name:     name,
		Quantity: strings.TrimSpace(quantity),
	})
	e.store.SaveHousehold(e.household)
}

// AddHouseholdItems adds every name not already present.
func (e *Engine) AddHouseholdItems(names []string) {
	for _, n := range names {
		e.mu.Lock()
		key := domain.NormalizeName(n)
		exists := false
		for _, it := range e.household {
			if domain.NormalizeName(it.Name) == key {
				exists = true
				break
			}
		}
		e.mu.Unlock()
		if !exists {
			e.AddHouseholdItem(n, "")
		}
	}
}

// RemoveHouseholdItem deletes the normalized-name match.
func (e *Engine) RemoveHouseholdItem(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := domain.NormalizeName(name)
	for i := range e.household {
		if domain.NormalizeName(e.household[i].Name) == key {
			e.household = append(e.household[:i], e.household[i+1:]...)
			e.store.SaveHousehold(e.household)
			return
		}
	}
}

// ClearHousehold empties the household list.
func (e *Engine) ClearHousehold() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.household = nil
	e.store.SaveHousehold(e.household)
}

// ── Photo item recognition ───────────────────────────────────────

// IdentifyPhotoItems recognizes item names in a photo for pantry or
// household intake. An empty result is success, not an error.
func (e *Engine) IdentifyPhotoItems(ctx context.Context, image []byte, mimeType string, itemCtx domain.ItemContext) ([]string, error) {
	return e.gateway.IdentifyItems(ctx, image, mimeType, itemCtx)
}

// ── Backdrop ─────────────────────────────────────────────────────

// SetBackground saves the backdrop URL. An empty URL means the plain
// default look.
func (e *Engine) SetBackground(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.background = url
	e.store.SaveBackground(url)
}

// ClearError dismisses the current user-facing message.
func (e *Engine) ClearError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errorMsg = ""
}
