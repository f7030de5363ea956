package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/sofre/internal/cookbook"
	"github.com/hammamikhairi/sofre/internal/domain"
	"github.com/hammamikhairi/sofre/internal/logger"
)

// ── Fakes ────────────────────────────────────────────────────────

type fakeGateway struct {
	mu sync.Mutex

	recipeCalls  int
	imageCalls   int
	photoCalls   int
	pantryCalls  int
	rescaleCalls int
	deductCalls  int

	recipeFn  func(name string) (*domain.Recipe, error)
	imageFn   func(name string) (string, error)
	photoFn   func() (string, error)
	pantryFn  func(items []domain.PantryItem) (string, error)
	rescaleFn func(ingredients []string, to int) ([]string, error)
	deductFn  func(pantry []domain.PantryItem) ([]domain.PantryItem, error)
}

func (f *fakeGateway) GenerateRecipe(ctx context.Context, name string) (*domain.Recipe, error) {
	f.mu.Lock()
	f.recipeCalls++
	f.mu.Unlock()
	if f.recipeFn != nil {
		return f.recipeFn(name)
	}
	return &domain.Recipe{
		Name:         name,
		Description:  "desc",
		Ingredients:  []string{"۵۰۰ گرم گوشت", "۲ پیمانه برنج"},
		Instructions: []string{"بپزید"},
		CookingTime:  "۱ ساعت",
		Servings:     "۴ نفر",
	}, nil
}

func (f *fakeGateway) GenerateImage(ctx context.Context, name string) (string, error) {
	f.mu.Lock()
	f.imageCalls++
	f.mu.Unlock()
	if f.imageFn != nil {
		return f.imageFn(name)
	}
	return "data:image/png;base64,img", nil
}

func (f *fakeGateway) SuggestFromImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	f.mu.Lock()
	f.photoCalls++
	f.mu.Unlock()
	if f.photoFn != nil {
		return f.photoFn()
	}
	return "کشک بادمجان", nil
}

func (f *fakeGateway) SuggestFromPantry(ctx context.Context, items []domain.PantryItem) (string, error) {
	f.mu.Lock()
	f.pantryCalls++
	f.mu.Unlock()
	if f.pantryFn != nil {
		return f.pantryFn(items)
	}
	return "آش رشته", nil
}

func (f *fakeGateway) IdentifyItems(ctx context.Context, image []byte, mimeType string, itemCtx domain.ItemContext) ([]string, error) {
	return []string{"پیاز"}, nil
}

func (f *fakeGateway) RescaleIngredients(ctx context.Context, ingredients []string, from string, to int) ([]string, error) {
	f.mu.Lock()
	f.rescaleCalls++
	f.mu.Unlock()
	if f.rescaleFn != nil {
		return f.rescaleFn(ingredients, to)
	}
	out := make([]string, len(ingredients))
	for i, ing := range ingredients {
		out[i] = ing + " (تنظیم‌شده)"
	}
	return out, nil
}

func (f *fakeGateway) DeductCooked(ctx context.Context, pantry []domain.PantryItem, used []string) ([]domain.PantryItem, error) {
	f.mu.Lock()
	f.deductCalls++
	f.mu.Unlock()
	if f.deductFn != nil {
		return f.deductFn(pantry)
	}
	return nil, nil
}

type fakeStore struct {
	mu sync.Mutex

	shopping  []domain.ShoppingListItem
	pantry    []domain.PantryItem
	household []domain.HouseholdItem
	bg        string

	shoppingSaves  int
	pantrySaves    int
	householdSaves int
	bgSaves        int
}

func (s *fakeStore) LoadShoppingList() []domain.ShoppingListItem { return s.shopping }
func (s *fakeStore) SaveShoppingList(items []domain.ShoppingListItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shopping = items
	s.shoppingSaves++
}
func (s *fakeStore) LoadPantry() []domain.PantryItem { return s.pantry }
func (s *fakeStore) SavePantry(items []domain.PantryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pantry = items
	s.pantrySaves++
}
func (s *fakeStore) LoadHousehold() []domain.HouseholdItem { return s.household }
func (s *fakeStore) SaveHousehold(items []domain.HouseholdItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.household = items
	s.householdSaves++
}
func (s *fakeStore) LoadBackground(fallback string) string {
	if s.bg == "" {
		return fallback
	}
	return s.bg
}
func (s *fakeStore) SaveBackground(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bg = url
	s.bgSaves++
}

func newTestEngine(gw *fakeGateway, st *fakeStore) *Engine {
	log := logger.New(logger.LevelOff, nil)
	return New(gw, st, cookbook.New(log), log)
}

// ── Dish selection ───────────────────────────────────────────────

func TestSelectDishGenerated(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw, &fakeStore{})

	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); err != nil {
		t.Fatalf("select: %v", err)
	}

	s := e.State()
	if s.Loading {
		t.Fatal("loading must be cleared after selection")
	}
	if s.Recipe == nil || s.Recipe.Name != "غذای ناشناخته" {
		t.Fatalf("recipe mismatch: %+v", s.Recipe)
	}
	if s.ImageURL == "" {
		t.Fatal("expected image URL")
	}
	if s.Servings != 4 {
		t.Fatalf("expected 4 servings, got %d", s.Servings)
	}
	if gw.recipeCalls != 1 || gw.imageCalls != 1 {
		t.Fatalf("expected 1 recipe + 1 image call, got %d + %d", gw.recipeCalls, gw.imageCalls)
	}
}

func TestSelectDishCookbookShortCircuit(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw, &fakeStore{})

	if err := e.SelectDish(context.Background(), "قورمه سبزی"); err != nil {
		t.Fatalf("select: %v", err)
	}

	s := e.State()
	if s.Recipe == nil || s.Recipe.Name != "قورمه سبزی" {
		t.Fatalf("expected cookbook recipe, got %+v", s.Recipe)
	}
	if gw.recipeCalls != 0 {
		t.Fatalf("cookbook hit must skip recipe generation, got %d calls", gw.recipeCalls)
	}
	if gw.imageCalls != 1 {
		t.Fatalf("cookbook hit still fetches the image, got %d calls", gw.imageCalls)
	}
}

func TestSelectDishFailure(t *testing.T) {
	gw := &fakeGateway{
		recipeFn: func(string) (*domain.Recipe, error) { return nil, domain.ErrGeneration },
	}
	e := newTestEngine(gw, &fakeStore{})

	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}

	s := e.State()
	if s.Loading || s.Recipe != nil || s.Dish != "" {
		t.Fatalf("failed selection must return home: %+v", s)
	}
	if s.ErrorMsg != MsgSelectFailed {
		t.Fatalf("expected select failure message, got %q", s.ErrorMsg)
	}
}

func TestSelectDishImageFailureFailsSelection(t *testing.T) {
	gw := &fakeGateway{
		imageFn: func(string) (string, error) { return "", domain.ErrGeneration },
	}
	e := newTestEngine(gw, &fakeStore{})

	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}

	s := e.State()
	if s.Loading || s.Recipe != nil || s.ImageURL != "" || s.Dish != "" {
		t.Fatalf("recipe and image must both be unset on image failure: %+v", s)
	}
	if s.ErrorMsg != MsgSelectFailed {
		t.Fatalf("expected select failure message, got %q", s.ErrorMsg)
	}
}

func TestCookbookImageFailureFailsSelection(t *testing.T) {
	gw := &fakeGateway{
		imageFn: func(string) (string, error) { return "", domain.ErrGeneration },
	}
	e := newTestEngine(gw, &fakeStore{})

	if err := e.SelectDish(context.Background(), "قورمه سبزی"); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}

	s := e.State()
	if s.Loading || s.Recipe != nil || s.ImageURL != "" {
		t.Fatalf("a cookbook dish without its photo must not commit: %+v", s)
	}
	if s.ErrorMsg != MsgSelectFailed {
		t.Fatalf("expected select failure message, got %q", s.ErrorMsg)
	}
	if gw.recipeCalls != 0 {
		t.Fatalf("cookbook hit must still skip recipe generation, got %d calls", gw.recipeCalls)
	}
}

func TestSelectDishStaleResultDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{
		recipeFn: func(name string) (*domain.Recipe, error) {
			if name == "کند" {
				close(started)
				<-release
			}
			return &domain.Recipe{
				Name:         name,
				Description:  "x",
				Ingredients:  []string{"الف"},
				Instructions: []string{"ب"},
				Servings:     "۲ نفر",
			}, nil
		},
	}
	e := newTestEngine(gw, &fakeStore{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.SelectDish(context.Background(), "کند")
	}()
	<-started

	// The second selection supersedes the first while it is in flight.
	if err := e.SelectDish(context.Background(), "تند"); err != nil {
		t.Fatalf("select: %v", err)
	}
	close(release)
	wg.Wait()

	s := e.State()
	if s.Recipe == nil || s.Recipe.Name != "تند" {
		t.Fatalf("stale result must not overwrite the newer selection: %+v", s.Recipe)
	}
}

func TestSelectFromPantryEmptyNeverReachesBackend(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw, &fakeStore{})

	if err := e.SelectFromPantry(context.Background()); !errors.Is(err, domain.ErrEmptyPantry) {
		t.Fatalf("expected ErrEmptyPantry, got %v", err)
	}
	if gw.pantryCalls != 0 {
		t.Fatalf("empty pantry must not reach the backend, got %d calls", gw.pantryCalls)
	}
	if s := e.State(); s.ErrorMsg != MsgPantryEmpty {
		t.Fatalf("expected empty-pantry message, got %q", s.ErrorMsg)
	}
}

func TestSelectFromPantry(t *testing.T) {
	gw := &fakeGateway{}
	st := &fakeStore{pantry: []domain.PantryItem{{Name: "عدس"}, {Name: "رشته آش"}}}
	e := newTestEngine(gw, st)

	if err := e.SelectFromPantry(context.Background()); err != nil {
		t.Fatalf("select from pantry: %v", err)
	}

	s := e.State()
	if s.Recipe == nil || s.Recipe.Name != "آش رشته" {
		t.Fatalf("expected suggested dish selected, got %+v", s.Recipe)
	}
}

func TestSelectFromPhotoNoIngredients(t *testing.T) {
	gw := &fakeGateway{
		photoFn: func() (string, error) { return "", domain.ErrNoIngredients },
	}
	e := newTestEngine(gw, &fakeStore{})

	if err := e.SelectFromPhoto(context.Background(), []byte("img"), "image/jpeg"); !errors.Is(err, domain.ErrNoIngredients) {
		t.Fatalf("expected ErrNoIngredients, got %v", err)
	}
	if s := e.State(); s.ErrorMsg != MsgPhotoNoIngredients {
		t.Fatalf("expected photo message, got %q", s.ErrorMsg)
	}
}

func TestSelectRandomUsesCookbook(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw, &fakeStore{})

	if err := e.SelectRandom(context.Background()); err != nil {
		t.Fatalf("select random: %v", err)
	}
	if gw.recipeCalls != 0 {
		t.Fatalf("random pick comes from the cookbook, got %d generation calls", gw.recipeCalls)
	}
	if s := e.State(); s.Recipe == nil {
		t.Fatal("expected a recipe")
	}
}

func TestBackClearsSelection(t *testing.T) {
	e := newTestEngine(&fakeGateway{}, &fakeStore{})
	if err := e.SelectDish(context.Background(), "قورمه سبزی"); err != nil {
		t.Fatalf("select: %v", err)
	}

	e.Back()

	s := e.State()
	if s.Recipe != nil || s.Dish != "" || s.ImageURL != "" || s.Loading || s.ErrorMsg != "" {
		t.Fatalf("back must return to a clean home state: %+v", s)
	}
}

// ── Serving rescale ──────────────────────────────────────────────

func TestRescaleServings(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw, &fakeStore{})
	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := e.RescaleServings(context.Background(), 6); err != nil {
		t.Fatalf("rescale: %v", err)
	}

	s := e.State()
	if s.Servings != 6 {
		t.Fatalf("expected 6 servings, got %d", s.Servings)
	}
	if s.Recipe.Ingredients[0] != "۵۰۰ گرم گوشت (تنظیم‌شده)" {
		t.Fatalf("expected adjusted ingredients, got %+v", s.Recipe.Ingredients)
	}
}

func TestRescaleRejectsInvalidCounts(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw, &fakeStore{})
	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); err != nil {
		t.Fatalf("select: %v", err)
	}

	for _, to := range []int{0, -1, 4} { // 4 is the current count
		if err := e.RescaleServings(context.Background(), to); err != nil {
			t.Fatalf("rescale to %d must be a no-op, got %v", to, err)
		}
	}
	if gw.rescaleCalls != 0 {
		t.Fatalf("no-op rescales must not call the backend, got %d calls", gw.rescaleCalls)
	}
	if s := e.State(); s.Servings != 4 {
		t.Fatalf("servings must be unchanged, got %d", s.Servings)
	}
}

func TestRescaleServingsRevertsOnFailure(t *testing.T) {
	gw := &fakeGateway{
		rescaleFn: func([]string, int) ([]string, error) { return nil, domain.ErrAdjustment },
	}
	e := newTestEngine(gw, &fakeStore{})
	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := e.RescaleServings(context.Background(), 6); !errors.Is(err, domain.ErrAdjustment) {
		t.Fatalf("expected ErrAdjustment, got %v", err)
	}

	s := e.State()
	if s.Servings != 4 {
		t.Fatalf("failed rescale must revert the count, got %d", s.Servings)
	}
	if s.ErrorMsg != MsgRescaleFailed {
		t.Fatalf("expected rescale failure message, got %q", s.ErrorMsg)
	}
	if s.Recipe.Ingredients[0] != "۵۰۰ گرم گوشت" {
		t.Fatalf("ingredients must be untouched after failure: %+v", s.Recipe.Ingredients)
	}
}

func TestRescaleBackToBaseSkipsBackend(t *testing.T) {
	gw := &fakeGateway{}
	e := newTestEngine(gw, &fakeStore{})
	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := e.RescaleServings(context.Background(), 6); err != nil {
		t.Fatalf("rescale up: %v", err)
	}
	if err := e.RescaleServings(context.Background(), 4); err != nil {
		t.Fatalf("rescale back: %v", err)
	}

	s := e.State()
	if s.Recipe.Ingredients[0] != "۵۰۰ گرم گوشت" {
		t.Fatalf("base count must restore the original lines: %+v", s.Recipe.Ingredients)
	}
	if gw.rescaleCalls != 1 {
		t.Fatalf("returning to the base count must not call the backend, got %d calls", gw.rescaleCalls)
	}
}

func TestRescaleInFlightIgnoresSecondRequest(t *testing.T) {
	release := make(chan struct{})
	gw := &fakeGateway{
		rescaleFn: func(ingredients []string, to int) ([]string, error) {
			<-release
			return ingredients, nil
		},
	}
	e := newTestEngine(gw, &fakeStore{})
	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); err != nil {
		t.Fatalf("select: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.RescaleServings(context.Background(), 6)
	}()
	for !e.State().Rescaling {
		time.Sleep(time.Millisecond)
	}

	// Ignored outright, not queued behind the in-flight one.
	if err := e.RescaleServings(context.Background(), 8); err != nil {
		t.Fatalf("ignored rescale must not error: %v", err)
	}
	close(release)
	wg.Wait()

	if gw.rescaleCalls != 1 {
		t.Fatalf("expected 1 backend call, got %d", gw.rescaleCalls)
	}
	if s := e.State(); s.Servings != 6 {
		t.Fatalf("expected the in-flight rescale to win, got %d", s.Servings)
	}
}

// ── Cooking ──────────────────────────────────────────────────────

func TestRecordCooked(t *testing.T) {
	gw := &fakeGateway{
		deductFn: func(pantry []domain.PantryItem) ([]domain.PantryItem, error) {
			return []domain.PantryItem{{Name: "برنج", Quantity: "۱ کیلوگرم"}}, nil
		},
	}
	st := &fakeStore{pantry: []domain.PantryItem{
		{Name: "برنج", Quantity: "۲ کیلوگرم"},
		{Name: "گوشت", Quantity: "۵۰۰ گرم"},
	}}
	e := newTestEngine(gw, st)
	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := e.RecordCooked(context.Background()); err != nil {
		t.Fatalf("record cooked: %v", err)
	}

	s := e.State()
	if len(s.Pantry) != 1 || s.Pantry[0].Quantity != "۱ کیلوگرم" {
		t.Fatalf("pantry must be replaced with the deducted list: %+v", s.Pantry)
	}
	if st.pantrySaves != 1 {
		t.Fatalf("deducted pantry must be persisted, got %d saves", st.pantrySaves)
	}
}

func TestRecordCookedFailureLeavesPantry(t *testing.T) {
	gw := &fakeGateway{
		deductFn: func([]domain.PantryItem) ([]domain.PantryItem, error) {
			return nil, domain.ErrDeduction
		},
	}
	st := &fakeStore{pantry: []domain.PantryItem{{Name: "برنج", Quantity: "۲ کیلوگرم"}}}
	e := newTestEngine(gw, st)
	if err := e.SelectDish(context.Background(), "غذای ناشناخته"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := e.RecordCooked(context.Background()); !errors.Is(err, domain.ErrDeduction) {
		t.Fatalf("expected ErrDeduction, got %v", err)
	}
	if s := e.State(); len(s.Pantry) != 1 || s.Pantry[0].Quantity != "۲ کیلوگرم" {
		t.Fatalf("failed deduction must leave the pantry untouched: %+v", s.Pantry)
	}
}

// ── Collections ──────────────────────────────────────────────────

func TestShoppingListOperations(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(&fakeGateway{}, st)

	e.AddShoppingItem("۲ پیمانه برنج")
	e.AddShoppingItem("۲ پیمانه برنج") // exact duplicate, ignored
	e.AddShoppingItem("نان")

	s := e.State()
	if len(s.ShoppingList) != 2 {
		t.Fatalf("expected 2 items, got %+v", s.ShoppingList)
	}

	e.ToggleShoppingItem("نان")
	if s = e.State(); !s.ShoppingList[1].Purchased {
		t.Fatal("expected toggled item to be purchased")
	}

	e.RemoveShoppingItem("۲ پیمانه برنج")
	if s = e.State(); len(s.ShoppingList) != 1 || s.ShoppingList[0].Item != "نان" {
		t.Fatalf("remove mismatch: %+v", s.ShoppingList)
	}

	if st.shoppingSaves != 4 {
		t.Fatalf("every mutation writes through, got %d saves", st.shoppingSaves)
	}
}

func TestClearPurchasedKeepsUnbought(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(&fakeGateway{}, st)

	e.AddShoppingItem("نان")
	e.AddShoppingItem("شیر")
	e.ToggleShoppingItem("نان")
	e.ClearPurchased()

	if s := e.State(); len(s.ShoppingList) != 1 || s.ShoppingList[0].Item != "شیر" {
		t.Fatalf("only purchased entries are cleared: %+v", s.ShoppingList)
	}

	e.ClearShoppingList()
	if s := e.State(); len(s.ShoppingList) != 0 {
		t.Fatalf("expected empty list, got %+v", s.ShoppingList)
	}
}

func TestShoppingListIsCaseSensitive(t *testing.T) {
	e := newTestEngine(&fakeGateway{}, &fakeStore{})

	e.AddShoppingItem("Basmati Rice")
	e.AddShoppingItem("basmati rice")

	if s := e.State(); len(s.ShoppingList) != 2 {
		t.Fatalf("shopping entries match exactly, got %+v", s.ShoppingList)
	}
}

func TestPantryNormalizedDedup(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(&fakeGateway{}, st)

	// Arabic yeh variant of the same name is a duplicate.
	e.AddPantryItem("سبزي قورمه", "۵۰۰ گرم", false)
	e.AddPantryItem("سبزی قورمه", "۱ کیلوگرم", false)

	s := e.State()
	if len(s.Pantry) != 1 {
		t.Fatalf("variant spellings are one item, got %+v", s.Pantry)
	}
	if s.Pantry[0].Quantity != "۵۰۰ گرم" {
		t.Fatalf("first write wins, no quantity merge; got %q", s.Pantry[0].Quantity)
	}
	if st.pantrySaves != 1 {
		t.Fatalf("a duplicate add must not write through, got %d saves", st.pantrySaves)
	}
}

func TestPantryAddRemoveAndMention(t *testing.T) {
	e := newTestEngine(&fakeGateway{}, &fakeStore{})

	e.AddPantryItem("زعفران", "", true)
	e.AddPantryItem("برنج", "۲ کیلوگرم", false)

	if !e.InPantry("۲ پیمانه برنج ایرانی") {
		t.Fatal("ingredient line mentioning a pantry item must match")
	}
	if e.InPantry("گوشت گوسفندی") {
		t.Fatal("unrelated ingredient must not match")
	}

	e.RemovePantryItem("برنج")
	if s := e.State(); len(s.Pantry) != 1 || !s.Pantry[0].IsSpice {
		t.Fatalf("remove mismatch: %+v", s.Pantry)
	}
}

func TestAddPantryItemsSkipsExisting(t *testing.T) {
	st := &fakeStore{pantry: []domain.PantryItem{{Name: "پیاز"}}}
	e := newTestEngine(&fakeGateway{}, st)

	e.AddPantryItems([]string{"پیاز", "سیر"})

	if s := e.State(); len(s.Pantry) != 2 {
		t.Fatalf("expected 2 items, got %+v", s.Pantry)
	}
}

func TestHouseholdOperations(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(&fakeGateway{}, st)

	e.AddHouseholdItem("مایع ظرفشویی", "۱ عدد")
	e.AddHouseholdItem("مایع ظرفشویی", "۲ عدد") // duplicate, ignored
	e.AddHouseholdItem("دستمال کاغذی", "")

	s := e.State()
	if len(s.Household) != 2 {
		t.Fatalf("expected 2 items, got %+v", s.Household)
	}
	if s.Household[0].Quantity != "۱ عدد" {
		t.Fatalf("first write wins, got %q", s.Household[0].Quantity)
	}

	e.RemoveHouseholdItem("مایع ظرفشویی")
	if s = e.State(); len(s.Household) != 1 {
		t.Fatalf("remove mismatch: %+v", s.Household)
	}
}

func TestClearCollections(t *testing.T) {
	st := &fakeStore{
		pantry:    []domain.PantryItem{{Name: "برنج"}},
		household: []domain.HouseholdItem{{Name: "اسفنج"}},
	}
	e := newTestEngine(&fakeGateway{}, st)

	e.ClearPantry()
	e.ClearHousehold()

	s := e.State()
	if len(s.Pantry) != 0 || len(s.Household) != 0 {
		t.Fatalf("expected empty collections, got %+v / %+v", s.Pantry, s.Household)
	}
	if st.pantrySaves != 1 || st.householdSaves != 1 {
		t.Fatalf("clears must write through, got %d/%d saves", st.pantrySaves, st.householdSaves)
	}
}

// ── Backdrop and hydration ───────────────────────────────────────

func TestBackgroundDefaultAndPersistence(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(&fakeGateway{}, st)

	if s := e.State(); s.Background != cookbook.DefaultBackground() {
		t.Fatalf("expected default backdrop, got %q", s.Background)
	}

	e.SetBackground("https://example.com/bg.jpg")
	if st.bgSaves != 1 || st.bg != "https://example.com/bg.jpg" {
		t.Fatalf("backdrop must be persisted: saves=%d url=%q", st.bgSaves, st.bg)
	}
}

func TestNewHydratesFromStore(t *testing.T) {
	st := &fakeStore{
		shopping:  []domain.ShoppingListItem{{Item: "نان"}},
		pantry:    []domain.PantryItem{{Name: "برنج"}},
		household: []domain.HouseholdItem{{Name: "اسکاچ"}},
		bg:        "https://example.com/saved.jpg",
	}
	e := newTestEngine(&fakeGateway{}, st)

	s := e.State()
	if len(s.ShoppingList) != 1 || len(s.Pantry) != 1 || len(s.Household) != 1 {
		t.Fatalf("hydration mismatch: %+v", s)
	}
	if s.Background != "https://example.com/saved.jpg" {
		t.Fatalf("expected saved backdrop, got %q", s.Background)
	}
}
