// Package store provides file-backed persistence for the user's collections.
// Each collection lives in its own JSON file under the data directory and is
// written through on every change. Loads fall back to an empty collection on
// missing or corrupt files; save failures are logged and swallowed.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/sofre/internal/domain"
	"github.com/hammamikhairi/sofre/internal/logger"
)

// Compile-time interface check.
var _ domain.Store = (*FileStore)(nil)

// File names under the data directory, one per collection.
const (
	shoppingFile   = "shoppingList.json"
	pantryFile     = "pantryItems.json"
	householdFile  = "householdItems.json"
	backgroundFile = "backgroundImage.json"
)

// FileStore persists collections as JSON files in a single directory.
type FileStore struct {
	dir string
	log *logger.Logger
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, log: log}, nil
}

// Dir returns the data directory the store writes into.
func (s *FileStore) Dir() string {
	return s.dir
}

// LoadShoppingList reads the saved shopping list. Entries saved by older
// versions as bare strings are migrated to unpurchased items.
func (s *FileStore) LoadShoppingList() []domain.ShoppingListItem {
	raw, ok := s.read(shoppingFile)
	if !ok {
		return nil
	}

	var items []domain.ShoppingListItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}

	// Legacy format: a plain array of item names.
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		s.log.Warn("shopping list file is corrupt, starting empty")
		return nil
	}
	items = make([]domain.ShoppingListItem, 0, len(names))
	for _, n := range names {
		items = append(items, domain.ShoppingListItem{Item: n})
	}
	s.log.Info("migrated %d legacy shopping list entries", len(items))
	return items
}

// SaveShoppingList writes the shopping list.
func (s *FileStore) SaveShoppingList(items []domain.ShoppingListItem) {
	s.write(shoppingFile, items)
}

// LoadPantry reads the saved pantry.
func (s *FileStore) LoadPantry() []domain.PantryItem {
	var items []domain.PantryItem
	if !s.load(pantryFile, &items) {
		// Unmarshal may have partially filled the slice before failing.
		return nil
	}
	return items
}

// SavePantry writes the pantry.
func (s *FileStore) SavePantry(items []domain.PantryItem) {
	s.write(pantryFile, items)
}

// LoadHousehold reads the saved household items.
func (s *FileStore) LoadHousehold() []domain.HouseholdItem {
	var items []domain.HouseholdItem
	if !s.load(householdFile, &items) {
		return nil
	}
	return items
}

// SaveHousehold writes the household items.
func (s *FileStore) SaveHousehold(items []domain.HouseholdItem) {
	s.write(householdFile, items)
}

// LoadBackground reads the saved backdrop URL, returning fallback when no
// valid value is stored.
func (s *FileStore) LoadBackground(fallback string) string {
	var url string
	if !s.load(backgroundFile, &url) || url == "" {
		return fallback
	}
	return url
}

// SaveBackground writes the backdrop URL.
func (s *FileStore) SaveBackground(url string) {
	s.write(backgroundFile, url)
}

// ── helpers ──────────────────────────────────────────────────────────

// read returns the raw bytes of a data file. A missing file is not an
// error, just an absent collection.
func (s *FileStore) read(name string) ([]byte, bool) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("reading %s: %v", name, err)
		}
		return nil, false
	}
	return raw, true
}

// load unmarshals a data file into v, reporting whether it succeeded.
func (s *FileStore) load(name string, v any) bool {
	raw, ok := s.read(name)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("%s is corrupt, using default: %v", name, err)
		return false
	}
	return true
}

// write marshals v into a data file. Failures are logged, never surfaced.
func (s *FileStore) write(name string, v any) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.log.Error("encoding %s: %v", name, err)
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		s.log.Error("writing %s: %v", name, err)
	}
}
