package cookbook

import "github.com/hammamikhairi/sofre/internal/domain"

// Backgrounds is the static backdrop catalog. Only the chosen FullURL is
// ever persisted.
var Backgrounds = []domain.Background{
	{
		ID:           "default",
		Name:         "ساده",
		ThumbnailURL: "https://placehold.co/200x150/e2e8f0/4a5568?text=%D8%B3%D8%A7%D8%AF%D9%87",
		FullURL:      "",
	},
	{
		ID:           "isfahan",
		Name:         "میدان نقش جهان",
		ThumbnailURL: "https://images.unsplash.com/photo-1595151528439-443e48542289?w=200&h=150&fit=crop",
		FullURL:      "https://images.unsplash.com/photo-1595151528439-443e48542289?q=80&w=1920",
	},
	{
		ID:           "persepolis",
		Name:         "تخت جمشید",
		ThumbnailURL: "https://images.unsplash.com/photo-1631181263998-f2a87570b586?w=200&h=150&fit=crop",
		FullURL:      "https://images.unsplash.com/photo-1631181263998-f2a87570b586?q=80&w=1920",
	},
	{
		ID:           "yazd",
		Name:         "شهر یزد",
		ThumbnailURL: "https://images.unsplash.com/photo-1542895514-f633a152335d?w=200&h=150&fit=crop",
		FullURL:      "https://images.unsplash.com/photo-1542895514-f633a152335d?q=80&w=1920",
	},
	{
		ID:           "garden",
		Name:         "باغ ایرانی",
		ThumbnailURL: "https://images.unsplash.com/photo-1558255243-81f1a533aa83?w=200&h=150&fit=crop",
		FullURL:      "https://images.unsplash.com/photo-1558255243-81f1a533aa83?q=80&w=1920",
	},
	{
		ID:           "damavand",
		Name:         "کوه دماوند",
		ThumbnailURL: "https://images.unsplash.com/photo-1627892911129-b635f795275e?w=200&h=150&fit=crop",
		FullURL:      "https://images.unsplash.com/photo-1627892911129-b635f795275e?q=80&w=1920",
	},
}

// DefaultBackground is the backdrop used before the user picks one.
func DefaultBackground() string {
	return Backgrounds[1].FullURL
}

// FindBackground returns the catalog entry with the given ID, or nil.
func FindBackground(id string) *domain.Background {
	for i := range Backgrounds {
		if Backgrounds[i].ID == id {
			return &Backgrounds[i]
		}
	}
	return nil
}
