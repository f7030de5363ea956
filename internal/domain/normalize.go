package domain

import "strings"

// Arabic letter variants folded to their Persian forms, plus zero-width
// characters that sneak in from mobile keyboards and copy-paste.
var nameFolder = strings.NewReplacer(
	"ي", "ی", // ي -> ی
	"ك", "ک", // ك -> ک
	"‌", " ", // ZWNJ -> space
	"‍", "", // ZWJ
	"‏", "", // RLM
	"‎", "", // LRM
)

// NormalizeName is the single normalization applied at every pantry and
// household comparison site: trim, lowercase, fold Arabic letter variants,
// collapse interior whitespace. Two names are "the same item" exactly when
// their normalized forms are equal.
func NormalizeName(name string) string {
	s := nameFolder.Replace(name)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// MentionsName reports whether the ingredient line mentions the given item
// name, using the same normalization on both sides. Backs the "have it in
// the pantry" indicators next to each ingredient.
func MentionsName(ingredient, name string) bool {
	n := NormalizeName(name)
	if n == "" {
		return false
	}
	return strings.Contains(NormalizeName(ingredient), n)
}
