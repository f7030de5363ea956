package cookbook

// CommonIngredient is one quick-add catalog entry. Protein entries carry
// the units the quantity picker offers; spices are toggled without one.
type CommonIngredient struct {
	Name     string
	Category string
	IsSpice  bool
	Units    []string
}

// Catalog categories, in display order.
var IngredientCategories = []string{
	"پروتئین",
	"لبنیات",
	"حبوبات و غلات",
	"سبزیجات",
	"ادویه‌جات",
}

// CommonIngredients is the quick-add catalog shown in the pantry view.
var CommonIngredients = []CommonIngredient{
	// پروتئین
	{Name: "گوشت گوسفندی", Category: "پروتئین", Units: []string{"گرم", "کیلوگرم"}},
	{Name: "گوشت گوساله", Category: "پروتئین", Units: []string{"گرم", "کیلوگرم"}},
	{Name: "گوشت چرخ‌کرده", Category: "پروتئین", Units: []string{"گرم", "کیلوگرم"}},
	{Name: "مرغ", Category: "پروتئین", Units: []string{"عدد", "گرم", "کیلوگرم"}},
	{Name: "ماهی", Category: "پروتئین", Units: []string{"عدد", "گرم"}},
	{Name: "تخم‌مرغ", Category: "پروتئین", Units: []string{"عدد"}},

	// لبنیات
	{Name: "ماست", Category: "لبنیات"},
	{Name: "کشک", Category: "لبنیات"},
	{Name: "کره", Category: "لبنیات"},
	{Name: "پنیر", Category: "لبنیات"},

	// حبوبات و غلات
	{Name: "برنج", Category: "حبوبات و غلات"},
	{Name: "لپه", Category: "حبوبات و غلات"},
	{Name: "لوبیا قرمز", Category: "حبوبات و غلات"},
	{Name: "لوبیا سفید", Category: "حبوبات و غلات"},
	{Name: "نخود", Category: "حبوبات و غلات"},
	{Name: "عدس", Category: "حبوبات و غلات"},
	{Name: "آرد", Category: "حبوبات و غلات"},
	{Name: "رشته آش", Category: "حبوبات و غلات"},

	// سبزیجات
	{Name: "پیاز", Category: "سبزیجات"},
	{Name: "سیر", Category: "سبزیجات"},
	{Name: "سیب‌زمینی", Category: "سبزیجات"},
	{Name: "گوجه‌فرنگی", Category: "سبزیجات"},
	{Name: "بادمجان", Category: "سبزیجات"},
	{Name: "سبزی قورمه", Category: "سبزیجات"},
	{Name: "سبزی کوکو", Category: "سبزیجات"},
	{Name: "سبزی آش", Category: "سبزیجات"},
	{Name: "شوید", Category: "سبزیجات"},
	{Name: "باقالی", Category: "سبزیجات"},

	// ادویه‌جات
	{Name: "نمک", Category: "ادویه‌جات", IsSpice: true},
	{Name: "فلفل سیاه", Category: "ادویه‌جات", IsSpice: true},
	{Name: "زردچوبه", Category: "ادویه‌جات", IsSpice: true},
	{Name: "دارچین", Category: "ادویه‌جات", IsSpice: true},
	{Name: "زعفران", Category: "ادویه‌جات", IsSpice: true},
	{Name: "نعنا خشک", Category: "ادویه‌جات", IsSpice: true},
	{Name: "لیمو عمانی", Category: "ادویه‌جات", IsSpice: true},
	{Name: "زرشک", Category: "ادویه‌جات", IsSpice: true},
	{Name: "رب گوجه‌فرنگی", Category: "ادویه‌جات", IsSpice: true},
	{Name: "رب انار", Category: "ادویه‌جات", IsSpice: true},
}

// Spices returns the catalog entries flagged as spices.
func Spices() []CommonIngredient {
	var out []CommonIngredient
	for _, c := range CommonIngredients {
		if c.IsSpice {
			out = append(out, c)
		}
	}
	return out
}

// ByCategory returns the catalog entries in the given category.
func ByCategory(category string) []CommonIngredient {
	var out []CommonIngredient
	for _, c := range CommonIngredients {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}
