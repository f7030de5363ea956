// Package cookbook provides the bundled, offline set of known Persian
// recipes, plus the quick-add ingredient catalog and the backdrop catalog.
// A cookbook hit short-circuits recipe generation: the text comes from
// here and only the dish photo is synthesized.
package cookbook

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hammamikhairi/sofre/internal/domain"
	"github.com/hammamikhairi/sofre/internal/logger"
)

// Book holds the seeded recipes. Safe for concurrent reads.
type Book struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	names   []string // insertion-independent, sorted once at seed time
	log     *logger.Logger
}

// New creates a cookbook preloaded with the built-in recipes.
func New(log *logger.Logger) *Book {
	b := &Book{
		recipes: make(map[string]*domain.Recipe),
		log:     log,
	}
	b.seed()
	return b
}

// Find returns the cookbook entry whose name matches exactly, or nil.
// Matching is exact and case-sensitive: the grid and the cookbook share
// the same strings, and AI-suggested names that merely resemble an entry
// should still go through full generation.
func (b *Book) Find(name string) *domain.Recipe {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.recipes[name]
	if !ok {
		return nil
	}
	// Copy so callers can't mutate the seed.
	cp := *r
	return &cp
}

// Names returns all dish names in sorted order.
func (b *Book) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Random returns a uniformly random dish name, or "" for an empty book.
// The choice is local; no backend call is involved in picking.
func (b *Book) Random() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.names) == 0 {
		return ""
	}
	return b.names[rand.Intn(len(b.names))]
}

// Len returns the number of bundled recipes.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.recipes)
}

func (b *Book) seed() {
	for _, r := range builtinRecipes() {
		b.recipes[r.Name] = r
		b.names = append(b.names, r.Name)
	}
	sort.Strings(b.names)
	b.log.Debug("cookbook: seeded %d recipes", len(b.recipes))
}

func builtinRecipes() []*domain.Recipe {
	return []*domain.Recipe{
		{
			Name:        "قورمه سبزی",
			Description: "خورشت ملی ایران؛ سبزی سرخ‌شده معطر با گوشت، لوبیا قرمز و لیمو عمانی.",
			Ingredients: []string{
				"۵۰۰ گرم گوشت خورشتی",
				"۴۰۰ گرم سبزی قورمه (تره، جعفری، شنبلیله)",
				"۱ پیمانه لوبیا قرمز",
				"۴ عدد لیمو عمانی",
				"۱ عدد پیاز بزرگ",
				"۲ قاشق غذاخوری روغن",
				"نمک، فلفل و زردچوبه به مقدار لازم",
			},
			Instructions: []string{
				"پیاز را خرد کنید و با کمی روغن تفت دهید تا طلایی شود.",
				"گوشت و زردچوبه را اضافه کنید و تفت دهید تا رنگ گوشت تغییر کند.",
				"سبزی را جداگانه با حوصله سرخ کنید تا عطرش بلند شود.",
				"سبزی، لوبیای خیس‌خورده و لیمو عمانی سوراخ‌شده را به گوشت اضافه کنید.",
				"آب بریزید و اجازه دهید خورشت با حرارت ملایم حدود سه ساعت جا بیفتد.",
				"در نیم ساعت آخر نمک و فلفل را تنظیم کنید و با برنج سرو کنید.",
			},
			CookingTime: "حدود ۳ ساعت",
			Servings:    "۴ نفر",
		},
		{
			Name:        "خورشت قیمه",
			Description: "خورشت لپه و گوشت با رب گوجه و عطر لیمو عمانی، با خلال سیب‌زمینی سرخ‌شده.",
			Ingredients: []string{
				"۴۰۰ گرم گوشت خورشتی",
				"۱ پیمانه لپه",
				"۳ عدد لیمو عمانی",
				"۲ قاشق غذاخوری رب گوجه‌فرنگی",
				"۲ عدد سیب‌زمینی متوسط",
				"۱ عدد پیاز",
				"نمک، فلفل، زردچوبه و دارچین به مقدار لازم",
			},
			Instructions: []string{
				"پیاز خردشده را با روغن تفت دهید و گوشت و زردچوبه را اضافه کنید.",
				"لپه‌ی نیم‌پز، رب و لیمو عمانی را اضافه و چند دقیقه تفت دهید.",
				"آب بریزید و بگذارید خورشت با حرارت ملایم دو ساعت بپزد.",
				"سیب‌زمینی‌ها را خلالی خرد و در روغن داغ سرخ کنید.",
				"نمک و ادویه را تنظیم کنید و خورشت را با خلال سیب‌زمینی سرو کنید.",
			},
			CookingTime: "حدود ۲ ساعت و نیم",
			Servings:    "۴ نفر",
		},
		{
			Name:        "خورشت فسنجان",
			Description: "خورشت مجلسی گردو و رب انار با مرغ؛ ملس، غلیظ و براق.",
			Ingredients: []string{
				"۴ عدد ران مرغ بدون پوست",
				"۳۰۰ گرم مغز گردوی آسیاب‌شده",
				"۱ پیمانه رب انار",
				"۱ عدد پیاز",
				"۲ قاشق غذاخوری شکر (اختیاری)",
				"نمک و فلفل به مقدار لازم",
			},
			Instructions: []string{
				"گردوی آسیاب‌شده را بدون روغن با حرارت ملایم تفت دهید تا عطرش بلند شود.",
				"آب اضافه کنید و بگذارید گردو حداقل یک ساعت و نیم بجوشد تا روغن بیندازد.",
				"پیاز و مرغ را جداگانه تفت دهید و به سس گردو اضافه کنید.",
				"رب انار را اضافه کنید و با شکر ملس بودن خورشت را تنظیم کنید.",
				"با حرارت ملایم بپزید تا خورشت غلیظ و تیره شود، سپس با برنج سرو کنید.",
			},
			CookingTime: "حدود ۳ ساعت",
			Servings:    "۴ نفر",
		},
		{
			Name:        "کوکو سبزی",
			Description: "کوکوی سبزی معطر با گردو و زرشک؛ ترد از بیرون و نرم از داخل.",
			Ingredients: []string{
				"۴۰۰ گرم سبزی کوکو خردشده",
				"۵ عدد تخم‌مرغ",
				"۲ قاشق غذاخوری آرد",
				"۲ قاشق غذاخوری گردوی خردشده",
				"۱ قاشق غذاخوری زرشک",
				"۱ قاشق چای‌خوری بکینگ‌پودر",
				"نمک، فلفل و زردچوبه به مقدار لازم",
			},
			Instructions: []string{
				"تخم‌مرغ‌ها را با نمک و ادویه هم بزنید تا یکدست شوند.",
				"سبزی، آرد، بکینگ‌پودر، گردو و زرشک را اضافه و خوب مخلوط کنید.",
				"روغن را در تابه داغ کنید و مایه را صاف پهن کنید.",
				"با حرارت ملایم و در بسته بپزید تا زیر کوکو طلایی شود.",
				"کوکو را برش بزنید، برگردانید و طرف دیگر را هم سرخ کنید.",
			},
			CookingTime: "حدود ۴۵ دقیقه",
			Servings:    "۴ نفر",
		},
		{
			Name:        "ته‌چین مرغ",
			Description: "کیک برنجی زعفرانی با لایه‌ی مرغ؛ ته‌دیگ یکپارچه و طلایی.",
			Ingredients: []string{
				"۳ پیمانه برنج",
				"۳۰۰ گرم سینه مرغ پخته و ریش‌شده",
				"۲ عدد زرده تخم‌مرغ",
				"۱ پیمانه ماست چکیده",
				"زعفران دم‌کرده غلیظ",
				"۳ قاشق غذاخوری روغن یا کره",
				"نمک و فلفل به مقدار لازم",
			},
			Instructions: []string{
				"برنج را آبکش کنید و کمی خنک شود.",
				"ماست، زرده، زعفران، نمک و فلفل را مخلوط کنید و نصف برنج را به آن بزنید.",
				"نصف مایه را کف قابلمه چرب‌شده فشرده بچینید و مرغ را روی آن پهن کنید.",
				"باقی برنج را روی مرغ بریزید و سطحش را صاف و فشرده کنید.",
				"با حرارت کم حدود یک ساعت دم کنید تا ته‌دیگ طلایی و یکپارچه شود.",
				"قابلمه را برگردانید و ته‌چین را مثل کیک برش بزنید.",
			},
			CookingTime: "حدود ۱ ساعت و ۳۰ دقیقه",
			Servings:    "۴ نفر",
		},
		{
			Name:        "زرشک پلو با مرغ",
			Description: "پلوی زعفرانی با زرشک براق و مرغ زعفرانی؛ غذای مهمانی‌های ایرانی.",
			Ingredients: []string{
				"۳ پیمانه برنج",
				"۴ عدد ران مرغ",
				"۱ پیمانه زرشک",
				"۱ عدد پیاز",
				"۲ قاشق غذاخوری رب گوجه‌فرنگی",
				"زعفران دم‌کرده",
				"۲ قاشق غذاخوری کره",
				"نمک، فلفل و زردچوبه به مقدار لازم",
			},
			Instructions: []string{
				"مرغ را با پیاز، رب، زعفران و ادویه با حرارت ملایم بپزید تا نرم شود.",
				"برنج را آبکش و دم کنید.",
				"زرشک را با کره و کمی شکر چند ثانیه تفت دهید؛ زود می‌سوزد.",
				"برنج را با زعفران و زرشک تزیین کنید و با مرغ سرو کنید.",
			},
			CookingTime: "حدود ۲ ساعت",
			Servings:    "۴ نفر",
		},
		{
			Name:        "میرزا قاسمی",
			Description: "پیش‌غذای گیلانی از بادمجان کبابی، سیر، گوجه و تخم‌مرغ با عطر دود.",
			Ingredients: []string{
				"۴ عدد بادمجان بزرگ",
				"۶ حبه سیر",
				"۳ عدد گوجه‌فرنگی",
				"۲ عدد تخم‌مرغ",
				"۳ قاشق غذاخوری روغن",
				"نمک، فلفل و زردچوبه به مقدار لازم",
			},
			Instructions: []string{
				"بادمجان‌ها را روی شعله یا در فر کباب کنید تا پوستشان بسوزد و مغزشان دودی شود.",
				"پوست بادمجان‌ها را بگیرید و گوشتشان را بکوبید.",
				"سیر رنده‌شده را در روغن تفت دهید و گوجه‌ی رنده‌شده را اضافه کنید تا آبش کشیده شود.",
				"بادمجان را اضافه کنید و خوب تفت دهید تا روغن بیندازد.",
				"تخم‌مرغ‌ها را اضافه کنید، هم بزنید و با نان سرو کنید.",
			},
			CookingTime: "حدود ۱ ساعت",
			Servings:    "۴ نفر",
		},
		{
			Name:        "آش رشته",
			Description: "آش غلیظ حبوبات و سبزی با رشته، کشک و پیازداغ و نعناداغ.",
			Ingredients: []string{
				"۲۰۰ گرم رشته آش",
				"نصف پیمانه نخود",
				"نصف پیمانه لوبیا سفید",
				"نصف پیمانه عدس",
				"۴۰۰ گرم سبزی آش",
				"۱ پیمانه کشک",
				"۲ عدد پیاز برای پیازداغ",
				"نعنا خشک، نمک و زردچوبه به مقدار لازم",
			},
			Instructions: []string{
				"حبوبات خیس‌خورده را بپزید تا نیم‌پز شوند.",
				"سبزی آش را اضافه کنید و بگذارید با حبوبات جا بیفتد.",
				"رشته را در نیم ساعت آخر اضافه کنید و مرتب هم بزنید تا ته نگیرد.",
				"پیازداغ و نعناداغ آماده کنید.",
				"کشک را اضافه کنید و آش را با پیازداغ، نعناداغ و کشک تزیین و سرو کنید.",
			},
			CookingTime: "حدود ۲ ساعت و نیم",
			Servings:    "۶ نفر",
		},
		{
			Name:        "کباب تابه‌ای",
			Description: "کباب کوبیده‌ی خانگی در تابه؛ سریع، پرطرفدار و بی‌نیاز از منقل.",
			Ingredients: []string{
				"۵۰۰ گرم گوشت چرخ‌کرده",
				"۲ عدد پیاز متوسط",
				"۱ قاشق چای‌خوری زردچوبه",
				"نمک و فلفل سیاه به مقدار لازم",
				"۲ عدد گوجه‌فرنگی",
			},
			Instructions: []string{
				"پیاز را رنده کنید و آبش را کامل بگیرید.",
				"گوشت، پیاز و ادویه را چند دقیقه خوب ورز دهید تا منسجم شود.",
				"مایه را کف تابه پهن کنید و با لبه‌ی قاشق شیار بیندازید.",
				"با حرارت متوسط بپزید، برش بزنید و برگردانید تا دو طرف برشته شود.",
				"گوجه‌ها را کنار کباب تفت دهید و با نان یا برنج سرو کنید.",
			},
			CookingTime: "حدود ۴۵ دقیقه",
			Servings:    "۴ نفر",
		},
		{
			Name:        "باقالی پلو با گوشت",
			Description: "پلوی شوید و باقالی با ماهیچه یا گردن؛ عطر شوید با گوشت نرم.",
			Ingredients: []string{
				"۳ پیمانه برنج",
				"۲ پیمانه باقالی سبز پوست‌کنده",
				"۱ پیمانه شوید خشک",
				"۴ تکه ماهیچه یا گردن گوسفندی",
				"۱ عدد پیاز",
				"زعفران دم‌کرده",
				"نمک، فلفل و زردچوبه به مقدار لازم",
			},
			Instructions: []string{
				"گوشت را با پیاز و ادویه با حرارت ملایم چند ساعت بپزید تا کاملا نرم شود.",
				"برنج را با باقالی نیم‌پز آبکش کنید.",
				"برنج را لایه‌لایه با شوید در قابلمه بچینید و دم کنید.",
				"پلو را با زعفران تزیین کنید و با گوشت و آب گوشت سرو کنید.",
			},
			CookingTime: "حدود ۳ ساعت و ۳۰ دقیقه",
			Servings:    "۴ نفر",
		},
	}
}
