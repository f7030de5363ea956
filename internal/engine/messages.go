package engine

// User-facing Persian messages. Every failure the user can see maps to one
// of these; raw backend errors only go to the log.
const (
	// MsgSelectFailed is shown when recipe generation fails.
	MsgSelectFailed = "متاسفانه در تولید دستور پخت مشکلی پیش آمد. لطفا دوباره امتحان کنید."
	// MsgPhotoNoIngredients is shown when a photo contains nothing edible.
	MsgPhotoNoIngredients = "موفق به یافتن مواد اولیه در عکس نشدیم. لطفا با یک عکس واضح‌تر امتحان کنید."
	// MsgSuggestFailed is shown when dish suggestion fails.
	MsgSuggestFailed = "متاسفانه در پیشنهاد غذا مشکلی پیش آمد. لطفا دوباره امتحان کنید."
	// MsgPantryEmpty is shown when suggesting from an empty pantry.
	MsgPantryEmpty = "ابتدا موادی که در خانه دارید را به انبار اضافه کنید."
	// MsgPantryNoDish is shown when no dish fits the pantry contents.
	MsgPantryNoDish = "متاسفانه با مواد شما غذایی پیدا نشد. لطفا دوباره امتحان کنید."
	// MsgRescaleFailed is shown when serving adjustment fails.
	MsgRescaleFailed = "خطا در بروزرسانی مواد اولیه."
	// MsgAnalysisFailed is shown when photo item recognition fails.
	MsgAnalysisFailed = "خطا در تحلیل تصویر. لطفا دوباره تلاش کنید."
	// MsgNothingIdentified is shown when a photo yields no recognized items.
	MsgNothingIdentified = "ماده‌ای در تصویر شناسایی نشد."

	// LabelGenerating is the loading label during recipe generation.
	LabelGenerating = "در حال آماده‌سازی دستور پخت..."
	// LabelAnalyzingPhoto is the loading label during photo analysis.
	LabelAnalyzingPhoto = "در حال تحلیل تصویر شما..."
	// LabelSearchingPantry is the loading label during pantry suggestion.
	LabelSearchingPantry = "در حال جستجو در انبار شما..."
)
