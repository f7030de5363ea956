// Sofre — a Persian recipe discovery assistant.
//
// Usage:
//
//	sofre [-verbose] [-quiet]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/sofre/internal/cookbook"
	"github.com/hammamikhairi/sofre/internal/display"
	"github.com/hammamikhairi/sofre/internal/domain"
	"github.com/hammamikhairi/sofre/internal/engine"
	"github.com/hammamikhairi/sofre/internal/gemini"
	"github.com/hammamikhairi/sofre/internal/logger"
	"github.com/hammamikhairi/sofre/internal/share"
	"github.com/hammamikhairi/sofre/internal/speech"
	"github.com/hammamikhairi/sofre/internal/store"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".sofre-logs/sofre.log", "file to write logs to (use \"stderr\" to log to console)")
	dataDir := flag.String("data-dir", ".sofre-data", "directory for persisted lists")
	noSpeech := flag.Bool("no-speech", false, "disable text-to-speech even if Azure keys are set")
	voiceName := flag.String("voice", speech.DefaultVoice, "Azure TTS voice name")
	whisperBin := flag.String("whisper-bin", "whisper-cli", "path to the whisper-cpp CLI binary")
	whisperModel := flag.String("whisper-model", "bin/ggml-small.bin", "path to the Whisper GGML model file")
	recordSecs := flag.Int("record-secs", 10, "maximum seconds per dictation")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs like
	// the whisper transcriber) to the same output so it doesn't spam
	// the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		fmt.Fprintln(os.Stderr, "error: GEMINI_API_KEY is not set")
		os.Exit(1)
	}

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	st, err := store.New(*dataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: data directory: %v\n", err)
		os.Exit(1)
	}
	gateway := gemini.NewGateway(gemini.NewClient(geminiKey, log), log)
	book := cookbook.New(log)
	eng := engine.New(gateway, st, book, log)

	ui := display.NewUI(func() display.Status {
		s := eng.State()
		return display.Status{
			Loading:       s.Loading,
			LoadingLabel:  s.LoadingLabel,
			Dish:          s.Dish,
			Servings:      s.Servings,
			ShoppingCount: len(s.ShoppingList),
			PantryCount:   len(s.Pantry),
		}
	})

	// Read-aloud, when Azure credentials and an audio device are present.
	var speaker domain.Speaker = speech.NoopSpeaker{}
	azureKey := os.Getenv(speech.EnvAzureSpeechKey)
	azureRegion := os.Getenv(speech.EnvAzureSpeechRegion)
	if azureKey != "" && azureRegion != "" && !*noSpeech {
		player, err := speech.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, read-aloud disabled: %v", err)
		} else {
			tts := speech.NewAzureClient(azureKey, azureRegion, log, speech.WithVoice(*voiceName))
			speaker = speech.NewSpeaker(tts, player, log)
			log.Info("read-aloud enabled (voice=%s, region=%s)", *voiceName, azureRegion)
		}
	} else if !*noSpeech {
		log.Info("read-aloud disabled: set %s and %s env vars to enable", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
	}

	// Dictation, when the whisper binary and model are present.
	var recognizer domain.Recognizer = speech.NewRecognizer(*whisperBin, *whisperModel, log,
		speech.WithRecordDuration(time.Duration(*recordSecs)*time.Second),
	)
	if recognizer.Supported() {
		log.Info("dictation enabled (bin=%s, model=%s, max=%ds)", *whisperBin, *whisperModel, *recordSecs)
	}

	app := &cliApp{
		engine:     eng,
		book:       book,
		speaker:    speaker,
		recognizer: recognizer,
		log:        log,
		ui:         ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  امروز چی بپزم؟ — type a dish name, or 'help' for commands."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type cliApp struct {
	engine     *engine.Engine
	book       *cookbook.Book
	speaker    domain.Speaker
	recognizer domain.Recognizer
	log        *logger.Logger
	ui         *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	a.showCookbook()

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-a.ui.InputChan():
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !a.dispatch(ctx, input) {
			return
		}
	}
}

// dispatch handles one REPL line. Returns false to quit.
func (a *cliApp) dispatch(ctx context.Context, input string) bool {
	cmd, rest := splitCommand(input)

	switch cmd {
	case "quit", "exit":
		a.speaker.Stop()
		return false
	case "help":
		a.showHelp()
	case "list":
		a.showCookbook()
	case "random":
		a.selectAsync(ctx, func() error { return a.engine.SelectRandom(ctx) })
	case "ideas":
		a.selectAsync(ctx, func() error { return a.engine.SelectFromPantry(ctx) })
	case "photo":
		a.selectFromPhoto(ctx, rest)
	case "voice":
		a.selectByVoice(ctx)
	case "back":
		a.engine.Back()
		a.ui.PrintHint("برگشتیم به صفحه اصلی.")
	case "serves":
		a.rescale(ctx, rest)
	case "cooked":
		a.recordCooked(ctx)
	case "shopping":
		a.shopping(rest)
	case "pantry":
		a.pantry(ctx, rest)
	case "house":
		a.household(ctx, rest)
	case "bg":
		a.background(rest)
	case "share":
		a.share(rest)
	case "speak":
		a.speak(ctx)
	case "stop":
		a.speaker.Stop()
	default:
		// A bare number picks from the cookbook listing; anything else
		// is a dish name.
		name := input
		if n, err := strconv.Atoi(input); err == nil {
			names := a.book.Names()
			if n < 1 || n > len(names) {
				a.ui.PrintHint(fmt.Sprintf("شماره باید بین ۱ و %d باشد.", len(names)))
				return true
			}
			name = names[n-1]
		}
		a.selectAsync(ctx, func() error { return a.engine.SelectDish(ctx, name) })
	}
	return true
}

// ── Dish selection ───────────────────────────────────────────────

// selectAsync runs a selection in the background and renders the result
// when it lands. The status bar shows progress meanwhile.
func (a *cliApp) selectAsync(ctx context.Context, sel func() error) {
	go func() {
		before := a.engine.State()
		if err := sel(); err != nil {
			a.log.Debug("selection: %v", err)
		}
		s := a.engine.State()
		if s.ErrorMsg != "" && s.ErrorMsg != before.ErrorMsg {
			a.ui.PrintUrgent(s.ErrorMsg)
			a.engine.ClearError()
			return
		}
		if s.Recipe != nil {
			a.showRecipe(s)
		}
	}()
}

func (a *cliApp) selectFromPhoto(ctx context.Context, path string) {
	image, mime, err := readImage(path)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("خطا در خواندن عکس: %v", err))
		return
	}
	a.selectAsync(ctx, func() error { return a.engine.SelectFromPhoto(ctx, image, mime) })
}

func (a *cliApp) selectByVoice(ctx context.Context) {
	text, ok := a.dictate(ctx)
	if !ok {
		return
	}
	a.ui.PrintVoice(text)
	a.selectAsync(ctx, func() error { return a.engine.SelectDish(ctx, text) })
}

// dictate runs one bounded dictation and returns the transcript.
func (a *cliApp) dictate(ctx context.Context) (string, bool) {
	if !a.recognizer.Supported() {
		a.ui.PrintHint("دیکته صوتی در دسترس نیست.")
		return "", false
	}
	if !a.recognizer.Start(ctx) {
		return "", false
	}
	a.ui.PrintHint("در حال گوش دادن... (برای پایان چیزی تایپ کنید)")

	// Any input line ends the dictation early.
	done := make(chan struct{})
	go func() {
		for a.recognizer.Listening() {
			select {
			case <-a.ui.InputChan():
				a.recognizer.Stop()
			case <-done:
				return
			case <-time.After(100 * time.Millisecond):
			}
		}
	}()
	for a.recognizer.Listening() {
		select {
		case <-ctx.Done():
			a.recognizer.Stop()
		case <-time.After(50 * time.Millisecond):
		}
	}
	close(done)

	text := a.recognizer.Transcript()
	if text == "" {
		a.ui.PrintHint("چیزی شنیده نشد.")
		return "", false
	}
	return text, true
}

func (a *cliApp) rescale(ctx context.Context, arg string) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		a.ui.PrintHint("usage: serves N")
		return
	}
	go func() {
		if err := a.engine.RescaleServings(ctx, n); err != nil {
			s := a.engine.State()
			if s.ErrorMsg != "" {
				a.ui.PrintUrgent(s.ErrorMsg)
				a.engine.ClearError()
			}
			return
		}
		s := a.engine.State()
		if s.Recipe == nil {
			return
		}
		a.ui.PrintTitle(fmt.Sprintf("مواد لازم برای %d نفر:", s.Servings))
		a.printIngredients(s)
	}()
}

func (a *cliApp) recordCooked(ctx context.Context) {
	s := a.engine.State()
	if s.Recipe == nil {
		a.ui.PrintHint("اول یک غذا انتخاب کنید.")
		return
	}
	go func() {
		if err := a.engine.RecordCooked(ctx); err != nil {
			a.ui.PrintUrgent("خطا در بروزرسانی انبار.")
			a.log.Error("record cooked: %v", err)
			return
		}
		a.ui.PrintHint("نوش جان! انبار شما بروزرسانی شد.")
	}()
}

// ── Rendering ────────────────────────────────────────────────────

func (a *cliApp) showCookbook() {
	a.ui.PrintTitle("کتاب آشپزی:")
	a.ui.Println("")
	for i, name := range a.book.Names() {
		a.ui.PrintBody(fmt.Sprintf("[%d] %s", i+1, name))
	}
	a.ui.Println("")
	a.ui.PrintHint("اسم هر غذایی را بنویسید تا دستور پخت آن آماده شود.")
}

func (a *cliApp) showRecipe(s engine.State) {
	r := s.Recipe
	a.ui.Println("")
	a.ui.PrintTitle(fmt.Sprintf("=== %s ===", r.Name))
	a.ui.PrintBody(r.Description)
	a.ui.PrintHint(fmt.Sprintf("زمان پخت: %s — %s", r.CookingTime, r.Servings))
	if s.ImageURL != "" {
		a.ui.PrintHint(fmt.Sprintf("تصویر: %d bytes (data URL)", len(s.ImageURL)))
	}

	a.ui.Println("")
	a.ui.PrintTitle("مواد لازم:")
	a.printIngredients(s)

	a.ui.Println("")
	a.ui.PrintTitle("طرز تهیه:")
	for i, step := range r.Instructions {
		a.ui.PrintBody(fmt.Sprintf("%d. %s", i+1, step))
	}
	a.ui.Println("")
	a.ui.PrintHint("serves N · shopping all · cooked · share sms|wa · speak · back")
}

// printIngredients marks the lines already covered by the pantry.
func (a *cliApp) printIngredients(s engine.State) {
	for _, ing := range s.Recipe.Ingredients {
		if a.engine.InPantry(ing) {
			a.ui.PrintChecked("✓ " + ing)
		} else {
			a.ui.PrintBody("- " + ing)
		}
	}
}

// ── Shopping list ────────────────────────────────────────────────

func (a *cliApp) shopping(rest string) {
	sub, arg := splitCommand(rest)
	switch sub {
	case "":
		s := a.engine.State()
		if len(s.ShoppingList) == 0 {
			a.ui.PrintHint("لیست خرید خالی است.")
			return
		}
		a.ui.PrintTitle("لیست خرید:")
		for _, it := range s.ShoppingList {
			if it.Purchased {
				a.ui.PrintChecked("✓ " + it.Item)
			} else {
				a.ui.PrintBody("- " + it.Item)
			}
		}
	case "add":
		a.engine.AddShoppingItem(arg)
	case "buy":
		a.engine.ToggleShoppingItem(arg)
	case "rm":
		a.engine.RemoveShoppingItem(arg)
	case "bought":
		a.engine.ClearPurchased()
	case "clear":
		a.engine.ClearShoppingList()
	case "all":
		s := a.engine.State()
		if s.Recipe == nil {
			a.ui.PrintHint("اول یک غذا انتخاب کنید.")
			return
		}
		a.engine.AddShoppingItems(s.Recipe.Ingredients)
		a.ui.PrintHint("همه مواد به لیست خرید اضافه شد.")
	default:
		a.ui.PrintHint("usage: shopping [add|buy|rm <item> | bought | clear | all]")
	}
}

// ── Pantry ───────────────────────────────────────────────────────

func (a *cliApp) pantry(ctx context.Context, rest string) {
	sub, arg := splitCommand(rest)
	switch sub {
	case "":
		s := a.engine.State()
		if len(s.Pantry) == 0 {
			a.ui.PrintHint("انبار خالی است.")
			return
		}
		a.ui.PrintTitle("انبار:")
		for _, it := range s.Pantry {
			line := it.Name
			if it.Quantity != "" {
				line += " — " + it.Quantity
			}
			if it.IsSpice {
				a.ui.PrintChecked("~ " + line)
			} else {
				a.ui.PrintBody("- " + line)
			}
		}
	case "add":
		name, qty := splitQuantity(arg)
		a.engine.AddPantryItem(name, qty, false)
	case "spice":
		a.engine.AddPantryItem(arg, "", true)
	case "rm":
		a.engine.RemovePantryItem(arg)
	case "clear":
		a.engine.ClearPantry()
	case "photo":
		a.addFromPhoto(ctx, arg, domain.ContextFood)
	case "voice":
		if text, ok := a.dictate(ctx); ok {
			a.ui.PrintVoice(text)
			name, qty := splitQuantity(text)
			a.engine.AddPantryItem(name, qty, false)
		}
	case "quick":
		a.showQuickAdd()
	default:
		a.ui.PrintHint("usage: pantry [add <name> [| qty] | spice <name> | rm <name> | clear | photo <path> | voice | quick]")
	}
}

func (a *cliApp) showQuickAdd() {
	for _, cat := range cookbook.IngredientCategories {
		a.ui.PrintTitle(cat + ":")
		for _, c := range cookbook.ByCategory(cat) {
			line := "- " + c.Name
			if len(c.Units) > 0 {
				line += "  (" + strings.Join(c.Units, "، ") + ")"
			}
			a.ui.PrintBody(line)
		}
		a.ui.Println("")
	}
}

// ── Household items ──────────────────────────────────────────────

func (a *cliApp) household(ctx context.Context, rest string) {
	sub, arg := splitCommand(rest)
	switch sub {
	case "":
		s := a.engine.State()
		if len(s.Household) == 0 {
			a.ui.PrintHint("لیست لوازم خانه خالی است.")
			return
		}
		a.ui.PrintTitle("لوازم خانه:")
		for _, it := range s.Household {
			line := it.Name
			if it.Quantity != "" {
				line += " — " + it.Quantity
			}
			a.ui.PrintBody("- " + line)
		}
	case "add":
		name, qty := splitQuantity(arg)
		a.engine.AddHouseholdItem(name, qty)
	case "rm":
		a.engine.RemoveHouseholdItem(arg)
	case "clear":
		a.engine.ClearHousehold()
	case "photo":
		a.addFromPhoto(ctx, arg, domain.ContextHousehold)
	default:
		a.ui.PrintHint("usage: house [add <name> [| qty] | rm <name> | clear | photo <path>]")
	}
}

// addFromPhoto recognizes items in a photo and adds them to the pantry
// or the household list.
func (a *cliApp) addFromPhoto(ctx context.Context, path string, itemCtx domain.ItemContext) {
	image, mime, err := readImage(path)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("خطا در خواندن عکس: %v", err))
		return
	}
	go func() {
		a.ui.PrintHint("در حال تحلیل تصویر شما...")
		items, err := a.engine.IdentifyPhotoItems(ctx, image, mime, itemCtx)
		if err != nil {
			a.ui.PrintUrgent(engine.MsgAnalysisFailed)
			a.log.Error("photo items: %v", err)
			return
		}
		if len(items) == 0 {
			a.ui.PrintHint(engine.MsgNothingIdentified)
			return
		}
		if itemCtx == domain.ContextHousehold {
			a.engine.AddHouseholdItems(items)
		} else {
			a.engine.AddPantryItems(items)
		}
		a.ui.PrintHint(fmt.Sprintf("%d مورد اضافه شد: %s", len(items), strings.Join(items, "، ")))
	}()
}

// ── Backdrop ─────────────────────────────────────────────────────

func (a *cliApp) background(arg string) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		current := a.engine.State().Background
		a.ui.PrintTitle("پس‌زمینه‌ها:")
		for _, bg := range cookbook.Backgrounds {
			marker := "- "
			if bg.FullURL == current {
				marker = "✓ "
			}
			a.ui.PrintBody(fmt.Sprintf("%s%s (%s)", marker, bg.Name, bg.ID))
		}
		return
	}
	bg := cookbook.FindBackground(arg)
	if bg == nil {
		a.ui.PrintHint("usage: bg [<id>]")
		return
	}
	a.engine.SetBackground(bg.FullURL)
	a.ui.PrintHint("پس‌زمینه تغییر کرد: " + bg.Name)
}

// ── Sharing ──────────────────────────────────────────────────────

func (a *cliApp) share(rest string) {
	s := a.engine.State()
	if s.Recipe == nil {
		a.ui.PrintHint("اول یک غذا انتخاب کنید.")
		return
	}
	msg := share.FormatIngredients(s.Recipe.Name, s.Recipe.Ingredients)

	sub, phone := splitCommand(rest)
	var link string
	switch sub {
	case "sms":
		link = share.SMSLink(phone, msg)
	case "wa":
		link = share.WhatsAppLink(phone, msg)
	default:
		a.ui.PrintHint("usage: share sms [phone] | share wa <phone>")
		return
	}
	if err := share.Open(link, a.log); err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("خطا در باز کردن لینک: %v", err))
	}
}

// ── Read-aloud ───────────────────────────────────────────────────

func (a *cliApp) speak(ctx context.Context) {
	s := a.engine.State()
	if s.Recipe == nil {
		a.ui.PrintHint("اول یک غذا انتخاب کنید.")
		return
	}
	var b strings.Builder
	b.WriteString(s.Recipe.Name)
	b.WriteString(". ")
	b.WriteString(s.Recipe.Description)
	b.WriteString(" مواد لازم: ")
	b.WriteString(strings.Join(s.Recipe.Ingredients, "، "))
	b.WriteString(". طرز تهیه: ")
	b.WriteString(strings.Join(s.Recipe.Instructions, " "))
	a.speaker.Speak(ctx, b.String())
}

// ── Help ─────────────────────────────────────────────────────────

func (a *cliApp) showHelp() {
	a.ui.PrintTitle("Commands:")
	a.ui.PrintBody("  <dish name>        Generate a recipe for any Iranian dish")
	a.ui.PrintBody("  <number>           Pick that entry from the cookbook listing")
	a.ui.PrintBody("  list               Show the cookbook")
	a.ui.PrintBody("  random             Pick a cookbook dish at random")
	a.ui.PrintBody("  ideas              Suggest a dish from your pantry")
	a.ui.PrintBody("  photo <path>       Suggest a dish from an ingredient photo")
	a.ui.PrintBody("  voice              Dictate a dish name")
	a.ui.PrintBody("  serves N           Rescale the ingredients for N people")
	a.ui.PrintBody("  cooked             Deduct the used ingredients from the pantry")
	a.ui.PrintBody("  back               Return to the home screen")
	a.ui.PrintBody("  shopping           Show the shopping list")
	a.ui.PrintBody("  shopping add|buy|rm <item> · bought · clear")
	a.ui.PrintBody("  shopping all       Add the recipe's ingredients to the list")
	a.ui.PrintBody("  pantry             Show the pantry")
	a.ui.PrintBody("  pantry add <name> [| qty] · spice · rm · clear · photo <path> · voice · quick")
	a.ui.PrintBody("  house              Show household items (add | rm | clear | photo)")
	a.ui.PrintBody("  bg [<id>]          Show or set the backdrop")
	a.ui.PrintBody("  share sms|wa [phone]")
	a.ui.PrintBody("  speak / stop       Read the recipe aloud / stop")
	a.ui.PrintBody("  quit               Exit")
}

// ── Helpers ──────────────────────────────────────────────────────

// splitCommand splits a line into its first word and the rest.
func splitCommand(s string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return strings.ToLower(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return strings.ToLower(s), ""
}

// splitQuantity splits "name | quantity" input into its parts.
func splitQuantity(s string) (string, string) {
	if i := strings.Index(s, "|"); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return strings.TrimSpace(s), ""
}

// readImage loads a photo and infers its MIME type from the extension.
func readImage(path string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, "", errors.New("no file given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return data, "image/jpeg", nil
	case ".png":
		return data, "image/png", nil
	case ".webp":
		return data, "image/webp", nil
	default:
		return nil, "", fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}
}
