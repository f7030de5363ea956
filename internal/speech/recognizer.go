package speech

import (
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/hammamikhairi/sofre/internal/domain"
	"github.com/hammamikhairi/sofre/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Recognizer = (*Recognizer)(nil)
	_ domain.Recognizer = (*NoopRecognizer)(nil)
)

// envAnnotation matches whisper environmental annotations like
// "(keyboard clicking)", "[laughter]", "(speaking Farsi)", etc.
var envAnnotation = regexp.MustCompile(`[\(\[][a-zA-Z][a-zA-Z\s]*[\)\]]`)

// capturer records one bounded clip and returns its transcription. Split
// out so the recognizer state machine is testable without a microphone.
type capturer interface {
	Capture(ctx context.Context, d time.Duration) (string, error)
}

// RecognizerOption configures the Recognizer.
type RecognizerOption func(*Recognizer)

// WithRecordDuration sets the maximum length of one dictation.
func WithRecordDuration(d time.Duration) RecognizerOption {
	return func(r *Recognizer) { r.duration = d }
}

// WithTempDir sets the directory for temporary WAV files.
func WithTempDir(dir string) RecognizerOption {
	return func(r *Recognizer) { r.tempDir = dir }
}

// Recognizer is push-to-talk dictation over a local Whisper model. One
// bounded listen at a time: Start begins a capture, Stop (or the record
// duration elapsing) finalizes it, Transcript holds the last result.
type Recognizer struct {
	whisperBin string
	modelPath  string
	tempDir    string
	duration   time.Duration
	log        *logger.Logger

	cap       capturer
	supported bool

	mu         sync.Mutex
	listening  bool
	cancel     context.CancelFunc
	transcript string
}

// NewRecognizer creates a dictation recognizer. Dictation is reported as
// unsupported when the whisper binary or the model file is missing; the
// rest of the app hides voice affordances in that case.
func NewRecognizer(whisperBin, modelPath string, log *logger.Logger, opts ...RecognizerOption) *Recognizer {
	r := &Recognizer{
		whisperBin: whisperBin,
		modelPath:  modelPath,
		tempDir:    ".sofre-stt",
		duration:   10 * time.Second,
		log:        log,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.supported = true
	if _, err := exec.LookPath(whisperBin); err != nil {
		log.Warn("dictation disabled: whisper binary %q not found: %v", whisperBin, err)
		r.supported = false
	}
	if _, err := os.Stat(modelPath); err != nil {
		log.Warn("dictation disabled: model %q not found: %v", modelPath, err)
		r.supported = false
	}
	if r.supported {
		r.cap = &whisperCapturer{
			bin:     whisperBin,
			model:   modelPath,
			tempDir: r.tempDir,
			log:     log,
		}
	}
	return r
}

// Supported reports whether dictation can run on this machine.
func (r *Recognizer) Supported() bool { return r.supported }

// Listening reports whether a capture is in flight.
func (r *Recognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

// Transcript returns the last finalized dictation.
func (r *Recognizer) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transcript
}

// Start begins one capture. Returns false when dictation is unsupported
// or a capture is already running. The capture ends on Stop or after the
// record duration, whichever comes first.
func (r *Recognizer) Start(ctx context.Context) bool {
	r.mu.Lock()
	if !r.supported || r.listening {
		r.mu.Unlock()
		return false
	}
	capCtx, cancel := context.WithCancel(ctx)
	r.listening = true
	r.cancel = cancel
	r.transcript = ""
	r.mu.Unlock()

	go func() {
		text, err := r.cap.Capture(capCtx, r.duration)
		cancel()
		if err != nil {
			r.log.Error("dictation failed: %v", err)
		}
		text = cleanTranscription(text)
		if text != "" {
			r.log.Info("dictation heard %q", text)
		}

		r.mu.Lock()
		r.transcript = text
		r.listening = false
		r.cancel = nil
		r.mu.Unlock()
	}()
	return true
}

// Stop finalizes the in-flight capture early. The transcript becomes
// whatever was said before the stop.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// whisperCapturer records the microphone and transcribes through
// whisper-cli. Cancelling the context stops the recording but still
// waits for the transcription of what was captured.
type whisperCapturer struct {
	bin     string
	model   string
	tempDir string
	log     *logger.Logger
}

func (c *whisperCapturer) Capture(ctx context.Context, d time.Duration) (string, error) {
	var result string
	var wg sync.WaitGroup
	wg.Add(1)

	callback := func(text string) {
		result = text
		wg.Done()
	}

	verbose := c.log.GetLevel() >= logger.LevelVerbose
	t, err := audiotranscriber.NewTranscriber(
		c.bin,
		c.model,
		c.tempDir,
		"wav",
		callback,
		verbose,
	)
	if err != nil {
		return "", err
	}

	if err := t.Start(); err != nil {
		return "", err
	}

	select {
	case <-time.After(d):
	case <-ctx.Done():
	}

	t.Stop()
	wg.Wait()
	return result, nil
}

// cleanTranscription strips whitespace, normalizes newlines, and removes
// common whisper artifacts like "[BLANK_AUDIO]" and environmental
// annotations.
func cleanTranscription(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	junkPatterns := []string{
		"[BLANK_AUDIO]",
		"[BLANK AUDIO]",
		"(silence)",
		"[silence]",
		"(no speech)",
		"[no speech]",
		"[Music]",
		"(music)",
		"(background noise)",
		"(inaudible)",
		"(unintelligible)",
	}
	for _, j := range junkPatterns {
		s = strings.ReplaceAll(s, j, "")
		s = strings.ReplaceAll(s, strings.ToLower(j), "")
		s = strings.ReplaceAll(s, strings.ToUpper(j), "")
	}

	s = envAnnotation.ReplaceAllString(s, "")

	// Strip whisper timestamp prefixes like "[00:00:00.000 --> 00:00:05.000]".
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if idx := strings.Index(s, "]"); idx != -1 && idx < 40 {
			s = strings.TrimSpace(s[idx+1:])
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

// NoopRecognizer is the stand-in when dictation prerequisites are missing.
type NoopRecognizer struct{}

func (NoopRecognizer) Supported() bool { return false }

func (NoopRecognizer) Start(ctx context.Context) bool { return false }

func (NoopRecognizer) Stop() {}

func (NoopRecognizer) Listening() bool { return false }

func (NoopRecognizer) Transcript() string { return "" }
