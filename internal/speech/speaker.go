package speech

import (
	"context"
	"sync"

	"github.com/hammamikhairi/sofre/internal/domain"
	"github.com/hammamikhairi/sofre/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Speaker = (*Speaker)(nil)
	_ domain.Speaker = (*NoopSpeaker)(nil)
)

// Speaker reads text aloud through Azure TTS and the local audio device.
// At most one utterance is active; a new Speak call interrupts the
// previous one.
type Speaker struct {
	tts    *AzureClient
	player *Player
	log    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc // cancels the in-flight utterance, nil when idle
}

// NewSpeaker wires a TTS client to an audio player.
func NewSpeaker(tts *AzureClient, player *Player, log *logger.Logger) *Speaker {
	return &Speaker{tts: tts, player: player, log: log}
}

// Speak synthesizes and plays the text. Returns immediately; playback
// runs in the background. Any utterance already in flight is cancelled.
func (s *Speaker) Speak(ctx context.Context, text string) {
	if text == "" {
		return
	}

	s.Stop()

	uttCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			if s.cancel != nil {
				s.cancel()
				s.cancel = nil
			}
			s.mu.Unlock()
		}()

		audio, err := s.tts.Synthesize(uttCtx, text)
		if err != nil {
			if uttCtx.Err() == nil {
				s.log.Error("speaker: synthesis failed: %v", err)
			}
			return
		}
		if uttCtx.Err() != nil {
			return
		}
		if err := s.player.Play(audio); err != nil {
			s.log.Error("speaker: playback failed: %v", err)
		}
	}()
}

// Stop cancels the in-flight utterance, if any.
func (s *Speaker) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.player.Stop()
}

// NoopSpeaker is the stand-in when TTS credentials or the audio device
// are unavailable.
type NoopSpeaker struct{}

func (NoopSpeaker) Speak(ctx context.Context, text string) {}

func (NoopSpeaker) Stop() {}
