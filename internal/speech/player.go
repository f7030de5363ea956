package speech

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hammamikhairi/sofre/internal/logger"
)

// Player plays synthesized Persian speech through oto. The device is
// opened once, matching the riff-24khz-16bit-mono-pcm format the TTS
// client requests (see DefaultAudioFormat).
type Player struct {
	ctx    *oto.Context
	log    *logger.Logger
	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
}

// NewPlayer opens the system audio device at the TTS output format.
// Returns an error if the audio device is unavailable.
func NewPlayer(log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("audio player initialized (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{ctx: ctx, log: log}, nil
}

// Play plays one synthesized WAV utterance synchronously. Blocks until
// playback finishes or Stop is called. A stream whose declared rate
// differs from the device rate still plays, at the wrong pitch; the
// mismatch is logged.
func (p *Player) Play(wavData []byte) error {
	pcm, rate, err := parseWAV(wavData)
	if err != nil {
		return err
	}
	if rate != 0 && rate != SampleRate {
		p.log.Warn("audio player: stream is %d Hz, device runs at %d Hz", rate, SampleRate)
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	player.Play()
	p.log.Debug("audio player: playing %d bytes of PCM", len(pcm))

	// Wait for playback to complete or be interrupted.
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()

	return player.Close()
}

// Stop interrupts the utterance in flight, if any. Safe to call
// concurrently and when nothing is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
		p.log.Debug("audio player: interrupted")
	}
}

// parseWAV walks the RIFF chunks and returns the raw PCM payload plus
// the sample rate the fmt chunk declares (0 when absent).
func parseWAV(wav []byte) ([]byte, int, error) {
	if len(wav) < 44 {
		return nil, 0, errors.New("wav data too short")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, 0, errors.New("not a valid WAV file")
	}

	rate := 0
	pos := 12
	for pos < len(wav)-8 {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		switch chunkID {
		case "fmt ":
			if chunkSize >= 8 && pos+16 <= len(wav) {
				rate = int(binary.LittleEndian.Uint32(wav[pos+12 : pos+16]))
			}
		case "data":
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], rate, nil
		}

		pos += 8 + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, 0, errors.New("data chunk not found in WAV")
}
