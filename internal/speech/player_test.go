package speech

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildWAV(rate int, pcm []byte) []byte {
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+len(pcm)))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(ChannelCount))
	binary.Write(&b, binary.LittleEndian, uint32(rate))
	binary.Write(&b, binary.LittleEndian, uint32(rate*ChannelCount*BitDepth/8))
	binary.Write(&b, binary.LittleEndian, uint16(ChannelCount*BitDepth/8))
	binary.Write(&b, binary.LittleEndian, uint16(BitDepth))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(len(pcm)))
	b.Write(pcm)
	return b.Bytes()
}

func TestParseWAV(t *testing.T) {
	want := []byte{1, 2, 3, 4}

	pcm, rate, err := parseWAV(buildWAV(SampleRate, want))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(pcm, want) {
		t.Fatalf("pcm mismatch: %v", pcm)
	}
	if rate != SampleRate {
		t.Fatalf("expected %d Hz from the fmt chunk, got %d", SampleRate, rate)
	}
}

func TestParseWAVRejectsGarbage(t *testing.T) {
	if _, _, err := parseWAV([]byte("too short")); err == nil {
		t.Fatal("short input must error")
	}

	notRIFF := buildWAV(SampleRate, []byte{0, 0, 0, 0})
	copy(notRIFF[0:4], "XXXX")
	if _, _, err := parseWAV(notRIFF); err == nil {
		t.Fatal("non-RIFF input must error")
	}

	// Header and fmt chunk followed by an unrelated chunk, no data chunk.
	var noData bytes.Buffer
	noData.Write(buildWAV(SampleRate, nil)[:36])
	noData.WriteString("junk")
	binary.Write(&noData, binary.LittleEndian, uint32(8))
	noData.Write(make([]byte, 8))
	if _, _, err := parseWAV(noData.Bytes()); err == nil {
		t.Fatal("missing data chunk must error")
	}
}
