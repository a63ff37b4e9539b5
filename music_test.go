package main

import (
	"bytes"
	"testing"
)

func TestEncodeTheme(t *testing.T) {
	data, err := encodeTheme()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data) < 44 {
		t.Fatalf("expected a wav file, got %d bytes", len(data))
	}
	if !bytes.Equal(data[:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Errorf("missing RIFF/WAVE header: %q", data[:12])
	}

	// header plus one pass of the theme, 2 channels of 16-bit samples
	want := 44 + sampleRate.N(noteLength)*len(theme)*4
	if len(data) != want {
		t.Errorf("expected %d bytes, got %d", want, len(data))
	}

	again, _ := encodeTheme()
	if &again[0] != &data[0] {
		t.Error("theme should be encoded once")
	}
}

func TestMutedAudio(t *testing.T) {
	var a mutedAudio

	if err := a.Play(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	a.Pause()
	a.Rewind()
}
