/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/spf13/afero"
)

const (
	sampleRate = beep.SampleRate(22050)

	noteLength  = 300 * time.Millisecond
	noteAttack  = 15 * time.Millisecond
	noteRelease = 120 * time.Millisecond
)

var musicFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// A minor arpeggio, two bars, looped by the players.
var theme = []float64{
	220.00, 261.63, 329.63, 440.00, 329.63, 261.63,
	196.00, 246.94, 293.66, 392.00, 293.66, 246.94,
	174.61, 220.00, 261.63, 349.23, 261.63, 220.00,
	164.81, 207.65, 246.94, 329.63, 246.94, 207.65,
}

var errSpeakerUnavailable = errors.New("audio output unavailable")

// fade shapes each note with a linear attack and release.
type fade struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newFade(s beep.Streamer, length, attack, release time.Duration) beep.Streamer {
	return &fade{
		s:       s,
		total:   sampleRate.N(length),
		attack:  sampleRate.N(attack),
		release: sampleRate.N(release),
	}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)

	for i := 0; i < n; i++ {
		gain := 1.0
		if f.pos < f.attack {
			gain = float64(f.pos) / float64(f.attack)
		}
		if left := f.total - f.pos; left < f.release {
			gain = math.Max(0, float64(left)/float64(f.release))
		}

		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}

	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

func themeStreamer() (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(theme))

	for _, freq := range theme {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, err
		}

		note := beep.Take(sampleRate.N(noteLength), tone)
		notes = append(notes, newFade(note, noteLength, noteAttack, noteRelease))
	}

	// keep headroom: a pure sine at full scale is harsh
	return withVolume(beep.Seq(notes...), 0.5), nil
}

// themeBuffer renders one pass of the theme into memory.
func themeBuffer() (*beep.Buffer, error) {
	s, err := themeStreamer()
	if err != nil {
		return nil, err
	}

	buf := beep.NewBuffer(musicFormat)
	buf.Append(s)

	return buf, nil
}

var (
	themeOnce sync.Once
	themeWAV  []byte
	themeErr  error
)

// encodeTheme returns the theme as a WAV file, rendered once.
func encodeTheme() ([]byte, error) {
	themeOnce.Do(func() {
		buf, err := themeBuffer()
		if err != nil {
			themeErr = err
			return
		}

		// wav.Encode needs to seek back and patch the header, so it gets an
		// in-memory file rather than a bytes.Buffer.
		fs := afero.NewMemMapFs()

		f, err := fs.Create("theme.wav")
		if err != nil {
			themeErr = err
			return
		}

		if err := wav.Encode(f, buf.Streamer(0, buf.Len()), musicFormat); err != nil {
			_ = f.Close()
			themeErr = err
			return
		}

		if err := f.Close(); err != nil {
			themeErr = err
			return
		}

		themeWAV, themeErr = afero.ReadFile(fs, "theme.wav")
	})

	return themeWAV, themeErr
}

// speakerAudio loops the theme on the local sound card. If the speaker
// cannot be opened every Play returns an error, which the session ignores.
type speakerAudio struct {
	ctrl    *beep.Ctrl
	seeker  beep.StreamSeeker
	started bool
	err     error
}

func newSpeakerAudio(volume float64) *speakerAudio {
	a := &speakerAudio{}

	buf, err := themeBuffer()
	if err != nil {
		a.err = err
		return a
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		a.err = errors.Join(errSpeakerUnavailable, err)
		return a
	}

	a.seeker = buf.Streamer(0, buf.Len())
	a.ctrl = &beep.Ctrl{Streamer: withVolume(beep.Loop(-1, a.seeker), volume), Paused: true}

	return a
}

func (a *speakerAudio) Play() error {
	if a.err != nil {
		return a.err
	}

	speaker.Lock()
	a.ctrl.Paused = false
	speaker.Unlock()

	if !a.started {
		speaker.Play(a.ctrl)
		a.started = true
	}

	return nil
}

func (a *speakerAudio) Pause() {
	if a.err != nil {
		return
	}

	speaker.Lock()
	a.ctrl.Paused = true
	speaker.Unlock()
}

func (a *speakerAudio) Rewind() {
	if a.err != nil {
		return
	}

	speaker.Lock()
	_ = a.seeker.Seek(0)
	speaker.Unlock()
}

func (a *speakerAudio) Close() {
	if a.err != nil {
		return
	}

	speaker.Close()
}

// mutedAudio stands in when music is switched off.
type mutedAudio struct{}

func (mutedAudio) Play() error { return nil }
func (mutedAudio) Pause()      {}
func (mutedAudio) Rewind()     {}
