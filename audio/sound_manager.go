// Package audio plays the short cues of a puzzle session through beep
// Every call is a no-op until Initialize succeeds, so the game runs without a device
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager owns the speaker mixer
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	log         *zap.Logger
}

// NewSoundManager creates an idle manager; log may be nil
func NewSoundManager(log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SoundManager{mixer: &beep.Mixer{}, log: log}
}

// Initialize opens the speaker; repeated calls are no-ops
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences and detaches the mixer
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	sm.initialized = false
}

// ToggleMute flips the mute flag and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// PlayPickup is the tick when a piece is grabbed
func (sm *SoundManager) PlayPickup() {
	sm.play(func() (beep.Streamer, error) {
		tone, err := generators.SineTone(sampleRate, 660)
		if err != nil {
			return nil, err
		}
		return beep.Take(sampleRate.N(25*time.Millisecond), tone), nil
	})
}

// PlayJoin is the click when connectors snap together
func (sm *SoundManager) PlayJoin() {
	sm.play(func() (beep.Streamer, error) {
		return NewClickGenerator(sampleRate), nil
	})
}

// PlayComplete is the chime raised once when the puzzle is solved
func (sm *SoundManager) PlayComplete() {
	sm.play(func() (beep.Streamer, error) {
		return NewChime(sampleRate, ChimeNotes...), nil
	})
}

func (sm *SoundManager) play(build func() (beep.Streamer, error)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s, err := build()
	if err != nil {
		sm.log.Warn("sound unavailable", zap.Error(err))
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
