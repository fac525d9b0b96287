package term

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Cue identifies a feedback sound.
type Cue int

const (
	CueSave Cue = iota
	CueLoad
	CueError
)

// Tone plays short feedback cues. A nil Tone is silent.
type Tone interface {
	Play(Cue)
}

const sampleRate = beep.SampleRate(44100)

// Beeper plays sine blips through the system speaker.
type Beeper struct{}

// NewBeeper initialises the speaker. Callers should treat an error as
// "run without sound".
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Beeper{}, nil
}

// Play queues the tone for cue.
func (b *Beeper) Play(cue Cue) {
	freq := 880
	switch cue {
	case CueLoad:
		freq = 660
	case CueError:
		freq = 220
	}
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(50*time.Millisecond), sine))
}

// Close releases the speaker.
func (b *Beeper) Close() { speaker.Close() }
