package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Mshel/stagesnake/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
)

type note struct {
	freq float64
	dur  time.Duration
}

// effectCues are one-shot note sequences.
var effectCues = map[string][]note{
	game.EatFeedSound: {
		{freq: 660, dur: 40 * time.Millisecond},
		{freq: 880, dur: 60 * time.Millisecond},
	},
	game.DeadSound: {
		{freq: 330, dur: 120 * time.Millisecond},
		{freq: 220, dur: 120 * time.Millisecond},
		{freq: 110, dur: 240 * time.Millisecond},
	},
	game.StageClearSound: {
		{freq: 523, dur: 90 * time.Millisecond},
		{freq: 659, dur: 90 * time.Millisecond},
		{freq: 784, dur: 180 * time.Millisecond},
	},
}

// musicCues loop until another music cue replaces them.
var musicCues = map[string][]float64{
	game.StageBackgroundMusic:  {220, 277, 330, 277},
	game.EndingBackgroundMusic: {196, 165, 147, 131},
	game.ClearBackgroundMusic:  {262, 330, 392, 523},
}

// SoundManager plays named cues through the speaker. Every method is safe
// to call before Initialize or after it failed; the cues are then dropped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
	muted       bool
}

func NewSoundManager(muted bool) *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		muted: muted,
	}
}

// Initialize opens the speaker. Failing here is not fatal to the game.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops everything and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.music = nil
	sm.initialized = false
}

// Play starts the named cue. Unknown names are logged and ignored.
func (sm *SoundManager) Play(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if notes, ok := effectCues[name]; ok {
		streamer := noteSequence(notes)
		if streamer == nil {
			return
		}
		speaker.Lock()
		sm.mixer.Add(streamer)
		speaker.Unlock()
		return
	}

	if freqs, ok := musicCues[name]; ok {
		ctrl := &beep.Ctrl{Streamer: quiet(NewMelodyGenerator(sampleRate, freqs, 250*time.Millisecond)), Paused: false}
		speaker.Lock()
		if sm.music != nil {
			sm.music.Paused = true
			sm.music.Streamer = nil
		}
		sm.mixer.Add(ctrl)
		speaker.Unlock()
		sm.music = ctrl
		return
	}

	log.Warn("Unknown sound cue", "name", name)
}

func noteSequence(notes []note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			log.Warn("Sine tone rejected", "freq", n.freq, "error", err)
			return nil
		}
		parts = append(parts, beep.Take(sampleRate.N(n.dur), sine))
	}
	return quiet(beep.Seq(parts...))
}

func quiet(s beep.Streamer) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   -3,
	}
}

// MelodyGenerator repeats a note cycle forever with a short fade per note.
type MelodyGenerator struct {
	sr      beep.SampleRate
	freqs   []float64
	perNote int
	pos     int
}

func NewMelodyGenerator(sr beep.SampleRate, freqs []float64, noteLength time.Duration) *MelodyGenerator {
	return &MelodyGenerator{
		sr:      sr,
		freqs:   freqs,
		perNote: max(1, sr.N(noteLength)),
	}
}

func (g *MelodyGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if len(g.freqs) == 0 {
		return 0, false
	}
	for i := range samples {
		noteIndex := (g.pos / g.perNote) % len(g.freqs)
		inNote := g.pos % g.perNote
		t := float64(g.pos) / float64(g.sr)

		envelope := 1.0 - float64(inNote)/float64(g.perNote)
		sample := 0.2 * envelope * math.Sin(2*math.Pi*g.freqs[noteIndex]*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MelodyGenerator) Err() error {
	return nil
}
