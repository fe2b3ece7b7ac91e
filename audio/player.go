// Package audio plays a short tone when a line spawns.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// Cue length, kept short so rapid spawns don't smear together
	cueDuration = 60 * time.Millisecond

	// Simultaneous cues beyond this are dropped
	maxVoices = 16
)

// Player mixes spawn cues onto the speaker. All methods are no-ops until Initialize succeeds.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player at the given volume in [0, 1]
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize opens the speaker
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences all cues and releases the speaker
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	p.initialized = false
}

// PlaySpawn plays one cue at freq Hz
func (p *Player) PlaySpawn(freq float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if p.mixer.Len() >= maxVoices {
		return
	}
	p.mixer.Add(Cue(freq, p.volume))
}

// Cue builds the spawn tone: a plucked sine at freq Hz scaled by vol.
// Frequencies the sample rate cannot represent yield an empty streamer.
func Cue(freq, vol float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(0)
	}
	return newVolume(newPluck(sine, sampleRate.N(cueDuration)), vol)
}

// pluck shapes a streamer with a 2ms linear attack and exponential decay, ending after total samples
type pluck struct {
	streamer beep.Streamer
	position int
	attack   int
	decay    float64
	total    int
}

func newPluck(s beep.Streamer, total int) *pluck {
	return &pluck{
		streamer: s,
		attack:   sampleRate.N(2 * time.Millisecond),
		decay:    float64(sampleRate.N(15 * time.Millisecond)),
		total:    total,
	}
}

func (p *pluck) Stream(samples [][2]float64) (n int, ok bool) {
	if p.position >= p.total {
		return 0, false
	}
	if rest := p.total - p.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = p.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 0.3 * math.Exp(-float64(p.position)/p.decay)
		if p.position < p.attack {
			vol *= float64(p.position) / float64(p.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		p.position++
	}
	return n, ok
}

func (p *pluck) Err() error { return p.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
