package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChimeNotes is a rising C major arpeggio
var ChimeNotes = []float64{523.25, 659.25, 783.99, 1046.50}

const (
	chimeStep  = 120 * time.Millisecond // onset spacing between notes
	chimeRing  = 600 * time.Millisecond // length of each note
	chimeDecay = 6.0                    // exponential decay rate per second
)

// Chime strikes each note in turn; notes overlap while they ring out
type Chime struct {
	sr    beep.SampleRate
	freqs []float64
	step  int
	ring  int
	pos   int
	total int
}

func NewChime(sr beep.SampleRate, freqs ...float64) *Chime {
	step, ring := sr.N(chimeStep), sr.N(chimeRing)
	total := 0
	if len(freqs) > 0 {
		total = step*(len(freqs)-1) + ring
	}
	return &Chime{sr: sr, freqs: freqs, step: step, ring: ring, total: total}
}

// Len is the chime length in samples
func (c *Chime) Len() int { return c.total }

func (c *Chime) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= c.total {
		return 0, false
	}
	gain := 0.25 / math.Max(1, float64(len(c.freqs))/2)
	for i := range samples {
		if c.pos >= c.total {
			return i, true
		}
		v := 0.0
		for k, f := range c.freqs {
			local := c.pos - k*c.step
			if local < 0 || local >= c.ring {
				continue
			}
			t := float64(local) / float64(c.sr)
			v += gain * math.Exp(-chimeDecay*t) * math.Sin(2*math.Pi*f*t)
		}
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

func (c *Chime) Err() error { return nil }

// ClickGenerator is a short decaying noise burst over a low thump
type ClickGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	seed  uint32
}

func NewClickGenerator(sr beep.SampleRate) *ClickGenerator {
	return &ClickGenerator{sr: sr, total: sr.N(40 * time.Millisecond), seed: 0x9e3779b9}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 120)

		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		v := env * (0.15*noise + 0.2*math.Sin(2*math.Pi*180*t))
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error { return nil }
