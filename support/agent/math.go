package agent

import (
	"math"
	"math/rand"
)

// RateIterator times random events so that they happen `rate` times per tick on average.
type RateIterator struct {
	rnd            *rand.Rand
	rate           float64
	nextOccurrence float64
}

func NewRateIterator(rate float64, seed int64) *RateIterator {
	ri := &RateIterator{
		rnd:            rand.New(rand.NewSource(seed)),
		rate:           rate,
		nextOccurrence: 1.0, // next occurrence should happen next tick
	}
	ri.chooseNext() // randomize first occurrence
	return ri
}

// Tick calls f once for each event that lands in this tick.
// The function will be called `rate` times on average, but may be called zero or many times in any Tick.
func (ri *RateIterator) Tick(f func() error) error {
	ri.nextOccurrence -= 1.0
	for ri.nextOccurrence < 1.0 {
		if err := f(); err != nil {
			return err
		}
		ri.chooseNext()
	}
	return nil
}

// Gaps between events are exponentially distributed, making event counts per tick Poisson.
func (ri *RateIterator) chooseNext() {
	ri.nextOccurrence += -math.Log(1-ri.rnd.Float64()) / ri.rate
}
