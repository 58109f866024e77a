package game

import (
	"sync"

	"github.com/faiface/beep"
)

// progressTap wraps a beep.Streamer and counts the samples that went through
// it, so the host can turn playback position into progress.
type progressTap struct {
	Source beep.Streamer
	total  int

	mu     sync.Mutex
	played int
	done   bool
}

func newProgressTap(src beep.Streamer, total int) *progressTap {
	return &progressTap{Source: src, total: total}
}

func (t *progressTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	t.mu.Lock()
	t.played += n
	if !ok {
		t.done = true
	}
	t.mu.Unlock()
	return n, ok
}

func (t *progressTap) Err() error { return t.Source.Err() }

// position returns the number of samples played so far.
func (t *progressTap) position() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.played
}

// fraction returns the played share of the stream in [0,1].
func (t *progressTap) fraction() float64 {
	if t.total <= 0 {
		return 0
	}
	p := t.position()
	if p >= t.total {
		return 1
	}
	return float64(p) / float64(t.total)
}

func (t *progressTap) finish() {
	t.mu.Lock()
	t.done = true
	t.mu.Unlock()
}

func (t *progressTap) finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}
