package effect

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Runner ticks the active effect at a fixed rate. It owns the strip for
// its lifetime and serializes all access to it, so the single-threaded
// controller underneath never sees concurrent calls.
type Runner struct {
	mu    sync.Mutex
	strip Strip
	eff   Effect
	fps   int
	tick  int
	log   zerolog.Logger
}

func NewRunner(strip Strip, eff Effect, fps int, log zerolog.Logger) *Runner {
	if fps <= 0 {
		fps = 30
	}
	return &Runner{strip: strip, eff: eff, fps: fps, log: log}
}

// SetEffect swaps the active effect between ticks. The frame counter
// restarts so scrolling effects begin from their first frame.
func (r *Runner) SetEffect(eff Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.eff = eff
	r.tick = 0
	r.log.Info().Str("effect", eff.Name()).Msg("effect changed")
}

// Run drives the effect until ctx is cancelled. A failed frame is
// logged and retried on the next tick; the device may simply have been
// unplugged for a moment.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.step()
		}
	}
}

func (r *Runner) step() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.eff.Step(r.strip, r.tick); err != nil {
		r.log.Warn().Err(err).Str("effect", r.eff.Name()).Msg("frame dropped")
		return
	}
	r.tick++
}
