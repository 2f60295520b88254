package effect

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/boombuster2000/SkydimoAmbientLights/internal/frame"
)

// recordStrip logs every rainbow offset it is asked to paint and can be
// told to reject frames.
type recordStrip struct {
	mu      sync.Mutex
	offsets []int
	fails   int
	painted chan struct{}
}

func (s *recordStrip) Count() int                      { return 4 }
func (s *recordStrip) Fill(frame.Color) error          { return nil }
func (s *recordStrip) Gradient(_, _ frame.Color) error { return nil }

func (s *recordStrip) Rainbow(offset int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails > 0 {
		s.fails--
		return errors.New("device unplugged")
	}
	s.offsets = append(s.offsets, offset)
	if s.painted != nil {
		select {
		case s.painted <- struct{}{}:
		default:
		}
	}
	return nil
}

func (s *recordStrip) seen() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.offsets...)
}

func TestRunnerStepOneFramePerTick(t *testing.T) {
	strip := &recordStrip{}
	r := NewRunner(strip, Rainbow{}, 30, zerolog.Nop())

	for i := 0; i < 3; i++ {
		r.step()
	}
	got := strip.seen()
	if len(got) != 3 {
		t.Fatalf("3 ticks painted %d frames", len(got))
	}
	// frame at tick k is Rainbow(k)
	for k, off := range got {
		if off != k {
			t.Fatalf("tick %d painted offset %d", k, off)
		}
	}
}

func TestRunnerFailedStepDoesNotAdvance(t *testing.T) {
	strip := &recordStrip{fails: 1}
	r := NewRunner(strip, Rainbow{}, 30, zerolog.Nop())

	r.step() // dropped
	r.step()
	r.step()
	got := strip.seen()
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("offsets after dropped frame: %v", got)
	}
}

func TestRunnerSetEffectResetsTicks(t *testing.T) {
	strip := &recordStrip{}
	r := NewRunner(strip, Rainbow{}, 30, zerolog.Nop())

	r.step()
	r.step()
	r.SetEffect(Rainbow{})
	r.step()
	got := strip.seen()
	if len(got) != 3 || got[2] != 0 {
		t.Fatalf("offsets across effect swap: %v", got)
	}
}

func TestRunnerRunStopsOnCancel(t *testing.T) {
	strip := &recordStrip{painted: make(chan struct{}, 1)}
	r := NewRunner(strip, Rainbow{}, 100, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-strip.painted:
	case <-time.After(5 * time.Second):
		t.Fatal("runner never painted a frame")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop on cancel")
	}
}
