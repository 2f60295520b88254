package transport

import "sync"

// Sim is an in-memory Sink for headless runs and tests. It records
// every frame it accepts.
type Sim struct {
	mu     sync.Mutex
	open   bool
	frames [][]byte
}

func NewSim() *Sim { return &Sim{} }

func (s *Sim) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	return nil
}

func (s *Sim) Write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return errPortNotOpen
	}
	s.frames = append(s.frames, append([]byte(nil), p...))
	return nil
}

func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

// Frames returns copies of every recorded frame in write order.
func (s *Sim) Frames() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.frames))
	for i, f := range s.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// LastFrame returns the most recent frame, or nil if none was written.
func (s *Sim) LastFrame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return append([]byte(nil), s.frames[len(s.frames)-1]...)
}
