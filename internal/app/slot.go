// ABOUTME: Single-slot frame buffer between the capture loop and the renderer.
// ABOUTME: A newer frame overwrites an unconsumed one; the renderer never queues.

package app

import (
	"context"
	"sync"

	"github.com/mauromedda/glimpse/pkg/render"
)

// Slot hands the most recent capture to the renderer. Put never
// blocks: if the renderer has not picked up the previous frame yet,
// the new one replaces it and the old one is dropped.
type Slot struct {
	mu    sync.Mutex
	cap   render.Capture
	full  bool
	ready chan struct{}
}

func NewSlot() *Slot {
	return &Slot{ready: make(chan struct{}, 1)}
}

// Put stores c, displacing any frame the renderer has not taken.
func (s *Slot) Put(c render.Capture) {
	s.mu.Lock()
	s.cap = c
	s.full = true
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Take blocks until a frame is available or ctx is done.
func (s *Slot) Take(ctx context.Context) (render.Capture, error) {
	for {
		s.mu.Lock()
		if s.full {
			c := s.cap
			s.cap = render.Capture{}
			s.full = false
			s.mu.Unlock()
			return c, nil
		}
		s.mu.Unlock()

		select {
		case <-s.ready:
		case <-ctx.Done():
			return render.Capture{}, ctx.Err()
		}
	}
}
