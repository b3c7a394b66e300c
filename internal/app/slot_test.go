// ABOUTME: Tests for the single-slot frame handoff, in particular that a
// ABOUTME: slow consumer sees only the newest frame.

package app

import (
	"context"
	"testing"
	"time"

	"github.com/mauromedda/glimpse/pkg/render"
)

func TestSlot_TakeReturnsPut(t *testing.T) {
	s := NewSlot()
	s.Put(render.Capture{Seq: 1})

	c, err := s.Take(context.Background())
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if c.Seq != 1 {
		t.Errorf("Seq = %d", c.Seq)
	}
}

func TestSlot_NewerFrameDisplacesOlder(t *testing.T) {
	s := NewSlot()
	s.Put(render.Capture{Seq: 1})
	s.Put(render.Capture{Seq: 2})
	s.Put(render.Capture{Seq: 3})

	c, err := s.Take(context.Background())
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if c.Seq != 3 {
		t.Errorf("Seq = %d, want latest frame", c.Seq)
	}

	// The displaced frames must not reappear.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := s.Take(ctx); err == nil {
		t.Error("stale frame surfaced after displacement")
	}
}

func TestSlot_TakeBlocksUntilPut(t *testing.T) {
	s := NewSlot()
	got := make(chan render.Capture, 1)
	go func() {
		c, err := s.Take(context.Background())
		if err != nil {
			t.Errorf("take: %v", err)
		}
		got <- c
	}()

	time.Sleep(10 * time.Millisecond)
	s.Put(render.Capture{Seq: 9})

	select {
	case c := <-got:
		if c.Seq != 9 {
			t.Errorf("Seq = %d", c.Seq)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Take never unblocked")
	}
}

func TestSlot_TakeHonorsContext(t *testing.T) {
	s := NewSlot()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Take(ctx); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
