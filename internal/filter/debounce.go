package filter

import (
	"context"
	"sync"
	"time"

	"github.com/jekabolt/store-console/internal/entity"
)

// Debouncer applies draft edits once the user stops typing for delay.
type Debouncer struct {
	s     *State
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(s *State, delay time.Duration) *Debouncer {
	return &Debouncer{s: s, delay: delay}
}

// Edit changes the draft and re-arms the apply timer.
func (d *Debouncer) Edit(ctx context.Context, p Patch) entity.FilterParams {
	f := d.s.Edit(p)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	ctx = context.WithoutCancel(ctx)
	d.timer = time.AfterFunc(d.delay, func() {
		d.s.Apply(ctx)
	})
	return f
}

// Flush applies a pending draft now.
func (d *Debouncer) Flush(ctx context.Context) entity.FilterParams {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()

	if !pending {
		return d.s.Current()
	}
	return d.s.Apply(ctx)
}

// Stop drops a pending apply.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
