// Package invalidate routes "entity changed" events to the views derived
// from that entity.
package invalidate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jekabolt/store-console/internal/dependency"
	"github.com/jekabolt/store-console/internal/entity"
	"golang.org/x/sync/errgroup"
)

type target struct {
	name string
	r    dependency.Reloader
}

type Bus struct {
	mu      sync.RWMutex
	targets map[entity.Topic][]target
	limit   int
}

// New returns a bus that runs at most limit reloads of one event at a time.
func New(limit int) *Bus {
	return &Bus{targets: make(map[entity.Topic][]target), limit: limit}
}

// Subscribe registers r for every topic.
func (b *Bus) Subscribe(name string, r dependency.Reloader, topics ...entity.Topic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range topics {
		b.targets[t] = append(b.targets[t], target{name: name, r: r})
	}
}

// Invalidate reloads every subscriber of topic concurrently. All reloads run
// to completion; the first error is returned.
func (b *Bus) Invalidate(ctx context.Context, topic entity.Topic) error {
	b.mu.RLock()
	targets := append([]target(nil), b.targets[topic]...)
	b.mu.RUnlock()

	var g errgroup.Group
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}
	for _, t := range targets {
		t := t
		g.Go(func() error {
			if err := t.r.Reload(ctx); err != nil {
				slog.Default().ErrorContext(ctx, "can't reload view",
					slog.String("view", t.name),
					slog.String("topic", string(topic)),
					slog.String("err", err.Error()),
				)
				return fmt.Errorf("reload %s: %w", t.name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
