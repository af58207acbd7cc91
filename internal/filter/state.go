// Package filter owns the dashboard query parameters.
package filter

import (
	"context"
	"sync"
	"time"

	"github.com/jekabolt/store-console/internal/entity"
)

// Trigger receives every applied filter. It is the only way a filter
// change reaches the network.
type Trigger interface {
	Trigger(ctx context.Context, f entity.FilterParams)
}

type TriggerFunc func(ctx context.Context, f entity.FilterParams)

func (fn TriggerFunc) Trigger(ctx context.Context, f entity.FilterParams) { fn(ctx, f) }

// Patch changes some fields of a FilterParams. A nil field is left as is,
// a pointer to a zero value clears the field.
type Patch struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *int
}

func (p Patch) apply(f entity.FilterParams) entity.FilterParams {
	if p.StartDate != nil {
		f.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		f.EndDate = *p.EndDate
	}
	if p.CategoryID != nil {
		f.CategoryID = *p.CategoryID
	}
	return f
}

// State keeps the applied filter and the draft the user is editing.
// Values are replaced, never modified in place.
type State struct {
	mu      sync.RWMutex
	applied entity.FilterParams
	draft   entity.FilterParams
	trigger Trigger
}

func New(t Trigger) *State {
	return &State{trigger: t}
}

// Current returns the applied filter.
func (s *State) Current() entity.FilterParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

func (s *State) Draft() entity.FilterParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// Edit changes the draft without fetching.
func (s *State) Edit(p Patch) entity.FilterParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = p.apply(s.draft)
	return s.draft
}

// Apply makes the draft the applied filter and triggers a fetch with it.
func (s *State) Apply(ctx context.Context) entity.FilterParams {
	s.mu.Lock()
	s.applied = s.draft
	f := s.applied
	s.mu.Unlock()

	s.trigger.Trigger(ctx, f)
	return f
}

// Set merges p into the applied filter and triggers a fetch. The draft
// follows the applied value.
func (s *State) Set(ctx context.Context, p Patch) entity.FilterParams {
	s.mu.Lock()
	s.applied = p.apply(s.applied)
	s.draft = s.applied
	f := s.applied
	s.mu.Unlock()

	s.trigger.Trigger(ctx, f)
	return f
}

// Clear resets every field and triggers a fetch with the cleared value.
func (s *State) Clear(ctx context.Context) entity.FilterParams {
	cleared := entity.FilterParams{}

	s.mu.Lock()
	s.applied = cleared
	s.draft = cleared
	s.mu.Unlock()

	s.trigger.Trigger(ctx, cleared)
	return cleared
}
